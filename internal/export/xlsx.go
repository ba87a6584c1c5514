// Package export renders the classification record log as an XLSX workbook
// for offline review.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/kirillkom/document-triage/internal/core/ports"
)

type Service struct {
	store  ports.ResultStore
	logger *slog.Logger
}

func NewService(store ports.ResultStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger}
}

// ExportRecordsXLSX returns the whole record log as XLSX bytes, one row per
// stored classification.
func (s *Service) ExportRecordsXLSX(ctx context.Context) ([]byte, error) {
	start := time.Now()

	records, err := s.store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Classifications"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if defaultSheet := f.GetSheetName(0); defaultSheet != sheet {
		_ = f.DeleteSheet(defaultSheet)
	}

	headers := []string{
		"Stored At",
		"Conversation",
		"Source",
		"Kind",
		"Document Type",
		"Confidence",
		"Method",
		"Extracted Fields",
		"Error",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, record := range records {
		row := i + 2
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, record.StoredAt.UTC().Format("2006-01-02 15:04:05"))
		write(2, record.ConversationID)
		write(3, record.Source)
		write(4, string(record.Kind))
		if record.Email != nil {
			// Email records carry intent and urgency instead of a document type.
			write(7, string(record.Email.Method))
			write(8, fmt.Sprintf("intent=%s; urgency=%s", record.Email.Intent, record.Email.Urgency))
			write(9, record.Email.ErrorMessage)
			continue
		}
		write(5, string(record.Result.DocumentType))
		write(6, record.Result.Confidence)
		write(7, string(record.Result.Method))
		write(8, formatExtracted(record.Result.ExtractedInfo))
		write(9, record.Result.ErrorMessage)
	}

	_ = f.SetColWidth(sheet, "A", "A", 20)
	_ = f.SetColWidth(sheet, "B", "C", 30)
	_ = f.SetColWidth(sheet, "E", "E", 18)
	_ = f.SetColWidth(sheet, "H", "H", 40)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("encode workbook: %w", err)
	}

	s.logger.Info("exported record log",
		"records", len(records),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// formatExtracted renders extracted fields as "key=value; ..." with keys
// sorted for stable output.
func formatExtracted(fields map[string]string) string {
	if len(fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", k, fields[k]))
	}
	return strings.Join(parts, "; ")
}
