package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/kirillkom/document-triage/internal/core/domain"
)

// RecordSchema lists the fields a structured intake record must carry.
var RecordSchema = []string{"id", "date", "amount", "customer", "items", "currency"}

// ValidateRecordUseCase checks structured records against the intake schema
// and reformats them into the schema shape with nulls for gaps. Missing
// fields and per-field validation issues are reported, never fatal.
type ValidateRecordUseCase struct {
	logger *slog.Logger
}

func NewValidateRecordUseCase(logger *slog.Logger) *ValidateRecordUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &ValidateRecordUseCase{logger: logger}
}

func (uc *ValidateRecordUseCase) ValidateRecord(_ context.Context, data map[string]any, source string) (domain.RecordReport, error) {
	report := domain.RecordReport{
		ProcessedData:    make(map[string]any, len(RecordSchema)),
		MissingFields:    []string{},
		ValidationErrors: []string{},
		Timestamp:        time.Now().UTC(),
	}

	if data == nil {
		report.ErrorMessage = "no record data"
		return report, domain.ErrEmptyInput
	}

	for _, field := range RecordSchema {
		value, ok := data[field]
		if !ok {
			report.MissingFields = append(report.MissingFields, field)
			report.ProcessedData[field] = nil
			continue
		}
		report.ProcessedData[field] = value
	}
	if len(report.MissingFields) > 0 {
		uc.logger.Warn("record missing schema fields", "source", source, "fields", report.MissingFields)
	}

	uc.validateCustomer(&report)
	uc.validateAmount(&report)

	report.Success = true
	return report, nil
}

func (uc *ValidateRecordUseCase) validateCustomer(report *domain.RecordReport) {
	raw := report.ProcessedData["customer"]
	if raw == nil {
		return
	}

	customer, ok := raw.(map[string]any)
	if !ok {
		report.ValidationErrors = append(report.ValidationErrors, fmt.Sprintf("customer field is not an object: %T", raw))
		return
	}
	if _, ok := customer["name"]; !ok {
		report.ValidationErrors = append(report.ValidationErrors, "customer object is missing name")
	}
	if _, ok := customer["email"]; !ok {
		report.ValidationErrors = append(report.ValidationErrors, "customer object is missing email")
	}
}

func (uc *ValidateRecordUseCase) validateAmount(report *domain.RecordReport) {
	raw := report.ProcessedData["amount"]
	if raw == nil {
		return
	}

	switch v := raw.(type) {
	case float64:
		// JSON numbers decode as float64 already.
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			report.ValidationErrors = append(report.ValidationErrors, fmt.Sprintf("amount %q is not a valid number", v))
			return
		}
		report.ProcessedData["amount"] = parsed
	case int:
		report.ProcessedData["amount"] = float64(v)
	default:
		report.ValidationErrors = append(report.ValidationErrors, fmt.Sprintf("amount has unsupported type %T", raw))
	}
}
