// Command triage classifies a single document from the local filesystem and
// prints the result as JSON. It runs the same pipeline as the API, including
// record persistence, so one-off runs land in the same log.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kirillkom/document-triage/internal/bootstrap"
	"github.com/kirillkom/document-triage/internal/config"
	"github.com/kirillkom/document-triage/internal/core/domain"
	"github.com/kirillkom/document-triage/internal/observability/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "triage: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		kindFlag = flag.String("kind", "", "input kind: pdf, text, json, email (default: by file extension)")
		exportTo = flag.String("export", "", "write the whole record log as XLSX to this path and exit")
		logLevel = flag.String("log-level", "warn", "log level for pipeline diagnostics")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := logging.NewTextLogger(os.Stderr, "triage-cli", *logLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	app, err := bootstrap.New(ctx, cfg, logger, bootstrap.Options{})
	if err != nil {
		return err
	}
	defer app.Close()

	if *exportTo != "" {
		return exportLog(ctx, app, *exportTo)
	}

	path := flag.Arg(0)
	if path == "" {
		return fmt.Errorf("usage: triage [flags] <file>")
	}
	kind := resolveKind(*kindFlag, path)

	if kind == domain.KindEmail {
		return classifyEmailFile(ctx, app, path)
	}

	result, err := classifyFile(ctx, app, path, kind)
	if err != nil && !domain.IsKind(err, domain.ErrEmptyInput) {
		return err
	}

	out, marshalErr := json.MarshalIndent(result, "", "  ")
	if marshalErr != nil {
		return marshalErr
	}
	fmt.Println(string(out))

	if !result.Success {
		return fmt.Errorf("classification failed: %s", result.ErrorMessage)
	}
	return nil
}

// classifyEmailFile routes email inputs through intent/urgency triage rather
// than the document taxonomy.
func classifyEmailFile(ctx context.Context, app *bootstrap.App, path string) error {
	text, err := app.Loader.LoadText(path)
	if err != nil {
		return err
	}

	classification, err := app.EmailUC.ClassifyEmail(ctx, text, path)
	if err != nil && !domain.IsKind(err, domain.ErrEmptyInput) {
		return err
	}

	out, marshalErr := json.MarshalIndent(classification, "", "  ")
	if marshalErr != nil {
		return marshalErr
	}
	fmt.Println(string(out))

	if !classification.Success {
		return fmt.Errorf("classification failed: %s", classification.ErrorMessage)
	}
	return nil
}

func classifyFile(ctx context.Context, app *bootstrap.App, path string, kind domain.DocumentKind) (domain.ClassificationResult, error) {
	var (
		text string
		err  error
	)
	switch kind {
	case domain.KindPDF:
		text, err = app.Loader.LoadPDFText(path)
	case domain.KindJSON:
		// JSON inputs are validated against the intake schema, then classified
		// from their rendered text.
		data, loadErr := app.Loader.LoadJSON(path)
		if loadErr != nil {
			return domain.ClassificationResult{}, loadErr
		}
		report, validateErr := app.ValidatorUC.ValidateRecord(ctx, data, path)
		if validateErr != nil {
			return domain.ClassificationResult{}, validateErr
		}
		reportJSON, _ := json.MarshalIndent(report, "", "  ")
		fmt.Fprintln(os.Stderr, string(reportJSON))

		raw, _ := json.Marshal(data)
		text = string(raw)
	default:
		text, err = app.Loader.LoadText(path)
	}
	if err != nil {
		return domain.ClassificationResult{}, err
	}

	return app.TriageUC.ClassifyDocument(ctx, text, path, kind)
}

func exportLog(ctx context.Context, app *bootstrap.App, path string) error {
	raw, err := app.Export.ExportRecordsXLSX(ctx)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	fmt.Printf("exported record log to %s\n", path)
	return nil
}

func resolveKind(kindFlag, path string) domain.DocumentKind {
	switch strings.ToLower(strings.TrimSpace(kindFlag)) {
	case "pdf":
		return domain.KindPDF
	case "text", "txt":
		return domain.KindText
	case "json":
		return domain.KindJSON
	case "email", "eml":
		return domain.KindEmail
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return domain.KindPDF
	case ".json":
		return domain.KindJSON
	case ".eml":
		return domain.KindEmail
	default:
		return domain.KindText
	}
}
