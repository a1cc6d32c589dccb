package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/bookline-app/bookline/modules/dataimport/domain/entities/importbatch"
	"github.com/bookline-app/bookline/modules/dataimport/domain/validation"
	"github.com/bookline-app/bookline/modules/dataimport/infrastructure/persistence"
	"github.com/bookline-app/bookline/modules/dataimport/services"
	"github.com/bookline-app/bookline/pkg/composables"
	"github.com/bookline-app/bookline/pkg/configuration"
	"github.com/bookline-app/bookline/pkg/eventbus"
)

type importOptions struct {
	tenantID   uuid.UUID
	importType importbatch.ImportType
	filePath   string
	mapPairs   []string
	apply      bool
}

func newImportCmd() *cobra.Command {
	var opts importOptions
	var tenant string
	var importType string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a CSV file of customers, services, employees or bookings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&tenant, "tenant", "", "Tenant UUID (required)")
	cmd.Flags().StringVar(&importType, "type", "", "Import type: customers|services|employees|bookings (required)")
	cmd.Flags().StringVar(&opts.filePath, "file", "", "Path to the CSV file (required)")
	cmd.Flags().StringArrayVar(&opts.mapPairs, "map", nil, "Column mapping as col=field (default: column names are field keys)")
	cmd.Flags().BoolVar(&opts.apply, "apply", false, "Apply the import (default is validate-only)")

	_ = cmd.MarkFlagRequired("tenant")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("file")

	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(strings.TrimSpace(tenant))
		if err != nil {
			return withCode(exitUsage, fmt.Errorf("invalid --tenant: %w", err))
		}
		opts.tenantID = id

		parsed, err := importbatch.ParseType(strings.TrimSpace(importType))
		if err != nil {
			return withCode(exitUsage, fmt.Errorf("invalid --type: %w", err))
		}
		opts.importType = parsed
		return nil
	}

	return cmd
}

func runImport(ctx context.Context, opts importOptions) error {
	rows, header, err := readCSVFile(opts.filePath)
	if err != nil {
		return withCode(exitValidation, err)
	}

	mapping, err := buildMapping(header, opts.mapPairs)
	if err != nil {
		return withCode(exitUsage, err)
	}

	valid, invalid, err := validation.ValidateRows(opts.importType, rows, mapping)
	if err != nil {
		return withCode(exitUsage, err)
	}

	var validationErrors []importbatch.ImportError
	for _, row := range invalid {
		validationErrors = append(validationErrors, row.Errors...)
	}

	if !opts.apply {
		if err := writeJSONLine(map[string]any{
			"status":            "dry_run",
			"type":              string(opts.importType),
			"total_rows":        len(rows),
			"valid_rows":        len(valid),
			"invalid_rows":      len(invalid),
			"validation_errors": validationErrors,
		}); err != nil {
			return err
		}
		if len(valid) == 0 {
			return withCode(exitValidation, fmt.Errorf("no valid rows"))
		}
		return nil
	}

	pool, err := connectDB(ctx)
	if err != nil {
		return withCode(exitDB, err)
	}
	defer pool.Close()

	logger := configuration.Use().Logger()
	svc := services.NewImportService(
		persistence.NewImportBatchRepository(),
		persistence.NewPgTenantStore(),
		eventbus.NewEventPublisher(logger),
	)

	runCtx := composables.WithPool(ctx, pool)
	runCtx = composables.WithTenantID(runCtx, opts.tenantID)

	batch, err := svc.Execute(runCtx, services.ExecuteParams{
		Type:     opts.importType,
		Rows:     valid,
		Mapping:  mapping,
		FileName: filepath.Base(opts.filePath),
		Progress: func(done, total int) {
			fmt.Fprintf(os.Stderr, "imported %d/%d rows\n", done, total)
		},
	})
	if err != nil {
		if err == services.ErrNoValidRows {
			return withCode(exitValidation, err)
		}
		return withCode(exitDB, err)
	}

	return writeJSONLine(map[string]any{
		"status":            "applied",
		"batch_id":          batch.ID().String(),
		"type":              string(batch.Type()),
		"batch_status":      string(batch.Status()),
		"total_rows":        batch.TotalRows(),
		"success_count":     batch.SuccessCount(),
		"failed_count":      batch.FailedCount(),
		"errors":            batch.ErrorLog(),
		"validation_errors": validationErrors,
	})
}

func readCSVFile(path string) ([]map[string]string, []string, error) {
	r, closeFn, err := openCSV(path)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = closeFn() }()

	header, err := readHeader(r)
	if err != nil {
		return nil, nil, err
	}
	rows, err := readRows(r, header)
	if err != nil {
		return nil, nil, err
	}
	return rows, header, nil
}

// buildMapping starts from identity (every column maps to a field of the same
// name) and applies col=field overrides on top.
func buildMapping(header []string, pairs []string) (map[string]string, error) {
	mapping := make(map[string]string, len(header))
	for _, col := range header {
		if col != "" {
			mapping[col] = col
		}
	}
	for _, pair := range pairs {
		col, field, ok := strings.Cut(pair, "=")
		col = strings.TrimSpace(col)
		field = strings.TrimSpace(field)
		if !ok || col == "" || field == "" {
			return nil, fmt.Errorf("invalid --map %q (expected col=field)", pair)
		}
		mapping[col] = field
	}
	return mapping, nil
}
