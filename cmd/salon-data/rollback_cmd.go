package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/bookline-app/bookline/modules/dataimport/domain/entities/importbatch"
	"github.com/bookline-app/bookline/modules/dataimport/infrastructure/persistence"
	"github.com/bookline-app/bookline/modules/dataimport/services"
	"github.com/bookline-app/bookline/pkg/composables"
	"github.com/bookline-app/bookline/pkg/configuration"
	"github.com/bookline-app/bookline/pkg/eventbus"
)

type rollbackOptions struct {
	tenantID uuid.UUID
	batchID  uuid.UUID
	yes      bool
}

func newRollbackCmd() *cobra.Command {
	var opts rollbackOptions
	var tenant string
	var batch string

	cmd := &cobra.Command{
		Use:   "rollback",
		Short: "Delete every row created by an import batch",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRollback(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&tenant, "tenant", "", "Tenant UUID (required)")
	cmd.Flags().StringVar(&batch, "batch", "", "Import batch UUID (required)")
	cmd.Flags().BoolVar(&opts.yes, "yes", false, "Confirm destructive rollback")

	_ = cmd.MarkFlagRequired("tenant")
	_ = cmd.MarkFlagRequired("batch")

	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		tenantID, err := uuid.Parse(strings.TrimSpace(tenant))
		if err != nil {
			return withCode(exitUsage, fmt.Errorf("invalid --tenant: %w", err))
		}
		opts.tenantID = tenantID

		batchID, err := uuid.Parse(strings.TrimSpace(batch))
		if err != nil {
			return withCode(exitUsage, fmt.Errorf("invalid --batch: %w", err))
		}
		opts.batchID = batchID
		return nil
	}

	return cmd
}

func runRollback(ctx context.Context, opts rollbackOptions) error {
	if !opts.yes {
		return withCode(exitSafetyNet, fmt.Errorf("refusing to rollback without --yes"))
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

	batch, err := svc.Rollback(runCtx, opts.batchID)
	if err != nil {
		switch {
		case errors.Is(err, importbatch.ErrNotFound),
			errors.Is(err, services.ErrAlreadyRolledBack),
			errors.Is(err, services.ErrImportInProgress),
			errors.Is(err, services.ErrRollbackWindowExpired):
			return withCode(exitValidation, err)
		default:
			return withCode(exitDB, err)
		}
	}

	return writeJSONLine(map[string]any{
		"status":       "applied",
		"batch_id":     batch.ID().String(),
		"type":         string(batch.Type()),
		"batch_status": string(batch.Status()),
	})
}
