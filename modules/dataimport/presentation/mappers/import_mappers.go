package mappers

import (
	"time"

	"github.com/bookline-app/bookline/modules/dataimport/domain/entities/importbatch"
	"github.com/bookline-app/bookline/modules/dataimport/presentation/viewmodels"
)

func ImportBatchToViewModel(b *importbatch.ImportBatch) viewmodels.ImportBatch {
	vm := viewmodels.ImportBatch{
		ID:           b.ID().String(),
		Type:         string(b.Type()),
		FileName:     b.FileName(),
		Mapping:      b.ColumnMapping(),
		TotalRows:    b.TotalRows(),
		SuccessCount: b.SuccessCount(),
		FailedCount:  b.FailedCount(),
		Status:       string(b.Status()),
		CreatedAt:    b.CreatedAt().Format(time.RFC3339),
	}
	if b.CompletedAt() != nil {
		vm.CompletedAt = b.CompletedAt().Format(time.RFC3339)
	}
	return vm
}

func ImportErrorsToViewModels(errorLog []importbatch.ImportError) []viewmodels.ImportError {
	out := make([]viewmodels.ImportError, 0, len(errorLog))
	for _, e := range errorLog {
		out = append(out, viewmodels.ImportError{
			Row:   e.Row,
			Field: e.Field,
			Error: e.Error,
		})
	}
	return out
}
