package services

import (
	"github.com/bookline-app/bookline/modules/dataimport/domain/entities/importbatch"
)

// ImportCompletedEvent fires once a batch reaches a terminal import status,
// whether completed or failed.
type ImportCompletedEvent struct {
	Batch *importbatch.ImportBatch
}

// ImportRolledBackEvent fires after a batch's rows have been deleted and the
// batch flipped to rolled_back.
type ImportRolledBackEvent struct {
	Batch *importbatch.ImportBatch
}
