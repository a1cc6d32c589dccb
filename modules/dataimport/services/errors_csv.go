package services

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/bookline-app/bookline/modules/dataimport/domain/entities/importbatch"
)

// WriteErrorsCSV renders a batch error log as a downloadable CSV with a
// Row,Field,Error header.
func WriteErrorsCSV(w io.Writer, errorLog []importbatch.ImportError) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Row", "Field", "Error"}); err != nil {
		return err
	}
	for _, e := range errorLog {
		if err := cw.Write([]string{strconv.Itoa(e.Row), e.Field, e.Error}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
