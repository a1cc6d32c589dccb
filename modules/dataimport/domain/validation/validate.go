package validation

import (
	"sort"
	"strings"

	"github.com/bookline-app/bookline/modules/dataimport/domain/entities/importbatch"
)

// ValidatedRow is the ephemeral product of validating one raw row. It never
// outlives the import run; only the aggregated error log on the batch does.
type ValidatedRow struct {
	// RowIndex is the 0-based position of the row in the original upload.
	RowIndex int
	Data     map[string]any
	Errors   []importbatch.ImportError
}

func (r ValidatedRow) Valid() bool {
	return len(r.Errors) == 0
}

// ValidateRows applies the column mapping and per-type required-field policy
// to every raw row. The split is exhaustive (len(valid)+len(invalid) equals
// len(rows)), deterministic, and free of I/O. A row with any field error goes
// to the invalid set even when its required fields are all present.
func ValidateRows(
	importType importbatch.ImportType,
	rows []map[string]string,
	mapping map[string]string,
) (valid []ValidatedRow, invalid []ValidatedRow, err error) {
	spec, ok := Spec(importType)
	if !ok {
		return nil, nil, importbatch.ErrUnknownImportType
	}

	// Map iteration order is randomized; sort columns so repeated runs
	// produce identical error ordering.
	columns := make([]string, 0, len(mapping))
	for column := range mapping {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	valid = make([]ValidatedRow, 0, len(rows))
	invalid = make([]ValidatedRow, 0)

	for i, raw := range rows {
		row := ValidatedRow{RowIndex: i, Data: make(map[string]any, len(mapping))}

		for _, column := range columns {
			targetField := mapping[column]
			cell := strings.TrimSpace(raw[column])
			if cell == "" {
				continue
			}
			kind, known := spec.Fields[targetField]
			if !known {
				kind = KindText
			}
			value, cerr := Coerce(kind, cell)
			if cerr != nil {
				row.Errors = append(row.Errors, importbatch.ImportError{
					Row:   i + 1,
					Field: targetField,
					Error: cerr.Error(),
				})
				continue
			}
			row.Data[targetField] = value
		}

		for _, field := range spec.Required {
			// Presence check, not truthiness: 0 is a valid price.
			if _, present := row.Data[field]; !present {
				row.Errors = append(row.Errors, importbatch.ImportError{
					Row:   i + 1,
					Field: field,
					Error: requiredMessage(field),
				})
			}
		}

		if row.Valid() {
			valid = append(valid, row)
		} else {
			invalid = append(invalid, row)
		}
	}

	return valid, invalid, nil
}
