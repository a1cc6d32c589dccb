package dtos

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/bookline-app/bookline/pkg/constants"
	"github.com/bookline-app/bookline/pkg/serrors"
)

// ImportRequest is the JSON body of POST /data-import/{type}. Rows carry the
// raw CSV cells keyed by column name; Mapping routes columns onto target
// fields.
type ImportRequest struct {
	FileName string              `json:"file_name"`
	Mapping  map[string]string   `json:"mapping" validate:"required,min=1"`
	Rows     []map[string]string `json:"rows" validate:"required"`
}

var fieldMessages = map[string]string{
	"Mapping": "mapping is required",
	"Rows":    "rows are required",
}

func (d *ImportRequest) Ok(ctx context.Context) (serrors.ValidationErrors, bool) {
	err := constants.Validate.StructCtx(ctx, d)
	if err == nil {
		return serrors.ValidationErrors{}, true
	}
	var validatorErrs validator.ValidationErrors
	if !errors.As(err, &validatorErrs) {
		return serrors.ValidationErrors{"": err.Error()}, false
	}
	out := serrors.ProcessValidatorErrors(validatorErrs, func(field, tag string) string {
		return fieldMessages[field]
	})
	return out, len(out) == 0
}
