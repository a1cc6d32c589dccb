package services_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookline-app/bookline/modules/dataimport/domain/entities/importbatch"
	"github.com/bookline-app/bookline/modules/dataimport/services"
)

func TestWriteErrorsCSV(t *testing.T) {
	var buf bytes.Buffer
	err := services.WriteErrorsCSV(&buf, []importbatch.ImportError{
		{Row: 1, Field: "phone", Error: "Invalid phone format"},
		{Row: 4, Field: "*", Error: "constraint violation"},
	})
	require.NoError(t, err)

	assert.Equal(t,
		"Row,Field,Error\n1,phone,Invalid phone format\n4,*,constraint violation\n",
		buf.String(),
	)
}

func TestWriteErrorsCSV_EmptyLog(t *testing.T) {
	var buf bytes.Buffer
	err := services.WriteErrorsCSV(&buf, nil)
	require.NoError(t, err)
	assert.Equal(t, "Row,Field,Error\n", buf.String())
}
