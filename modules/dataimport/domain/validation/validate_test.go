package validation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookline-app/bookline/modules/dataimport/domain/entities/importbatch"
)

func TestValidateRows_CustomersScenario(t *testing.T) {
	mapping := map[string]string{"Name": "full_name", "Phone": "phone"}
	rows := []map[string]string{
		{"Name": "Jane", "Phone": "12345"},
		{"Name": "Bob", "Phone": "555-1234"},
	}

	valid, invalid, err := ValidateRows(importbatch.TypeCustomers, rows, mapping)
	require.NoError(t, err)

	require.Len(t, invalid, 1)
	require.Len(t, valid, 1)

	assert.Equal(t, 0, invalid[0].RowIndex)
	require.Len(t, invalid[0].Errors, 1)
	assert.Equal(t, importbatch.ImportError{Row: 1, Field: "phone", Error: "Invalid phone format"}, invalid[0].Errors[0])

	assert.Equal(t, 1, valid[0].RowIndex)
	assert.Equal(t, "Bob", valid[0].Data["full_name"])
	assert.Equal(t, "555-1234", valid[0].Data["phone"])
}

func TestValidateRows_PartitionComplete(t *testing.T) {
	mapping := map[string]string{"Name": "full_name", "Email": "email"}
	rows := make([]map[string]string, 0, 50)
	for i := 0; i < 50; i++ {
		row := map[string]string{"Name": fmt.Sprintf("Customer %d", i)}
		if i%3 == 0 {
			row["Email"] = "broken@"
		}
		if i%7 == 0 {
			row["Name"] = "   " // blank after trimming: required field missing
		}
		rows = append(rows, row)
	}

	valid, invalid, err := ValidateRows(importbatch.TypeCustomers, rows, mapping)
	require.NoError(t, err)
	assert.Equal(t, len(rows), len(valid)+len(invalid))
}

func TestValidateRows_Deterministic(t *testing.T) {
	mapping := map[string]string{
		"Name":  "full_name",
		"Email": "email",
		"Phone": "phone",
		"Notes": "notes",
	}
	rows := []map[string]string{
		{"Name": "Ann", "Email": "bad", "Phone": "bad", "Notes": "x"},
		{"Name": "Ben", "Email": "ben@example.com", "Phone": "1234567"},
	}

	valid1, invalid1, err := ValidateRows(importbatch.TypeCustomers, rows, mapping)
	require.NoError(t, err)
	valid2, invalid2, err := ValidateRows(importbatch.TypeCustomers, rows, mapping)
	require.NoError(t, err)

	assert.Equal(t, valid1, valid2)
	assert.Equal(t, invalid1, invalid2)
}

func TestValidateRows_AnyFieldErrorDisqualifies(t *testing.T) {
	mapping := map[string]string{"Name": "full_name", "Email": "email"}
	rows := []map[string]string{
		// full_name (the only required field) is fine, the optional email is not
		{"Name": "Jane Doe", "Email": "not-an-email"},
	}

	valid, invalid, err := ValidateRows(importbatch.TypeCustomers, rows, mapping)
	require.NoError(t, err)
	assert.Empty(t, valid)
	require.Len(t, invalid, 1)
	assert.Equal(t, "Invalid email format", invalid[0].Errors[0].Error)
}

func TestValidateRows_ServicesRequired(t *testing.T) {
	mapping := map[string]string{
		"Service":  "name",
		"Duration": "duration_minutes",
		"Price":    "price_cents",
	}

	valid, invalid, err := ValidateRows(importbatch.TypeServices, []map[string]string{
		{"Service": "Haircut", "Duration": "45", "Price": "45.00"},
		{"Service": "Consultation", "Duration": "15", "Price": "0"}, // zero price is valid
		{"Service": "Blow Dry", "Duration": "30"},                  // price missing
	}, mapping)
	require.NoError(t, err)

	require.Len(t, valid, 2)
	assert.Equal(t, int64(4500), valid[0].Data["price_cents"])
	assert.Equal(t, int64(0), valid[1].Data["price_cents"])

	require.Len(t, invalid, 1)
	assert.Equal(t, importbatch.ImportError{Row: 3, Field: "price_cents", Error: "Price is required"}, invalid[0].Errors[0])
}

func TestValidateRows_BookingsRequireStartTime(t *testing.T) {
	mapping := map[string]string{"Customer": "customer_name", "Start": "start_time"}

	valid, invalid, err := ValidateRows(importbatch.TypeBookings, []map[string]string{
		{"Customer": "Jane Doe", "Start": "15/01/2024 10:30"},
		{"Customer": "Bob Ross"},
	}, mapping)
	require.NoError(t, err)

	require.Len(t, valid, 1)
	require.Len(t, invalid, 1)
	assert.Equal(t, "Start time is required", invalid[0].Errors[0].Error)
}

func TestValidateRows_UnmappedColumnsIgnored(t *testing.T) {
	mapping := map[string]string{"Name": "full_name"}
	valid, invalid, err := ValidateRows(importbatch.TypeEmployees, []map[string]string{
		{"Name": "Sam", "Shoe Size": "44"},
	}, mapping)
	require.NoError(t, err)
	require.Len(t, valid, 1)
	assert.Empty(t, invalid)
	assert.NotContains(t, valid[0].Data, "Shoe Size")
}

func TestValidateRows_UnknownType(t *testing.T) {
	_, _, err := ValidateRows(importbatch.ImportType("invoices"), nil, nil)
	assert.ErrorIs(t, err, importbatch.ErrUnknownImportType)
}

func TestRegistry_CoversAllImportTypes(t *testing.T) {
	for _, importType := range importbatch.AllTypes() {
		spec, ok := Spec(importType)
		require.True(t, ok, "missing registry entry for %s", importType)
		assert.NotEmpty(t, spec.Collection)
		assert.NotEmpty(t, spec.Fields)
		assert.NotEmpty(t, spec.Required)
		for _, field := range spec.Required {
			assert.Contains(t, spec.Fields, field)
		}
	}
}
