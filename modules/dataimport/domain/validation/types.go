package validation

import (
	"github.com/bookline-app/bookline/modules/dataimport/domain/entities/importbatch"
)

// TypeSpec bundles everything the validator needs to know about one import
// type: which target fields exist (and how to coerce them), which are
// required, and the storage collection imported rows land in. Keeping this in
// one registry keeps the set of supported types closed instead of
// string-matched across the pipeline.
type TypeSpec struct {
	Collection string
	Fields     map[string]Kind
	Required   []string
}

var registry = map[importbatch.ImportType]TypeSpec{
	importbatch.TypeCustomers: {
		Collection: "customers",
		Fields: map[string]Kind{
			"full_name": KindText,
			"email":     KindEmail,
			"phone":     KindPhone,
			"notes":     KindText,
		},
		Required: []string{"full_name"},
	},
	importbatch.TypeServices: {
		Collection: "services",
		Fields: map[string]Kind{
			"name":             KindText,
			"description":      KindText,
			"category":         KindText,
			"duration_minutes": KindDuration,
			"price_cents":      KindMoney,
		},
		Required: []string{"name", "duration_minutes", "price_cents"},
	},
	importbatch.TypeEmployees: {
		Collection: "employees",
		Fields: map[string]Kind{
			"full_name": KindText,
			"email":     KindEmail,
			"phone":     KindPhone,
			"role":      KindText,
		},
		Required: []string{"full_name"},
	},
	importbatch.TypeBookings: {
		Collection: "bookings",
		Fields: map[string]Kind{
			"customer_name": KindText,
			"service_name":  KindText,
			"employee_name": KindText,
			"start_time":    KindDateTime,
			"end_time":      KindDateTime,
			"status":        KindText,
			"notes":         KindText,
		},
		Required: []string{"start_time"},
	},
}

var requiredMessages = map[string]string{
	"full_name":        "Full name is required",
	"name":             "Name is required",
	"duration_minutes": "Duration is required",
	"price_cents":      "Price is required",
	"start_time":       "Start time is required",
}

// Spec returns the registry entry for an import type.
func Spec(t importbatch.ImportType) (TypeSpec, bool) {
	spec, ok := registry[t]
	return spec, ok
}

func requiredMessage(field string) string {
	if msg, ok := requiredMessages[field]; ok {
		return msg
	}
	return field + " is required"
}
