package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMapping(t *testing.T) {
	mapping, err := buildMapping([]string{"Name", "E-Mail", ""}, []string{"E-Mail=email"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"Name":   "Name",
		"E-Mail": "email",
	}, mapping)
}

func TestBuildMapping_InvalidPair(t *testing.T) {
	_, err := buildMapping([]string{"Name"}, []string{"broken"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected col=field")
}

func TestReadCSVFile_StripsBOMAndShortRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "customers.csv")
	content := "\xEF\xBB\xBFfull_name,email\nJane Doe,jane@example.com\nBob Smith\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	rows, header, err := readCSVFile(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"full_name", "email"}, header)
	require.Len(t, rows, 2)
	assert.Equal(t, "jane@example.com", rows[0]["email"])
	assert.Equal(t, "Bob Smith", rows[1]["full_name"])
	_, hasEmail := rows[1]["email"]
	assert.False(t, hasEmail, "short record leaves trailing columns absent")
}
