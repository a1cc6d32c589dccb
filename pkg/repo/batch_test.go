package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBatchInsertQueryN(t *testing.T) {
	q, args := BatchInsertQueryN(
		"INSERT INTO things (a, b) VALUES",
		[][]any{{1, "x"}, {2, "y"}, {3, "z"}},
	)
	assert.Equal(t, "INSERT INTO things (a, b) VALUES ($1, $2), ($3, $4), ($5, $6)", q)
	assert.Equal(t, []any{1, "x", 2, "y", 3, "z"}, args)
}

func TestBatchInsertQueryN_Empty(t *testing.T) {
	q, args := BatchInsertQueryN("INSERT INTO things (a) VALUES", nil)
	assert.Equal(t, "INSERT INTO things (a) VALUES", q)
	assert.Nil(t, args)
}
