package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWhere_NumbersPlaceholders(t *testing.T) {
	w := &where{args: []interface{}{"vec"}}
	w.add("owner_id = $%d", "o1")
	w.add("document_type = $%d", "content")
	limit := w.placeholder(" LIMIT $%d", 5)

	assert.Equal(t, " WHERE owner_id = $2 AND document_type = $3", w.String())
	assert.Equal(t, " LIMIT $4", limit)
	assert.Equal(t, []interface{}{"vec", "o1", "content", 5}, w.args)
	assert.Equal(t, "", (&where{}).String())
}

func TestEncodeMetadata(t *testing.T) {
	s, err := encodeMetadata(nil)
	assert.NoError(t, err)
	assert.Equal(t, "{}", s)

	s, err = encodeMetadata(map[string]interface{}{"k": "v"})
	assert.NoError(t, err)
	assert.JSONEq(t, `{"k":"v"}`, s)
}

func TestOpen_EmptyDSN(t *testing.T) {
	_, err := Open("")
	assert.Error(t, err)
}
