package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorRoundTrip(t *testing.T) {
	for _, id := range []string{"prod-1", "p", "prod_with/odd+chars=="} {
		decoded, err := decodeCursor(encodeCursor(id))
		require.NoError(t, err)
		assert.Equal(t, id, decoded)
	}
}

func TestDecodeCursorRejectsGarbage(t *testing.T) {
	_, err := decodeCursor("!!! not base64 !!!")
	assert.Error(t, err)
}

func TestCursorIsOpaque(t *testing.T) {
	cursor := encodeCursor("prod-42")
	assert.NotContains(t, cursor, "prod-42", "cursors must not expose raw product ids")
}
