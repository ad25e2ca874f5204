package jsonutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalKeepsHTML(t *testing.T) {
	b, err := Marshal(map[string]string{"description": "a<b>&c"})
	require.NoError(t, err)
	assert.Equal(t, `{"description":"a<b>&c"}`, string(b))
}

func TestDuplicateKeys(t *testing.T) {
	dups, err := DuplicateKeys([]byte(`{"a":1,"b":{"a":2,"a":3},"a":4,"c":[1],"a":5,"b":null}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, dups)

	dups, err = DuplicateKeys([]byte(`{"a":1,"b":2}`))
	require.NoError(t, err)
	assert.Empty(t, dups)

	dups, err = DuplicateKeys([]byte(`[1,2]`))
	require.NoError(t, err)
	assert.Empty(t, dups)

	dups, err = DuplicateKeys(nil)
	require.NoError(t, err)
	assert.Empty(t, dups)

	_, err = DuplicateKeys([]byte(`{"a":`))
	assert.Error(t, err)
}
