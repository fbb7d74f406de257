package bimap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsDuplicateValues(t *testing.T) {
	_, err := New(map[string]string{
		"a": "same",
		"b": "same",
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "same")
}

func TestMustNewPanicsOnDuplicateValues(t *testing.T) {
	assert.Panics(t, func() {
		MustNew(map[string]string{"a": "x", "b": "x"})
	})
}

func TestGetAndInverse(t *testing.T) {
	m := MustNew(map[string]string{
		"ID":   "name",
		"Name": "displayName",
	})

	value, found := m.Get("ID")
	assert.True(t, found)
	assert.Equal(t, "name", value)

	key, found := m.GetInverse("displayName")
	assert.True(t, found)
	assert.Equal(t, "Name", key)

	_, found = m.Get("missing")
	assert.False(t, found)

	assert.Equal(t, "missing", m.GetOr("missing", "missing"))
	assert.Equal(t, "missing", m.GetInverseOr("missing", "missing"))
}

func TestSetOverwriteCleansInverse(t *testing.T) {
	m := MustNew(map[string]string{"a": "1"})

	require.NoError(t, m.Set("a", "2"))

	// The old value must be released from the inverse index.
	_, found := m.GetInverse("1")
	assert.False(t, found)

	key, found := m.GetInverse("2")
	assert.True(t, found)
	assert.Equal(t, "a", key)
	assert.Equal(t, 1, m.Len())
}

func TestSetDuplicateValueFails(t *testing.T) {
	m := MustNew(map[string]string{"a": "1", "b": "2"})

	err := m.Set("b", "1")
	assert.Error(t, err)

	// The failed update must not disturb either binding.
	assert.Equal(t, "1", m.GetOr("a", ""))
	assert.Equal(t, "2", m.GetOr("b", ""))
}

func TestSetSameKeySameValue(t *testing.T) {
	m := MustNew(map[string]string{"a": "1"})
	assert.NoError(t, m.Set("a", "1"))
	assert.Equal(t, 1, m.Len())
}

func TestDeleteRemovesBothDirections(t *testing.T) {
	m := MustNew(map[string]string{"a": "1", "b": "2"})

	m.Delete("a")
	assert.False(t, m.Contains("a"))
	_, found := m.GetInverse("1")
	assert.False(t, found)
	assert.Equal(t, 1, m.Len())

	// Deleting an absent key is a no-op.
	m.Delete("a")
	assert.Equal(t, 1, m.Len())
}
