package document

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gerhatlevi/project-factory/internal/validate"
)

func TestSchemaMap_AddParsesBatch(t *testing.T) {
	m := NewSchemaMap()

	require.NoError(t, m.Add("dev-folder", "roles/viewer, roles/editor\nroles/browser"))
	assert.Equal(t, []string{"roles/viewer", "roles/editor", "roles/browser"}, m.Values("dev-folder"))
}

func TestSchemaMap_KeyFormat(t *testing.T) {
	m := NewSchemaMap()

	err := m.Add("Bad Key", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidFormat))

	// Custom key validator replaces the slug default.
	svc := NewSchemaMap(WithKeyCheck(validate.IsServiceName, "must be of the form name.googleapis.com"))
	require.NoError(t, svc.Add("compute.googleapis.com", ""))
	err = svc.Add("compute", "")
	assert.True(t, errors.Is(err, ErrInvalidFormat))
}

func TestSchemaMap_DuplicateKey(t *testing.T) {
	m := NewSchemaMap()
	require.NoError(t, m.Add("entry", "a"))

	err := m.Add("entry", "b")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateKey))
	assert.Equal(t, []string{"a"}, m.Values("entry"))
}

func TestSchemaMap_UniqueValues(t *testing.T) {
	m := NewSchemaMap(WithUniqueValues())
	require.NoError(t, m.Add("entry", "a"))
	require.NoError(t, m.Append("entry", "b"))

	err := m.Append("entry", "a")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateKey))
	assert.Equal(t, []string{"a", "b"}, m.Values("entry"))
}

func TestSchemaMap_ValueEdits(t *testing.T) {
	m := NewSchemaMap()
	require.NoError(t, m.Add("entry", "a, b"))

	require.NoError(t, m.SetValues("entry", "c"))
	assert.Equal(t, []string{"c"}, m.Values("entry"))

	require.NoError(t, m.Append("entry", "d"))
	require.NoError(t, m.RemoveValue("entry", "c"))
	assert.Equal(t, []string{"d"}, m.Values("entry"))

	err := m.RemoveValue("entry", "ghost")
	assert.True(t, errors.Is(err, ErrNotFound))

	err = m.Append("entry", "")
	assert.True(t, errors.Is(err, ErrInvalidFormat))
}

func TestSchemaMap_RemoveEntry(t *testing.T) {
	m := NewSchemaMap()
	require.NoError(t, m.Add("a", "1"))
	require.NoError(t, m.Add("b", "2"))

	require.NoError(t, m.Remove("a"))
	assert.Equal(t, []string{"b"}, m.IDs())

	err := m.Remove("a")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestLabelMap_LastWriteWins(t *testing.T) {
	m := NewLabelMap()

	require.NoError(t, m.Set("env", "dev"))
	require.NoError(t, m.Set("env", "prod"))

	v, ok := m.Get("env")
	require.True(t, ok)
	assert.Equal(t, "prod", v)
	assert.Equal(t, 1, m.Len())
}

func TestLabelMap_RequiresKeyAndValue(t *testing.T) {
	m := NewLabelMap()

	assert.True(t, errors.Is(m.Set("", "v"), ErrInvalidFormat))
	assert.True(t, errors.Is(m.Set("k", ""), ErrInvalidFormat))
	assert.True(t, errors.Is(m.Remove("ghost"), ErrNotFound))
}
