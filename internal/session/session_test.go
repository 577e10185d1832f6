package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datalens/domain/dataset"
)

func TestNew(t *testing.T) {
	ds := &dataset.Dataset{Name: "user/demo", Split: "train", Rows: 10}

	s := New("user/demo", "train", ds)

	assert.NotEmpty(t, s.ID)
	assert.Equal(t, "user/demo", s.Name)
	assert.Equal(t, "train", s.Split)
	assert.Same(t, ds, s.Dataset)
	assert.False(t, s.LoadedAt.IsZero())

	other := New("user/demo", "train", ds)
	assert.NotEqual(t, s.ID, other.ID)
}

func TestHolder_ReplaceSwapsWholesale(t *testing.T) {
	h := NewHolder()
	assert.Nil(t, h.Current())

	first := New("a", "train", &dataset.Dataset{Name: "a"})
	h.Replace(first)
	require.Same(t, first, h.Current())

	second := New("b", "test", &dataset.Dataset{Name: "b"})
	h.Replace(second)
	assert.Same(t, second, h.Current())
}
