package errors

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder(t *testing.T) {
	t.Parallel()

	err := Newf("clip %s matched %d source files", "x.png", 0).
		Component("sources").
		Category(CategoryNotFound).
		Context("stem", "x").
		Build()

	assert.Equal(t, "clip x.png matched 0 source files", err.Error())
	assert.Equal(t, "sources", err.Component)
	assert.Equal(t, CategoryNotFound, err.Category)
	assert.Equal(t, "x", err.Context["stem"])
	assert.False(t, err.Timestamp.IsZero())
}

func TestBuilderDefaults(t *testing.T) {
	t.Parallel()

	err := Newf("boom").Build()
	assert.Equal(t, ComponentUnknown, err.Component)
	assert.Equal(t, CategoryGeneric, err.Category)
}

func TestUnwrapChain(t *testing.T) {
	t.Parallel()

	err := New(fs.ErrNotExist).Category(CategoryFileIO).Build()
	assert.True(t, Is(err, fs.ErrNotExist))

	var ee *EnhancedError
	require.True(t, As(err, &ee))
	assert.Equal(t, CategoryFileIO, ee.Category)
}

func TestIsCategory(t *testing.T) {
	t.Parallel()

	notFound := Newf("gone").Category(CategoryNotFound).Build()
	assert.True(t, IsCategory(notFound, CategoryNotFound))
	assert.True(t, IsNotFound(notFound))
	assert.False(t, IsCategory(notFound, CategoryDatabase))
	assert.False(t, IsNotFound(NewStd("plain")))
}
