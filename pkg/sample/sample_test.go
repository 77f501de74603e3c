package sample

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "foo", New("foo").Name())
	assert.Equal(t, "", New("").Name())
}

func TestEqualIsIdentity(t *testing.T) {
	t.Parallel()

	a := New("foo")
	b := New("foo")

	assert.True(t, a.Equal(a))
	assert.False(t, a.Equal(b), "same name must not imply equality")
	assert.False(t, b.Equal(a))
	assert.False(t, a.Equal(nil))
}

func TestHashIsIdentity(t *testing.T) {
	t.Parallel()

	a := New("foo")
	b := New("foo")

	assert.Equal(t, a.Hash(), a.Hash())
	assert.NotEqual(t, a.Hash(), b.Hash())

	var nilSample *Sample
	assert.Zero(t, nilSample.Hash())
}

func TestSamplesAsMapKeys(t *testing.T) {
	t.Parallel()

	seen := map[*Sample]struct{}{}
	seen[New("foo")] = struct{}{}
	seen[New("foo")] = struct{}{}

	assert.Len(t, seen, 2)
}

func TestString(t *testing.T) {
	t.Parallel()

	s := New("foo")
	assert.Equal(t, "sample.Sample", s.String())
	assert.Equal(t, "sample.Sample", fmt.Sprint(s))
	assert.NotContains(t, s.String(), "foo")
}
