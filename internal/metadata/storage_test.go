package metadata

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type runtimeBindings struct {
	registered []string
}

type gasMetadata struct {
	costs map[string]uint64
}

func TestInsertGet(t *testing.T) {
	s := New()
	require.True(t, Insert(s, &runtimeBindings{}))

	got, ok := Get[*runtimeBindings](s)
	require.True(t, ok)
	require.NotNil(t, got)
}

func TestInsertIdempotentOrRefuses(t *testing.T) {
	s := New()
	first := &runtimeBindings{registered: []string{"alloc"}}
	require.True(t, Insert(s, first))

	second := &runtimeBindings{registered: []string{"dict_new"}}
	require.False(t, Insert(s, second))

	got, ok := Get[*runtimeBindings](s)
	require.True(t, ok)
	require.Same(t, first, got)
	require.NotSame(t, second, got)
}

func TestGetAbsent(t *testing.T) {
	s := New()
	_, ok := Get[*gasMetadata](s)
	require.False(t, ok)
}

func TestDistinctKinds(t *testing.T) {
	s := New()
	require.True(t, Insert(s, &runtimeBindings{}))
	require.True(t, Insert(s, &gasMetadata{costs: map[string]uint64{"step": 1}}))

	_, ok := Get[*runtimeBindings](s)
	require.True(t, ok)
	gm, ok := Get[*gasMetadata](s)
	require.True(t, ok)
	require.Equal(t, uint64(1), gm.costs["step"])
}

func TestGetMutSharesUnderlyingValue(t *testing.T) {
	s := New()
	Insert(s, &runtimeBindings{})

	bindings, ok := GetMut[*runtimeBindings](s)
	require.True(t, ok)
	bindings.registered = append(bindings.registered, "dict_alloc_new")

	again, ok := Get[*runtimeBindings](s)
	require.True(t, ok)
	require.Equal(t, []string{"dict_alloc_new"}, again.registered)
}
