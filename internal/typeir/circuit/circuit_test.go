package circuit

import (
	"testing"

	"github.com/hakymulla/cairo-native/internal/layout"
	"github.com/stretchr/testify/require"
)

func TestAddModMulModAreBuiltinCounters(t *testing.T) {
	require.True(t, IsBuiltin(CategoryAddMod))
	require.True(t, IsBuiltin(CategoryMulMod))
	require.False(t, IsBuiltin(CategoryOther))

	require.Equal(t, layout.New(64), Layout(CategoryAddMod))
	require.Equal(t, layout.New(64), Layout(CategoryMulMod))
}

func TestOtherCircuitFamilyIsAnOpaquePointer(t *testing.T) {
	require.Equal(t, layout.Pointer(), Layout(CategoryOther))
	require.False(t, IsZST(CategoryOther))
	require.False(t, IsComplex(CategoryOther))
}

func TestNoCircuitCategoryIsZSTOrComplex(t *testing.T) {
	for _, cat := range []Category{CategoryAddMod, CategoryMulMod, CategoryOther} {
		require.False(t, IsZST(cat))
		require.False(t, IsComplex(cat))
	}
}
