package gascost

import (
	"testing"

	"github.com/hakymulla/cairo-native/internal/sierra"
	"github.com/stretchr/testify/require"
)

func TestComputeWithNilConfigDefaultsCostOne(t *testing.T) {
	program := &sierra.Program{
		LibfuncDeclarations: []sierra.LibfuncDeclaration{{Id: "felt252_add"}, {Id: "store_temp"}},
		Functions:           []sierra.FunctionId{"main"},
	}
	meta, err := Compute(program, nil)
	require.NoError(t, err)
	require.Equal(t, uint64(2), meta.FunctionCosts["main"])
}

func TestComputeHonorsCostOverrides(t *testing.T) {
	program := &sierra.Program{
		LibfuncDeclarations: []sierra.LibfuncDeclaration{{Id: "felt252_add"}, {Id: "pedersen"}},
		Functions:           []sierra.FunctionId{"main"},
	}
	cfg := &Config{DefaultCost: 1, CostOverrides: map[string]uint64{"pedersen": 10}}
	meta, err := Compute(program, cfg)
	require.NoError(t, err)
	require.Equal(t, uint64(11), meta.FunctionCosts["main"])
}

func TestComputeEmptyProgram(t *testing.T) {
	meta, err := Compute(&sierra.Program{}, nil)
	require.NoError(t, err)
	require.Empty(t, meta.FunctionCosts)
}
