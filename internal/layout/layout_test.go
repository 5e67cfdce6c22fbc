package layout

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	require.Equal(t, Layout{Size: 1, Align: 1}, New(8))
	require.Equal(t, Layout{Size: 4, Align: 4}, New(32))
	require.Equal(t, Layout{Size: 32, Align: 32}, New(252))
	require.Equal(t, Layout{Size: 31, Align: 32}, New(248))
}

func TestExtend(t *testing.T) {
	// struct C { a: u8, b: u16 } -> offset(b) = 2, size = 4, align = 2.
	a := New(8)
	b := New(16)
	combined, offset, err := a.Extend(b)
	require.NoError(t, err)
	require.Equal(t, uint64(2), offset)
	require.Equal(t, Layout{Size: 4, Align: 2}, combined.PadToAlign())
}

func TestExtendDifferentOrder(t *testing.T) {
	// struct D { a: u16, b: u8 } -> size padded to 4, align = 2.
	a := New(16)
	b := New(8)
	combined, offset, err := a.Extend(b)
	require.NoError(t, err)
	require.Equal(t, uint64(2), offset)
	require.Equal(t, Layout{Size: 4, Align: 2}, combined.PadToAlign())
}

func TestRepeatZero(t *testing.T) {
	l, err := Repeat(New(64), 0)
	require.NoError(t, err)
	require.Equal(t, Unit(), l)
}

func TestRepeatEcPoint(t *testing.T) {
	// EcPoint = 2 x felt252.
	l, err := Repeat(New(252), 2)
	require.NoError(t, err)
	require.Equal(t, Layout{Size: 64, Align: 32}, l)
}

func TestPadToAlignIdempotent(t *testing.T) {
	l := Layout{Size: 3, Align: 4}
	padded := l.PadToAlign()
	require.Equal(t, padded, padded.PadToAlign())
}

func TestArrayLayout(t *testing.T) {
	// Array = {ptr, i32, i32, i32} -> (24, 8) on 64-bit targets.
	l, _, err := Pointer().Extend(New(32))
	require.NoError(t, err)
	l, _, err = l.Extend(New(32))
	require.NoError(t, err)
	l, _, err = l.Extend(New(32))
	require.NoError(t, err)
	require.Equal(t, Layout{Size: 24, Align: 8}, l.PadToAlign())
}

func TestExtendOverflow(t *testing.T) {
	huge := Layout{Size: ^uint64(0), Align: 1}
	_, _, err := huge.Extend(New(8))
	require.ErrorIs(t, err, ErrOverflow)
}

func TestRepeatOverflow(t *testing.T) {
	huge := Layout{Size: 1 << 63, Align: 1}
	_, err := Repeat(huge, 4)
	require.ErrorIs(t, err, ErrOverflow)
}
