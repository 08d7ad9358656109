package keeper

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWindowPassed(t *testing.T) {
	passed, elapsed, err := windowPassed(20, 10, 10)
	require.NoError(t, err)
	require.False(t, passed)
	require.Equal(t, uint64(10), elapsed)

	passed, _, err = windowPassed(21, 10, 10)
	require.NoError(t, err)
	require.True(t, passed)

	_, _, err = windowPassed(5, 10, 1)
	require.Error(t, err)
}

func TestAddInt64AndU64Checked(t *testing.T) {
	got, err := addInt64AndU64Checked(5, 7, "x")
	require.NoError(t, err)
	require.Equal(t, int64(12), got)

	_, err = addInt64AndU64Checked(math.MaxInt64, 1, "x")
	require.Error(t, err)
	_, err = addInt64AndU64Checked(0, math.MaxUint64, "x")
	require.Error(t, err)
}
