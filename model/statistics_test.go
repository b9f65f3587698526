package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_CompletionRate(t *testing.T) {
	require.Equal(t, 0, CompletionRate(0, 0))
	require.Equal(t, 30, CompletionRate(3, 10))
	require.Equal(t, 100, CompletionRate(10, 10))
	require.Equal(t, 33, CompletionRate(1, 3))
	require.Equal(t, 67, CompletionRate(2, 3))
}

func Test_DecrementFloorsAtZero(t *testing.T) {
	n := 1
	decrement(&n)
	decrement(&n)
	require.Equal(t, 0, n)

	var size int64 = 10
	decrementSize(&size, 25)
	require.Equal(t, int64(0), size)
}
