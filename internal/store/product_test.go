package store

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecreaseStock(t *testing.T) {
	t.Parallel()

	p := Product{ID: "A", Stock: 10}

	require.NoError(t, p.DecreaseStock(4))
	require.Equal(t, 6, p.Stock)

	require.ErrorIs(t, p.DecreaseStock(7), ErrInsufficientStock)
	require.Equal(t, 6, p.Stock)

	require.ErrorIs(t, p.DecreaseStock(0), ErrInsufficientStock)
	require.ErrorIs(t, p.DecreaseStock(-3), ErrInsufficientStock)
	require.Equal(t, 6, p.Stock)
}

func TestIncreaseStock(t *testing.T) {
	t.Parallel()

	p := Product{ID: "A", Stock: 6}
	p.IncreaseStock(4)
	require.Equal(t, 10, p.Stock)

	// non-positive is a no-op, never an error
	p.IncreaseStock(0)
	p.IncreaseStock(-5)
	require.Equal(t, 10, p.Stock)
}
