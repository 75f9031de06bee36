package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultProductsAreWellFormed(t *testing.T) {
	products := defaultProducts()
	require.Len(t, products, 3)

	for _, p := range products {
		assert.NotEmpty(t, p.Name)
		assert.Greater(t, p.Price, float64(0), p.Name)
		assert.Greater(t, p.Quantity, 0, p.Name)
		assert.True(t, p.IsAvailable, p.Name)
		require.NotNil(t, p.Category, p.Name)
		assert.NotEmpty(t, *p.Category, p.Name)
	}
}
