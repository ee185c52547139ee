package node

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateTokens(t *testing.T) {
	assert.Equal(t, 0, EstimateTokens(""))
	assert.Equal(t, 1, EstimateTokens("a"))
	assert.Equal(t, 1, EstimateTokens("abcd"))
	assert.Equal(t, 2, EstimateTokens("abcde"))
	assert.Equal(t, 2, EstimateTokens("ação açã"))
}

func TestEstimateTokens_Monotonic(t *testing.T) {
	prev := 0
	for i := 0; i < 64; i++ {
		n := EstimateTokens(strings.Repeat("é", i))
		assert.GreaterOrEqual(t, n, prev)
		prev = n
	}
}
