package delivery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFee_KnownState(t *testing.T) {
	fee, ok := Fee("Lagos")
	assert.True(t, ok)
	assert.Equal(t, 500.0, fee)
}

func TestFee_UnknownState(t *testing.T) {
	_, ok := Fee("Atlantis")
	assert.False(t, ok)
}

func TestFeeForQuantity(t *testing.T) {
	// 配送料は商品点数ごとに掛ける
	fee, ok := FeeForQuantity("Lagos", 2)
	assert.True(t, ok)
	assert.Equal(t, 1000.0, fee)

	_, ok = FeeForQuantity("Atlantis", 2)
	assert.False(t, ok)
}

func TestStates_SortedAndComplete(t *testing.T) {
	states := States()
	assert.Len(t, states, 36)
	assert.Equal(t, "Abia", states[0])

	for i := 1; i < len(states); i++ {
		assert.Less(t, states[i-1], states[i])
	}
}
