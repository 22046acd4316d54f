package sale

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateEncoding(t *testing.T) {
	// The integer values are a storage contract.
	assert.EqualValues(t, 0, StatePending)
	assert.EqualValues(t, 1, StateCompleted)
	assert.EqualValues(t, 2, StateVoided)
}

func TestStateValid(t *testing.T) {
	assert.True(t, StatePending.Valid())
	assert.True(t, StateCompleted.Valid())
	assert.True(t, StateVoided.Valid())
	assert.False(t, State(3).Valid())
	assert.False(t, State(-1).Valid())
}

func TestStateHoldsStock(t *testing.T) {
	assert.True(t, StatePending.HoldsStock())
	assert.True(t, StateCompleted.HoldsStock())
	assert.False(t, StateVoided.HoldsStock())
}

func TestStockEffect(t *testing.T) {
	tests := []struct {
		from, to State
		want     int64
	}{
		{StatePending, StateCompleted, 0},
		{StateCompleted, StatePending, 0},
		{StatePending, StateVoided, 1},
		{StateCompleted, StateVoided, 1},
		{StateVoided, StatePending, -1},
		{StateVoided, StateCompleted, -1},
		{StatePending, StatePending, 0},
		{StateVoided, StateVoided, 0},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"_to_"+tt.to.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, stockEffect(tt.from, tt.to))
		})
	}
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "pending", StatePending.String())
	assert.Equal(t, "completed", StateCompleted.String())
	assert.Equal(t, "voided", StateVoided.String())
	assert.Equal(t, "unknown(9)", State(9).String())
}
