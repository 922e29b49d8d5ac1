package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromFloat(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   int64
	}{
		{"two decimals", 79.99, 7999},
		{"whole number", 80, 8000},
		{"rounds half up", 12.345, 1235},
		{"rounds down below half", 12.344, 1234},
		{"zero", 0, 0},
		{"negative", -5.50, -550},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromFloat(tt.amount).Cents)
		})
	}
}

func TestMoney_String(t *testing.T) {
	assert.Equal(t, "79.99", FromCents(7999).String())
	assert.Equal(t, "0.05", FromCents(5).String())
	assert.Equal(t, "-12.30", FromCents(-1230).String())
	assert.Equal(t, "0.00", FromCents(0).String())
}

func TestMoney_Arithmetic(t *testing.T) {
	assert.Equal(t, FromCents(150), FromCents(100).Add(FromCents(50)))
	assert.Equal(t, FromCents(-25), FromCents(25).Sub(FromCents(50)))
}

func TestMoney_Validate(t *testing.T) {
	assert.NoError(t, FromCents(1).Validate())
	assert.ErrorIs(t, FromCents(0).Validate(), ErrInvalidAmount)
	assert.ErrorIs(t, FromCents(-100).Validate(), ErrInvalidAmount)
}
