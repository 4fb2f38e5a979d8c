package components

import "testing"

func TestLifetimeFraction(t *testing.T) {
	tests := []struct {
		life Lifetime
		want float32
	}{
		{Lifetime{Remaining: 5, Total: 10}, 0.5},
		{Lifetime{Remaining: 12, Total: 10}, 1},
		{Lifetime{Remaining: -1, Total: 10}, 0},
		{Lifetime{Remaining: 3, Total: 0}, 0},
	}
	for _, tt := range tests {
		if got := tt.life.Fraction(); got != tt.want {
			t.Errorf("%+v: expected %v, got %v", tt.life, tt.want, got)
		}
	}
}
