package overlay

import "testing"

func TestFormatTime(t *testing.T) {
	tests := []struct {
		ns   int64
		want string
	}{
		{0, "0.000"},
		{499, "0.000"},
		{500, "0.001"},
		{1_500_499, "1.500"},
		{999_500, "1.000"},
		{999_499, "0.999"},
		{12_345_678, "12.346"},
		{1_000_000_000, "1000.000"},
		{-1_500_499, "-1.500"},
		{-400, "0.000"},
		{-2_000_000, "-2.000"},
	}
	for _, tt := range tests {
		if got := FormatTime(tt.ns); got != tt.want {
			t.Errorf("FormatTime(%d) = %q, want %q", tt.ns, got, tt.want)
		}
	}
}

func TestFormatTime_Extremes(t *testing.T) {
	// Must not overflow or panic at the int64 limits
	if got := FormatTime(-9223372036854775808); got[0] != '-' {
		t.Errorf("expected negative output for MinInt64, got %q", got)
	}
	if got := FormatTime(9223372036854775807); got[0] == '-' {
		t.Errorf("expected positive output for MaxInt64, got %q", got)
	}
}

func TestMaxFPS(t *testing.T) {
	tests := []struct {
		grand  int64
		want   int64
		wantOK bool
		text   string
	}{
		{0, 0, false, FPSUnavailable},
		{-5, 0, false, FPSUnavailable},
		{1_000_000_000, 1, true, "1"},
		{16_666_667, 60, true, "60"},
		{3_000_000, 333, true, "333"},
		{1, 1_000_000_000, true, "1000000000"},
	}
	for _, tt := range tests {
		got, ok := MaxFPS(tt.grand)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("MaxFPS(%d) = (%d, %v), want (%d, %v)", tt.grand, got, ok, tt.want, tt.wantOK)
		}
		if text := FormatFPS(tt.grand); text != tt.text {
			t.Errorf("FormatFPS(%d) = %q, want %q", tt.grand, text, tt.text)
		}
	}
}
