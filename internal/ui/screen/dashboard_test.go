package screen

import "testing"

func TestSentimentLabel(t *testing.T) {
	cases := []struct {
		value float64
		want  string
	}{
		{0.5, "BULLISH"},
		{0.03, "BULLISH"},
		{0.02, "NEUTRAL"},
		{0, "NEUTRAL"},
		{-0.02, "NEUTRAL"},
		{-0.03, "BEARISH"},
		{-0.8, "BEARISH"},
	}
	for _, tc := range cases {
		if got := sentimentLabel(tc.value); got != tc.want {
			t.Errorf("sentimentLabel(%v) = %q, want %q", tc.value, got, tc.want)
		}
	}
}
