package component

import (
	"strings"
	"testing"

	"github.com/vitalyze/terminal/internal/domain"
)

func TestSparklineKeepsMostRecentPoints(t *testing.T) {
	s := NewSparkline(3)
	s.SetData([]float64{440, 445, 450, 455, 460})

	out := s.View()
	if n := len([]rune(stripANSI(out))); n != 3 {
		t.Fatalf("rendered %d blocks, want 3 (%q)", n, out)
	}
	// The highest value is last, so the rightmost block is the tallest.
	runes := []rune(stripANSI(out))
	if runes[len(runes)-1] != '█' {
		t.Errorf("rightmost block = %q, want full block", runes[len(runes)-1])
	}
}

func TestSparklineFlatSeries(t *testing.T) {
	s := NewSparkline(5)
	s.SetData([]float64{450, 450, 450})

	out := stripANSI(s.View())
	for _, r := range out {
		if r != '▁' {
			t.Fatalf("flat series rendered %q, want all low blocks", out)
		}
	}
}

func TestSparklineEmpty(t *testing.T) {
	s := NewSparkline(4)
	out := stripANSI(s.View())
	if out != "▁▁▁▁" {
		t.Errorf("empty sparkline = %q", out)
	}
}

func TestEventBannerStates(t *testing.T) {
	b := NewEventBanner().SetWidth(60)

	stable := b.View(nil)
	if !strings.Contains(stable, "MARKET STABLE") {
		t.Errorf("stable banner = %q", stable)
	}

	active := b.View(&domain.MarketEvent{
		Description: "Severe drought in the Midwest",
		Remaining:   7,
	})
	if !strings.Contains(active, "Severe drought in the Midwest") ||
		!strings.Contains(active, "7 ticks remaining") {
		t.Errorf("active banner = %q", active)
	}
}

// stripANSI removes escape sequences so tests can compare plain runes.
func stripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if r == 'm' {
				inEscape = false
			}
		case r == '\x1b':
			inEscape = true
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
