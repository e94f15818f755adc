package monitor

import "github.com/vitalyze/terminal/internal/domain"

// Pure mark-to-market calculators. These are recomputed on every render
// from the current snapshot and never cached, since both inputs change on
// every poll cycle. A missing price is treated as zero for display
// purposes only.

// UnrealizedPnL returns the mark-to-market profit of a single open
// position at the given price.
func UnrealizedPnL(pos domain.Position, currentPrice float64) float64 {
	return (currentPrice - pos.EntryPrice) * pos.SignedQuantity()
}

// Equity returns cash balance plus the mark-to-market value of all open
// positions.
func Equity(team *domain.Team, currentPrice float64) float64 {
	if team == nil {
		return 0
	}
	equity := team.Balance
	for _, pos := range team.Positions {
		equity += UnrealizedPnL(pos, currentPrice)
	}
	return equity
}

// SessionPnL returns equity relative to the fixed starting balance every
// team is created with.
func SessionPnL(team *domain.Team, currentPrice float64) float64 {
	if team == nil {
		return 0
	}
	return Equity(team, currentPrice) - domain.InitialBalance
}
