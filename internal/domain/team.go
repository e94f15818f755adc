package domain

// InitialBalance is the fixed starting balance the game assigns to every
// team at creation.
const InitialBalance = 100000.0

// StrategyType identifies the algorithm the server runs for a team.
type StrategyType string

const (
	StrategyMomentum      StrategyType = "momentum"
	StrategyMeanReversion StrategyType = "mean_reversion"
	StrategyNewsFollower  StrategyType = "news_follower"
	StrategyHedger        StrategyType = "hedger"
)

// StrategyTypes lists all selectable strategies in display order.
func StrategyTypes() []StrategyType {
	return []StrategyType{
		StrategyMomentum,
		StrategyMeanReversion,
		StrategyNewsFollower,
		StrategyHedger,
	}
}

// StrategyParams are the tunables sent alongside the strategy type. The
// ranges are enforced by the input widgets; the server is the source of
// truth once a submission is accepted.
type StrategyParams struct {
	RiskLevel      float64 `json:"risk_level"`      // 0.1 .. 5.0
	EntryThreshold float64 `json:"entry_threshold"` // 0.5 .. 10.0
	StopLoss       float64 `json:"stop_loss"`       // 1.0 .. 20.0
	TakeProfit     float64 `json:"take_profit"`     // 2.0 .. 50.0
}

// DefaultStrategyParams returns the parameters a fresh team starts with.
func DefaultStrategyParams() StrategyParams {
	return StrategyParams{
		RiskLevel:      1.0,
		EntryThreshold: 2.0,
		StopLoss:       5.0,
		TakeProfit:     10.0,
	}
}

// PositionType marks the direction of an open stake.
type PositionType string

const (
	PositionLong  PositionType = "long"
	PositionShort PositionType = "short"
)

// Position is an open long/short stake in the traded asset. Positions are
// owned exclusively by their team and never shared.
type Position struct {
	Asset      string       `json:"asset"`
	Quantity   float64      `json:"quantity"`
	EntryPrice float64      `json:"entry_price"`
	Type       PositionType `json:"position_type"`
}

// SignedQuantity returns the quantity with direction applied: positive for
// long positions, negative for short.
func (p Position) SignedQuantity() float64 {
	if p.Type == PositionShort {
		return -p.Quantity
	}
	return p.Quantity
}

// Team is the server-authoritative portfolio snapshot. The ID is assigned
// at creation and is the only key used for subsequent fetches.
type Team struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Balance     float64        `json:"balance"`
	Positions   []Position     `json:"positions"`
	Strategy    StrategyType   `json:"strategy"`
	Params      StrategyParams `json:"parameters"`
	PnLHistory  []float64      `json:"pnl_history,omitempty"`
	TradesCount int            `json:"trades_count"`
}
