package domain

// MarketTick is one server-emitted market sample. The server assigns a
// monotonic tick number; a tick is superseded by any later tick whose
// number is greater or equal.
type MarketTick struct {
	Tick        int64        `json:"tick"`
	Price       float64      `json:"price"`
	Volatility  float64      `json:"volatility"`
	Sentiment   float64      `json:"sentiment"`
	Timestamp   float64      `json:"timestamp"`
	ActiveEvent *MarketEvent `json:"active_event,omitempty"`
}

// MarketEvent is a transient market condition attached to a tick. Its
// presence or absence across consecutive ticks is what signals
// event-lifecycle transitions; Remaining alone changing is not one.
type MarketEvent struct {
	Type        string             `json:"type"`
	Description string             `json:"description"`
	Effect      map[string]float64 `json:"effect,omitempty"`
	Duration    int                `json:"duration"`
	Remaining   int                `json:"remaining"`
}

// NewsItem is a headline from the simulated news wire, consumed by the
// news widget outside the sync core.
type NewsItem struct {
	ID        int64   `json:"id"`
	Title     string  `json:"title"`
	Sentiment string  `json:"sentiment"` // positive, negative, neutral
	Impact    float64 `json:"impact"`
	Timestamp string  `json:"timestamp"`
}

// LeaderboardEntry is one ranked row of the game leaderboard.
type LeaderboardEntry struct {
	TeamName          string  `json:"team_name"`
	PnL               float64 `json:"pnl"`
	SharpeRatio       float64 `json:"sharpe_ratio"`
	AdaptabilityScore float64 `json:"adaptability_score"`
	Rank              int     `json:"rank"`
}
