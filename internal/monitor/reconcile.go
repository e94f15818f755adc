package monitor

import "github.com/vitalyze/terminal/internal/domain"

// TransitionKind classifies a detected state transition between two
// consecutive server snapshots.
type TransitionKind int

const (
	// TradeExecuted fires when the team's trade count increased, once
	// per cycle no matter how many trades the server filled in between.
	TradeExecuted TransitionKind = iota
	// MarketEventStarted fires on an absent to present event change.
	MarketEventStarted
	// MarketEventEnded fires on a present to absent event change.
	MarketEventEnded
)

func (k TransitionKind) String() string {
	switch k {
	case TradeExecuted:
		return "trade_executed"
	case MarketEventStarted:
		return "market_event_started"
	case MarketEventEnded:
		return "market_event_ended"
	default:
		return "unknown"
	}
}

// Transition is one detected discrete change.
type Transition struct {
	Kind TransitionKind
	// Event carries the market event for started/ended transitions.
	Event *domain.MarketEvent
	// TradeCount carries the new total for trade transitions.
	TradeCount int
}

// Reconcile merges a freshly fetched tick/team pair into the previous
// view state and reports every transition the comparison reveals. The
// server is authoritative: team and tick are replaced wholesale, never
// merged field by field.
//
// A trade count lower than the last known one means the server was reset;
// that is resynchronized silently without emitting a transition.
func Reconcile(prev ViewState, tick *domain.MarketTick, team *domain.Team) (ViewState, []Transition) {
	var transitions []Transition

	next := prev.Clone()

	if team.TradesCount > prev.LastTradeCount {
		transitions = append(transitions, Transition{
			Kind:       TradeExecuted,
			TradeCount: team.TradesCount,
		})
	}
	next.LastTradeCount = team.TradesCount

	hadEvent := prev.LatestTick != nil && prev.LatestTick.ActiveEvent != nil
	hasEvent := tick.ActiveEvent != nil
	switch {
	case !hadEvent && hasEvent:
		transitions = append(transitions, Transition{
			Kind:  MarketEventStarted,
			Event: tick.ActiveEvent,
		})
	case hadEvent && !hasEvent:
		transitions = append(transitions, Transition{
			Kind:  MarketEventEnded,
			Event: prev.LatestTick.ActiveEvent,
		})
	}

	next.History.Append(PricePoint{Tick: tick.Tick, Price: tick.Price})
	next.Team = team
	next.LatestTick = tick

	return next, transitions
}
