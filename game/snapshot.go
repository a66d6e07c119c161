package game

import "github.com/lox/potlimit/poker"

// PlayerSnapshot is the public view of one seat.
type PlayerSnapshot struct {
	Name       string   `json:"name"`
	Seat       int      `json:"seat"`
	Stack      int      `json:"stack"`
	Position   string   `json:"position"`
	CurrentBet int      `json:"current_bet"`
	TotalBet   int      `json:"total_bet"`
	Folded     bool     `json:"folded"`
	AllIn      bool     `json:"all_in"`
	HoleCards  []string `json:"hole_cards,omitempty"`
}

// ActionSnapshot is a serialisable ActionRecord.
type ActionSnapshot struct {
	Street string `json:"street"`
	Player string `json:"player"`
	Action string `json:"action"`
	Amount int    `json:"amount"`
}

// Snapshot is a serialisable view of a hand for user interfaces and APIs.
type Snapshot struct {
	HandNumber int              `json:"hand_number"`
	Dealer     string           `json:"dealer"`
	Street     string           `json:"street"`
	Pot        int              `json:"pot"`
	CurrentBet int              `json:"current_bet"`
	Board      []string         `json:"community_cards"`
	Players    []PlayerSnapshot `json:"players"`
	ToAct      string           `json:"to_act,omitempty"`
	Actions    []ActionSnapshot `json:"action_history"`
	Winners    []string         `json:"winners,omitempty"`
	Complete   bool             `json:"is_complete"`
}

// Snapshot returns the hand as seen from viewer's seat. Hole cards are shown
// for the viewer and for every player who reached showdown. Pass -1 for a
// spectator view.
func (r *Round) Snapshot(viewer int) Snapshot {
	s := Snapshot{
		HandNumber: r.handNumber,
		Dealer:     r.players[r.dealer].Name,
		Street:     r.street.String(),
		Pot:        r.Pot(),
		CurrentBet: r.CurrentBet(),
		Board:      cardStrings(r.board),
		Complete:   r.IsComplete(),
	}
	for seat := range r.players {
		p := r.Player(seat)
		ps := PlayerSnapshot{
			Name:       p.Name,
			Seat:       seat,
			Stack:      p.Stack,
			Position:   r.Position(seat),
			CurrentBet: p.StreetBet,
			TotalBet:   p.TotalBet,
			Folded:     p.Folded,
			AllIn:      p.AllIn,
		}
		if seat == viewer || r.Revealed(seat) {
			ps.HoleCards = cardStrings(p.HoleCards)
		}
		s.Players = append(s.Players, ps)
	}
	if r.toAct >= 0 {
		s.ToAct = r.players[r.toAct].Name
	}
	for _, a := range r.history {
		s.Actions = append(s.Actions, ActionSnapshot{Street: a.Street.String(), Player: a.Name, Action: a.Kind, Amount: a.Total})
	}
	if res, ok := r.Result(); ok {
		s.Winners = r.names(res.Winners)
	}
	return s
}

func cardStrings(cards []poker.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}
