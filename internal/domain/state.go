package domain

type State string

const (
	StateCreated               State = "created"
	StateOrganiserApproved     State = "organiser_approved"
	StatePendingArtistApproval State = "pending_artist_approval"
	StatePreSale               State = "presale"
	StateGeneralSale           State = "general_sale"
	StateSoldOut               State = "sold_out"
	StateLive                  State = "live"
	StateSettled               State = "settled"
	StateCancelled             State = "cancelled"
)

// rank orders the main line of the lifecycle. Cancelled sits outside it.
var rank = map[State]int{
	StateCreated:               0,
	StateOrganiserApproved:     1,
	StatePendingArtistApproval: 2,
	StatePreSale:               3,
	StateGeneralSale:           4,
	StateSoldOut:               5,
	StateLive:                  6,
	StateSettled:               7,
}

// edges is the complete transition graph.
var edges = map[State][]State{
	StateCreated:               {StateOrganiserApproved, StateCancelled},
	StateOrganiserApproved:     {StatePendingArtistApproval, StateCancelled},
	StatePendingArtistApproval: {StatePreSale, StateGeneralSale, StateCancelled},
	StatePreSale:               {StateGeneralSale, StateCancelled},
	StateGeneralSale:           {StateSoldOut, StateCancelled},
	StateSoldOut:               {StateLive, StateCancelled},
	StateLive:                  {StateSettled},
}

// organiserEdges are the transitions an organiser may request by hand.
var organiserEdges = map[State][]State{
	StateCreated:               {StateCancelled},
	StateOrganiserApproved:     {StateCancelled},
	StatePendingArtistApproval: {StateCancelled},
	StatePreSale:               {StateGeneralSale, StateCancelled},
	StateGeneralSale:           {StateSoldOut, StateCancelled},
	StateSoldOut:               {StateLive, StateCancelled},
}

func ParseState(s string) (State, bool) {
	st := State(s)
	if st == StateCancelled {
		return st, true
	}
	_, ok := rank[st]
	return st, ok
}

// CanAdvance reports whether from -> to is an edge of the lifecycle graph.
func CanAdvance(from, to State) bool {
	return contains(edges[from], to)
}

// OrganiserMayMove reports whether an organiser may request from -> to.
func OrganiserMayMove(from, to State) bool {
	return contains(organiserEdges[from], to)
}

// IsPreLive reports whether s comes before Live on the main line.
func (s State) IsPreLive() bool {
	r, ok := rank[s]
	return ok && r < rank[StateLive]
}

func (s State) IsTerminal() bool {
	return s == StateSettled || s == StateCancelled
}

func (s State) SaleOpen() bool {
	return s == StatePreSale || s == StateGeneralSale
}

func contains(states []State, s State) bool {
	for _, st := range states {
		if st == s {
			return true
		}
	}
	return false
}
