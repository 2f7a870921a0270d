package league

// FreeAgent is the team code of a player without a current club.
const FreeAgent = "FA"

// PlayerRecord is one batter's season line.
type PlayerRecord struct {
	Name     string            `json:"name"` // canonical "Last, First"
	Team     string            `json:"team"`
	Position string            `json:"pos"`
	Stats    [NumStats]float64 `json:"stats"`
}

// Value returns the player's value for s, or 0 for an unknown stat.
func (p PlayerRecord) Value(s Stat) float64 {
	if !s.Valid() {
		return 0
	}
	return p.Stats[s]
}

// IsFreeAgent reports whether the player is unrostered.
func (p PlayerRecord) IsFreeAgent() bool { return p.Team == FreeAgent }
