package entities

import "time"

// VoterState is the per-voter ballot state. NotVoted moves to Voted on a
// successful vote; only a global reset moves a voter back.
type VoterState string

const (
	VoterStateNotVoted VoterState = "not_voted"
	VoterStateVoted    VoterState = "voted"
)

type Voter struct {
	VoterID      int
	Name         string
	HasVoted     bool
	RegisteredAt time.Time
}

func (v Voter) EntityID() int {
	return v.VoterID
}

func (v Voter) State() VoterState {
	if v.HasVoted {
		return VoterStateVoted
	}
	return VoterStateNotVoted
}

// Cleared returns the voter with the has-voted flag lowered.
func (v Voter) Cleared() Voter {
	v.HasVoted = false
	return v
}

// WithBallot returns the voter marked as having voted.
func (v Voter) WithBallot() Voter {
	v.HasVoted = true
	return v
}
