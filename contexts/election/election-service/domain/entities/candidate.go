package entities

import "time"

// Candidate is an entity that can receive votes. Votes is only mutated by the
// election use case.
type Candidate struct {
	CandidateID  int
	Name         string
	Votes        int
	RegisteredAt time.Time
}

func (c Candidate) EntityID() int {
	return c.CandidateID
}

// Cleared returns the candidate with its tally zeroed.
func (c Candidate) Cleared() Candidate {
	c.Votes = 0
	return c
}

// WithVote returns the candidate with one more vote.
func (c Candidate) WithVote() Candidate {
	c.Votes++
	return c
}
