package entities

import "time"

const (
	HasVotedYes = "Yes"
	HasVotedNo  = "No"
)

// HasVotedLabel renders the two-valued has-voted column.
func HasVotedLabel(hasVoted bool) string {
	if hasVoted {
		return HasVotedYes
	}
	return HasVotedNo
}

type CandidateRow struct {
	ID    int
	Name  string
	Votes int
}

type VoterRow struct {
	ID       int
	Name     string
	HasVoted string
}

// Choice is one selectable entry. Label is stable for the entity's lifetime and
// resolves back to ID; Display carries the mutable detail for rendering.
type Choice struct {
	ID      int
	Label   string
	Display string
}

type Standing struct {
	Rank        int
	CandidateID int
	Name        string
	Votes       int
	Share       float64
}

type ElectionSummary struct {
	Candidates  int
	Voters      int
	TotalVotes  int
	VotersVoted int
	Turnout     float64
	TakenAt     time.Time
}

// Consistent reports whether the tally matches the number of voters who voted.
func (s ElectionSummary) Consistent() bool {
	return s.TotalVotes == s.VotersVoted
}
