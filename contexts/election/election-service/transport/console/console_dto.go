package console

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type RegisterRequest struct {
	Name string `json:"name"`
}

type CandidateResponse struct {
	CandidateID int    `json:"candidate_id"`
	Name        string `json:"name"`
	Votes       int    `json:"votes"`
}

type VoterResponse struct {
	VoterID  int    `json:"voter_id"`
	Name     string `json:"name"`
	HasVoted bool   `json:"has_voted"`
}

type CastVoteRequest struct {
	CandidateID int `json:"candidate_id"`
	VoterID     int `json:"voter_id"`
}

type CastVoteResponse struct {
	Candidate CandidateResponse `json:"candidate"`
	Voter     VoterResponse     `json:"voter"`
}

type ResetResponse struct {
	Reset bool `json:"reset"`
}

type CandidateRow struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Votes int    `json:"votes"`
}

type CandidateTableResponse struct {
	Columns []string       `json:"columns"`
	Rows    []CandidateRow `json:"rows"`
}

type VoterRow struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	HasVoted string `json:"has_voted"`
}

type VoterTableResponse struct {
	Columns []string   `json:"columns"`
	Rows    []VoterRow `json:"rows"`
}

type ChoiceItem struct {
	ID      int    `json:"id"`
	Label   string `json:"label"`
	Display string `json:"display"`
}

type ChoicesResponse struct {
	Items []ChoiceItem `json:"items"`
}

type StandingItem struct {
	Rank        int     `json:"rank"`
	CandidateID int     `json:"candidate_id"`
	Name        string  `json:"name"`
	Votes       int     `json:"votes"`
	Share       float64 `json:"share"`
}

type StandingsResponse struct {
	Items []StandingItem `json:"items"`
}

type SummaryResponse struct {
	Candidates  int       `json:"candidates"`
	Voters      int       `json:"voters"`
	TotalVotes  int       `json:"total_votes"`
	VotersVoted int       `json:"voters_voted"`
	Turnout     float64   `json:"turnout"`
	Consistent  bool      `json:"consistent"`
	TakenAt     time.Time `json:"taken_at"`
}
