package ports

import (
	"context"
	"time"

	"ballotbox/contexts/election/election-service/domain/entities"
)

// ElectionReader is the read side used by projections. Implementations must
// return copies so callers cannot bypass the use cases.
type ElectionReader interface {
	ListCandidates(ctx context.Context) ([]entities.Candidate, error)
	ListVoters(ctx context.Context) ([]entities.Voter, error)
	GetCandidate(ctx context.Context, candidateID int) (entities.Candidate, bool, error)
	GetVoter(ctx context.Context, voterID int) (entities.Voter, bool, error)
}

// ElectionTx is the write view handed to a unit of work. Writes become visible
// to other callers only when the unit of work commits.
type ElectionTx interface {
	Candidate(candidateID int) (entities.Candidate, bool)
	Voter(voterID int) (entities.Voter, bool)

	NextCandidateID() int
	NextVoterID() int
	AddCandidate(candidate entities.Candidate) error
	AddVoter(voter entities.Voter) error

	SaveCandidate(candidate entities.Candidate) error
	SaveVoter(voter entities.Voter) error

	ResetAllVotes()
	ResetAllVoters()
}

// UnitOfWork runs fn with exclusive write access. A non-nil error from fn
// discards every staged write.
type UnitOfWork interface {
	Atomically(ctx context.Context, fn func(tx ElectionTx) error) error
}

type Clock interface {
	Now() time.Time
}

type EntityKind string

const (
	EntityKindCandidate EntityKind = "candidate"
	EntityKindVoter     EntityKind = "voter"
)

// MetricsRecorder receives outcome counters from the use cases.
type MetricsRecorder interface {
	EntityRegistered(kind EntityKind)
	VoteCast()
	VoteRejected(reason string)
	ElectionReset()
}

// NopMetrics discards every observation.
type NopMetrics struct{}

func (NopMetrics) EntityRegistered(EntityKind) {}
func (NopMetrics) VoteCast()                   {}
func (NopMetrics) VoteRejected(string)         {}
func (NopMetrics) ElectionReset()              {}
