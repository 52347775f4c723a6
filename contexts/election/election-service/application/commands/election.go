package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	application "ballotbox/contexts/election/election-service/application"
	"ballotbox/contexts/election/election-service/domain/entities"
	domainerrors "ballotbox/contexts/election/election-service/domain/errors"
	"ballotbox/contexts/election/election-service/ports"
)

const moduleName = "election/election-service"

type RegisterCandidateCommand struct {
	Name string
}

type RegisterVoterCommand struct {
	Name string
}

// CastVoteCommand references both parties by identifier; they are resolved
// through the store, never taken from the caller as values.
type CastVoteCommand struct {
	CandidateID int
	VoterID     int
}

// CastVoteResult carries the committed state of both parties.
type CastVoteResult struct {
	Candidate entities.Candidate
	Voter     entities.Voter
}

// ElectionUseCase enforces the election invariant: the sum of candidate tallies
// always equals the number of voters who have voted.
type ElectionUseCase struct {
	Election ports.UnitOfWork
	Clock    ports.Clock
	Metrics  ports.MetricsRecorder
	Logger   *slog.Logger
}

func (uc ElectionUseCase) RegisterCandidate(ctx context.Context, cmd RegisterCandidateCommand) (entities.Candidate, error) {
	logger := application.ResolveLogger(uc.Logger)
	name := strings.TrimSpace(cmd.Name)
	logger.Info("candidate registration started",
		"event", "election_candidate_register_started",
		"module", moduleName,
		"layer", "application",
		"name", name,
	)
	if name == "" {
		logger.Warn("candidate registration validation failed",
			"event", "election_candidate_register_validation_failed",
			"module", moduleName,
			"layer", "application",
		)
		return entities.Candidate{}, fmt.Errorf("%w: candidate name cannot be empty", domainerrors.ErrValidation)
	}

	var candidate entities.Candidate
	err := uc.Election.Atomically(ctx, func(tx ports.ElectionTx) error {
		candidate = entities.Candidate{
			CandidateID:  tx.NextCandidateID(),
			Name:         name,
			RegisteredAt: uc.now(),
		}
		return tx.AddCandidate(candidate)
	})
	if err != nil {
		logger.Error("candidate registration failed",
			"event", "election_candidate_register_failed",
			"module", moduleName,
			"layer", "application",
			"name", name,
			"error", err.Error(),
		)
		return entities.Candidate{}, err
	}

	application.ResolveMetrics(uc.Metrics).EntityRegistered(ports.EntityKindCandidate)
	logger.Info("candidate registered",
		"event", "election_candidate_registered",
		"module", moduleName,
		"layer", "application",
		"candidate_id", candidate.CandidateID,
		"name", candidate.Name,
	)
	return candidate, nil
}

func (uc ElectionUseCase) RegisterVoter(ctx context.Context, cmd RegisterVoterCommand) (entities.Voter, error) {
	logger := application.ResolveLogger(uc.Logger)
	name := strings.TrimSpace(cmd.Name)
	logger.Info("voter registration started",
		"event", "election_voter_register_started",
		"module", moduleName,
		"layer", "application",
		"name", name,
	)
	if name == "" {
		logger.Warn("voter registration validation failed",
			"event", "election_voter_register_validation_failed",
			"module", moduleName,
			"layer", "application",
		)
		return entities.Voter{}, fmt.Errorf("%w: voter name cannot be empty", domainerrors.ErrValidation)
	}

	var voter entities.Voter
	err := uc.Election.Atomically(ctx, func(tx ports.ElectionTx) error {
		voter = entities.Voter{
			VoterID:      tx.NextVoterID(),
			Name:         name,
			RegisteredAt: uc.now(),
		}
		return tx.AddVoter(voter)
	})
	if err != nil {
		logger.Error("voter registration failed",
			"event", "election_voter_register_failed",
			"module", moduleName,
			"layer", "application",
			"name", name,
			"error", err.Error(),
		)
		return entities.Voter{}, err
	}

	application.ResolveMetrics(uc.Metrics).EntityRegistered(ports.EntityKindVoter)
	logger.Info("voter registered",
		"event", "election_voter_registered",
		"module", moduleName,
		"layer", "application",
		"voter_id", voter.VoterID,
		"name", voter.Name,
	)
	return voter, nil
}

// CastVote increments the candidate tally and marks the voter in one unit of
// work. Rejections leave the store untouched.
func (uc ElectionUseCase) CastVote(ctx context.Context, cmd CastVoteCommand) (CastVoteResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	metrics := application.ResolveMetrics(uc.Metrics)
	logger.Info("vote cast processing started",
		"event", "election_vote_cast_started",
		"module", moduleName,
		"layer", "application",
		"candidate_id", cmd.CandidateID,
		"voter_id", cmd.VoterID,
	)

	var result CastVoteResult
	err := uc.Election.Atomically(ctx, func(tx ports.ElectionTx) error {
		candidate, candidateFound := tx.Candidate(cmd.CandidateID)
		voter, voterFound := tx.Voter(cmd.VoterID)
		if !candidateFound || !voterFound {
			return fmt.Errorf("%w: candidate %d found=%t, voter %d found=%t",
				domainerrors.ErrSelectionMissing,
				cmd.CandidateID, candidateFound,
				cmd.VoterID, voterFound,
			)
		}
		if voter.HasVoted {
			// Name is kept for callers that surface "<name> has already voted!".
			result.Voter = voter
			return fmt.Errorf("%w: %s", domainerrors.ErrAlreadyVoted, voter.Name)
		}

		candidate = candidate.WithVote()
		voter = voter.WithBallot()
		if err := tx.SaveCandidate(candidate); err != nil {
			return err
		}
		if err := tx.SaveVoter(voter); err != nil {
			return err
		}
		result = CastVoteResult{Candidate: candidate, Voter: voter}
		return nil
	})
	if err != nil {
		kind := domainerrors.KindOf(err)
		metrics.VoteRejected(string(kind))
		logger.Warn("vote cast rejected",
			"event", "election_vote_cast_rejected",
			"module", moduleName,
			"layer", "application",
			"candidate_id", cmd.CandidateID,
			"voter_id", cmd.VoterID,
			"reason", string(kind),
			"error", err.Error(),
		)
		return CastVoteResult{Voter: result.Voter}, err
	}

	metrics.VoteCast()
	logger.Info("vote cast",
		"event", "election_vote_cast",
		"module", moduleName,
		"layer", "application",
		"candidate_id", result.Candidate.CandidateID,
		"voter_id", result.Voter.VoterID,
		"candidate_votes", result.Candidate.Votes,
	)
	return result, nil
}

// ResetElection zeroes every tally and lowers every has-voted flag.
// Identifiers, names and the identifier sequences are untouched. Confirming
// intent is the caller's job.
func (uc ElectionUseCase) ResetElection(ctx context.Context) error {
	logger := application.ResolveLogger(uc.Logger)
	logger.Info("election reset started",
		"event", "election_reset_started",
		"module", moduleName,
		"layer", "application",
	)
	err := uc.Election.Atomically(ctx, func(tx ports.ElectionTx) error {
		tx.ResetAllVotes()
		tx.ResetAllVoters()
		return nil
	})
	if err != nil {
		logger.Error("election reset failed",
			"event", "election_reset_failed",
			"module", moduleName,
			"layer", "application",
			"error", err.Error(),
		)
		return err
	}

	application.ResolveMetrics(uc.Metrics).ElectionReset()
	logger.Info("election reset",
		"event", "election_reset",
		"module", moduleName,
		"layer", "application",
	)
	return nil
}

func (uc ElectionUseCase) now() time.Time {
	now := time.Now().UTC()
	if uc.Clock != nil {
		now = uc.Clock.Now().UTC()
	}
	return now
}
