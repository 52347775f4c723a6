package memory

import (
	"context"
	"errors"
	"testing"

	"ballotbox/contexts/election/election-service/domain/entities"
	domainerrors "ballotbox/contexts/election/election-service/domain/errors"
	"ballotbox/contexts/election/election-service/ports"

	"github.com/stretchr/testify/assert"
)

func seedStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore()
	err := store.Atomically(context.Background(), func(tx ports.ElectionTx) error {
		for _, name := range []string{"Alice", "Bob"} {
			if err := tx.AddCandidate(entities.Candidate{CandidateID: tx.NextCandidateID(), Name: name}); err != nil {
				return err
			}
		}
		return tx.AddVoter(entities.Voter{VoterID: tx.NextVoterID(), Name: "Carol"})
	})
	assert.NoError(t, err)
	return store
}

func TestStoreAtomically(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	errBoom := errors.New("boom")

	t.Run("commits_staged_writes", func(t *testing.T) {
		store := seedStore(t)
		candidates, _ := store.ListCandidates(ctx)
		voters, _ := store.ListVoters(ctx)
		assert.Len(candidates, 2)
		assert.Len(voters, 1)
		assert.Equal("Alice", candidates[0].Name)
		assert.Equal(2, candidates[1].CandidateID)
	})

	t.Run("discards_writes_on_error", func(t *testing.T) {
		store := seedStore(t)
		err := store.Atomically(ctx, func(tx ports.ElectionTx) error {
			alice, _ := tx.Candidate(1)
			if err := tx.SaveCandidate(alice.WithVote()); err != nil {
				return err
			}
			carol, _ := tx.Voter(1)
			if err := tx.SaveVoter(carol.WithBallot()); err != nil {
				return err
			}
			if err := tx.AddVoter(entities.Voter{VoterID: tx.NextVoterID(), Name: "Dave"}); err != nil {
				return err
			}
			return errBoom
		})
		assert.ErrorIs(err, errBoom)

		alice, _, _ := store.GetCandidate(ctx, 1)
		carol, _, _ := store.GetVoter(ctx, 1)
		voters, _ := store.ListVoters(ctx)
		assert.Equal(0, alice.Votes)
		assert.False(carol.HasVoted)
		assert.Len(voters, 1)
	})

	t.Run("reads_see_staged_writes", func(t *testing.T) {
		store := seedStore(t)
		err := store.Atomically(ctx, func(tx ports.ElectionTx) error {
			alice, _ := tx.Candidate(1)
			assert.NoError(tx.SaveCandidate(alice.WithVote()))
			staged, _ := tx.Candidate(1)
			assert.Equal(1, staged.Votes)

			tx.ResetAllVotes()
			cleared, _ := tx.Candidate(1)
			assert.Equal(0, cleared.Votes)
			return nil
		})
		assert.NoError(err)
	})

	t.Run("staged_reset_applies_to_committed_rows", func(t *testing.T) {
		store := seedStore(t)
		assert.NoError(store.Atomically(ctx, func(tx ports.ElectionTx) error {
			bob, _ := tx.Candidate(2)
			carol, _ := tx.Voter(1)
			assert.NoError(tx.SaveCandidate(bob.WithVote()))
			return tx.SaveVoter(carol.WithBallot())
		}))
		assert.NoError(store.Atomically(ctx, func(tx ports.ElectionTx) error {
			tx.ResetAllVotes()
			tx.ResetAllVoters()
			bob, _ := tx.Candidate(2)
			carol, _ := tx.Voter(1)
			assert.Equal(0, bob.Votes)
			assert.False(carol.HasVoted)
			return nil
		}))
		bob, _, _ := store.GetCandidate(ctx, 2)
		carol, _, _ := store.GetVoter(ctx, 1)
		assert.Equal(0, bob.Votes)
		assert.False(carol.HasVoted)
		assert.Equal("Bob", bob.Name)
	})

	t.Run("duplicate_and_missing_are_rejected_while_staging", func(t *testing.T) {
		store := seedStore(t)
		err := store.Atomically(ctx, func(tx ports.ElectionTx) error {
			return tx.AddCandidate(entities.Candidate{CandidateID: 1, Name: "Again"})
		})
		assert.ErrorIs(err, domainerrors.ErrDuplicateIdentifier)

		err = store.Atomically(ctx, func(tx ports.ElectionTx) error {
			return tx.SaveVoter(entities.Voter{VoterID: 9, HasVoted: true})
		})
		assert.ErrorIs(err, domainerrors.ErrSelectionMissing)
	})

	t.Run("sequences_only_advance_on_commit", func(t *testing.T) {
		store := seedStore(t)
		_ = store.Atomically(ctx, func(tx ports.ElectionTx) error {
			tx.NextCandidateID()
			return errBoom
		})
		var next int
		assert.NoError(store.Atomically(ctx, func(tx ports.ElectionTx) error {
			next = tx.NextCandidateID()
			return nil
		}))
		assert.Equal(3, next)
	})

	t.Run("cancelled_context", func(t *testing.T) {
		store := seedStore(t)
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		called := false
		err := store.Atomically(cancelled, func(ports.ElectionTx) error {
			called = true
			return nil
		})
		assert.ErrorIs(err, context.Canceled)
		assert.False(called)
	})
}

func TestStoreResetHelpers(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	store := seedStore(t)
	assert.NoError(store.Atomically(ctx, func(tx ports.ElectionTx) error {
		alice, _ := tx.Candidate(1)
		carol, _ := tx.Voter(1)
		assert.NoError(tx.SaveCandidate(alice.WithVote()))
		return tx.SaveVoter(carol.WithBallot())
	}))

	assert.NoError(store.ResetAllVotes(ctx))
	assert.NoError(store.ResetAllVoters(ctx))
	alice, found, err := store.GetCandidate(ctx, 1)
	assert.NoError(err)
	assert.True(found)
	assert.Equal(0, alice.Votes)
	carol, _, _ := store.GetVoter(ctx, 1)
	assert.False(carol.HasVoted)
}
