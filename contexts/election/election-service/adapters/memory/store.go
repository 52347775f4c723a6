package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"ballotbox/contexts/election/election-service/domain/entities"
	domainerrors "ballotbox/contexts/election/election-service/domain/errors"
	"ballotbox/contexts/election/election-service/ports"
)

// Store owns the canonical candidate and voter collections. mu serialises
// units of work across both collections so readers never see a half-applied
// vote or reset.
type Store struct {
	mu sync.RWMutex

	candidates *EntityStore[entities.Candidate]
	voters     *EntityStore[entities.Voter]

	candidateSeq int
	voterSeq     int
}

func NewStore() *Store {
	return &Store{
		candidates: NewEntityStore[entities.Candidate](),
		voters:     NewEntityStore[entities.Voter](),
	}
}

func (s *Store) ListCandidates(_ context.Context) ([]entities.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.candidates.FindAll(), nil
}

func (s *Store) ListVoters(_ context.Context) ([]entities.Voter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.voters.FindAll(), nil
}

func (s *Store) GetCandidate(_ context.Context, candidateID int) (entities.Candidate, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	candidate, ok := s.candidates.FindByID(candidateID)
	return candidate, ok, nil
}

func (s *Store) GetVoter(_ context.Context, voterID int) (entities.Voter, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	voter, ok := s.voters.FindByID(voterID)
	return voter, ok, nil
}

func (s *Store) ResetAllVotes(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.candidates.ResetAll()
	return nil
}

func (s *Store) ResetAllVoters(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.voters.ResetAll()
	return nil
}

func (s *Store) Atomically(ctx context.Context, fn func(tx ports.ElectionTx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := newStoreTx(s)
	if err := fn(tx); err != nil {
		return err
	}
	return tx.commit()
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

// storeTx stages writes over the committed state. Reads see staged values
// first, then committed ones adjusted for a staged reset.
type storeTx struct {
	store *Store

	candidateSeq int
	voterSeq     int

	candidates    map[int]entities.Candidate
	voters        map[int]entities.Voter
	newCandidates []int
	newVoters     []int

	resetVotes  bool
	resetVoters bool
}

func newStoreTx(store *Store) *storeTx {
	return &storeTx{
		store:        store,
		candidateSeq: store.candidateSeq,
		voterSeq:     store.voterSeq,
		candidates:   make(map[int]entities.Candidate),
		voters:       make(map[int]entities.Voter),
	}
}

func (t *storeTx) Candidate(candidateID int) (entities.Candidate, bool) {
	if candidate, ok := t.candidates[candidateID]; ok {
		return candidate, true
	}
	candidate, ok := t.store.candidates.FindByID(candidateID)
	if !ok {
		return entities.Candidate{}, false
	}
	if t.resetVotes {
		candidate = candidate.Cleared()
	}
	return candidate, true
}

func (t *storeTx) Voter(voterID int) (entities.Voter, bool) {
	if voter, ok := t.voters[voterID]; ok {
		return voter, true
	}
	voter, ok := t.store.voters.FindByID(voterID)
	if !ok {
		return entities.Voter{}, false
	}
	if t.resetVoters {
		voter = voter.Cleared()
	}
	return voter, true
}

func (t *storeTx) NextCandidateID() int {
	t.candidateSeq++
	return t.candidateSeq
}

func (t *storeTx) NextVoterID() int {
	t.voterSeq++
	return t.voterSeq
}

func (t *storeTx) AddCandidate(candidate entities.Candidate) error {
	if _, exists := t.Candidate(candidate.CandidateID); exists {
		return fmt.Errorf("%w: candidate %d", domainerrors.ErrDuplicateIdentifier, candidate.CandidateID)
	}
	if candidate.CandidateID > t.candidateSeq {
		t.candidateSeq = candidate.CandidateID
	}
	t.candidates[candidate.CandidateID] = candidate
	t.newCandidates = append(t.newCandidates, candidate.CandidateID)
	return nil
}

func (t *storeTx) AddVoter(voter entities.Voter) error {
	if _, exists := t.Voter(voter.VoterID); exists {
		return fmt.Errorf("%w: voter %d", domainerrors.ErrDuplicateIdentifier, voter.VoterID)
	}
	if voter.VoterID > t.voterSeq {
		t.voterSeq = voter.VoterID
	}
	t.voters[voter.VoterID] = voter
	t.newVoters = append(t.newVoters, voter.VoterID)
	return nil
}

func (t *storeTx) SaveCandidate(candidate entities.Candidate) error {
	if _, exists := t.Candidate(candidate.CandidateID); !exists {
		return fmt.Errorf("%w: candidate %d", domainerrors.ErrSelectionMissing, candidate.CandidateID)
	}
	t.candidates[candidate.CandidateID] = candidate
	return nil
}

func (t *storeTx) SaveVoter(voter entities.Voter) error {
	if _, exists := t.Voter(voter.VoterID); !exists {
		return fmt.Errorf("%w: voter %d", domainerrors.ErrSelectionMissing, voter.VoterID)
	}
	t.voters[voter.VoterID] = voter
	return nil
}

func (t *storeTx) ResetAllVotes() {
	t.resetVotes = true
	for id, candidate := range t.candidates {
		t.candidates[id] = candidate.Cleared()
	}
}

func (t *storeTx) ResetAllVoters() {
	t.resetVoters = true
	for id, voter := range t.voters {
		t.voters[id] = voter.Cleared()
	}
}

// commit runs under the store write lock. Every staged write was validated
// when it was staged, so a failure here means the store was mutated outside
// a unit of work.
func (t *storeTx) commit() error {
	s := t.store
	if t.resetVotes {
		s.candidates.ResetAll()
	}
	if t.resetVoters {
		s.voters.ResetAll()
	}

	added := make(map[int]bool, len(t.newCandidates))
	for _, id := range t.newCandidates {
		if err := s.candidates.Add(t.candidates[id]); err != nil {
			return err
		}
		added[id] = true
	}
	for id, candidate := range t.candidates {
		if added[id] {
			continue
		}
		if err := s.candidates.Replace(candidate); err != nil {
			return err
		}
	}

	added = make(map[int]bool, len(t.newVoters))
	for _, id := range t.newVoters {
		if err := s.voters.Add(t.voters[id]); err != nil {
			return err
		}
		added[id] = true
	}
	for id, voter := range t.voters {
		if added[id] {
			continue
		}
		if err := s.voters.Replace(voter); err != nil {
			return err
		}
	}

	s.candidateSeq = t.candidateSeq
	s.voterSeq = t.voterSeq
	return nil
}
