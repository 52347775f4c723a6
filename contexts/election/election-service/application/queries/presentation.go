package queries

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"ballotbox/contexts/election/election-service/domain/entities"
	domainerrors "ballotbox/contexts/election/election-service/domain/errors"
	"ballotbox/contexts/election/election-service/ports"
)

// PresentationUseCase builds read-only projections for view layers. Nothing is
// cached; every call reflects the store at the moment it runs.
type PresentationUseCase struct {
	Election ports.ElectionReader
	Clock    ports.Clock
}

func (uc PresentationUseCase) CandidateTable(ctx context.Context) ([]entities.CandidateRow, error) {
	candidates, err := uc.Election.ListCandidates(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]entities.CandidateRow, 0, len(candidates))
	for _, candidate := range candidates {
		rows = append(rows, entities.CandidateRow{
			ID:    candidate.CandidateID,
			Name:  candidate.Name,
			Votes: candidate.Votes,
		})
	}
	return rows, nil
}

func (uc PresentationUseCase) VoterTable(ctx context.Context) ([]entities.VoterRow, error) {
	voters, err := uc.Election.ListVoters(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]entities.VoterRow, 0, len(voters))
	for _, voter := range voters {
		rows = append(rows, entities.VoterRow{
			ID:       voter.VoterID,
			Name:     voter.Name,
			HasVoted: entities.HasVotedLabel(voter.HasVoted),
		})
	}
	return rows, nil
}

func (uc PresentationUseCase) CandidateChoices(ctx context.Context) ([]entities.Choice, error) {
	candidates, err := uc.Election.ListCandidates(ctx)
	if err != nil {
		return nil, err
	}
	choices := make([]entities.Choice, 0, len(candidates))
	for _, candidate := range candidates {
		label := choiceLabel(candidate.CandidateID, candidate.Name)
		choices = append(choices, entities.Choice{
			ID:      candidate.CandidateID,
			Label:   label,
			Display: fmt.Sprintf("%s (Votes: %d)", label, candidate.Votes),
		})
	}
	return choices, nil
}

func (uc PresentationUseCase) VoterChoices(ctx context.Context) ([]entities.Choice, error) {
	voters, err := uc.Election.ListVoters(ctx)
	if err != nil {
		return nil, err
	}
	choices := make([]entities.Choice, 0, len(voters))
	for _, voter := range voters {
		label := choiceLabel(voter.VoterID, voter.Name)
		choices = append(choices, entities.Choice{
			ID:      voter.VoterID,
			Label:   label,
			Display: fmt.Sprintf("%s (Has voted: %s)", label, entities.HasVotedLabel(voter.HasVoted)),
		})
	}
	return choices, nil
}

// ResolveCandidateChoice maps a label, its display form or a bare identifier
// back to a registered candidate identifier.
func (uc PresentationUseCase) ResolveCandidateChoice(ctx context.Context, label string) (int, error) {
	id, err := parseChoiceID(label)
	if err != nil {
		return 0, err
	}
	if _, found, err := uc.Election.GetCandidate(ctx, id); err != nil {
		return 0, err
	} else if !found {
		return 0, fmt.Errorf("%w: unknown candidate %q", domainerrors.ErrSelectionMissing, strings.TrimSpace(label))
	}
	return id, nil
}

func (uc PresentationUseCase) ResolveVoterChoice(ctx context.Context, label string) (int, error) {
	id, err := parseChoiceID(label)
	if err != nil {
		return 0, err
	}
	if _, found, err := uc.Election.GetVoter(ctx, id); err != nil {
		return 0, err
	} else if !found {
		return 0, fmt.Errorf("%w: unknown voter %q", domainerrors.ErrSelectionMissing, strings.TrimSpace(label))
	}
	return id, nil
}

// Standings ranks candidates by votes, ties broken by registration order.
// Tied candidates share a rank.
func (uc PresentationUseCase) Standings(ctx context.Context) ([]entities.Standing, error) {
	candidates, err := uc.Election.ListCandidates(ctx)
	if err != nil {
		return nil, err
	}
	total := 0
	for _, candidate := range candidates {
		total += candidate.Votes
	}

	items := make([]entities.Standing, 0, len(candidates))
	for _, candidate := range candidates {
		share := 0.0
		if total > 0 {
			share = float64(candidate.Votes) / float64(total)
		}
		items = append(items, entities.Standing{
			CandidateID: candidate.CandidateID,
			Name:        candidate.Name,
			Votes:       candidate.Votes,
			Share:       share,
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Votes == items[j].Votes {
			return items[i].CandidateID < items[j].CandidateID
		}
		return items[i].Votes > items[j].Votes
	})
	for i := range items {
		if i > 0 && items[i].Votes == items[i-1].Votes {
			items[i].Rank = items[i-1].Rank
			continue
		}
		items[i].Rank = i + 1
	}
	return items, nil
}

func (uc PresentationUseCase) Summary(ctx context.Context) (entities.ElectionSummary, error) {
	candidates, err := uc.Election.ListCandidates(ctx)
	if err != nil {
		return entities.ElectionSummary{}, err
	}
	voters, err := uc.Election.ListVoters(ctx)
	if err != nil {
		return entities.ElectionSummary{}, err
	}

	summary := entities.ElectionSummary{
		Candidates: len(candidates),
		Voters:     len(voters),
		TakenAt:    uc.now(),
	}
	for _, candidate := range candidates {
		summary.TotalVotes += candidate.Votes
	}
	for _, voter := range voters {
		if voter.HasVoted {
			summary.VotersVoted++
		}
	}
	if summary.Voters > 0 {
		summary.Turnout = float64(summary.VotersVoted) / float64(summary.Voters)
	}
	return summary, nil
}

func (uc PresentationUseCase) now() time.Time {
	if uc.Clock != nil {
		return uc.Clock.Now().UTC()
	}
	return time.Now().UTC()
}

func choiceLabel(id int, name string) string {
	return strconv.Itoa(id) + ": " + name
}

func parseChoiceID(label string) (int, error) {
	value := strings.TrimSpace(label)
	if head, _, found := strings.Cut(value, ":"); found {
		value = strings.TrimSpace(head)
	}
	if value == "" {
		return 0, fmt.Errorf("%w: nothing selected", domainerrors.ErrSelectionMissing)
	}
	id, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: unrecognised selection %q", domainerrors.ErrSelectionMissing, strings.TrimSpace(label))
	}
	return id, nil
}
