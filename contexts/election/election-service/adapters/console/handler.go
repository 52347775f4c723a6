package consoleadapter

import (
	"context"
	"log/slog"

	"ballotbox/contexts/election/election-service/application/commands"
	"ballotbox/contexts/election/election-service/application/queries"
	"ballotbox/contexts/election/election-service/domain/entities"
	consoletransport "ballotbox/contexts/election/election-service/transport/console"
)

var (
	CandidateColumns = []string{"ID", "Name", "Votes"}
	VoterColumns     = []string{"ID", "Name", "Has voted"}
)

// Handler maps view-layer requests onto the election use cases.
type Handler struct {
	Election     commands.ElectionUseCase
	Presentation queries.PresentationUseCase
	Logger       *slog.Logger
}

func (h Handler) RegisterCandidateHandler(
	ctx context.Context,
	req consoletransport.RegisterRequest,
) (consoletransport.CandidateResponse, error) {
	candidate, err := h.Election.RegisterCandidate(ctx, commands.RegisterCandidateCommand{Name: req.Name})
	if err != nil {
		return consoletransport.CandidateResponse{}, err
	}
	return mapCandidate(candidate), nil
}

func (h Handler) RegisterVoterHandler(
	ctx context.Context,
	req consoletransport.RegisterRequest,
) (consoletransport.VoterResponse, error) {
	voter, err := h.Election.RegisterVoter(ctx, commands.RegisterVoterCommand{Name: req.Name})
	if err != nil {
		return consoletransport.VoterResponse{}, err
	}
	return mapVoter(voter), nil
}

// CastVoteHandler returns the voter on AlreadyVoted rejections too, so the
// caller can name who already voted.
func (h Handler) CastVoteHandler(
	ctx context.Context,
	req consoletransport.CastVoteRequest,
) (consoletransport.CastVoteResponse, error) {
	result, err := h.Election.CastVote(ctx, commands.CastVoteCommand{
		CandidateID: req.CandidateID,
		VoterID:     req.VoterID,
	})
	if err != nil {
		return consoletransport.CastVoteResponse{Voter: mapVoter(result.Voter)}, err
	}
	return consoletransport.CastVoteResponse{
		Candidate: mapCandidate(result.Candidate),
		Voter:     mapVoter(result.Voter),
	}, nil
}

func (h Handler) ResetElectionHandler(ctx context.Context) (consoletransport.ResetResponse, error) {
	if err := h.Election.ResetElection(ctx); err != nil {
		return consoletransport.ResetResponse{}, err
	}
	return consoletransport.ResetResponse{Reset: true}, nil
}

func (h Handler) ListCandidatesHandler(ctx context.Context) (consoletransport.CandidateTableResponse, error) {
	rows, err := h.Presentation.CandidateTable(ctx)
	if err != nil {
		return consoletransport.CandidateTableResponse{}, err
	}
	items := make([]consoletransport.CandidateRow, 0, len(rows))
	for _, row := range rows {
		items = append(items, consoletransport.CandidateRow{ID: row.ID, Name: row.Name, Votes: row.Votes})
	}
	return consoletransport.CandidateTableResponse{Columns: CandidateColumns, Rows: items}, nil
}

func (h Handler) ListVotersHandler(ctx context.Context) (consoletransport.VoterTableResponse, error) {
	rows, err := h.Presentation.VoterTable(ctx)
	if err != nil {
		return consoletransport.VoterTableResponse{}, err
	}
	items := make([]consoletransport.VoterRow, 0, len(rows))
	for _, row := range rows {
		items = append(items, consoletransport.VoterRow{ID: row.ID, Name: row.Name, HasVoted: row.HasVoted})
	}
	return consoletransport.VoterTableResponse{Columns: VoterColumns, Rows: items}, nil
}

func (h Handler) CandidateChoicesHandler(ctx context.Context) (consoletransport.ChoicesResponse, error) {
	choices, err := h.Presentation.CandidateChoices(ctx)
	if err != nil {
		return consoletransport.ChoicesResponse{}, err
	}
	return consoletransport.ChoicesResponse{Items: mapChoices(choices)}, nil
}

func (h Handler) VoterChoicesHandler(ctx context.Context) (consoletransport.ChoicesResponse, error) {
	choices, err := h.Presentation.VoterChoices(ctx)
	if err != nil {
		return consoletransport.ChoicesResponse{}, err
	}
	return consoletransport.ChoicesResponse{Items: mapChoices(choices)}, nil
}

func (h Handler) ResolveCandidateHandler(ctx context.Context, label string) (int, error) {
	return h.Presentation.ResolveCandidateChoice(ctx, label)
}

func (h Handler) ResolveVoterHandler(ctx context.Context, label string) (int, error) {
	return h.Presentation.ResolveVoterChoice(ctx, label)
}

func (h Handler) StandingsHandler(ctx context.Context) (consoletransport.StandingsResponse, error) {
	standings, err := h.Presentation.Standings(ctx)
	if err != nil {
		return consoletransport.StandingsResponse{}, err
	}
	items := make([]consoletransport.StandingItem, 0, len(standings))
	for _, standing := range standings {
		items = append(items, consoletransport.StandingItem{
			Rank:        standing.Rank,
			CandidateID: standing.CandidateID,
			Name:        standing.Name,
			Votes:       standing.Votes,
			Share:       standing.Share,
		})
	}
	return consoletransport.StandingsResponse{Items: items}, nil
}

func (h Handler) SummaryHandler(ctx context.Context) (consoletransport.SummaryResponse, error) {
	summary, err := h.Presentation.Summary(ctx)
	if err != nil {
		return consoletransport.SummaryResponse{}, err
	}
	return consoletransport.SummaryResponse{
		Candidates:  summary.Candidates,
		Voters:      summary.Voters,
		TotalVotes:  summary.TotalVotes,
		VotersVoted: summary.VotersVoted,
		Turnout:     summary.Turnout,
		Consistent:  summary.Consistent(),
		TakenAt:     summary.TakenAt,
	}, nil
}

func mapCandidate(candidate entities.Candidate) consoletransport.CandidateResponse {
	return consoletransport.CandidateResponse{
		CandidateID: candidate.CandidateID,
		Name:        candidate.Name,
		Votes:       candidate.Votes,
	}
}

func mapVoter(voter entities.Voter) consoletransport.VoterResponse {
	return consoletransport.VoterResponse{
		VoterID:  voter.VoterID,
		Name:     voter.Name,
		HasVoted: voter.HasVoted,
	}
}

func mapChoices(choices []entities.Choice) []consoletransport.ChoiceItem {
	items := make([]consoletransport.ChoiceItem, 0, len(choices))
	for _, choice := range choices {
		items = append(items, consoletransport.ChoiceItem{
			ID:      choice.ID,
			Label:   choice.Label,
			Display: choice.Display,
		})
	}
	return items
}
