package console

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"text/tabwriter"

	consoleadapter "ballotbox/contexts/election/election-service/adapters/console"
	domainerrors "ballotbox/contexts/election/election-service/domain/errors"
	consoletransport "ballotbox/contexts/election/election-service/transport/console"
	"ballotbox/internal/platform/metrics"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

const resetPrompt = "Are you sure you want to reset the election? [y/N] "

// MetricsSnapshotter exposes gathered metric samples for the stats command.
type MetricsSnapshotter interface {
	Snapshot() ([]metrics.Sample, error)
}

type Options struct {
	JSON                     bool
	Color                    bool
	AssumeYes                bool
	RequireResetConfirmation bool
	Prompt                   string
	Metrics                  MetricsSnapshotter
	Logger                   *slog.Logger
}

// Session is a line-oriented view over one election. It never holds election
// state of its own: after every mutation it pulls fresh tables from the
// handler.
type Session struct {
	handler consoleadapter.Handler
	opts    Options
	in      *bufio.Scanner
	out     io.Writer
	logger  *slog.Logger
	id      string

	okColor    *color.Color
	errColor   *color.Color
	yesColor   *color.Color
	noColor    *color.Color
	titleColor *color.Color
}

func NewSession(handler consoleadapter.Handler, in io.Reader, out io.Writer, opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.NewString()
	s := &Session{
		handler:    handler,
		opts:       opts,
		in:         bufio.NewScanner(in),
		out:        out,
		logger:     logger.With("session_id", id),
		id:         id,
		okColor:    color.New(color.FgGreen),
		errColor:   color.New(color.FgRed),
		yesColor:   color.New(color.FgGreen),
		noColor:    color.New(color.FgYellow),
		titleColor: color.New(color.Bold),
	}
	for _, c := range []*color.Color{s.okColor, s.errColor, s.yesColor, s.noColor, s.titleColor} {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return s
}

func (s *Session) ID() string {
	return s.id
}

// Run reads commands until quit, end of input or context cancellation.
func (s *Session) Run(ctx context.Context) error {
	s.logger.Info("console session started",
		"event", "console_session_started",
		"module", "internal/platform/console",
		"layer", "platform",
	)
	defer s.logger.Info("console session finished",
		"event", "console_session_finished",
		"module", "internal/platform/console",
		"layer", "platform",
	)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.opts.Prompt != "" {
			fmt.Fprint(s.out, s.opts.Prompt)
		}
		if !s.in.Scan() {
			return s.in.Err()
		}
		if quit := s.Execute(ctx, s.in.Text()); quit {
			return nil
		}
	}
}

// Execute runs one command line and reports whether the session should end.
// Election errors are rendered, never returned: they leave state untouched.
func (s *Session) Execute(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return false
	}
	fields := strings.Fields(line)
	command := strings.ToLower(fields[0])
	args := fields[1:]

	s.logger.Debug("console command received",
		"event", "console_command_received",
		"module", "internal/platform/console",
		"layer", "platform",
		"command", command,
	)

	switch command {
	case "quit", "exit":
		return true
	case "help":
		s.printHelp()
	case "candidate", "voter":
		s.register(ctx, command, line, args)
	case "vote":
		s.vote(ctx, args)
	case "reset":
		s.reset(ctx, args)
	case "candidates":
		s.showCandidates(ctx)
	case "voters":
		s.showVoters(ctx)
	case "choices":
		s.showChoices(ctx, args)
	case "standings":
		s.showStandings(ctx)
	case "summary":
		s.showSummary(ctx)
	case "stats":
		s.showStats()
	default:
		s.fail("", fmt.Errorf("unknown command %q, type help", command))
	}
	return false
}

func (s *Session) register(ctx context.Context, kind string, line string, args []string) {
	if len(args) == 0 || strings.ToLower(args[0]) != "add" {
		s.fail(kind, fmt.Errorf("usage: %s add <name>", kind))
		return
	}
	// Keep the name's inner spacing as typed.
	_, rest, _ := strings.Cut(line, args[0])
	req := consoletransport.RegisterRequest{Name: rest}

	if kind == "candidate" {
		resp, err := s.handler.RegisterCandidateHandler(ctx, req)
		if err != nil {
			s.fail(kind, err)
			return
		}
		s.success(ctx, resp, fmt.Sprintf("Candidate %d: %s added.", resp.CandidateID, resp.Name))
		return
	}
	resp, err := s.handler.RegisterVoterHandler(ctx, req)
	if err != nil {
		s.fail(kind, err)
		return
	}
	s.success(ctx, resp, fmt.Sprintf("Voter %d: %s added.", resp.VoterID, resp.Name))
}

func (s *Session) vote(ctx context.Context, args []string) {
	if len(args) != 2 {
		s.fail("vote", fmt.Errorf("%w: usage: vote <candidate> <voter>", domainerrors.ErrSelectionMissing))
		return
	}
	candidateID, err := s.handler.ResolveCandidateHandler(ctx, args[0])
	if err != nil {
		s.fail("vote", err)
		return
	}
	voterID, err := s.handler.ResolveVoterHandler(ctx, args[1])
	if err != nil {
		s.fail("vote", err)
		return
	}

	resp, err := s.handler.CastVoteHandler(ctx, consoletransport.CastVoteRequest{
		CandidateID: candidateID,
		VoterID:     voterID,
	})
	if err != nil {
		if domainerrors.KindOf(err) == domainerrors.KindAlreadyVoted {
			s.failMessage(err, fmt.Sprintf("%s has already voted!", resp.Voter.Name))
			return
		}
		s.fail("vote", err)
		return
	}
	s.success(ctx, resp, fmt.Sprintf("%s voted for %s.", resp.Voter.Name, resp.Candidate.Name))
}

func (s *Session) reset(ctx context.Context, args []string) {
	confirmed := s.opts.AssumeYes || !s.opts.RequireResetConfirmation
	for _, arg := range args {
		if arg == "--yes" || arg == "-y" {
			confirmed = true
		}
	}
	if !confirmed {
		fmt.Fprint(s.out, resetPrompt)
		if !s.in.Scan() {
			fmt.Fprintln(s.out)
			return
		}
		answer := strings.ToLower(strings.TrimSpace(s.in.Text()))
		if answer != "y" && answer != "yes" {
			fmt.Fprintln(s.out, "Reset cancelled.")
			return
		}
	}

	resp, err := s.handler.ResetElectionHandler(ctx)
	if err != nil {
		s.fail("reset", err)
		return
	}
	s.success(ctx, resp, "Election reset.")
}

func (s *Session) showCandidates(ctx context.Context) {
	table, err := s.handler.ListCandidatesHandler(ctx)
	if err != nil {
		s.fail("", err)
		return
	}
	if s.opts.JSON {
		s.writeJSON(table)
		return
	}
	s.renderCandidates(table)
}

func (s *Session) showVoters(ctx context.Context) {
	table, err := s.handler.ListVotersHandler(ctx)
	if err != nil {
		s.fail("", err)
		return
	}
	if s.opts.JSON {
		s.writeJSON(table)
		return
	}
	s.renderVoters(table)
}

func (s *Session) showChoices(ctx context.Context, args []string) {
	if len(args) != 1 {
		s.fail("", fmt.Errorf("usage: choices candidates|voters"))
		return
	}
	var (
		resp consoletransport.ChoicesResponse
		err  error
	)
	switch strings.ToLower(args[0]) {
	case "candidates":
		resp, err = s.handler.CandidateChoicesHandler(ctx)
	case "voters":
		resp, err = s.handler.VoterChoicesHandler(ctx)
	default:
		err = fmt.Errorf("usage: choices candidates|voters")
	}
	if err != nil {
		s.fail("", err)
		return
	}
	if s.opts.JSON {
		s.writeJSON(resp)
		return
	}
	for _, item := range resp.Items {
		fmt.Fprintln(s.out, item.Display)
	}
}

func (s *Session) showStandings(ctx context.Context) {
	resp, err := s.handler.StandingsHandler(ctx)
	if err != nil {
		s.fail("", err)
		return
	}
	if s.opts.JSON {
		s.writeJSON(resp)
		return
	}
	s.titleColor.Fprintln(s.out, "Standings")
	tw := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Rank\tID\tName\tVotes\tShare")
	for _, item := range resp.Items {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%d\t%.1f%%\n", item.Rank, item.CandidateID, item.Name, item.Votes, item.Share*100)
	}
	tw.Flush()
}

func (s *Session) showSummary(ctx context.Context) {
	resp, err := s.handler.SummaryHandler(ctx)
	if err != nil {
		s.fail("", err)
		return
	}
	if s.opts.JSON {
		s.writeJSON(resp)
		return
	}
	fmt.Fprintf(s.out, "Candidates: %d\nVoters: %d\nVotes: %d\nVoters who voted: %d\nTurnout: %.1f%%\n",
		resp.Candidates, resp.Voters, resp.TotalVotes, resp.VotersVoted, resp.Turnout*100)
}

func (s *Session) showStats() {
	if s.opts.Metrics == nil {
		s.fail("", fmt.Errorf("metrics are not enabled"))
		return
	}
	samples, err := s.opts.Metrics.Snapshot()
	if err != nil {
		s.fail("", err)
		return
	}
	if s.opts.JSON {
		s.writeJSON(samples)
		return
	}
	for _, sample := range samples {
		fmt.Fprintf(s.out, "%s%s %g\n", sample.Name, formatLabels(sample.Labels), sample.Value)
	}
}

// success reports a mutation and redraws both tables.
func (s *Session) success(ctx context.Context, resp any, message string) {
	if s.opts.JSON {
		s.writeJSON(resp)
		return
	}
	s.okColor.Fprintln(s.out, message)
	s.showCandidates(ctx)
	s.showVoters(ctx)
}

func (s *Session) fail(subject string, err error) {
	s.failMessage(err, userMessage(subject, err))
}

func (s *Session) failMessage(err error, message string) {
	kind := domainerrors.KindOf(err)
	s.logger.Warn("console command failed",
		"event", "console_command_failed",
		"module", "internal/platform/console",
		"layer", "platform",
		"kind", string(kind),
		"error", err.Error(),
	)
	if s.opts.JSON {
		s.writeJSON(consoletransport.ErrorResponse{Code: string(kind), Message: message})
		return
	}
	s.errColor.Fprintln(s.out, message)
}

func (s *Session) renderCandidates(table consoletransport.CandidateTableResponse) {
	s.titleColor.Fprintln(s.out, "Candidates")
	tw := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(table.Columns, "\t"))
	for _, row := range table.Rows {
		fmt.Fprintf(tw, "%d\t%s\t%d\n", row.ID, row.Name, row.Votes)
	}
	tw.Flush()
}

func (s *Session) renderVoters(table consoletransport.VoterTableResponse) {
	s.titleColor.Fprintln(s.out, "Voters")
	tw := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(table.Columns, "\t"))
	for _, row := range table.Rows {
		label := s.noColor.Sprint(row.HasVoted)
		if row.HasVoted == "Yes" {
			label = s.yesColor.Sprint(row.HasVoted)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\n", row.ID, row.Name, label)
	}
	tw.Flush()
}

func (s *Session) writeJSON(value any) {
	if err := json.NewEncoder(s.out).Encode(value); err != nil {
		s.logger.Error("console json encoding failed",
			"event", "console_json_encode_failed",
			"module", "internal/platform/console",
			"layer", "platform",
			"error", err.Error(),
		)
	}
}

func (s *Session) printHelp() {
	fmt.Fprint(s.out, `Commands:
  candidate add <name>       register a candidate
  voter add <name>           register a voter
  vote <candidate> <voter>   cast a vote (ids or "id:" labels)
  reset [--yes]              reset every tally and has-voted flag
  candidates | voters        show tables
  choices candidates|voters  show selection lists
  standings | summary        show results
  stats                      show metrics
  quit                       leave the session
`)
}

// userMessage turns an error into the text shown to the person at the console.
func userMessage(subject string, err error) string {
	switch domainerrors.KindOf(err) {
	case domainerrors.KindValidation:
		switch subject {
		case "candidate":
			return "Candidate name cannot be empty."
		case "voter":
			return "Voter name cannot be empty."
		}
	case domainerrors.KindSelectionMissing:
		return "Select a candidate and a voter."
	case domainerrors.KindAlreadyVoted:
		return "Voter has already voted!"
	}
	return err.Error()
}

func formatLabels(labels map[string]string) string {
	if len(labels) == 0 {
		return ""
	}
	keys := make([]string, 0, len(labels))
	for key := range labels {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%q", key, labels[key]))
	}
	return "{" + strings.Join(pairs, ",") + "}"
}
