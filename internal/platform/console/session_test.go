package console

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	electionservice "ballotbox/contexts/election/election-service"
	"ballotbox/internal/platform/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runScript(t *testing.T, script string, opts Options) (string, electionservice.Module) {
	t.Helper()
	module := electionservice.NewInMemoryModule(nil, nil)
	var out bytes.Buffer
	session := NewSession(module.Handler, strings.NewReader(script), &out, opts)
	require.NoError(t, session.Run(context.Background()))
	return out.String(), module
}

func TestSessionScenario(t *testing.T) {
	assert := assert.New(t)
	script := strings.Join([]string{
		"# register everyone",
		"candidate add Alice",
		"candidate add Bob",
		"voter add Carol",
		"voter add Dave",
		"vote 1 1",
		"vote 1: 1",
		"vote 9 2",
		"candidate add   ",
		"voter add",
		"standings",
		"reset",
		"n",
		"summary",
		"reset",
		"yes",
		"candidates",
		"quit",
		"candidate add Never",
	}, "\n")
	out, module := runScript(t, script, Options{RequireResetConfirmation: true})

	assert.Contains(out, "Candidate 1: Alice added.")
	assert.Contains(out, "Voter 2: Dave added.")
	assert.Contains(out, "Carol voted for Alice.")
	assert.Contains(out, "Carol has already voted!")
	assert.Contains(out, "Select a candidate and a voter.")
	assert.Contains(out, "Candidate name cannot be empty.")
	assert.Contains(out, "Voter name cannot be empty.")
	assert.Contains(out, "Reset cancelled.")
	assert.Contains(out, "Votes: 1\n")
	assert.Contains(out, "Election reset.")
	assert.Contains(out, "Has voted")
	assert.NotContains(out, "Never")

	candidates, err := module.Store.ListCandidates(context.Background())
	require.NoError(t, err)
	assert.Len(candidates, 2)
	assert.Equal(0, candidates[0].Votes)
}

func TestSessionResetFlags(t *testing.T) {
	assert := assert.New(t)

	t.Run("yes_flag_skips_prompt", func(t *testing.T) {
		out, _ := runScript(t, "reset --yes\n", Options{RequireResetConfirmation: true})
		assert.NotContains(out, resetPrompt)
		assert.Contains(out, "Election reset.")
	})

	t.Run("assume_yes", func(t *testing.T) {
		out, _ := runScript(t, "reset\n", Options{RequireResetConfirmation: true, AssumeYes: true})
		assert.Contains(out, "Election reset.")
	})

	t.Run("end_of_input_at_prompt_cancels", func(t *testing.T) {
		out, _ := runScript(t, "reset", Options{RequireResetConfirmation: true})
		assert.Contains(out, resetPrompt)
		assert.NotContains(out, "Election reset.")
	})
}

func TestSessionJSON(t *testing.T) {
	assert := assert.New(t)
	script := "candidate add Alice\nvoter add Carol\nvote 1 1\nvote 1 1\nchoices voters\n"
	out, _ := runScript(t, script, Options{JSON: true})

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)

	var candidate map[string]any
	assert.NoError(json.Unmarshal([]byte(lines[0]), &candidate))
	assert.Equal(float64(1), candidate["candidate_id"])

	var failure map[string]any
	assert.NoError(json.Unmarshal([]byte(lines[3]), &failure))
	assert.Equal("already_voted", failure["code"])
	assert.Equal("Carol has already voted!", failure["message"])

	var choices map[string][]map[string]any
	assert.NoError(json.Unmarshal([]byte(lines[4]), &choices))
	assert.Equal("1: Carol (Has voted: Yes)", choices["items"][0]["display"])
}

func TestSessionStats(t *testing.T) {
	assert := assert.New(t)
	recorder := metrics.NewPrometheus("session")
	module := electionservice.NewInMemoryModule(nil, recorder)
	var out bytes.Buffer
	session := NewSession(module.Handler, strings.NewReader("candidate add Alice\nvoter add Carol\nvote 1 1\nstats\n"), &out, Options{Metrics: recorder})
	assert.NoError(session.Run(context.Background()))

	assert.Contains(out.String(), "session_election_votes_cast_total 1")
	assert.Contains(out.String(), `session_election_registrations_total{kind="voter"} 1`)

	out.Reset()
	bare, _ := runScript(t, "stats\nhelp\nbogus\n", Options{})
	assert.Contains(bare, "metrics are not enabled")
	assert.Contains(bare, "vote <candidate> <voter>")
	assert.Contains(bare, `unknown command "bogus"`)
}

func TestSessionStopsOnCancelledContext(t *testing.T) {
	module := electionservice.NewInMemoryModule(nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	err := NewSession(module.Handler, strings.NewReader("candidate add Alice\n"), &out, Options{}).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
