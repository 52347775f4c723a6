package metrics

import (
	"testing"

	"ballotbox/contexts/election/election-service/ports"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPrometheus(t *testing.T) {
	assert := assert.New(t)
	p := NewPrometheus("test")

	p.EntityRegistered(ports.EntityKindCandidate)
	p.EntityRegistered(ports.EntityKindVoter)
	p.EntityRegistered(ports.EntityKindVoter)
	p.VoteCast()
	p.VoteCast()
	p.VoteRejected("already_voted")

	assert.Equal(1.0, testutil.ToFloat64(p.registrations.WithLabelValues("candidate")))
	assert.Equal(2.0, testutil.ToFloat64(p.registrations.WithLabelValues("voter")))
	assert.Equal(2.0, testutil.ToFloat64(p.votesCast))
	assert.Equal(2.0, testutil.ToFloat64(p.tallied))
	assert.Equal(1.0, testutil.ToFloat64(p.votesRejected.WithLabelValues("already_voted")))

	p.ElectionReset()
	assert.Equal(0.0, testutil.ToFloat64(p.tallied))
	assert.Equal(2.0, testutil.ToFloat64(p.votesCast))
	assert.Equal(1.0, testutil.ToFloat64(p.resets))

	samples, err := p.Snapshot()
	assert.NoError(err)
	names := map[string]float64{}
	for _, sample := range samples {
		if sample.Name == "test_election_votes_rejected_total" {
			assert.Equal("already_voted", sample.Labels["reason"])
		}
		if len(sample.Labels) == 0 {
			names[sample.Name] = sample.Value
		}
	}
	assert.Equal(2.0, names["test_election_votes_cast_total"])
	assert.Equal(0.0, names["test_election_votes_tallied"])
	assert.Equal(1.0, names["test_election_resets_total"])
}

func TestPrometheusInstancesDoNotCollide(t *testing.T) {
	assert.NotPanics(t, func() {
		NewPrometheus("same")
		NewPrometheus("same")
	})
}
