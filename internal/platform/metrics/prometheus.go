package metrics

import (
	"sort"

	"ballotbox/contexts/election/election-service/ports"

	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus records election outcomes on its own registry so several
// elections in one process never collide on the default registerer.
type Prometheus struct {
	registry *prometheus.Registry

	registrations *prometheus.CounterVec
	votesCast     prometheus.Counter
	votesRejected *prometheus.CounterVec
	resets        prometheus.Counter
	tallied       prometheus.Gauge
}

var _ ports.MetricsRecorder = (*Prometheus)(nil)

func NewPrometheus(namespace string) *Prometheus {
	p := &Prometheus{
		registry: prometheus.NewRegistry(),
		registrations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "election",
				Name:      "registrations_total",
				Help:      "Number of registered entities by kind",
			},
			[]string{"kind"},
		),
		votesCast: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "election",
			Name:      "votes_cast_total",
			Help:      "Number of accepted votes since start, resets included",
		}),
		votesRejected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "election",
				Name:      "votes_rejected_total",
				Help:      "Number of rejected votes by reason",
			},
			[]string{"reason"},
		),
		resets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "election",
			Name:      "resets_total",
			Help:      "Number of election resets",
		}),
		tallied: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "election",
			Name:      "votes_tallied",
			Help:      "Votes currently counted in the election",
		}),
	}

	p.registry.MustRegister(p.registrations)
	p.registry.MustRegister(p.votesCast)
	p.registry.MustRegister(p.votesRejected)
	p.registry.MustRegister(p.resets)
	p.registry.MustRegister(p.tallied)
	return p
}

func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}

func (p *Prometheus) EntityRegistered(kind ports.EntityKind) {
	p.registrations.WithLabelValues(string(kind)).Inc()
}

func (p *Prometheus) VoteCast() {
	p.votesCast.Inc()
	p.tallied.Inc()
}

func (p *Prometheus) VoteRejected(reason string) {
	p.votesRejected.WithLabelValues(reason).Inc()
}

func (p *Prometheus) ElectionReset() {
	p.resets.Inc()
	p.tallied.Set(0)
}

// Sample is one flattened metric value.
type Sample struct {
	Name   string
	Labels map[string]string
	Value  float64
}

// Snapshot gathers the registry into name-sorted samples.
func (p *Prometheus) Snapshot() ([]Sample, error) {
	families, err := p.registry.Gather()
	if err != nil {
		return nil, err
	}
	var samples []Sample
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			labels := make(map[string]string, len(metric.GetLabel()))
			for _, pair := range metric.GetLabel() {
				labels[pair.GetName()] = pair.GetValue()
			}
			value := metric.GetGauge().GetValue()
			if metric.GetCounter() != nil {
				value = metric.GetCounter().GetValue()
			}
			samples = append(samples, Sample{
				Name:   family.GetName(),
				Labels: labels,
				Value:  value,
			})
		}
	}
	sort.SliceStable(samples, func(i, j int) bool {
		return samples[i].Name < samples[j].Name
	})
	return samples, nil
}
