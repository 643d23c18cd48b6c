package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the service's Prometheus collectors.
type Metrics struct {
	SignupsTotal     *prometheus.CounterVec
	ReportsGenerated *prometheus.CounterVec
	DebtorsReported  prometheus.Gauge
}

// New registers the collectors on reg and returns them.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SignupsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "members",
			Name:      "signups_total",
			Help:      "Signup applications received, by applicant kind and outcome.",
		}, []string{"kind", "outcome"}),
		ReportsGenerated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "members",
			Name:      "reports_generated_total",
			Help:      "Administrative reports generated, by report name.",
		}, []string{"report"}),
		DebtorsReported: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "members",
			Name:      "debtors_last_report",
			Help:      "Number of members in arrears in the most recent debts report.",
		}),
	}
}
