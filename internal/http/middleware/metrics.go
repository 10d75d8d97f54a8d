package middleware

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RLRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limiter_requests_total",
			Help: "Total requests seen by the rate limiter",
		},
		[]string{"endpoint"},
	)
	RLBlocked = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limiter_blocked_total",
			Help: "Total requests blocked by the rate limiter",
		},
		[]string{"endpoint"},
	)
	ClaimsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webapp_claims_total",
			Help: "Claim attempts by currency and outcome",
		},
		[]string{"currency", "outcome"},
	)
	DepositsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webapp_deposits_total",
			Help: "Deposit attempts by outcome",
		},
		[]string{"outcome"},
	)
	HatchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webapp_hatches_total",
			Help: "Completed hatches by rarity",
		},
		[]string{"rarity"},
	)
)

func init() {
	prometheus.MustRegister(RLRequests)
	prometheus.MustRegister(RLBlocked)
	prometheus.MustRegister(ClaimsTotal)
	prometheus.MustRegister(DepositsTotal)
	prometheus.MustRegister(HatchesTotal)
}
