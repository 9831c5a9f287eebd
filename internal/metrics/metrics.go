package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	PetsBought = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pets_bought_total",
		Help: "Pets purchased",
	})
	ClaimsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pet_claims_total",
		Help: "Settled pet claims by kind",
	}, []string{"kind"})
	EvolutionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pet_evolutions_total",
		Help: "Pets that reached their ROI cap",
	})
	SpinsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wheel_spins_total",
		Help: "Wheel spins by variant",
	}, []string{"variant"})
	AutoClaimRuns = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "auto_claim_runs_total",
		Help: "Auto-claim worker passes",
	})
)

func init() {
	prometheus.MustRegister(PetsBought, ClaimsTotal, EvolutionsTotal, SpinsTotal, AutoClaimRuns)
}
