package auth

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeSuccess = "success"
	outcomeFailure = "failure"
)

var (
	operations     *prometheus.CounterVec //nolint:gochecknoglobals
	operationsOnce sync.Once              //nolint:gochecknoglobals
)

func operationsCounter() *prometheus.CounterVec {
	operationsOnce.Do(func() {
		operations = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "brokerdesk_rbac_operations_total",
				Help: "Number of role and permission mutations, by operation and outcome.",
			},
			[]string{"operation", "outcome"},
		)
	})

	return operations
}
