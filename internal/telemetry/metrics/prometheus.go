package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/push"
)

func SetupPrometheus() *prometheus.Registry {
	promRegistry := prometheus.NewRegistry()

	// Add Go module build info and runtime metrics.
	promRegistry.MustRegister(
		collectors.NewBuildInfoCollector(),
		collectors.NewGoCollector(),
	)

	return promRegistry
}

// Push sends everything gathered so far to a prometheus pushgateway.
// The CLI is short-lived, so nothing is ever scraped from it.
func Push(pushgatewayURL, job string, reg *prometheus.Registry) error {
	if err := push.New(pushgatewayURL, job).Gatherer(reg).Push(); err != nil {
		return fmt.Errorf("push metrics to %s: %w", pushgatewayURL, err)
	}
	return nil
}
