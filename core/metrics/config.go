package metrics

import "github.com/kilianp07/highway/core/factory"

// Config defines settings for metrics sinks.
type Config struct {
	Sinks []factory.ModuleConfig `json:"sinks" yaml:"sinks" validate:"dive"`
	// PrometheusAddr enables the /metrics endpoint when set.
	PrometheusAddr string `json:"prometheus_addr" yaml:"prometheus_addr" validate:"omitempty,hostname_port"`
}
