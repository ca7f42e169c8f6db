package metric

import (
	"fmt"
	"sort"

	"chateval/internal/testcase"
)

// Builder turns a resolved declaration into a Metric. The
// declaration's Params map carries any metric-specific settings
// (e.g. GEval criteria).
type Builder func(spec testcase.MetricSpec, threshold float64, model string) (Metric, error)

// Registry maps metric names to builders. It is an explicit mapping
// with copy-on-override semantics; no global mutable registration.
type Registry struct {
	builders map[string]Builder
}

// NewRegistry returns a registry seeded with the standard metrics.
func NewRegistry() *Registry {
	builders := make(map[string]Builder, len(standardMetrics)+1)
	for name, definition := range standardMetrics {
		builders[name] = definition.builder(name)
	}
	builders[geval] = buildGEval
	return &Registry{builders: builders}
}

// WithBuilders returns a copy of the registry with the given builders
// added or overridden.
func (r *Registry) WithBuilders(overrides map[string]Builder) *Registry {
	builders := make(map[string]Builder, len(r.builders)+len(overrides))
	for name, builder := range r.builders {
		builders[name] = builder
	}
	for name, builder := range overrides {
		builders[name] = builder
	}
	return &Registry{builders: builders}
}

// Has reports whether a metric name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.builders[name]
	return ok
}

// Names returns the registered metric names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build resolves every declaration into a Metric, in order. Threshold
// and model resolution is most-specific-wins: the declaration's own
// value, then the run's default, then the library default.
func (r *Registry) Build(specs []testcase.MetricSpec, defaultModel string) ([]Metric, error) {
	metrics := make([]Metric, 0, len(specs))
	for _, spec := range specs {
		builder, ok := r.builders[spec.Name]
		if !ok {
			return nil, &ConfigurationError{Metric: spec.Name, Err: fmt.Errorf("unknown metric name")}
		}
		threshold := DefaultThreshold
		if spec.Threshold != nil {
			threshold = *spec.Threshold
		}
		model := spec.Model
		if model == "" {
			model = defaultModel
		}
		m, err := builder(spec, threshold, model)
		if err != nil {
			return nil, err
		}
		metrics = append(metrics, m)
	}
	return metrics, nil
}
