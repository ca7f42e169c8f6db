package testcase

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// reservedMetricKeys are MetricSpec fields with dedicated struct
// members; everything else becomes a metric parameter.
var reservedMetricKeys = map[string]struct{}{
	"name":      {},
	"threshold": {},
	"model":     {},
}

// UnmarshalJSON decodes a metric declaration, routing unrecognized keys
// into Params.
func (spec *MetricSpec) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if value, ok := raw["name"]; ok {
		if err := json.Unmarshal(value, &spec.Name); err != nil {
			return fmt.Errorf("metric name: %w", err)
		}
	}
	if value, ok := raw["threshold"]; ok {
		var threshold float64
		if err := json.Unmarshal(value, &threshold); err != nil {
			return fmt.Errorf("metric threshold: %w", err)
		}
		spec.Threshold = &threshold
	}
	if value, ok := raw["model"]; ok {
		if err := json.Unmarshal(value, &spec.Model); err != nil {
			return fmt.Errorf("metric model: %w", err)
		}
	}
	for key, value := range raw {
		if _, reserved := reservedMetricKeys[key]; reserved {
			continue
		}
		var param any
		if err := json.Unmarshal(value, &param); err != nil {
			return fmt.Errorf("metric param %s: %w", key, err)
		}
		if spec.Params == nil {
			spec.Params = map[string]any{}
		}
		spec.Params[key] = param
	}
	return nil
}

// MarshalJSON re-emits a metric declaration in its file form.
func (spec MetricSpec) MarshalJSON() ([]byte, error) {
	raw := map[string]any{}
	for key, value := range spec.Params {
		raw[key] = value
	}
	raw["name"] = spec.Name
	if spec.Threshold != nil {
		raw["threshold"] = *spec.Threshold
	}
	if spec.Model != "" {
		raw["model"] = spec.Model
	}
	return json.Marshal(raw)
}

// UnmarshalYAML decodes a metric declaration from a YAML mapping node.
func (spec *MetricSpec) UnmarshalYAML(node *yaml.Node) error {
	var raw map[string]any
	if err := node.Decode(&raw); err != nil {
		return err
	}
	if value, ok := raw["name"]; ok {
		name, ok := value.(string)
		if !ok {
			return fmt.Errorf("metric name: expected string, got %T", value)
		}
		spec.Name = name
	}
	if value, ok := raw["threshold"]; ok {
		threshold, err := toFloat(value)
		if err != nil {
			return fmt.Errorf("metric threshold: %w", err)
		}
		spec.Threshold = &threshold
	}
	if value, ok := raw["model"]; ok {
		model, ok := value.(string)
		if !ok {
			return fmt.Errorf("metric model: expected string, got %T", value)
		}
		spec.Model = model
	}
	for key, value := range raw {
		if _, reserved := reservedMetricKeys[key]; reserved {
			continue
		}
		if spec.Params == nil {
			spec.Params = map[string]any{}
		}
		spec.Params[key] = value
	}
	return nil
}

func toFloat(value any) (float64, error) {
	switch number := value.(type) {
	case float64:
		return number, nil
	case int:
		return float64(number), nil
	default:
		return 0, fmt.Errorf("expected number, got %T", value)
	}
}
