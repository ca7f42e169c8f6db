package report

import (
	"encoding/json"
	"io"
	"os"

	"chateval/internal/runner"
)

// WriteJSON writes the run results as indented JSON.
func WriteJSON(w io.Writer, results runner.Results) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(results)
}

// WriteJSONFile writes the run results to path.
func WriteJSONFile(path string, results runner.Results) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteJSON(file, results); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// LoadResults reads run results previously written with WriteJSONFile.
func LoadResults(path string) (runner.Results, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return runner.Results{}, err
	}
	var results runner.Results
	if err := json.Unmarshal(data, &results); err != nil {
		return runner.Results{}, err
	}
	return results, nil
}
