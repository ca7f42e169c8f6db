package testcase

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseError reports a test-case file that could not be decoded.
type ParseError struct {
	Path string
	Err  error
}

// Error returns a readable message for the parse failure.
func (err *ParseError) Error() string {
	return fmt.Sprintf("parse test case %s: %v", err.Path, err.Err)
}

// Unwrap exposes the underlying decode error.
func (err *ParseError) Unwrap() error {
	return err.Err
}

// LoadOptions adjusts loader behavior.
type LoadOptions struct {
	// KnownMetric, when set, rejects test cases naming a metric the
	// checker does not recognize.
	KnownMetric func(name string) bool
}

// LoadFile reads, parses, and validates a single test-case file.
// JSON and YAML files are recognized by extension.
func LoadFile(path string, opts LoadOptions) (TestCase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return TestCase{}, fmt.Errorf("read test case: %w", err)
	}
	tc, err := parse(data, path)
	if err != nil {
		return TestCase{}, err
	}
	normalize(&tc)
	if err := Validate(tc, opts.KnownMetric); err != nil {
		return TestCase{}, err
	}
	tc.FilePath = path
	return tc, nil
}

// LoadDir loads every recognized test-case file in a directory. Files
// that fail to parse or validate are collected in the skipped list and
// do not abort the scan. A missing or unreadable directory is an error.
func LoadDir(dir string, opts LoadOptions) ([]TestCase, []Skipped, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("read test data directory: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !recognizedFile(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	cases := make([]TestCase, 0, len(names))
	var skipped []Skipped
	for _, name := range names {
		path := filepath.Join(dir, name)
		tc, err := LoadFile(path, opts)
		if err != nil {
			skipped = append(skipped, Skipped{Path: path, Err: err})
			continue
		}
		cases = append(cases, tc)
	}
	return cases, skipped, nil
}

func recognizedFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func parse(data []byte, path string) (TestCase, error) {
	document, err := decodeDocument(data, path)
	if err != nil {
		return TestCase{}, &ParseError{Path: path, Err: err}
	}
	if err := validateSchema(document); err != nil {
		return TestCase{}, &ValidationError{Path: path, Issues: []Issue{{Field: "$", Message: err.Error()}}}
	}
	tc, err := decodeTestCase(data, path)
	if err != nil {
		return TestCase{}, &ParseError{Path: path, Err: err}
	}
	return tc, nil
}

// decodeDocument produces a JSON-compatible value for schema checking.
func decodeDocument(data []byte, path string) (any, error) {
	var document any
	if isJSONFile(path) {
		if err := json.Unmarshal(data, &document); err != nil {
			return nil, err
		}
		return document, nil
	}
	var node any
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	// Round-trip through JSON so the schema validator sees the value
	// kinds it expects.
	encoded, err := json.Marshal(node)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(encoded, &document); err != nil {
		return nil, err
	}
	return document, nil
}

func decodeTestCase(data []byte, path string) (TestCase, error) {
	var tc TestCase
	if isJSONFile(path) {
		decoder := json.NewDecoder(bytes.NewReader(data))
		if err := decoder.Decode(&tc); err != nil {
			return TestCase{}, err
		}
		if err := decoder.Decode(&struct{}{}); err != io.EOF {
			if err == nil {
				return TestCase{}, fmt.Errorf("multiple documents are not supported")
			}
			return TestCase{}, err
		}
		return tc, nil
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&tc); err != nil {
		return TestCase{}, err
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return TestCase{}, fmt.Errorf("multiple documents are not supported")
		}
		return TestCase{}, err
	}
	return tc, nil
}

func isJSONFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".json"
}

func normalize(tc *TestCase) {
	tc.ID = strings.TrimSpace(tc.ID)
	for i, message := range tc.Messages {
		tc.Messages[i].Role = strings.ToLower(strings.TrimSpace(message.Role))
		tc.Messages[i].Content = message.Content
	}
	for i, spec := range tc.Metrics {
		tc.Metrics[i].Name = strings.TrimSpace(spec.Name)
		tc.Metrics[i].Model = strings.TrimSpace(spec.Model)
	}
}
