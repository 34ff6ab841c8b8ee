package schemas

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
	"gopkg.in/yaml.v3"
)

// LoadResume reads a seed record from a .json, .yaml or .yml file, validates it
// against the resume schema and returns it normalized.
func LoadResume(path string) (types.Resume, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Resume{}, fmt.Errorf("failed to read resume file: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
	case ".yaml", ".yml":
		data, err = yamlToJSON(data)
		if err != nil {
			return types.Resume{}, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	default:
		return types.Resume{}, fmt.Errorf("unsupported resume file extension %q (expected .json, .yaml or .yml)", ext)
	}

	return DecodeResume(data)
}

// DecodeResume validates JSON against the resume schema and decodes it
func DecodeResume(data []byte) (types.Resume, error) {
	if err := ValidateResumeJSON(data); err != nil {
		return types.Resume{}, err
	}

	var r types.Resume
	if err := json.Unmarshal(data, &r); err != nil {
		return types.Resume{}, fmt.Errorf("failed to decode resume: %w", err)
	}
	r.Normalize()
	return r, nil
}

// yamlToJSON re-encodes a YAML document as JSON so one schema covers both formats
func yamlToJSON(data []byte) ([]byte, error) {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		doc = map[string]interface{}{}
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to convert YAML to JSON: %w", err)
	}
	return out, nil
}
