package bank

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"devprep/internal/model"
)

type bankFile struct {
	Questions []model.Question `json:"questions" yaml:"questions"`
}

// Load reads and validates a question bank. The format is chosen by file
// extension: .db/.sqlite/.sqlite3 open a SQLite bank, .yaml/.yml decode
// YAML, anything else decodes JSON. Decode failures return *LoadError,
// schema violations return *ValidationError.
func Load(path string) (*Bank, error) {
	var (
		questions []model.Question
		err       error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		questions, err = loadSQLite(path)
	case ".yaml", ".yml":
		questions, err = loadYAML(path)
	default:
		questions, err = loadJSON(path)
	}
	if err != nil {
		return nil, err
	}
	return New(questions)
}

func loadJSON(path string) ([]model.Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	var file bankFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return file.Questions, nil
}

func loadYAML(path string) ([]model.Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	var file bankFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return file.Questions, nil
}
