package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"devprep/internal/model"
)

type exportFile struct {
	Summary   model.Summary    `json:"session_summary"`
	Responses []model.Response `json:"results"`
}

// Export writes the summary and per-question results as JSON. The file is
// written to a temp file first and renamed into place.
func Export(path string, summary model.Summary, responses []model.Response) error {
	data, err := json.MarshalIndent(exportFile{Summary: summary, Responses: responses}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	dir := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(dir, "devprep-export-*.json")
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close export file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return nil
}
