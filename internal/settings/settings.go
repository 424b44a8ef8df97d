package settings

import (
	"encoding/json"
	"fmt"
	"os"
)

// UserSettings lists the currencies and tickers shown on the dashboard.
type UserSettings struct {
	Currencies []string `json:"user_currencies"`
	Stocks     []string `json:"user_stocks"`
}

// File reads user settings from a JSON file on every Load so edits apply
// without a restart.
type File struct {
	path string
}

func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) Load() (*UserSettings, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file %s: %w", f.path, err)
	}
	return Parse(data)
}

func Parse(data []byte) (*UserSettings, error) {
	var s UserSettings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	return &s, nil
}
