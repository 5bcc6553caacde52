package convert

import (
	"fmt"
	"os"
	"sync"
	"time"

	go_json "github.com/goccy/go-json"
)

// Diagnostics records what each conversion run managed to process. It is
// written next to the snapshot so a scheduled run that goes wrong leaves
// a trail.
type Diagnostics struct {
	FetchTime     string          `json:"fetchTime"`
	DataProcessed map[string]bool `json:"dataProcessed"`
	Errors        []string        `json:"errors"`
	Success       bool            `json:"success"`

	mu sync.Mutex
}

func newDiagnostics(now time.Time) *Diagnostics {
	return &Diagnostics{
		FetchTime:     now.Format(time.RFC3339),
		DataProcessed: make(map[string]bool),
		Errors:        []string{},
	}
}

func (d *Diagnostics) record(category string, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err != nil {
		d.DataProcessed[category] = false
		d.Errors = append(d.Errors, fmt.Sprintf("%s: %v", category, err))
		return
	}
	d.DataProcessed[category] = true
}

func (d *Diagnostics) addError(msg string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Errors = append(d.Errors, msg)
}

// Write saves the diagnostics file. Failure to write diagnostics is not
// fatal to the conversion itself.
func (d *Diagnostics) Write(path string) error {
	data, err := go_json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding diagnostics: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing diagnostics: %w", err)
	}
	return nil
}
