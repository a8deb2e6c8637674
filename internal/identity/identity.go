// Package identity manages the per-device pseudonymous identifier. The id is
// generated once, persisted to local settings storage, and reused for the
// lifetime of the installation; it is the sole join key for interaction
// records.
package identity

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"feedsync/internal/core/ports"
)

type settings struct {
	DeviceID string `json:"device_id"`
}

// FileProvider stores the identifier in a small JSON settings file.
type FileProvider struct {
	path string

	mu     sync.Mutex
	cached string
}

var _ ports.Identity = (*FileProvider)(nil)

// New builds a provider backed by the settings file at path. Nothing is read
// or generated until the first ID call.
func New(path string) *FileProvider {
	return &FileProvider{path: path}
}

// ID returns the device identifier, generating and persisting one on first
// use.
func (p *FileProvider) ID() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cached != "" {
		return p.cached, nil
	}

	if raw, err := os.ReadFile(p.path); err == nil {
		var s settings
		if err := json.Unmarshal(raw, &s); err == nil && s.DeviceID != "" {
			p.cached = s.DeviceID
			return p.cached, nil
		}
	}

	id := uuid.NewString()
	raw, err := json.MarshalIndent(settings{DeviceID: id}, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(p.path, raw, 0o644); err != nil {
		return "", err
	}
	p.cached = id
	return id, nil
}
