package memory

import (
	"context"
	"sync"
)

// ClubDirectory maps club identifiers to display names.
type ClubDirectory struct {
	mu    sync.RWMutex
	names map[string]string
}

func NewClubDirectory() *ClubDirectory {
	return &ClubDirectory{names: make(map[string]string)}
}

func (d *ClubDirectory) ResolveName(_ context.Context, clubID string) (string, bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	name, ok := d.names[clubID]

	return name, ok, nil
}

func (d *ClubDirectory) Put(clubID, name string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.names[clubID] = name
}
