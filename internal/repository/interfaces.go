package repository

import (
	"context"

	"github.com/segyhp/zakat-engine/internal/domain"
)

// SnapshotRepository defines the interface for declaration snapshot storage
type SnapshotRepository interface {
	// Upsert overwrites the snapshot for a device, last write wins
	Upsert(ctx context.Context, snapshot *domain.Snapshot) error

	// GetByDeviceID retrieves the snapshot stored for a device
	GetByDeviceID(ctx context.Context, deviceID string) (*domain.Snapshot, error)

	// Delete removes the snapshot for a device
	Delete(ctx context.Context, deviceID string) error
}

// PreferenceRepository defines the interface for per-device UI preferences
type PreferenceRepository interface {
	// SetActiveTab stores the active navigation tab for a device
	SetActiveTab(ctx context.Context, deviceID, tab string) error

	// GetActiveTab retrieves the active navigation tab for a device
	GetActiveTab(ctx context.Context, deviceID string) (string, error)
}
