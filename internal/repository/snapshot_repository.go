package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/segyhp/zakat-engine/internal/domain"
)

type snapshotRepository struct {
	db *sqlx.DB
}

func NewSnapshotRepository(db *sqlx.DB) SnapshotRepository {
	return &snapshotRepository{db: db}
}

func (r *snapshotRepository) Upsert(ctx context.Context, snapshot *domain.Snapshot) error {
	query := `
		INSERT INTO zakat_snapshots (id, device_id, declaration, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (device_id) DO UPDATE
		SET declaration = EXCLUDED.declaration, updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		snapshot.ID,
		snapshot.DeviceID,
		snapshot.Declaration,
		snapshot.CreatedAt,
		snapshot.UpdatedAt,
	)

	return err
}

func (r *snapshotRepository) GetByDeviceID(ctx context.Context, deviceID string) (*domain.Snapshot, error) {
	query := `
		SELECT id, device_id, declaration, created_at, updated_at
		FROM zakat_snapshots
		WHERE device_id = $1
	`

	var snapshot domain.Snapshot
	err := r.db.GetContext(ctx, &snapshot, query, deviceID)
	if err != nil {
		return nil, err
	}

	return &snapshot, nil
}

func (r *snapshotRepository) Delete(ctx context.Context, deviceID string) error {
	query := `
		DELETE FROM zakat_snapshots
		WHERE device_id = $1
	`

	_, err := r.db.ExecContext(ctx, query, deviceID)
	return err
}
