package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/stocker-hk/stocker-backend/internal/apperrors"
	"github.com/stocker-hk/stocker-backend/internal/model"
)

// SettingRepository provides data access methods for the system_setting table.
type SettingRepository struct {
	db *sql.DB
}

// NewSettingRepository creates a new SettingRepository with the provided database connection.
func NewSettingRepository(db *sql.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// GetSetting retrieves a system setting by key.
// Returns apperrors.ErrSettingNotFound when the key does not exist.
func (s *SettingRepository) GetSetting(key string) (model.SystemSetting, error) {
	row := s.db.QueryRow(
		`SELECT id, "key", value, updated_at FROM system_setting WHERE "key" = ?`,
		key,
	)

	var setting model.SystemSetting
	var updatedAt sql.NullString
	err := row.Scan(&setting.ID, &setting.Key, &setting.Value, &updatedAt)
	if err == sql.ErrNoRows {
		return model.SystemSetting{}, apperrors.ErrSettingNotFound
	}
	if err != nil {
		return model.SystemSetting{}, fmt.Errorf("failed to scan system_setting table results: %w", err)
	}

	if updatedAt.Valid {
		setting.UpdatedAt, err = ParseTime(updatedAt.String)
		if err != nil {
			return model.SystemSetting{}, err
		}
	}
	return setting, nil
}

// UpsertSetting writes a system setting, replacing any existing value for the key.
func (s *SettingRepository) UpsertSetting(ctx context.Context, setting *model.SystemSetting) error {
	query := `
		INSERT INTO system_setting (id, "key", value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT("key") DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`
	_, err := s.db.ExecContext(ctx, query,
		setting.ID,
		setting.Key,
		setting.Value,
		setting.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert system_setting: %w", err)
	}
	return nil
}
