package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/stocker-hk/stocker-backend/internal/apperrors"
	"github.com/stocker-hk/stocker-backend/internal/model"
)

// AssetRepository provides data access methods for the asset table.
type AssetRepository struct {
	db *sql.DB
}

// NewAssetRepository creates a new AssetRepository with the provided database connection.
func NewAssetRepository(db *sql.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

const assetColumns = `id, symbol, name, currency, sector, current_price, last_price_updated`

// GetAllAssets retrieves every asset, ordered by symbol.
func (s *AssetRepository) GetAllAssets() ([]model.Asset, error) {
	rows, err := s.db.Query(`SELECT ` + assetColumns + ` FROM asset ORDER BY symbol ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query asset table: %w", err)
	}
	defer rows.Close()

	assets := []model.Asset{}
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating asset table: %w", err)
	}

	return assets, nil
}

// GetAssetBySymbol retrieves one asset by its symbol.
// Returns apperrors.ErrAssetNotFound when no such asset exists.
func (s *AssetRepository) GetAssetBySymbol(symbol string) (model.Asset, error) {
	row := s.db.QueryRow(`SELECT `+assetColumns+` FROM asset WHERE symbol = ?`, symbol)

	asset, err := scanAsset(row)
	if err == sql.ErrNoRows {
		return model.Asset{}, apperrors.ErrAssetNotFound
	}
	if err != nil {
		return model.Asset{}, err
	}
	return asset, nil
}

// UpsertAsset inserts an asset or, when the symbol already exists, refreshes
// its mutable fields.
func (s *AssetRepository) UpsertAsset(ctx context.Context, asset *model.Asset) error {
	query := `
		INSERT INTO asset (id, symbol, name, currency, sector, current_price, last_price_updated)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(symbol) DO UPDATE SET
			name = excluded.name,
			currency = excluded.currency,
			sector = excluded.sector
	`
	_, err := s.db.ExecContext(ctx, query,
		asset.ID,
		asset.Symbol,
		asset.Name,
		string(asset.Currency),
		asset.Sector,
		asset.CurrentPrice,
		formatNullableTime(asset.LastPriceUpdated),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert asset: %w", err)
	}
	return nil
}

// UpdatePrice stores a freshly fetched price and its fetch time.
func (s *AssetRepository) UpdatePrice(ctx context.Context, assetID string, price float64, updatedAt time.Time) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE asset SET current_price = ?, last_price_updated = ? WHERE id = ?`,
		price, updatedAt.UTC().Format(time.RFC3339), assetID,
	)
	if err != nil {
		return fmt.Errorf("failed to update asset price: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check price update: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrAssetNotFound
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanAsset(row scanner) (model.Asset, error) {
	var a model.Asset
	var currency string
	var lastUpdated sql.NullString

	err := row.Scan(&a.ID, &a.Symbol, &a.Name, &currency, &a.Sector, &a.CurrentPrice, &lastUpdated)
	if err == sql.ErrNoRows {
		return model.Asset{}, err
	}
	if err != nil {
		return model.Asset{}, fmt.Errorf("failed to scan asset table results: %w", err)
	}

	a.Currency = currencyOf(currency)
	if lastUpdated.Valid {
		a.LastPriceUpdated, err = ParseTime(lastUpdated.String)
		if err != nil {
			return model.Asset{}, err
		}
	}

	return a, nil
}
