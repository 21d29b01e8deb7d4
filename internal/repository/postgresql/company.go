package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/developnetgeometry/unity-hrms-go/internal/domain/company"
	"github.com/developnetgeometry/unity-hrms-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type companySettingsRepository struct {
	db *database.DB

	// defaultWindowHours applies to companies without a settings row,
	// taken from CORRECTION_WINDOW_HOURS.
	defaultWindowHours int
}

// NewCompanySettingsRepository creates a PostgreSQL-backed settings repository.
func NewCompanySettingsRepository(db *database.DB, defaultWindowHours int) company.SettingsRepository {
	if defaultWindowHours <= 0 {
		defaultWindowHours = company.DefaultCorrectionWindowHours
	}
	return &companySettingsRepository{db: db, defaultWindowHours: defaultWindowHours}
}

// GetSettings implements company.SettingsRepository.
func (r *companySettingsRepository) GetSettings(ctx context.Context, companyID string) (company.Settings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT company_id, timezone, correction_window_hours, created_at, updated_at
		FROM company_settings
		WHERE company_id = $1
	`

	var settings company.Settings
	err := q.QueryRow(ctx, query, companyID).Scan(
		&settings.CompanyID, &settings.Timezone, &settings.CorrectionWindowHours,
		&settings.CreatedAt, &settings.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Companies without an explicit row get defaults.
			return company.Settings{
				CompanyID:             companyID,
				Timezone:              "Asia/Kuala_Lumpur",
				CorrectionWindowHours: r.defaultWindowHours,
			}, nil
		}
		return company.Settings{}, fmt.Errorf("failed to get company settings: %w", err)
	}

	return settings, nil
}
