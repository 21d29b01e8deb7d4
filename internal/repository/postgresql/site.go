package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/developnetgeometry/unity-hrms-go/internal/domain/site"
	"github.com/developnetgeometry/unity-hrms-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type siteRepository struct {
	db *database.DB
}

// NewSiteRepository creates a PostgreSQL-backed site repository.
func NewSiteRepository(db *database.DB) site.SiteRepository {
	return &siteRepository{db: db}
}

// GetByID implements site.SiteRepository.
func (r *siteRepository) GetByID(ctx context.Context, id string, companyID string) (site.Site, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name, address, latitude, longitude,
			   radius_meters, is_active, created_at, updated_at
		FROM sites
		WHERE id = $1
		  AND company_id = $2
	`

	var s site.Site
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&s.ID, &s.CompanyID, &s.Name, &s.Address, &s.Latitude, &s.Longitude,
		&s.RadiusMeters, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return site.Site{}, site.ErrSiteNotFound
		}
		return site.Site{}, fmt.Errorf("failed to get site: %w", err)
	}

	return s, nil
}
