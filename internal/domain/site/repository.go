package site

import "context"

type SiteRepository interface {
	// GetByID retrieves a site by ID with company isolation
	GetByID(ctx context.Context, id string, companyID string) (Site, error)
}
