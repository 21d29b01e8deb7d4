package company

import "context"

type SettingsRepository interface {
	// GetSettings returns the company's attendance settings. Implementations
	// return defaults when no row exists.
	GetSettings(ctx context.Context, companyID string) (Settings, error)
}
