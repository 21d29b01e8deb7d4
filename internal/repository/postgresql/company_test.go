package postgresql

import (
	"testing"

	"github.com/developnetgeometry/unity-hrms-go/internal/domain/company"
	"github.com/stretchr/testify/assert"
)

func TestNewCompanySettingsRepositoryDefaultWindow(t *testing.T) {
	t.Run("configured window is carried", func(t *testing.T) {
		repo := NewCompanySettingsRepository(nil, 48).(*companySettingsRepository)
		assert.Equal(t, 48, repo.defaultWindowHours)
	})

	t.Run("zero falls back to the built-in default", func(t *testing.T) {
		repo := NewCompanySettingsRepository(nil, 0).(*companySettingsRepository)
		assert.Equal(t, company.DefaultCorrectionWindowHours, repo.defaultWindowHours)
	})
}
