package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DRAFT_TTL_DAYS", "7")
	t.Setenv("SALT_ROUND", "not-a-number")

	LoadConfig()

	assert.Equal(t, "8080", AppConfig.Port)
	assert.Equal(t, "sqlite", AppConfig.DBDriver)
	assert.Equal(t, 7, AppConfig.DraftTTLDays)
	assert.Equal(t, 10, AppConfig.SaltRound, "bad integers fall back to the default")
	assert.Equal(t, "./uploads", AppConfig.UploadDir)
}
