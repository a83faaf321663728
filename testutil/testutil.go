// Package testutil sets up the database, config and tokens that handler
// tests share.
package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"filings/config"
	"filings/database"
	"filings/middleware"
	"filings/models"
)

// Setup installs a test config and a fresh in-memory database as the globals.
func Setup(t *testing.T) *gorm.DB {
	t.Helper()

	prev := config.AppConfig
	config.AppConfig = &config.Config{
		JWTKey:       "test-secret",
		SaltRound:    bcrypt.MinCost,
		UploadDir:    t.TempDir(),
		DraftTTLDays: 30,
	}

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
		config.AppConfig = prev
	})
	return db
}

// CreateUser stores a user with the given role and password "secret123".
func CreateUser(t *testing.T, db *gorm.DB, email, role string) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	u := models.User{Name: strings.Split(email, "@")[0], Email: email, Role: role, Password: string(hash)}
	require.NoError(t, db.Create(&u).Error)
	return u
}

// Bearer returns an Authorization header value for u.
func Bearer(t *testing.T, u models.User) string {
	t.Helper()
	tok, err := middleware.GenerateJWT(u.ID, u.Name, u.Role, u.Email)
	require.NoError(t, err)
	return "Bearer " + tok
}
