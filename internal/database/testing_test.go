package database

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/vidyavichar/server/internal/models"
)

func setupTestDB(t *testing.T) *Database {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Room{}, &models.Participant{}, &models.Question{}))

	db.Exec("DELETE FROM questions")
	db.Exec("DELETE FROM participants")
	db.Exec("DELETE FROM rooms")
	db.Exec("DELETE FROM users")

	return NewDatabase(db)
}
