package service

import (
	"context"
	"testing"
	"time"

	"eventshare-service/internal/model"
	"eventshare-service/internal/notify"
	"eventshare-service/pkg/database"
	"eventshare-service/pkg/resettoken"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// A fresh pool connection would see a fresh in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

// capturingNotifier records the last reset token instead of sending it.
type capturingNotifier struct {
	email string
	token string
}

var _ notify.Notifier = (*capturingNotifier)(nil)

func (n *capturingNotifier) PasswordReset(_ context.Context, email, token string) error {
	n.email = email
	n.token = token
	return nil
}

func newCredentialService(db *gorm.DB, ttl time.Duration) (*CredentialService, *capturingNotifier) {
	notifier := &capturingNotifier{}
	signer := resettoken.New("test-signing-key", ttl)
	// Minimum bcrypt cost keeps the test suite fast.
	return NewCredentialService(db, signer, notifier, 4), notifier
}

func registerUser(t *testing.T, creds *CredentialService, name, email string) *model.User {
	t.Helper()
	user, err := creds.Register(context.Background(), RegisterInput{
		Name:     name,
		Email:    email,
		Password: "hunter22",
		City:     "Lima",
		Country:  "Peru",
	})
	require.NoError(t, err)
	return user
}
