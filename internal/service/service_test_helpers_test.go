package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/portfolio-api/internal/models"
	"github.com/noah-isme/portfolio-api/internal/notifier"
)

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&models.Contact{}))
	return db
}

type notifierStub struct {
	calls []notifier.Submission
	err   error
}

func (n *notifierStub) Send(_ context.Context, submission notifier.Submission) error {
	n.calls = append(n.calls, submission)
	return n.err
}

type storeStub struct {
	created []models.Contact
	err     error
}

func (s *storeStub) Create(_ context.Context, contact *models.Contact) error {
	if s.err != nil {
		return s.err
	}
	contact.ID = uint(len(s.created) + 1)
	s.created = append(s.created, *contact)
	return nil
}

var errTransport = &notifier.Error{Transport: "smtp", Err: errors.New("dial tcp: connection refused")}
