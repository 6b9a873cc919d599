package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCommentRejectsEmptyBody(t *testing.T) {
	db := newTestDB(t)
	creds, _ := newCredentialService(db, time.Minute)
	events := NewEventService(db)
	comments := NewCommentService(db)
	ctx := context.Background()

	author := registerUser(t, creds, "Ana", "ana@example.com")
	event, err := events.Create(ctx, author.ID, EventInput{Title: "Run Club"})
	require.NoError(t, err)

	_, err = comments.Add(ctx, event.ID, author.ID, "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = comments.Add(ctx, event.ID, author.ID, "   ")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAddCommentUnknownEvent(t *testing.T) {
	db := newTestDB(t)
	creds, _ := newCredentialService(db, time.Minute)
	comments := NewCommentService(db)

	author := registerUser(t, creds, "Ana", "ana@example.com")
	_, err := comments.Add(context.Background(), 999, author.ID, "hello")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListCommentsOrderedWithAuthorSnapshot(t *testing.T) {
	db := newTestDB(t)
	creds, _ := newCredentialService(db, time.Minute)
	events := NewEventService(db)
	comments := NewCommentService(db)
	ctx := context.Background()

	ana := registerUser(t, creds, "Ana", "ana@example.com")
	ben := registerUser(t, creds, "Ben", "ben@example.com")

	event, err := events.Create(ctx, ana.ID, EventInput{Title: "Run Club"})
	require.NoError(t, err)

	first, err := comments.Add(ctx, event.ID, ana.ID, "who is coming?")
	require.NoError(t, err)
	second, err := comments.Add(ctx, event.ID, ben.ID, "me!")
	require.NoError(t, err)

	// Force distinct timestamps so ordering is deterministic.
	require.NoError(t, db.Model(first).Update("created_at", time.Now().Add(-time.Minute)).Error)

	views, err := comments.List(ctx, event.ID)
	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.Equal(t, second.ID, views[1].ID)
	assert.Equal(t, "who is coming?", views[0].Body)
	assert.Equal(t, "Ana", views[0].Author.Name)
	assert.Equal(t, "me!", views[1].Body)
	assert.Equal(t, "Ben", views[1].Author.Name)
	assert.True(t, views[0].CreatedAt.Before(views[1].CreatedAt))
}

func TestListCommentsEmptyEvent(t *testing.T) {
	db := newTestDB(t)
	creds, _ := newCredentialService(db, time.Minute)
	events := NewEventService(db)
	comments := NewCommentService(db)
	ctx := context.Background()

	author := registerUser(t, creds, "Ana", "ana@example.com")
	event, err := events.Create(ctx, author.ID, EventInput{Title: "Run Club"})
	require.NoError(t, err)

	views, err := comments.List(ctx, event.ID)
	require.NoError(t, err)
	assert.Empty(t, views)
}
