package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileViewComposesAllSections(t *testing.T) {
	db := newTestDB(t)
	creds, _ := newCredentialService(db, time.Minute)
	events := NewEventService(db)
	attendance := NewAttendanceService(db)
	comments := NewCommentService(db)
	profiles := NewProfileService(db, events)
	ctx := context.Background()

	ana := registerUser(t, creds, "Ana", "ana@example.com")
	ben := registerUser(t, creds, "Ben", "ben@example.com")

	created, err := events.Create(ctx, ana.ID, EventInput{Title: "Run Club", City: "Lima"})
	require.NoError(t, err)

	bensEvent, err := events.Create(ctx, ben.ID, EventInput{Title: "Tango Night", City: "Buenos Aires"})
	require.NoError(t, err)
	_, err = attendance.Join(ctx, bensEvent.ID, ana.ID)
	require.NoError(t, err)

	_, err = comments.Add(ctx, bensEvent.ID, ana.ID, "count me in")
	require.NoError(t, err)

	require.NoError(t, profiles.SetInterests(ctx, ana.ID, []uint{1, 2}))

	view, err := profiles.View(ctx, ana.ID)
	require.NoError(t, err)

	assert.Equal(t, "Ana", view.Name)
	assert.Equal(t, "ana@example.com", view.Email)
	assert.Len(t, view.Interests, 2)

	require.Len(t, view.EventsCreated, 1)
	assert.Equal(t, created.ID, view.EventsCreated[0].ID)

	// Attended includes both her own event (implicit join at creation)
	// and the one she joined.
	ids := make([]uint, 0, len(view.EventsAttended))
	for _, ev := range view.EventsAttended {
		ids = append(ids, ev.ID)
	}
	assert.ElementsMatch(t, []uint{created.ID, bensEvent.ID}, ids)

	require.Len(t, view.Comments, 1)
	assert.Equal(t, "count me in", view.Comments[0].Body)
	assert.Equal(t, "Ana", view.Comments[0].Author.Name)
}

func TestProfileViewUnknownUser(t *testing.T) {
	db := newTestDB(t)
	events := NewEventService(db)
	profiles := NewProfileService(db, events)

	_, err := profiles.View(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetInterestsReplacesLinkSet(t *testing.T) {
	db := newTestDB(t)
	creds, _ := newCredentialService(db, time.Minute)
	events := NewEventService(db)
	profiles := NewProfileService(db, events)
	ctx := context.Background()

	ana := registerUser(t, creds, "Ana", "ana@example.com")

	require.NoError(t, profiles.SetInterests(ctx, ana.ID, []uint{1, 2, 3}))
	require.NoError(t, profiles.SetInterests(ctx, ana.ID, []uint{3, 4}))

	view, err := profiles.View(ctx, ana.ID)
	require.NoError(t, err)

	ids := make([]uint, 0, len(view.Interests))
	for _, in := range view.Interests {
		ids = append(ids, in.ID)
	}
	assert.ElementsMatch(t, []uint{3, 4}, ids)
}

func TestSetInterestsUnknownUser(t *testing.T) {
	db := newTestDB(t)
	events := NewEventService(db)
	profiles := NewProfileService(db, events)

	err := profiles.SetInterests(context.Background(), 999, []uint{1})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInterestsReferenceList(t *testing.T) {
	db := newTestDB(t)
	events := NewEventService(db)
	profiles := NewProfileService(db, events)

	interests, err := profiles.Interests(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, interests)
}
