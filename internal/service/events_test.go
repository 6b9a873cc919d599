package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateEventRegistersCreatorAsAttendee(t *testing.T) {
	db := newTestDB(t)
	creds, _ := newCredentialService(db, time.Minute)
	events := NewEventService(db)
	attendance := NewAttendanceService(db)
	ctx := context.Background()

	creator := registerUser(t, creds, "Ana", "ana@example.com")

	event, err := events.Create(ctx, creator.ID, EventInput{
		Title:       "Run Club",
		City:        "Lima",
		Country:     "Peru",
		CategoryIDs: []uint{1, 2},
	})
	require.NoError(t, err)
	require.NotZero(t, event.ID)

	count, err := attendance.Count(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	attendees, err := attendance.Attendees(ctx, event.ID)
	require.NoError(t, err)
	require.Len(t, attendees, 1)
	assert.Equal(t, creator.ID, attendees[0].ID)
}

func TestCreateEventRequiresTitle(t *testing.T) {
	db := newTestDB(t)
	creds, _ := newCredentialService(db, time.Minute)
	events := NewEventService(db)

	creator := registerUser(t, creds, "Ana", "ana@example.com")
	_, err := events.Create(context.Background(), creator.ID, EventInput{City: "Lima"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestJoinIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	creds, _ := newCredentialService(db, time.Minute)
	events := NewEventService(db)
	attendance := NewAttendanceService(db)
	ctx := context.Background()

	creator := registerUser(t, creds, "Ana", "ana@example.com")
	other := registerUser(t, creds, "Ben", "ben@example.com")

	event, err := events.Create(ctx, creator.ID, EventInput{Title: "Run Club", City: "Lima"})
	require.NoError(t, err)

	// The creator re-joining their own event stays at one row.
	count, err := attendance.Join(ctx, event.ID, creator.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = attendance.Join(ctx, event.ID, other.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = attendance.Join(ctx, event.ID, other.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestJoinUnknownEvent(t *testing.T) {
	db := newTestDB(t)
	creds, _ := newCredentialService(db, time.Minute)
	attendance := NewAttendanceService(db)

	user := registerUser(t, creds, "Ana", "ana@example.com")
	_, err := attendance.Join(context.Background(), 999, user.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLeaveNeverJoinedIsNoOp(t *testing.T) {
	db := newTestDB(t)
	creds, _ := newCredentialService(db, time.Minute)
	events := NewEventService(db)
	attendance := NewAttendanceService(db)
	ctx := context.Background()

	creator := registerUser(t, creds, "Ana", "ana@example.com")
	stranger := registerUser(t, creds, "Ben", "ben@example.com")

	event, err := events.Create(ctx, creator.ID, EventInput{Title: "Run Club"})
	require.NoError(t, err)

	require.NoError(t, attendance.Leave(ctx, event.ID, stranger.ID))

	count, err := attendance.Count(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestLeaveRemovesAttendance(t *testing.T) {
	db := newTestDB(t)
	creds, _ := newCredentialService(db, time.Minute)
	events := NewEventService(db)
	attendance := NewAttendanceService(db)
	ctx := context.Background()

	creator := registerUser(t, creds, "Ana", "ana@example.com")
	other := registerUser(t, creds, "Ben", "ben@example.com")

	event, err := events.Create(ctx, creator.ID, EventInput{Title: "Run Club"})
	require.NoError(t, err)

	_, err = attendance.Join(ctx, event.ID, other.ID)
	require.NoError(t, err)
	require.NoError(t, attendance.Leave(ctx, event.ID, other.ID))

	count, err := attendance.Count(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestUpdateForbiddenForNonCreator(t *testing.T) {
	db := newTestDB(t)
	creds, _ := newCredentialService(db, time.Minute)
	events := NewEventService(db)
	ctx := context.Background()

	creator := registerUser(t, creds, "Ana", "ana@example.com")
	intruder := registerUser(t, creds, "Ben", "ben@example.com")

	event, err := events.Create(ctx, creator.ID, EventInput{Title: "Run Club"})
	require.NoError(t, err)

	_, err = events.Update(ctx, event.ID, intruder.ID, EventInput{Title: "Hijacked"})
	assert.ErrorIs(t, err, ErrForbidden)

	view, err := events.Get(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, "Run Club", view.Title)
}

func TestUpdateReplacesCategories(t *testing.T) {
	db := newTestDB(t)
	creds, _ := newCredentialService(db, time.Minute)
	events := NewEventService(db)
	ctx := context.Background()

	creator := registerUser(t, creds, "Ana", "ana@example.com")

	event, err := events.Create(ctx, creator.ID, EventInput{
		Title:       "Run Club",
		CategoryIDs: []uint{1, 2},
	})
	require.NoError(t, err)

	_, err = events.Update(ctx, event.ID, creator.ID, EventInput{
		Title:       "Run Club v2",
		CategoryIDs: []uint{2, 3},
	})
	require.NoError(t, err)

	view, err := events.Get(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, "Run Club v2", view.Title)

	ids := make([]uint, 0, len(view.Categories))
	for _, cat := range view.Categories {
		ids = append(ids, cat.ID)
	}
	assert.ElementsMatch(t, []uint{2, 3}, ids)
}

func TestUpdateUnknownEvent(t *testing.T) {
	db := newTestDB(t)
	creds, _ := newCredentialService(db, time.Minute)
	events := NewEventService(db)

	user := registerUser(t, creds, "Ana", "ana@example.com")
	_, err := events.Update(context.Background(), 999, user.ID, EventInput{Title: "Ghost"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetComposesView(t *testing.T) {
	db := newTestDB(t)
	creds, _ := newCredentialService(db, time.Minute)
	events := NewEventService(db)
	attendance := NewAttendanceService(db)
	comments := NewCommentService(db)
	ctx := context.Background()

	creator := registerUser(t, creds, "Ana", "ana@example.com")
	guest := registerUser(t, creds, "Ben", "ben@example.com")

	event, err := events.Create(ctx, creator.ID, EventInput{
		Title:       "Run Club",
		City:        "Lima",
		CategoryIDs: []uint{1},
	})
	require.NoError(t, err)

	_, err = attendance.Join(ctx, event.ID, guest.ID)
	require.NoError(t, err)
	_, err = comments.Add(ctx, event.ID, guest.ID, "see you there")
	require.NoError(t, err)

	view, err := events.Get(ctx, event.ID)
	require.NoError(t, err)

	assert.Equal(t, "Ana", view.Creator.Name)
	assert.Equal(t, int64(2), view.AttendeeCount)
	require.Len(t, view.Attendees, 2)
	require.Len(t, view.Comments, 1)
	assert.Equal(t, "see you there", view.Comments[0].Body)
	assert.Equal(t, "Ben", view.Comments[0].Author.Name)
	require.Len(t, view.Categories, 1)
}

func TestGetUnknownEvent(t *testing.T) {
	db := newTestDB(t)
	events := NewEventService(db)

	_, err := events.Get(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListByCity(t *testing.T) {
	db := newTestDB(t)
	creds, _ := newCredentialService(db, time.Minute)
	events := NewEventService(db)
	ctx := context.Background()

	creator := registerUser(t, creds, "Ana", "ana@example.com")

	_, err := events.Create(ctx, creator.ID, EventInput{Title: "Run Club", City: "Lima"})
	require.NoError(t, err)
	_, err = events.Create(ctx, creator.ID, EventInput{Title: "Tango Night", City: "Buenos Aires"})
	require.NoError(t, err)

	all, err := events.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	lima, err := events.ListByCity(ctx, "Lima")
	require.NoError(t, err)
	require.Len(t, lima, 1)
	assert.Equal(t, "Run Club", lima[0].Title)
	assert.Equal(t, int64(1), lima[0].AttendeeCount)
}

func TestCategoriesReferenceList(t *testing.T) {
	db := newTestDB(t)
	events := NewEventService(db)

	categories, err := events.Categories(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, categories)
}
