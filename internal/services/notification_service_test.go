package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workbridge/workbridge/internal/apperr"
	"github.com/workbridge/workbridge/internal/models"
)

func TestMarkAllReadThenUnreadCountZero(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(db)
	user := seedUser(t, db, "u@wb.test", models.RoleJobSeeker)

	for i := 0; i < 3; i++ {
		_, err := svc.Create(context.Background(), Note{
			UserID:  user.ID,
			Kind:    KindApplicationStatus,
			Context: map[string]string{"status": "accepted", "job_title": "x"},
		})
		require.NoError(t, err)
	}

	ids, err := svc.MarkAllRead(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Len(t, ids, 3)

	count, err := svc.UnreadCount(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	// Idempotent: nothing left to flip.
	ids, err = svc.MarkAllRead(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestMarkReadOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(db)
	owner := seedUser(t, db, "owner@wb.test", models.RoleJobSeeker)
	other := seedUser(t, db, "other@wb.test", models.RoleJobSeeker)

	n, err := svc.Create(context.Background(), Note{UserID: owner.ID, Kind: KindNewReview, Context: map[string]string{"author": "a"}})
	require.NoError(t, err)

	_, err = svc.MarkRead(context.Background(), n.ID, other.ID)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeForbidden))

	read, err := svc.MarkRead(context.Background(), n.ID, owner.ID)
	require.NoError(t, err)
	assert.True(t, read.IsRead)
}

func TestDeleteOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(db)
	owner := seedUser(t, db, "owner@wb.test", models.RoleJobSeeker)
	other := seedUser(t, db, "other@wb.test", models.RoleJobSeeker)

	n, err := svc.Create(context.Background(), Note{UserID: owner.ID, Kind: KindNewReview, Context: map[string]string{"author": "a"}})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), n.ID, other.ID)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeForbidden))

	require.NoError(t, svc.Delete(context.Background(), n.ID, owner.ID))
	err = svc.Delete(context.Background(), n.ID, owner.ID)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
}

func TestDeleteUnknownNotificationNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(db)
	owner := seedUser(t, db, "owner@wb.test", models.RoleJobSeeker)

	err := svc.Delete(context.Background(), uuid.New(), owner.ID)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
}

func TestListByUserPagination(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(db)
	user := seedUser(t, db, "u@wb.test", models.RoleJobSeeker)

	for i := 0; i < 12; i++ {
		_, err := svc.Create(context.Background(), Note{UserID: user.ID, Kind: KindNewReview, Context: map[string]string{"author": "a"}})
		require.NoError(t, err)
	}

	items, meta, err := svc.ListByUser(context.Background(), user.ID, 0, 0)
	require.NoError(t, err)
	assert.Len(t, items, 10)
	assert.Equal(t, int64(12), meta.Total)
	assert.Equal(t, 2, meta.Pages)

	items, _, err = svc.ListByUser(context.Background(), user.ID, 2, 10)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestDispatcherDeliversAndDrains(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(db)
	user := seedUser(t, db, "u@wb.test", models.RoleJobSeeker)

	dispatcher := NewDispatcher(svc, 8)
	dispatcher.Start()

	require.NoError(t, dispatcher.Notify(Note{
		UserID:  user.ID,
		Kind:    KindNewApplication,
		Context: map[string]string{"applicant": "Dana", "job_title": "Backend Engineer"},
	}))
	// Stop drains the queue before returning.
	dispatcher.Stop()

	var stored []models.Notification
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&stored).Error)
	require.Len(t, stored, 1)
	assert.Equal(t, KindNewApplication, stored[0].Type)
	assert.Contains(t, stored[0].Message, "Backend Engineer")
	assert.False(t, stored[0].IsRead)
}

func TestDispatcherFullQueueReportsWithoutBlocking(t *testing.T) {
	db := newTestDB(t)
	dispatcher := NewDispatcher(NewNotificationService(db), 1)
	// Worker never started: the second note cannot fit.

	done := make(chan struct{})
	var first, second error
	go func() {
		first = dispatcher.Notify(Note{UserID: uuid.New(), Kind: KindNewReview})
		second = dispatcher.Notify(Note{UserID: uuid.New(), Kind: KindNewReview})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Notify blocked on a full queue")
	}
	require.NoError(t, first)
	require.Error(t, second)
}

func TestNotificationCopyPerStatus(t *testing.T) {
	cases := map[string]string{
		"accepted":  "accepted",
		"rejected":  "not successful",
		"withdrawn": "withdrawn",
	}
	for status, fragment := range cases {
		_, message := buildCopy(Note{
			Kind:    KindApplicationStatus,
			Context: map[string]string{"status": status, "job_title": "Backend Engineer"},
		})
		assert.Contains(t, message, fragment, "status %s", status)
	}
}
