package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/ganot/taskboard/internal/domain/activity"
	"github.com/stretchr/testify/require"
)

func TestActivityRepository_LogList(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	seedBoard(t, db, "c1")

	repo := NewActivityRepository(db)
	entry1 := &activity.ActivityEntry{
		ProjectID:    "p1",
		ActivityType: activity.TypeTaskCreated,
		Summary:      "created task",
		Details:      `{"id":"t1"}`,
	}
	entry2 := &activity.ActivityEntry{
		ProjectID:    "p1",
		ActivityType: activity.TypeTaskMoved,
		Summary:      "moved task",
		Details:      `{"id":"t1"}`,
	}

	require.NoError(t, repo.Log(ctx, entry1))
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, repo.Log(ctx, entry2))
	require.NotZero(t, entry1.ID)
	require.Greater(t, entry2.ID, entry1.ID)

	entries, err := repo.List(ctx, activity.ListActivityOptions{ProjectID: "p1"})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, entry2.ActivityType, entries[0].ActivityType)
	require.Equal(t, entry1.ActivityType, entries[1].ActivityType)
}

func TestActivityRepository_Filters(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	seedBoard(t, db, "c1")
	insertProject(t, db, "p2", "t1", "c2")

	repo := NewActivityRepository(db)
	taskID := "t1"
	actorID := "u1"
	require.NoError(t, repo.Log(ctx, &activity.ActivityEntry{
		ProjectID:    "p1",
		TaskID:       &taskID,
		ActorID:      &actorID,
		ActivityType: activity.TypeTaskUpdated,
		Summary:      "updated task",
	}))
	require.NoError(t, repo.Log(ctx, &activity.ActivityEntry{
		ProjectID:    "p1",
		ActivityType: activity.TypeColumnCreated,
		Summary:      "created column",
	}))

	activityType := activity.TypeTaskUpdated
	entries, err := repo.List(ctx, activity.ListActivityOptions{
		ProjectID:    "p1",
		TaskID:       &taskID,
		ActivityType: &activityType,
	})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.NotNil(t, entries[0].ActorID)
	require.Equal(t, "u1", *entries[0].ActorID)

	entries, err = repo.List(ctx, activity.ListActivityOptions{ProjectID: "p2"})
	require.NoError(t, err)
	require.Len(t, entries, 0)

	entries, err = repo.List(ctx, activity.ListActivityOptions{ProjectID: "p1", Limit: 1})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, activity.TypeColumnCreated, entries[0].ActivityType)
}
