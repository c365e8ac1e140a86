package task_test

import (
	"testing"
	"time"

	"github.com/ganot/taskboard/internal/domain/task"
	"github.com/stretchr/testify/require"
)

func TestValidateCreateInput(t *testing.T) {
	negative := -1
	tests := []struct {
		name string
		req  task.CreateRequest
		want error
	}{
		{name: "valid", req: task.CreateRequest{ProjectID: "p1", Title: "x"}},
		{name: "missing project", req: task.CreateRequest{Title: "x"}, want: task.ErrInvalidInput},
		{name: "blank title", req: task.CreateRequest{ProjectID: "p1", Title: "  "}, want: task.ErrInvalidInput},
		{name: "bad priority", req: task.CreateRequest{ProjectID: "p1", Title: "x", Priority: "urgent"}, want: task.ErrInvalidPriority},
		{name: "negative weight", req: task.CreateRequest{ProjectID: "p1", Title: "x", Weight: &negative}, want: task.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := task.ValidateCreateInput(tt.req)
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewAppliesDefaults(t *testing.T) {
	now := time.Now()
	tk := task.New("t1", task.CreateRequest{
		ProjectID:   "p1",
		Title:       " Plan ",
		AssigneeIDs: []string{"u1", "u1", "u2"},
	}, now)

	require.Equal(t, "Plan", tk.Title)
	require.Equal(t, task.PriorityMedium, tk.Priority)
	require.Equal(t, 1, tk.Weight)
	require.NotNil(t, tk.Tags)
	require.Equal(t, []string{"u1", "u2"}, tk.AssigneeIDs)
	require.Equal(t, now, tk.CreatedAt)
}

func TestApply(t *testing.T) {
	due := time.Now().Add(24 * time.Hour)
	tk := &task.Task{Title: "a", DueDate: &due, AssigneeIDs: []string{"u1"}}

	done := true
	added, err := task.Apply(tk, task.UpdateRequest{
		ClearDue:    true,
		Completed:   &done,
		AssigneeIDs: []string{"u1", "u2", "u2"},
	}, time.Now())
	require.NoError(t, err)
	require.Nil(t, tk.DueDate)
	require.True(t, tk.Completed)
	require.Equal(t, []string{"u2"}, added)
	require.Equal(t, []string{"u1", "u2"}, tk.AssigneeIDs)

	added, err = task.Apply(tk, task.UpdateRequest{}, time.Now())
	require.NoError(t, err)
	require.Empty(t, added)
	require.Equal(t, []string{"u1", "u2"}, tk.AssigneeIDs)
}
