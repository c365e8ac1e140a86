package board_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ganot/taskboard/internal/apperr"
	"github.com/ganot/taskboard/internal/domain/activity"
	"github.com/ganot/taskboard/internal/domain/board"
	"github.com/ganot/taskboard/internal/domain/notification"
	"github.com/ganot/taskboard/internal/domain/task"
	"github.com/ganot/taskboard/internal/repository"
	"github.com/ganot/taskboard/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type boardDeps struct {
	store      *mocks.BoardStore
	tx         *mocks.BoardTx
	notifier   *mocks.Notifier
	files      *mocks.FileStore
	activities *mocks.ActivityRecorder
	events     *mocks.Publisher
}

func newBoardService() (*board.Service, *boardDeps) {
	d := &boardDeps{
		tx:         &mocks.BoardTx{},
		notifier:   &mocks.Notifier{},
		files:      &mocks.FileStore{},
		activities: &mocks.ActivityRecorder{},
		events:     &mocks.Publisher{},
	}
	d.store = &mocks.BoardStore{Tx: d.tx}
	d.store.On("WithinTx", mock.Anything).Return(nil).Maybe()
	d.activities.On("Record", mock.Anything, mock.Anything).Maybe()
	d.events.On("Publish", mock.Anything, mock.Anything, mock.Anything).Maybe()
	svc := board.NewService(d.store, d.notifier, d.files, d.activities, d.events, nil)
	return svc, d
}

func columnWith(id string, order int, taskIDs ...string) any {
	return mock.MatchedBy(func(c *board.Column) bool {
		return c.ID == id && c.Order == order && c.TaskIDs.Equal(board.TaskList(taskIDs))
	})
}

func TestBoardService_MoveTask_AcrossColumns(t *testing.T) {
	ctx := context.Background()
	svc, d := newBoardService()

	d.store.On("GetTaskRef", mock.Anything, "t1").Return(&board.TaskRef{ID: "t1", ProjectID: "p1", Title: "First"}, nil)
	d.tx.On("TaskInProject", mock.Anything, "t1", "p1").Return(true, nil)
	d.tx.On("GetColumn", mock.Anything, "B").Return(&board.Column{ID: "B", ProjectID: "p1", Order: 1}, nil)
	d.tx.On("ColumnsForUpdate", mock.Anything, "p1").Return([]board.Column{
		{ID: "A", ProjectID: "p1", Order: 0, TaskIDs: board.TaskList{"t1", "t2"}},
		{ID: "B", ProjectID: "p1", Order: 1, TaskIDs: board.TaskList{}},
	}, nil)
	mock.InOrder(
		d.tx.On("UpdateColumn", mock.Anything, columnWith("A", 0, "t2")).Return(nil).Once(),
		d.tx.On("UpdateColumn", mock.Anything, columnWith("B", 1, "t1")).Return(nil).Once(),
	)

	cols, err := svc.MoveTask(ctx, board.MoveRequest{TaskID: "t1", ToColumnID: "B", ActorID: "u1"})
	require.NoError(t, err)
	require.Len(t, cols, 2)
	require.Equal(t, board.TaskList{"t2"}, cols["A"].TaskIDs)
	require.Equal(t, board.TaskList{"t1"}, cols["B"].TaskIDs)

	d.tx.AssertExpectations(t)
	d.activities.AssertCalled(t, "Record", mock.Anything, mock.MatchedBy(func(e *activity.ActivityEntry) bool {
		return e.ActivityType == activity.TypeTaskMoved && e.ProjectID == "p1" && e.ActorID != nil && *e.ActorID == "u1"
	}))
	d.events.AssertCalled(t, "Publish", "p1", board.EventTaskMoved, mock.Anything)
}

func TestBoardService_MoveTask_SameColumnToFront(t *testing.T) {
	ctx := context.Background()
	svc, d := newBoardService()

	d.store.On("GetTaskRef", mock.Anything, "t3").Return(&board.TaskRef{ID: "t3", ProjectID: "p1"}, nil)
	d.tx.On("TaskInProject", mock.Anything, "t3", "p1").Return(true, nil)
	d.tx.On("GetColumn", mock.Anything, "A").Return(&board.Column{ID: "A", ProjectID: "p1"}, nil)
	d.tx.On("ColumnsForUpdate", mock.Anything, "p1").Return([]board.Column{
		{ID: "A", ProjectID: "p1", TaskIDs: board.TaskList{"t1", "t2", "t3"}},
		{ID: "B", ProjectID: "p1", Order: 1, TaskIDs: board.TaskList{"t4"}},
	}, nil)
	d.tx.On("UpdateColumn", mock.Anything, columnWith("A", 0, "t3", "t1", "t2")).Return(nil).Once()

	position := 0
	cols, err := svc.MoveTask(ctx, board.MoveRequest{TaskID: "t3", ToColumnID: "A", Position: &position})
	require.NoError(t, err)
	require.Equal(t, board.TaskList{"t3", "t1", "t2"}, cols["A"].TaskIDs)
	require.Equal(t, board.TaskList{"t4"}, cols["B"].TaskIDs)
	d.tx.AssertNumberOfCalls(t, "UpdateColumn", 1)
}

func TestBoardService_MoveTask_HealsDuplicates(t *testing.T) {
	ctx := context.Background()
	svc, d := newBoardService()

	d.store.On("GetTaskRef", mock.Anything, "t1").Return(&board.TaskRef{ID: "t1", ProjectID: "p1"}, nil)
	d.tx.On("TaskInProject", mock.Anything, "t1", "p1").Return(true, nil)
	d.tx.On("GetColumn", mock.Anything, "B").Return(&board.Column{ID: "B", ProjectID: "p1"}, nil)
	d.tx.On("ColumnsForUpdate", mock.Anything, "p1").Return([]board.Column{
		{ID: "A", ProjectID: "p1", TaskIDs: board.TaskList{"t1", "t2"}},
		{ID: "B", ProjectID: "p1", Order: 1, TaskIDs: board.TaskList{"t1"}},
	}, nil)
	d.tx.On("UpdateColumn", mock.Anything, columnWith("A", 0, "t2")).Return(nil).Once()

	cols, err := svc.MoveTask(ctx, board.MoveRequest{TaskID: "t1", ToColumnID: "B"})
	require.NoError(t, err)
	require.Equal(t, board.TaskList{"t2"}, cols["A"].TaskIDs)
	require.Equal(t, board.TaskList{"t1"}, cols["B"].TaskIDs)
	d.tx.AssertNumberOfCalls(t, "UpdateColumn", 1)
}

func TestBoardService_MoveTask_CrossProject(t *testing.T) {
	ctx := context.Background()
	svc, d := newBoardService()

	d.store.On("GetTaskRef", mock.Anything, "t1").Return(&board.TaskRef{ID: "t1", ProjectID: "p1"}, nil)
	d.tx.On("TaskInProject", mock.Anything, "t1", "p1").Return(true, nil)
	d.tx.On("GetColumn", mock.Anything, "X").Return(&board.Column{ID: "X", ProjectID: "p2"}, nil)

	_, err := svc.MoveTask(ctx, board.MoveRequest{TaskID: "t1", ToColumnID: "X"})
	require.ErrorIs(t, err, board.ErrCrossProject)
	require.ErrorIs(t, err, apperr.ErrInvalid)
	d.tx.AssertNotCalled(t, "ColumnsForUpdate", mock.Anything, mock.Anything)
	d.tx.AssertNotCalled(t, "UpdateColumn", mock.Anything, mock.Anything)
	d.events.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestBoardService_MoveTask_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, d := newBoardService()

	d.store.On("GetTaskRef", mock.Anything, "missing").Return(nil, repository.ErrNotFound)
	_, err := svc.MoveTask(ctx, board.MoveRequest{TaskID: "missing", ToColumnID: "A"})
	require.ErrorIs(t, err, board.ErrTaskNotFound)

	d.store.On("GetTaskRef", mock.Anything, "t1").Return(&board.TaskRef{ID: "t1", ProjectID: "p1"}, nil)
	d.tx.On("TaskInProject", mock.Anything, "t1", "p1").Return(true, nil)
	d.tx.On("GetColumn", mock.Anything, "gone").Return(nil, repository.ErrNotFound)
	_, err = svc.MoveTask(ctx, board.MoveRequest{TaskID: "t1", ToColumnID: "gone"})
	require.ErrorIs(t, err, board.ErrColumnNotFound)
	require.Equal(t, apperr.ErrNotFound, apperr.Kind(err))
}

func TestBoardService_MoveTask_TaskDeletedWhileWaiting(t *testing.T) {
	ctx := context.Background()
	svc, d := newBoardService()

	d.store.On("GetTaskRef", mock.Anything, "t1").Return(&board.TaskRef{ID: "t1", ProjectID: "p1"}, nil)
	d.tx.On("TaskInProject", mock.Anything, "t1", "p1").Return(false, nil)

	_, err := svc.MoveTask(ctx, board.MoveRequest{TaskID: "t1", ToColumnID: "B"})
	require.ErrorIs(t, err, board.ErrTaskNotFound)
	d.tx.AssertNotCalled(t, "GetColumn", mock.Anything, mock.Anything)
	d.tx.AssertNotCalled(t, "UpdateColumn", mock.Anything, mock.Anything)
	d.events.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)

	err = svc.DeleteTask(ctx, "u1", "t1")
	require.ErrorIs(t, err, board.ErrTaskNotFound)
	d.tx.AssertNotCalled(t, "DeleteTask", mock.Anything, mock.Anything)
}

func TestBoardService_MoveTask_RequiresIDs(t *testing.T) {
	svc, d := newBoardService()
	_, err := svc.MoveTask(context.Background(), board.MoveRequest{TaskID: "t1"})
	require.ErrorIs(t, err, board.ErrInvalidInput)
	d.store.AssertNotCalled(t, "GetTaskRef", mock.Anything, mock.Anything)
}

func TestBoardService_MoveTask_ConcurrentUpdate(t *testing.T) {
	ctx := context.Background()
	svc, d := newBoardService()

	d.store.On("GetTaskRef", mock.Anything, "t1").Return(&board.TaskRef{ID: "t1", ProjectID: "p1"}, nil)
	d.tx.On("TaskInProject", mock.Anything, "t1", "p1").Return(true, nil)
	d.tx.On("GetColumn", mock.Anything, "B").Return(&board.Column{ID: "B", ProjectID: "p1"}, nil)
	d.tx.On("ColumnsForUpdate", mock.Anything, "p1").Return([]board.Column{
		{ID: "A", ProjectID: "p1", TaskIDs: board.TaskList{"t1"}},
		{ID: "B", ProjectID: "p1", Order: 1},
	}, nil)
	d.tx.On("UpdateColumn", mock.Anything, mock.Anything).Return(repository.ErrConflict).Once()

	_, err := svc.MoveTask(ctx, board.MoveRequest{TaskID: "t1", ToColumnID: "B"})
	require.ErrorIs(t, err, board.ErrConcurrentUpdate)
	require.ErrorIs(t, err, apperr.ErrConflict)
	d.tx.AssertNumberOfCalls(t, "UpdateColumn", 1)
	d.events.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestBoardService_MoveTask_TransactionFailure(t *testing.T) {
	ctx := context.Background()
	tx := &mocks.BoardTx{}
	store := &mocks.BoardStore{Tx: tx}
	store.On("GetTaskRef", mock.Anything, "t1").Return(&board.TaskRef{ID: "t1", ProjectID: "p1"}, nil)
	store.On("WithinTx", mock.Anything).Return(errors.New("database is locked"))

	svc := board.NewService(store, nil, nil, nil, nil, nil)
	_, err := svc.MoveTask(ctx, board.MoveRequest{TaskID: "t1", ToColumnID: "B"})
	require.Error(t, err)
	require.Nil(t, apperr.Kind(err))
}

func TestBoardService_CreateTask_AppendsToColumn(t *testing.T) {
	ctx := context.Background()
	svc, d := newBoardService()

	var updated board.Column
	d.tx.On("ProjectExists", mock.Anything, "p1").Return(true, nil)
	d.tx.On("GetColumn", mock.Anything, "A").Return(&board.Column{ID: "A", ProjectID: "p1", TaskIDs: board.TaskList{"t0"}}, nil)
	d.tx.On("CreateTask", mock.Anything, mock.AnythingOfType("*task.Task")).Return(nil)
	d.tx.On("UpdateColumn", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		updated = *args.Get(1).(*board.Column)
	}).Return(nil).Once()
	d.notifier.On("Enqueue", mock.Anything, mock.MatchedBy(func(r notification.Request) bool {
		return r.UserID == "u2" && r.ActorID == "u1" && r.Verb == notification.VerbTaskAssigned
	})).Once()

	created, err := svc.CreateTask(ctx, "u1", task.CreateRequest{
		ProjectID:   "p1",
		ColumnID:    "A",
		Title:       "Write docs",
		AssigneeIDs: []string{"u1", "u2"},
	})
	require.NoError(t, err)
	require.Equal(t, task.PriorityMedium, created.Priority)
	require.Equal(t, 1, created.Weight)
	require.Equal(t, board.TaskList{"t0", created.ID}, updated.TaskIDs)

	d.notifier.AssertExpectations(t)
	d.notifier.AssertNumberOfCalls(t, "Enqueue", 1)
	d.events.AssertCalled(t, "Publish", "p1", board.EventTaskCreated, mock.Anything)
}

func TestBoardService_CreateTask_WithoutColumn(t *testing.T) {
	ctx := context.Background()
	svc, d := newBoardService()

	d.tx.On("ProjectExists", mock.Anything, "p1").Return(true, nil)
	d.tx.On("CreateTask", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.CreateTask(ctx, "u1", task.CreateRequest{ProjectID: "p1", Title: "Loose"})
	require.NoError(t, err)
	d.tx.AssertNotCalled(t, "GetColumn", mock.Anything, mock.Anything)
	d.tx.AssertNotCalled(t, "UpdateColumn", mock.Anything, mock.Anything)
}

func TestBoardService_CreateTask_ColumnOfOtherProject(t *testing.T) {
	ctx := context.Background()
	svc, d := newBoardService()

	d.tx.On("ProjectExists", mock.Anything, "p1").Return(true, nil)
	d.tx.On("GetColumn", mock.Anything, "X").Return(&board.Column{ID: "X", ProjectID: "p2"}, nil)

	_, err := svc.CreateTask(ctx, "u1", task.CreateRequest{ProjectID: "p1", ColumnID: "X", Title: "Misplaced"})
	require.ErrorIs(t, err, board.ErrColumnNotFound)
	d.tx.AssertNotCalled(t, "CreateTask", mock.Anything, mock.Anything)
}

func TestBoardService_CreateTask_Validation(t *testing.T) {
	ctx := context.Background()
	svc, d := newBoardService()

	_, err := svc.CreateTask(ctx, "u1", task.CreateRequest{ProjectID: "p1"})
	require.ErrorIs(t, err, task.ErrInvalidInput)

	_, err = svc.CreateTask(ctx, "u1", task.CreateRequest{ProjectID: "p1", Title: "x", Priority: "urgent"})
	require.ErrorIs(t, err, task.ErrInvalidPriority)

	d.tx.On("ProjectExists", mock.Anything, "nope").Return(false, nil)
	_, err = svc.CreateTask(ctx, "u1", task.CreateRequest{ProjectID: "nope", Title: "x"})
	require.ErrorIs(t, err, board.ErrProjectNotFound)

	d.tx.On("ProjectExists", mock.Anything, "p1").Return(true, nil)
	d.tx.On("CreateTask", mock.Anything, mock.Anything).Return(repository.ErrForeignKeyViolation)
	_, err = svc.CreateTask(ctx, "u1", task.CreateRequest{ProjectID: "p1", Title: "x", AssigneeIDs: []string{"ghost"}})
	require.ErrorIs(t, err, task.ErrUserNotFound)
}

func TestBoardService_DeleteTask(t *testing.T) {
	ctx := context.Background()
	svc, d := newBoardService()

	d.store.On("GetTaskRef", mock.Anything, "t1").Return(&board.TaskRef{ID: "t1", ProjectID: "p1", Title: "Old"}, nil)
	d.tx.On("TaskInProject", mock.Anything, "t1", "p1").Return(true, nil)
	d.tx.On("ColumnsForUpdate", mock.Anything, "p1").Return([]board.Column{
		{ID: "A", ProjectID: "p1", TaskIDs: board.TaskList{"t1", "t2"}},
		{ID: "B", ProjectID: "p1", Order: 1, TaskIDs: board.TaskList{"t3"}},
		{ID: "C", ProjectID: "p1", Order: 2, TaskIDs: board.TaskList{"t1"}},
	}, nil)
	d.tx.On("UpdateColumn", mock.Anything, columnWith("A", 0, "t2")).Return(nil).Once()
	d.tx.On("UpdateColumn", mock.Anything, columnWith("C", 2)).Return(nil).Once()
	d.tx.On("DeleteTask", mock.Anything, "t1").Return([]string{"ab/file.txt"}, nil)
	d.files.On("Delete", mock.Anything, "ab/file.txt").Return(errors.New("permission denied"))

	require.NoError(t, svc.DeleteTask(ctx, "u1", "t1"))
	d.tx.AssertExpectations(t)
	d.files.AssertExpectations(t)
	d.events.AssertCalled(t, "Publish", "p1", board.EventTaskDeleted, mock.Anything)
}

func TestBoardService_DeleteColumn_Migrates(t *testing.T) {
	ctx := context.Background()
	svc, d := newBoardService()

	d.store.On("GetColumn", mock.Anything, "B").Return(&board.Column{ID: "B", ProjectID: "p1", Order: 1}, nil)
	d.tx.On("ColumnsForUpdate", mock.Anything, "p1").Return([]board.Column{
		{ID: "A", ProjectID: "p1", Order: 0, TaskIDs: board.TaskList{"t1"}},
		{ID: "B", ProjectID: "p1", Order: 1, TaskIDs: board.TaskList{"t2", "t3"}},
		{ID: "C", ProjectID: "p1", Order: 2, TaskIDs: board.TaskList{"t4"}},
	}, nil)
	d.tx.On("UpdateColumn", mock.Anything, columnWith("A", 0, "t1", "t2", "t3")).Return(nil).Once()
	d.tx.On("UpdateColumn", mock.Anything, columnWith("C", 1, "t4")).Return(nil).Once()
	d.tx.On("DeleteColumn", mock.Anything, "B").Return(nil)
	d.tx.On("SetColumnOrderCache", mock.Anything, "p1", []string{"A", "C"}).Return(nil)

	orders, err := svc.DeleteColumn(ctx, "u1", "B")
	require.NoError(t, err)
	require.Equal(t, map[string]int{"A": 0, "C": 1}, orders)
	d.tx.AssertExpectations(t)
}

func TestBoardService_DeleteColumn_OnlyColumn(t *testing.T) {
	ctx := context.Background()
	svc, d := newBoardService()

	d.store.On("GetColumn", mock.Anything, "A").Return(&board.Column{ID: "A", ProjectID: "p1"}, nil)
	d.tx.On("ColumnsForUpdate", mock.Anything, "p1").Return([]board.Column{
		{ID: "A", ProjectID: "p1", TaskIDs: board.TaskList{"t1"}},
	}, nil)

	_, err := svc.DeleteColumn(ctx, "u1", "A")
	require.ErrorIs(t, err, board.ErrOnlyColumn)
	require.ErrorIs(t, err, apperr.ErrInvalid)
	d.tx.AssertNotCalled(t, "UpdateColumn", mock.Anything, mock.Anything)
	d.tx.AssertNotCalled(t, "DeleteColumn", mock.Anything, mock.Anything)
}

func TestBoardService_DeleteColumn_NotFound(t *testing.T) {
	svc, d := newBoardService()
	d.store.On("GetColumn", mock.Anything, "gone").Return(nil, repository.ErrNotFound)

	_, err := svc.DeleteColumn(context.Background(), "u1", "gone")
	require.ErrorIs(t, err, board.ErrColumnNotFound)
}

func TestBoardService_ReorderColumns(t *testing.T) {
	ctx := context.Background()
	svc, d := newBoardService()

	d.tx.On("ProjectExists", mock.Anything, "p1").Return(true, nil)
	d.tx.On("ColumnsForUpdate", mock.Anything, "p1").Return([]board.Column{
		{ID: "c1", ProjectID: "p1", Order: 0},
		{ID: "c2", ProjectID: "p1", Order: 1},
	}, nil)
	mock.InOrder(
		d.tx.On("UpdateColumn", mock.Anything, columnWith("c1", 1)).Return(nil).Once(),
		d.tx.On("UpdateColumn", mock.Anything, columnWith("c2", 0)).Return(nil).Once(),
	)
	d.tx.On("ColumnOrder", mock.Anything, "p1").Return([]string{"c2", "c1"}, nil)
	d.tx.On("SetColumnOrderCache", mock.Anything, "p1", []string{"c2", "c1"}).Return(nil)

	order, err := svc.ReorderColumns(ctx, "u1", "p1", []string{"c2", "c1", "foreign"})
	require.NoError(t, err)
	require.Equal(t, []string{"c2", "c1"}, order)
	d.tx.AssertExpectations(t)
}

func TestBoardService_ReorderColumns_UnknownProject(t *testing.T) {
	svc, d := newBoardService()
	d.tx.On("ProjectExists", mock.Anything, "nope").Return(false, nil)

	_, err := svc.ReorderColumns(context.Background(), "u1", "nope", []string{"c1"})
	require.ErrorIs(t, err, board.ErrProjectNotFound)
}

func TestBoardService_CreateColumn(t *testing.T) {
	ctx := context.Background()
	svc, d := newBoardService()

	d.tx.On("ProjectExists", mock.Anything, "p1").Return(true, nil)
	d.tx.On("ColumnsForUpdate", mock.Anything, "p1").Return([]board.Column{
		{ID: "A", ProjectID: "p1", Order: 0},
		{ID: "B", ProjectID: "p1", Order: 1},
	}, nil)
	d.tx.On("CreateColumn", mock.Anything, mock.MatchedBy(func(c *board.Column) bool {
		return c.Title == "Review" && c.Order == 2 && c.TaskIDs != nil && len(c.TaskIDs) == 0
	})).Return(nil)
	d.tx.On("SetColumnOrderCache", mock.Anything, "p1", mock.MatchedBy(func(ids []string) bool {
		return len(ids) == 3 && ids[0] == "A" && ids[1] == "B"
	})).Return(nil)

	b, err := svc.CreateColumn(ctx, "u1", "p1", "  Review ")
	require.NoError(t, err)
	require.Len(t, b.ColumnOrder, 3)
	newID := b.ColumnOrder[2]
	require.Equal(t, "Review", b.Columns[newID].Title)
	require.Equal(t, 2, b.Columns[newID].Order)
}

func TestBoardService_CreateColumn_Validation(t *testing.T) {
	svc, d := newBoardService()
	_, err := svc.CreateColumn(context.Background(), "u1", "p1", " ")
	require.ErrorIs(t, err, board.ErrInvalidInput)

	d.tx.On("ProjectExists", mock.Anything, "nope").Return(false, nil)
	_, err = svc.CreateColumn(context.Background(), "u1", "nope", "Todo")
	require.ErrorIs(t, err, board.ErrProjectNotFound)
}

func TestBoardService_RenameColumn(t *testing.T) {
	ctx := context.Background()
	svc, d := newBoardService()

	d.store.On("GetColumn", mock.Anything, "A").Return(&board.Column{ID: "A", ProjectID: "p1", Title: "Old"}, nil)
	d.tx.On("GetColumn", mock.Anything, "A").Return(&board.Column{ID: "A", ProjectID: "p1", Title: "Old", TaskIDs: board.TaskList{"t1"}}, nil)
	d.tx.On("UpdateColumn", mock.Anything, mock.MatchedBy(func(c *board.Column) bool {
		return c.ID == "A" && c.Title == "Renamed" && c.TaskIDs.Equal(board.TaskList{"t1"})
	})).Return(nil)

	col, err := svc.RenameColumn(ctx, "u1", "A", "Renamed")
	require.NoError(t, err)
	require.Equal(t, "Renamed", col.Title)

	_, err = svc.RenameColumn(ctx, "u1", "A", "")
	require.ErrorIs(t, err, board.ErrInvalidInput)
}

func TestBoardService_GetBoard(t *testing.T) {
	ctx := context.Background()
	svc, d := newBoardService()

	d.store.On("ProjectExists", mock.Anything, "p1").Return(true, nil)
	d.store.On("ListColumns", mock.Anything, "p1").Return([]board.Column{
		{ID: "B", ProjectID: "p1", Order: 1},
		{ID: "A", ProjectID: "p1", Order: 0},
	}, nil)

	b, err := svc.GetBoard(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, []string{"A", "B"}, b.ColumnOrder)
	require.Len(t, b.Columns, 2)

	d.store.On("ProjectExists", mock.Anything, "nope").Return(false, nil)
	_, err = svc.GetBoard(ctx, "nope")
	require.ErrorIs(t, err, board.ErrProjectNotFound)
}
