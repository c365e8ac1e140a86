package mcp

import (
	"context"
	"log/slog"

	"github.com/ganot/taskboard/internal/domain/board"
	"github.com/ganot/taskboard/internal/domain/task"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

type GetBoardParams struct {
	ProjectID string `json:"project_id" jsonschema:"Project to read"`
}

type CreateTaskParams struct {
	ProjectID   string   `json:"project_id" jsonschema:"Project the task belongs to"`
	ColumnID    string   `json:"column_id,omitempty" jsonschema:"Column to append the task to; omit to leave it unplaced"`
	Title       string   `json:"title" jsonschema:"Task title"`
	Description string   `json:"description,omitempty" jsonschema:"Task description"`
	Priority    string   `json:"priority,omitempty" jsonschema:"low, medium or high (default medium)"`
	Tags        []string `json:"tags,omitempty" jsonschema:"Free-form labels"`
	Weight      *int     `json:"weight,omitempty" jsonschema:"Effort estimate, default 1"`
	AssigneeIDs []string `json:"assignee_ids,omitempty" jsonschema:"Users to assign; each is notified"`
}

type MoveTaskParams struct {
	TaskID     string `json:"task_id" jsonschema:"Task to move"`
	ToColumnID string `json:"to_column_id" jsonschema:"Destination column, may be the current one"`
	Position   *int   `json:"position,omitempty" jsonschema:"Zero-based index in the destination; omit or out of range appends"`
}

type DeleteTaskParams struct {
	TaskID string `json:"task_id" jsonschema:"Task to delete"`
}

type CreateColumnParams struct {
	ProjectID string `json:"project_id" jsonschema:"Project to add the column to"`
	Title     string `json:"title" jsonschema:"Column title"`
}

type DeleteColumnParams struct {
	ColumnID string `json:"column_id" jsonschema:"Column to delete; its tasks move to the first remaining column"`
}

type ReorderColumnsParams struct {
	ProjectID string   `json:"project_id" jsonschema:"Project whose columns are reordered"`
	NewOrder  []string `json:"new_order" jsonschema:"Column ids in display order; ids of other projects are ignored"`
}

// TaskRef is a task as shown inside a board column.
type TaskRef struct {
	ID    string `json:"id"`
	Title string `json:"title,omitempty"`
}

// ColumnView is a column with its tasks in order.
type ColumnView struct {
	ID    string    `json:"id"`
	Title string    `json:"title"`
	Tasks []TaskRef `json:"tasks"`
}

// BoardView lists a project's columns in display order.
type BoardView struct {
	ProjectID string       `json:"project_id"`
	Columns   []ColumnView `json:"columns"`
}

type CreateTaskResult struct {
	ID        string `json:"id"`
	ProjectID string `json:"project_id"`
	ColumnID  string `json:"column_id,omitempty"`
	Title     string `json:"title"`
	Priority  string `json:"priority"`
}

type MoveTaskResult struct {
	TaskID  string       `json:"task_id"`
	Columns []ColumnView `json:"columns"`
}

type DeleteTaskResult struct {
	TaskID  string `json:"task_id"`
	Deleted bool   `json:"deleted"`
}

type DeleteColumnResult struct {
	ColumnID    string         `json:"column_id"`
	ColumnOrder map[string]int `json:"column_order"`
}

type ReorderColumnsResult struct {
	ProjectID   string   `json:"project_id"`
	ColumnOrder []string `json:"column_order"`
}

type tools struct {
	svc    Services
	logger *slog.Logger
}

func registerTools(server *sdkmcp.Server, svc Services, logger *slog.Logger) {
	t := &tools{svc: svc, logger: logger}

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_board",
		Description: "Get a project's columns in display order with the tasks of each column",
	}, t.getBoard)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_task",
		Description: "Create a task, optionally appending it to a column",
	}, t.createTask)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "move_task",
		Description: "Move a task to a column and position. The task is removed from every other column",
	}, t.moveTask)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_task",
		Description: "Delete a task with its comments and attachments",
	}, t.deleteTask)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_column",
		Description: "Append an empty column to a project's board",
	}, t.createColumn)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_column",
		Description: "Delete a column, moving its tasks to the first remaining column",
	}, t.deleteColumn)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "reorder_columns",
		Description: "Set the display order of a project's columns",
	}, t.reorderColumns)
}

func (t *tools) getBoard(ctx context.Context, _ *sdkmcp.CallToolRequest, in GetBoardParams) (*sdkmcp.CallToolResult, BoardView, error) {
	b, err := t.svc.Board.GetBoard(ctx, in.ProjectID)
	if err != nil {
		return nil, BoardView{}, t.toolError(ctx, "get_board", err)
	}
	titles, err := t.taskTitles(ctx, in.ProjectID)
	if err != nil {
		return nil, BoardView{}, t.toolError(ctx, "get_board", err)
	}
	return nil, BoardView{ProjectID: b.ProjectID, Columns: columnViews(b.Columns, b.ColumnOrder, titles)}, nil
}

func (t *tools) createTask(ctx context.Context, _ *sdkmcp.CallToolRequest, in CreateTaskParams) (*sdkmcp.CallToolResult, CreateTaskResult, error) {
	created, err := t.svc.Board.CreateTask(ctx, getUserID(ctx), task.CreateRequest{
		ProjectID:   in.ProjectID,
		ColumnID:    in.ColumnID,
		Title:       in.Title,
		Description: in.Description,
		Priority:    task.Priority(in.Priority),
		Tags:        in.Tags,
		Weight:      in.Weight,
		AssigneeIDs: in.AssigneeIDs,
	})
	if err != nil {
		return nil, CreateTaskResult{}, t.toolError(ctx, "create_task", err)
	}
	return nil, CreateTaskResult{
		ID:        created.ID,
		ProjectID: created.ProjectID,
		ColumnID:  in.ColumnID,
		Title:     created.Title,
		Priority:  string(created.Priority),
	}, nil
}

func (t *tools) moveTask(ctx context.Context, _ *sdkmcp.CallToolRequest, in MoveTaskParams) (*sdkmcp.CallToolResult, MoveTaskResult, error) {
	cols, err := t.svc.Board.MoveTask(ctx, board.MoveRequest{
		TaskID:     in.TaskID,
		ToColumnID: in.ToColumnID,
		Position:   in.Position,
		ActorID:    getUserID(ctx),
	})
	if err != nil {
		return nil, MoveTaskResult{}, t.toolError(ctx, "move_task", err)
	}

	list := make([]board.Column, 0, len(cols))
	projectID := ""
	for _, c := range cols {
		list = append(list, c)
		projectID = c.ProjectID
	}
	titles, err := t.taskTitles(ctx, projectID)
	if err != nil {
		return nil, MoveTaskResult{}, t.toolError(ctx, "move_task", err)
	}
	return nil, MoveTaskResult{
		TaskID:  in.TaskID,
		Columns: columnViews(cols, board.OrderIDs(list), titles),
	}, nil
}

func (t *tools) deleteTask(ctx context.Context, _ *sdkmcp.CallToolRequest, in DeleteTaskParams) (*sdkmcp.CallToolResult, DeleteTaskResult, error) {
	if err := t.svc.Board.DeleteTask(ctx, getUserID(ctx), in.TaskID); err != nil {
		return nil, DeleteTaskResult{}, t.toolError(ctx, "delete_task", err)
	}
	return nil, DeleteTaskResult{TaskID: in.TaskID, Deleted: true}, nil
}

func (t *tools) createColumn(ctx context.Context, _ *sdkmcp.CallToolRequest, in CreateColumnParams) (*sdkmcp.CallToolResult, BoardView, error) {
	b, err := t.svc.Board.CreateColumn(ctx, getUserID(ctx), in.ProjectID, in.Title)
	if err != nil {
		return nil, BoardView{}, t.toolError(ctx, "create_column", err)
	}
	titles, err := t.taskTitles(ctx, in.ProjectID)
	if err != nil {
		return nil, BoardView{}, t.toolError(ctx, "create_column", err)
	}
	return nil, BoardView{ProjectID: b.ProjectID, Columns: columnViews(b.Columns, b.ColumnOrder, titles)}, nil
}

func (t *tools) deleteColumn(ctx context.Context, _ *sdkmcp.CallToolRequest, in DeleteColumnParams) (*sdkmcp.CallToolResult, DeleteColumnResult, error) {
	order, err := t.svc.Board.DeleteColumn(ctx, getUserID(ctx), in.ColumnID)
	if err != nil {
		return nil, DeleteColumnResult{}, t.toolError(ctx, "delete_column", err)
	}
	return nil, DeleteColumnResult{ColumnID: in.ColumnID, ColumnOrder: order}, nil
}

func (t *tools) reorderColumns(ctx context.Context, _ *sdkmcp.CallToolRequest, in ReorderColumnsParams) (*sdkmcp.CallToolResult, ReorderColumnsResult, error) {
	order, err := t.svc.Board.ReorderColumns(ctx, getUserID(ctx), in.ProjectID, in.NewOrder)
	if err != nil {
		return nil, ReorderColumnsResult{}, t.toolError(ctx, "reorder_columns", err)
	}
	if order == nil {
		order = []string{}
	}
	return nil, ReorderColumnsResult{ProjectID: in.ProjectID, ColumnOrder: order}, nil
}

// toolError converts err into an APIError. Unclassified faults are logged and
// reported generically.
func (t *tools) toolError(ctx context.Context, tool string, err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	t.logger.ErrorContext(ctx, "mcp tool failed", "tool", tool, "error", err)
	return &APIError{Code: "INTERNAL", Message: "internal error"}
}

func (t *tools) taskTitles(ctx context.Context, projectID string) (map[string]string, error) {
	titles := map[string]string{}
	if t.svc.Tasks == nil || projectID == "" {
		return titles, nil
	}
	tasks, err := t.svc.Tasks.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	for _, tk := range tasks {
		titles[tk.ID] = tk.Title
	}
	return titles, nil
}

func columnViews(cols map[string]board.Column, order []string, titles map[string]string) []ColumnView {
	views := make([]ColumnView, 0, len(order))
	for _, id := range order {
		col, ok := cols[id]
		if !ok {
			continue
		}
		refs := make([]TaskRef, 0, len(col.TaskIDs))
		for _, taskID := range col.TaskIDs {
			refs = append(refs, TaskRef{ID: taskID, Title: titles[taskID]})
		}
		views = append(views, ColumnView{ID: col.ID, Title: col.Title, Tasks: refs})
	}
	return views
}
