package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `taskboard exposes a project's Kanban board.

Model:
- A project has an ordered list of columns. Each column holds an ordered list of task ids.
- A task sits in at most one column. Tasks do not record their column; the column lists are the only record of position.

Workflow:
1) Call get_board(project_id) to see columns in display order and the tasks of each.
2) Use create_task with column_id to add work to a stage; omit column_id to create it unplaced.
3) Use move_task to change stage or position. Position is zero-based; omit it to append.
4) Column edits: create_column appends, reorder_columns sets display order, delete_column moves its tasks to the first remaining column.

Docs:
- taskboard://docs/board (ordering and move rules)
- taskboard://docs/errors (error codes and recovery)
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "taskboard://docs/board",
		Name:        "docs_board",
		Title:       "Board ordering and moves",
		Description: "How columns and task positions behave under moves, deletes and reorders.",
		Content: `# Board ordering

## Columns
- Columns are shown by their order value; ties break by column id.
- create_column appends after the current last column.
- reorder_columns assigns positions in the order given. Ids from other projects are ignored. Columns left out keep their stored position, so list every column to avoid ties.
- delete_column is refused for a project's only column. The deleted column's tasks are appended, in order, to the first remaining column, and the remaining columns are renumbered from 0.

## Moves
- move_task removes the task from every column of its project, then inserts it into the destination.
- A missing, negative or too-large position appends.
- Moving within the same column reorders it.
- The destination must belong to the task's project.
- The response lists every column of the project with its tasks after the move.

## Tasks
- delete_task removes the task from its column and deletes its comments and attachments.
- Assignees named on create_task receive a notification, except the acting user.
`,
	},
	{
		URI:         "taskboard://docs/errors",
		Name:        "docs_errors",
		Title:       "Error codes",
		Description: "Tool error codes and what to do about them.",
		Content: `# Error codes

| Code | Meaning | Recovery |
|------|---------|----------|
| TASK_NOT_FOUND | task id unknown | call get_board |
| COLUMN_NOT_FOUND | column id unknown | call get_board |
| PROJECT_NOT_FOUND | project id unknown | check the id |
| CROSS_PROJECT | destination column is in another project | pick a column of the same project |
| ONLY_COLUMN | tried to delete the last column | create another column first |
| CONFLICT | the board changed concurrently | re-read and retry |
| INVALID_INPUT | missing or malformed argument | fix the arguments |
| FORBIDDEN | caller may not act on this resource | none |
| INTERNAL | server fault | retry later |
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
