package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/ganot/taskboard/internal/domain/task"
)

// SearchRepository implements task.SearchRepository for SQLite
type SearchRepository struct {
	db *DB
}

// NewSearchRepository creates a new SearchRepository
func NewSearchRepository(db *DB) *SearchRepository {
	return &SearchRepository{db: db}
}

// Search performs a full-text search over a project's tasks. Every word of
// query must match as a prefix.
func (r *SearchRepository) Search(ctx context.Context, projectID, query string, opts task.SearchOptions) ([]task.SearchResult, error) {
	match := matchExpression(query)
	if match == "" {
		return []task.SearchResult{}, nil
	}

	q := `
		SELECT
			t.id, t.title, t.priority, t.completed,
			snippet(tasks_fts, 1, '[', ']', '...', 12) as snippet
		FROM tasks_fts
		JOIN tasks t ON t.rowid = tasks_fts.rowid
		WHERE t.project_id = ? AND tasks_fts MATCH ?
		ORDER BY rank
	`
	args := []any{projectID, match}
	if opts.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, opts.Limit)
		if opts.Offset > 0 {
			q += " OFFSET ?"
			args = append(args, opts.Offset)
		}
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search tasks: %w", err)
	}
	defer rows.Close()

	results := []task.SearchResult{}
	for rows.Next() {
		var (
			result   task.SearchResult
			priority string
		)
		if err := rows.Scan(&result.ID, &result.Title, &priority, &result.Completed, &result.Snippet); err != nil {
			return nil, fmt.Errorf("failed to scan search result: %w", err)
		}
		result.Priority = task.Priority(priority)
		results = append(results, result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating search results: %w", err)
	}
	return results, nil
}

// matchExpression quotes each word so user input never reaches the FTS5
// query syntax.
func matchExpression(query string) string {
	words := strings.Fields(query)
	terms := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ReplaceAll(w, `"`, `""`)
		terms = append(terms, `"`+w+`"*`)
	}
	return strings.Join(terms, " ")
}
