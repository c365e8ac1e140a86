package functional_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/ganot/taskboard/internal/testserver"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

// apiCall sends body as JSON with token and decodes a 2xx response into out.
func apiCall(t *testing.T, ts *testserver.TestServer, token, method, path string, body, out any) int {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, ts.Server.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < 300 {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

type account struct {
	ID    string
	Token string
}

func register(t *testing.T, ts *testserver.TestServer, name, email string) account {
	t.Helper()
	var resp struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
		Token string `json:"token"`
	}
	status := apiCall(t, ts, "", http.MethodPost, "/users", map[string]any{"name": name, "email": email}, &resp)
	require.Equal(t, http.StatusCreated, status)
	require.NotEmpty(t, resp.Token)
	return account{ID: resp.User.ID, Token: resp.Token}
}

type projectResp struct {
	ID          string   `json:"id"`
	ColumnOrder []string `json:"columnOrder"`
}

func seedProject(t *testing.T, ts *testserver.TestServer, owner account) projectResp {
	t.Helper()
	var tm struct {
		ID string `json:"id"`
	}
	require.Equal(t, http.StatusCreated, apiCall(t, ts, owner.Token, http.MethodPost, "/teams", map[string]any{"name": "Core"}, &tm))

	var proj projectResp
	require.Equal(t, http.StatusCreated, apiCall(t, ts, owner.Token, http.MethodPost, "/projects", map[string]any{"teamId": tm.ID, "name": "Launch"}, &proj))
	require.Len(t, proj.ColumnOrder, 3)
	return proj
}

// callTool invokes a tool and decodes its JSON text result into out.
func callTool(t *testing.T, cs *sdkmcp.ClientSession, name string, args map[string]any, out any) {
	t.Helper()
	res, err := cs.CallTool(context.Background(), &sdkmcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)
	text := res.Content[0].(*sdkmcp.TextContent).Text
	require.False(t, res.IsError, "tool error: %s", text)
	if out != nil {
		require.NoError(t, json.Unmarshal([]byte(text), out))
	}
}

func TestFunctional_Authentication(t *testing.T) {
	ts := testserver.New(t)

	req, err := http.NewRequest(http.MethodPost, ts.Server.URL+"/mcp", bytes.NewBufferString(`{"jsonrpc":"2.0","method":"tools/list","id":1}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	require.Equal(t, http.StatusUnauthorized, apiCall(t, ts, "", http.MethodGet, "/users/me", nil, nil))
	require.Equal(t, http.StatusUnauthorized, apiCall(t, ts, "not-a-token", http.MethodGet, "/users/me", nil, nil))

	ada := register(t, ts, "Ada", "ada@example.com")
	var me struct {
		ID string `json:"id"`
	}
	require.Equal(t, http.StatusOK, apiCall(t, ts, ada.Token, http.MethodGet, "/users/me", nil, &me))
	require.Equal(t, ada.ID, me.ID)
}

func TestFunctional_BoardOverMCP(t *testing.T) {
	ts := testserver.New(t)
	ada := register(t, ts, "Ada", "ada@example.com")
	proj := seedProject(t, ts, ada)
	todo, doing := proj.ColumnOrder[0], proj.ColumnOrder[1]

	cs := ts.MCPClient(t, ada.Token)

	var created struct {
		ID string `json:"id"`
	}
	callTool(t, cs, "create_task", map[string]any{"project_id": proj.ID, "column_id": todo, "title": "Draft plan"}, &created)
	require.NotEmpty(t, created.ID)

	var moved struct {
		Columns []struct {
			ID    string `json:"id"`
			Tasks []struct {
				ID string `json:"id"`
			} `json:"tasks"`
		} `json:"columns"`
	}
	callTool(t, cs, "move_task", map[string]any{"task_id": created.ID, "to_column_id": doing}, &moved)
	require.Len(t, moved.Columns, 3)
	require.Equal(t, doing, moved.Columns[1].ID)
	require.Equal(t, created.ID, moved.Columns[1].Tasks[0].ID)

	// REST sees the same board.
	var b struct {
		Columns map[string]struct {
			TaskIDs []string `json:"taskIds"`
		} `json:"columns"`
	}
	require.Equal(t, http.StatusOK, apiCall(t, ts, ada.Token, http.MethodGet, "/projects/"+proj.ID+"/board", nil, &b))
	require.Empty(t, b.Columns[todo].TaskIDs)
	require.Equal(t, []string{created.ID}, b.Columns[doing].TaskIDs)

	// Activity records the acting user from the bearer token.
	var entries []struct {
		ActorID string `json:"actorId"`
	}
	require.Equal(t, http.StatusOK, apiCall(t, ts, ada.Token, http.MethodGet, "/projects/"+proj.ID+"/activity?type=task_moved", nil, &entries))
	require.Len(t, entries, 1)
	require.Equal(t, ada.ID, entries[0].ActorID)

	res, err := cs.CallTool(context.Background(), &sdkmcp.CallToolParams{
		Name:      "delete_column",
		Arguments: map[string]any{"column_id": "missing"},
	})
	require.NoError(t, err)
	require.True(t, res.IsError)
	require.Contains(t, res.Content[0].(*sdkmcp.TextContent).Text, "COLUMN_NOT_FOUND")
}

func TestFunctional_AssignmentQueued(t *testing.T) {
	ts := testserver.New(t)
	ada := register(t, ts, "Ada", "ada@example.com")
	bob := register(t, ts, "Bob", "bob@example.com")
	proj := seedProject(t, ts, ada)

	status := apiCall(t, ts, ada.Token, http.MethodPost, "/tasks", map[string]any{
		"projectId":   proj.ID,
		"columnId":    proj.ColumnOrder[0],
		"title":       "Review copy",
		"assigneeIds": []string{bob.ID},
	}, nil)
	require.Equal(t, http.StatusCreated, status)

	var inbox []struct {
		Verb string `json:"verb"`
	}
	require.Equal(t, http.StatusOK, apiCall(t, ts, bob.Token, http.MethodGet, "/notifications", nil, &inbox))
	require.Len(t, inbox, 1)
	require.Equal(t, "task_assigned", inbox[0].Verb)

	// The worker drains the queue.
	require.Eventually(t, func() bool {
		n, err := ts.Queue.Len(context.Background())
		return err == nil && n == 0
	}, 5*time.Second, 20*time.Millisecond)
}

func TestFunctional_DocumentationResources(t *testing.T) {
	ts := testserver.New(t)
	ada := register(t, ts, "Ada", "ada@example.com")
	cs := ts.MCPClient(t, ada.Token)

	res, err := cs.ListResources(context.Background(), nil)
	require.NoError(t, err)
	require.NotEmpty(t, res.Resources)

	doc, err := cs.ReadResource(context.Background(), &sdkmcp.ReadResourceParams{URI: "taskboard://docs/errors"})
	require.NoError(t, err)
	require.Contains(t, doc.Contents[0].Text, "ONLY_COLUMN")
}
