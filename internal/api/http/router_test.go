package http_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/project-board/internal/api/http"
	"github.com/spec-kit/project-board/internal/api/http/handlers"
	"github.com/spec-kit/project-board/internal/events"
	"github.com/spec-kit/project-board/internal/observability"
	"github.com/spec-kit/project-board/internal/seed"
	"github.com/spec-kit/project-board/internal/service"
	"github.com/spec-kit/project-board/internal/store"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Total   *int            `json:"total"`
}

type errorBody struct {
	Error struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

type userJSON struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
	IsActive  bool   `json:"is_active"`
}

type projectJSON struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Status       string   `json:"status"`
	OwnerID      string   `json:"owner_id"`
	CreatedAt    string   `json:"created_at"`
	Technologies []string `json:"technologies"`
	Progress     int      `json:"progress"`
}

func setupApp(t *testing.T) (*fiber.App, *observability.Metrics) {
	t.Helper()
	ds, err := seed.Default()
	require.NoError(t, err)

	metrics := observability.NewMetrics()
	board := service.NewBoardService(service.BoardDependencies{
		Store:      store.New(ds),
		Dispatcher: events.NewInMemoryDispatcher(),
		Logger:     zap.NewNop(),
	})

	app := httptransport.NewApp("project-board-test",
		httptransport.MiddlewareConfig{Logger: zap.NewNop(), Metrics: metrics},
		httptransport.RouteConfig{
			Home:     handlers.NewHomeHandler("1.0.0"),
			Health:   handlers.NewHealthHandler("project-board-test", "1.0.0", nil, metrics),
			Users:    handlers.NewUsersHandler(board),
			Projects: handlers.NewProjectsHandler(board),
			Tasks:    handlers.NewTasksHandler(board),
			Stats:    handlers.NewStatsHandler(board),
		},
	)
	return app, metrics
}

func do(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func decodeEnvelope(t *testing.T, raw []byte) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	return env
}

func listUsers(t *testing.T, app *fiber.App) []userJSON {
	t.Helper()
	resp, raw := do(t, app, http.MethodGet, "/users", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var users []userJSON
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, raw).Data, &users))
	return users
}

func TestSeedCollections(t *testing.T) {
	app, _ := setupApp(t)

	tests := []struct {
		path    string
		want    int
		message string
	}{
		{"/users", 5, "Users retrieved successfully"},
		{"/projects", 3, "Projects retrieved successfully"},
		{"/tasks", 3, "Tasks retrieved successfully"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, raw := do(t, app, http.MethodGet, tt.path, "")
			require.Equal(t, http.StatusOK, resp.StatusCode)

			env := decodeEnvelope(t, raw)
			assert.True(t, env.Success)
			assert.Equal(t, tt.message, env.Message)
			require.NotNil(t, env.Total)
			assert.Equal(t, tt.want, *env.Total)

			var items []json.RawMessage
			require.NoError(t, json.Unmarshal(env.Data, &items))
			assert.Len(t, items, tt.want)
		})
	}
}

func TestWelcome(t *testing.T) {
	app, _ := setupApp(t)

	resp, raw := do(t, app, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	env := decodeEnvelope(t, raw)
	assert.True(t, env.Success)
	assert.Nil(t, env.Total)

	var welcome struct {
		Version   string   `json:"version"`
		Features  []string `json:"features"`
		Endpoints []string `json:"endpoints"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &welcome))
	assert.Equal(t, "1.0.0", welcome.Version)
	assert.NotEmpty(t, welcome.Features)
	assert.Contains(t, welcome.Endpoints, "GET /stats - Board statistics")
}

func TestCreateUser(t *testing.T) {
	app, _ := setupApp(t)

	resp, raw := do(t, app, http.MethodPost, "/users",
		`{"name":"Jane Doe","email":"jane@example.com","role":"QA Engineer","id":"client-id","is_active":false}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	env := decodeEnvelope(t, raw)
	assert.True(t, env.Success)
	assert.Equal(t, "User created successfully", env.Message)
	assert.Nil(t, env.Total)
	assert.NotContains(t, string(raw), `"total":0`)

	var created userJSON
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.NotEmpty(t, created.ID)
	assert.NotEqual(t, "client-id", created.ID)
	assert.Equal(t, "Jane Doe", created.Name)
	assert.True(t, created.IsActive)
	assert.True(t, strings.HasSuffix(created.CreatedAt, "Z"), created.CreatedAt)

	users := listUsers(t, app)
	assert.Len(t, users, 6)
	assert.Contains(t, users, created)
}

func TestCreateUser_EmptyStringsAccepted(t *testing.T) {
	app, _ := setupApp(t)

	resp, raw := do(t, app, http.MethodPost, "/users", `{"name":"","email":"","role":""}`)

	assert.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
}

func TestCreateUser_Rejected(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing email", `{"name":"Jane","role":"Developer"}`},
		{"null role", `{"name":"Jane","email":"j@example.com","role":null}`},
		{"wrong type", `{"name":42,"email":"j@example.com","role":"Developer"}`},
		{"malformed json", `{"name":"Jane",`},
		{"json null", `null`},
		{"array body", `[]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, metrics := setupApp(t)

			resp, raw := do(t, app, http.MethodPost, "/users", tt.body)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode, string(raw))

			var body errorBody
			require.NoError(t, json.Unmarshal(raw, &body))
			assert.Equal(t, "VALIDATION_FAILED", body.Error.Code)
			assert.NotContains(t, string(raw), `"success"`)

			assert.Len(t, listUsers(t, app), 5)
			assert.Equal(t, int64(1), metrics.Snapshot().Errors["/users|POST|VALIDATION_FAILED"])
		})
	}
}

func TestCreateUser_MissingFieldsListed(t *testing.T) {
	app, _ := setupApp(t)

	_, raw := do(t, app, http.MethodPost, "/users", `{"name":"Jane"}`)

	var body errorBody
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, []any{"email", "role"}, body.Error.Details["missing"])
}

func TestCreateUser_WithoutContentType(t *testing.T) {
	app, _ := setupApp(t)

	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"name":"a","email":"b","role":"c"}`))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Len(t, listUsers(t, app), 5)
}

func TestCreateUser_Concurrent(t *testing.T) {
	app, _ := setupApp(t)

	const n = 20
	ids := make([]string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"name":"n","email":"e","role":"Developer"}`))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req, -1)
			if err != nil {
				t.Error(err)
				return
			}
			defer resp.Body.Close()
			var env envelope
			if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
				t.Error(err)
				return
			}
			var u userJSON
			if err := json.Unmarshal(env.Data, &u); err != nil {
				t.Error(err)
				return
			}
			ids[i] = u.ID
		}(i)
	}
	wg.Wait()

	distinct := map[string]struct{}{}
	for _, id := range ids {
		require.NotEmpty(t, id)
		distinct[id] = struct{}{}
	}
	assert.Len(t, distinct, n)
	assert.Len(t, listUsers(t, app), 5+n)
}

func TestCreateProject(t *testing.T) {
	app, _ := setupApp(t)

	resp, raw := do(t, app, http.MethodPost, "/projects",
		`{"title":"T","description":"D","technologies":["Go"],"owner_id":"user_001","status":"Completed","progress":80}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	env := decodeEnvelope(t, raw)
	assert.True(t, env.Success)
	assert.Nil(t, env.Total)

	var project projectJSON
	require.NoError(t, json.Unmarshal(env.Data, &project))
	assert.NotEmpty(t, project.ID)
	assert.Equal(t, "Planning", project.Status)
	assert.Equal(t, 0, project.Progress)
	assert.Equal(t, []string{"Go"}, project.Technologies)
	assert.Equal(t, "user_001", project.OwnerID)

	_, raw = do(t, app, http.MethodGet, "/projects", "")
	assert.Equal(t, 4, *decodeEnvelope(t, raw).Total)
}

func TestCreateProject_EmptyTechnologies(t *testing.T) {
	app, _ := setupApp(t)

	resp, raw := do(t, app, http.MethodPost, "/projects",
		`{"title":"T","description":"D","technologies":[],"owner_id":"ghost"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	assert.Contains(t, string(raw), `"technologies":[]`)
}

func TestCreateProject_Rejected(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing technologies", `{"title":"T","description":"D","owner_id":"u"}`},
		{"missing owner", `{"title":"T","description":"D","technologies":[]}`},
		{"technologies not a list", `{"title":"T","description":"D","technologies":"Go","owner_id":"u"}`},
		{"technology not a string", `{"title":"T","description":"D","technologies":["Go",1],"owner_id":"u"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := setupApp(t)

			resp, raw := do(t, app, http.MethodPost, "/projects", tt.body)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode, string(raw))

			_, raw = do(t, app, http.MethodGet, "/projects", "")
			assert.Equal(t, 3, *decodeEnvelope(t, raw).Total)
		})
	}
}

func TestTasks_OptionalFieldsRenderNull(t *testing.T) {
	app, _ := setupApp(t)

	_, raw := do(t, app, http.MethodGet, "/tasks", "")
	var tasks []map[string]any
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, raw).Data, &tasks))

	var found bool
	for _, task := range tasks {
		if task["id"] != "task_003" {
			continue
		}
		found = true
		assert.Contains(t, task, "assigned_to")
		assert.Nil(t, task["assigned_to"])
		assert.Contains(t, task, "due_date")
		assert.Nil(t, task["due_date"])
		assert.Equal(t, "proj_003", task["project_id"])
	}
	assert.True(t, found)
}

func TestStats(t *testing.T) {
	app, _ := setupApp(t)

	resp, raw := do(t, app, http.MethodGet, "/stats", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	env := decodeEnvelope(t, raw)
	assert.True(t, env.Success)
	assert.Nil(t, env.Total)
	assert.JSONEq(t, `{
		"users": {"total": 5, "active": 4, "roles": {"developers": 2, "designers": 1, "managers": 1}},
		"projects": {"total": 3, "in_progress": 1, "completed": 1, "planning": 1},
		"tasks": {"total": 3, "completed": 1, "in_progress": 1, "todo": 1}
	}`, string(env.Data))

	_, again := do(t, app, http.MethodGet, "/stats", "")
	assert.JSONEq(t, string(env.Data), string(decodeEnvelope(t, again).Data))
}

func TestStats_AfterCreates(t *testing.T) {
	app, _ := setupApp(t)

	do(t, app, http.MethodPost, "/users", `{"name":"a","email":"b","role":"Engineering Manager"}`)
	do(t, app, http.MethodPost, "/projects", `{"title":"T","description":"D","technologies":[],"owner_id":"x"}`)

	_, raw := do(t, app, http.MethodGet, "/stats", "")
	var summary struct {
		Users struct {
			Total int `json:"total"`
			Roles struct {
				Managers int `json:"managers"`
			} `json:"roles"`
		} `json:"users"`
		Projects struct {
			Planning int `json:"planning"`
		} `json:"projects"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, raw).Data, &summary))
	assert.Equal(t, 6, summary.Users.Total)
	assert.Equal(t, 2, summary.Users.Roles.Managers)
	assert.Equal(t, 2, summary.Projects.Planning)
}

func TestRoutingMiss(t *testing.T) {
	app, _ := setupApp(t)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/unknown"},
		{http.MethodGet, "/users/user_001"},
		{http.MethodPost, "/tasks"},
		{http.MethodPut, "/users"},
		{http.MethodDelete, "/projects"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			resp, raw := do(t, app, tt.method, tt.path, "")
			require.Equal(t, http.StatusNotFound, resp.StatusCode, string(raw))

			var body errorBody
			require.NoError(t, json.Unmarshal(raw, &body))
			assert.Equal(t, "NOT_FOUND", body.Error.Code)
		})
	}
}

func TestCORS(t *testing.T) {
	app, _ := setupApp(t)

	req := httptest.NewRequest(http.MethodOptions, "/users", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	req.Header.Set("Access-Control-Request-Headers", "content-type")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	allowed := resp.Header.Get("Access-Control-Allow-Methods")
	for _, method := range []string{"GET", "POST", "PUT", "DELETE"} {
		assert.Contains(t, allowed, method)
	}
	assert.Contains(t, strings.ToLower(resp.Header.Get("Access-Control-Allow-Headers")), "content-type")

	get := httptest.NewRequest(http.MethodGet, "/stats", nil)
	get.Header.Set("Origin", "http://example.com")
	resp, err = app.Test(get, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestHealthAndMetrics(t *testing.T) {
	app, _ := setupApp(t)

	resp, raw := do(t, app, http.MethodGet, "/health/live", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), `"status":"alive"`)

	resp, _ = do(t, app, http.MethodGet, "/health/ready", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	do(t, app, http.MethodGet, "/users", "")
	resp, raw = do(t, app, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var snap observability.MetricsSnapshot
	require.NoError(t, json.Unmarshal(raw, &snap))
	assert.Equal(t, int64(1), snap.Requests["/users|GET|200"])
}

func TestPanicRecovered(t *testing.T) {
	app, metrics := setupApp(t)
	app.Get("/boom", func(*fiber.Ctx) error {
		panic("boom")
	})

	resp, raw := do(t, app, http.MethodGet, "/boom", "")
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode, string(raw))

	var body errorBody
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
	assert.Equal(t, int64(1), metrics.Snapshot().Errors["/boom|GET|INTERNAL_ERROR"])

	resp, _ = do(t, app, http.MethodGet, "/stats", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func doWithContentType(t *testing.T, app *fiber.App, method, path, contentType, body string) (*http.Response, []byte) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func TestCreate_NonJSONBodiesRejected(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		contentType string
		body        string
	}{
		{"user form", "/users", "application/x-www-form-urlencoded", "name=Mallory&email=m%40example.com&role=Developer"},
		{"user xml", "/users", "application/xml", "<user><name>Mallory</name><email>m@example.com</email><role>Developer</role></user>"},
		{"user text", "/users", "text/plain", `{"name":"a","email":"b","role":"c"}`},
		{"project form", "/projects", "application/x-www-form-urlencoded", "title=T&description=D&technologies=Go&owner_id=user_001"},
		{"project xml", "/projects", "text/xml", "<project><title>T</title></project>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := setupApp(t)

			resp, raw := doWithContentType(t, app, http.MethodPost, tt.path, tt.contentType, tt.body)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode, string(raw))

			var body errorBody
			require.NoError(t, json.Unmarshal(raw, &body))
			assert.Equal(t, "VALIDATION_FAILED", body.Error.Code)

			_, raw = do(t, app, http.MethodGet, "/stats", "")
			var summary struct {
				Users    struct{ Total int } `json:"users"`
				Projects struct{ Total int } `json:"projects"`
			}
			require.NoError(t, json.Unmarshal(decodeEnvelope(t, raw).Data, &summary))
			assert.Equal(t, 5, summary.Users.Total)
			assert.Equal(t, 3, summary.Projects.Total)
		})
	}
}

func TestCreateUser_JSONWithCharset(t *testing.T) {
	app, _ := setupApp(t)

	resp, raw := doWithContentType(t, app, http.MethodPost, "/users", "application/json; charset=utf-8",
		`{"name":"Jane","email":"jane@example.com","role":"Developer"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	assert.Len(t, listUsers(t, app), 6)
}

func TestMetrics_RoutingMissesShareOneKey(t *testing.T) {
	app, metrics := setupApp(t)

	const misses = 300
	for i := 0; i < misses; i++ {
		resp, _ := do(t, app, http.MethodGet, fmt.Sprintf("/nope-%d", i), "")
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	}
	do(t, app, http.MethodPut, "/users", "")

	snap := metrics.Snapshot()
	assert.Len(t, snap.Requests, 2)
	assert.Len(t, snap.Errors, 2)
	assert.Equal(t, int64(misses), snap.Requests[observability.UnmatchedRoute+"|GET|404"])
	assert.Equal(t, int64(misses), snap.Errors[observability.UnmatchedRoute+"|GET|NOT_FOUND"])
	assert.Equal(t, int64(1), snap.Errors[observability.UnmatchedRoute+"|PUT|NOT_FOUND"])
}

func TestRoutingIsExact(t *testing.T) {
	app, _ := setupApp(t)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/USERS"},
		{http.MethodGet, "/users/"},
		{http.MethodGet, "/Stats"},
		{http.MethodPost, "/Projects"},
		{http.MethodHead, "/users"},
		{http.MethodHead, "/"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			resp, _ := do(t, app, tt.method, tt.path, "")
			assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		})
	}

	resp, _ := do(t, app, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
