package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mateodiet/Project-Tool-Management/internal/handlers"
	"github.com/Mateodiet/Project-Tool-Management/internal/logger"
	"github.com/Mateodiet/Project-Tool-Management/internal/notifier"
	"github.com/Mateodiet/Project-Tool-Management/internal/repository/inmemory"
	"github.com/Mateodiet/Project-Tool-Management/internal/service"
)

func TestMain(m *testing.M) {
	logger.Init(true)
	defer logger.Sync()
	m.Run()
}

// newTestRouter wires the full API against the in-memory storage.
func newTestRouter() *chi.Mux {
	storage := inmemory.NewStorage()
	noop := notifier.NewNoop()

	userService := service.NewUserService(storage.Users())
	projectService := service.NewProjectService(storage.Projects(), storage.Members(), storage.Users(), noop)
	taskService := service.NewTaskService(storage.Tasks(), storage.History(), storage.Projects(), storage.Users(), noop)

	userHandler := handlers.NewUserHandler(userService)
	projectHandler := handlers.NewProjectHandler(projectService)
	taskHandler := handlers.NewTaskHandler(taskService)
	healthHandler := handlers.NewHealthHandler(storage)

	r := chi.NewRouter()

	r.Route("/api/user", func(r chi.Router) {
		r.Post("/register", userHandler.Register)
		r.Post("/login", userHandler.Login)
		r.Get("/all", userHandler.GetAllUsers)
		r.Get("/email/{email}", userHandler.GetUserByEmail)

		r.Route("/{userId}", func(r chi.Router) {
			r.Get("/", userHandler.GetUserByID)
			r.Put("/", userHandler.UpdateUser)
			r.Delete("/", userHandler.DeleteUser)
			r.Put("/deactivate", userHandler.DeactivateUser)
		})
	})

	r.Route("/api/project", func(r chi.Router) {
		r.Post("/create", projectHandler.CreateProject)
		r.Get("/all", projectHandler.GetAllProjects)
		r.Get("/name/{projectName}", projectHandler.GetProjectByName)
		r.Get("/user/{email}", projectHandler.GetUserProjects)
		r.Post("/invite", projectHandler.InviteMember)
		r.Get("/accept-invite/{email}/{projectName}", projectHandler.AcceptInvitation)

		r.Route("/{projectName}", func(r chi.Router) {
			r.Get("/", projectHandler.GetProjectByID)
			r.Put("/", projectHandler.UpdateProject)
			r.Delete("/", projectHandler.DeleteProject)
			r.Get("/members", projectHandler.GetProjectMembers)
			r.Get("/member-role/{email}", projectHandler.GetMemberRole)
			r.Put("/member-role/{email}", projectHandler.UpdateMemberRole)
			r.Delete("/member/{email}", projectHandler.RemoveMember)
		})
	})

	r.Route("/api/task", func(r chi.Router) {
		r.Post("/create", taskHandler.CreateTask)
		r.Get("/all", taskHandler.GetAllTasks)
		r.Get("/project/{projectId}", taskHandler.GetTasksByProject)
		r.Get("/project/name/{projectName}", taskHandler.GetTasksByProjectName)
		r.Get("/user/{userId}", taskHandler.GetTasksByUser)
		r.Get("/status/{status}", taskHandler.GetTasksByStatus)
		r.Get("/dashboard/{email}", taskHandler.GetDashboardStats)

		r.Route("/{taskId}", func(r chi.Router) {
			r.Get("/", taskHandler.GetTaskByID)
			r.Put("/", taskHandler.UpdateTask)
			r.Delete("/", taskHandler.DeleteTask)
			r.Get("/history", taskHandler.GetTaskHistory)
		})
	})

	r.Get("/health", healthHandler.HealthCheck)

	return r
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	decoded := map[string]any{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec, decoded
}

func registerUser(t *testing.T, router http.Handler, name, email string) map[string]any {
	t.Helper()
	rec, body := doJSON(t, router, http.MethodPost, "/api/user/register", map[string]any{
		"name":     name,
		"email":    email,
		"password": "secret",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	return body["data"].(map[string]any)
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter()

	rec, body := doJSON(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "UP", body["status"])
}

func TestRegisterAndLogin(t *testing.T) {
	router := newTestRouter()
	registerUser(t, router, "Alice", "alice@example.com")

	t.Run("duplicate registration conflicts", func(t *testing.T) {
		rec, body := doJSON(t, router, http.MethodPost, "/api/user/register", map[string]any{
			"name":     "Alice",
			"email":    "alice@example.com",
			"password": "secret",
		})
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "Email already registered", body["message"])
	})

	t.Run("login with valid credentials", func(t *testing.T) {
		rec, body := doJSON(t, router, http.MethodPost, "/api/user/login", map[string]any{
			"email":    "alice@example.com",
			"password": "secret",
		})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Login successful", body["message"])
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		rec, _ := doJSON(t, router, http.MethodPost, "/api/user/login", map[string]any{
			"email":    "alice@example.com",
			"password": "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("deactivated account is forbidden", func(t *testing.T) {
		user := registerUser(t, router, "Carol", "carol@example.com")
		userID := user["userId"].(string)

		rec, _ := doJSON(t, router, http.MethodPut, "/api/user/"+userID+"/deactivate", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		rec, body := doJSON(t, router, http.MethodPost, "/api/user/login", map[string]any{
			"email":    "carol@example.com",
			"password": "secret",
		})
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "Account is deactivated", body["message"])
	})
}

func TestProjectLifecycle(t *testing.T) {
	router := newTestRouter()
	registerUser(t, router, "Alice", "alice@example.com")

	rec, body := doJSON(t, router, http.MethodPost, "/api/project/create?creatorEmail=alice@example.com", map[string]any{
		"projectName":        "Roadmap",
		"projectDescription": "Quarterly planning",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	data := body["data"].(map[string]any)
	assert.Equal(t, "Roadmap", data["projectName"])

	t.Run("duplicate name conflicts", func(t *testing.T) {
		rec, body := doJSON(t, router, http.MethodPost, "/api/project/create?creatorEmail=alice@example.com", map[string]any{
			"projectName": "Roadmap",
		})
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "Project name already exists", body["message"])
	})

	t.Run("unknown creator is not found", func(t *testing.T) {
		rec, _ := doJSON(t, router, http.MethodPost, "/api/project/create?creatorEmail=ghost@example.com", map[string]any{
			"projectName": "Another",
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("creator is an accepted admin member", func(t *testing.T) {
		rec, body := doJSON(t, router, http.MethodGet, "/api/project/Roadmap/members", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		members := body["data"].([]any)
		require.Len(t, members, 1)
		member := members[0].(map[string]any)
		assert.Equal(t, "ADMIN", member["role"])
		assert.Equal(t, "ACCEPTED", member["status"])
	})
}

func TestInvitationFlow(t *testing.T) {
	router := newTestRouter()
	registerUser(t, router, "Alice", "alice@example.com")
	registerUser(t, router, "Bob", "bob@example.com")

	rec, _ := doJSON(t, router, http.MethodPost, "/api/project/create?creatorEmail=alice@example.com", map[string]any{
		"projectName": "Roadmap",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	invite := map[string]any{
		"email":       "bob@example.com",
		"projectName": "Roadmap",
		"role":        "member",
		"invitedBy":   "alice@example.com",
	}

	rec, body := doJSON(t, router, http.MethodPost, "/api/project/invite", invite)
	require.Equal(t, http.StatusOK, rec.Code)
	data := body["data"].(map[string]any)
	assert.Equal(t, "MEMBRE", data["role"])
	assert.Equal(t, "PENDING", data["status"])

	t.Run("second invite conflicts", func(t *testing.T) {
		rec, body := doJSON(t, router, http.MethodPost, "/api/project/invite", invite)
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "User is already a member or has a pending invitation", body["message"])
	})

	t.Run("pending member has no role yet", func(t *testing.T) {
		rec, _ := doJSON(t, router, http.MethodGet, "/api/project/Roadmap/member-role/bob@example.com", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("accept once", func(t *testing.T) {
		rec, _ := doJSON(t, router, http.MethodGet, "/api/project/accept-invite/bob@example.com/Roadmap", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("second accept conflicts", func(t *testing.T) {
		rec, body := doJSON(t, router, http.MethodGet, "/api/project/accept-invite/bob@example.com/Roadmap", nil)
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "Invitation already accepted", body["message"])
	})

	t.Run("accepted member now has a role", func(t *testing.T) {
		rec, body := doJSON(t, router, http.MethodGet, "/api/project/Roadmap/member-role/bob@example.com", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		data := body["data"].(map[string]any)
		assert.Equal(t, "MEMBRE", data["role"])
	})
}

// TestEndToEndScenario walks the full flow: register two users, create a
// project, invite and accept, create a task, move it forward and check the
// audit trail and dashboard.
func TestEndToEndScenario(t *testing.T) {
	router := newTestRouter()

	alice := registerUser(t, router, "Alice", "alice@example.com")
	aliceID := alice["userId"].(string)
	bob := registerUser(t, router, "Bob", "bob@example.com")
	bobID := bob["userId"].(string)

	rec, body := doJSON(t, router, http.MethodPost, "/api/project/create?creatorEmail=alice@example.com", map[string]any{
		"projectName": "Roadmap",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	projectID := body["data"].(map[string]any)["projectId"].(string)

	rec, _ = doJSON(t, router, http.MethodPost, "/api/project/invite", map[string]any{
		"email":       "bob@example.com",
		"projectName": "Roadmap",
		"role":        "member",
		"invitedBy":   "alice@example.com",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = doJSON(t, router, http.MethodGet, "/api/project/accept-invite/bob@example.com/Roadmap", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body = doJSON(t, router, http.MethodPost, "/api/task/create", map[string]any{
		"taskName":  "Design",
		"projectId": projectID,
		"createdBy": aliceID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	task := body["data"].(map[string]any)
	taskID := task["taskId"].(string)
	assert.Equal(t, "TODO", task["taskStatus"])
	assert.Equal(t, "MEDIUM", task["taskPriority"])
	assert.Equal(t, "Roadmap", task["projectName"])

	rec, body = doJSON(t, router, http.MethodPut,
		fmt.Sprintf("/api/task/%s/?updatedBy=%s", taskID, aliceID),
		map[string]any{
			"taskStatus": "IN_PROGRESS",
			"assignedTo": bobID,
		})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := body["data"].(map[string]any)
	assert.Equal(t, "IN_PROGRESS", updated["taskStatus"])
	assert.Equal(t, "Bob", updated["assignedToName"])

	rec, body = doJSON(t, router, http.MethodGet, "/api/task/"+taskID+"/history", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	history := body["data"].([]any)
	// creation row plus one row per changed field
	require.Len(t, history, 3)

	fields := map[string]bool{}
	for _, raw := range history {
		entry := raw.(map[string]any)
		fields[entry["fieldChanged"].(string)] = true
	}
	assert.True(t, fields["CREATED"])
	assert.True(t, fields["taskStatus"])
	assert.True(t, fields["assignedTo"])

	rec, body = doJSON(t, router, http.MethodGet, "/api/task/dashboard/alice@example.com", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stats := body["data"].(map[string]any)
	assert.Equal(t, float64(1), stats["totalProjects"])
	assert.Equal(t, float64(1), stats["totalTasks"])
	assert.Equal(t, float64(1), stats["inProgressTasks"])
	assert.Equal(t, float64(0), stats["todoTasks"])
}

func TestTaskValidation(t *testing.T) {
	router := newTestRouter()

	t.Run("malformed task id", func(t *testing.T) {
		rec, _ := doJSON(t, router, http.MethodGet, "/api/task/not-a-uuid/", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("task for unknown project", func(t *testing.T) {
		registerUser(t, router, "Alice", "alice@example.com")
		rec, body := doJSON(t, router, http.MethodPost, "/api/task/create", map[string]any{
			"taskName":  "Design",
			"projectId": "00000000-0000-0000-0000-000000000001",
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Project not found", body["message"])
	})
}
