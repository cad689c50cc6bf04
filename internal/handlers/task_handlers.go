package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Mateodiet/Project-Tool-Management/internal/logger"
	"github.com/Mateodiet/Project-Tool-Management/internal/service"
)

type TaskHandler struct {
	TaskService *service.TaskService
}

func NewTaskHandler(taskService *service.TaskService) TaskHandler {
	return TaskHandler{TaskService: taskService}
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	var request service.TaskRequest
	if !decodeBody(w, r, &request) {
		return
	}

	task, err := h.TaskService.CreateTask(r.Context(), request)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Service error", err, zap.String("operation", "create_task"))
		responseWithError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	logger.Info("HTTP_OUT: task created",
		zap.String("task_id", task.TaskID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	responseWithData(w, http.StatusCreated, "Task created successfully", task)
}

func (h *TaskHandler) GetAllTasks(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	tasks, err := h.TaskService.GetAllTasks(r.Context())
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Service error", err, zap.String("operation", "get_all_tasks"))
		responseWithError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	logger.Info("HTTP_OUT: tasks listed",
		zap.Int("count", len(tasks)),
		zap.Duration("ms", time.Since(start)))

	responseWithData(w, http.StatusOK, "Tasks retrieved successfully", tasks)
}

func (h *TaskHandler) GetTaskByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseIDParam(w, r, "taskId")
	if !ok {
		return
	}

	task, err := h.TaskService.GetTaskByID(r.Context(), id)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Service error", err, zap.String("operation", "get_task"))
		responseWithError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	logger.Info("HTTP_OUT: task retrieved",
		zap.String("task_id", task.TaskID.String()),
		zap.Duration("ms", time.Since(start)))

	responseWithData(w, http.StatusOK, "Task retrieved successfully", task)
}

func (h *TaskHandler) GetTasksByProject(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseIDParam(w, r, "projectId")
	if !ok {
		return
	}

	tasks, err := h.TaskService.GetTasksByProject(r.Context(), id)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Service error", err, zap.String("operation", "get_project_tasks"))
		responseWithError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	logger.Info("HTTP_OUT: project tasks listed",
		zap.String("project_id", id.String()),
		zap.Int("count", len(tasks)),
		zap.Duration("ms", time.Since(start)))

	responseWithData(w, http.StatusOK, "Tasks retrieved successfully", tasks)
}

func (h *TaskHandler) GetTasksByProjectName(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	projectName := chi.URLParam(r, "projectName")

	tasks, err := h.TaskService.GetTasksByProjectName(r.Context(), projectName)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Service error", err, zap.String("operation", "get_project_tasks_by_name"))
		responseWithError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	logger.Info("HTTP_OUT: project tasks listed",
		zap.String("project_name", projectName),
		zap.Int("count", len(tasks)),
		zap.Duration("ms", time.Since(start)))

	responseWithData(w, http.StatusOK, "Tasks retrieved successfully", tasks)
}

func (h *TaskHandler) GetTasksByUser(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseIDParam(w, r, "userId")
	if !ok {
		return
	}

	tasks, err := h.TaskService.GetTasksByUser(r.Context(), id)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Service error", err, zap.String("operation", "get_user_tasks"))
		responseWithError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	logger.Info("HTTP_OUT: user tasks listed",
		zap.String("user_id", id.String()),
		zap.Int("count", len(tasks)),
		zap.Duration("ms", time.Since(start)))

	responseWithData(w, http.StatusOK, "Tasks retrieved successfully", tasks)
}

func (h *TaskHandler) GetTasksByStatus(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	status := chi.URLParam(r, "status")

	tasks, err := h.TaskService.GetTasksByStatus(r.Context(), status)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Service error", err, zap.String("operation", "get_tasks_by_status"))
		responseWithError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	logger.Info("HTTP_OUT: tasks listed",
		zap.String("status", status),
		zap.Int("count", len(tasks)),
		zap.Duration("ms", time.Since(start)))

	responseWithData(w, http.StatusOK, "Tasks retrieved successfully", tasks)
}

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseIDParam(w, r, "taskId")
	if !ok {
		return
	}

	updatedByParam := r.URL.Query().Get("updatedBy")
	updatedBy, err := uuid.Parse(updatedByParam)
	if err != nil {
		logger.Warn("HTTP: invalid query parameter",
			zap.String("param", "updatedBy"),
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid updatedBy: "+err.Error())
		return
	}

	var request service.TaskRequest
	if !decodeBody(w, r, &request) {
		return
	}

	task, err := h.TaskService.UpdateTask(r.Context(), id, request, updatedBy)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Service error", err, zap.String("operation", "update_task"))
		responseWithError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	logger.Info("HTTP_OUT: task updated",
		zap.String("task_id", task.TaskID.String()),
		zap.Duration("ms", time.Since(start)))

	responseWithData(w, http.StatusOK, "Task updated successfully", task)
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseIDParam(w, r, "taskId")
	if !ok {
		return
	}

	if err := h.TaskService.DeleteTask(r.Context(), id); err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Service error", err, zap.String("operation", "delete_task"))
		responseWithError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	logger.Info("HTTP_OUT: task deleted",
		zap.String("task_id", id.String()),
		zap.Duration("ms", time.Since(start)))

	responseWithData(w, http.StatusOK, "Task deleted successfully", nil)
}

func (h *TaskHandler) GetTaskHistory(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseIDParam(w, r, "taskId")
	if !ok {
		return
	}

	history, err := h.TaskService.GetTaskHistory(r.Context(), id)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Service error", err, zap.String("operation", "get_task_history"))
		responseWithError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	logger.Info("HTTP_OUT: task history listed",
		zap.String("task_id", id.String()),
		zap.Int("count", len(history)),
		zap.Duration("ms", time.Since(start)))

	responseWithData(w, http.StatusOK, "Task history retrieved successfully", history)
}

func (h *TaskHandler) GetDashboardStats(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	email := chi.URLParam(r, "email")

	stats, err := h.TaskService.GetDashboardStats(r.Context(), email)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Service error", err, zap.String("operation", "get_dashboard"))
		responseWithError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	logger.Info("HTTP_OUT: dashboard stats computed",
		zap.String("email", email),
		zap.Duration("ms", time.Since(start)))

	responseWithData(w, http.StatusOK, "Dashboard stats retrieved successfully", stats)
}
