package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Mateodiet/Project-Tool-Management/internal/logger"
	"github.com/Mateodiet/Project-Tool-Management/internal/service"
)

type ProjectHandler struct {
	ProjectService *service.ProjectService
}

func NewProjectHandler(projectService *service.ProjectService) ProjectHandler {
	return ProjectHandler{ProjectService: projectService}
}

func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	creatorEmail := r.URL.Query().Get("creatorEmail")
	if creatorEmail == "" {
		logger.Warn("HTTP: missing query parameter",
			zap.String("param", "creatorEmail"),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "BAD_REQUEST", "creatorEmail query parameter is required")
		return
	}

	var request service.ProjectRequest
	if !decodeBody(w, r, &request) {
		return
	}

	project, err := h.ProjectService.CreateProject(r.Context(), request, creatorEmail)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Service error", err, zap.String("operation", "create_project"))
		responseWithError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	logger.Info("HTTP_OUT: project created",
		zap.String("project_id", project.ProjectID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	responseWithData(w, http.StatusCreated, "Project created successfully", project)
}

func (h *ProjectHandler) GetAllProjects(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	projects, err := h.ProjectService.GetAllProjects(r.Context())
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Service error", err, zap.String("operation", "get_all_projects"))
		responseWithError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	logger.Info("HTTP_OUT: projects listed",
		zap.Int("count", len(projects)),
		zap.Duration("ms", time.Since(start)))

	responseWithData(w, http.StatusOK, "Projects retrieved successfully", projects)
}

func (h *ProjectHandler) GetProjectByName(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	projectName := chi.URLParam(r, "projectName")

	project, err := h.ProjectService.GetProjectByName(r.Context(), projectName)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Service error", err, zap.String("operation", "get_project_by_name"))
		responseWithError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	logger.Info("HTTP_OUT: project retrieved",
		zap.String("project_name", projectName),
		zap.Duration("ms", time.Since(start)))

	responseWithData(w, http.StatusOK, "Project retrieved successfully", project)
}

func (h *ProjectHandler) GetProjectByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	// GET /api/project/{id} shares its path slot with the name-keyed routes,
	// so the wildcard arrives under the projectName param.
	id, ok := parseIDParam(w, r, "projectName")
	if !ok {
		return
	}

	project, err := h.ProjectService.GetProjectByID(r.Context(), id)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Service error", err, zap.String("operation", "get_project"))
		responseWithError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	logger.Info("HTTP_OUT: project retrieved",
		zap.String("project_id", id.String()),
		zap.Duration("ms", time.Since(start)))

	responseWithData(w, http.StatusOK, "Project retrieved successfully", project)
}

func (h *ProjectHandler) GetUserProjects(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	email := chi.URLParam(r, "email")

	projects, err := h.ProjectService.GetUserProjects(r.Context(), email)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Service error", err, zap.String("operation", "get_user_projects"))
		responseWithError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	logger.Info("HTTP_OUT: user projects listed",
		zap.String("email", email),
		zap.Int("count", len(projects)),
		zap.Duration("ms", time.Since(start)))

	responseWithData(w, http.StatusOK, "Projects retrieved successfully", projects)
}

func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	projectName := chi.URLParam(r, "projectName")

	var request service.ProjectRequest
	if !decodeBody(w, r, &request) {
		return
	}

	project, err := h.ProjectService.UpdateProject(r.Context(), projectName, request)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Service error", err, zap.String("operation", "update_project"))
		responseWithError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	logger.Info("HTTP_OUT: project updated",
		zap.String("project_name", projectName),
		zap.Duration("ms", time.Since(start)))

	responseWithData(w, http.StatusOK, "Project updated successfully", project)
}

func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	projectName := chi.URLParam(r, "projectName")

	if err := h.ProjectService.DeleteProject(r.Context(), projectName); err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Service error", err, zap.String("operation", "delete_project"))
		responseWithError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	logger.Info("HTTP_OUT: project deleted",
		zap.String("project_name", projectName),
		zap.Duration("ms", time.Since(start)))

	responseWithData(w, http.StatusOK, "Project deleted successfully", nil)
}

func (h *ProjectHandler) InviteMember(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	var request service.InviteRequest
	if !decodeBody(w, r, &request) {
		return
	}

	invitation, err := h.ProjectService.InviteMember(r.Context(), request)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Service error", err, zap.String("operation", "invite_member"))
		responseWithError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	logger.Info("HTTP_OUT: invitation sent",
		zap.String("email", request.Email),
		zap.String("project_name", request.ProjectName),
		zap.Duration("ms", time.Since(start)))

	responseWithData(w, http.StatusOK, "Invitation sent successfully", invitation)
}

func (h *ProjectHandler) AcceptInvitation(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	email := chi.URLParam(r, "email")
	projectName := chi.URLParam(r, "projectName")

	if err := h.ProjectService.AcceptInvitation(r.Context(), email, projectName); err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Service error", err, zap.String("operation", "accept_invitation"))
		responseWithError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	logger.Info("HTTP_OUT: invitation accepted",
		zap.String("email", email),
		zap.String("project_name", projectName),
		zap.Duration("ms", time.Since(start)))

	responseWithData(w, http.StatusOK, "Invitation accepted successfully", nil)
}

func (h *ProjectHandler) GetProjectMembers(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	projectName := chi.URLParam(r, "projectName")

	members, err := h.ProjectService.GetProjectMembers(r.Context(), projectName)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Service error", err, zap.String("operation", "get_project_members"))
		responseWithError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	logger.Info("HTTP_OUT: members listed",
		zap.String("project_name", projectName),
		zap.Int("count", len(members)),
		zap.Duration("ms", time.Since(start)))

	responseWithData(w, http.StatusOK, "Members retrieved successfully", members)
}

func (h *ProjectHandler) GetMemberRole(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	projectName := chi.URLParam(r, "projectName")
	email := chi.URLParam(r, "email")

	role, err := h.ProjectService.GetMemberRole(r.Context(), email, projectName)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Service error", err, zap.String("operation", "get_member_role"))
		responseWithError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	logger.Info("HTTP_OUT: member role retrieved",
		zap.String("email", email),
		zap.String("project_name", projectName),
		zap.Duration("ms", time.Since(start)))

	responseWithData(w, http.StatusOK, "Member role retrieved successfully", role)
}

func (h *ProjectHandler) UpdateMemberRole(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	projectName := chi.URLParam(r, "projectName")
	email := chi.URLParam(r, "email")

	newRole := r.URL.Query().Get("role")
	if newRole == "" {
		logger.Warn("HTTP: missing query parameter",
			zap.String("param", "role"),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "BAD_REQUEST", "role query parameter is required")
		return
	}

	if err := h.ProjectService.UpdateMemberRole(r.Context(), email, projectName, newRole); err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Service error", err, zap.String("operation", "update_member_role"))
		responseWithError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	logger.Info("HTTP_OUT: member role updated",
		zap.String("email", email),
		zap.String("project_name", projectName),
		zap.String("role", newRole),
		zap.Duration("ms", time.Since(start)))

	responseWithData(w, http.StatusOK, "Member role updated successfully", nil)
}

func (h *ProjectHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	projectName := chi.URLParam(r, "projectName")
	email := chi.URLParam(r, "email")

	if err := h.ProjectService.RemoveMember(r.Context(), email, projectName); err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Service error", err, zap.String("operation", "remove_member"))
		responseWithError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	logger.Info("HTTP_OUT: member removed",
		zap.String("email", email),
		zap.String("project_name", projectName),
		zap.Duration("ms", time.Since(start)))

	responseWithData(w, http.StatusOK, "Member removed successfully", nil)
}
