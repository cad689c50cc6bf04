package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Mateodiet/Project-Tool-Management/internal/logger"
	"github.com/Mateodiet/Project-Tool-Management/internal/service"
)

type UserHandler struct {
	UserService *service.UserService
}

func NewUserHandler(userService *service.UserService) UserHandler {
	return UserHandler{UserService: userService}
}

// parseIDParam reads a uuid path parameter and writes the 400 itself when the
// value is missing or malformed.
func parseIDParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	idParam := chi.URLParam(r, name)
	id, err := uuid.Parse(idParam)
	if err != nil {
		logger.Warn("HTTP: invalid id parameter",
			zap.String("param", name),
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid "+name+": "+err.Error())
		return uuid.Nil, false
	}
	if id == uuid.Nil {
		logger.Warn("HTTP: empty id parameter",
			zap.String("param", name),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "BAD_REQUEST", name+" must not be empty")
		return uuid.Nil, false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		logger.Warn("HTTP: invalid request body",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body: "+err.Error())
		return false
	}
	return true
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	var request service.RegisterRequest
	if !decodeBody(w, r, &request) {
		return
	}

	user, err := h.UserService.Register(r.Context(), request)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Service error", err, zap.String("operation", "register"))
		responseWithError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	logger.Info("HTTP_OUT: user registered",
		zap.String("user_id", user.UserID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	responseWithData(w, http.StatusCreated, "User registered successfully", user)
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	var request service.LoginRequest
	if !decodeBody(w, r, &request) {
		return
	}

	user, err := h.UserService.Login(r.Context(), request)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Service error", err, zap.String("operation", "login"))
		responseWithError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	logger.Info("HTTP_OUT: user logged in",
		zap.String("user_id", user.UserID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithData(w, http.StatusOK, "Login successful", user)
}

func (h *UserHandler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	users, err := h.UserService.GetAllUsers(r.Context())
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Service error", err, zap.String("operation", "get_all_users"))
		responseWithError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	logger.Info("HTTP_OUT: users listed",
		zap.Int("count", len(users)),
		zap.Duration("ms", time.Since(start)))

	responseWithData(w, http.StatusOK, "Users retrieved successfully", users)
}

func (h *UserHandler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseIDParam(w, r, "userId")
	if !ok {
		return
	}

	user, err := h.UserService.GetUserByID(r.Context(), id)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Service error", err, zap.String("operation", "get_user"))
		responseWithError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	logger.Info("HTTP_OUT: user retrieved",
		zap.String("user_id", user.UserID.String()),
		zap.Duration("ms", time.Since(start)))

	responseWithData(w, http.StatusOK, "User retrieved successfully", user)
}

func (h *UserHandler) GetUserByEmail(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	email := chi.URLParam(r, "email")
	if email == "" {
		responseWithError(w, http.StatusBadRequest, "BAD_REQUEST", "email must not be empty")
		return
	}

	user, err := h.UserService.GetUserByEmail(r.Context(), email)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Service error", err, zap.String("operation", "get_user_by_email"))
		responseWithError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	logger.Info("HTTP_OUT: user retrieved",
		zap.String("email", email),
		zap.Duration("ms", time.Since(start)))

	responseWithData(w, http.StatusOK, "User retrieved successfully", user)
}

func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseIDParam(w, r, "userId")
	if !ok {
		return
	}

	var request service.UpdateUserRequest
	if !decodeBody(w, r, &request) {
		return
	}

	user, err := h.UserService.UpdateUser(r.Context(), id, request)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Service error", err, zap.String("operation", "update_user"))
		responseWithError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	logger.Info("HTTP_OUT: user updated",
		zap.String("user_id", user.UserID.String()),
		zap.Duration("ms", time.Since(start)))

	responseWithData(w, http.StatusOK, "User updated successfully", user)
}

func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseIDParam(w, r, "userId")
	if !ok {
		return
	}

	if err := h.UserService.DeleteUser(r.Context(), id); err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Service error", err, zap.String("operation", "delete_user"))
		responseWithError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	logger.Info("HTTP_OUT: user deleted",
		zap.String("user_id", id.String()),
		zap.Duration("ms", time.Since(start)))

	responseWithData(w, http.StatusOK, "User deleted successfully", nil)
}

func (h *UserHandler) DeactivateUser(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseIDParam(w, r, "userId")
	if !ok {
		return
	}

	user, err := h.UserService.DeactivateUser(r.Context(), id)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Service error", err, zap.String("operation", "deactivate_user"))
		responseWithError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	logger.Info("HTTP_OUT: user deactivated",
		zap.String("user_id", user.UserID.String()),
		zap.Duration("ms", time.Since(start)))

	responseWithData(w, http.StatusOK, "User deactivated successfully", user)
}
