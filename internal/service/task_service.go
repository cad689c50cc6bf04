package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Mateodiet/Project-Tool-Management/internal/logger"
	"github.com/Mateodiet/Project-Tool-Management/internal/models"
	"github.com/Mateodiet/Project-Tool-Management/internal/repository"
)

type TaskService struct {
	tasks    TaskRepository
	history  HistoryRepository
	projects ProjectRepository
	users    UserRepository
	notifier Notifier
}

func NewTaskService(tasks TaskRepository, history HistoryRepository, projects ProjectRepository, users UserRepository, notifier Notifier) *TaskService {
	return &TaskService{
		tasks:    tasks,
		history:  history,
		projects: projects,
		users:    users,
		notifier: notifier,
	}
}

func (s *TaskService) CreateTask(ctx context.Context, req TaskRequest) (*TaskDTO, error) {
	if req.TaskName == nil || *req.TaskName == "" {
		return nil, NewValidationError("taskName", "must not be empty")
	}

	if _, err := s.projects.GetByID(ctx, req.ProjectID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewNotFound("Project not found")
		}
		return nil, fmt.Errorf("fetching project: %w", err)
	}

	now := time.Now()
	task := &models.Task{
		TaskID:       uuid.New(),
		TaskName:     *req.TaskName,
		TaskStatus:   models.TaskStatusTodo,
		TaskPriority: models.TaskPriorityMedium,
		DueDate:      req.DueDate,
		ProjectID:    req.ProjectID,
		AssignedTo:   req.AssignedTo,
		CreatedBy:    req.CreatedBy,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if req.TaskDescription != nil {
		task.TaskDescription = *req.TaskDescription
	}
	if req.TaskStatus != nil {
		task.TaskStatus = *req.TaskStatus
	}
	if req.TaskPriority != nil {
		task.TaskPriority = *req.TaskPriority
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}

	s.recordHistory(ctx, task.TaskID, models.HistoryFieldCreated, nil, "Task created", req.CreatedBy)

	logger.Info("Service: task created",
		zap.String("task", task.TaskName),
		zap.String("project_id", task.ProjectID.String()))
	return s.toDTO(ctx, task), nil
}

func (s *TaskService) GetAllTasks(ctx context.Context) ([]TaskDTO, error) {
	tasks, err := s.tasks.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching tasks: %w", err)
	}
	return s.toDTOList(ctx, tasks), nil
}

func (s *TaskService) GetTaskByID(ctx context.Context, taskID uuid.UUID) (*TaskDTO, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewNotFound("Task not found")
		}
		return nil, fmt.Errorf("fetching task: %w", err)
	}
	return s.toDTO(ctx, task), nil
}

func (s *TaskService) GetTasksByProject(ctx context.Context, projectID uuid.UUID) ([]TaskDTO, error) {
	tasks, err := s.tasks.GetByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("fetching tasks: %w", err)
	}
	return s.toDTOList(ctx, tasks), nil
}

func (s *TaskService) GetTasksByProjectName(ctx context.Context, projectName string) ([]TaskDTO, error) {
	project, err := s.projects.GetByName(ctx, projectName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewNotFound("Project not found")
		}
		return nil, fmt.Errorf("fetching project: %w", err)
	}
	return s.GetTasksByProject(ctx, project.ProjectID)
}

func (s *TaskService) GetTasksByUser(ctx context.Context, userID uuid.UUID) ([]TaskDTO, error) {
	tasks, err := s.tasks.GetByAssignee(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetching tasks: %w", err)
	}
	return s.toDTOList(ctx, tasks), nil
}

func (s *TaskService) GetTasksByStatus(ctx context.Context, status string) ([]TaskDTO, error) {
	tasks, err := s.tasks.GetByStatus(ctx, strings.ToUpper(status))
	if err != nil {
		return nil, fmt.Errorf("fetching tasks: %w", err)
	}
	return s.toDTOList(ctx, tasks), nil
}

// UpdateTask diffs every incoming field against the stored value and appends
// one history row per actual change before applying it. Sending a value equal
// to what is stored produces no history row. The updated-at stamp always
// moves, changed fields or not.
func (s *TaskService) UpdateTask(ctx context.Context, taskID uuid.UUID, req TaskRequest, updatedBy uuid.UUID) (*TaskDTO, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewNotFound("Task not found")
		}
		return nil, fmt.Errorf("fetching task: %w", err)
	}

	if req.TaskName != nil && *req.TaskName != task.TaskName {
		s.recordHistory(ctx, taskID, "taskName", &task.TaskName, *req.TaskName, updatedBy)
		task.TaskName = *req.TaskName
	}

	if req.TaskDescription != nil && *req.TaskDescription != task.TaskDescription {
		s.recordHistory(ctx, taskID, "taskDescription", &task.TaskDescription, *req.TaskDescription, updatedBy)
		task.TaskDescription = *req.TaskDescription
	}

	if req.TaskStatus != nil && *req.TaskStatus != task.TaskStatus {
		s.recordHistory(ctx, taskID, "taskStatus", &task.TaskStatus, *req.TaskStatus, updatedBy)
		task.TaskStatus = *req.TaskStatus
	}

	if req.TaskPriority != nil && *req.TaskPriority != task.TaskPriority {
		s.recordHistory(ctx, taskID, "taskPriority", &task.TaskPriority, *req.TaskPriority, updatedBy)
		task.TaskPriority = *req.TaskPriority
	}

	if req.DueDate != nil && !timeEqual(task.DueDate, req.DueDate) {
		s.recordHistory(ctx, taskID, "dueDate", timeToString(task.DueDate), req.DueDate.Format(time.RFC3339), updatedBy)
		task.DueDate = req.DueDate
	}

	if req.AssignedTo != nil && !uuidEqual(task.AssignedTo, req.AssignedTo) {
		s.recordHistory(ctx, taskID, "assignedTo", uuidToString(task.AssignedTo), req.AssignedTo.String(), updatedBy)
		task.AssignedTo = req.AssignedTo

		s.sendAssignmentNotification(ctx, *req.AssignedTo, task.TaskName, task.ProjectID)
	}

	task.UpdatedAt = time.Now()
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("updating task: %w", err)
	}

	logger.Info("Service: task updated", zap.String("task_id", taskID.String()))
	return s.toDTO(ctx, task), nil
}

// DeleteTask removes the row only. History entries of the task are left
// orphaned on purpose.
func (s *TaskService) DeleteTask(ctx context.Context, taskID uuid.UUID) error {
	if _, err := s.tasks.GetByID(ctx, taskID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NewNotFound("Task not found")
		}
		return fmt.Errorf("fetching task: %w", err)
	}

	if err := s.tasks.Delete(ctx, taskID); err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}

	logger.Info("Service: task deleted", zap.String("task_id", taskID.String()))
	return nil
}

// GetTaskHistory never reports NotFound: an unknown or history-less task
// yields an empty list.
func (s *TaskService) GetTaskHistory(ctx context.Context, taskID uuid.UUID) ([]*models.TaskHistory, error) {
	history, err := s.history.GetByTask(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("fetching history: %w", err)
	}
	if history == nil {
		history = []*models.TaskHistory{}
	}
	return history, nil
}

// GetDashboardStats aggregates over every task in the system, not just the
// requesting user's projects. The email only gates access.
func (s *TaskService) GetDashboardStats(ctx context.Context, email string) (*DashboardStats, error) {
	if _, err := s.users.GetByEmail(ctx, email); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewNotFound("User not found")
		}
		return nil, fmt.Errorf("fetching user: %w", err)
	}

	allTasks, err := s.tasks.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching tasks: %w", err)
	}

	totalProjects, err := s.projects.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting projects: %w", err)
	}

	stats := &DashboardStats{
		TotalProjects: totalProjects,
		TotalTasks:    len(allTasks),
		TasksByStatus: map[string][]TaskDTO{
			models.TaskStatusTodo:       {},
			models.TaskStatusInProgress: {},
			models.TaskStatusCompleted:  {},
		},
	}

	for _, t := range allTasks {
		switch t.TaskStatus {
		case models.TaskStatusTodo:
			stats.TodoTasks++
		case models.TaskStatusInProgress:
			stats.InProgressTasks++
		case models.TaskStatusCompleted:
			stats.CompletedTasks++
		}

		if _, ok := stats.TasksByStatus[t.TaskStatus]; ok {
			stats.TasksByStatus[t.TaskStatus] = append(stats.TasksByStatus[t.TaskStatus], *s.toDTO(ctx, t))
		}
	}

	return stats, nil
}

func (s *TaskService) recordHistory(ctx context.Context, taskID uuid.UUID, field string, oldValue *string, newValue string, changedBy uuid.UUID) {
	entry := &models.TaskHistory{
		HistoryID:    uuid.New(),
		TaskID:       taskID,
		FieldChanged: field,
		OldValue:     oldValue,
		NewValue:     newValue,
		ChangedBy:    changedBy,
		ChangedAt:    time.Now(),
	}
	if err := s.history.Create(ctx, entry); err != nil {
		logger.Error("Service: recording task history", err,
			zap.String("task_id", taskID.String()),
			zap.String("field", field))
	}
}

// sendAssignmentNotification resolves the assignee and project independently
// and silently does nothing when either lookup fails.
func (s *TaskService) sendAssignmentNotification(ctx context.Context, assignedTo uuid.UUID, taskName string, projectID uuid.UUID) {
	user, err := s.users.GetByID(ctx, assignedTo)
	if err != nil {
		logger.Warn("Service: assignment notification skipped, assignee unresolved",
			zap.String("user_id", assignedTo.String()))
		return
	}

	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		logger.Warn("Service: assignment notification skipped, project unresolved",
			zap.String("project_id", projectID.String()))
		return
	}

	s.notifier.SendTaskAssignment(ctx, user.Email, taskName, project.ProjectName)
}

// toDTO enriches a task with display names via independent lookups. A missing
// project or assignee leaves the name nil, it never fails the conversion.
func (s *TaskService) toDTO(ctx context.Context, t *models.Task) *TaskDTO {
	dto := &TaskDTO{
		TaskID:          t.TaskID,
		TaskName:        t.TaskName,
		TaskDescription: t.TaskDescription,
		TaskStatus:      t.TaskStatus,
		TaskPriority:    t.TaskPriority,
		DueDate:         t.DueDate,
		ProjectID:       t.ProjectID,
		AssignedTo:      t.AssignedTo,
		CreatedBy:       t.CreatedBy,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}

	if project, err := s.projects.GetByID(ctx, t.ProjectID); err == nil {
		dto.ProjectName = &project.ProjectName
	}

	if t.AssignedTo != nil {
		if user, err := s.users.GetByID(ctx, *t.AssignedTo); err == nil {
			dto.AssignedToName = &user.Name
		}
	}

	return dto
}

func (s *TaskService) toDTOList(ctx context.Context, tasks []*models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, t := range tasks {
		dtos[i] = *s.toDTO(ctx, t)
	}
	return dtos
}

func timeEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func timeToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

func uuidEqual(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func uuidToString(u *uuid.UUID) *string {
	if u == nil {
		return nil
	}
	s := u.String()
	return &s
}
