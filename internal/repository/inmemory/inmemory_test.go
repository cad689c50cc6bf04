package inmemory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mateodiet/Project-Tool-Management/internal/logger"
	"github.com/Mateodiet/Project-Tool-Management/internal/models"
	"github.com/Mateodiet/Project-Tool-Management/internal/repository"
	"github.com/Mateodiet/Project-Tool-Management/internal/repository/inmemory"
)

func TestMain(m *testing.M) {
	logger.Init(true)
	defer logger.Sync()
	m.Run()
}

func newUser(email string) *models.User {
	return &models.User{
		UserID:    uuid.New(),
		Name:      "Alice",
		Email:     email,
		Password:  "secret",
		CreatedAt: time.Now(),
		IsActive:  true,
	}
}

func newProject(name string, createdBy uuid.UUID) *models.Project {
	return &models.Project{
		ProjectID:     uuid.New(),
		ProjectName:   name,
		ProjectStatus: models.ProjectStatusActive,
		CreatedBy:     createdBy,
	}
}

func newMember(userID, projectID uuid.UUID, status models.MemberStatus) *models.ProjectMember {
	return &models.ProjectMember{
		ID:        uuid.New(),
		UserID:    userID,
		ProjectID: projectID,
		Role:      models.RoleMembre,
		Status:    status,
		JoinedAt:  time.Now(),
	}
}

func newTask(projectID uuid.UUID) *models.Task {
	now := time.Now()
	return &models.Task{
		TaskID:       uuid.New(),
		TaskName:     "Design",
		TaskStatus:   models.TaskStatusTodo,
		TaskPriority: models.TaskPriorityMedium,
		ProjectID:    projectID,
		CreatedBy:    uuid.New(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestUserStorage_CRUD(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewStorage()
	users := storage.Users()

	user := newUser("alice@example.com")
	require.NoError(t, users.Create(ctx, user))

	t.Run("get by id", func(t *testing.T) {
		got, err := users.GetByID(ctx, user.UserID)
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", got.Email)
	})

	t.Run("get by email", func(t *testing.T) {
		got, err := users.GetByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, user.UserID, got.UserID)
	})

	t.Run("exists by email", func(t *testing.T) {
		exists, err := users.ExistsByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = users.ExistsByEmail(ctx, "ghost@example.com")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("unknown id yields ErrNotFound", func(t *testing.T) {
		_, err := users.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, users.Delete(ctx, user.UserID))
		_, err := users.GetByID(ctx, user.UserID)
		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.ErrorIs(t, users.Delete(ctx, user.UserID), repository.ErrNotFound)
	})
}

func TestUserStorage_GetAllKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewStorage()
	users := storage.Users()

	first := newUser("first@example.com")
	second := newUser("second@example.com")
	require.NoError(t, users.Create(ctx, first))
	require.NoError(t, users.Create(ctx, second))

	all, err := users.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "first@example.com", all[0].Email)
	assert.Equal(t, "second@example.com", all[1].Email)
}

func TestProjectStorage_CreateWithAdmin(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewStorage()

	creator := newUser("alice@example.com")
	require.NoError(t, storage.Users().Create(ctx, creator))

	project := newProject("Roadmap", creator.UserID)
	admin := newMember(creator.UserID, project.ProjectID, models.MemberAccepted)
	admin.Role = models.RoleAdmin

	require.NoError(t, storage.Projects().CreateWithAdmin(ctx, project, admin))

	got, err := storage.Projects().GetByName(ctx, "Roadmap")
	require.NoError(t, err)
	assert.Equal(t, project.ProjectID, got.ProjectID)

	membership, err := storage.Members().GetByUserAndProject(ctx, creator.UserID, project.ProjectID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, membership.Role)
	assert.Equal(t, models.MemberAccepted, membership.Status)
}

func TestProjectStorage_DeleteCascade(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewStorage()

	creator := newUser("alice@example.com")
	require.NoError(t, storage.Users().Create(ctx, creator))

	project := newProject("Roadmap", creator.UserID)
	admin := newMember(creator.UserID, project.ProjectID, models.MemberAccepted)
	require.NoError(t, storage.Projects().CreateWithAdmin(ctx, project, admin))

	other := newProject("Other", creator.UserID)
	otherAdmin := newMember(creator.UserID, other.ProjectID, models.MemberAccepted)
	require.NoError(t, storage.Projects().CreateWithAdmin(ctx, other, otherAdmin))

	task := newTask(project.ProjectID)
	require.NoError(t, storage.Tasks().Create(ctx, task))
	otherTask := newTask(other.ProjectID)
	require.NoError(t, storage.Tasks().Create(ctx, otherTask))

	entry := &models.TaskHistory{
		HistoryID:    uuid.New(),
		TaskID:       task.TaskID,
		FieldChanged: models.HistoryFieldCreated,
		NewValue:     "Task created",
		ChangedBy:    creator.UserID,
		ChangedAt:    time.Now(),
	}
	require.NoError(t, storage.History().Create(ctx, entry))

	require.NoError(t, storage.Projects().DeleteCascade(ctx, project.ProjectID))

	_, err := storage.Projects().GetByID(ctx, project.ProjectID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = storage.Tasks().GetByID(ctx, task.TaskID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = storage.Members().GetByUserAndProject(ctx, creator.UserID, project.ProjectID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// history rows of the deleted task stay behind
	orphaned, err := storage.History().GetByTask(ctx, task.TaskID)
	require.NoError(t, err)
	assert.Len(t, orphaned, 1)

	// the sibling project is untouched
	_, err = storage.Projects().GetByID(ctx, other.ProjectID)
	require.NoError(t, err)
	_, err = storage.Tasks().GetByID(ctx, otherTask.TaskID)
	require.NoError(t, err)
}

func TestTaskStorage_Filters(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewStorage()
	tasks := storage.Tasks()

	projectID := uuid.New()
	assignee := uuid.New()

	todo := newTask(projectID)
	inProgress := newTask(projectID)
	inProgress.TaskStatus = models.TaskStatusInProgress
	inProgress.AssignedTo = &assignee
	elsewhere := newTask(uuid.New())

	require.NoError(t, tasks.Create(ctx, todo))
	require.NoError(t, tasks.Create(ctx, inProgress))
	require.NoError(t, tasks.Create(ctx, elsewhere))

	byProject, err := tasks.GetByProject(ctx, projectID)
	require.NoError(t, err)
	assert.Len(t, byProject, 2)

	byAssignee, err := tasks.GetByAssignee(ctx, assignee)
	require.NoError(t, err)
	require.Len(t, byAssignee, 1)
	assert.Equal(t, inProgress.TaskID, byAssignee[0].TaskID)

	byStatus, err := tasks.GetByStatus(ctx, models.TaskStatusInProgress)
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, inProgress.TaskID, byStatus[0].TaskID)
}

func TestHistoryStorage_NewestFirst(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewStorage()
	history := storage.History()

	taskID := uuid.New()
	base := time.Now()

	for i := 0; i < 3; i++ {
		entry := &models.TaskHistory{
			HistoryID:    uuid.New(),
			TaskID:       taskID,
			FieldChanged: "taskStatus",
			NewValue:     "value",
			ChangedBy:    uuid.New(),
			ChangedAt:    base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, history.Create(ctx, entry))
	}

	entries, err := history.GetByTask(ctx, taskID)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.True(t, entries[0].ChangedAt.After(entries[1].ChangedAt))
	assert.True(t, entries[1].ChangedAt.After(entries[2].ChangedAt))
}
