package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/Mateodiet/Project-Tool-Management/internal/config"
	"github.com/Mateodiet/Project-Tool-Management/internal/handlers"
	"github.com/Mateodiet/Project-Tool-Management/internal/logger"
	"github.com/Mateodiet/Project-Tool-Management/internal/middleware"
	"github.com/Mateodiet/Project-Tool-Management/internal/notifier"
	"github.com/Mateodiet/Project-Tool-Management/internal/repository/inmemory"
	"github.com/Mateodiet/Project-Tool-Management/internal/repository/postgres"
	"github.com/Mateodiet/Project-Tool-Management/internal/service"
)

type App struct {
	config *config.Config
	server *http.Server
	router *chi.Mux

	userService    *service.UserService
	projectService *service.ProjectService
	taskService    *service.TaskService

	shutdowns []func() // graceful shutdown hooks, run in reverse order
}

func New(cfg *config.Config) *App {
	return &App{
		config:    cfg,
		shutdowns: make([]func(), 0),
	}
}

func (a *App) Init(ctx context.Context) error {
	if err := logger.Init(a.config.Logging.Development); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}

	a.shutdowns = append(a.shutdowns, func() {
		logger.Info("App: flushing logs...")
		logger.Sync()
	})

	users, projects, members, tasks, history, health, err := a.initStorage(ctx)
	if err != nil {
		return err
	}

	// The notifier logs instead of sending when SMTP is disabled.
	mailer := notifier.NewEmailNotifier(a.config.SMTP)

	a.userService = service.NewUserService(users)
	a.projectService = service.NewProjectService(projects, members, users, mailer)
	a.taskService = service.NewTaskService(tasks, history, projects, users, mailer)

	if a.config.Seed.Enabled {
		if err := a.seed(ctx); err != nil {
			logger.Warn("App: seeding failed", zap.Error(err))
		}
	}

	a.router = a.buildRouter(health)
	a.server = &http.Server{
		Addr:         a.config.GetServerAddr(),
		Handler:      a.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return nil
}

func (a *App) initStorage(ctx context.Context) (
	service.UserRepository,
	service.ProjectRepository,
	service.MemberRepository,
	service.TaskRepository,
	service.HistoryRepository,
	handlers.HealthChecker,
	error,
) {
	switch a.config.Repository.Type {
	case "postgres":
		storage, err := postgres.New(ctx,
			a.config.Database.URL,
			a.config.Database.MaxConnections,
			a.config.Database.MinConnections,
			a.config.Database.IdleTimeout,
		)
		if err != nil {
			return nil, nil, nil, nil, nil, nil, fmt.Errorf("initializing postgres: %w", err)
		}
		if err := storage.Migrate(); err != nil {
			storage.Close()
			return nil, nil, nil, nil, nil, nil, fmt.Errorf("migrating schema: %w", err)
		}
		a.shutdowns = append(a.shutdowns, storage.Close)
		return storage.Users(), storage.Projects(), storage.Members(), storage.Tasks(), storage.History(), storage, nil

	case "inmemory", "":
		storage := inmemory.NewStorage()
		a.shutdowns = append(a.shutdowns, storage.Close)
		return storage.Users(), storage.Projects(), storage.Members(), storage.Tasks(), storage.History(), storage, nil

	default:
		return nil, nil, nil, nil, nil, nil, fmt.Errorf("unknown repository type %q", a.config.Repository.Type)
	}
}

func (a *App) buildRouter(health handlers.HealthChecker) *chi.Mux {
	userHandler := handlers.NewUserHandler(a.userService)
	projectHandler := handlers.NewProjectHandler(a.projectService)
	taskHandler := handlers.NewTaskHandler(a.taskService)
	healthHandler := handlers.NewHealthHandler(health)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(middleware.RateLimit(300))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:4200"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

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
			r.Get("/", projectHandler.GetProjectByID) // the segment carries the project id here
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

// seed creates a demo admin and a sample project on an empty installation.
func (a *App) seed(ctx context.Context) error {
	existing, err := a.userService.GetAllUsers(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	admin, err := a.userService.Register(ctx, service.RegisterRequest{
		Name:          "Admin",
		Email:         "admin@pmt.local",
		Password:      "admin123",
		ContactNumber: "0000000000",
	})
	if err != nil {
		return err
	}

	_, err = a.projectService.CreateProject(ctx, service.ProjectRequest{
		ProjectName:        ptr("Sample Project"),
		ProjectDescription: ptr("Automatically created starter project"),
	}, admin.Email)
	if err != nil {
		return err
	}

	logger.Info("App: seed data created", zap.String("admin_email", admin.Email))
	return nil
}

func ptr[T any](v T) *T { return &v }

func (a *App) Run() error {
	errCh := make(chan error, 1)

	go func() {
		logger.Info("App: server started", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case sig := <-stop:
		logger.Info("App: shutdown signal received", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		logger.Error("App: server shutdown failed", err)
	}

	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		a.shutdowns[i]()
	}

	return nil
}
