package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/josephcavalcante/projeto-todolist/api/handler"
)

type Handlers struct {
	Auth    *apiHandler.AuthHandler
	Profile *apiHandler.ProfileHandler
	Task    *apiHandler.TaskHandler
	Subtask *apiHandler.SubtaskHandler
	Event   *apiHandler.EventHandler
	Health  *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/api/v1/auth/register", handlers.Auth.Register)
	r.POST("/api/v1/auth/login", handlers.Auth.Login)
	r.POST("/api/v1/auth/refresh", handlers.Auth.Refresh)
	r.POST("/api/v1/auth/logout", handlers.Auth.Logout)

	// Protected routes
	r.GET("/api/v1/profile", authMiddleware(handlers.Profile.GetProfile))
	r.PUT("/api/v1/profile", authMiddleware(handlers.Profile.UpdateProfile))

	r.GET("/api/v1/tasks", authMiddleware(handlers.Task.GetTasks))
	r.POST("/api/v1/tasks", authMiddleware(handlers.Task.CreateTask))
	r.GET("/api/v1/tasks/{title}", authMiddleware(handlers.Task.GetTask))
	r.PUT("/api/v1/tasks/{title}", authMiddleware(handlers.Task.UpdateTask))
	r.DELETE("/api/v1/tasks/{title}", authMiddleware(handlers.Task.DeleteTask))

	r.GET("/api/v1/tasks/{title}/subtasks", authMiddleware(handlers.Subtask.GetSubtasks))
	r.POST("/api/v1/tasks/{title}/subtasks", authMiddleware(handlers.Subtask.CreateSubtask))
	r.DELETE("/api/v1/tasks/{title}/subtasks/{subtitle}", authMiddleware(handlers.Subtask.DeleteSubtask))

	r.GET("/api/v1/events", authMiddleware(handlers.Event.GetEvents))
	r.POST("/api/v1/events", authMiddleware(handlers.Event.CreateEvent))
	r.PUT("/api/v1/events", authMiddleware(handlers.Event.UpdateEvent))
	r.GET("/api/v1/events/{title}", authMiddleware(handlers.Event.GetEvent))
	r.DELETE("/api/v1/events/{title}", authMiddleware(handlers.Event.DeleteEvent))

	return r
}
