package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/tasktracker/backend/api/handler"
)

type Handlers struct {
	Auth   *apiHandler.AuthHandler
	Task   *apiHandler.TaskHandler
	Health *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/auth/register", handlers.Auth.Register)
	r.POST("/auth/login", handlers.Auth.Login)

	// Protected routes
	r.GET("/tasks", authMiddleware(handlers.Task.GetTasks))
	r.POST("/tasks", authMiddleware(handlers.Task.CreateTask))
	r.GET("/tasks/{id}", authMiddleware(handlers.Task.GetTaskByID))
	r.PUT("/tasks/{id}/status", authMiddleware(handlers.Task.UpdateTaskStatus))

	return r
}
