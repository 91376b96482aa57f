package usecase

import (
	"context"

	"github.com/tasktracker/backend/domain"
	"github.com/tasktracker/backend/usecase/auth"
	"github.com/tasktracker/backend/usecase/task"
)

// Register binds every command and query to its use-case handler. Payload
// shapes are fixed at the API boundary, so a mismatch here is a programming
// error surfaced as an invalid payload.
func Register(d *Dispatcher, authUC *auth.UseCase, taskUC *task.UseCase) {
	d.RegisterCommand(CommandRegister, func(ctx context.Context, payload interface{}) (interface{}, error) {
		req, ok := payload.(auth.RegisterRequest)
		if !ok {
			return nil, domain.ErrInvalidPayload
		}
		return authUC.Register(ctx, req)
	})

	d.RegisterCommand(CommandLogin, func(ctx context.Context, payload interface{}) (interface{}, error) {
		req, ok := payload.(auth.LoginRequest)
		if !ok {
			return nil, domain.ErrInvalidPayload
		}
		return authUC.Login(ctx, req)
	})

	d.RegisterCommand(CommandCreateTask, func(ctx context.Context, payload interface{}) (interface{}, error) {
		req, ok := payload.(task.CreateRequest)
		if !ok {
			return nil, domain.ErrInvalidPayload
		}
		return taskUC.Create(ctx, req)
	})

	d.RegisterCommand(CommandUpdateTaskStatus, func(ctx context.Context, payload interface{}) (interface{}, error) {
		cmd, ok := payload.(task.UpdateStatusCommand)
		if !ok {
			return nil, domain.ErrInvalidPayload
		}
		return taskUC.UpdateStatus(ctx, cmd.ID, cmd.Request)
	})

	d.RegisterQuery(QueryGetAllTasks, func(ctx context.Context, params interface{}) (interface{}, error) {
		filter, ok := params.(task.ListFilter)
		if !ok {
			return nil, domain.ErrInvalidPayload
		}
		return taskUC.List(ctx, filter)
	})

	d.RegisterQuery(QueryGetTaskByID, func(ctx context.Context, params interface{}) (interface{}, error) {
		id, ok := params.(string)
		if !ok {
			return nil, domain.ErrInvalidPayload
		}
		return taskUC.GetByID(ctx, id)
	})
}
