package usecase

import (
	"context"
	"fmt"
	"sync"
)

// Names of the commands and queries the service exposes. Every inbound
// request maps to exactly one of them.
const (
	CommandRegister         = "auth.register"
	CommandLogin            = "auth.login"
	CommandCreateTask       = "task.create"
	CommandUpdateTaskStatus = "task.update_status"
	QueryGetAllTasks        = "task.get_all"
	QueryGetTaskByID        = "task.get_by_id"
)

// CommandHandler executes a state-changing request.
type CommandHandler func(ctx context.Context, payload interface{}) (interface{}, error)

// QueryHandler executes a read-only request.
type QueryHandler func(ctx context.Context, params interface{}) (interface{}, error)

// Dispatcher routes named commands and queries to their single registered
// handler. Registration happens once at startup; dispatch is concurrent.
type Dispatcher struct {
	cmdHandlers map[string]CommandHandler
	qryHandlers map[string]QueryHandler
	mu          sync.RWMutex
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		cmdHandlers: make(map[string]CommandHandler),
		qryHandlers: make(map[string]QueryHandler),
	}
}

func (d *Dispatcher) RegisterCommand(name string, handler CommandHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cmdHandlers[name] = handler
}

func (d *Dispatcher) RegisterQuery(name string, handler QueryHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.qryHandlers[name] = handler
}

func (d *Dispatcher) ExecuteCommand(ctx context.Context, name string, payload interface{}) (interface{}, error) {
	d.mu.RLock()
	handler, ok := d.cmdHandlers[name]
	d.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("command %q not registered", name)
	}
	return handler(ctx, payload)
}

func (d *Dispatcher) ExecuteQuery(ctx context.Context, name string, params interface{}) (interface{}, error) {
	d.mu.RLock()
	handler, ok := d.qryHandlers[name]
	d.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("query %q not registered", name)
	}
	return handler(ctx, params)
}
