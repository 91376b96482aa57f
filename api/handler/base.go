package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/tasktracker/backend/api/transport"
	"github.com/tasktracker/backend/domain"
	"github.com/tasktracker/backend/pkg/httpcontext"
	"github.com/tasktracker/backend/pkg/logger"
)

type baseHandler struct {
	adapter *httpcontext.Adapter
	logger  *zap.Logger
}

func newBaseHandler(adapter *httpcontext.Adapter, logger *zap.Logger) baseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return baseHandler{adapter: adapter, logger: logger}
}

func (h baseHandler) requestContext(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	if h.adapter != nil {
		return h.adapter.Attach(ctx)
	}
	return context.WithCancel(context.Background())
}

func (h baseHandler) respondJSON(ctx *fasthttp.RequestCtx, status int, payload interface{}) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, _ := json.Marshal(payload)
	ctx.SetBody(body)
}

func (h baseHandler) respondSuccess(ctx *fasthttp.RequestCtx, status int, message string, data interface{}) {
	h.respondJSON(ctx, status, transport.NewSuccess(message, data))
}

func (h baseHandler) respondBadPayload(ctx *fasthttp.RequestCtx) {
	h.respondJSON(ctx, http.StatusBadRequest, transport.Problem{
		Status: http.StatusBadRequest,
		Title:  "Validation Failed",
		Detail: "Request body is not valid JSON.",
	})
}

// respondError translates a failure into its externally visible problem
// shape. Unclassified errors are logged with full detail and reported with a
// generic message only.
func (h baseHandler) respondError(stdCtx context.Context, ctx *fasthttp.RequestCtx, err error) {
	problem := translate(err)
	if problem.Status == http.StatusInternalServerError {
		log := logger.WithRequestID(stdCtx, h.logger)
		fields := []zap.Field{zap.Error(err), zap.ByteString("path", ctx.Path())}
		if userID := httpcontext.UserIDFromContext(stdCtx); userID != "" {
			fields = append(fields, zap.String("user_id", userID))
		}
		log.Error("unhandled error", fields...)
	}
	h.respondJSON(ctx, problem.Status, problem)
}

func translate(err error) transport.Problem {
	var dErr *domain.Error
	if errors.As(err, &dErr) {
		switch dErr.Code {
		case domain.ErrCodeNotFound:
			return transport.Problem{
				Status: http.StatusNotFound,
				Title:  "Resource Not Found",
				Detail: dErr.Message,
			}
		case domain.ErrCodeInvalid:
			return transport.Problem{
				Status: http.StatusBadRequest,
				Title:  "Validation Failed",
				Detail: dErr.Message,
				Errors: dErr.Fields,
			}
		case domain.ErrCodeConflict:
			return transport.Problem{
				Status: http.StatusConflict,
				Title:  "Conflict",
				Detail: dErr.Message,
			}
		case domain.ErrCodeUnauthorized:
			return transport.Problem{
				Status: http.StatusUnauthorized,
				Title:  "Authentication Failed",
				Detail: dErr.Message,
			}
		}
	}
	return transport.Problem{
		Status: http.StatusInternalServerError,
		Title:  "Internal Server Error",
		Detail: "An unexpected error occurred. Please try again later.",
	}
}
