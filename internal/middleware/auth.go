package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/tasktracker/backend/api/transport"
	pkgauth "github.com/tasktracker/backend/pkg/auth"
)

var errUnexpectedSigning = errors.New("unexpected signing method")

// JWTAuth rejects requests that do not carry a valid bearer token. Expired
// or tampered tokens fail verification; issuer and audience must match the
// issuing configuration. The authenticated user id is stored on the
// request for the context adapter to pick up.
func JWTAuth(cfg pkgauth.TokenConfig, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			tokenString := extractToken(ctx)
			if tokenString == "" {
				reject(ctx, "Missing bearer token.")
				return
			}

			claims := &pkgauth.Claims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, errUnexpectedSigning
				}
				return []byte(cfg.Secret), nil
			})
			if err != nil || !token.Valid {
				logger.Warn("invalid jwt token", zap.Error(err))
				reject(ctx, "Invalid or expired token.")
				return
			}
			if !claims.VerifyIssuer(cfg.Issuer, true) || !claims.VerifyAudience(cfg.Audience, true) {
				reject(ctx, "Invalid or expired token.")
				return
			}

			ctx.SetUserValue("user_id", claims.UserID)
			next(ctx)
		}
	}
}

func reject(ctx *fasthttp.RequestCtx, detail string) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(http.StatusUnauthorized)
	problem := transport.Problem{
		Status: http.StatusUnauthorized,
		Title:  "Authentication Failed",
		Detail: detail,
	}
	ctx.SetBodyString(problem.String())
}

func extractToken(ctx *fasthttp.RequestCtx) string {
	header := string(ctx.Request.Header.Peek("Authorization"))
	if header == "" {
		return ""
	}
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return header
}
