package middleware

import (
	"blog-backend/apperrors"
	"blog-backend/session"
	"blog-backend/utils"
	"context"
	"net/http"
)

type ctxKeyIdentity struct{}

// IdentityReader достаёт данные сессии из запроса.
type IdentityReader interface {
	Identity(ctx context.Context, r *http.Request) (session.Data, bool, error)
}

var errNotAuthenticated = apperrors.New(apperrors.CodeUnauthenticated, "User Not Authenticated")

// RequireAuth пропускает запрос дальше только при наличии email в сессии.
// Данные сессии кладутся в контекст, см. IdentityFrom.
func RequireAuth(sessions IdentityReader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			data, ok, err := sessions.Identity(r.Context(), r)
			if err != nil {
				utils.WriteError(w, LoggerFrom(r.Context()), err)
				return
			}
			if !ok || data.Email == "" {
				utils.WriteError(w, nil, errNotAuthenticated)
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyIdentity{}, data)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFrom возвращает пользователя, положенного RequireAuth.
func IdentityFrom(ctx context.Context) (session.Data, bool) {
	data, ok := ctx.Value(ctxKeyIdentity{}).(session.Data)
	return data, ok
}

// WithIdentity нужен тестам обработчиков, которые вызываются без RequireAuth.
func WithIdentity(ctx context.Context, data session.Data) context.Context {
	return context.WithValue(ctx, ctxKeyIdentity{}, data)
}
