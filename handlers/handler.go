package handlers

import (
	"blog-backend/apperrors"
	"blog-backend/database"
	"blog-backend/middleware"
	"blog-backend/session"
	"blog-backend/utils"
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
)

const maxBodyBytes = 1 << 20

// Sessions открывает сессию при логине и читает её на защищённых маршрутах.
type Sessions interface {
	middleware.IdentityReader
	Start(ctx context.Context, w http.ResponseWriter, data session.Data) error
}

// Handler держит зависимости обработчиков. Глобального состояния нет.
type Handler struct {
	Store    database.Store
	Sessions Sessions
	// Timeout ограничивает обращения к хранилищу. 0 означает без ограничения.
	Timeout time.Duration
}

func (h *Handler) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	if h.Timeout > 0 {
		return context.WithTimeout(r.Context(), h.Timeout)
	}
	return context.WithCancel(r.Context())
}

func readBody(w http.ResponseWriter, r *http.Request, required []string, dst any) error {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return apperrors.Wrap(apperrors.CodeValidation, "Could not read request body", err)
	}
	return utils.DecodeBody(data, required, dst)
}

func pathID(r *http.Request, message string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.CodeValidation, message, err)
	}
	return id, nil
}

func currentUser(r *http.Request) (session.Data, error) {
	data, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		return session.Data{}, apperrors.New(apperrors.CodeUnauthenticated, "User Not Authenticated")
	}
	return data, nil
}
