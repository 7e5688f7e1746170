package handlers

import (
	"blog-backend/apperrors"
	"blog-backend/middleware"
	"blog-backend/utils"
	"net/http"

	"github.com/gorilla/mux"
)

func NewRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	requireAuth := middleware.RequireAuth(h.Sessions)
	protected := func(fn http.HandlerFunc) http.Handler {
		return requireAuth(fn)
	}

	r.HandleFunc("/auth/register", h.Register).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", h.Login).Methods(http.MethodPost)

	r.Handle("/users", protected(h.ListUsers)).Methods(http.MethodGet)
	r.Handle("/users/{id:[0-9]+}", protected(h.GetUser)).Methods(http.MethodGet)

	r.Handle("/post/create", protected(h.PostForm)).Methods(http.MethodGet)
	r.Handle("/post/create", protected(h.CreatePost)).Methods(http.MethodPost)
	r.Handle("/myposts", protected(h.MyPosts)).Methods(http.MethodGet)
	r.Handle("/post/{id:[0-9]+}", protected(h.GetPost)).Methods(http.MethodGet)

	r.HandleFunc("/healthz", h.Health).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteError(w, nil, apperrors.New(apperrors.CodeNotFound, "Not Found"))
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method Not Allowed"})
	})

	return r
}
