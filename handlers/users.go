package handlers

import (
	"blog-backend/apperrors"
	"blog-backend/database"
	"blog-backend/middleware"
	"blog-backend/models"
	"blog-backend/utils"
	"errors"
	"net/http"
)

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	users, err := h.Store.ListUsers(ctx)
	if err != nil {
		utils.WriteError(w, middleware.LoggerFrom(ctx), err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, models.UsersResponse{Users: users})
}

// GetUser отдаёт пользователя без обёртки, как есть.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()
	log := middleware.LoggerFrom(ctx)

	id, err := pathID(r, "Invalid user id")
	if err != nil {
		utils.WriteError(w, log, err)
		return
	}

	user, err := h.Store.GetUserByID(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		utils.WriteError(w, log, apperrors.New(apperrors.CodeNotFound, "User not found"))
		return
	}
	if err != nil {
		utils.WriteError(w, log, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, user)
}
