package handlers

import (
	"blog-backend/apperrors"
	"blog-backend/database"
	"blog-backend/middleware"
	"blog-backend/models"
	"blog-backend/session"
	"blog-backend/utils"
	"errors"
	"net/http"
)

var errInvalidCredentials = apperrors.New(apperrors.CodeInvalidCredentials, "Invalid Username / Password ")

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()
	log := middleware.LoggerFrom(ctx)

	var req models.RegisterRequest
	if err := readBody(w, r, models.RegisterRequiredFields, &req); err != nil {
		utils.WriteError(w, log, err)
		return
	}

	_, err := h.Store.GetUserByEmail(ctx, req.Email)
	if err == nil {
		utils.WriteError(w, log, database.ErrDuplicateEmail)
		return
	}
	if !errors.Is(err, database.ErrNotFound) {
		utils.WriteError(w, log, err)
		return
	}

	user, err := models.NewUser(req.Username, req.Email, req.Password)
	if err != nil {
		utils.WriteError(w, log, err)
		return
	}

	// уникальный индекс ловит гонку двух регистраций с одним email
	if err := h.Store.CreateUser(ctx, user); err != nil {
		utils.WriteError(w, log, err)
		return
	}

	log.WithField("user_id", user.ID).Info("user registered")
	utils.WriteJSON(w, http.StatusOK, models.SuccessResponse{Success: "User Created Successfully"})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()
	log := middleware.LoggerFrom(ctx)

	var req models.LoginRequest
	if err := readBody(w, r, models.LoginRequiredFields, &req); err != nil {
		utils.WriteError(w, log, err)
		return
	}

	user, err := h.Store.GetUserByEmail(ctx, req.Email)
	if errors.Is(err, database.ErrNotFound) {
		utils.WriteError(w, log, errInvalidCredentials)
		return
	}
	if err != nil {
		utils.WriteError(w, log, err)
		return
	}

	if !user.CheckPassword(req.Password) {
		log.WithField("user_id", user.ID).Warn("login failed")
		utils.WriteError(w, log, errInvalidCredentials)
		return
	}

	if err := h.Sessions.Start(ctx, w, session.Data{UserID: user.ID, Email: user.Email}); err != nil {
		utils.WriteError(w, log, err)
		return
	}

	log.WithField("user_id", user.ID).Info("user logged in")
	utils.WriteJSON(w, http.StatusOK, models.SuccessResponse{Success: "User logged in  Successfully"})
}
