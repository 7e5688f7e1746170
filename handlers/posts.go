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

func (h *Handler) PostForm(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, models.InfoResponse{Info: "return the form to create the post"})
}

func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()
	log := middleware.LoggerFrom(ctx)

	owner, err := currentUser(r)
	if err != nil {
		utils.WriteError(w, log, err)
		return
	}

	var req models.CreatePostRequest
	if err := readBody(w, r, models.CreatePostRequiredFields, &req); err != nil {
		utils.WriteError(w, log, err)
		return
	}

	post := models.NewPost(req.Title, req.Content, owner.UserID)
	if err := h.Store.CreatePost(ctx, post); err != nil {
		utils.WriteError(w, log, err)
		return
	}

	log.WithField("post_id", post.ID).Info("post created")
	utils.WriteJSON(w, http.StatusOK, models.SuccessResponse{Success: "Post Created Successfully"})
}

func (h *Handler) MyPosts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()
	log := middleware.LoggerFrom(ctx)

	owner, err := currentUser(r)
	if err != nil {
		utils.WriteError(w, log, err)
		return
	}

	posts, err := h.Store.ListPostsByUser(ctx, owner.UserID)
	if err != nil {
		utils.WriteError(w, log, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, models.PostsResponse{Data: posts})
}

// GetPost отдаёт пост только владельцу. Чужой и несуществующий пост неразличимы.
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()
	log := middleware.LoggerFrom(ctx)

	owner, err := currentUser(r)
	if err != nil {
		utils.WriteError(w, log, err)
		return
	}

	id, err := pathID(r, "Invalid post id")
	if err != nil {
		utils.WriteError(w, log, err)
		return
	}

	post, err := h.Store.GetPost(ctx, id, owner.UserID)
	if errors.Is(err, database.ErrNotFound) {
		utils.WriteError(w, log, apperrors.New(apperrors.CodeNotFound, "You don't have any posts"))
		return
	}
	if err != nil {
		utils.WriteError(w, log, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, models.PostResponse{Data: *post})
}
