package handlers

import (
	"blog-backend/middleware"
	"blog-backend/utils"
	"net/http"
)

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	if err := h.Store.Ping(ctx); err != nil {
		middleware.LoggerFrom(ctx).WithError(err).Warn("store ping failed")
		utils.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
