package utils

import (
	"blog-backend/apperrors"
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError пишет {"error": ..., "code": ...} со статусом по коду ошибки.
// Внутренние ошибки дополнительно логируются вместе с причиной.
func WriteError(w http.ResponseWriter, log logrus.FieldLogger, err error) {
	appErr := apperrors.From(err)
	if appErr.Code == apperrors.CodeInternal && log != nil {
		log.WithError(err).Error("request failed")
	}
	WriteJSON(w, appErr.Code.HTTPStatus(), errorResponse{
		Error: appErr.Message,
		Code:  string(appErr.Code),
	})
}
