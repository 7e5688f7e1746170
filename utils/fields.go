package utils

import (
	"blog-backend/apperrors"
	"encoding/json"
	"fmt"
)

// CheckRequiredFields проверяет наличие ключей в теле запроса.
// Ключ со значением null считается отсутствующим.
func CheckRequiredFields(required []string, body map[string]json.RawMessage) error {
	for _, field := range required {
		raw, ok := body[field]
		if !ok || string(raw) == "null" {
			return apperrors.New(apperrors.CodeValidation, fmt.Sprintf("Missing required field: %s", field))
		}
	}
	return nil
}

// DecodeBody читает JSON-объект, проверяет обязательные поля и заполняет dst.
// Поля, не описанные в dst, игнорируются.
func DecodeBody(data []byte, required []string, dst any) error {
	var body map[string]json.RawMessage
	if err := json.Unmarshal(data, &body); err != nil {
		return apperrors.Wrap(apperrors.CodeValidation, "Request body must be a JSON object", err)
	}
	if body == nil {
		return apperrors.New(apperrors.CodeValidation, "Request body must be a JSON object")
	}
	if err := CheckRequiredFields(required, body); err != nil {
		return err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return apperrors.Wrap(apperrors.CodeValidation, "Invalid field type in request body", err)
	}
	return nil
}
