package utils

import (
	"blog-backend/apperrors"
	"encoding/json"
	"errors"
	"testing"
)

func TestCheckRequiredFields(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "all present", body: `{"email":"a@x.com","password":"p"}`},
		{name: "empty string counts as present", body: `{"email":"","password":""}`},
		{name: "first missing is named", body: `{}`, wantErr: "Missing required field: email"},
		{name: "second missing", body: `{"email":"a@x.com"}`, wantErr: "Missing required field: password"},
		{name: "null is missing", body: `{"email":null,"password":"p"}`, wantErr: "Missing required field: email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body map[string]json.RawMessage
			if err := json.Unmarshal([]byte(tt.body), &body); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			err := CheckRequiredFields([]string{"email", "password"}, body)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if err == nil || err.Error() != tt.wantErr {
				t.Fatalf("expected %q, got %v", tt.wantErr, err)
			}
			var appErr *apperrors.Error
			if !errors.As(err, &appErr) || appErr.Code != apperrors.CodeValidation {
				t.Fatalf("expected validation error, got %#v", err)
			}
		})
	}
}

func TestDecodeBodyIgnoresUnknownFields(t *testing.T) {
	var dst struct {
		Title string `json:"title"`
	}
	err := DecodeBody([]byte(`{"title":"t","user_id":99}`), []string{"title"}, &dst)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if dst.Title != "t" {
		t.Fatalf("expected title t, got %q", dst.Title)
	}
}

func TestDecodeBodyRejectsMalformedInput(t *testing.T) {
	for _, body := range []string{``, `[]`, `null`, `{"title":`} {
		var dst struct{}
		err := DecodeBody([]byte(body), nil, &dst)
		if !errors.Is(err, apperrors.New(apperrors.CodeValidation, "")) {
			t.Fatalf("body %q: expected validation error, got %v", body, err)
		}
	}
}

func TestDecodeBodyRejectsWrongType(t *testing.T) {
	var dst struct {
		Title string `json:"title"`
	}
	err := DecodeBody([]byte(`{"title":42}`), []string{"title"}, &dst)
	if !errors.Is(err, apperrors.New(apperrors.CodeValidation, "")) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
