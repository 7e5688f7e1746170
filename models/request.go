package models

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

var LoginRequiredFields = []string{"email", "password"}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

var RegisterRequiredFields = []string{"username", "email", "password"}

// CreatePostRequest не содержит user_id: владелец берётся из сессии.
type CreatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

var CreatePostRequiredFields = []string{"title", "content"}

type UsersResponse struct {
	Users []User `json:"users"`
}

type PostsResponse struct {
	Data []Post `json:"data"`
}

type PostResponse struct {
	Data Post `json:"data"`
}

type SuccessResponse struct {
	Success string `json:"success"`
}

type InfoResponse struct {
	Info string `json:"info"`
}
