package models

type Post struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	UserID  int64  `json:"-"`
}

// NewPost привязывает пост к владельцу из сессии.
func NewPost(title, content string, userID int64) *Post {
	return &Post{Title: title, Content: content, UserID: userID}
}
