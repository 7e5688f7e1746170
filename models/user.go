package models

import "blog-backend/utils"

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"-"` // bcrypt-хеш, в JSON не отдаём
}

// NewUser создаёт пользователя с уже захешированным паролем.
func NewUser(username, email, password string) (*User, error) {
	u := &User{Username: username, Email: email}
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}
	return u, nil
}

// SetPassword заменяет хеш пароля. Открытый текст не сохраняется.
func (u *User) SetPassword(password string) error {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	u.Password = hash
	return nil
}

func (u *User) CheckPassword(password string) bool {
	return utils.CheckPasswordHash(password, u.Password)
}
