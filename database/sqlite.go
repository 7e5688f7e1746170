package database

import (
	"blog-backend/models"
	"context"
	"database/sql"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT,
		email TEXT NOT NULL UNIQUE,
		password TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS posts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		user_id INTEGER NOT NULL REFERENCES users(id)
	)`,
	`CREATE INDEX IF NOT EXISTS posts_user_id_idx ON posts (user_id)`,
}

// SQLiteStore используется для локальной разработки и тестов.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("не указан путь к файлу SQLite")
	}

	dsn := filepath.Clean(path) + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка открытия SQLite")
	}
	// SQLite допускает одного писателя
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "ошибка ping SQLite")
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) EnsureSchema(ctx context.Context) error {
	for _, stmt := range sqliteSchema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return errors.Wrap(err, "ошибка создания схемы")
		}
	}
	return nil
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateUser(ctx context.Context, user *models.User) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users (username, email, password) VALUES (?, ?, ?)`,
		user.Username, user.Email, user.Password,
	)
	if isSQLiteUniqueViolation(err) {
		return ErrDuplicateEmail
	}
	if err != nil {
		return errors.Wrap(err, "ошибка создания пользователя")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return errors.Wrap(err, "ошибка получения id пользователя")
	}
	user.ID = id
	return nil
}

func (s *SQLiteStore) UpdateUser(ctx context.Context, user *models.User) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET username = ?, email = ?, password = ? WHERE id = ?`,
		user.Username, user.Email, user.Password, user.ID,
	)
	if isSQLiteUniqueViolation(err) {
		return ErrDuplicateEmail
	}
	if err != nil {
		return errors.Wrap(err, "ошибка обновления пользователя")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "ошибка обновления пользователя")
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, COALESCE(username, ''), email, COALESCE(password, '') FROM users WHERE id = ?`, id)
	return scanSQLUser(row)
}

func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, COALESCE(username, ''), email, COALESCE(password, '') FROM users WHERE email = ? LIMIT 1`, email)
	return scanSQLUser(row)
}

func (s *SQLiteStore) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, COALESCE(username, ''), email, COALESCE(password, '') FROM users ORDER BY id`)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка пользователей")
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.Password); err != nil {
			return nil, errors.Wrap(err, "ошибка чтения пользователя")
		}
		users = append(users, u)
	}
	return users, errors.Wrap(rows.Err(), "ошибка получения списка пользователей")
}

func (s *SQLiteStore) CreatePost(ctx context.Context, post *models.Post) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO posts (title, content, user_id) VALUES (?, ?, ?)`,
		post.Title, post.Content, post.UserID,
	)
	if err != nil {
		return errors.Wrap(err, "ошибка создания поста")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return errors.Wrap(err, "ошибка получения id поста")
	}
	post.ID = id
	return nil
}

func (s *SQLiteStore) GetPost(ctx context.Context, id, userID int64) (*models.Post, error) {
	var p models.Post
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, content, user_id FROM posts WHERE id = ? AND user_id = ?`, id, userID,
	).Scan(&p.ID, &p.Title, &p.Content, &p.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения поста")
	}
	return &p, nil
}

func (s *SQLiteStore) ListPostsByUser(ctx context.Context, userID int64) ([]models.Post, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, content, user_id FROM posts WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения постов")
	}
	defer rows.Close()

	posts := make([]models.Post, 0)
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.UserID); err != nil {
			return nil, errors.Wrap(err, "ошибка чтения поста")
		}
		posts = append(posts, p)
	}
	return posts, errors.Wrap(rows.Err(), "ошибка получения постов")
}

func scanSQLUser(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Password)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения пользователя")
	}
	return &u, nil
}

func isSQLiteUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
