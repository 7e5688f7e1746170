package database

import (
	"blog-backend/models"
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

const pgUniqueViolation = "23505"

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		username VARCHAR(80),
		email VARCHAR(120) NOT NULL UNIQUE,
		password VARCHAR(200)
	)`,
	`CREATE TABLE IF NOT EXISTS posts (
		id BIGSERIAL PRIMARY KEY,
		title VARCHAR(120) NOT NULL,
		content TEXT NOT NULL,
		user_id BIGINT NOT NULL REFERENCES users(id)
	)`,
	`CREATE INDEX IF NOT EXISTS posts_user_id_idx ON posts (user_id)`,
}

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка разбора DSN PostgreSQL")
	}
	config.ConnConfig.ConnectTimeout = 15 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка подключения к PostgreSQL")
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "ошибка ping PostgreSQL")
	}

	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	for _, stmt := range postgresSchema {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return errors.Wrap(err, "ошибка создания схемы")
		}
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) CreateUser(ctx context.Context, user *models.User) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO users (username, email, password) VALUES ($1, $2, $3) RETURNING id`,
		user.Username, user.Email, user.Password,
	).Scan(&user.ID)
	if isPgUniqueViolation(err) {
		return ErrDuplicateEmail
	}
	return errors.Wrap(err, "ошибка создания пользователя")
}

func (s *PostgresStore) UpdateUser(ctx context.Context, user *models.User) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE users SET username = $1, email = $2, password = $3 WHERE id = $4`,
		user.Username, user.Email, user.Password, user.ID,
	)
	if isPgUniqueViolation(err) {
		return ErrDuplicateEmail
	}
	if err != nil {
		return errors.Wrap(err, "ошибка обновления пользователя")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, COALESCE(username, ''), email, COALESCE(password, '') FROM users WHERE id = $1`, id)
	return scanPgUser(row)
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, COALESCE(username, ''), email, COALESCE(password, '') FROM users WHERE email = $1 LIMIT 1`, email)
	return scanPgUser(row)
}

func (s *PostgresStore) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := s.pool.Query(ctx,
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

func (s *PostgresStore) CreatePost(ctx context.Context, post *models.Post) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO posts (title, content, user_id) VALUES ($1, $2, $3) RETURNING id`,
		post.Title, post.Content, post.UserID,
	).Scan(&post.ID)
	return errors.Wrap(err, "ошибка создания поста")
}

func (s *PostgresStore) GetPost(ctx context.Context, id, userID int64) (*models.Post, error) {
	var p models.Post
	err := s.pool.QueryRow(ctx,
		`SELECT id, title, content, user_id FROM posts WHERE id = $1 AND user_id = $2`, id, userID,
	).Scan(&p.ID, &p.Title, &p.Content, &p.UserID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения поста")
	}
	return &p, nil
}

func (s *PostgresStore) ListPostsByUser(ctx context.Context, userID int64) ([]models.Post, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, title, content, user_id FROM posts WHERE user_id = $1 ORDER BY id`, userID)
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

func scanPgUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Password)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения пользователя")
	}
	return &u, nil
}

func isPgUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
