package database

import (
	"blog-backend/apperrors"
	"blog-backend/config"
	"blog-backend/models"
	"context"
	"fmt"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMongoDB  = "mongodb"
)

var (
	ErrNotFound       = apperrors.New(apperrors.CodeNotFound, "record not found")
	ErrDuplicateEmail = apperrors.New(apperrors.CodeConflict, "User with this email already exist")
)

// Store хранит пользователей и их посты.
type Store interface {
	CreateUser(ctx context.Context, user *models.User) error
	UpdateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)

	CreatePost(ctx context.Context, post *models.Post) error
	// GetPost ищет пост по id и владельцу одновременно.
	GetPost(ctx context.Context, id, userID int64) (*models.Post, error)
	ListPostsByUser(ctx context.Context, userID int64) ([]models.Post, error)

	EnsureSchema(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}

// NewStore открывает хранилище, выбранное в STORE_DRIVER.
func NewStore(ctx context.Context, cfg *config.Config) (Store, error) {
	var (
		store Store
		err   error
	)
	switch cfg.StoreDriver {
	case DriverPostgres:
		store, err = NewPostgresStore(ctx, cfg.PostgresDSN())
	case DriverSQLite:
		store, err = NewSQLiteStore(ctx, cfg.SQLitePath)
	case DriverMongoDB:
		store, err = NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDBName)
	default:
		return nil, fmt.Errorf("неподдерживаемый тип хранилища: %s", cfg.StoreDriver)
	}
	if err != nil {
		return nil, err
	}
	return store, nil
}
