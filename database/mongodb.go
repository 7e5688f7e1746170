package database

import (
	"blog-backend/models"
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection    = "users"
	postsCollection    = "posts"
	countersCollection = "counters"
)

type userDocument struct {
	ID       int64  `bson:"_id"`
	Username string `bson:"username"`
	Email    string `bson:"email"`
	Password string `bson:"password"`
}

type postDocument struct {
	ID      int64  `bson:"_id"`
	Title   string `bson:"title"`
	Content string `bson:"content"`
	UserID  int64  `bson:"user_id"`
}

// MongoStore хранит числовые id через коллекцию counters,
// чтобы id совпадали по виду с SQL-драйверами.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(err, "ошибка подключения к MongoDB")
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(err, "ошибка ping MongoDB")
	}

	return &MongoStore{client: client, db: client.Database(database)}, nil
}

func (s *MongoStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return errors.Wrap(err, "ошибка создания индекса users.email")
	}

	_, err = s.db.Collection(postsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}},
	})
	return errors.Wrap(err, "ошибка создания индекса posts.user_id")
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}

func (s *MongoStore) nextID(ctx context.Context, name string) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := s.db.Collection(countersCollection).FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, errors.Wrapf(err, "ошибка получения следующего id для %s", name)
	}
	return counter.Seq, nil
}

func (s *MongoStore) CreateUser(ctx context.Context, user *models.User) error {
	id, err := s.nextID(ctx, usersCollection)
	if err != nil {
		return err
	}

	_, err = s.db.Collection(usersCollection).InsertOne(ctx, userDocument{
		ID:       id,
		Username: user.Username,
		Email:    user.Email,
		Password: user.Password,
	})
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateEmail
	}
	if err != nil {
		return errors.Wrap(err, "ошибка создания пользователя")
	}
	user.ID = id
	return nil
}

func (s *MongoStore) UpdateUser(ctx context.Context, user *models.User) error {
	res, err := s.db.Collection(usersCollection).UpdateOne(ctx,
		bson.M{"_id": user.ID},
		bson.M{"$set": bson.M{
			"username": user.Username,
			"email":    user.Email,
			"password": user.Password,
		}},
	)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateEmail
	}
	if err != nil {
		return errors.Wrap(err, "ошибка обновления пользователя")
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return s.findUser(ctx, bson.M{"_id": id})
}

func (s *MongoStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findUser(ctx, bson.M{"email": email})
}

func (s *MongoStore) findUser(ctx context.Context, filter bson.M) (*models.User, error) {
	var doc userDocument
	err := s.db.Collection(usersCollection).FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения пользователя")
	}
	return doc.toModel(), nil
}

func (s *MongoStore) ListUsers(ctx context.Context) ([]models.User, error) {
	cursor, err := s.db.Collection(usersCollection).Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка пользователей")
	}
	defer cursor.Close(ctx)

	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "ошибка чтения пользователей")
	}

	users := make([]models.User, 0, len(docs))
	for _, doc := range docs {
		users = append(users, *doc.toModel())
	}
	return users, nil
}

func (s *MongoStore) CreatePost(ctx context.Context, post *models.Post) error {
	// внешнего ключа нет, проверяем владельца вручную
	if _, err := s.GetUserByID(ctx, post.UserID); err != nil {
		return errors.Wrapf(err, "владелец поста %d не найден", post.UserID)
	}

	id, err := s.nextID(ctx, postsCollection)
	if err != nil {
		return err
	}

	_, err = s.db.Collection(postsCollection).InsertOne(ctx, postDocument{
		ID:      id,
		Title:   post.Title,
		Content: post.Content,
		UserID:  post.UserID,
	})
	if err != nil {
		return errors.Wrap(err, "ошибка создания поста")
	}
	post.ID = id
	return nil
}

func (s *MongoStore) GetPost(ctx context.Context, id, userID int64) (*models.Post, error) {
	var doc postDocument
	err := s.db.Collection(postsCollection).FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения поста")
	}
	return doc.toModel(), nil
}

func (s *MongoStore) ListPostsByUser(ctx context.Context, userID int64) ([]models.Post, error) {
	cursor, err := s.db.Collection(postsCollection).Find(ctx, bson.M{"user_id": userID},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения постов")
	}
	defer cursor.Close(ctx)

	var docs []postDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "ошибка чтения постов")
	}

	posts := make([]models.Post, 0, len(docs))
	for _, doc := range docs {
		posts = append(posts, *doc.toModel())
	}
	return posts, nil
}

func (d userDocument) toModel() *models.User {
	return &models.User{ID: d.ID, Username: d.Username, Email: d.Email, Password: d.Password}
}

func (d postDocument) toModel() *models.Post {
	return &models.Post{ID: d.ID, Title: d.Title, Content: d.Content, UserID: d.UserID}
}
