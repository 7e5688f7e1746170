package database

import (
	"blog-backend/models"
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

// runStoreContract проверяет поведение, общее для всех драйверов.
// Адреса уникальны на запуск, поэтому тест можно гонять на непустой базе.
func runStoreContract(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	if err := store.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	// повторный вызов не должен падать
	if err := store.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensure schema twice: %v", err)
	}

	newUser := func(t *testing.T, name string) *models.User {
		t.Helper()
		u, err := models.NewUser(name, name+"-"+uuid.NewString()+"@x.com", "p")
		if err != nil {
			t.Fatalf("new user: %v", err)
		}
		if err := store.CreateUser(ctx, u); err != nil {
			t.Fatalf("create user: %v", err)
		}
		if u.ID == 0 {
			t.Fatal("expected id to be assigned")
		}
		return u
	}

	t.Run("create and find user", func(t *testing.T) {
		u := newUser(t, "alice")

		byID, err := store.GetUserByID(ctx, u.ID)
		if err != nil {
			t.Fatalf("get by id: %v", err)
		}
		if byID.Email != u.Email || byID.Username != "alice" {
			t.Fatalf("unexpected user %+v", byID)
		}
		if byID.Password == "p" || !byID.CheckPassword("p") {
			t.Fatalf("expected stored hash, got %q", byID.Password)
		}

		byEmail, err := store.GetUserByEmail(ctx, u.Email)
		if err != nil {
			t.Fatalf("get by email: %v", err)
		}
		if byEmail.ID != u.ID {
			t.Fatalf("expected id %d, got %d", u.ID, byEmail.ID)
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		u := newUser(t, "bob")
		dup, err := models.NewUser("bob2", u.Email, "q")
		if err != nil {
			t.Fatalf("new user: %v", err)
		}
		if err := store.CreateUser(ctx, dup); !errors.Is(err, ErrDuplicateEmail) {
			t.Fatalf("expected duplicate email, got %v", err)
		}

		users, err := store.ListUsers(ctx)
		if err != nil {
			t.Fatalf("list users: %v", err)
		}
		count := 0
		for _, listed := range users {
			if listed.Email == u.Email {
				count++
			}
		}
		if count != 1 {
			t.Fatalf("expected exactly one row for %s, got %d", u.Email, count)
		}
	})

	t.Run("missing user", func(t *testing.T) {
		if _, err := store.GetUserByID(ctx, 1<<40); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
		if _, err := store.GetUserByEmail(ctx, "nobody-"+uuid.NewString()+"@x.com"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
	})

	t.Run("update user rehashes password", func(t *testing.T) {
		u := newUser(t, "carol")
		u.Username = "caroline"
		if err := u.SetPassword("new"); err != nil {
			t.Fatalf("set password: %v", err)
		}
		if err := store.UpdateUser(ctx, u); err != nil {
			t.Fatalf("update user: %v", err)
		}

		got, err := store.GetUserByID(ctx, u.ID)
		if err != nil {
			t.Fatalf("get by id: %v", err)
		}
		if got.Username != "caroline" {
			t.Fatalf("expected updated username, got %q", got.Username)
		}
		if !got.CheckPassword("new") || got.CheckPassword("p") {
			t.Fatal("expected only the new password to verify")
		}

		missing := &models.User{ID: 1 << 40, Email: "ghost-" + uuid.NewString() + "@x.com"}
		if err := store.UpdateUser(ctx, missing); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
	})

	t.Run("update to taken email", func(t *testing.T) {
		first := newUser(t, "dave")
		second := newUser(t, "erin")
		second.Email = first.Email
		if err := store.UpdateUser(ctx, second); !errors.Is(err, ErrDuplicateEmail) {
			t.Fatalf("expected duplicate email, got %v", err)
		}
	})

	t.Run("posts are scoped to owner", func(t *testing.T) {
		owner := newUser(t, "frank")
		other := newUser(t, "grace")

		post := models.NewPost("hello", "world", owner.ID)
		if err := store.CreatePost(ctx, post); err != nil {
			t.Fatalf("create post: %v", err)
		}
		if post.ID == 0 {
			t.Fatal("expected post id to be assigned")
		}

		got, err := store.GetPost(ctx, post.ID, owner.ID)
		if err != nil {
			t.Fatalf("get post: %v", err)
		}
		if got.Title != "hello" || got.Content != "world" || got.UserID != owner.ID {
			t.Fatalf("unexpected post %+v", got)
		}

		if _, err := store.GetPost(ctx, post.ID, other.ID); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected not found for other owner, got %v", err)
		}
		if _, err := store.GetPost(ctx, 1<<40, owner.ID); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected not found for missing post, got %v", err)
		}

		mine, err := store.ListPostsByUser(ctx, owner.ID)
		if err != nil {
			t.Fatalf("list posts: %v", err)
		}
		if len(mine) != 1 || mine[0].ID != post.ID {
			t.Fatalf("expected only the owner's post, got %+v", mine)
		}

		theirs, err := store.ListPostsByUser(ctx, other.ID)
		if err != nil {
			t.Fatalf("list posts: %v", err)
		}
		if theirs == nil || len(theirs) != 0 {
			t.Fatalf("expected empty non-nil list, got %#v", theirs)
		}
	})

	t.Run("post requires existing owner", func(t *testing.T) {
		if err := store.CreatePost(ctx, models.NewPost("t", "c", 1<<40)); err == nil {
			t.Fatal("expected error for unknown owner")
		}
	})

	if err := store.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}
}
