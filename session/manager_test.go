package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func startSession(t *testing.T, m *Manager, data Data) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	if err := m.Start(context.Background(), rec, data); err != nil {
		t.Fatalf("start: %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	return cookies[0]
}

func TestManagerRoundTrip(t *testing.T) {
	m := NewManager(NewMemoryStore(), "secret", Options{})
	cookie := startSession(t, m, Data{UserID: 7, Email: "a@x.com"})

	if cookie.Name != "session" || !cookie.HttpOnly || cookie.Path != "/" {
		t.Fatalf("unexpected cookie %+v", cookie)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	data, ok, err := m.Identity(context.Background(), req)
	if err != nil {
		t.Fatalf("identity: %v", err)
	}
	if !ok || data.UserID != 7 || data.Email != "a@x.com" {
		t.Fatalf("unexpected identity %+v ok=%v", data, ok)
	}
}

func TestManagerIdentityWithoutCookie(t *testing.T) {
	m := NewManager(NewMemoryStore(), "secret", Options{})
	_, ok, err := m.Identity(context.Background(), httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil || ok {
		t.Fatalf("expected anonymous request, got ok=%v err=%v", ok, err)
	}
}

func TestManagerRejectsForeignSignature(t *testing.T) {
	store := NewMemoryStore()
	issuer := NewManager(store, "other-secret", Options{})
	verifier := NewManager(store, "secret", Options{})
	cookie := startSession(t, issuer, Data{UserID: 1, Email: "a@x.com"})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	if _, ok, _ := verifier.Identity(context.Background(), req); ok {
		t.Fatal("expected cookie signed with another key to be rejected")
	}
}

func TestManagerRejectsGarbageCookie(t *testing.T) {
	m := NewManager(NewMemoryStore(), "secret", Options{})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "not-a-token"})
	if _, ok, err := m.Identity(context.Background(), req); ok || err != nil {
		t.Fatalf("expected anonymous request, got ok=%v err=%v", ok, err)
	}
}

func TestManagerExpiredCookie(t *testing.T) {
	m := NewManager(NewMemoryStore(), "secret", Options{TTL: time.Minute})
	now := time.Now()
	m.now = func() time.Time { return now }
	cookie := startSession(t, m, Data{UserID: 1, Email: "a@x.com"})

	now = now.Add(2 * time.Minute)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	if _, ok, _ := m.Identity(context.Background(), req); ok {
		t.Fatal("expected expired cookie to be rejected")
	}
}

type failingStore struct{ err error }

func (s failingStore) Save(context.Context, string, Data, time.Duration) error { return s.err }
func (s failingStore) Load(context.Context, string) (Data, error)              { return Data{}, s.err }
func (s failingStore) Close() error                                           { return nil }

func TestManagerPropagatesStoreErrors(t *testing.T) {
	boom := errors.New("boom")
	m := NewManager(failingStore{err: boom}, "secret", Options{})

	if err := m.Start(context.Background(), httptest.NewRecorder(), Data{UserID: 1, Email: "a@x.com"}); !errors.Is(err, boom) {
		t.Fatalf("expected store error on start, got %v", err)
	}

	token, err := m.sign("abc", time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: token})
	if _, _, err := m.Identity(context.Background(), req); !errors.Is(err, boom) {
		t.Fatalf("expected store error on identity, got %v", err)
	}
}
