package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type claims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// Manager связывает Store с cookie. Значение cookie: HS256 JWT с id сессии;
// данные пользователя в cookie не попадают.
type Manager struct {
	store      Store
	secret     []byte
	cookieName string
	ttl        time.Duration
	secure     bool
	now        func() time.Time
}

type Options struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

func NewManager(store Store, secret string, opts Options) *Manager {
	if opts.CookieName == "" {
		opts.CookieName = "session"
	}
	if opts.TTL <= 0 {
		opts.TTL = 24 * time.Hour
	}
	return &Manager{
		store:      store,
		secret:     []byte(secret),
		cookieName: opts.CookieName,
		ttl:        opts.TTL,
		secure:     opts.Secure,
		now:        time.Now,
	}
}

// Start сохраняет данные под новым id и выставляет cookie.
func (m *Manager) Start(ctx context.Context, w http.ResponseWriter, data Data) error {
	id := uuid.NewString()
	if err := m.store.Save(ctx, id, data, m.ttl); err != nil {
		return err
	}

	expiresAt := m.now().Add(m.ttl)
	token, err := m.sign(id, expiresAt)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   int(m.ttl / time.Second),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Identity возвращает данные сессии запроса. ok=false означает,
// что пользователь не аутентифицирован.
func (m *Manager) Identity(ctx context.Context, r *http.Request) (Data, bool, error) {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil || cookie.Value == "" {
		return Data{}, false, nil
	}

	id, err := m.parse(cookie.Value)
	if err != nil {
		return Data{}, false, nil
	}

	data, err := m.store.Load(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return Data{}, false, nil
	}
	if err != nil {
		return Data{}, false, err
	}
	if data.Email == "" {
		return Data{}, false, nil
	}
	return data, true, nil
}

func (m *Manager) sign(id string, expiresAt time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		SessionID: id,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(m.now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("ошибка подписи cookie сессии: %w", err)
	}
	return signed, nil
}

func (m *Manager) parse(value string) (string, error) {
	var c claims
	_, err := jwt.ParseWithClaims(value, &c, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return "", err
	}
	if c.SessionID == "" {
		return "", errors.New("в cookie нет id сессии")
	}
	return c.SessionID, nil
}
