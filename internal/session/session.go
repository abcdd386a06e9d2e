package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/omvsuite/omvadmin/internal/cache"
	"github.com/omvsuite/omvadmin/internal/clock"
	"github.com/omvsuite/omvadmin/internal/config"
)

var (
	ErrInvalidUserID = errors.New("invalid_user_id")
	ErrNotFound      = errors.New("session_not_found")
)

// Session is an ephemeral login record keyed by an opaque token. It lives
// in whichever cache backend the prober selected, so a redis outage
// degrades to the store-backed emulation without logging users out.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"userId"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type Service interface {
	Create(ctx context.Context, userID, role string) (*Session, error)
	Get(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
	DeleteAllForUser(ctx context.Context, userID string) error
}

type Params struct {
	fx.In

	Log    *zap.Logger
	Clock  clock.Clock
	Facade *cache.Facade
	TTL    *config.TTLPolicyHolder
}

type service struct {
	log    *zap.Logger
	clock  clock.Clock
	facade *cache.Facade
	ttl    *config.TTLPolicyHolder
}

func New(p Params) Service {
	return &service{
		log:    p.Log.Named("session.service"),
		clock:  p.Clock,
		facade: p.Facade,
		ttl:    p.TTL,
	}
}

func (s *service) Create(ctx context.Context, userID, role string) (*Session, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}

	ttl := s.ttl.Get().Session
	now := s.clock.Now()
	sess := &Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		Role:      role,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	if err := s.facade.Put(ctx, cache.SessionKey(sess.Token), sess, ttl); err != nil {
		s.log.Error("store session", zap.Error(err), zap.String("user_id", userID))
		return nil, err
	}

	// The token index lets DeleteAllForUser find every live session. It is
	// best-effort: a missing index only weakens bulk revocation.
	tokens, err := cache.Fetch[[]string](ctx, s.facade, cache.UserSessionsKey(userID))
	if err != nil && !errors.Is(err, cache.ErrMiss) {
		s.log.Warn("read session index", zap.Error(err), zap.String("user_id", userID))
	}
	tokens = append(tokens, sess.Token)
	if err := s.facade.Put(ctx, cache.UserSessionsKey(userID), tokens, ttl); err != nil {
		s.log.Warn("update session index", zap.Error(err), zap.String("user_id", userID))
	}

	return sess, nil
}

func (s *service) Get(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrNotFound
	}
	sess, err := cache.Fetch[*Session](ctx, s.facade, cache.SessionKey(token))
	if err != nil {
		if errors.Is(err, cache.ErrMiss) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	// Backends without native expiry rely on this check between sweeps.
	if !s.clock.Now().Before(sess.ExpiresAt) {
		_ = s.facade.Drop(ctx, cache.SessionKey(token))
		return nil, ErrNotFound
	}
	return sess, nil
}

func (s *service) Delete(ctx context.Context, token string) error {
	if token == "" {
		return ErrNotFound
	}
	return s.facade.Drop(ctx, cache.SessionKey(token))
}

func (s *service) DeleteAllForUser(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrInvalidUserID
	}
	tokens, err := cache.Fetch[[]string](ctx, s.facade, cache.UserSessionsKey(userID))
	if err != nil {
		if errors.Is(err, cache.ErrMiss) {
			return nil
		}
		return err
	}

	keys := make([]string, 0, len(tokens)+1)
	for _, token := range tokens {
		keys = append(keys, cache.SessionKey(token))
	}
	keys = append(keys, cache.UserSessionsKey(userID))
	return s.facade.Drop(ctx, keys...)
}

var Module = fx.Module("session",
	fx.Provide(New),
)
