package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"hotel_booking/internal/adapters/observability"
	"hotel_booking/internal/domain"
)

const sessionKeyPrefix = "hotel_booking_session:"

type SessionService struct {
	idp domain.IdentityClient
	kv  domain.KVStore
	ttl time.Duration
	now func() time.Time
}

func NewSessionService(idp domain.IdentityClient, kv domain.KVStore, ttl time.Duration) *SessionService {
	return &SessionService{idp: idp, kv: kv, ttl: ttl, now: time.Now}
}

func (s *SessionService) WithClock(now func() time.Time) *SessionService {
	s.now = now
	return s
}

func (s *SessionService) Login(ctx context.Context, username, password string) (domain.Session, error) {
	if username == "" || password == "" {
		return domain.Session{}, fmt.Errorf("username and password are required: %w", domain.ErrInvalidInput)
	}
	payload, err := s.idp.Login(ctx, username, password)
	if err != nil {
		observability.ObserveAuth("login", err)
		return domain.Session{}, err
	}
	sess := domain.Session{Token: mapToken(payload), User: mapUser(payload)}
	if sess.Token == "" || sess.User.ID == "" {
		err := &domain.RemoteAuthError{Status: 502, Message: "Login failed"}
		observability.ObserveAuth("login", err)
		return domain.Session{}, err
	}
	if err := s.store(ctx, sess); err != nil {
		observability.ObserveAuth("login", err)
		return domain.Session{}, err
	}
	observability.ObserveAuth("login", nil)
	return sess, nil
}

// Register creates the remote account. The identity provider issues no token on
// registration, so a placeholder token is synthesized. The random suffix keeps it
// unguessable and distinct per registration, even when the provider reuses ids.
func (s *SessionService) Register(ctx context.Context, p domain.RegisterProfile) (domain.Session, error) {
	if p.Username == "" || p.Password == "" || p.Email == "" {
		return domain.Session{}, fmt.Errorf("username, email and password are required: %w", domain.ErrInvalidInput)
	}
	payload, err := s.idp.Register(ctx, p)
	if err != nil {
		observability.ObserveAuth("register", err)
		return domain.Session{}, err
	}
	user := mapUser(payload)
	if user.ID == "" {
		err := &domain.RemoteAuthError{Status: 502, Message: "Registration failed"}
		observability.ObserveAuth("register", err)
		return domain.Session{}, err
	}
	// fill profile fields the provider did not echo back
	if user.Username == "" {
		user.Username = p.Username
	}
	if user.Email == "" {
		user.Email = p.Email
	}
	if user.FirstName == "" {
		user.FirstName = p.FirstName
	}
	if user.LastName == "" {
		user.LastName = p.LastName
	}

	sess := domain.Session{Token: registrationToken(user.ID), User: user}
	if err := s.store(ctx, sess); err != nil {
		observability.ObserveAuth("register", err)
		return domain.Session{}, err
	}
	observability.ObserveAuth("register", nil)
	return sess, nil
}

func registrationToken(userID string) string {
	return "dummy-token-" + userID + "-" + uuid.NewString()
}

// Current resolves a token to its session. A missing, expired or unreadable
// session yields nil without error.
func (s *SessionService) Current(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, nil
	}
	if !TokenValid(token, s.now()) {
		return nil, nil
	}
	raw, ok, err := s.kv.Get(ctx, sessionKeyPrefix+token)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var sess domain.Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil || sess.Token != token {
		log.Warn().Err(errors.Join(err, domain.ErrCorrupt)).Msg("discarding unreadable session record")
		return nil, nil
	}
	return &sess, nil
}

func (s *SessionService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	err := s.kv.Del(ctx, sessionKeyPrefix+token)
	observability.ObserveAuth("logout", err)
	return err
}

// store writes token and user as one record so a session is never half set.
func (s *SessionService) store(ctx context.Context, sess domain.Session) error {
	b, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, sessionKeyPrefix+sess.Token, string(b), s.ttl); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}
