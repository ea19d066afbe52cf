package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel_booking/internal/domain"
)

type staticResolver map[string]*domain.Session

func (s staticResolver) Current(ctx context.Context, token string) (*domain.Session, error) {
	return s[token], nil
}

func TestLoggerAndSession(t *testing.T) {
	var buf bytes.Buffer
	l := zerolog.New(&buf)
	res := staticResolver{"t1": {Token: "t1", User: domain.StoredUser{ID: "42"}}}

	var seen *domain.Session
	h := Logger(l)(Session(res)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = SessionFrom(r.Context())
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("hi"))
	})))

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer t1")
	h.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, seen)
	assert.Equal(t, "42", seen.User.ID)

	var ev map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &ev))
	assert.Equal(t, "warn", ev["level"])
	assert.Equal(t, "42", ev["user"])
	assert.EqualValues(t, 418, ev["status"])
	assert.EqualValues(t, 2, ev["bytes"])
	assert.Equal(t, "/x", ev["route"])
}

func TestSession_UnknownTokenIsAnonymous(t *testing.T) {
	var seen *domain.Session
	h := Session(staticResolver{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = SessionFrom(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer nope")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Nil(t, seen)
}
