package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront-admin/internal/apperr"
	"storefront-admin/internal/data/entity"
	"storefront-admin/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubAuth map[string]entity.Actor

func (s stubAuth) Authenticate(_ context.Context, token string) (entity.Actor, error) {
	if token == "boom" {
		return entity.GuestActor(), errors.New("database down")
	}
	actor, ok := s[token]
	if !ok {
		return entity.GuestActor(), apperr.ErrUnauthenticated
	}
	return actor, nil
}

func actorEcho(seen *entity.Actor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*seen = utils.GetActorFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
}

func serve(h http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuthSession(t *testing.T) {
	admin := entity.Actor{ID: uuid.New(), Role: entity.RoleAdmin}
	auth := stubAuth{"good": admin}

	var seen entity.Actor
	h := AuthSession(auth, zap.NewNop())(actorEcho(&seen))

	assert.Equal(t, http.StatusUnauthorized, serve(h, "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(h, "Token good").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(h, "Bearer bad").Code)
	assert.Equal(t, http.StatusInternalServerError, serve(h, "Bearer boom").Code)

	rec := serve(h, "Bearer good")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, admin, seen)
}

func TestOptionalSession(t *testing.T) {
	user := entity.Actor{ID: uuid.New(), Role: entity.RoleUser}
	auth := stubAuth{"good": user}

	var seen entity.Actor
	h := OptionalSession(auth, zap.NewNop())(actorEcho(&seen))

	assert.Equal(t, http.StatusNoContent, serve(h, "").Code)
	assert.Equal(t, entity.GuestActor(), seen)

	assert.Equal(t, http.StatusNoContent, serve(h, "bearer good").Code)
	assert.Equal(t, user, seen)

	assert.Equal(t, http.StatusUnauthorized, serve(h, "Bearer expired").Code)
}

func TestRecoverReturnsJSON(t *testing.T) {
	h := Recover(zap.NewNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	}))

	rec := serve(h, "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"status":false`)
}

func TestCORSPreflight(t *testing.T) {
	h := CORS()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/admin/orders", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.StatusTeapot, serve(h, "").Code)
}
