package utils

import (
	"context"
	"testing"

	"storefront-admin/internal/apperr"
	"storefront-admin/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestActorContextDefaultsToGuest(t *testing.T) {
	assert.Equal(t, entity.GuestActor(), GetActorFromContext(context.Background()))

	actor := entity.Actor{ID: uuid.New(), Role: entity.RoleAdmin}
	ctx := SetActorContext(context.Background(), actor)
	assert.Equal(t, actor, GetActorFromContext(ctx))
}

func TestValidateReturnsFieldErrors(t *testing.T) {
	type payload struct {
		Name  string `validate:"required"`
		Email string `validate:"required,email"`
	}

	err := Validate(payload{Email: "nope"})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	var ve *apperr.ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Equal(t, "This field is required", ve.Fields["Name"])
	assert.Equal(t, "Invalid email format", ve.Fields["Email"])

	assert.NoError(t, Validate(payload{Name: "a", Email: "a@b.co"}))
}

func TestPagination(t *testing.T) {
	assert.Equal(t, 0, CalculateTotalPages(0, 10))
	assert.Equal(t, 3, CalculateTotalPages(21, 10))
	assert.Equal(t, 0, CalculateOffset(0, 10))
	assert.Equal(t, 20, CalculateOffset(3, 10))
}

func TestParseInt(t *testing.T) {
	assert.Equal(t, 7, ParseInt("", 7))
	assert.Equal(t, 7, ParseInt("x", 7))
	assert.Equal(t, 7, ParseInt("-2", 7))
	assert.Equal(t, 3, ParseInt("3", 7))
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("correct horse")
	assert.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)
	assert.True(t, CheckPasswordHash("correct horse", hash))
	assert.False(t, CheckPasswordHash("battery staple", hash))
}
