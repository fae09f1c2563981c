package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"rentmarket-backend/internal/domain"
	"rentmarket-backend/internal/merge"
)

func sampleUser() domain.User {
	return domain.User{
		ID:         "user-1",
		Email:      "jane@test.de",
		FirstName:  "Jane",
		LastName:   "Doe",
		Street:     "Hauptstr. 1",
		City:       "Berlin",
		PostalCode: "10115",
		Rating:     4,
	}
}

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepo)
	svc := NewUserService(users)

	users.On("Insert", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

	input := sampleUser()
	input.ID = "spoofed"
	created, err := svc.Create(ctx, &input, "user-1")
	assert.NoError(t, err)
	// The profile id is always the authenticated subject.
	assert.Equal(t, "user-1", created.ID)
}

func TestUserService_SelfOnlyAuthorization(t *testing.T) {
	ctx := context.Background()

	t.Run("UpdateOrInsert", func(t *testing.T) {
		users := new(MockUserRepo)
		svc := NewUserService(users)

		input := sampleUser()
		_, err := svc.UpdateOrInsert(ctx, "user-1", &input, "someone-else")
		assert.Equal(t, domain.KindForbidden, domain.KindOf(err))
		users.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("PartialUpdate", func(t *testing.T) {
		users := new(MockUserRepo)
		svc := NewUserService(users)

		_, err := svc.PartialUpdate(ctx, "user-1", merge.UserPatch{}, "someone-else")
		assert.Equal(t, domain.KindForbidden, domain.KindOf(err))
		users.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("DeleteByID", func(t *testing.T) {
		users := new(MockUserRepo)
		svc := NewUserService(users)

		err := svc.DeleteByID(ctx, "user-1", "someone-else")
		assert.Equal(t, domain.KindForbidden, domain.KindOf(err))
		users.AssertNotCalled(t, "DeleteByID", mock.Anything, mock.Anything)
	})
}

func TestUserService_PartialUpdate(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepo)
	svc := NewUserService(users)

	existing := sampleUser()
	users.On("FindByID", ctx, "user-1").Return(&existing, nil)
	users.On("Save", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

	newCity := "Hamburg"
	updated, err := svc.PartialUpdate(ctx, "user-1", merge.UserPatch{City: &newCity}, "user-1")
	assert.NoError(t, err)
	assert.Equal(t, "Hamburg", updated.City)
	assert.Equal(t, existing.Email, updated.Email)
	assert.Equal(t, existing.FirstName, updated.FirstName)
	assert.Equal(t, existing.Rating, updated.Rating)
}
