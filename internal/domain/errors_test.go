package domain_test

import (
	"errors"
	"testing"

	"github.com/dangerclosesec/tabbedjournal/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestFieldErrors(t *testing.T) {
	fe := domain.FieldErrors{}
	assert.NoError(t, fe.OrNil())

	fe.Add("title", "This field is required.")
	fe.Add("title", "Ensure this value has at most 200 characters.")
	err := fe.OrNil()

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, "This field is required.", fe["title"])
	assert.Equal(t, "invalid input: title: This field is required.", err.Error())
}

func TestNotFoundFamily(t *testing.T) {
	for _, err := range []error{domain.ErrUserNotFound, domain.ErrMembershipNotFound, domain.ErrOrganizationNotFound} {
		assert.True(t, errors.Is(err, domain.ErrNotFound), err.Error())
	}
}
