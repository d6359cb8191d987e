package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessageOf(t *testing.T) {
	err := fmt.Errorf("create: %w", NewBadRequestError(MsgNameTaken))

	msg, ok := MessageOf(err)
	assert.True(t, ok)
	assert.Equal(t, MsgNameTaken, msg)
	assert.ErrorIs(t, err, ErrBadRequest)

	_, ok = MessageOf(errors.New("boom"))
	assert.False(t, ok)
}

func TestExternalServiceErrorKeepsCause(t *testing.T) {
	err := NewExternalServiceError("Image upload failed", errors.New("status 500"))

	assert.ErrorIs(t, err, ErrExternalService)
	assert.Equal(t, "Image upload failed", err.Error())
	assert.Equal(t, map[string]interface{}{"cause": "status 500"}, DetailsOf(err))
	assert.Nil(t, DetailsOf(NewResourceNotFoundError(MsgCourseNotFound)))
}
