// internal/apperrors/errors_test.go
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeNotFound, CodeOf(NotFound("content %d not found", 1)))
	assert.Equal(t, CodeUnauthorized, CodeOf(Unauthorized("nope")))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("plain")))
	assert.Equal(t, CodeInternal, CodeOf(nil))
}

func TestCodeSurvivesWrapping(t *testing.T) {
	inner := AlreadyOwned("content 1 already has an owner")
	wrapped := fmt.Errorf("while assigning: %w", inner)

	assert.Equal(t, CodeAlreadyOwned, CodeOf(wrapped))
	assert.True(t, IsCode(wrapped, CodeAlreadyOwned))
	assert.True(t, errors.Is(wrapped, inner))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal(cause, "failed to store record")

	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "failed to store record")
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NotFound("missing")))
	assert.Equal(t, http.StatusForbidden, HTTPStatus(Unauthorized("nope")))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(InvalidArgument("bad")))
	assert.Equal(t, http.StatusConflict, HTTPStatus(AlreadyOwned("taken")))
	assert.Equal(t, http.StatusPreconditionFailed, HTTPStatus(FailedPrecondition("not ready")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("plain")))
}
