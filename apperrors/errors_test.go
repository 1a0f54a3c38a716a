package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"validation", Missing("area"), http.StatusBadRequest},
		{"not found", NotFound("campaign"), http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("load: %w", NotFound("event")), http.StatusNotFound},
		{"upload", &UploadError{Field: "image", Err: errors.New("boom")}, http.StatusInternalServerError},
		{"connection", &ConnectionError{Err: errors.New("dial")}, http.StatusInternalServerError},
		{"auth", &AuthError{}, http.StatusUnauthorized},
		{"unknown", errors.New("x"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Status(tc.err))
		})
	}
}

func TestMessage_DoesNotLeakInternals(t *testing.T) {
	assert.Equal(t, "internal server error", Message(errors.New("mongo: secret host")))
	assert.Equal(t, "database unavailable", Message(&ConnectionError{Err: errors.New("dial tcp 10.0.0.1")}))
	assert.Equal(t, "failed to upload image", Message(&UploadError{Field: "image", Err: errors.New("401")}))
}

func TestMissing_NamesEveryField(t *testing.T) {
	err := Missing("name", "area")
	assert.True(t, err.Has("area"))
	assert.True(t, err.Has("name"))
	assert.False(t, err.Has("email"))
	assert.Equal(t, "name is required; area is required", err.Error())

	fields := Fields(err)
	assert.Equal(t, "area", fields[0].Field)
	assert.Nil(t, Fields(errors.New("plain")))
}
