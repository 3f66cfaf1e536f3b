package common

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	admindomain "github.com/sngm3741/storefinder/api/internal/admin/domain"
	"github.com/sngm3741/storefinder/api/internal/public/domain"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{domain.ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("lookup: %w", domain.ErrNotFound), http.StatusNotFound},
		{domain.ErrInvalidCoordinates, http.StatusBadRequest},
		{domain.ErrInvalidRating, http.StatusBadRequest},
		{domain.ErrInvalidReview, http.StatusBadRequest},
		{admindomain.ErrInvalidStore, http.StatusBadRequest},
		{ErrBadRequest, http.StatusBadRequest},
		{admindomain.ErrNotOwner, http.StatusForbidden},
		{domain.ErrFavoritesConflict, http.StatusConflict},
		{admindomain.ErrSlugTaken, http.StatusConflict},
		{fmt.Errorf("%w: count: dial", domain.ErrRepositoryUnavailable), http.StatusServiceUnavailable},
		{context.DeadlineExceeded, http.StatusGatewayTimeout},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, StatusFor(tc.err), "%v", tc.err)
	}
}

func TestWriteError(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(nil, rr, "near", domain.ErrInvalidCoordinates)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, MessageFor(domain.ErrInvalidCoordinates), body.Error)
}

type reviewBody struct {
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
	Text   string `json:"text" validate:"required"`
}

func TestDecodeJSON(t *testing.T) {
	decode := func(body string) (reviewBody, error) {
		var dst reviewBody
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		err := DecodeJSON(httptest.NewRecorder(), req, &dst)
		return dst, err
	}

	got, err := decode(`{"rating":4,"text":"good"}`)
	require.NoError(t, err)
	assert.Equal(t, reviewBody{Rating: 4, Text: "good"}, got)

	_, err = decode(``)
	assert.ErrorIs(t, err, ErrBadRequest)

	_, err = decode(`{"rating":4,"text":"good","extra":1}`)
	assert.ErrorIs(t, err, ErrBadRequest)

	_, err = decode(`{"rating":9,"text":"good"}`)
	require.ErrorIs(t, err, ErrBadRequest)
	assert.Contains(t, err.Error(), "rating")
}

func TestRequireUser(t *testing.T) {
	rr := httptest.NewRecorder()
	_, ok := RequireUser(nil, rr, httptest.NewRequest(http.MethodGet, "/", http.NoBody))
	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	req = req.WithContext(ContextWithUser(req.Context(), AuthenticatedUser{ID: "u1"}))
	user, ok := RequireUser(nil, httptest.NewRecorder(), req)
	assert.True(t, ok)
	assert.Equal(t, "u1", user.ID)
}
