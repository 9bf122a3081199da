package booking

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shareit/internal/pkg/apperror"
)

func TestParseState(t *testing.T) {
	cases := []struct {
		raw  string
		want State
	}{
		{"", StateAll},
		{"ALL", StateAll},
		{"all", StateAll},
		{"Current", StateCurrent},
		{"PAST", StatePast},
		{"future", StateFuture},
		{"WAITING", StateWaiting},
		{"rejected", StateRejected},
	}
	for _, tc := range cases {
		got, err := ParseState(tc.raw)
		require.NoError(t, err, "raw %q", tc.raw)
		assert.Equal(t, tc.want, got, "raw %q", tc.raw)
	}
}

func TestParseStateUnknown(t *testing.T) {
	_, err := ParseState("NEW")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownState))
	assert.Equal(t, "Unknown state: NEW", err.Error())

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
}
