package pagination

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shareit/internal/pkg/apperror"
)

func intPtr(v int) *int {
	return &v
}

func TestResolveUnpaged(t *testing.T) {
	page, err := Params{}.Resolve()
	require.NoError(t, err)
	assert.False(t, page.Paged)
}

func TestResolveSingleParamRejected(t *testing.T) {
	cases := []struct {
		name string
		p    Params
		msg  string
	}{
		{"only from", Params{From: intPtr(0)}, "from = 0, size = null"},
		{"only size", Params{Size: intPtr(3)}, "from = null, size = 3"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.p.Resolve()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrBadParams))
			assert.Contains(t, err.Error(), tc.msg)

			var appErr *apperror.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, 400, appErr.Code)
		})
	}
}

func TestResolveRangeChecks(t *testing.T) {
	_, err := Params{From: intPtr(-1), Size: intPtr(3)}.Resolve()
	assert.True(t, errors.Is(err, ErrBadParams))

	_, err = Params{From: intPtr(0), Size: intPtr(0)}.Resolve()
	assert.True(t, errors.Is(err, ErrBadParams))
}

func TestResolvePageIndexCollapse(t *testing.T) {
	// from=2, size=3 collapses to page 0, the same page as from=0.
	a, err := Params{From: intPtr(2), Size: intPtr(3)}.Resolve()
	require.NoError(t, err)
	b, err := Params{From: intPtr(0), Size: intPtr(3)}.Resolve()
	require.NoError(t, err)
	assert.Equal(t, b, a)
	assert.Equal(t, 0, a.Offset)
	assert.Equal(t, 3, a.Limit)

	// from=6, size=3 is page 2.
	c, err := Params{From: intPtr(6), Size: intPtr(3)}.Resolve()
	require.NoError(t, err)
	assert.Equal(t, 6, c.Offset)

	// from=7, size=3 is also page 2 (7/3 == 2).
	d, err := Params{From: intPtr(7), Size: intPtr(3)}.Resolve()
	require.NoError(t, err)
	assert.Equal(t, 6, d.Offset)
}

func TestParseQuery(t *testing.T) {
	p, err := ParseQuery("2", "3")
	require.NoError(t, err)
	require.NotNil(t, p.From)
	require.NotNil(t, p.Size)
	assert.Equal(t, 2, *p.From)
	assert.Equal(t, 3, *p.Size)

	p, err = ParseQuery("", "")
	require.NoError(t, err)
	assert.Nil(t, p.From)
	assert.Nil(t, p.Size)

	_, err = ParseQuery("abc", "3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "from = abc")
}
