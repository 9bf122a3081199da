// Package pagination implements the from/size paging contract shared by
// the booking listings, the item listings and the search endpoint.
//
// The contract is not a plain row offset: from and size jointly select a
// page via integer division (from=2, size=3 lands on page 0, the same
// page as from=0). Supplying exactly one of the two parameters is an
// error that must echo both raw values back to the caller.
package pagination

import (
	"fmt"
	"net/http"
	"strconv"

	"shareit/internal/pkg/apperror"
)

// ErrBadParams is the sentinel for every pagination parameter failure.
var ErrBadParams = fmt.Errorf("pagination parameters are not allowed")

// Params carries the raw from/size query parameters. A nil field means
// the parameter was absent from the request.
type Params struct {
	From *int
	Size *int
}

// PageRequest is a resolved page: a LIMIT/OFFSET pair, or everything
// when Paged is false.
type PageRequest struct {
	Paged  bool
	Limit  int
	Offset int
}

// Unpaged returns the full-result-set request.
func Unpaged() PageRequest {
	return PageRequest{}
}

// Resolve turns raw parameters into a PageRequest.
//
// Both absent: the full result set. Exactly one present: ErrBadParams
// with both raw values. Both present: from must be >= 0 and size >= 1;
// the page index is from/size for from > 0, otherwise 0.
func (p Params) Resolve() (PageRequest, error) {
	if p.From == nil && p.Size == nil {
		return Unpaged(), nil
	}
	if p.From == nil || p.Size == nil {
		return PageRequest{}, paramError(p.From, p.Size)
	}
	if *p.From < 0 || *p.Size < 1 {
		return PageRequest{}, paramError(p.From, p.Size)
	}

	page := 0
	if *p.From > 0 {
		page = *p.From / *p.Size
	}
	return PageRequest{
		Paged:  true,
		Limit:  *p.Size,
		Offset: page * *p.Size,
	}, nil
}

// ParseQuery builds Params from raw query strings ("" means absent).
// A value that is not an integer is reported the same way as an
// out-of-range one, with the raw text in the message.
func ParseQuery(from, size string) (Params, error) {
	var p Params
	if from != "" {
		v, err := strconv.Atoi(from)
		if err != nil {
			return Params{}, apperror.Wrap(ErrBadParams, http.StatusBadRequest,
				fmt.Sprintf("unable to process pagination parameters: from = %s, size = %s", raw(from), raw(size)))
		}
		p.From = &v
	}
	if size != "" {
		v, err := strconv.Atoi(size)
		if err != nil {
			return Params{}, apperror.Wrap(ErrBadParams, http.StatusBadRequest,
				fmt.Sprintf("unable to process pagination parameters: from = %s, size = %s", raw(from), raw(size)))
		}
		p.Size = &v
	}
	return p, nil
}

func paramError(from, size *int) error {
	return apperror.Wrap(ErrBadParams, http.StatusBadRequest,
		fmt.Sprintf("unable to process pagination parameters: from = %s, size = %s", fmtPtr(from), fmtPtr(size)))
}

func fmtPtr(v *int) string {
	if v == nil {
		return "null"
	}
	return strconv.Itoa(*v)
}

func raw(s string) string {
	if s == "" {
		return "null"
	}
	return s
}
