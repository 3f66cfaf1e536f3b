package domain

import (
	"strconv"
	"strings"
)

// PageSize is the number of stores shown per listing page.
const PageSize = 6

// PageOutcome tells the caller whether to render a listing or redirect.
type PageOutcome int

const (
	// PageListing carries a window of stores.
	PageListing PageOutcome = iota
	// PageRedirect asks the caller to send the user to PagePlan.RedirectTo.
	PageRedirect
)

// RedirectReason explains a PageRedirect so callers can word their message.
type RedirectReason int

const (
	RedirectNone RedirectReason = iota
	// RedirectBelowFirst: the requested page was below 1 or not a number.
	RedirectBelowFirst
	// RedirectBeyondLast: the requested page had no stores.
	RedirectBeyondLast
)

// PagePlan is the result of planning a listing page.
type PagePlan struct {
	Outcome    PageOutcome
	Reason     RedirectReason
	Requested  string
	RedirectTo int
	Stores     []Store
	Page       int
	TotalPages int
	Count      int
}

// TotalPages returns ceil(count / PageSize); zero for an empty collection.
func TotalPages(count int) int {
	if count <= 0 {
		return 0
	}
	return (count + PageSize - 1) / PageSize
}

// ParsePageRequest interprets a raw page parameter. An absent value means page 1.
// ok is false when the value is not an integer.
func ParsePageRequest(raw string) (page int, ok bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 1, true
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return parsed, true
}
