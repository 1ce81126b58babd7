// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DefaultLimit is the page size used when the caller does not supply one.
const DefaultLimit = 10

// MaxLimit caps the page size a caller may ask for.
const MaxLimit = 100

// Params is a 1-based page number plus page size.
type Params struct {
	Page  int
	Limit int
}

// Default returns page 1 with DefaultLimit rows.
func Default() Params { return Params{Page: 1, Limit: DefaultLimit} }

// New clamps page and limit into range. Non-positive values fall back to
// the defaults; limit is capped at MaxLimit.
func New(page, limit int) Params {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Params{Page: page, Limit: limit}
}

// Parse reads the "page" and "limit" query parameters.
func Parse(r *http.Request) Params {
	return New(atoi(query.Get(r, "page")), atoi(query.Get(r, "limit")))
}

func atoi(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// Skip is the number of rows before this page.
func (p Params) Skip() int64 { return int64((p.Page - 1) * p.Limit) }

// ApplyToFind sets skip/limit and a newest-first sort on sortField, with
// _id as the tie-breaker so pages never overlap.
func (p Params) ApplyToFind(find *options.FindOptions, sortField string) *options.FindOptions {
	return find.
		SetSort(bson.D{{Key: sortField, Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(p.Skip()).
		SetLimit(int64(p.Limit))
}

// Page is one page of rows plus the total number of rows matching the filter.
type Page[T any] struct {
	Data  []T   `json:"data"`
	Total int64 `json:"total"`
}
