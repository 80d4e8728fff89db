package store

import (
	"fmt"
	"strings"
)

// DefaultLimit and MaxLimit bound the page size for every listing endpoint.
const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// ValidationError marks bad listing input so handlers can answer 400 instead
// of 500.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// ListParams is the shared input shape of every listing operation:
// free-text search, 1-based pagination and a whitelisted sort.
type ListParams struct {
	Search    string
	Page      int
	Limit     int
	SortBy    string
	SortOrder string

	sortColumn string // resolved by Normalize against the entity's whitelist
}

// Normalize validates and clamps the parameters against the entity's allowed
// sort fields (JSON field name -> SQL column).
//
// Rules: page below 1 clamps to 1; limit 0 or negative is rejected (never a
// divide-by-zero downstream), limit above MaxLimit clamps; an unknown sortBy
// is rejected rather than interpolated into SQL; sortOrder defaults to
// descending.
func (p *ListParams) Normalize(allowedSort map[string]string) error {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit == 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit < 0 {
		return &ValidationError{Msg: fmt.Sprintf("limit must be between 1 and %d", MaxLimit)}
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}

	if p.SortBy == "" {
		p.SortBy = "createdAt"
	}
	col, ok := allowedSort[p.SortBy]
	if !ok {
		return &ValidationError{Msg: "cannot sort by field: " + p.SortBy}
	}
	p.sortColumn = col

	switch strings.ToLower(p.SortOrder) {
	case "asc":
		p.SortOrder = "asc"
	case "", "desc":
		p.SortOrder = "desc"
	default:
		return &ValidationError{Msg: "sortOrder must be 'asc' or 'desc'"}
	}
	return nil
}

// OrderClause returns the resolved "column DIRECTION" fragment. Only safe
// after a successful Normalize: the column comes from the whitelist, never
// from user input.
func (p ListParams) OrderClause() string {
	dir := "DESC"
	if p.SortOrder == "asc" {
		dir = "ASC"
	}
	return p.sortColumn + " " + dir
}

// Offset returns the number of records to skip for the requested page.
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// SearchPattern returns the LIKE pattern for case-insensitive substring
// matching.
func (p ListParams) SearchPattern() string {
	return "%" + strings.ToLower(p.Search) + "%"
}

// Meta is the pagination block returned alongside every page of results.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewMeta derives the meta block from the total matching count
// (pre-pagination). Normalize guarantees limit > 0.
func NewMeta(p ListParams, total int) Meta {
	pages := 0
	if total > 0 {
		pages = (total + p.Limit - 1) / p.Limit
	}
	return Meta{Page: p.Page, Limit: p.Limit, Total: total, TotalPages: pages}
}
