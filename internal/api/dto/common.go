// Package dto provides request and response types for the yamdb API.
// These types are used by huma to generate OpenAPI documentation and perform validation.
package dto

import "github.com/yamdb/yamdb-server/internal/store"

// ListResponse is a paginated list response.
type ListResponse[T any] struct {
	Count   int `json:"count" doc:"Total count across all pages"`
	Limit   int `json:"limit" doc:"Page size used"`
	Offset  int `json:"offset" doc:"Offset of the first result"`
	Results []T `json:"results" doc:"Results on this page"`
}

// NewList maps a store list into a response with fn applied to every item.
func NewList[T, R any](l *store.List[T], fn func(T) R) ListResponse[R] {
	results := make([]R, len(l.Items))
	for i, item := range l.Items {
		results[i] = fn(item)
	}
	return ListResponse[R]{
		Count:   l.Count,
		Limit:   l.Limit,
		Offset:  l.Offset,
		Results: results,
	}
}

// PaginationParams defines common pagination query parameters.
type PaginationParams struct {
	Limit  int `query:"limit" default:"20" minimum:"1" doc:"Items per page (max 100)"`
	Offset int `query:"offset" default:"0" minimum:"0" doc:"Number of items to skip"`
}

// Page converts the parameters into a normalized store window.
func (p PaginationParams) Page() store.Page {
	return store.Page{Limit: p.Limit, Offset: p.Offset}.Normalize()
}
