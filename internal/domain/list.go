// Package domain provides types shared by the domain services.
package domain

// ListResult contains one page of a filtered listing.
type ListResult[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
}
