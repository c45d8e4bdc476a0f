package domain

import (
	"strconv"
	"strings"
)

// Bookmark is the single resource managed by the service.
type Bookmark struct {
	// ID is assigned by the store on insert and never changes afterwards.
	ID int64 `json:"id"`

	// Title is the display name. Required, never empty.
	Title string `json:"title"`

	// URL is the bookmarked address. Only presence is checked.
	URL string `json:"url"`

	// Description is optional; empty means not provided.
	Description string `json:"description"`

	// Rating is always within [MinRating, MaxRating].
	Rating float64 `json:"rating"`
}

// Fields carries client-supplied values for create and partial update.
// A nil pointer means the field was omitted or null.
//
// Rating is kept in its textual form so that parsing (and therefore the
// "not a number" outcome) stays a domain decision rather than a transport one.
type Fields struct {
	Title       *string
	URL         *string
	Description *string
	Rating      *string

	// Zero marks fields supplied as a JSON false or numeric zero. They are
	// present for create and count as omitted for a partial update.
	Zero FieldSet
}

// FieldSet is a set of bookmark fields.
type FieldSet uint8

const (
	FieldTitle FieldSet = 1 << iota
	FieldURL
	FieldDescription
	FieldRating
)

// Has reports whether every field of f is in s.
func (s FieldSet) Has(f FieldSet) bool {
	return f != 0 && s&f == f
}

func (in Fields) value(f FieldSet) *string {
	switch f {
	case FieldTitle:
		return in.Title
	case FieldURL:
		return in.URL
	case FieldDescription:
		return in.Description
	case FieldRating:
		return in.Rating
	}
	return nil
}

// ParseID converts an identifier taken from a URL path into the integer
// column type used by every store. Anything that is not a positive base-10
// integer cannot address a row and reports ok=false.
func ParseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
