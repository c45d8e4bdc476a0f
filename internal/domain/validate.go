package domain

import (
	"math"
	"strconv"
	"strings"
)

const (
	MinRating = 1
	MaxRating = 5
)

// ParseRating parses a rating given in textual form and checks its range.
func ParseRating(text string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &ValidationError{Field: "rating", Reason: ReasonNotANumber}
	}
	if v < MinRating || v > MaxRating {
		return 0, &ValidationError{Field: "rating", Reason: ReasonOutOfRange}
	}
	return v, nil
}

// ValidateNew checks the fields of a bookmark about to be created and returns
// the bookmark to insert (without id). Required fields are checked in the
// order title, url, rating and the first missing one is reported.
func ValidateNew(in Fields) (Bookmark, error) {
	required := []struct {
		name  string
		value *string
	}{
		{"title", in.Title},
		{"url", in.URL},
		{"rating", in.Rating},
	}
	for _, f := range required {
		if f.value == nil {
			return Bookmark{}, &ValidationError{Field: f.name, Reason: ReasonMissing}
		}
		// title and url must be non-empty text; an empty rating is left to the parser
		if f.name != "rating" && strings.TrimSpace(*f.value) == "" {
			return Bookmark{}, &ValidationError{Field: f.name, Reason: ReasonMissing}
		}
	}

	rating, err := ParseRating(*in.Rating)
	if err != nil {
		return Bookmark{}, err
	}

	b := Bookmark{
		Title:  *in.Title,
		URL:    *in.URL,
		Rating: rating,
	}
	if in.Description != nil {
		b.Description = *in.Description
	}
	return b, nil
}

// ValidatePatch checks a partial update. At least one recognized field must
// carry a truthy value; empty text, a numeric zero and a JSON false are falsy
// and treated exactly like omitted fields. A supplied rating must be valid.
func ValidatePatch(in Fields) error {
	if !in.truthy(FieldTitle) && !in.truthy(FieldURL) && !in.truthy(FieldDescription) && !in.truthy(FieldRating) {
		return &ValidationError{Reason: ReasonEmptyUpdate}
	}
	if in.truthy(FieldRating) {
		if _, err := ParseRating(*in.Rating); err != nil {
			return err
		}
	}
	return nil
}

// Merge applies a validated partial update onto the stored bookmark.
// Only truthy fields overwrite; everything else keeps its stored value.
func Merge(current Bookmark, in Fields) (Bookmark, error) {
	if err := ValidatePatch(in); err != nil {
		return Bookmark{}, err
	}

	merged := current
	if in.truthy(FieldTitle) {
		merged.Title = *in.Title
	}
	if in.truthy(FieldURL) {
		merged.URL = *in.URL
	}
	if in.truthy(FieldDescription) {
		merged.Description = *in.Description
	}
	if in.truthy(FieldRating) {
		rating, err := ParseRating(*in.Rating)
		if err != nil {
			return Bookmark{}, err
		}
		merged.Rating = rating
	}
	return merged, nil
}

// truthy reports whether field f carries a usable value. A rating given as
// text that parses to zero is falsy as well.
func (in Fields) truthy(f FieldSet) bool {
	v := in.value(f)
	if v == nil || *v == "" || in.Zero.Has(f) {
		return false
	}
	if f == FieldRating {
		if n, err := strconv.ParseFloat(strings.TrimSpace(*v), 64); err == nil && n == 0 {
			return false
		}
	}
	return true
}
