package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/MrSnakeDoc/bookmarks/internal/domain"
)

const maxBodyBytes = 1 << 20

var (
	errInvalidJSON  = errors.New("invalid json body")
	errBodyTooLarge = errors.New("request body too large")
)

// bodyErrorMessage is the client-facing message for a decodeFields error.
func bodyErrorMessage(err error) string {
	if errors.Is(err, errBodyTooLarge) {
		return "Request body too large."
	}
	return "Invalid JSON in request."
}

// bookmarkRequest holds the recognized body fields. Each one is kept raw so
// that absent, null and present values stay distinct and non-string values
// reach validation as their literal text.
type bookmarkRequest struct {
	Title       json.RawMessage `json:"title"`
	URL         json.RawMessage `json:"url"`
	Description json.RawMessage `json:"description"`
	Rating      json.RawMessage `json:"rating"`
}

// decodeFields reads a JSON object body into domain.Fields. An empty body is
// an empty object; unknown fields are ignored.
func decodeFields(w http.ResponseWriter, r *http.Request) (domain.Fields, error) {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req bookmarkRequest
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return domain.Fields{}, nil
		case errors.As(err, &tooLarge):
			return domain.Fields{}, errBodyTooLarge
		default:
			return domain.Fields{}, errInvalidJSON
		}
	}

	in := domain.Fields{
		Title:       rawText(req.Title),
		URL:         rawText(req.URL),
		Description: rawText(req.Description),
		Rating:      rawText(req.Rating),
	}
	for f, raw := range map[domain.FieldSet]json.RawMessage{
		domain.FieldTitle:       req.Title,
		domain.FieldURL:         req.URL,
		domain.FieldDescription: req.Description,
		domain.FieldRating:      req.Rating,
	} {
		if zeroLiteral(raw) {
			in.Zero |= f
		}
	}
	return in, nil
}

// zeroLiteral reports whether raw is a JSON false or a number equal to zero.
func zeroLiteral(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	if bytes.Equal(raw, []byte("false")) {
		return true
	}
	if len(raw) == 0 || raw[0] == '"' {
		return false
	}
	n, err := strconv.ParseFloat(string(raw), 64)
	return err == nil && n == 0
}

// rawText turns a raw JSON value into its textual form: nil for absent or
// null, the unquoted value for strings, the literal otherwise.
func rawText(raw json.RawMessage) *string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return &s
		}
	}
	s := string(raw)
	return &s
}
