package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/bookmarks/internal/httpserver/deps"
)

// LocationPrefix is the canonical collection path used in Location headers.
const LocationPrefix = "/api/bookmarks/"

func ListBookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := d.Bookmarks.ListAll(r.Context())
		if err != nil {
			writeError(w, r, d, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func GetBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := d.Bookmarks.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, r, d, err)
			return
		}
		writeJSON(w, http.StatusOK, b)
	}
}

func CreateBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, err := decodeFields(w, r)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, bodyErrorMessage(err))
			return
		}

		b, err := d.Bookmarks.Create(r.Context(), in)
		if err != nil {
			writeError(w, r, d, err)
			return
		}

		w.Header().Set("Location", LocationPrefix+strconv.FormatInt(b.ID, 10))
		writeJSON(w, http.StatusCreated, b)
	}
}

func DeleteBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Bookmarks.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeError(w, r, d, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func UpdateBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, err := decodeFields(w, r)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, bodyErrorMessage(err))
			return
		}

		if err := d.Bookmarks.Update(r.Context(), chi.URLParam(r, "id"), in); err != nil {
			writeError(w, r, d, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
