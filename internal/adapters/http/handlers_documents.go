package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) listDocuments(collection string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		docs, err := h.service.ListDocuments(r.Context(), collection)
		if err != nil {
			writeMappedError(r.Context(), w, collection+"_list", err)
			return
		}
		writeJSON(w, http.StatusOK, docs)
	}
}

func (h *Handler) createDocument(collection string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := decodeObjectBody(r, &body); err != nil {
			writeValidationError(r.Context(), w, collection+"_create", err)
			return
		}
		doc, err := h.service.CreateDocument(r.Context(), collection, body)
		if err != nil {
			writeMappedError(r.Context(), w, collection+"_create", err)
			return
		}
		w.Header().Set("Location", fmt.Sprintf("/%s/%s", collection, doc.Key))
		writeJSON(w, http.StatusCreated, doc.WithMeta())
	}
}

func (h *Handler) getDocument(collection string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := h.service.GetDocument(r.Context(), collection, chi.URLParam(r, "key"))
		if err != nil {
			writeMappedError(r.Context(), w, collection+"_detail", err)
			return
		}
		writeJSON(w, http.StatusOK, doc.WithMeta())
	}
}

func (h *Handler) replaceDocument(collection string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := decodeObjectBody(r, &body); err != nil {
			writeValidationError(r.Context(), w, collection+"_replace", err)
			return
		}
		doc, err := h.service.ReplaceDocument(r.Context(), collection, chi.URLParam(r, "key"), body)
		if err != nil {
			writeMappedError(r.Context(), w, collection+"_replace", err)
			return
		}
		writeJSON(w, http.StatusOK, doc.WithMeta())
	}
}

func (h *Handler) updateDocument(collection string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := decodeObjectBody(r, &body); err != nil {
			writeValidationError(r.Context(), w, collection+"_update", err)
			return
		}
		doc, err := h.service.UpdateDocument(r.Context(), collection, chi.URLParam(r, "key"), body)
		if err != nil {
			writeMappedError(r.Context(), w, collection+"_update", err)
			return
		}
		writeJSON(w, http.StatusOK, doc.WithMeta())
	}
}

func (h *Handler) removeDocument(collection string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.service.RemoveDocument(r.Context(), collection, chi.URLParam(r, "key")); err != nil {
			writeMappedError(r.Context(), w, collection+"_delete", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	names, err := h.service.ListCategoryNames(r.Context())
	if err != nil {
		writeMappedError(r.Context(), w, "categories_list", err)
		return
	}
	writeJSON(w, http.StatusOK, names)
}
