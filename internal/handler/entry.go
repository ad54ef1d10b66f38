package handler

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/dangerclosesec/tabbedjournal/internal/model"
	"github.com/dangerclosesec/tabbedjournal/internal/service"
	"github.com/google/uuid"
)

const maxUploadMemory = 32 << 20

// EntryHandler serves the journal feed, the author's drafts and the review
// queue.
type EntryHandler struct {
	entries *service.EntryService
}

func NewEntryHandler(entries *service.EntryService) *EntryHandler {
	return &EntryHandler{entries: entries}
}

func (h *EntryHandler) Feed(w http.ResponseWriter, r *http.Request) {
	page, err := h.entries.Feed(r.Context(), currentUser(r), r.URL.Query().Get("tab"), pageParams(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, page)
}

func (h *EntryHandler) Drafts(w http.ResponseWriter, r *http.Request) {
	page, err := h.entries.Drafts(r.Context(), currentUser(r), pageParams(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, page)
}

func (h *EntryHandler) ReviewQueue(w http.ResponseWriter, r *http.Request) {
	page, err := h.entries.ReviewQueue(r.Context(), currentUser(r), pageParams(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, page)
}

func (h *EntryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	entry, err := h.entries.Get(r.Context(), currentUser(r), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, entry)
}

// Create accepts either a JSON body or a multipart form carrying images.
func (h *EntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	input, uploads, ok := readEntryRequest(w, r)
	if !ok {
		return
	}
	defer closeUploads(uploads)

	entry, err := h.entries.Create(r.Context(), currentUser(r), input, uploads)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, entry)
}

func (h *EntryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	input, uploads, ok := readEntryRequest(w, r)
	if !ok {
		return
	}
	defer closeUploads(uploads)

	entry, err := h.entries.Update(r.Context(), currentUser(r), id, input, uploads)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, entry)
}

func (h *EntryHandler) AddImages(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		respondWithError(w, http.StatusBadRequest, "Expected a multipart form")
		return
	}
	uploads, err := formUploads(r.MultipartForm, "images")
	defer closeUploads(uploads)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Could not read uploaded images")
		return
	}

	entry, err := h.entries.AddImages(r.Context(), currentUser(r), id, uploads)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, entry)
}

func (h *EntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.entries.Delete)
}

func (h *EntryHandler) Submit(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.entries.Submit)
}

func (h *EntryHandler) Reopen(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.entries.Reopen)
}

func (h *EntryHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.entries.Approve)
}

func (h *EntryHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.entries.Reject)
}

func (h *EntryHandler) transition(w http.ResponseWriter, r *http.Request, fn func(context.Context, *model.User, uuid.UUID) (*service.TransitionResult, error)) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	result, err := fn(r.Context(), currentUser(r), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithTransition(w, result)
}

// readEntryRequest decodes the entry fields and any attached images.
// Multipart forms send tab ids as repeated tab_ids values.
func readEntryRequest(w http.ResponseWriter, r *http.Request) (service.EntryInput, []service.ImageUpload, bool) {
	var input service.EntryInput
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		ok := decodeJSON(w, r, &input)
		return input, nil, ok
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid multipart form")
		return input, nil, false
	}
	form := r.MultipartForm

	input.Title = firstValue(form, "title")
	input.Body = firstValue(form, "body")
	input.Submit, _ = strconv.ParseBool(firstValue(form, "submit"))
	for _, raw := range form.Value["tab_ids"] {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondWithJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
				Error:   "Invalid input",
				Details: map[string]string{"tab_ids": "Select a valid choice."},
			})
			return input, nil, false
		}
		input.TabIDs = append(input.TabIDs, id)
	}

	uploads, err := formUploads(form, "images")
	if err != nil {
		closeUploads(uploads)
		respondWithError(w, http.StatusBadRequest, "Could not read uploaded images")
		return input, nil, false
	}
	return input, uploads, true
}

func firstValue(form *multipart.Form, key string) string {
	if values := form.Value[key]; len(values) > 0 {
		return values[0]
	}
	return ""
}

// formUploads opens every file under key. Captions may be sent as a
// parallel captions field.
func formUploads(form *multipart.Form, key string) ([]service.ImageUpload, error) {
	captions := form.Value["captions"]
	var uploads []service.ImageUpload
	for i, header := range form.File[key] {
		file, err := header.Open()
		if err != nil {
			return uploads, err
		}
		upload := service.ImageUpload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Body:        file,
		}
		if i < len(captions) {
			upload.Caption = captions[i]
		}
		uploads = append(uploads, upload)
	}
	return uploads, nil
}

func closeUploads(uploads []service.ImageUpload) {
	for _, u := range uploads {
		if c, ok := u.Body.(io.Closer); ok {
			c.Close()
		}
	}
}
