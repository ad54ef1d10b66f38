package handler

import (
	"net/http"
	"strconv"

	"github.com/dangerclosesec/tabbedjournal/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ProfileHandler serves /api/profile and /api/profile/{userID}. Without a
// userID every route acts on the caller's own profile; with one, on a profile
// the caller manages.
type ProfileHandler struct {
	profiles *service.ProfileService
}

func NewProfileHandler(profiles *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

type ReorderRequest struct {
	IDs []uuid.UUID `json:"ids"`
}

// target returns the userID route parameter, or nil for the caller.
func target(w http.ResponseWriter, r *http.Request) (*uuid.UUID, bool) {
	raw := chi.URLParam(r, "userID")
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid userID")
		return nil, false
	}
	return &id, true
}

// Get returns the caller's own profile in full, or another user's profile as
// the caller is allowed to see it.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	targetID, ok := target(w, r)
	if !ok {
		return
	}
	actor := currentUser(r)

	if targetID == nil {
		profile, err := h.profiles.Get(r.Context(), actor, nil)
		if err != nil {
			handleError(w, r, err)
			return
		}
		respondWithJSON(w, http.StatusOK, profile)
		return
	}

	profile, err := h.profiles.View(r.Context(), actor, *targetID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	targetID, ok := target(w, r)
	if !ok {
		return
	}
	var input service.ProfileInput
	if !decodeJSON(w, r, &input) {
		return
	}

	profile, err := h.profiles.Update(r.Context(), currentUser(r), targetID, input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) AddSocialLink(w http.ResponseWriter, r *http.Request) {
	targetID, ok := target(w, r)
	if !ok {
		return
	}
	var input service.SocialLinkInput
	if !decodeJSON(w, r, &input) {
		return
	}

	link, err := h.profiles.AddSocialLink(r.Context(), currentUser(r), targetID, input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, link)
}

func (h *ProfileHandler) UpdateSocialLink(w http.ResponseWriter, r *http.Request) {
	targetID, ok := target(w, r)
	if !ok {
		return
	}
	itemID, ok := uuidParam(w, r, "itemID")
	if !ok {
		return
	}
	var input service.SocialLinkInput
	if !decodeJSON(w, r, &input) {
		return
	}

	link, err := h.profiles.UpdateSocialLink(r.Context(), currentUser(r), targetID, itemID, input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, link)
}

func (h *ProfileHandler) DeleteSocialLink(w http.ResponseWriter, r *http.Request) {
	targetID, ok := target(w, r)
	if !ok {
		return
	}
	itemID, ok := uuidParam(w, r, "itemID")
	if !ok {
		return
	}
	if err := h.profiles.DeleteSocialLink(r.Context(), currentUser(r), targetID, itemID); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProfileHandler) ReorderSocialLinks(w http.ResponseWriter, r *http.Request) {
	targetID, ok := target(w, r)
	if !ok {
		return
	}
	var req ReorderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	links, err := h.profiles.ReorderSocialLinks(r.Context(), currentUser(r), targetID, req.IDs)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, links)
}

// AddImage expects a multipart form with one file under "image".
func (h *ProfileHandler) AddImage(w http.ResponseWriter, r *http.Request) {
	targetID, ok := target(w, r)
	if !ok {
		return
	}
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		respondWithError(w, http.StatusBadRequest, "Expected a multipart form")
		return
	}
	form := r.MultipartForm

	uploads, err := formUploads(form, "image")
	defer closeUploads(uploads)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Could not read uploaded image")
		return
	}
	if len(uploads) != 1 {
		respondWithJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "Invalid input",
			Details: map[string]string{"image": "This field is required."},
		})
		return
	}

	input := service.ImageInput{}
	if caption, ok := form.Value["caption"]; ok && len(caption) > 0 {
		input.Caption = &caption[0]
	}
	input.IsPrimary = formBool(firstValue(form, "is_primary"))
	input.Visible = formBool(firstValue(form, "visible"))
	if position, err := strconv.Atoi(firstValue(form, "position")); err == nil {
		input.Position = &position
	}

	image, err := h.profiles.AddImage(r.Context(), currentUser(r), targetID, uploads[0], input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, image)
}

func formBool(raw string) *bool {
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &b
}

func (h *ProfileHandler) UpdateImage(w http.ResponseWriter, r *http.Request) {
	targetID, ok := target(w, r)
	if !ok {
		return
	}
	itemID, ok := uuidParam(w, r, "itemID")
	if !ok {
		return
	}
	var input service.ImageInput
	if !decodeJSON(w, r, &input) {
		return
	}

	image, err := h.profiles.UpdateImage(r.Context(), currentUser(r), targetID, itemID, input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, image)
}

func (h *ProfileHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	targetID, ok := target(w, r)
	if !ok {
		return
	}
	itemID, ok := uuidParam(w, r, "itemID")
	if !ok {
		return
	}
	if err := h.profiles.DeleteImage(r.Context(), currentUser(r), targetID, itemID); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProfileHandler) AddCustomField(w http.ResponseWriter, r *http.Request) {
	targetID, ok := target(w, r)
	if !ok {
		return
	}
	var input service.CustomFieldInput
	if !decodeJSON(w, r, &input) {
		return
	}

	field, err := h.profiles.AddCustomField(r.Context(), currentUser(r), targetID, input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, field)
}

func (h *ProfileHandler) UpdateCustomField(w http.ResponseWriter, r *http.Request) {
	targetID, ok := target(w, r)
	if !ok {
		return
	}
	itemID, ok := uuidParam(w, r, "itemID")
	if !ok {
		return
	}
	var input service.CustomFieldInput
	if !decodeJSON(w, r, &input) {
		return
	}

	field, err := h.profiles.UpdateCustomField(r.Context(), currentUser(r), targetID, itemID, input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, field)
}

func (h *ProfileHandler) DeleteCustomField(w http.ResponseWriter, r *http.Request) {
	targetID, ok := target(w, r)
	if !ok {
		return
	}
	itemID, ok := uuidParam(w, r, "itemID")
	if !ok {
		return
	}
	if err := h.profiles.DeleteCustomField(r.Context(), currentUser(r), targetID, itemID); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RowTemplate returns a blank row for the profile editor. The optional index
// query parameter overrides the next free index.
func (h *ProfileHandler) RowTemplate(w http.ResponseWriter, r *http.Request) {
	targetID, ok := target(w, r)
	if !ok {
		return
	}
	var index *int
	if raw := r.URL.Query().Get("index"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			respondWithError(w, http.StatusBadRequest, "Invalid index")
			return
		}
		index = &n
	}

	row, err := h.profiles.RowTemplate(r.Context(), currentUser(r), targetID, chi.URLParam(r, "kind"), index)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, row)
}

// Routes registers the profile endpoints on r. It is mounted both with and
// without a {userID} prefix.
func (h *ProfileHandler) Routes(r chi.Router) {
	r.Get("/", h.Get)
	r.Put("/", h.Update)

	r.Post("/socials", h.AddSocialLink)
	r.Post("/socials/order", h.ReorderSocialLinks)
	r.Put("/socials/{itemID}", h.UpdateSocialLink)
	r.Delete("/socials/{itemID}", h.DeleteSocialLink)

	r.Post("/images", h.AddImage)
	r.Put("/images/{itemID}", h.UpdateImage)
	r.Delete("/images/{itemID}", h.DeleteImage)

	r.Post("/custom-fields", h.AddCustomField)
	r.Put("/custom-fields/{itemID}", h.UpdateCustomField)
	r.Delete("/custom-fields/{itemID}", h.DeleteCustomField)

	r.Get("/rows/{kind}", h.RowTemplate)
}
