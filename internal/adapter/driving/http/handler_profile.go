package httphandler

import (
	"net/http"

	"github.com/ericfisherdev/marketplace/internal/domain/model"
)

// ProfileRequest is the JSON body of a profile upsert. Absent fields keep
// their stored values.
type ProfileRequest struct {
	Gender       *string `json:"gender"`
	EmailAddress *string `json:"email_address"`
	Birthday     *string `json:"birthday"`
}

// UpsertProfile creates the caller's profile or merges into the existing one.
func (h *Handler) UpsertProfile(w http.ResponseWriter, r *http.Request) {
	var req ProfileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, created, err := h.svc.Profiles.Upsert(r.Context(), mustClaims(r), model.ProfilePatch{
		Gender:       req.Gender,
		EmailAddress: req.EmailAddress,
		Birthday:     req.Birthday,
	})
	if err != nil {
		h.fail(w, r, "profile", err)
		return
	}

	msg := "Profile updated successfully"
	if created {
		msg = "Profile created successfully"
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": msg,
		"profile": toProfileResponse(*p),
	})
}

// GetProfile returns the caller's profile.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Profiles.Get(r.Context(), mustClaims(r).UserID)
	if err != nil {
		h.fail(w, r, "profile", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Profile retrieved successfully",
		"profile": toProfileResponse(*p),
	})
}

// DeleteProfile removes the caller's profile.
func (h *Handler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Profiles.Delete(r.Context(), mustClaims(r).UserID); err != nil {
		h.fail(w, r, "profile", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"message": "Profile deleted successfully"})
}
