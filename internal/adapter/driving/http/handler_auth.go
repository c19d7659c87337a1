package httphandler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/ericfisherdev/marketplace/internal/domain/model"
)

// readCredentials takes username and password from the JSON body, falling
// back to the "username" and "password" headers when the body is empty.
func readCredentials(w http.ResponseWriter, r *http.Request) (CredentialsRequest, error) {
	var req CredentialsRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(w, r, &req); err != nil {
			return req, err
		}
	}
	if req.Username == "" && req.Password == "" {
		req.Username = r.Header.Get("username")
		req.Password = r.Header.Get("password")
	}
	return req, nil
}

func roleFromPath(r *http.Request) (model.Role, error) {
	role, ok := model.ParseRole(strings.ToLower(r.PathValue("role")))
	if !ok {
		return "", fmt.Errorf("unknown role %q: expected buyer or seller", r.PathValue("role"))
	}
	return role, nil
}

// Register creates a buyer or seller account.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	role, err := roleFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	req, err := readCredentials(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := h.svc.Auth.Register(r.Context(), role, req.Username, req.Password)
	if err != nil {
		h.fail(w, r, "account", err)
		return
	}

	h.logger.Info("account registered", "role", role, "user_id", id)

	writeJSON(w, http.StatusCreated, RegisterResponse{
		Message:  "User registered successfully",
		UserID:   id,
		Username: strings.TrimSpace(req.Username),
		Role:     string(role),
	})
}

// Login exchanges credentials for a session token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	role, err := roleFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	req, err := readCredentials(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.svc.Auth.Login(r.Context(), role, req.Username, req.Password)
	if err != nil {
		h.fail(w, r, "account", err)
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{
		Message:   "Login successful",
		Token:     res.Token,
		UserID:    res.UserID,
		Username:  res.Username,
		Role:      string(res.Role),
		ExpiresIn: int64(res.ExpiresIn.Seconds()),
		ExpiresAt: formatTime(res.ExpiresAt),
	})
}

// Me returns the caller's account as currently stored.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	cred, err := h.svc.Auth.Me(r.Context(), mustClaims(r))
	if err != nil {
		h.fail(w, r, "account", err)
		return
	}

	writeJSON(w, http.StatusOK, MeResponse{
		UserID:    cred.ID,
		Username:  cred.Username,
		Role:      string(cred.Role),
		CreatedAt: formatTime(cred.CreatedAt),
	})
}
