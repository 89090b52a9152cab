// FilePath: api/resources/api.resource.auth.go
package resources

import (
	"encoding/json"
	"net/http"

	"github.com/urbansense/wastehub/api/middleware"
	"github.com/urbansense/wastehub/internal/auth"
	"github.com/urbansense/wastehub/internal/errors"
	nuts "github.com/vaudience/go-nuts"
)

// AuthHandlers encapsulates registration, login and profile endpoints
type AuthHandlers struct {
	auth *auth.Service
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body registerRequest true "Email, password and optional role"
// @Success 201 {object} envelope
// @Failure 400 {object} envelope
// @Router /auth/register [post]
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	userID, err := h.auth.Register(r.Context(), req.Email, req.Password, req.Role)
	if err != nil {
		respondWithError(w, asAPIError(err).WithRequestID(requestID))
		return
	}

	respondWithData(w, http.StatusCreated, map[string]string{"userId": userID})
}

// @Summary Log in
// @Description Authenticate against the identity provider; returns a service bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body loginRequest true "Email and password"
// @Success 200 {object} envelope
// @Failure 401 {object} envelope
// @Router /auth/login [post]
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	result, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondWithError(w, asAPIError(err).WithRequestID(requestID))
		return
	}

	respondWithData(w, http.StatusOK, result)
}

// @Summary Current user profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} envelope
// @Failure 401 {object} envelope
// @Router /auth/profile [get]
func (h *AuthHandlers) Profile(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	claims, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondWithError(w, errors.NewAuthError("no authenticated user", nil).WithRequestID(requestID))
		return
	}

	respondWithData(w, http.StatusOK, auth.User{
		Email:  claims.Email,
		Role:   claims.Role,
		UserID: claims.UserID,
	})
}

// Logout is stateless on the server side; the token simply ages out. The
// endpoint exists so clients get a uniform success envelope.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	respondWithData(w, http.StatusOK, map[string]string{"message": "logged out"})
}
