package handlers

import (
	"net/http"
	"strings"

	"GLOBETROTTER_BACK-END/internal/config"
	"GLOBETROTTER_BACK-END/internal/dto"
	"GLOBETROTTER_BACK-END/internal/middleware"
	"GLOBETROTTER_BACK-END/internal/session"
	"GLOBETROTTER_BACK-END/internal/utils"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	provider *session.Provider
	auth     *middleware.Authenticator
	jwt      *config.JWTConfig
	logger   *utils.Logger
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(provider *session.Provider, auth *middleware.Authenticator, jwt *config.JWTConfig, logger *utils.Logger) *AuthHandler {
	return &AuthHandler{provider: provider, auth: auth, jwt: jwt, logger: logger}
}

// Register handles user registration
// @Summary Register a new user
// @Description Create a new account with email and password
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "User registration data"
// @Success 201 {object} dto.AuthResponse "User created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "User already exists"
// @Failure 503 {object} dto.ErrorResponse "Database unavailable"
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	// Validate required fields
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Missing required fields", "Email and password are required")
		return
	}

	id, err := h.provider.Register(r.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	h.logger.Info("User registered: %s", id.ID)
	h.respondWithToken(w, http.StatusCreated, id)
}

// Login handles user login
// @Summary Login user
// @Description Authenticate with email and password. The demo and admin accounts work without a database.
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.AuthResponse "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 503 {object} dto.ErrorResponse "Database unavailable"
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Missing required fields", "Email and password are required")
		return
	}

	id, err := h.provider.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	h.respondWithToken(w, http.StatusOK, id)
}

// Logout revokes the presented token
// @Summary Logout user
// @Tags authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /api/auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "User not authenticated")
		return
	}
	if err := h.auth.Revoke(r.Context(), claims); err != nil {
		h.logger.Error("Failed to revoke token of %s: %v", claims.UserID, err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Logout failed", "Could not end the session")
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "Logged out"})
}

// Me returns the signed-in identity
// @Summary Current session
// @Tags authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /api/auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	who, ok := identity(w, r)
	if !ok {
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, toUserResponse(who))
}

func (h *AuthHandler) respondWithToken(w http.ResponseWriter, status int, id session.Identity) {
	token, err := middleware.GenerateToken(id, h.jwt)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to generate token", err.Error())
		return
	}
	utils.WriteJSONResponse(w, status, dto.AuthResponse{User: toUserResponse(id), Token: token})
}
