package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"GLOBETROTTER_BACK-END/internal/itinerary"
	"GLOBETROTTER_BACK-END/internal/services"
	"GLOBETROTTER_BACK-END/internal/session"
	"GLOBETROTTER_BACK-END/internal/store"
	"GLOBETROTTER_BACK-END/internal/utils"
)

// writeServiceError maps service and store errors onto the error envelope.
func writeServiceError(w http.ResponseWriter, logger *utils.Logger, err error) {
	var verr *itinerary.ValidationError
	switch {
	case errors.As(err, &verr):
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", verr.Error())
	case errors.Is(err, session.ErrInvalidRegistration):
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", err.Error())
	case errors.Is(err, session.ErrInvalidCredentials):
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid credentials", err.Error())
	case errors.Is(err, services.ErrForbidden):
		utils.WriteErrorResponse(w, http.StatusForbidden, "Forbidden", "You do not have access to this resource")
	case errors.Is(err, store.ErrNotFound):
		utils.WriteErrorResponse(w, http.StatusNotFound, "Not found", "The requested resource does not exist")
	case errors.Is(err, services.ErrLocalTrip):
		utils.WriteErrorResponse(w, http.StatusConflict, "Local trip", err.Error())
	case errors.Is(err, session.ErrEmailTaken):
		utils.WriteErrorResponse(w, http.StatusConflict, "User already exists", err.Error())
	case errors.Is(err, store.ErrConflict):
		utils.WriteErrorResponse(w, http.StatusConflict, "Conflict", err.Error())
	case errors.Is(err, store.ErrUnavailable):
		utils.WriteErrorResponse(w, http.StatusServiceUnavailable, "Service unavailable", "The database is not reachable, try again later")
	default:
		logger.Error("Request failed: %v", err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "An unexpected error occurred")
	}
}

// identity returns the caller set by the auth middleware, writing a 401 when absent.
func identity(w http.ResponseWriter, r *http.Request) (session.Identity, bool) {
	who, ok := session.FromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "User not authenticated")
		return session.Identity{}, false
	}
	return who, true
}

func pathVar(r *http.Request, name string) string {
	return mux.Vars(r)[name]
}

// queryInt reads a non-negative integer query parameter, falling back to def.
func queryInt(r *http.Request, name string, def int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}
