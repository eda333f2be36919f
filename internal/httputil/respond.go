package httputil

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"autoschool/internal/models"
)

// JSON writes v as a JSON response body with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// Message writes a {"message": ...} body, the shape used by membership and
// other status-reporting endpoints.
func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"message": msg})
}

// Error maps a domain error to its HTTP status and writes an
// {"error": reason} body. Unrecognized errors become 500s.
func Error(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, models.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrForbidden):
		status = http.StatusForbidden
	default:
		log.Printf("Internal error: %v", err)
	}
	JSON(w, status, map[string]string{"error": err.Error()})
}
