package response

import (
	"encoding/json"
	"net/http"

	"github.com/Niiaks/pixcode/internal/middleware"
	"github.com/Niiaks/pixcode/pkg/types"
)

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Error writes an ErrorResponse; field may be empty.
func Error(w http.ResponseWriter, r *http.Request, status int, msg, field string) {
	JSON(w, status, types.ErrorResponse{
		Error:     msg,
		Field:     field,
		RequestID: middleware.GetRequestIDFromContext(r.Context()),
	})
}
