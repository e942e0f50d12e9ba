package handlers

import (
	"net/http"

	"github.com/mhartig/microshop/internal/utils/response"
)

// Root answers the service banner on GET /.
func Root(serviceName string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.WriteJson(w, http.StatusOK, map[string]string{
			"service": serviceName,
			"status":  "running",
		})
	}
}
