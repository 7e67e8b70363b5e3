package middleware

import (
	"mime"
	"net/http"

	"github.com/alexanderdross/V0-Desiree/pkg/httputil"
)

// RequireJSON rejects bodies on POST, PUT and PATCH that are not
// application/json with 415. Browsers cannot send that content type
// cross-site without a CORS preflight.
func RequireJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
			mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
			if err != nil || mt != "application/json" {
				httputil.WriteJSON(w, http.StatusUnsupportedMediaType, httputil.Response{
					Error: &httputil.ErrorResponse{
						Code:    "UNSUPPORTED_MEDIA_TYPE",
						Message: "request body must be application/json",
					},
				})
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
