package handler

import (
	"net/http"

	"github.com/oapi-codegen/runtime"
)

// queryParam binds the optional query parameter name into dest, which must
// be a pointer to a pointer (e.g. **int). dest is left nil when the parameter
// is absent. On a malformed value it writes a 400 and returns false.
func queryParam(w http.ResponseWriter, r *http.Request, name string, dest any) bool {
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), dest); err != nil {
		badRequest(w, "invalid query parameter "+name)
		return false
	}
	return true
}

// requiredQueryParam is queryParam for parameters that must be present.
func requiredQueryParam(w http.ResponseWriter, r *http.Request, name string, dest any) bool {
	if err := runtime.BindQueryParameter("form", true, true, name, r.URL.Query(), dest); err != nil {
		badRequest(w, "query parameter "+name+" is required")
		return false
	}
	return true
}
