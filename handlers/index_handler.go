package handlers

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/upb/equipment-portal/app"
	"github.com/upb/equipment-portal/middleware"
	"github.com/upb/equipment-portal/utils"
)

// IndexResponse is the body of GET /
type IndexResponse struct {
	Name     string               `json:"name"`
	Version  string               `json:"version"`
	Identity *middleware.Identity `json:"identity,omitempty"`
}

// IndexHandler describes the service and, when known, the caller
func IndexHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteOK(w, IndexResponse{
			Name:     app.Name,
			Version:  app.Version,
			Identity: middleware.GetIdentityFromContext(r.Context()),
		})
	}
}

// NotFoundHandler serves files from dir for unmatched GET and HEAD requests
// and answers everything else with a JSON 404. An empty dir disables files.
func NotFoundHandler(dir string) http.HandlerFunc {
	var files http.Handler
	if dir != "" {
		files = http.FileServer(http.Dir(dir))
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if files != nil && (r.Method == http.MethodGet || r.Method == http.MethodHead) && staticFileExists(dir, r.URL.Path) {
			files.ServeHTTP(w, r)
			return
		}
		_ = utils.WriteNotFound(w, "Endpoint not found")
	}
}

// staticFileExists reports whether urlPath names a regular file under dir
func staticFileExists(dir, urlPath string) bool {
	clean := path.Clean("/" + urlPath)
	if strings.HasSuffix(urlPath, "/") {
		clean = path.Join(clean, "index.html")
	}
	info, err := os.Stat(filepath.Join(dir, filepath.FromSlash(clean)))
	return err == nil && !info.IsDir()
}
