package handlers

import "net/http"

// Home reports that the backend is up.
func Home(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "online",
		"system": "Zelig Backend",
	})
}

// Health answers load balancer health checks.
func Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, "Not found", http.StatusNotFound)
}

func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
}
