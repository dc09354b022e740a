package middleware

import "net/http"

// CORSMiddleware opens the API to the outreach clients. The service runs on
// the clinic's own device, so the origin list stays permissive.
type CORSMiddleware struct {
	allowedOrigin string
}

func NewCORSMiddleware() *CORSMiddleware {
	return &CORSMiddleware{allowedOrigin: "*"}
}

func (m *CORSMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		headers := w.Header()
		headers.Set("Access-Control-Allow-Origin", m.allowedOrigin)
		headers.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		headers.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if req.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, req)
	})
}
