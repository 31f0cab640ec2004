package handler

import "net/http"

// RouterConfig wires the handlers into the route table.
type RouterConfig struct {
	Contacts *ContactHandler

	// SubmitLimit wraps POST /api/contact (typically RateLimiter.Middleware).
	// Nil means no limit.
	SubmitLimit func(http.Handler) http.Handler

	// RequireAdmin wraps the inbox routes. Nil leaves them open.
	RequireAdmin func(http.Handler) http.Handler

	// Site serves everything outside /api. Nil disables static serving.
	Site http.Handler
}

// Router builds the full HTTP handler: CORS, security headers and request
// logging around the API and the static site.
func (h *Handler) Router(cfg RouterConfig) http.Handler {
	admin := cfg.RequireAdmin
	if admin == nil {
		admin = func(next http.Handler) http.Handler { return next }
	}
	submit := http.Handler(http.HandlerFunc(cfg.Contacts.Submit))
	if cfg.SubmitLimit != nil {
		submit = cfg.SubmitLimit(submit)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", h.Health)
	mux.Handle("POST /api/contact", submit)
	mux.Handle("GET /api/contacts", admin(http.HandlerFunc(cfg.Contacts.List)))
	mux.Handle("DELETE /api/contacts/{id}", admin(http.HandlerFunc(cfg.Contacts.Delete)))
	if cfg.Site != nil {
		mux.Handle("GET /", cfg.Site)
	}

	return h.CORS(SecurityHeaders(RequestLogger(mux)))
}
