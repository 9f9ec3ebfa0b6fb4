package handler

import (
	"net/http"

	"github.com/ahhmedWalid1/anas-haloul-website/pkg/auth"
)

// Routes bundles the handlers served by the API.
type Routes struct {
	Base       *Handler
	AdminToken string
	Posts      *PostHandler
	Contacts   *ContactHandler
	Uploads    *UploadHandler
	Preview    *PreviewHandler
}

// Mux registers every route and wraps them with the shared middleware.
func (rt Routes) Mux() http.Handler {
	requireAdmin := auth.RequireAdmin(rt.AdminToken)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", rt.Base.Health)

	// posts: list, get and preview are public
	mux.HandleFunc("GET /api/posts", rt.Posts.List)
	mux.HandleFunc("GET /api/posts/{id}", rt.Posts.Get)
	mux.HandleFunc("GET /api/posts/{id}/preview", rt.Preview.Preview)
	mux.Handle("POST /api/posts", requireAdmin(http.HandlerFunc(rt.Posts.Create)))
	mux.Handle("DELETE /api/posts/{id}", requireAdmin(http.HandlerFunc(rt.Posts.Delete)))

	mux.Handle("POST /api/upload", requireAdmin(http.HandlerFunc(rt.Uploads.Upload)))

	mux.HandleFunc("POST /api/contact", rt.Contacts.Submit)
	mux.Handle("GET /api/contacts", requireAdmin(http.HandlerFunc(rt.Contacts.AdminList)))

	return RequestLogger(Recover(SecurityHeaders(rt.Base.CORS(mux))))
}
