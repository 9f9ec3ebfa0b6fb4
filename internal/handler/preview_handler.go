package handler

import (
	"bytes"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/ahhmedWalid1/anas-haloul-website/internal/model"
	"github.com/ahhmedWalid1/anas-haloul-website/internal/service"
)

// defaultPreviewImage is used when a post has neither an image nor an image URL in its content.
const defaultPreviewImage = "/assets/candidate-portrait.jpg"

var contentImageURL = regexp.MustCompile(`(?i)https?://[^\s]+\.(?:jpg|jpeg|png|gif|webp)`)

var previewPage = template.Must(template.New("preview").Parse(`<!doctype html>
<html lang="ar" dir="rtl">
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>{{.Title}}</title>
    <meta name="description" content="{{.Description}}" />
    <meta property="og:type" content="article" />
    <meta property="og:title" content="{{.Title}}" />
    <meta property="og:description" content="{{.Description}}" />
    {{- if .Image}}
    <meta property="og:image" content="{{.Image}}" />
    {{- end}}
    <meta property="og:url" content="{{.PageURL}}" />
    <meta name="twitter:card" content="summary_large_image" />
    {{- if .Image}}
    <meta name="twitter:image" content="{{.Image}}" />
    {{- end}}
    <meta http-equiv="refresh" content="0; url={{.Target}}" />
    <script>location.replace({{.Target}});</script>
  </head>
  <body></body>
</html>
`))

type previewData struct {
	Title       string
	Description string
	Image       string
	PageURL     string
	Target      string
}

// PreviewHandler renders social-media preview pages for posts.
type PreviewHandler struct {
	postService service.PostService
	siteURL     string       // empty = infer from the request
	next        http.Handler // used for unknown posts
}

// NewPreviewHandler creates a PreviewHandler. Requests for unknown posts are
// passed to next; a nil next redirects to the post's SPA route.
func NewPreviewHandler(postService service.PostService, siteURL string, next http.Handler) *PreviewHandler {
	if next == nil {
		next = http.HandlerFunc(redirectToBlog)
	}
	return &PreviewHandler{postService: postService, siteURL: strings.TrimRight(siteURL, "/"), next: next}
}

// Preview handles GET /api/posts/{id}/preview.
func (h *PreviewHandler) Preview(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	post, err := h.postService.GetByID(r.Context(), id)
	if err != nil {
		h.next.ServeHTTP(w, r)
		return
	}

	base := h.baseURL(r)
	var buf bytes.Buffer
	if err := previewPage.Execute(&buf, previewData{
		Title:       post.Title,
		Description: post.Excerpt,
		Image:       previewImage(post, base),
		PageURL:     base + blogPath(id),
		Target:      blogPath(id),
	}); err != nil {
		slog.Error("render preview failed", "error", err, "post_id", id)
		h.next.ServeHTTP(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'unsafe-inline'; frame-ancestors 'none'")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *PreviewHandler) baseURL(r *http.Request) string {
	if h.siteURL != "" {
		return h.siteURL
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if p := r.Header.Get("X-Forwarded-Proto"); p == "https" || p == "http" {
		scheme = p
	}
	return scheme + "://" + r.Host
}

// previewImage picks the post image, then the first image URL in the content,
// then the candidate portrait. Relative paths are made absolute.
func previewImage(post *model.Post, base string) string {
	img := post.ImageURL()
	if img == "" {
		img = contentImageURL.FindString(post.Content)
	}
	if img == "" {
		img = defaultPreviewImage
	}
	if strings.HasPrefix(img, "http://") || strings.HasPrefix(img, "https://") {
		return img
	}
	if !strings.HasPrefix(img, "/") {
		img = "/" + img
	}
	return base + img
}

func blogPath(id string) string {
	return "/blog/" + url.PathEscape(id)
}

func redirectToBlog(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, blogPath(r.PathValue("id")), http.StatusFound)
}
