package model

// DefaultPostCategory is used when a post is created without a category.
const DefaultPostCategory = "عام"

// Post is a news/blog entry shown on the campaign site.
type Post struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Excerpt  string  `json:"excerpt"`
	Content  string  `json:"content"`
	Category string  `json:"category"`
	Image    *string `json:"image"` // null when the post has no image
	Date     string  `json:"date"`  // human readable, fixed at creation
}

// PostInput carries the client-supplied fields for creating a post.
type PostInput struct {
	Title    string `json:"title"`
	Excerpt  string `json:"excerpt"`
	Content  string `json:"content"`
	Category string `json:"category"`
	Image    string `json:"image"`
}

// ImageURL returns the post image or an empty string.
func (p *Post) ImageURL() string {
	if p.Image == nil {
		return ""
	}
	return *p.Image
}

// Clone returns a copy that shares no memory with p.
func (p *Post) Clone() *Post {
	c := *p
	if p.Image != nil {
		img := *p.Image
		c.Image = &img
	}
	return &c
}
