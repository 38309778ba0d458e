package client

import (
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// Carousel represents a homepage carousel slide
type Carousel struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	ImagePath string    `json:"image_path"`
	LinkURL   string    `json:"link_url"`
	Position  int       `json:"position"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// ListCarousels returns all carousel slides
func (c *Client) ListCarousels() ([]Carousel, error) {
	var carousels []Carousel
	if err := c.get("/api/carousels", &carousels, "failed to list carousels"); err != nil {
		return nil, err
	}
	return carousels, nil
}

// CreateCarousel uploads a new carousel slide with its image
func (c *Client) CreateCarousel(title, linkURL string, position int, imagePath string) (*Carousel, error) {
	fields := map[string]string{
		"title":    title,
		"link_url": linkURL,
		"position": strconv.Itoa(position),
	}

	var carousel Carousel
	err := c.doForm(http.MethodPost, "/api/carousels", fields,
		&formFile{field: "image", path: imagePath},
		&carousel, http.StatusCreated, "failed to create carousel")
	if err != nil {
		return nil, err
	}
	return &carousel, nil
}

// DeleteCarousel removes a carousel slide by ID
func (c *Client) DeleteCarousel(id string) error {
	return c.delete(fmt.Sprintf("/api/carousels/%s", id), "failed to delete carousel")
}

// Blog represents a blog post
type Blog struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Body      string    `json:"body"`
	CoverPath string    `json:"cover_path"`
	Author    string    `json:"author"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BlogDraft holds the writable fields of a blog post. CoverPath, when set,
// points at a local image file to upload. Published is a pointer so updates
// can leave the flag alone.
type BlogDraft struct {
	Title     string
	Slug      string
	Body      string
	Author    string
	Published *bool
	CoverPath string
}

func (d BlogDraft) formFields() map[string]string {
	fields := map[string]string{
		"title":  d.Title,
		"body":   d.Body,
		"author": d.Author,
	}
	if d.Published != nil {
		fields["published"] = strconv.FormatBool(*d.Published)
	}
	return fields
}

// ListBlogs returns all blog posts
func (c *Client) ListBlogs() ([]Blog, error) {
	var blogs []Blog
	if err := c.get("/api/blogs", &blogs, "failed to list blogs"); err != nil {
		return nil, err
	}
	return blogs, nil
}

// CreateBlog creates a blog post, uploading the cover image if one is given
func (c *Client) CreateBlog(draft BlogDraft) (*Blog, error) {
	fields := draft.formFields()
	fields["slug"] = draft.Slug

	var cover *formFile
	if draft.CoverPath != "" {
		cover = &formFile{field: "cover", path: draft.CoverPath}
	}

	var blog Blog
	err := c.doForm(http.MethodPost, "/api/blogs", fields, cover,
		&blog, http.StatusCreated, "failed to create blog")
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

// UpdateBlog updates a blog post. Empty draft fields are left unchanged
// server-side; the slug is immutable and ignored here.
func (c *Client) UpdateBlog(id string, draft BlogDraft) (*Blog, error) {
	var cover *formFile
	if draft.CoverPath != "" {
		cover = &formFile{field: "cover", path: draft.CoverPath}
	}

	var blog Blog
	err := c.doForm(http.MethodPut, fmt.Sprintf("/api/blogs/%s", id), draft.formFields(), cover,
		&blog, http.StatusOK, "failed to update blog")
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

// DeleteBlog removes a blog post by ID
func (c *Client) DeleteBlog(id string) error {
	return c.delete(fmt.Sprintf("/api/blogs/%s", id), "failed to delete blog")
}
