package client

import (
	"fmt"
	"net/http"
	"time"
)

// Aligner represents the aligner offering with its media galleries
type Aligner struct {
	ID         string    `json:"id"`
	Price      string    `json:"price"`
	ImagePaths []string  `json:"image_paths"`
	VideoPaths []string  `json:"video_paths"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func galleryForm(imagePaths, videoPaths []string) []formFile {
	var files []formFile
	for _, p := range imagePaths {
		files = append(files, formFile{field: "images", path: p})
	}
	for _, p := range videoPaths {
		files = append(files, formFile{field: "videos", path: p})
	}
	return files
}

// ListAligners returns all aligner offerings
func (c *Client) ListAligners() ([]Aligner, error) {
	var aligners []Aligner
	if err := c.get("/api/aligners", &aligners, "failed to list aligners"); err != nil {
		return nil, err
	}
	return aligners, nil
}

// CreateAligner creates an aligner offering, uploading the given local image
// and video files as its galleries
func (c *Client) CreateAligner(price string, imagePaths, videoPaths []string) (*Aligner, error) {
	var aligner Aligner
	err := c.doMultiForm(http.MethodPost, "/api/aligners",
		map[string]string{"price": price}, galleryForm(imagePaths, videoPaths),
		&aligner, http.StatusCreated, "failed to create aligner")
	if err != nil {
		return nil, err
	}
	return &aligner, nil
}

// UpdateAligner updates an aligner offering. An empty price is left
// unchanged; non-empty galleries replace the stored ones wholesale.
func (c *Client) UpdateAligner(id, price string, imagePaths, videoPaths []string) (*Aligner, error) {
	fields := map[string]string{}
	if price != "" {
		fields["price"] = price
	}

	var aligner Aligner
	err := c.doMultiForm(http.MethodPatch, fmt.Sprintf("/api/aligners/%s", id),
		fields, galleryForm(imagePaths, videoPaths),
		&aligner, http.StatusOK, "failed to update aligner")
	if err != nil {
		return nil, err
	}
	return &aligner, nil
}

// DeleteAligner removes an aligner offering by ID
func (c *Client) DeleteAligner(id string) error {
	return c.delete(fmt.Sprintf("/api/aligners/%s", id), "failed to delete aligner")
}

// Transformation represents a before/after showcase post
type Transformation struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImagePath   string    `json:"image_path"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TransformationDraft holds the writable fields of a showcase post.
// ImagePath, when set, points at a local image file to upload.
type TransformationDraft struct {
	Title       string
	Description string
	ImagePath   string
}

func (d TransformationDraft) formFields() map[string]string {
	return map[string]string{
		"title":       d.Title,
		"description": d.Description,
	}
}

// ListTransformations returns all before/after showcase posts
func (c *Client) ListTransformations() ([]Transformation, error) {
	var posts []Transformation
	if err := c.get("/api/transformations", &posts, "failed to list transformations"); err != nil {
		return nil, err
	}
	return posts, nil
}

// CreateTransformation creates a showcase post with its image
func (c *Client) CreateTransformation(draft TransformationDraft) (*Transformation, error) {
	var post Transformation
	err := c.doForm(http.MethodPost, "/api/transformations", draft.formFields(),
		&formFile{field: "image", path: draft.ImagePath},
		&post, http.StatusCreated, "failed to create transformation")
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdateTransformation updates a showcase post. Empty draft fields are left
// unchanged server-side.
func (c *Client) UpdateTransformation(id string, draft TransformationDraft) (*Transformation, error) {
	var image *formFile
	if draft.ImagePath != "" {
		image = &formFile{field: "image", path: draft.ImagePath}
	}

	var post Transformation
	err := c.doForm(http.MethodPut, fmt.Sprintf("/api/transformations/%s", id),
		draft.formFields(), image,
		&post, http.StatusOK, "failed to update transformation")
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// DeleteTransformation removes a showcase post by ID
func (c *Client) DeleteTransformation(id string) error {
	return c.delete(fmt.Sprintf("/api/transformations/%s", id), "failed to delete transformation")
}

// BiteType represents a treatable bite condition with explainer videos
type BiteType struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	VideoPaths []string  `json:"video_paths"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ListBiteTypes returns all bite types
func (c *Client) ListBiteTypes() ([]BiteType, error) {
	var biteTypes []BiteType
	if err := c.get("/api/bite-types", &biteTypes, "failed to list bite types"); err != nil {
		return nil, err
	}
	return biteTypes, nil
}

// CreateBiteType creates a bite type, uploading its explainer videos
func (c *Client) CreateBiteType(title string, videoPaths []string) (*BiteType, error) {
	var biteType BiteType
	err := c.doMultiForm(http.MethodPost, "/api/bite-types",
		map[string]string{"title": title}, galleryForm(nil, videoPaths),
		&biteType, http.StatusCreated, "failed to create bite type")
	if err != nil {
		return nil, err
	}
	return &biteType, nil
}

// RenameBiteType changes a bite type's title, leaving its videos alone
func (c *Client) RenameBiteType(id, title string) (*BiteType, error) {
	var biteType BiteType
	err := c.doJSON(http.MethodPatch, fmt.Sprintf("/api/bite-types/%s", id),
		map[string]string{"title": title},
		&biteType, http.StatusOK, "failed to rename bite type")
	if err != nil {
		return nil, err
	}
	return &biteType, nil
}

// DeleteBiteType removes a bite type by ID
func (c *Client) DeleteBiteType(id string) error {
	return c.delete(fmt.Sprintf("/api/bite-types/%s", id), "failed to delete bite type")
}

// ContactVideo represents one video shown on the contact page
type ContactVideo struct {
	ID        string    `json:"id"`
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"created_at"`
}

// ListContactVideos returns all contact page videos
func (c *Client) ListContactVideos() ([]ContactVideo, error) {
	var videos []ContactVideo
	if err := c.get("/api/contact-videos", &videos, "failed to list contact videos"); err != nil {
		return nil, err
	}
	return videos, nil
}

// UploadContactVideos uploads one or more contact page videos
func (c *Client) UploadContactVideos(videoPaths []string) ([]ContactVideo, error) {
	var videos []ContactVideo
	err := c.doMultiForm(http.MethodPost, "/api/contact-videos",
		nil, galleryForm(nil, videoPaths),
		&videos, http.StatusCreated, "failed to upload contact videos")
	if err != nil {
		return nil, err
	}
	return videos, nil
}

// DeleteContactVideo removes a contact page video by ID
func (c *Client) DeleteContactVideo(id string) error {
	return c.delete(fmt.Sprintf("/api/contact-videos/%s", id), "failed to delete contact video")
}
