package client

import (
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// Doctor represents a doctor profile
type Doctor struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Specialty string    `json:"specialty"`
	Bio       string    `json:"bio"`
	PhotoPath string    `json:"photo_path"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Center represents a physical treatment center
type Center struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	Phone     string    `json:"phone"`
	ImagePath string    `json:"image_path"`
	Team      []Doctor  `json:"team,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CenterDraft holds the writable fields of a center. ImagePath, when set,
// points at a local image file to upload.
type CenterDraft struct {
	Name      string
	Address   string
	City      string
	Phone     string
	ImagePath string
}

func (d CenterDraft) formFields() map[string]string {
	return map[string]string{
		"name":    d.Name,
		"address": d.Address,
		"city":    d.City,
		"phone":   d.Phone,
	}
}

// ListCenters returns all centers with their doctor teams
func (c *Client) ListCenters() ([]Center, error) {
	var centers []Center
	if err := c.get("/api/centers", &centers, "failed to list centers"); err != nil {
		return nil, err
	}
	return centers, nil
}

// CreateCenter creates a center, uploading the image if one is given
func (c *Client) CreateCenter(draft CenterDraft) (*Center, error) {
	var image *formFile
	if draft.ImagePath != "" {
		image = &formFile{field: "image", path: draft.ImagePath}
	}

	var center Center
	err := c.doForm(http.MethodPost, "/api/centers", draft.formFields(), image,
		&center, http.StatusCreated, "failed to create center")
	if err != nil {
		return nil, err
	}
	return &center, nil
}

// UpdateCenter updates a center. Empty draft fields are left unchanged.
func (c *Client) UpdateCenter(id string, draft CenterDraft) (*Center, error) {
	var image *formFile
	if draft.ImagePath != "" {
		image = &formFile{field: "image", path: draft.ImagePath}
	}

	var center Center
	err := c.doForm(http.MethodPut, fmt.Sprintf("/api/centers/%s", id), draft.formFields(), image,
		&center, http.StatusOK, "failed to update center")
	if err != nil {
		return nil, err
	}
	return &center, nil
}

// DeleteCenter removes a center by ID
func (c *Client) DeleteCenter(id string) error {
	return c.delete(fmt.Sprintf("/api/centers/%s", id), "failed to delete center")
}

// AssignDoctorRequest represents a doctor-to-center team assignment
type AssignDoctorRequest struct {
	DoctorID string `json:"doctor_id"`
}

// AssignDoctor adds a doctor to a center's team
func (c *Client) AssignDoctor(centerID, doctorID string) (*Center, error) {
	var center Center
	err := c.doJSON(http.MethodPost, fmt.Sprintf("/api/centers/%s/team", centerID),
		AssignDoctorRequest{DoctorID: doctorID}, &center, http.StatusOK, "failed to assign doctor")
	if err != nil {
		return nil, err
	}
	return &center, nil
}

// UnassignDoctor removes a doctor from a center's team
func (c *Client) UnassignDoctor(centerID, doctorID string) error {
	return c.delete(fmt.Sprintf("/api/centers/%s/team/%s", centerID, doctorID),
		"failed to unassign doctor")
}

// DoctorDraft holds the writable fields of a doctor profile. PhotoPath,
// when set, points at a local image file to upload.
type DoctorDraft struct {
	Name      string
	Specialty string
	Bio       string
	PhotoPath string
}

func (d DoctorDraft) formFields() map[string]string {
	return map[string]string{
		"name":      d.Name,
		"specialty": d.Specialty,
		"bio":       d.Bio,
	}
}

// ListDoctors returns all doctor profiles
func (c *Client) ListDoctors() ([]Doctor, error) {
	var doctors []Doctor
	if err := c.get("/api/doctors", &doctors, "failed to list doctors"); err != nil {
		return nil, err
	}
	return doctors, nil
}

// CreateDoctor creates a doctor profile, uploading the photo if one is given
func (c *Client) CreateDoctor(draft DoctorDraft) (*Doctor, error) {
	var photo *formFile
	if draft.PhotoPath != "" {
		photo = &formFile{field: "photo", path: draft.PhotoPath}
	}

	var doctor Doctor
	err := c.doForm(http.MethodPost, "/api/doctors", draft.formFields(), photo,
		&doctor, http.StatusCreated, "failed to create doctor")
	if err != nil {
		return nil, err
	}
	return &doctor, nil
}

// UpdateDoctor updates a doctor profile. Empty draft fields are left unchanged.
func (c *Client) UpdateDoctor(id string, draft DoctorDraft) (*Doctor, error) {
	var photo *formFile
	if draft.PhotoPath != "" {
		photo = &formFile{field: "photo", path: draft.PhotoPath}
	}

	var doctor Doctor
	err := c.doForm(http.MethodPut, fmt.Sprintf("/api/doctors/%s", id), draft.formFields(), photo,
		&doctor, http.StatusOK, "failed to update doctor")
	if err != nil {
		return nil, err
	}
	return &doctor, nil
}

// DeleteDoctor removes a doctor profile by ID
func (c *Client) DeleteDoctor(id string) error {
	return c.delete(fmt.Sprintf("/api/doctors/%s", id), "failed to delete doctor")
}

// Product represents a shop item
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PriceCents  int64     `json:"price_cents"`
	Stock       int       `json:"stock"`
	ImagePath   string    `json:"image_path"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductDraft holds the writable fields of a shop item. PriceCents and
// Stock are pointers so updates can leave them alone.
type ProductDraft struct {
	Name        string
	Description string
	PriceCents  *int64
	Stock       *int
	ImagePath   string
}

func (d ProductDraft) formFields() map[string]string {
	fields := map[string]string{
		"name":        d.Name,
		"description": d.Description,
	}
	if d.PriceCents != nil {
		fields["price_cents"] = strconv.FormatInt(*d.PriceCents, 10)
	}
	if d.Stock != nil {
		fields["stock"] = strconv.Itoa(*d.Stock)
	}
	return fields
}

// ListProducts returns all shop items
func (c *Client) ListProducts() ([]Product, error) {
	var products []Product
	if err := c.get("/api/products", &products, "failed to list products"); err != nil {
		return nil, err
	}
	return products, nil
}

// CreateProduct creates a shop item, uploading the image if one is given
func (c *Client) CreateProduct(draft ProductDraft) (*Product, error) {
	var image *formFile
	if draft.ImagePath != "" {
		image = &formFile{field: "image", path: draft.ImagePath}
	}

	var product Product
	err := c.doForm(http.MethodPost, "/api/products", draft.formFields(), image,
		&product, http.StatusCreated, "failed to create product")
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct updates a shop item. Empty draft fields are left unchanged.
func (c *Client) UpdateProduct(id string, draft ProductDraft) (*Product, error) {
	var image *formFile
	if draft.ImagePath != "" {
		image = &formFile{field: "image", path: draft.ImagePath}
	}

	var product Product
	err := c.doForm(http.MethodPut, fmt.Sprintf("/api/products/%s", id), draft.formFields(), image,
		&product, http.StatusOK, "failed to update product")
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct removes a shop item by ID
func (c *Client) DeleteProduct(id string) error {
	return c.delete(fmt.Sprintf("/api/products/%s", id), "failed to delete product")
}
