package client

import (
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// ListUsers returns all platform accounts
func (c *Client) ListUsers() ([]UserDetail, error) {
	var users []UserDetail
	if err := c.get("/api/users", &users, "failed to list users"); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser returns one account by ID
func (c *Client) GetUser(id string) (*UserDetail, error) {
	var user UserDetail
	if err := c.get(fmt.Sprintf("/api/users/%s", id), &user, "failed to fetch user"); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes an account by ID
func (c *Client) DeleteUser(id string) error {
	return c.delete(fmt.Sprintf("/api/users/%s", id), "failed to delete user")
}

// CoinTransaction represents one signed entry in a user's coin ledger
type CoinTransaction struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Amount    int64     `json:"amount"`
	Reason    string    `json:"reason"`
	GrantedBy string    `json:"granted_by"`
	CreatedAt time.Time `json:"created_at"`
}

// CoinLedger bundles a user's transactions with the computed balance
type CoinLedger struct {
	Balance      int64             `json:"balance"`
	Transactions []CoinTransaction `json:"transactions"`
}

// GetCoinLedger returns a user's coin ledger and balance
func (c *Client) GetCoinLedger(userID string) (*CoinLedger, error) {
	var ledger CoinLedger
	if err := c.get(fmt.Sprintf("/api/users/%s/coins", userID), &ledger, "failed to fetch coin ledger"); err != nil {
		return nil, err
	}
	return &ledger, nil
}

// GrantCoinsRequest represents a coin grant or revocation. Amount is
// signed: positive grants, negative revokes.
type GrantCoinsRequest struct {
	Amount int64  `json:"amount"`
	Reason string `json:"reason"`
}

// GrantCoins appends a grant (or revocation, with negative amount) to a
// user's coin ledger
func (c *Client) GrantCoins(userID string, amount int64, reason string) (*CoinTransaction, error) {
	var transaction CoinTransaction
	err := c.doJSON(http.MethodPost, fmt.Sprintf("/api/users/%s/coins", userID),
		GrantCoinsRequest{Amount: amount, Reason: reason},
		&transaction, http.StatusCreated, "failed to grant coins")
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}

// Ticket represents a support ticket
type Ticket struct {
	ID         string      `json:"id"`
	UserID     string      `json:"user_id"`
	Subject    string      `json:"subject"`
	Body       string      `json:"body"`
	Status     string      `json:"status"`
	AdminNote  string      `json:"admin_note"`
	ResolvedAt *time.Time  `json:"resolved_at"`
	User       *UserDetail `json:"user,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// ListTickets returns support tickets, optionally filtered by status
func (c *Client) ListTickets(status string) ([]Ticket, error) {
	path := "/api/tickets"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}

	var tickets []Ticket
	if err := c.get(path, &tickets, "failed to list tickets"); err != nil {
		return nil, err
	}
	return tickets, nil
}

// UpdateTicketRequest represents a ticket status/note update
type UpdateTicketRequest struct {
	Status    string `json:"status,omitempty"`
	AdminNote string `json:"admin_note,omitempty"`
}

// UpdateTicket changes a ticket's status and/or admin note
func (c *Client) UpdateTicket(id, status, adminNote string) (*Ticket, error) {
	var ticket Ticket
	err := c.doJSON(http.MethodPatch, fmt.Sprintf("/api/tickets/%s", id),
		UpdateTicketRequest{Status: status, AdminNote: adminNote},
		&ticket, http.StatusOK, "failed to update ticket")
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

// Meet represents a scheduled video consultation
type Meet struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	DoctorID    string    `json:"doctor_id"`
	MeetURL     string    `json:"meet_url"`
	ScheduledAt time.Time `json:"scheduled_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListMeets returns all scheduled meets
func (c *Client) ListMeets() ([]Meet, error) {
	var meets []Meet
	if err := c.get("/api/meets", &meets, "failed to list meets"); err != nil {
		return nil, err
	}
	return meets, nil
}

// AssignMeetRequest represents a new consultation booking
type AssignMeetRequest struct {
	UserID      string    `json:"user_id"`
	DoctorID    string    `json:"doctor_id"`
	MeetURL     string    `json:"meet_url"`
	ScheduledAt time.Time `json:"scheduled_at"`
}

// AssignMeet books a video consultation between a user and a doctor
func (c *Client) AssignMeet(userID, doctorID, meetURL string, scheduledAt time.Time) (*Meet, error) {
	var meet Meet
	err := c.doJSON(http.MethodPost, "/api/meets",
		AssignMeetRequest{UserID: userID, DoctorID: doctorID, MeetURL: meetURL, ScheduledAt: scheduledAt},
		&meet, http.StatusCreated, "failed to assign meet")
	if err != nil {
		return nil, err
	}
	return &meet, nil
}

// DeleteMeet cancels a scheduled meet by ID
func (c *Client) DeleteMeet(id string) error {
	return c.delete(fmt.Sprintf("/api/meets/%s", id), "failed to delete meet")
}

// PlatformConfig represents the server's runtime configuration
type PlatformConfig struct {
	ID                  string     `json:"id"`
	CleanupSchedule     string     `json:"cleanup_schedule"`
	LastCleanupAt       *time.Time `json:"last_cleanup_at"`
	NextCleanupAt       *time.Time `json:"next_cleanup_at"`
	TicketAutoCloseDays int        `json:"ticket_auto_close_days"`
	CreatedAt           time.Time  `json:"created_at"`
}

// GetConfig returns the server's runtime configuration
func (c *Client) GetConfig() (*PlatformConfig, error) {
	var cfg PlatformConfig
	if err := c.get("/api/config", &cfg, "failed to fetch config"); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// UpdateConfigRequest represents a partial configuration update
type UpdateConfigRequest struct {
	CleanupSchedule     *string `json:"cleanupSchedule,omitempty"`
	TicketAutoCloseDays *int    `json:"ticketAutoCloseDays,omitempty"`
}

// UpdateConfig applies a partial configuration update. Nil fields are left
// unchanged.
func (c *Client) UpdateConfig(req UpdateConfigRequest) (*PlatformConfig, error) {
	var cfg PlatformConfig
	err := c.doJSON(http.MethodPatch, "/api/config", req, &cfg, http.StatusOK, "failed to update config")
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SystemInfo represents platform-wide counters for the dashboard
type SystemInfo struct {
	Version string `json:"version"`

	Users     int64 `json:"users"`
	Doctors   int64 `json:"doctors"`
	Centers   int64 `json:"centers"`
	Products  int64 `json:"products"`
	Blogs     int64 `json:"blogs"`
	Carousels int64 `json:"carousels"`

	OpenTickets   int64 `json:"open_tickets"`
	UpcomingMeets int64 `json:"upcoming_meets"`
}

// GetSystemInfo returns platform version and entity counts
func (c *Client) GetSystemInfo() (*SystemInfo, error) {
	var info SystemInfo
	if err := c.get("/api/system/info", &info, "failed to fetch system info"); err != nil {
		return nil, err
	}
	return &info, nil
}
