package models

import (
	"time"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

// Ticket status values
const (
	TicketStatusOpen     = "open"
	TicketStatusPending  = "pending"
	TicketStatusResolved = "resolved"
	TicketStatusClosed   = "closed"
)

// User roles
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// BaseModel provides common fields and auto-generated ULID for all models
type BaseModel struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(26)"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// BeforeCreate generates a ULID for the ID field if it's empty
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = ulid.Make().String()
	}
	return nil
}

// Config represents the global configuration for the deployment
// This is a singleton model (only one row should exist)
type Config struct {
	BaseModel
	// Authentication configuration
	JWTSecret string `json:"-" gorm:"type:varchar(64);not null"` // Auto-generated on first setup (64 hex chars)

	// Housekeeping configuration
	CleanupSchedule string     `json:"cleanup_schedule"` // Cron expression for the nightly sweep, e.g. "0 3 * * *", empty = disabled
	LastCleanupAt   *time.Time `json:"last_cleanup_at"`
	NextCleanupAt   *time.Time `json:"next_cleanup_at"` // Calculated from cron schedule

	// Ticket handling
	TicketAutoCloseDays int `json:"ticket_auto_close_days" gorm:"not null;default:7"` // Days a resolved ticket stays open before auto-close
}

// User represents a platform account (patients and administrators share the table)
type User struct {
	BaseModel
	Email        string    `json:"email" gorm:"unique;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Role         string    `json:"role" gorm:"not null;default:user"` // "admin" or "user"
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// IsAdmin reports whether the account carries the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Carousel represents a home-screen advertisement image
type Carousel struct {
	BaseModel
	Title     string `json:"title" gorm:"not null"`
	ImagePath string `json:"image_path" gorm:"not null"`
	LinkURL   string `json:"link_url"`
	Position  int    `json:"position" gorm:"not null;default:0"`
	Active    bool   `json:"active" gorm:"not null;default:true"`
}

// Blog represents a published article
type Blog struct {
	BaseModel
	Title     string    `json:"title" gorm:"not null"`
	Slug      string    `json:"slug" gorm:"unique;not null"`
	Body      string    `json:"body" gorm:"type:text;not null"`
	CoverPath string    `json:"cover_path"`
	Author    string    `json:"author"`
	Published bool      `json:"published" gorm:"not null;default:false"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// Center represents a clinic listing
type Center struct {
	BaseModel
	Name      string    `json:"name" gorm:"not null"`
	Address   string    `json:"address" gorm:"not null"`
	City      string    `json:"city" gorm:"not null"`
	Phone     string    `json:"phone"`
	ImagePath string    `json:"image_path"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Team []Doctor `json:"team,omitempty" gorm:"many2many:center_doctors"`
}

// Product represents a shop item
type Product struct {
	BaseModel
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description" gorm:"type:text"`
	PriceCents  int64     `json:"price_cents" gorm:"not null"`
	Stock       int       `json:"stock" gorm:"not null;default:0"`
	ImagePath   string    `json:"image_path"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// Doctor represents a practitioner profile
type Doctor struct {
	BaseModel
	Name      string    `json:"name" gorm:"not null"`
	Specialty string    `json:"specialty" gorm:"not null"`
	Bio       string    `json:"bio" gorm:"type:text"`
	PhotoPath string    `json:"photo_path"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Centers []Center `json:"centers,omitempty" gorm:"many2many:center_doctors"`
}

// Aligner represents the aligner offering shown in the shop: a price blurb
// plus image and video galleries. The storefront shows one; the admin
// surface can stage several.
type Aligner struct {
	BaseModel
	Price      string    `json:"price" gorm:"type:text"`
	ImagePaths []string  `json:"image_paths" gorm:"serializer:json"`
	VideoPaths []string  `json:"video_paths" gorm:"serializer:json"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// Transformation represents a before/after treatment showcase post
type Transformation struct {
	BaseModel
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description" gorm:"type:text"`
	ImagePath   string    `json:"image_path"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// BiteType represents a treatable bite condition with explainer videos
type BiteType struct {
	BaseModel
	Title      string    `json:"title" gorm:"not null"`
	VideoPaths []string  `json:"video_paths" gorm:"serializer:json"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// ContactVideo represents one video shown on the contact page
type ContactVideo struct {
	BaseModel
	Path string `json:"path" gorm:"not null"`
}

// Ticket represents a customer support request
type Ticket struct {
	BaseModel
	UserID     string     `json:"user_id" gorm:"not null"`
	Subject    string     `json:"subject" gorm:"not null"`
	Body       string     `json:"body" gorm:"type:text;not null"`
	Status     string     `json:"status" gorm:"not null;default:open"` // open, pending, resolved, closed
	AdminNote  string     `json:"admin_note" gorm:"type:text"`
	ResolvedAt *time.Time `json:"resolved_at"`
	UpdatedAt  time.Time  `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// CoinTransaction represents one entry in a user's reward ledger.
// Balances are never stored; they are the sum of a user's transactions.
type CoinTransaction struct {
	BaseModel
	UserID    string `json:"user_id" gorm:"not null;index"`
	Amount    int64  `json:"amount" gorm:"not null"` // Signed: positive grants, negative revokes
	Reason    string `json:"reason" gorm:"not null"`
	GrantedBy string `json:"granted_by" gorm:"not null"` // Admin user ID

	// Relationships
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// Meet represents a video meeting link assigned to an appointment
type Meet struct {
	BaseModel
	UserID      string    `json:"user_id" gorm:"not null;index"`
	DoctorID    string    `json:"doctor_id" gorm:"not null"`
	MeetURL     string    `json:"meet_url" gorm:"not null"`
	ScheduledAt time.Time `json:"scheduled_at" gorm:"not null"`

	// Relationships
	User   *User   `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Doctor *Doctor `json:"doctor,omitempty" gorm:"foreignKey:DoctorID;constraint:OnDelete:CASCADE"`
}

// AutoMigrate runs database migrations for all models
func AutoMigrate(db *gorm.DB) error {
	// Collect all models
	models := []interface{}{
		&User{}, &Config{}, &Carousel{}, &Blog{}, &Center{},
		&Product{}, &Doctor{}, &Ticket{}, &CoinTransaction{}, &Meet{},
		&Aligner{}, &Transformation{}, &BiteType{}, &ContactVideo{},
	}

	return db.AutoMigrate(models...)
}

// FindByID safely finds a record by string ID
func FindByID[T any](db *gorm.DB, id string, model *T) error {
	return db.Where("id = ?", id).First(model).Error
}

// CoinBalance sums a user's coin ledger
func CoinBalance(db *gorm.DB, userID string) (int64, error) {
	var balance int64
	err := db.Model(&CoinTransaction{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&balance).Error
	return balance, err
}
