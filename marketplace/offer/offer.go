package offer

import (
	"time"

	"github.com/redlaboral/portal/pkg/kernel"
)

// Modality is where the work happens
type Modality string

const (
	ModalityOnSite Modality = "Presencial"
	ModalityRemote Modality = "Remoto"
	ModalityHybrid Modality = "Hibrido"
)

func (m Modality) IsValid() bool {
	switch m {
	case ModalityOnSite, ModalityRemote, ModalityHybrid:
		return true
	}
	return false
}

// Offer is a job posting. Token is a non-guessable handle used for the
// management (edit/delete) links sent to the poster.
type Offer struct {
	ID              kernel.OfferID         `db:"id" json:"id"`
	Token           string                 `db:"token" json:"-"`
	UserID          kernel.UserID          `db:"user_id" json:"user_id"`
	Title           string                 `db:"title" json:"title"`
	CompanyName     string                 `db:"company_name" json:"company_name,omitempty"`
	Type            kernel.JobType         `db:"type" json:"type"`
	Duration        string                 `db:"duration" json:"duration,omitempty"`
	Modality        Modality               `db:"modality" json:"modality"`
	Region          kernel.Region          `db:"region" json:"region"`
	Experience      kernel.ExperienceLevel `db:"experience" json:"experience"`
	Salary          *kernel.Salary         `db:"salary" json:"salary,omitempty"`
	Phone           kernel.Phone           `db:"phone" json:"phone,omitempty"`
	WhatsappEnabled bool                   `db:"whatsapp_enabled" json:"whatsapp_enabled"`
	ContactEmail    kernel.Email           `db:"contact_email" json:"contact_email,omitempty"`
	Tags            string                 `db:"tags" json:"tags,omitempty"`
	Description     string                 `db:"description" json:"description"`
	ImageURL        *kernel.BucketURL      `db:"image_url" json:"image_url,omitempty"`
	Published       bool                   `db:"published" json:"published"`
	Paid            bool                   `db:"paid" json:"paid"`
	Featured        bool                   `db:"featured" json:"featured"`
	CloseDate       *time.Time             `db:"close_date" json:"close_date,omitempty"`
	PublishedAt     *time.Time             `db:"published_at" json:"published_at,omitempty"`
	CreatedAt       time.Time              `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time              `db:"updated_at" json:"updated_at"`
}

// Favorite bookmarks an offer for a user. One row per (user, offer).
type Favorite struct {
	UserID    kernel.UserID  `db:"user_id" json:"user_id"`
	OfferID   kernel.OfferID `db:"offer_id" json:"offer_id"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
}

// RegionCount is one bucket of the offers-per-region aggregation
type RegionCount struct {
	Region kernel.Region `db:"region" json:"region"`
	Name   string        `json:"name"`
	Total  int64         `db:"total" json:"total"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsPublished checks if the offer is publicly visible
func (o *Offer) IsPublished() bool {
	return o.Published
}

// IsClosed checks if the close date has passed
func (o *Offer) IsClosed() bool {
	return o.CloseDate != nil && o.CloseDate.Before(time.Now())
}

// IsOwnedBy checks if userID posted the offer
func (o *Offer) IsOwnedBy(userID kernel.UserID) bool {
	return o.UserID == userID
}

// Publish makes the offer publicly visible
func (o *Offer) Publish() error {
	if o.Published {
		return ErrAlreadyPublished()
	}

	now := time.Now()
	o.Published = true
	o.PublishedAt = &now
	o.UpdatedAt = now
	return nil
}

// Unpublish hides the offer
func (o *Offer) Unpublish() {
	o.Published = false
	o.UpdatedAt = time.Now()
}

// SearchText is the text embedded for semantic similarity
func (o *Offer) SearchText() string {
	text := o.Title
	if o.Tags != "" {
		text += " " + o.Tags
	}
	if o.Description != "" {
		text += " " + o.Description
	}
	return text
}
