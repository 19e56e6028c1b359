package offer

import (
	"time"

	"github.com/redlaboral/portal/marketplace/matching"
	"github.com/redlaboral/portal/pkg/kernel"
)

// CreateOfferRequest - DTO for posting a new offer
type CreateOfferRequest struct {
	Title           string                 `json:"title" validate:"required"`
	CompanyName     string                 `json:"company_name,omitempty"`
	Type            kernel.JobType         `json:"type" validate:"required"`
	Duration        string                 `json:"duration,omitempty"`
	Modality        Modality               `json:"modality,omitempty"`
	Region          kernel.Region          `json:"region" validate:"required"`
	Experience      kernel.ExperienceLevel `json:"experience,omitempty"`
	Salary          *kernel.Salary         `json:"salary,omitempty"`
	Phone           kernel.Phone           `json:"phone,omitempty"`
	WhatsappEnabled bool                   `json:"whatsapp_enabled,omitempty"`
	ContactEmail    kernel.Email           `json:"contact_email,omitempty"`
	Tags            string                 `json:"tags,omitempty"`
	Description     string                 `json:"description" validate:"required"`
	CloseDate       *time.Time             `json:"close_date,omitempty"`
}

// UpdateOfferRequest - DTO for editing an offer through its token
type UpdateOfferRequest struct {
	Title           *string                 `json:"title,omitempty"`
	CompanyName     *string                 `json:"company_name,omitempty"`
	Type            *kernel.JobType         `json:"type,omitempty"`
	Duration        *string                 `json:"duration,omitempty"`
	Modality        *Modality               `json:"modality,omitempty"`
	Region          *kernel.Region          `json:"region,omitempty"`
	Experience      *kernel.ExperienceLevel `json:"experience,omitempty"`
	Salary          *kernel.Salary          `json:"salary,omitempty"`
	Phone           *kernel.Phone           `json:"phone,omitempty"`
	WhatsappEnabled *bool                   `json:"whatsapp_enabled,omitempty"`
	ContactEmail    *kernel.Email           `json:"contact_email,omitempty"`
	Tags            *string                 `json:"tags,omitempty"`
	Description     *string                 `json:"description,omitempty"`
	CloseDate       *time.Time              `json:"close_date,omitempty"`
}

// SearchOffersRequest - DTO for the public offer listing filters
type SearchOffersRequest struct {
	Query      string                   `json:"query,omitempty"`        // title or company substring
	Region     kernel.Region            `json:"region,omitempty"`       // exact code
	MinSalary  *kernel.Salary           `json:"min_salary,omitempty"`   // inclusive lower bound
	MaxAgeDays int                      `json:"max_age_days,omitempty"` // 0 means no age limit
	Type       kernel.JobType           `json:"type,omitempty"`         // exact type
	Pagination kernel.PaginationOptions `json:"pagination"`
}

// OfferResponse - DTO returned for an offer
type OfferResponse struct {
	ID              kernel.OfferID         `json:"id"`
	Title           string                 `json:"title"`
	CompanyName     string                 `json:"company_name,omitempty"`
	Type            kernel.JobType         `json:"type"`
	TypeName        string                 `json:"type_name"`
	Duration        string                 `json:"duration,omitempty"`
	Modality        Modality               `json:"modality"`
	Region          kernel.Region          `json:"region"`
	RegionName      string                 `json:"region_name"`
	Experience      kernel.ExperienceLevel `json:"experience"`
	Salary          *kernel.Salary         `json:"salary,omitempty"`
	Phone           kernel.Phone           `json:"phone,omitempty"`
	WhatsappEnabled bool                   `json:"whatsapp_enabled"`
	ContactEmail    kernel.Email           `json:"contact_email,omitempty"`
	Tags            string                 `json:"tags,omitempty"`
	Description     string                 `json:"description"`
	ImageURL        *kernel.BucketURL      `json:"image_url,omitempty"`
	Published       bool                   `json:"published"`
	Featured        bool                   `json:"featured"`
	CloseDate       *time.Time             `json:"close_date,omitempty"`
	PublishedAt     *time.Time             `json:"published_at,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
	Visits          int64                  `json:"visits"`
}

// OwnedOfferResponse - DTO for the poster's own listing, includes the
// management token
type OwnedOfferResponse struct {
	OfferResponse
	Token string `json:"token"`
}

// OfferDetailResponse - DTO for the detail page: the offer, similar
// offers and, for authenticated candidates, the compatibility result.
// Match stays nil for anonymous visitors and accounts with no
// candidate profile.
type OfferDetailResponse struct {
	Offer   OfferResponse    `json:"offer"`
	Similar []OfferResponse  `json:"similar"`
	Match   *matching.Result `json:"match,omitempty"`
}

// AskQuestionRequest - DTO for posting a question on an offer
type AskQuestionRequest struct {
	Question string `json:"question" validate:"required"`
}

// AnswerQuestionRequest - DTO for the poster's reply, through the
// management token
type AnswerQuestionRequest struct {
	Answer string `json:"answer" validate:"required"`
}

// QuestionResponse - DTO returned for a question on the detail page
type QuestionResponse struct {
	ID         kernel.QuestionID `json:"id"`
	OfferID    kernel.OfferID    `json:"offer_id"`
	Question   string            `json:"question"`
	Answer     string            `json:"answer,omitempty"`
	Answered   bool              `json:"answered"`
	CreatedAt  time.Time         `json:"created_at"`
	AnsweredAt *time.Time        `json:"answered_at,omitempty"`
}

// ReportOfferRequest - DTO for flagging an offer
type ReportOfferRequest struct {
	Reason ReportReason `json:"reason" validate:"required"`
	Detail string       `json:"detail,omitempty"`
}

// ReportResponse - DTO returned for a report in the staff queue
type ReportResponse struct {
	ID         kernel.ReportID `json:"id"`
	OfferID    kernel.OfferID  `json:"offer_id"`
	Reason     ReportReason    `json:"reason"`
	ReasonName string          `json:"reason_name"`
	Detail     string          `json:"detail,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// ToResponse converts a question entity to its response DTO. The
// asker's identity stays private.
func (q *Question) ToResponse() QuestionResponse {
	return QuestionResponse{
		ID:         q.ID,
		OfferID:    q.OfferID,
		Question:   q.Question,
		Answer:     q.Answer,
		Answered:   q.IsAnswered(),
		CreatedAt:  q.CreatedAt,
		AnsweredAt: q.AnsweredAt,
	}
}

// ToResponse converts a report entity to its response DTO
func (r *Report) ToResponse() ReportResponse {
	return ReportResponse{
		ID:         r.ID,
		OfferID:    r.OfferID,
		Reason:     r.Reason,
		ReasonName: r.Reason.DisplayName(),
		Detail:     r.Detail,
		CreatedAt:  r.CreatedAt,
	}
}

// ToResponse converts an offer entity to its response DTO
func (o *Offer) ToResponse(visits int64) OfferResponse {
	return OfferResponse{
		ID:              o.ID,
		Title:           o.Title,
		CompanyName:     o.CompanyName,
		Type:            o.Type,
		TypeName:        o.Type.DisplayName(),
		Duration:        o.Duration,
		Modality:        o.Modality,
		Region:          o.Region,
		RegionName:      o.Region.DisplayName(),
		Experience:      o.Experience,
		Salary:          o.Salary,
		Phone:           o.Phone,
		WhatsappEnabled: o.WhatsappEnabled,
		ContactEmail:    o.ContactEmail,
		Tags:            o.Tags,
		Description:     o.Description,
		ImageURL:        o.ImageURL,
		Published:       o.Published,
		Featured:        o.Featured,
		CloseDate:       o.CloseDate,
		PublishedAt:     o.PublishedAt,
		CreatedAt:       o.CreatedAt,
		Visits:          visits,
	}
}
