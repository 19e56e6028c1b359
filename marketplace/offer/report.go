package offer

import (
	"time"

	"github.com/redlaboral/portal/pkg/kernel"
)

// ReportReason is why a visitor flagged an offer
type ReportReason string

const (
	ReportReasonFraud          ReportReason = "fraude"
	ReportReasonDiscrimination ReportReason = "discriminacion"
	ReportReasonSpam           ReportReason = "spam"
	ReportReasonOther          ReportReason = "otro"
)

func (r ReportReason) IsValid() bool {
	switch r {
	case ReportReasonFraud, ReportReasonDiscrimination, ReportReasonSpam, ReportReasonOther:
		return true
	}
	return false
}

// DisplayName returns the human-readable reason
func (r ReportReason) DisplayName() string {
	switch r {
	case ReportReasonFraud:
		return "Posible Estafa"
	case ReportReasonDiscrimination:
		return "Discriminación"
	case ReportReasonSpam:
		return "Spam / Publicidad"
	case ReportReasonOther:
		return "Otro"
	}
	return string(r)
}

// Report is a visitor's flag on a published offer. Reports come in
// anonymously and queue up for staff review.
type Report struct {
	ID        kernel.ReportID `db:"id" json:"id"`
	OfferID   kernel.OfferID  `db:"offer_id" json:"offer_id"`
	Reason    ReportReason    `db:"reason" json:"reason"`
	Detail    string          `db:"detail" json:"detail,omitempty"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}
