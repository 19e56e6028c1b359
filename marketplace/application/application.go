package application

import (
	"time"

	"github.com/redlaboral/portal/pkg/kernel"
)

// Status tracks where an application sits in the hiring funnel
type Status string

const (
	StatusSent      Status = "ENV"
	StatusViewed    Status = "VIS"
	StatusInterview Status = "INT"
	StatusRejected  Status = "NO"
	StatusSelected  Status = "SEL"
)

var statusNames = map[Status]string{
	StatusSent:      "Enviada",
	StatusViewed:    "Vista",
	StatusInterview: "Entrevista",
	StatusRejected:  "No seleccionado",
	StatusSelected:  "Seleccionado",
}

// IsValid reports whether the status belongs to the fixed enumeration
func (s Status) IsValid() bool {
	_, ok := statusNames[s]
	return ok
}

// DisplayName returns the human-readable status name
func (s Status) DisplayName() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return string(s)
}

// Application links a candidate to an offer. A candidate applies to an
// offer at most once.
type Application struct {
	ID          kernel.ApplicationID `json:"id" db:"id"`
	OfferID     kernel.OfferID       `json:"offer_id" db:"offer_id"`
	CandidateID kernel.CandidateID   `json:"candidate_id" db:"candidate_id"`
	Status      Status               `json:"status" db:"status"`
	CreatedAt   time.Time            `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at" db:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// ChangeStatus moves the application to a new funnel state. Returns
// true when the state actually changed.
func (a *Application) ChangeStatus(status Status) bool {
	if a.Status == status {
		return false
	}
	a.Status = status
	return true
}
