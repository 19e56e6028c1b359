package alert

import (
	"strings"
	"time"

	"github.com/redlaboral/portal/pkg/kernel"
)

// Alert is a standing subscription created by any visitor. When a new
// offer in Region whose title matches Keyword is published, one email
// goes out to Email.
type Alert struct {
	ID        kernel.AlertID `db:"id" json:"id"`
	Email     kernel.Email   `db:"email" json:"email"`
	Keyword   string         `db:"keyword" json:"keyword"`
	Region    kernel.Region  `db:"region" json:"region"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// Matches reports whether a published offer in region with the given
// title triggers this alert. Regions compare by exact code equality.
// The keyword clause holds when the keyword is a case-insensitive
// substring of the title or equals one of the title's whitespace
// tokens. An empty title never matches.
func (a *Alert) Matches(region kernel.Region, title string) bool {
	if a.Region != region {
		return false
	}
	if a.Keyword == "" || title == "" {
		return false
	}

	if strings.Contains(strings.ToLower(title), strings.ToLower(a.Keyword)) {
		return true
	}

	for _, token := range strings.Fields(title) {
		if token == a.Keyword {
			return true
		}
	}

	return false
}
