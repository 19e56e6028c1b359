package matching

import (
	"math"
	"strings"

	"github.com/redlaboral/portal/pkg/kernel"
)

// Factor texts shown next to the compatibility percentage
const (
	TextSameRegion        = "Misma Región"
	TextDifferentRegion   = "Diferente Región"
	TextSalaryMatch       = "Sueldo Acorde"
	TextSalaryBelow       = "Sueldo bajo tu pretensión"
	TextSalaryNegotiable  = "Sueldo a negociar"
	TextProfileCompatible = "Perfil Técnico Compatible"
	TextReviewRequired    = "Revisar requisitos"
)

const (
	IconMatch    = "✅"
	IconMismatch = "❌"
	IconWarning  = "⚠️"
	IconNeutral  = "⚖️"
	IconReview   = "🔍"
)

// salaryTolerance accepts offers paying at least this fraction of the
// candidate's expectation.
const salaryTolerance = 0.9

// OfferProfile is the slice of an offer the scorer looks at
type OfferProfile struct {
	Region kernel.Region
	Salary *kernel.Salary
	Title  string
}

// CandidateProfile is the slice of a candidate the scorer looks at
type CandidateProfile struct {
	Region        kernel.Region
	DesiredSalary *kernel.Salary
	Headline      string
}

// Factor is one explained component of a compatibility score
type Factor struct {
	Icon string `json:"icon"`
	Text string `json:"text"`
}

// Result is a normalized compatibility score with its explanation.
// Factors always holds exactly three entries, one per evaluated signal.
type Result struct {
	Percent int      `json:"percent"`
	Factors []Factor `json:"factors"`
}

// Score computes the candidate-to-offer compatibility. Each of the
// three factors contributes at most one point and the total is
// normalized against a fixed denominator of 3.
func Score(offer OfferProfile, candidate CandidateProfile) Result {
	var score float64
	factors := make([]Factor, 0, 3)

	if offer.Region == candidate.Region {
		score++
		factors = append(factors, Factor{Icon: IconMatch, Text: TextSameRegion})
	} else {
		factors = append(factors, Factor{Icon: IconMismatch, Text: TextDifferentRegion})
	}

	if disclosed(offer.Salary) && disclosed(candidate.DesiredSalary) {
		if float64(*offer.Salary) >= salaryTolerance*float64(*candidate.DesiredSalary) {
			score++
			factors = append(factors, Factor{Icon: IconMatch, Text: TextSalaryMatch})
		} else {
			factors = append(factors, Factor{Icon: IconWarning, Text: TextSalaryBelow})
		}
	} else {
		// Missing salary data is neutral, not a penalty
		score += 0.5
		factors = append(factors, Factor{Icon: IconNeutral, Text: TextSalaryNegotiable})
	}

	if headlineMatches(candidate.Headline, offer.Title) {
		score++
		factors = append(factors, Factor{Icon: IconMatch, Text: TextProfileCompatible})
	} else {
		score += 0.5
		factors = append(factors, Factor{Icon: IconReview, Text: TextReviewRequired})
	}

	return Result{
		Percent: int(math.Round(score / 3 * 100)),
		Factors: factors,
	}
}

func disclosed(s *kernel.Salary) bool {
	return s != nil && *s > 0
}

func headlineMatches(headline, title string) bool {
	if headline == "" || title == "" {
		return false
	}
	return strings.Contains(strings.ToLower(title), strings.ToLower(headline))
}
