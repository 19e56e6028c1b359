package matching

import (
	"testing"

	"github.com/redlaboral/portal/pkg/kernel"
	"github.com/stretchr/testify/assert"
)

func salary(v int) *kernel.Salary {
	s := kernel.Salary(v)
	return &s
}

func TestScoreFullMatch(t *testing.T) {
	result := Score(
		OfferProfile{Region: kernel.RegionMetropolitana, Salary: salary(900000), Title: "Desarrollador Backend Go"},
		CandidateProfile{Region: kernel.RegionMetropolitana, DesiredSalary: salary(1000000), Headline: "Desarrollador Backend"},
	)

	assert.Equal(t, 100, result.Percent)
	assert.Equal(t, []Factor{
		{Icon: IconMatch, Text: TextSameRegion},
		{Icon: IconMatch, Text: TextSalaryMatch},
		{Icon: IconMatch, Text: TextProfileCompatible},
	}, result.Factors)
}

func TestScoreNothingMatches(t *testing.T) {
	result := Score(
		OfferProfile{Region: kernel.RegionMetropolitana, Salary: salary(500000), Title: "Garzón para restaurante"},
		CandidateProfile{Region: kernel.RegionValparaiso, DesiredSalary: salary(1000000), Headline: "Contador Auditor"},
	)

	// 0 + 0 + 0.5 over 3 rounds to 17
	assert.Equal(t, 17, result.Percent)
	assert.Equal(t, []Factor{
		{Icon: IconMismatch, Text: TextDifferentRegion},
		{Icon: IconWarning, Text: TextSalaryBelow},
		{Icon: IconReview, Text: TextReviewRequired},
	}, result.Factors)
}

func TestScoreOnlyNeutralSignals(t *testing.T) {
	result := Score(
		OfferProfile{Region: kernel.RegionAntofagasta, Title: "Operador de Planta"},
		CandidateProfile{Region: kernel.RegionBiobio, Headline: "Electricista Industrial"},
	)

	// 0 + 0.5 + 0.5 over 3 rounds to 33
	assert.Equal(t, 33, result.Percent)
	assert.Equal(t, []Factor{
		{Icon: IconMismatch, Text: TextDifferentRegion},
		{Icon: IconNeutral, Text: TextSalaryNegotiable},
		{Icon: IconReview, Text: TextReviewRequired},
	}, result.Factors)
}

func TestScoreSalaryTolerance(t *testing.T) {
	offer := OfferProfile{Region: kernel.RegionMetropolitana, Salary: salary(900000), Title: "Cajero"}
	candidate := CandidateProfile{Region: kernel.RegionMetropolitana, DesiredSalary: salary(1000000), Headline: "Vendedor"}

	// Exactly 90% of the expectation still counts as a match
	result := Score(offer, candidate)
	assert.Contains(t, result.Factors, Factor{Icon: IconMatch, Text: TextSalaryMatch})

	offer.Salary = salary(899999)
	result = Score(offer, candidate)
	assert.Contains(t, result.Factors, Factor{Icon: IconWarning, Text: TextSalaryBelow})
}

func TestScoreUndisclosedSalaryIsNeutral(t *testing.T) {
	for _, offerSalary := range []*kernel.Salary{nil, salary(0)} {
		result := Score(
			OfferProfile{Region: kernel.RegionValparaiso, Salary: offerSalary, Title: "Diseñador Gráfico"},
			CandidateProfile{Region: kernel.RegionMetropolitana, DesiredSalary: salary(800000), Headline: "Diseñador"},
		)

		// 0 + 0.5 + 1 over 3 rounds to 50
		assert.Equal(t, 50, result.Percent)
		assert.Contains(t, result.Factors, Factor{Icon: IconNeutral, Text: TextSalaryNegotiable})
	}
}

func TestScoreHeadlineMatchIsCaseInsensitive(t *testing.T) {
	result := Score(
		OfferProfile{Region: kernel.RegionBiobio, Salary: nil, Title: "Se busca SOLDADOR calificado"},
		CandidateProfile{Region: kernel.RegionBiobio, DesiredSalary: nil, Headline: "soldador"},
	)

	assert.Contains(t, result.Factors, Factor{Icon: IconMatch, Text: TextProfileCompatible})
	// 1 + 0.5 + 1 over 3 rounds to 83
	assert.Equal(t, 83, result.Percent)
}

func TestScoreEmptyHeadlineGetsPartialCredit(t *testing.T) {
	result := Score(
		OfferProfile{Region: kernel.RegionMetropolitana, Salary: nil, Title: "Recepcionista"},
		CandidateProfile{Region: kernel.RegionMetropolitana, DesiredSalary: nil, Headline: ""},
	)

	assert.Contains(t, result.Factors, Factor{Icon: IconReview, Text: TextReviewRequired})
}

func TestScoreAlwaysEmitsThreeFactors(t *testing.T) {
	cases := []struct {
		offer     OfferProfile
		candidate CandidateProfile
	}{
		{OfferProfile{}, CandidateProfile{}},
		{OfferProfile{Region: kernel.RegionMetropolitana, Title: "Chofer"}, CandidateProfile{Region: kernel.RegionValparaiso}},
		{OfferProfile{Salary: salary(1)}, CandidateProfile{DesiredSalary: salary(1), Headline: "x"}},
	}

	for _, tc := range cases {
		result := Score(tc.offer, tc.candidate)
		assert.Len(t, result.Factors, 3)
	}
}
