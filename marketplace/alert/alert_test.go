package alert

import (
	"testing"

	"github.com/redlaboral/portal/pkg/kernel"
	"github.com/stretchr/testify/assert"
)

func TestAlertMatches(t *testing.T) {
	tests := []struct {
		name    string
		keyword string
		region  kernel.Region
		title   string
		want    bool
	}{
		{"substring case-insensitive", "VENDE", kernel.RegionMetropolitana, "Se busca vendedor", true},
		{"exact token", "Senior", kernel.RegionMetropolitana, "Desarrollador Senior remoto", true},
		{"multi-word keyword as substring", "contador auditor", kernel.RegionMetropolitana, "Contador Auditor para pyme", true},
		{"no textual match", "soldador", kernel.RegionMetropolitana, "Recepcionista bilingüe", false},
		{"region mismatch blocks textual match", "vendedor", kernel.RegionValparaiso, "Vendedor Senior", false},
		{"empty title", "vendedor", kernel.RegionMetropolitana, "", false},
		{"empty keyword", "", kernel.RegionMetropolitana, "Vendedor", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &Alert{
				Email:   "x@example.com",
				Keyword: tt.keyword,
				Region:  tt.region,
			}
			assert.Equal(t, tt.want, a.Matches(kernel.RegionMetropolitana, tt.title))
		})
	}
}
