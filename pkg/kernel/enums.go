package kernel

// Static enumeration tables for the Chilean job market. These are
// configuration data loaded once at package init, never mutated at
// runtime. Region codes are compared by exact equality everywhere;
// there is no notion of geographic proximity.

// Region identifies one of Chile's administrative regions
type Region string

const (
	RegionAricaParinacota Region = "AP"
	RegionTarapaca        Region = "TA"
	RegionAntofagasta     Region = "AN"
	RegionAtacama         Region = "AT"
	RegionCoquimbo        Region = "CO"
	RegionValparaiso      Region = "VA"
	RegionMetropolitana   Region = "RM"
	RegionOHiggins        Region = "OH"
	RegionMaule           Region = "MA"
	RegionNuble           Region = "NB"
	RegionBiobio          Region = "BI"
	RegionAraucania       Region = "AR"
	RegionLosRios         Region = "LR"
	RegionLosLagos        Region = "LS"
	RegionAysen           Region = "AI"
	RegionMagallanes      Region = "MG"
)

var regionNames = map[Region]string{
	RegionAricaParinacota: "Arica y Parinacota",
	RegionTarapaca:        "Tarapacá",
	RegionAntofagasta:     "Antofagasta",
	RegionAtacama:         "Atacama",
	RegionCoquimbo:        "Coquimbo",
	RegionValparaiso:      "Valparaíso",
	RegionMetropolitana:   "Metropolitana",
	RegionOHiggins:        "O’Higgins",
	RegionMaule:           "Maule",
	RegionNuble:           "Ñuble",
	RegionBiobio:          "Biobío",
	RegionAraucania:       "Araucanía",
	RegionLosRios:         "Los Ríos",
	RegionLosLagos:        "Los Lagos",
	RegionAysen:           "Aysén",
	RegionMagallanes:      "Magallanes",
}

func (r Region) String() string { return string(r) }

// IsValid reports whether the code belongs to the fixed enumeration
func (r Region) IsValid() bool {
	_, ok := regionNames[r]
	return ok
}

// DisplayName returns the human-readable region name
func (r Region) DisplayName() string {
	if name, ok := regionNames[r]; ok {
		return name
	}
	return string(r)
}

// Regions returns every valid region code
func Regions() []Region {
	return []Region{
		RegionAricaParinacota, RegionTarapaca, RegionAntofagasta,
		RegionAtacama, RegionCoquimbo, RegionValparaiso,
		RegionMetropolitana, RegionOHiggins, RegionMaule,
		RegionNuble, RegionBiobio, RegionAraucania,
		RegionLosRios, RegionLosLagos, RegionAysen, RegionMagallanes,
	}
}

// ExperienceLevel classifies years of professional experience
type ExperienceLevel string

const (
	ExperienceNone       ExperienceLevel = "sin_experiencia"
	ExperienceJunior     ExperienceLevel = "junior"
	ExperienceSemiSenior ExperienceLevel = "semi_senior"
	ExperienceSenior     ExperienceLevel = "senior"
)

var experienceNames = map[ExperienceLevel]string{
	ExperienceNone:       "Sin experiencia",
	ExperienceJunior:     "Junior (1-2 años)",
	ExperienceSemiSenior: "Semi Senior (3-5 años)",
	ExperienceSenior:     "Senior (+5 años)",
}

func (e ExperienceLevel) String() string { return string(e) }

func (e ExperienceLevel) IsValid() bool {
	_, ok := experienceNames[e]
	return ok
}

func (e ExperienceLevel) DisplayName() string {
	if name, ok := experienceNames[e]; ok {
		return name
	}
	return string(e)
}

// JobType classifies the contract type of an offer
type JobType string

const (
	JobTypeFullTime   JobType = "full_time"
	JobTypePartTime   JobType = "part_time"
	JobTypeFreelance  JobType = "freelance"
	JobTypeInternship JobType = "practica"
	JobTypeRemote     JobType = "remoto"
	JobTypeHybrid     JobType = "hibrido"
)

var jobTypeNames = map[JobType]string{
	JobTypeFullTime:   "Full Time",
	JobTypePartTime:   "Part Time",
	JobTypeFreelance:  "Freelance",
	JobTypeInternship: "Práctica Profesional",
	JobTypeRemote:     "100% Remoto",
	JobTypeHybrid:     "Híbrido",
}

func (t JobType) String() string { return string(t) }

func (t JobType) IsValid() bool {
	_, ok := jobTypeNames[t]
	return ok
}

func (t JobType) DisplayName() string {
	if name, ok := jobTypeNames[t]; ok {
		return name
	}
	return string(t)
}

// Industry classifies the trade sector ("rubro") of candidates and services
type Industry string

const (
	IndustryAdmin        Industry = "admin"
	IndustryAgro         Industry = "agro"
	IndustryArt          Industry = "arte"
	IndustryCommerce     Industry = "comercio"
	IndustryConstruction Industry = "construccion"
	IndustryEducation    Industry = "educacion"
	IndustryGastronomy   Industry = "gastronomia"
	IndustryHealth       Industry = "salud"
	IndustryTechnology   Industry = "tecnologia"
	IndustryTransport    Industry = "transporte"
	IndustryOther        Industry = "otro"
)

var industryNames = map[Industry]string{
	IndustryAdmin:        "Administración y Oficina",
	IndustryAgro:         "Agricultura y Pesca",
	IndustryArt:          "Arte y Diseño",
	IndustryCommerce:     "Comercio y Ventas",
	IndustryConstruction: "Construcción y Obras",
	IndustryEducation:    "Educación",
	IndustryGastronomy:   "Gastronomía y Turismo",
	IndustryHealth:       "Salud y Medicina",
	IndustryTechnology:   "Tecnología e Informática",
	IndustryTransport:    "Transporte y Logística",
	IndustryOther:        "Otros Oficios",
}

func (i Industry) String() string { return string(i) }

func (i Industry) IsValid() bool {
	_, ok := industryNames[i]
	return ok
}

func (i Industry) DisplayName() string {
	if name, ok := industryNames[i]; ok {
		return name
	}
	return string(i)
}
