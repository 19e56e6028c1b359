package auth

// ============================================================================
// DOMAIN-SPECIFIC SCOPES - Job board and services marketplace
// ============================================================================

const (
	// Offer scopes
	ScopeOffersAll     = "offers:*"
	ScopeOffersRead    = "offers:read"
	ScopeOffersWrite   = "offers:write"
	ScopeOffersDelete  = "offers:delete"
	ScopeOffersFeature = "offers:feature" // Mark offers as featured

	// Candidate profile scopes
	ScopeCandidatesAll   = "candidates:*"
	ScopeCandidatesRead  = "candidates:read"
	ScopeCandidatesWrite = "candidates:write"

	// Application scopes
	ScopeApplicationsAll    = "applications:*"
	ScopeApplicationsRead   = "applications:read"
	ScopeApplicationsWrite  = "applications:write"
	ScopeApplicationsManage = "applications:manage" // Advance application states

	// Company profile scopes
	ScopeCompaniesAll   = "companies:*"
	ScopeCompaniesRead  = "companies:read"
	ScopeCompaniesWrite = "companies:write"

	// Freelance service scopes
	ScopeServicesAll   = "services:*"
	ScopeServicesRead  = "services:read"
	ScopeServicesWrite = "services:write"

	// Alert scopes
	ScopeAlertsAll   = "alerts:*"
	ScopeAlertsRead  = "alerts:read"
	ScopeAlertsWrite = "alerts:write"

	// Rating scopes
	ScopeRatingsWrite   = "ratings:write"
	ScopeRatingsApprove = "ratings:approve" // Moderate submitted ratings
)

// DomainScopeGroups maps account roles to the scopes they receive at login
var DomainScopeGroups = map[Role][]string{
	RoleCandidate: {
		ScopeOffersRead,
		ScopeCandidatesRead,
		ScopeCandidatesWrite,
		ScopeApplicationsRead,
		ScopeApplicationsWrite,
		ScopeServicesAll,
		ScopeAlertsAll,
		ScopeRatingsWrite,
		ScopeCompaniesRead,
	},
	RoleCompany: {
		ScopeOffersAll,
		ScopeCompaniesAll,
		ScopeApplicationsRead,
		ScopeApplicationsManage,
		ScopeCandidatesRead,
		ScopeServicesRead,
	},
	RoleAdmin: {
		ScopeOffersAll,
		ScopeCandidatesAll,
		ScopeApplicationsAll,
		ScopeCompaniesAll,
		ScopeServicesAll,
		ScopeAlertsAll,
		ScopeOffersFeature,
		ScopeRatingsApprove,
	},
}

// ScopesForRole returns a copy of the role's scope group
func ScopesForRole(role Role) []string {
	scopes, ok := DomainScopeGroups[role]
	if !ok {
		return nil
	}
	out := make([]string, len(scopes))
	copy(out, scopes)
	return out
}
