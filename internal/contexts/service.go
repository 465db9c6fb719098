package contexts

import "github.com/datavault-fs/accessd/internal/access"

// basePermissions maps each role to the context identifiers it may reach
// before regional restrictions apply.
var basePermissions = map[access.Role][]string{
	access.RoleExecutive:     {GlobalResearch, ClientAnalytics},
	access.RoleAnalyst:       {GlobalResearch},
	access.RoleComplianceUS:  {GlobalResearch, USCompliance},
	access.RoleComplianceEU:  {GlobalResearch, EUCompliance},
	access.RoleClientManager: {ClientAnalytics, GlobalResearch},
	access.RoleEmployee:      {InternalTraining},
}

// complianceContexts maps a region to its compliance context.
var complianceContexts = map[access.Region]string{
	access.RegionUS: USCompliance,
	access.RegionEU: EUCompliance,
}

// Accessible resolves the knowledge contexts a caller may search.
// Compliance roles are pinned to their own region: operating from anywhere
// else drops them to global research only, so US compliance data never
// leaves US systems and vice versa. Unknown roles get nothing.
func Accessible(role access.Role, region access.Region) []Context {
	ids, ok := basePermissions[role]
	if !ok {
		return nil
	}
	if own, isCompliance := complianceContexts[role.Region()]; isCompliance {
		if role.Region() != region || !contains(ids, own) {
			ids = []string{GlobalResearch}
		}
	}
	out := make([]Context, 0, len(ids))
	for _, id := range ids {
		if c, ok := Lookup(id); ok {
			out = append(out, c)
		}
	}
	return out
}

func contains(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
