package access

// Matrix maps roles to the ordered resource patterns permitted per action.
// It is built once at startup and never mutated afterwards.
type Matrix map[Role]map[Action][]Pattern

// Lookup returns the ordered patterns for a role/action pair. Unknown roles
// and actions yield nil, which the validator treats as deny-all.
func (m Matrix) Lookup(role Role, action Action) []Pattern {
	actions, ok := m[role]
	if !ok {
		return nil
	}
	return actions[action]
}

func patterns(raw ...string) []Pattern {
	out := make([]Pattern, 0, len(raw))
	for _, r := range raw {
		out = append(out, ParsePattern(r))
	}
	return out
}

// DefaultMatrix returns the DataVault permission matrix. Previously the
// same nested literals were duplicated across several scripts; this is the
// single authoritative copy.
func DefaultMatrix() Matrix {
	return Matrix{
		RoleExecutive: {
			ActionRead:   patterns("all"),
			ActionWrite:  patterns("global_research", "client_analytics"),
			ActionDelete: patterns("none"),
			ActionExport: patterns("all"),
			ActionAdmin:  patterns("view_audit", "manage_users"),
		},
		RoleAnalyst: {
			ActionRead:   patterns("global_research", "internal_training", "client_analytics"),
			ActionWrite:  patterns("global_research"),
			ActionDelete: patterns("own_content"),
			ActionExport: patterns("global_research", "internal_training"),
		},
		RoleComplianceUS: {
			ActionRead:   patterns("us_compliance", "global_research", "internal_training"),
			ActionWrite:  patterns("us_compliance"),
			ActionDelete: patterns("none"),
			ActionExport: patterns("us_compliance"),
			ActionAdmin:  patterns("view_audit"),
		},
		RoleComplianceEU: {
			ActionRead:   patterns("eu_compliance", "global_research", "internal_training"),
			ActionWrite:  patterns("eu_compliance"),
			ActionDelete: patterns("none"),
			ActionExport: patterns("eu_compliance"),
			ActionAdmin:  patterns("view_audit"),
		},
		RoleClientManager: {
			ActionRead:   patterns("client_analytics", "global_research"),
			ActionWrite:  patterns("client_analytics"),
			ActionDelete: patterns("none"),
			ActionExport: patterns("client_analytics"),
		},
		RoleEmployee: {
			ActionRead:   patterns("internal_training"),
			ActionWrite:  patterns("none"),
			ActionDelete: patterns("none"),
			ActionExport: patterns("none"),
		},
	}
}
