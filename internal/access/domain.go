package access

import "strings"

// Action is a privileged operation a caller may attempt on a resource.
type Action string

// Supported actions.
const (
	ActionRead   Action = "read"
	ActionWrite  Action = "write"
	ActionDelete Action = "delete"
	ActionExport Action = "export"
	ActionAdmin  Action = "admin"
)

// ParseAction normalises and validates an action string.
func ParseAction(raw string) (Action, bool) {
	switch Action(strings.ToLower(strings.TrimSpace(raw))) {
	case ActionRead:
		return ActionRead, true
	case ActionWrite:
		return ActionWrite, true
	case ActionDelete:
		return ActionDelete, true
	case ActionExport:
		return ActionExport, true
	case ActionAdmin:
		return ActionAdmin, true
	}
	return "", false
}

// Region is the geographic scope attached to a role.
type Region string

// Supported regions.
const (
	RegionGlobal Region = "global"
	RegionUS     Region = "us"
	RegionEU     Region = "eu"
)

// Role is a named permission grouping assigned to a user. It is immutable
// for the lifetime of a session.
type Role string

// Known roles.
const (
	RoleExecutive     Role = "executive"
	RoleAnalyst       Role = "analyst"
	RoleComplianceUS  Role = "compliance_us"
	RoleComplianceEU  Role = "compliance_eu"
	RoleClientManager Role = "client_manager"
	RoleEmployee      Role = "employee"
)

// roleRegions replaces substring sniffing on role names with an explicit
// mapping from role to region.
var roleRegions = map[Role]Region{
	RoleExecutive:     RegionGlobal,
	RoleAnalyst:       RegionGlobal,
	RoleComplianceUS:  RegionUS,
	RoleComplianceEU:  RegionEU,
	RoleClientManager: RegionGlobal,
	RoleEmployee:      RegionGlobal,
}

// ParseRole normalises a role string. Unknown roles are returned verbatim
// with ok=false; the validator treats them as an empty permission set.
func ParseRole(raw string) (Role, bool) {
	role := Role(strings.ToLower(strings.TrimSpace(raw)))
	_, ok := roleRegions[role]
	return role, ok
}

// Region returns the geographic scope of the role. Unknown roles are global.
func (r Role) Region() Region {
	if region, ok := roleRegions[r]; ok {
		return region
	}
	return RegionGlobal
}

// Known reports whether the role appears in the permission matrix domain.
func (r Role) Known() bool {
	_, ok := roleRegions[r]
	return ok
}

// Roles lists every known role.
func Roles() []Role {
	return []Role{
		RoleExecutive,
		RoleAnalyst,
		RoleComplianceUS,
		RoleComplianceEU,
		RoleClientManager,
		RoleEmployee,
	}
}

// PatternKind discriminates how a resource pattern is evaluated.
type PatternKind int

// Pattern kinds, in evaluation precedence order.
const (
	// PatternLiteral matches resources by exact name.
	PatternLiteral PatternKind = iota
	// PatternAll grants every resource.
	PatternAll
	// PatternNone denies every resource.
	PatternNone
	// PatternPrefix matches resources starting with the non-wildcard prefix.
	PatternPrefix
)

// Pattern is a single entry in a permission list: a literal resource name,
// the "all"/"none" sentinels, or a prefix wildcard such as "compliance_*".
type Pattern struct {
	raw    string
	kind   PatternKind
	prefix string
}

// ParsePattern classifies a raw pattern string.
func ParsePattern(raw string) Pattern {
	raw = strings.TrimSpace(raw)
	switch {
	case raw == "all":
		return Pattern{raw: raw, kind: PatternAll}
	case raw == "none":
		return Pattern{raw: raw, kind: PatternNone}
	case strings.Contains(raw, "*"):
		return Pattern{raw: raw, kind: PatternPrefix, prefix: strings.ReplaceAll(raw, "*", "")}
	default:
		return Pattern{raw: raw, kind: PatternLiteral}
	}
}

// Kind returns the pattern discriminator.
func (p Pattern) Kind() PatternKind { return p.kind }

// String returns the pattern as written in the matrix.
func (p Pattern) String() string { return p.raw }

// Matches reports whether the pattern grants the resource. Sentinels never
// match here; the validator handles them before scanning.
//
// Prefix semantics are starts-with against the pattern minus its wildcard
// marker: "compliance_*" keeps the underscore, so it matches "compliance_us"
// but not the bare "compliance". That boundary is deliberate and covered by
// tests.
func (p Pattern) Matches(resource string) bool {
	switch p.kind {
	case PatternLiteral:
		return resource == p.raw
	case PatternPrefix:
		return strings.HasPrefix(resource, p.prefix)
	default:
		return false
	}
}
