package contexts

import (
	"testing"

	"github.com/datavault-fs/accessd/internal/access"
)

func ids(list []Context) []string {
	out := make([]string, 0, len(list))
	for _, c := range list {
		out = append(out, c.ID)
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestAccessibleRegionalIsolation(t *testing.T) {
	cases := []struct {
		name   string
		role   access.Role
		region access.Region
		want   []string
	}{
		{"us compliance at home", access.RoleComplianceUS, access.RegionUS, []string{GlobalResearch, USCompliance}},
		{"us compliance travelling", access.RoleComplianceUS, access.RegionEU, []string{GlobalResearch}},
		{"eu compliance at home", access.RoleComplianceEU, access.RegionEU, []string{GlobalResearch, EUCompliance}},
		{"eu compliance travelling", access.RoleComplianceEU, access.RegionGlobal, []string{GlobalResearch}},
		{"executive anywhere", access.RoleExecutive, access.RegionEU, []string{GlobalResearch, ClientAnalytics}},
		{"employee training only", access.RoleEmployee, access.RegionUS, []string{InternalTraining}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ids(Accessible(tc.role, tc.region))
			if !equal(got, tc.want) {
				t.Fatalf("accessible = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestAccessibleUnknownRole(t *testing.T) {
	if got := Accessible(access.Role("contractor"), access.RegionUS); got != nil {
		t.Fatalf("unknown role got contexts: %v", got)
	}
}

func TestRegistryFiltersResolve(t *testing.T) {
	for _, c := range Registry() {
		if c.Filter == "" || c.Label == "" {
			t.Fatalf("context %s missing filter or label", c.ID)
		}
	}
	if _, ok := Lookup("shadow_vault"); ok {
		t.Fatalf("unexpected context resolved")
	}
}
