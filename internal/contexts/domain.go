package contexts

// Context is an isolated document collection in the external search
// product, addressed here only by identifier plus the label filter that
// scopes queries to it. No searching happens in this service.
type Context struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Filter string `json:"filter"`
}

// Context identifiers.
const (
	GlobalResearch   = "global_research"
	USCompliance     = "us_compliance"
	EUCompliance     = "eu_compliance"
	ClientAnalytics  = "client_analytics"
	InternalTraining = "internal_training"
)

// registry is the ordered catalogue of knowledge contexts.
var registry = []Context{
	{ID: GlobalResearch, Label: "Global Research", Filter: "category:research"},
	{ID: USCompliance, Label: "US Compliance", Filter: "region:us AND category:compliance"},
	{ID: EUCompliance, Label: "EU Compliance", Filter: "region:eu AND category:compliance"},
	{ID: ClientAnalytics, Label: "Client Analytics", Filter: "category:client"},
	{ID: InternalTraining, Label: "Internal Training", Filter: "category:training"},
}

// Registry returns every known context in catalogue order.
func Registry() []Context {
	out := make([]Context, len(registry))
	copy(out, registry)
	return out
}

// Lookup finds a context by identifier.
func Lookup(id string) (Context, bool) {
	for _, c := range registry {
		if c.ID == id {
			return c, true
		}
	}
	return Context{}, false
}
