// pkg/registry/schema.go
package registry

// StepCatalog is the machine-readable directory of wizard pages. It carries
// the display metadata that is not part of the form data itself, so the
// frontend and ops tooling can render a step list without hardcoding it.
type StepCatalog struct {
	Version     string     `json:"version"`
	LastUpdated string     `json:"lastUpdated"`
	Steps       []StepInfo `json:"steps"`
}

// StepInfo describes one wizard page.
type StepInfo struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description,omitempty"`
	Section       string   `json:"section,omitempty"`
	Prefillable   bool     `json:"prefillable,omitempty"`
	SkipCondition string   `json:"skipCondition,omitempty"`
	Tags          []string `json:"tags,omitempty"`
}
