// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"

	"benefits-wizard/internal/models"
)

// LoadCatalog reads a step catalog from a JSON file.
func LoadCatalog(path string) (*StepCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cat StepCatalog
	if err := json.Unmarshal(data, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

// Validate checks that the catalog lists exactly the canonical steps, in
// wizard order. A catalog that drifts from the taxonomy would silently
// mislabel pages, so drift is an error rather than a warning.
func (c *StepCatalog) Validate() error {
	if len(c.Steps) != models.TotalSteps {
		return fmt.Errorf("catalog has %d steps, want %d", len(c.Steps), models.TotalSteps)
	}
	for i, step := range c.Steps {
		want := models.StepOrder[i]
		if step.ID != string(want) {
			return fmt.Errorf("catalog step %d is %q, want %q", i+1, step.ID, want)
		}
		if step.Title == "" {
			return fmt.Errorf("catalog step %q has no title", step.ID)
		}
	}
	return nil
}

// Lookup returns the entry for a step id.
func (c *StepCatalog) Lookup(id models.StepID) (StepInfo, bool) {
	for _, step := range c.Steps {
		if step.ID == string(id) {
			return step, true
		}
	}
	return StepInfo{}, false
}

// Default builds the built-in catalog from the canonical taxonomy. It is used
// when no catalog file is configured.
func Default() *StepCatalog {
	cat := &StepCatalog{Version: "1.0.0"}
	for _, id := range models.StepOrder {
		info := StepInfo{
			ID:    string(id),
			Title: models.StepTitles[id],
		}
		switch id {
		case models.StepApplicantInfo:
			info.Prefillable = true
		case models.StepResources:
			info.SkipCondition = "only TANF selected"
		case models.StepProgramSpecific:
			info.SkipCondition = "no selected program has a dedicated section"
		}
		cat.Steps = append(cat.Steps, info)
	}
	return cat
}
