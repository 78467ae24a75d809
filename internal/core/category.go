package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"
)

const (
	CategoryAcademic      = "Study/Class (Academic)"
	CategorySleep         = "Sleep"
	CategoryEntertainment = "Phone/Entertainment"
	CategoryFamily        = "Family Time"
	CategoryTravel        = "Travel/Commute"
	CategoryMeals         = "Meals"
	CategoryOthers        = "Others"
)

// assignmentKeyword forces a description into CategoryAcademic.
const assignmentKeyword = "assignment"

type (
	// CategoryRule lists the exact activity descriptions belonging to a category.
	CategoryRule struct {
		Name       string   `json:"name"`
		Activities []string `json:"activities"`
	}

	// CategoryRules is evaluated in order; when two rules list the same
	// description the later one wins.
	CategoryRules []CategoryRule
)

// DefaultCategoryRules returns the built-in category mapping.
func DefaultCategoryRules() CategoryRules {
	return CategoryRules{
		{Name: CategoryAcademic, Activities: []string{
			"Class", "Study", "Make assignment (ReactJS Code)", "Assignment (Data Analytics)",
			"Assignment (AppDev)", "Assignment (PM)", "Assignment (Data Analytics Regression Activity)",
			"Assignment (Consultation for Techno)", "Assignment", "Process documents",
		}},
		{Name: CategorySleep, Activities: []string{"Sleep"}},
		{Name: CategoryEntertainment, Activities: []string{"Phone", "Watch Youtube Videos", "Watch Movie"}},
		{Name: CategoryFamily, Activities: []string{"Family Time"}},
		{Name: CategoryTravel, Activities: []string{
			"Travel to School", "Walk to Room", "Travel to Home", "Walk to Class", "Travel",
			"Walk to consultation", "Walk to gate", "Wait for transportation", "Travel home",
		}},
		{Name: CategoryMeals, Activities: []string{"Breakfast", "Lunch", "Dinner", "Snacks", "Buy coffee"}},
		{Name: CategoryOthers, Activities: []string{"Personal Care/Preparation", "Organization Work"}},
	}
}

// DisplaySubBuckets are labels folded into Others before charting.
func DisplaySubBuckets() []string {
	return []string{"Personal Care/Preparation", "Organization Work"}
}

// LoadCategoryRules decodes a JSON array of {"name", "activities"} objects.
func LoadCategoryRules(r io.Reader) (CategoryRules, error) {
	var rules CategoryRules
	if err := json.NewDecoder(r).Decode(&rules); err != nil {
		return nil, fmt.Errorf("decode category rules: %w", err)
	}
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	return rules, nil
}

// Validate checks that every rule is named.
func (rules CategoryRules) Validate() error {
	if len(rules) == 0 {
		return errors.New("category rules are empty")
	}
	for i, rule := range rules {
		if strings.TrimSpace(rule.Name) == "" {
			return fmt.Errorf("category rule %d has no name", i)
		}
	}
	return nil
}

// Match returns the category whose activities contain the trimmed
// description verbatim, or CategoryOthers.
func (rules CategoryRules) Match(desc string) string {
	desc = strings.TrimSpace(desc)
	category := CategoryOthers
	for _, rule := range rules {
		for _, activity := range rule.Activities {
			if activity == desc {
				category = rule.Name
				break
			}
		}
	}
	return category
}

// Categorize is Match followed by AssignmentOverride.
func (rules CategoryRules) Categorize(desc string) string {
	return AssignmentOverride(desc, rules.Match(desc))
}

// AssignmentOverride returns CategoryAcademic when desc mentions
// "assignment" in any case, and category otherwise.
func AssignmentOverride(desc, category string) string {
	// Caser is stateful, one per call.
	if strings.Contains(cases.Fold().String(desc), assignmentKeyword) {
		return CategoryAcademic
	}
	return category
}

// Enrich trims descriptions and assigns categories in place. The
// assignment override runs as a second pass over all records.
func Enrich(records []ActivityRecord, rules CategoryRules) {
	for i := range records {
		records[i].Description = strings.TrimSpace(records[i].Description)
		records[i].Category = rules.Match(records[i].Description)
	}
	for i := range records {
		records[i].Category = AssignmentOverride(records[i].Description, records[i].Category)
	}
}
