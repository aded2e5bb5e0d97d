package models

type Category string

const (
	CategoryHealth        Category = "health"
	CategoryCareer        Category = "career"
	CategoryPersonal      Category = "personal"
	CategoryFinancial     Category = "financial"
	CategoryRelationships Category = "relationships"
	CategoryOther         Category = "other"
)

// CategoryAll is the list filter value that matches every category.
const CategoryAll = "all"

type CategoryInfo struct {
	Value Category `json:"value"`
	Label string   `json:"label"`
}

var Categories = []CategoryInfo{
	{Value: CategoryHealth, Label: "Health & Fitness"},
	{Value: CategoryCareer, Label: "Career & Work"},
	{Value: CategoryPersonal, Label: "Personal Development"},
	{Value: CategoryFinancial, Label: "Financial"},
	{Value: CategoryRelationships, Label: "Relationships"},
	{Value: CategoryOther, Label: "Other"},
}

func (c Category) Valid() bool {
	for _, info := range Categories {
		if info.Value == c {
			return true
		}
	}
	return false
}

// Label returns the display label, falling back to "Other" for unknown codes.
func (c Category) Label() string {
	for _, info := range Categories {
		if info.Value == c {
			return info.Label
		}
	}
	return "Other"
}
