package domain

// Category is the closed set of classes a document can be routed to.
// Unknown values never leave the pipeline; anything else collapses to
// CategoryOther.
type Category string

const (
	CategoryEngineering Category = "Engineering"
	CategoryFinance     Category = "Finance"
	CategoryProcurement Category = "Procurement"
	CategoryHR          Category = "HR"
	CategoryLegal       Category = "Legal"
	CategorySafety      Category = "Safety"
	CategoryRegulatory  Category = "Regulatory"
	CategoryOther       Category = "Other"
)

// Categories returns every category in stable enumeration order,
// CategoryOther last. Callers that tie-break on first match rely on
// this order.
func Categories() []Category {
	return []Category{
		CategoryEngineering,
		CategoryFinance,
		CategoryProcurement,
		CategoryHR,
		CategoryLegal,
		CategorySafety,
		CategoryRegulatory,
		CategoryOther,
	}
}

// ParseCategory matches raw against the closed category set.
func ParseCategory(raw string) (Category, bool) {
	for _, c := range Categories() {
		if string(c) == raw {
			return c, true
		}
	}
	return "", false
}

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

func Priorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

func ParsePriority(raw string) (Priority, bool) {
	for _, p := range Priorities() {
		if string(p) == raw {
			return p, true
		}
	}
	return "", false
}

// Classification is the pipeline verdict attached to a document.
type Classification struct {
	Category Category `json:"category"`
	Priority Priority `json:"priority"`
	Analysis string   `json:"analysis"`
}
