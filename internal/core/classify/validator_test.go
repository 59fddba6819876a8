package classify

import (
	"testing"

	"github.com/kirillkom/document-intake/internal/core/domain"
)

func TestValidatorCategoryOverride(t *testing.T) {
	validator := NewValidator(DefaultTables(), DefaultOverrideThreshold)

	cases := []struct {
		name string
		text string
		ai   domain.Category
		want domain.Category
	}{
		{
			name: "single hit keeps model category",
			text: "the invoice for last month is attached below",
			ai:   domain.CategoryHR,
			want: domain.CategoryHR,
		},
		{
			name: "two distinct hits override",
			text: "the invoice and the payment confirmation are attached",
			ai:   domain.CategoryHR,
			want: domain.CategoryFinance,
		},
		{
			name: "repeated keyword counts once",
			text: "invoice invoice invoice invoice",
			ai:   domain.CategoryHR,
			want: domain.CategoryHR,
		},
		{
			name: "tie keeps model category",
			text: "invoice payment for the contract agreement",
			ai:   domain.CategoryHR,
			want: domain.CategoryHR,
		},
		{
			name: "no hits keep model category",
			text: "plain message with nothing remarkable inside",
			ai:   domain.CategoryLegal,
			want: domain.CategoryLegal,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := validator.Validate(tc.text, "file.bin", domain.Classification{
				Category: tc.ai,
				Priority: domain.PriorityLow,
				Analysis: "x",
			})
			if got.Category != tc.want {
				t.Fatalf("Validate() category = %s, want %s", got.Category, tc.want)
			}
		})
	}
}

func TestValidatorFilenameCountsTowardOverride(t *testing.T) {
	validator := NewValidator(DefaultTables(), DefaultOverrideThreshold)

	got := validator.Validate("please settle the payment", "invoice_march.txt", domain.Classification{
		Category: domain.CategoryHR,
		Priority: domain.PriorityLow,
		Analysis: "x",
	})
	if got.Category != domain.CategoryFinance {
		t.Fatalf("expected filename hit to complete the override, got %s", got.Category)
	}
}

func TestValidatorFilenameTriggersPriority(t *testing.T) {
	validator := NewValidator(DefaultTables(), DefaultOverrideThreshold)

	got := validator.Validate("plain message with nothing remarkable inside", "urgent_report.txt", domain.Classification{
		Category: domain.CategoryOther,
		Priority: domain.PriorityLow,
		Analysis: "x",
	})
	if got.Priority != domain.PriorityHigh {
		t.Fatalf("expected High from filename trigger alone, got %s", got.Priority)
	}
}

func TestValidatorPriorityPrecedence(t *testing.T) {
	validator := NewValidator(DefaultTables(), DefaultOverrideThreshold)

	cases := []struct {
		name string
		text string
		ai   domain.Priority
		want domain.Priority
	}{
		{"high beats medium", "urgent and important request", domain.PriorityLow, domain.PriorityHigh},
		{"medium tier alone", "important request", domain.PriorityLow, domain.PriorityMedium},
		{"model priority as tertiary", "plain message with nothing remarkable inside", domain.PriorityMedium, domain.PriorityMedium},
		{"default low", "plain message with nothing remarkable inside", domain.Priority(""), domain.PriorityLow},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := validator.Validate(tc.text, "file.bin", domain.Classification{
				Category: domain.CategoryOther,
				Priority: tc.ai,
				Analysis: "x",
			})
			if got.Priority != tc.want {
				t.Fatalf("Validate() priority = %s, want %s", got.Priority, tc.want)
			}
		})
	}
}

func TestValidatorPassesAnalysisThrough(t *testing.T) {
	validator := NewValidator(DefaultTables(), DefaultOverrideThreshold)

	in := domain.Classification{
		Category: domain.CategoryOther,
		Priority: domain.PriorityLow,
		Analysis: "A very particular summary.",
	}
	got := validator.Validate("urgent invoice payment", "inv.txt", in)
	if got.Analysis != in.Analysis {
		t.Fatalf("Validate() analysis = %q, want passthrough", got.Analysis)
	}
}

func TestValidatorIdempotent(t *testing.T) {
	validator := NewValidator(DefaultTables(), DefaultOverrideThreshold)

	in := domain.Classification{
		Category: domain.CategoryHR,
		Priority: domain.PriorityMedium,
		Analysis: "Summary.",
	}
	first := validator.Validate("urgent invoice payment due", "inv.pdf", in)
	second := validator.Validate("urgent invoice payment due", "inv.pdf", in)
	if first != second {
		t.Fatalf("Validate() not deterministic: %+v vs %+v", first, second)
	}
}
