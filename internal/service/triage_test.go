package service

import (
	"testing"

	"github.com/fixpoint-labs/repair-shop-service/internal/domain"
)

func question(trigger domain.TriggerPriority) domain.TriageQuestion {
	return domain.TriageQuestion{Text: "q", TriggerPriority: trigger}
}

func TestComputePriority(t *testing.T) {
	tests := []struct {
		name     string
		answered []domain.TriageQuestion
		want     domain.TicketPriority
	}{
		{"no answers", nil, domain.TicketPriorityLow},
		{"only none triggers", []domain.TriageQuestion{question(domain.TriggerPriorityNone)}, domain.TicketPriorityLow},
		{"single medium", []domain.TriageQuestion{question(domain.TriggerPriorityMedium)}, domain.TicketPriorityMedium},
		{"single high", []domain.TriageQuestion{question(domain.TriggerPriorityHigh)}, domain.TicketPriorityHigh},
		{"high beats medium", []domain.TriageQuestion{
			question(domain.TriggerPriorityMedium),
			question(domain.TriggerPriorityHigh),
			question(domain.TriggerPriorityNone),
		}, domain.TicketPriorityHigh},
		{"medium beats none", []domain.TriageQuestion{
			question(domain.TriggerPriorityNone),
			question(domain.TriggerPriorityMedium),
		}, domain.TicketPriorityMedium},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ComputePriority(tc.answered); got != tc.want {
				t.Errorf("ComputePriority() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestComputeLegacyPriority(t *testing.T) {
	tests := []struct {
		name  string
		flags domain.LegacyTriageFlags
		want  domain.TicketPriority
	}{
		{"no flags", domain.LegacyTriageFlags{}, domain.TicketPriorityLow},
		{"gas leak", domain.LegacyTriageFlags{GasLeak: true}, domain.TicketPriorityHigh},
		{"water leak", domain.LegacyTriageFlags{WaterLeak: true}, domain.TicketPriorityHigh},
		{"short circuit", domain.LegacyTriageFlags{ShortCircuit: true}, domain.TicketPriorityHigh},
		{"partial failure", domain.LegacyTriageFlags{PartialFailure: true}, domain.TicketPriorityMedium},
		{"loud noise", domain.LegacyTriageFlags{LoudNoise: true}, domain.TicketPriorityMedium},
		{"high wins over medium", domain.LegacyTriageFlags{LoudNoise: true, GasLeak: true}, domain.TicketPriorityHigh},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ComputeLegacyPriority(tc.flags); got != tc.want {
				t.Errorf("ComputeLegacyPriority() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestLegacyFlagTexts(t *testing.T) {
	texts := legacyFlagTexts(domain.LegacyTriageFlags{GasLeak: true, LoudNoise: true})
	if len(texts) != 2 {
		t.Fatalf("got %d texts, want 2", len(texts))
	}
	if texts[0] != "Gas leak" || texts[1] != "Loud noise" {
		t.Errorf("texts = %v", texts)
	}
}
