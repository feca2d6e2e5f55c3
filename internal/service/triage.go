package service

import "github.com/fixpoint-labs/repair-shop-service/internal/domain"

// ComputePriority reduces the answered checklist to a single priority by
// max-dominance: any HIGH trigger wins, else any MEDIUM, else LOW. Questions
// with TriggerPriorityNone contribute nothing.
func ComputePriority(answered []domain.TriageQuestion) domain.TicketPriority {
	priority := domain.TicketPriorityLow
	for _, question := range answered {
		switch question.TriggerPriority {
		case domain.TriggerPriorityHigh:
			return domain.TicketPriorityHigh
		case domain.TriggerPriorityMedium:
			priority = domain.TicketPriorityMedium
		}
	}
	return priority
}

// ComputeLegacyPriority evaluates the fixed pre-checklist flags used by
// intakes that predate dynamic questions.
func ComputeLegacyPriority(flags domain.LegacyTriageFlags) domain.TicketPriority {
	if flags.GasLeak || flags.WaterLeak || flags.ShortCircuit {
		return domain.TicketPriorityHigh
	}
	if flags.PartialFailure || flags.LoudNoise {
		return domain.TicketPriorityMedium
	}
	return domain.TicketPriorityLow
}

// legacyFlagTexts mirrors the wording shown on the old fixed checklist so the
// stored triage record stays readable alongside dynamic answers.
func legacyFlagTexts(flags domain.LegacyTriageFlags) []string {
	var texts []string
	if flags.GasLeak {
		texts = append(texts, "Gas leak")
	}
	if flags.WaterLeak {
		texts = append(texts, "Water leak")
	}
	if flags.ShortCircuit {
		texts = append(texts, "Short circuit")
	}
	if flags.PartialFailure {
		texts = append(texts, "Partial failure")
	}
	if flags.LoudNoise {
		texts = append(texts, "Loud noise")
	}
	return texts
}
