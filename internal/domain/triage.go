package domain

import "time"

// TriggerPriority is the severity a checked triage question contributes.
type TriggerPriority string

const (
	TriggerPriorityNone   TriggerPriority = "NONE"
	TriggerPriorityMedium TriggerPriority = "MEDIUM"
	TriggerPriorityHigh   TriggerPriority = "HIGH"
)

// TriageQuestion is one yes/no diagnostic checklist entry. A nil CategoryID
// means the question applies to every device category.
type TriageQuestion struct {
	ID              string
	Text            string
	TriggerPriority TriggerPriority
	CategoryID      *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// LegacyTriageFlags are the fixed pre-checklist booleans kept for backward
// compatibility with intakes submitted before dynamic questions existed.
type LegacyTriageFlags struct {
	GasLeak        bool
	WaterLeak      bool
	ShortCircuit   bool
	PartialFailure bool
	LoudNoise      bool
}

// Empty reports whether no legacy flag is set.
func (f LegacyTriageFlags) Empty() bool {
	return !f.GasLeak && !f.WaterLeak && !f.ShortCircuit && !f.PartialFailure && !f.LoudNoise
}
