package domain

// PriorityLevel is the triage bucket used to order outreach work.
type PriorityLevel string

const (
	PriorityAlta  PriorityLevel = "alta"
	PriorityMedia PriorityLevel = "media"
	PriorityBaixa PriorityLevel = "baixa"
)

// PriorityLevels lists the tiers from hottest to coldest.
var PriorityLevels = []PriorityLevel{PriorityAlta, PriorityMedia, PriorityBaixa}

func (p PriorityLevel) IsValid() bool {
	return p == PriorityAlta || p == PriorityMedia || p == PriorityBaixa
}
