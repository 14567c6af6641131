package advisor

import (
	"fmt"
	"strings"

	"lead_advisor_backend/internal/leads/domain"
)

const (
	urgencyBonus = 10
	keywordBonus = 5
	recencyBonus = 5

	priorityHigh = 80
	priorityLow  = 55

	// recentLeadHours is the age below which a lead counts as fresh.
	recentLeadHours = 8
)

var urgentKeywords = []string{"urgente", "hoje", "agora"}

// evaluatePriority adds bonuses on top of the compatibility score.
// The result is intentionally left unclamped above 100.
func evaluatePriority(lead LeadSnapshot, compatScore int, hoursSinceCreated int) Priority {
	score := compatScore
	reasons := []string{}

	if NormalizeText(lead.AIUrgency) == "alta" {
		score += urgencyBonus
		reasons = append(reasons, "urgencia alta")
	}
	if containsAny(NormalizeText(lead.Message), urgentKeywords) {
		score += keywordBonus
		reasons = append(reasons, "mensagem urgente")
	}
	if hoursSinceCreated < recentLeadHours {
		score += recencyBonus
		reasons = append(reasons, "lead recente")
	}

	reason := append([]string{fmt.Sprintf("Score %d%%", score)}, reasons...)

	return Priority{
		Level:  priorityLevel(score),
		Score:  score,
		Reason: strings.Join(reason, " | "),
	}
}

func priorityLevel(score int) domain.PriorityLevel {
	switch {
	case score >= priorityHigh:
		return domain.PriorityAlta
	case score < priorityLow:
		return domain.PriorityBaixa
	default:
		return domain.PriorityMedia
	}
}
