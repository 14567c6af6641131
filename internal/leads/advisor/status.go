package advisor

import (
	"fmt"

	"lead_advisor_backend/internal/leads/domain"
)

const (
	// closeScore lets an unmatched lead reach quase_fechado on score alone.
	closeScore = 85
	// recentContactHours and staleContactHours bound the grey zone where a lead stays novo.
	recentContactHours = 8
	staleContactHours  = 24
)

// suggestStatus applies the transition rules in precedence order. Terminal
// stored statuses, host aliases such as convertido included, are echoed back
// before any heuristic runs, and the
// quase_fechado check precedes the recency checks so a hot matched lead is
// never demoted by elapsed time.
func suggestStatus(lead LeadSnapshot, priority Priority, hoursSinceUpdate int) Status {
	if terminal, ok := domain.TerminalSuggestion(NormalizeText(lead.Status)); ok {
		if terminal == domain.SuggestionFechado {
			return newStatus(terminal, "Status ja finalizado.")
		}
		return newStatus(terminal, "Lead marcado como perdido.")
	}

	switch {
	case priority.Level == domain.PriorityAlta && (lead.MatchedPuppy != nil || priority.Score >= closeScore):
		return newStatus(domain.SuggestionQuaseFechado, "Score alto e filhote reservado.")
	case hoursSinceUpdate <= recentContactHours:
		return newStatus(domain.SuggestionEmConversa, "Contato recente (menos de 8h).")
	case hoursSinceUpdate > staleContactHours:
		return newStatus(domain.SuggestionFollowup, fmt.Sprintf("Sem resposta ha %dh.", hoursSinceUpdate))
	default:
		return newStatus(domain.SuggestionNovo, "Lead aguardando primeiro contato.")
	}
}

func newStatus(suggestion domain.StatusSuggestion, reason string) Status {
	return Status{Suggestion: suggestion, Label: suggestion.Label(), Reason: reason}
}
