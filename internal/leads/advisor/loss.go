package advisor

import "fmt"

const coldLeadHours = 48

// evaluateLoss flags stalled leads. It never changes the suggested status.
func evaluateLoss(lead LeadSnapshot, status Status, hoursSinceUpdate int) Loss {
	cold := hoursSinceUpdate >= coldLeadHours && !status.Suggestion.IsTerminal()

	summary := "Lead ainda dentro da janela esperada."
	if cold {
		summary = fmt.Sprintf("Lead sem resposta ha %dh.", hoursSinceUpdate)
	}

	return Loss{
		IsCold:              cold,
		HoursSinceUpdate:    hoursSinceUpdate,
		Summary:             summary,
		ReactivationMessage: reactivationMessage(lead),
	}
}

func reactivationMessage(lead LeadSnapshot) string {
	offer := "o filhote ideal"
	if lead.PreferredColor != "" {
		offer = "um Spitz " + lead.PreferredColor
	}
	return fmt.Sprintf(
		"%s Temos %s reservado para voce e posso garantir as mesmas condicoes por mais 24h. Me da um ok para te enviar novidades?",
		greeting(FirstName(lead.Name)), offer,
	)
}

func greeting(firstName string) string {
	if firstName == "" {
		return "Oi!"
	}
	return "Oi " + firstName + "!"
}
