package advisor

import "fmt"

const (
	compatibilityHigh = 80
	compatibilityGood = 55
)

func evaluateCompatibility(lead LeadSnapshot, score int) Compatibility {
	compat := Compatibility{
		Score:   score,
		Label:   compatibilityLabel(score),
		Summary: "Este lead tem compatibilidade alta com os filhotes disponiveis.",
	}

	if puppy, ok := lead.BestPuppy(); ok && puppy.Name != "" {
		compat.PuppyName = puppy.Name
		compat.Summary = fmt.Sprintf("Este lead tem maior chance de fechar com %s.", puppy.Name)
	}

	return compat
}

func compatibilityLabel(score int) string {
	switch {
	case score >= compatibilityHigh:
		return "Alta chance"
	case score >= compatibilityGood:
		return "Boa chance"
	default:
		return "Baixa chance"
	}
}
