// Package domain holds the lead status, priority and message vocabularies.
package domain

import (
	"regexp"
	"strings"
)

// StatusSuggestion is the pipeline status the advisor recommends for a lead.
type StatusSuggestion string

const (
	SuggestionNovo         StatusSuggestion = "novo"
	SuggestionEmConversa   StatusSuggestion = "em_conversa"
	SuggestionFollowup     StatusSuggestion = "followup"
	SuggestionQuaseFechado StatusSuggestion = "quase_fechado"
	SuggestionFechado      StatusSuggestion = "fechado"
	SuggestionPerdido      StatusSuggestion = "perdido"
)

var suggestionLabels = map[StatusSuggestion]string{
	SuggestionNovo:         "Novo",
	SuggestionEmConversa:   "Em conversa",
	SuggestionFollowup:     "Follow-up",
	SuggestionQuaseFechado: "Quase fechado",
	SuggestionFechado:      "Fechado",
	SuggestionPerdido:      "Perdido",
}

// IsValid reports whether s is one of the six known suggestions.
func (s StatusSuggestion) IsValid() bool {
	_, ok := suggestionLabels[s]
	return ok
}

// IsTerminal reports whether s is an absorbing state (closed or lost).
func (s StatusSuggestion) IsTerminal() bool {
	return s == SuggestionFechado || s == SuggestionPerdido
}

// Label returns the operator-facing label, or the raw value for unknown suggestions.
func (s StatusSuggestion) Label() string {
	if label, ok := suggestionLabels[s]; ok {
		return label
	}
	return string(s)
}

// LeadStatus is the status persisted on the lead row.
type LeadStatus string

const (
	LeadStatusNovo      LeadStatus = "novo"
	LeadStatusEmContato LeadStatus = "em_contato"
	LeadStatusFechado   LeadStatus = "fechado"
	LeadStatusPerdido   LeadStatus = "perdido"
)

// leadStatusAliases lists every raw spelling accepted for each stored status,
// canonical value first. convertido and ganho are host CRM spellings of a
// closed deal; the lead form itself only ever writes fechado.
var leadStatusAliases = []struct {
	status  LeadStatus
	aliases []string
}{
	{LeadStatusNovo, []string{"novo"}},
	{LeadStatusEmContato, []string{"em_contato", "emcontato", "contatado", "contato", "qualificado"}},
	{LeadStatusFechado, []string{"fechado", "convertido", "ganho"}},
	{LeadStatusPerdido, []string{"perdido"}},
}

var leadStatusByAlias = func() map[string]LeadStatus {
	out := make(map[string]LeadStatus)
	for _, entry := range leadStatusAliases {
		for _, alias := range entry.aliases {
			out[alias] = entry.status
		}
	}
	return out
}()

// Aliases returns the raw spellings that normalize to s, canonical first.
func (s LeadStatus) Aliases() []string {
	for _, entry := range leadStatusAliases {
		if entry.status == s {
			return append([]string(nil), entry.aliases...)
		}
	}
	return nil
}

// AliasTable returns parallel slices of every normalized alias and the
// stored status it maps to, for matching in SQL.
func AliasTable() (aliases []string, statuses []string) {
	for _, entry := range leadStatusAliases {
		for _, alias := range entry.aliases {
			aliases = append(aliases, alias)
			statuses = append(statuses, string(entry.status))
		}
	}
	return aliases, statuses
}

// TerminalStatusAliases returns every raw spelling of a terminal stored status.
func TerminalStatusAliases() []string {
	return append(LeadStatusFechado.Aliases(), LeadStatusPerdido.Aliases()...)
}

// IsTerminal reports whether the stored status is closed or lost.
func (s LeadStatus) IsTerminal() bool {
	return s == LeadStatusFechado || s == LeadStatusPerdido
}

// IsValid reports whether s is a canonical stored status.
func (s LeadStatus) IsValid() bool {
	switch s {
	case LeadStatusNovo, LeadStatusEmContato, LeadStatusFechado, LeadStatusPerdido:
		return true
	}
	return false
}

// NormalizeLeadStatus maps a raw stored status, including legacy aliases,
// onto a canonical LeadStatus. Unknown or empty values become novo.
func NormalizeLeadStatus(raw string) LeadStatus {
	if status, ok := leadStatusByAlias[StatusKey(raw)]; ok {
		return status
	}
	return LeadStatusNovo
}

// TerminalSuggestion returns the terminal suggestion matching a raw stored
// status, host aliases included. ok is false for non-terminal or unknown
// values.
func TerminalSuggestion(raw string) (StatusSuggestion, bool) {
	status, known := leadStatusByAlias[StatusKey(raw)]
	if !known {
		return "", false
	}
	switch status {
	case LeadStatusFechado:
		return SuggestionFechado, true
	case LeadStatusPerdido:
		return SuggestionPerdido, true
	}
	return "", false
}

// ToLeadStatus maps an advisor suggestion onto the stored status vocabulary.
// All active conversation stages collapse into em_contato.
func (s StatusSuggestion) ToLeadStatus() LeadStatus {
	switch s {
	case SuggestionEmConversa, SuggestionFollowup, SuggestionQuaseFechado:
		return LeadStatusEmContato
	case SuggestionFechado:
		return LeadStatusFechado
	case SuggestionPerdido:
		return LeadStatusPerdido
	default:
		return LeadStatusNovo
	}
}

var statusSeparators = regexp.MustCompile(`[\s-]+`)

// StatusKey lowercases raw and folds whitespace and hyphen runs into a single
// underscore. The repository applies the same folding in SQL.
func StatusKey(raw string) string {
	key := statusSeparators.ReplaceAllString(strings.ToLower(raw), "_")
	return strings.Trim(key, "_")
}
