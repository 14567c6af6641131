package domain

import "testing"

func TestNormalizeLeadStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want LeadStatus
	}{
		{"", LeadStatusNovo},
		{"novo", LeadStatusNovo},
		{"Em Contato", LeadStatusEmContato},
		{"em-contato", LeadStatusEmContato},
		{"contatado", LeadStatusEmContato},
		{"qualificado", LeadStatusEmContato},
		{"CONVERTIDO", LeadStatusFechado},
		{"ganho", LeadStatusFechado},
		{" perdido ", LeadStatusPerdido},
		{"arquivado", LeadStatusNovo},
	}

	for _, tt := range tests {
		if got := NormalizeLeadStatus(tt.raw); got != tt.want {
			t.Errorf("NormalizeLeadStatus(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestTerminalSuggestion(t *testing.T) {
	tests := []struct {
		raw    string
		want   StatusSuggestion
		wantOK bool
	}{
		{"fechado", SuggestionFechado, true},
		{"Ganho", SuggestionFechado, true},
		{"perdido", SuggestionPerdido, true},
		{"novo", "", false},
		{"em_contato", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := TerminalSuggestion(tt.raw)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("TerminalSuggestion(%q) = (%q, %v), want (%q, %v)", tt.raw, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestSuggestionToLeadStatus(t *testing.T) {
	tests := map[StatusSuggestion]LeadStatus{
		SuggestionNovo:         LeadStatusNovo,
		SuggestionEmConversa:   LeadStatusEmContato,
		SuggestionFollowup:     LeadStatusEmContato,
		SuggestionQuaseFechado: LeadStatusEmContato,
		SuggestionFechado:      LeadStatusFechado,
		SuggestionPerdido:      LeadStatusPerdido,
	}

	for suggestion, want := range tests {
		if got := suggestion.ToLeadStatus(); got != want {
			t.Errorf("%q.ToLeadStatus() = %q, want %q", suggestion, got, want)
		}
		if !suggestion.IsValid() {
			t.Errorf("%q should be valid", suggestion)
		}
		if suggestion.ToLeadStatus().IsTerminal() != suggestion.IsTerminal() {
			t.Errorf("terminal flag of %q changed when mapped to stored status", suggestion)
		}
	}
}

func TestSuggestionLabels(t *testing.T) {
	if got := SuggestionFollowup.Label(); got != "Follow-up" {
		t.Errorf("label = %q", got)
	}
	if got := StatusSuggestion("x").Label(); got != "x" {
		t.Errorf("unknown label = %q", got)
	}
	if StatusSuggestion("x").IsValid() {
		t.Error("unknown suggestion should be invalid")
	}
}

func TestMessageAndStageOrder(t *testing.T) {
	if len(MessageStyles) != 3 || MessageStyles[0] != MessageFast || MessageStyles[2] != MessagePersuasive {
		t.Errorf("unexpected message style order: %v", MessageStyles)
	}
	if len(SequenceStages) != 6 || SequenceStages[0] != StageFirstContact || SequenceStages[5] != StageReservation {
		t.Errorf("unexpected stage order: %v", SequenceStages)
	}
	for _, stage := range SequenceStages {
		if stage.Label() == "" {
			t.Errorf("stage %q has no label", stage)
		}
	}
}

func TestStatusAliases(t *testing.T) {
	aliases := LeadStatusEmContato.Aliases()
	if len(aliases) == 0 || aliases[0] != "em_contato" {
		t.Fatalf("aliases = %v, want canonical first", aliases)
	}
	for _, alias := range aliases {
		if NormalizeLeadStatus(alias) != LeadStatusEmContato {
			t.Errorf("alias %q does not normalize back", alias)
		}
	}

	terminal := TerminalStatusAliases()
	want := []string{"fechado", "convertido", "ganho", "perdido"}
	if len(terminal) != len(want) {
		t.Fatalf("terminal aliases = %v", terminal)
	}
	for i := range want {
		if terminal[i] != want[i] {
			t.Errorf("terminal[%d] = %q, want %q", i, terminal[i], want[i])
		}
	}
}

func TestStatusKeyFoldsSeparators(t *testing.T) {
	tests := map[string]string{
		"em-contato":     "em_contato",
		"  Em  Contato ": "em_contato",
		"em - contato":   "em_contato",
		"EMCONTATO":      "emcontato",
		"\tperdido\n":    "perdido",
		"":               "",
	}
	for raw, want := range tests {
		if got := StatusKey(raw); got != want {
			t.Errorf("StatusKey(%q) = %q, want %q", raw, got, want)
		}
	}
	if NormalizeLeadStatus("emcontato") != LeadStatusEmContato {
		t.Error("emcontato should normalize to em_contato")
	}
}

func TestAliasTableCoversEveryAlias(t *testing.T) {
	aliases, statuses := AliasTable()
	if len(aliases) != len(statuses) || len(aliases) == 0 {
		t.Fatalf("alias table lengths %d/%d", len(aliases), len(statuses))
	}
	for i, alias := range aliases {
		if StatusKey(alias) != alias {
			t.Errorf("alias %q is not in folded form", alias)
		}
		if got := NormalizeLeadStatus(alias); string(got) != statuses[i] {
			t.Errorf("alias %q maps to %q in table, %q when normalized", alias, statuses[i], got)
		}
	}
}
