package sanitize

import "testing"

func TestText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Ana Souza", "Ana Souza"},
		{"empty", "", ""},
		{"tags", "<b>Mel</b> <script>x()</script>", "Mel x()"},
		{"encoded tag", "&lt;img src=x&gt;Bia", "Bia"},
		{"entities", "Tom &amp; Jerry", "Tom & Jerry"},
		{"whitespace", "  Sao   Paulo\n\t", "Sao Paulo"},
		{"control chars", "Ca\x00io\x07", "Caio"},
		{"accents kept", "João Conceição", "João Conceição"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Text(tt.in); got != tt.want {
				t.Errorf("Text(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
