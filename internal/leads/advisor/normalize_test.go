package advisor

import (
	"math"
	"testing"
	"time"
)

func TestClampScore(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{in: 50, want: 50},
		{in: 49.5, want: 50},
		{in: 49.4, want: 49},
		{in: -3, want: 0},
		{in: 200, want: 100},
		{in: math.NaN(), want: 0},
		{in: math.Inf(1), want: 100},
		{in: math.Inf(-1), want: 0},
	}

	for _, tt := range tests {
		if got := ClampScore(tt.in); got != tt.want {
			t.Errorf("ClampScore(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestElapsedHours(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		ts   string
		want int
	}{
		{name: "missing", ts: "", want: 24},
		{name: "garbage", ts: "ontem", want: 24},
		{name: "rfc3339", ts: "2024-06-10T10:00:00Z", want: 2},
		{name: "rfc3339 with offset", ts: "2024-06-10T07:00:00-03:00", want: 2},
		{name: "fractional", ts: "2024-06-08T10:00:00.123456Z", want: 50},
		{name: "rounds half up", ts: "2024-06-10T10:30:00Z", want: 2},
		{name: "naive as utc", ts: "2024-06-10T04:00:00", want: 8},
		{name: "postgres text", ts: "2024-06-09 12:00:00+00", want: 24},
		{name: "date only", ts: "2024-06-08", want: 60},
		{name: "future clamps to zero", ts: "2024-06-11T12:00:00Z", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ElapsedHours(tt.ts, now); got != tt.want {
				t.Errorf("ElapsedHours(%q) = %d, want %d", tt.ts, got, tt.want)
			}
		})
	}
}

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "  Preciso HOJE  ", want: "preciso hoje"},
		{in: "Urgência", want: "urgencia"},
		{in: "São Paulo", want: "sao paulo"},
		{in: "ALTA", want: "alta"},
	}

	for _, tt := range tests {
		got := NormalizeText(tt.in)
		if got != tt.want {
			t.Errorf("NormalizeText(%q) = %q, want %q", tt.in, got, tt.want)
		}
		if again := NormalizeText(got); again != got {
			t.Errorf("NormalizeText is not idempotent for %q: %q then %q", tt.in, got, again)
		}
	}
}

func TestFirstName(t *testing.T) {
	tests := map[string]string{
		"Ana Souza":   "Ana",
		"  Joao  ":    "Joao",
		"":            "",
		"   ":         "",
		"Maria\tJose": "Maria",
	}
	for in, want := range tests {
		if got := FirstName(in); got != want {
			t.Errorf("FirstName(%q) = %q, want %q", in, got, want)
		}
	}
}
