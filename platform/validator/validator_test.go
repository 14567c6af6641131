package validator

import "testing"

type sample struct {
	Name  string `json:"name" validate:"required"`
	Limit int    `json:"limit" validate:"omitempty,min=1,max=10"`
}

func TestFieldErrorsUsesJSONNames(t *testing.T) {
	v := New()
	err := v.Struct(sample{Limit: 50})
	if err == nil {
		t.Fatal("expected validation error")
	}

	fields := FieldErrors(err)
	if fields["name"] != "required" {
		t.Errorf("name tag = %q, want required", fields["name"])
	}
	if fields["limit"] != "max" {
		t.Errorf("limit tag = %q, want max", fields["limit"])
	}
}

func TestFieldErrorsIgnoresOtherErrors(t *testing.T) {
	if got := FieldErrors(nil); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}

func TestValidStructPasses(t *testing.T) {
	if err := New().Struct(sample{Name: "Ana", Limit: 3}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
