package advisor

import (
	"testing"

	"lead_advisor_backend/internal/leads/domain"
)

func entry(id, name string, level domain.PriorityLevel, score int) SummaryEntry {
	return SummaryEntry{
		ID:   id,
		Name: name,
		Advisor: Snapshot{
			Compatibility: Compatibility{Score: score, Summary: "s-" + id},
			Priority:      Priority{Level: level},
		},
	}
}

func TestSummarizePrioritiesTopThreeStable(t *testing.T) {
	entries := []SummaryEntry{
		entry("a", "A", domain.PriorityAlta, 60),
		entry("b", "B", domain.PriorityAlta, 95),
		entry("c", "C", domain.PriorityAlta, 80),
		entry("d", "D", domain.PriorityAlta, 95),
		entry("e", "E", domain.PriorityAlta, 70),
	}

	got := SummarizePriorities(entries)

	if got.Alta.Count != 5 {
		t.Errorf("alta count = %d, want 5", got.Alta.Count)
	}
	wantIDs := []string{"b", "d", "c"}
	if len(got.Alta.Leads) != len(wantIDs) {
		t.Fatalf("alta leads = %d, want 3", len(got.Alta.Leads))
	}
	for i, id := range wantIDs {
		if got.Alta.Leads[i].ID != id {
			t.Errorf("alta[%d] = %q, want %q", i, got.Alta.Leads[i].ID, id)
		}
	}
	if got.Media.Count != 0 || len(got.Media.Leads) != 0 || got.Media.Leads == nil {
		t.Errorf("media bucket should be empty but non-nil: %+v", got.Media)
	}
}

func TestSummarizePrioritiesBuckets(t *testing.T) {
	entries := []SummaryEntry{
		entry("a", "", domain.PriorityBaixa, 30),
		entry("b", "Bruno", domain.PriorityMedia, 60),
		entry("c", "Caio", domain.PriorityBaixa, 40),
		entry("x", "Ghost", domain.PriorityLevel("urgentissimo"), 99),
	}

	got := SummarizePriorities(entries)

	if got.Baixa.Count != 2 || got.Media.Count != 1 || got.Alta.Count != 0 {
		t.Errorf("counts = %d/%d/%d", got.Alta.Count, got.Media.Count, got.Baixa.Count)
	}
	if got.Baixa.Leads[0].ID != "c" || got.Baixa.Leads[1].Name != "Lead" {
		t.Errorf("baixa leads = %+v", got.Baixa.Leads)
	}
	if got.Bucket(domain.PriorityMedia).Leads[0].Summary != "s-b" {
		t.Errorf("media = %+v", got.Media)
	}
}

func TestSummarizePrioritiesFromBuiltSnapshots(t *testing.T) {
	var entries []SummaryEntry
	for _, lead := range propertyLeads() {
		entries = append(entries, SummaryEntry{ID: lead.ID, Name: lead.Name, Advisor: Build(lead, testNow)})
	}

	got := SummarizePriorities(entries)
	total := 0
	for _, level := range domain.PriorityLevels {
		bucket := got.Bucket(level)
		total += bucket.Count
		if len(bucket.Leads) > 3 {
			t.Errorf("%s has %d leads", level, len(bucket.Leads))
		}
		for i := 1; i < len(bucket.Leads); i++ {
			if bucket.Leads[i].Score > bucket.Leads[i-1].Score {
				t.Errorf("%s scores not non-increasing: %+v", level, bucket.Leads)
			}
		}
	}
	if total != len(entries) {
		t.Errorf("total count = %d, want %d", total, len(entries))
	}
}
