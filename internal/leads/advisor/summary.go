package advisor

import (
	"sort"

	"lead_advisor_backend/internal/leads/domain"
)

// summaryTopN is how many leads each priority bucket keeps.
const summaryTopN = 3

// SummaryEntry pairs a lead identity with its evaluated snapshot.
type SummaryEntry struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Advisor Snapshot `json:"advisor"`
}

type SummaryLead struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Score   int    `json:"score"`
	Summary string `json:"summary"`
}

type PriorityBucket struct {
	Count int           `json:"count"`
	Leads []SummaryLead `json:"leads"`
}

// PrioritySummary groups leads by priority tier for dashboards.
type PrioritySummary struct {
	Alta  PriorityBucket `json:"alta"`
	Media PriorityBucket `json:"media"`
	Baixa PriorityBucket `json:"baixa"`
}

// Bucket returns the bucket for level. Unknown levels yield an empty bucket.
func (s PrioritySummary) Bucket(level domain.PriorityLevel) PriorityBucket {
	switch level {
	case domain.PriorityAlta:
		return s.Alta
	case domain.PriorityMedia:
		return s.Media
	case domain.PriorityBaixa:
		return s.Baixa
	}
	return PriorityBucket{Leads: []SummaryLead{}}
}

// SummarizePriorities counts leads per priority tier and keeps the top
// three of each tier by compatibility score, ties in input order.
// Entries with an unknown priority level are ignored.
func SummarizePriorities(entries []SummaryEntry) PrioritySummary {
	buckets := map[domain.PriorityLevel]*PriorityBucket{}
	for _, level := range domain.PriorityLevels {
		buckets[level] = &PriorityBucket{Leads: []SummaryLead{}}
	}

	for _, entry := range entries {
		bucket, ok := buckets[entry.Advisor.Priority.Level]
		if !ok {
			continue
		}
		name := entry.Name
		if name == "" {
			name = "Lead"
		}
		bucket.Count++
		bucket.Leads = append(bucket.Leads, SummaryLead{
			ID:      entry.ID,
			Name:    name,
			Score:   entry.Advisor.Compatibility.Score,
			Summary: entry.Advisor.Compatibility.Summary,
		})
	}

	for _, bucket := range buckets {
		sort.SliceStable(bucket.Leads, func(i, j int) bool {
			return bucket.Leads[i].Score > bucket.Leads[j].Score
		})
		if len(bucket.Leads) > summaryTopN {
			bucket.Leads = bucket.Leads[:summaryTopN]
		}
	}

	return PrioritySummary{
		Alta:  *buckets[domain.PriorityAlta],
		Media: *buckets[domain.PriorityMedia],
		Baixa: *buckets[domain.PriorityBaixa],
	}
}
