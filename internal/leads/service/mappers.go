package service

import (
	"encoding/json"
	"net/url"
	"strings"
	"time"

	"lead_advisor_backend/internal/leads/advisor"
	"lead_advisor_backend/internal/leads/repository"
	"lead_advisor_backend/internal/leads/transport"
	"lead_advisor_backend/platform/sanitize"
)

const (
	whatsAppBaseURL   = "https://wa.me/"
	defaultPuppyLabel = "Filhote"
)

// storedPuppy is one element of lead_ai_insights.suggested_puppies.
type storedPuppy struct {
	PuppyID string `json:"puppy_id"`
	ID      string `json:"id"`
	Name    string `json:"name"`
	Reason  string `json:"reason"`
	Color   string `json:"color"`
	Sex     string `json:"sex"`
}

// snapshotFromRow maps a store row onto the advisor input.
func snapshotFromRow(row repository.AdvisorRow) advisor.LeadSnapshot {
	lead := advisor.LeadSnapshot{
		ID:               row.ID.String(),
		Name:             sanitize.Text(row.Name),
		Message:          sanitize.Text(row.Message),
		Status:           row.Status,
		City:             sanitize.Text(row.City),
		State:            sanitize.Text(row.State),
		PreferredColor:   sanitize.Text(row.PreferredColor),
		PreferredSex:     sanitize.Text(row.PreferredSex),
		CreatedAt:        formatTimestamp(&row.CreatedAt),
		UpdatedAt:        formatTimestamp(row.UpdatedAt),
		AIScore:          row.AIScore,
		AIIntent:         row.AIIntent,
		AIUrgency:        row.AIUrgency,
		SuggestedPuppies: decodeSuggestedPuppies(row.SuggestedPuppies),
	}

	if row.MatchedPuppyID != "" || row.MatchedPuppyName != "" {
		lead.MatchedPuppy = &advisor.Puppy{
			ID:    row.MatchedPuppyID,
			Name:  sanitize.Text(row.MatchedPuppyName),
			Color: sanitize.Text(row.MatchedPuppyColor),
			Sex:   sanitize.Text(row.MatchedPuppySex),
		}
	}

	return lead
}

// decodeSuggestedPuppies is lenient: malformed JSON yields no suggestions and
// entries without a usable id are dropped.
func decodeSuggestedPuppies(raw []byte) []advisor.Puppy {
	if len(raw) == 0 {
		return nil
	}

	var stored []storedPuppy
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil
	}

	puppies := make([]advisor.Puppy, 0, len(stored))
	for _, item := range stored {
		id := strings.TrimSpace(item.PuppyID)
		if id == "" {
			id = strings.TrimSpace(item.ID)
		}
		if id == "" {
			continue
		}
		name := sanitize.Text(item.Name)
		if name == "" {
			name = defaultPuppyLabel
		}
		puppies = append(puppies, advisor.Puppy{
			ID:     id,
			Name:   name,
			Color:  sanitize.Text(item.Color),
			Sex:    sanitize.Text(item.Sex),
			Reason: sanitize.Text(item.Reason),
		})
	}
	return puppies
}

func formatTimestamp(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func snapshotFromRequest(req transport.LeadSnapshotRequest) advisor.LeadSnapshot {
	lead := advisor.LeadSnapshot{
		ID:             req.ID,
		Name:           sanitize.Text(req.Name),
		Message:        sanitize.Text(req.Message),
		Status:         req.Status,
		City:           sanitize.Text(req.City),
		State:          sanitize.Text(req.State),
		PreferredColor: sanitize.Text(req.PreferredColor),
		PreferredSex:   sanitize.Text(req.PreferredSex),
		CreatedAt:      req.CreatedAt,
		UpdatedAt:      req.UpdatedAt,
		AIScore:        req.AIScore,
		AIIntent:       req.AIIntent,
		AIUrgency:      req.AIUrgency,
	}

	if req.MatchedPuppy != nil {
		p := puppyFromRequest(*req.MatchedPuppy)
		lead.MatchedPuppy = &p
	}
	if len(req.SuggestedPuppies) > 0 {
		lead.SuggestedPuppies = make([]advisor.Puppy, 0, len(req.SuggestedPuppies))
		for _, p := range req.SuggestedPuppies {
			lead.SuggestedPuppies = append(lead.SuggestedPuppies, puppyFromRequest(p))
		}
	}

	return lead
}

func puppyFromRequest(p transport.PuppyRequest) advisor.Puppy {
	return advisor.Puppy{
		ID:     p.ID,
		Name:   sanitize.Text(p.Name),
		Color:  sanitize.Text(p.Color),
		Sex:    sanitize.Text(p.Sex),
		Reason: sanitize.Text(p.Reason),
	}
}

// whatsAppURL builds a click-to-chat link. Spaces are encoded as %20
// because some WhatsApp clients show a literal plus sign.
func whatsAppURL(digits, text string) string {
	return whatsAppBaseURL + digits + "?text=" + strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}

func messageLinks(digits string, messages []advisor.Message) []transport.WhatsAppLink {
	links := make([]transport.WhatsAppLink, 0, len(messages))
	if digits == "" {
		return links
	}
	for _, msg := range messages {
		links = append(links, transport.WhatsAppLink{Style: msg.ID, URL: whatsAppURL(digits, msg.Text)})
	}
	return links
}

func sequenceDrafts(digits string, sequence []advisor.SequenceMessage) []transport.SequenceDraft {
	drafts := make([]transport.SequenceDraft, 0, len(sequence))
	for _, msg := range sequence {
		draft := transport.SequenceDraft{Stage: msg.Stage, Label: msg.Label, Text: msg.Text}
		if digits != "" {
			draft.URL = whatsAppURL(digits, msg.Text)
		}
		drafts = append(drafts, draft)
	}
	return drafts
}
