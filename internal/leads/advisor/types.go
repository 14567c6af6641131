// Package advisor turns a point-in-time lead snapshot into an advisory
// packet: compatibility, outreach drafts, priority tier, status suggestion
// and cold-lead detection. Everything here is pure; the caller supplies
// the current time.
package advisor

import "lead_advisor_backend/internal/leads/domain"

// Puppy references a dog offered to a lead. Only Name is needed for
// messaging; the other fields are optional and empty when unknown.
type Puppy struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Color  string `json:"color,omitempty"`
	Sex    string `json:"sex,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// LeadSnapshot is the engine input. Empty strings mean the field is absent.
//
// Defaults applied when absent:
//   - Name: greeting falls back to a neutral phrase.
//   - Status: treated as non-terminal.
//   - CreatedAt / UpdatedAt: 24 hours elapsed. UpdatedAt falls back to CreatedAt.
//   - AIScore: nil means 50.
//   - AIUrgency: anything other than "alta" adds no bonus.
//   - MatchedPuppy: nil falls back to SuggestedPuppies[0].
type LeadSnapshot struct {
	ID               string   `json:"id"`
	Name             string   `json:"name,omitempty"`
	Message          string   `json:"message,omitempty"`
	Status           string   `json:"status,omitempty"`
	City             string   `json:"city,omitempty"`
	State            string   `json:"state,omitempty"`
	PreferredColor   string   `json:"preferredColor,omitempty"`
	PreferredSex     string   `json:"preferredSex,omitempty"`
	CreatedAt        string   `json:"createdAt,omitempty"`
	UpdatedAt        string   `json:"updatedAt,omitempty"`
	AIScore          *float64 `json:"aiScore,omitempty"`
	AIIntent         string   `json:"aiIntent,omitempty"`
	AIUrgency        string   `json:"aiUrgency,omitempty"`
	MatchedPuppy     *Puppy   `json:"matchedPuppy,omitempty"`
	SuggestedPuppies []Puppy  `json:"suggestedPuppies,omitempty"`
}

// BestPuppy returns the matched puppy, or the first suggestion when no match exists.
func (l LeadSnapshot) BestPuppy() (Puppy, bool) {
	if l.MatchedPuppy != nil {
		return *l.MatchedPuppy, true
	}
	if len(l.SuggestedPuppies) > 0 {
		return l.SuggestedPuppies[0], true
	}
	return Puppy{}, false
}

type Compatibility struct {
	Score     int    `json:"score"`
	Label     string `json:"label"`
	Summary   string `json:"summary"`
	PuppyName string `json:"puppyName,omitempty"`
}

type Message struct {
	ID    domain.MessageStyle `json:"id"`
	Label string              `json:"label"`
	Text  string              `json:"text"`
}

// Priority.Score is not capped at 100 so very hot leads still rank above merely hot ones.
type Priority struct {
	Level  domain.PriorityLevel `json:"level"`
	Score  int                  `json:"score"`
	Reason string               `json:"reason"`
}

type Status struct {
	Suggestion domain.StatusSuggestion `json:"suggestion"`
	Label      string                  `json:"label"`
	Reason     string                  `json:"reason"`
}

type Loss struct {
	IsCold              bool   `json:"isCold"`
	HoursSinceUpdate    int    `json:"hoursSinceUpdate"`
	Summary             string `json:"summary"`
	ReactivationMessage string `json:"reactivationMessage"`
}

// Snapshot is the advisory packet for one lead at one instant.
type Snapshot struct {
	Compatibility Compatibility `json:"compatibility"`
	Messages      []Message     `json:"messages"`
	Priority      Priority      `json:"priority"`
	Status        Status        `json:"status"`
	Loss          Loss          `json:"loss"`
}

// SequenceMessage is one drip campaign draft.
type SequenceMessage struct {
	Stage domain.SequenceStage `json:"stage"`
	Label string               `json:"label"`
	Text  string               `json:"text"`
}
