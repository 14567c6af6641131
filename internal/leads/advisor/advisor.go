package advisor

import (
	"strings"
	"time"
)

// DefaultBrand signs outreach drafts when no brand is configured.
const DefaultBrand = "By Imperio Dog"

// Config holds engine options.
type Config struct {
	// Brand is the business name used in message templates.
	Brand string
}

// Engine builds advisory snapshots. It holds only immutable configuration,
// so a single Engine is safe for concurrent use.
type Engine struct {
	brand string
}

// New creates an Engine. Empty options take their defaults.
func New(cfg Config) *Engine {
	brand := strings.TrimSpace(cfg.Brand)
	if brand == "" {
		brand = DefaultBrand
	}
	return &Engine{brand: brand}
}

// Brand returns the configured brand name.
func (e *Engine) Brand() string {
	return e.brand
}

// Build evaluates one lead at the instant now. It is total: malformed
// fields degrade to documented defaults and the result is fully populated.
func (e *Engine) Build(lead LeadSnapshot, now time.Time) Snapshot {
	compat := evaluateCompatibility(lead, baseScore(lead))
	messages := composeMessages(newMessageContext(lead, compat.PuppyName, e.brand))
	priority := evaluatePriority(lead, compat.Score, ElapsedHours(lead.CreatedAt, now))

	sinceUpdate := hoursSinceUpdate(lead, now)
	status := suggestStatus(lead, priority, sinceUpdate)
	loss := evaluateLoss(lead, status, sinceUpdate)

	return Snapshot{
		Compatibility: compat,
		Messages:      messages,
		Priority:      priority,
		Status:        status,
		Loss:          loss,
	}
}

// Sequence drafts the six drip campaign messages for lead, in stage order.
func (e *Engine) Sequence(lead LeadSnapshot) []SequenceMessage {
	var puppyName string
	if puppy, ok := lead.BestPuppy(); ok {
		puppyName = puppy.Name
	}
	return composeSequence(newMessageContext(lead, puppyName, e.brand))
}

var defaultEngine = New(Config{})

// Build evaluates lead with the default engine.
func Build(lead LeadSnapshot, now time.Time) Snapshot {
	return defaultEngine.Build(lead, now)
}

// Sequence drafts the drip campaign with the default engine.
func Sequence(lead LeadSnapshot) []SequenceMessage {
	return defaultEngine.Sequence(lead)
}
