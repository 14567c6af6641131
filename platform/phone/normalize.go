// Package phone provides phone number utilities.
// This is part of the platform layer and contains no business logic.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DefaultRegion is used when the caller does not supply a region.
const DefaultRegion = "BR"

// NormalizeE164 formats a phone number to E.164 using region for numbers
// without a country code. If parsing fails, it returns the trimmed input.
func NormalizeE164(input, region string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return trimmed
	}

	number, ok := parse(trimmed, region)
	if !ok {
		return trimmed
	}

	return phonenumbers.Format(number, phonenumbers.E164)
}

// WhatsAppDigits returns the international digits used in wa.me links
// (E.164 without the leading plus). ok is false when the number is not valid.
func WhatsAppDigits(input, region string) (string, bool) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", false
	}

	number, ok := parse(trimmed, region)
	if !ok {
		return "", false
	}

	return strings.TrimPrefix(phonenumbers.Format(number, phonenumbers.E164), "+"), true
}

func parse(input, region string) (*phonenumbers.PhoneNumber, bool) {
	region = strings.ToUpper(strings.TrimSpace(region))
	if region == "" {
		region = DefaultRegion
	}

	number, err := phonenumbers.Parse(input, region)
	if err != nil {
		return nil, false
	}

	if !phonenumbers.IsValidNumber(number) {
		return nil, false
	}

	return number, true
}
