package domain

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-DeliverySlotService/pkg/types"
)

// DeliverySettings represents the delivery engine configuration for the
// single service area: ZIP eligibility, the daily slot window, capacity
// defaults and overrides, the same-day cut-off and blackout dates.
// Read on every availability computation, mutated only by administrators.
type DeliverySettings struct {
	ZipWhitelist        []string
	DefaultCapacity     int
	SlotStart           types.TimeString
	SlotEnd             types.TimeString
	SlotDurationMinutes int
	CutoffTime          types.TimeString
	BlackoutDates       []string // YYYY-MM-DD
	SlotCapacities      map[string]int // keyed by "HH:MM-HH:MM"
	UpdatedAt           time.Time
}

// DefaultSettings returns the settings used when no configuration has been
// persisted yet. The ZIP whitelist is empty, so no ZIP is eligible until
// an administrator configures one.
func DefaultSettings() *DeliverySettings {
	return &DeliverySettings{
		ZipWhitelist:        []string{},
		DefaultCapacity:     DefaultSlotCapacity,
		SlotStart:           types.TimeString(DefaultSlotStart),
		SlotEnd:             types.TimeString(DefaultSlotEnd),
		SlotDurationMinutes: DefaultSlotDurationMinutes,
		CutoffTime:          types.TimeString(DefaultCutoffTime),
		BlackoutDates:       []string{},
		SlotCapacities:      map[string]int{},
	}
}

// IsZipAllowed reports whether the normalized ZIP is in the whitelist.
// The whitelist is stored normalized, so this is an exact string match.
func (s *DeliverySettings) IsZipAllowed(zip string) bool {
	normalized := NormalizeZip(zip)
	if normalized == "" {
		return false
	}
	for _, allowed := range s.ZipWhitelist {
		if allowed == normalized {
			return true
		}
	}
	return false
}

// IsBlackoutDate reports whether the date is administratively blacked out.
func (s *DeliverySettings) IsBlackoutDate(date time.Time) bool {
	formatted := date.Format(DateFormat)
	for _, d := range s.BlackoutDates {
		if d == formatted {
			return true
		}
	}
	return false
}

// EffectiveCapacity returns the per-slot override if configured, else the
// default capacity. An explicit 0 override marks the slot permanently full.
func (s *DeliverySettings) EffectiveCapacity(slotKey string) int {
	if capacity, ok := s.SlotCapacities[slotKey]; ok {
		return capacity
	}
	return s.DefaultCapacity
}

// NormalizeZip strips non-digit characters and normalizes the result to
// ZipLength digits: longer values are truncated, shorter ones left-padded
// with zeros. Returns "" when the input carries no digits at all.
func NormalizeZip(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" {
		return ""
	}
	if len(digits) > ZipLength {
		return digits[:ZipLength]
	}
	return strings.Repeat("0", ZipLength-len(digits)) + digits
}
