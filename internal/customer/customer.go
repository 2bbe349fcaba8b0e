// Package customer holds the customer record model and the relationship
// intelligence classifier that upgrades tiers and applies value tags from
// booking history.
package customer

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// RelationshipLevel classifies a customer by purchase history.
type RelationshipLevel string

const (
	LevelNew     RelationshipLevel = "new"
	LevelRegular RelationshipLevel = "regular"
	LevelVIP     RelationshipLevel = "vip"
)

// Auto-applied tags. Manually-applied tags are never touched; these merge in
// additively.
const (
	TagHighValue      = "High Value"
	TagFrequentBooker = "Frequent Booker"
)

// Classification thresholds.
const (
	VIPMinPaidBookings     = 5
	VIPMinTotalSpend       = 15000.0
	RegularMinPaidBookings = 1
)

// MaxNotesLength caps the free-text notes field. Appends trim the oldest
// prefix first; the newest note is always kept whole.
const MaxNotesLength = 5000

// Customer is a customer record as stored. RelationshipLevelLocked is a
// manual override: while set, the classifier never changes the level.
type Customer struct {
	ID                      uuid.UUID
	Name                    string
	Email                   string
	RelationshipLevel       RelationshipLevel
	RelationshipLevelLocked bool
	Tags                    []string
	Notes                   string
	CreatedAt               time.Time
	ArchivedAt              *time.Time
}

// mergeTags unions add into existing, preserving existing order and
// de-duplicating. Returns the merged set and the tags actually added.
func mergeTags(existing, add []string) ([]string, []string) {
	seen := make(map[string]bool, len(existing))
	merged := make([]string, 0, len(existing)+len(add))
	for _, tag := range existing {
		if !seen[tag] {
			seen[tag] = true
			merged = append(merged, tag)
		}
	}

	var added []string
	for _, tag := range add {
		if !seen[tag] {
			seen[tag] = true
			merged = append(merged, tag)
			added = append(added, tag)
		}
	}
	return merged, added
}

// appendNote appends note to existing on its own line, keeping the result
// within MaxNotesLength by dropping the oldest prefix. The new note survives
// whole even when everything older has to go; where possible the kept prefix
// resumes at a line boundary rather than mid-sentence.
func appendNote(existing, note string) string {
	if len(note) >= MaxNotesLength {
		return note
	}

	combined := note
	if existing != "" {
		combined = existing + "\n" + note
	}
	if len(combined) <= MaxNotesLength {
		return combined
	}

	trimmed := combined[len(combined)-MaxNotesLength:]
	if i := strings.IndexByte(trimmed, '\n'); i >= 0 && i < len(trimmed)-len(note) {
		trimmed = trimmed[i+1:]
	}
	return trimmed
}
