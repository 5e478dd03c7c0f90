// Package textutils provides the narration pattern rules shared by the statement parsers.
package textutils

import (
	"regexp"
	"strings"
)

var (
	// A segment starting with 9+ digits is the UPI transaction number that
	// precedes the counterparty name in a narration.
	upiNumberSegment = regexp.MustCompile(`^\d{9,}`)
	upiReference     = regexp.MustCompile(`UPI/(CR|DR)/(\d+)`)
	digitsOnly       = regexp.MustCompile(`^\d+$`)
)

// ExtractSender returns the counterparty name embedded in a slash-separated
// narration such as "UPI/CR/412345678901/JOHN DOE/SBIN/payment". The segment
// after the first one starting with nine or more digits is the sender.
// It returns "" when no such segment exists.
func ExtractSender(details string) string {
	parts := strings.Split(details, "/")
	for i := 0; i+1 < len(parts); i++ {
		if upiNumberSegment.MatchString(parts[i]) {
			return strings.TrimSpace(parts[i+1])
		}
	}
	return ""
}

// ExtractReference returns the UPI transaction number from the narration,
// falling back to the statement's reference column when that is purely numeric.
func ExtractReference(details, refColumn string) string {
	if matches := upiReference.FindStringSubmatch(details); len(matches) > 2 {
		return matches[2]
	}
	ref := strings.TrimSpace(refColumn)
	if digitsOnly.MatchString(ref) {
		return ref
	}
	return ""
}

// ContainsFold reports whether substr is within s, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
