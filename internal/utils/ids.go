package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewBookingCode returns a human-readable unique booking code such as
// "MR-FL-9F2A41C3". The two-letter tag keeps the travel type recognizable
// on printed tickets and support calls.
func NewBookingCode(bookingType string) string {
	tag := "BK"
	switch strings.ToLower(strings.TrimSpace(bookingType)) {
	case "flight":
		tag = "FL"
	case "train":
		tag = "TR"
	case "bus":
		tag = "BS"
	case "hotel":
		tag = "HT"
	}
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "MR-" + tag + "-" + raw[:8]
}
