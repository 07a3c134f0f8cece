package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatINR renders an integer rupee amount with Indian digit grouping,
// e.g. 1234567 -> "Rs 12,34,567".
func FormatINR(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%sRs %s", sign, groupIndian(amount))
}

// ParseINRToInt parses "Rs 1,000", "₹1,000" or "1000" into an integer rupee
// amount.
func ParseINRToInt(s string) (int64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "₹")
	s = strings.TrimPrefix(strings.ToLower(s), "rs")
	s = strings.TrimPrefix(s, ".")
	s = strings.TrimSpace(s)
	replacer := strings.NewReplacer(",", "", " ", "")
	s = replacer.Replace(s)
	if s == "" {
		return 0, fmt.Errorf("invalid rupee amount")
	}
	return strconv.ParseInt(s, 10, 64)
}

// groupIndian inserts separators after the last three digits, then every two:
// 12,34,56,789.
func groupIndian(n int64) string {
	str := strconv.FormatInt(n, 10)
	if len(str) <= 3 {
		return str
	}
	head := str[:len(str)-3]
	tail := str[len(str)-3:]
	var out strings.Builder
	for i, c := range head {
		if i != 0 && (len(head)-i)%2 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(c)
	}
	return out.String() + "," + tail
}
