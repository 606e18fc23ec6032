// Package formatting provides parsing helpers for human-readable values.
package formatting

import (
	"fmt"
	"strconv"
	"strings"
)

var byteUnits = map[string]int64{
	"B":  1,
	"KB": 1 << 10,
	"MB": 1 << 20,
	"GB": 1 << 30,
}

// ParseBytes parses a human-readable byte size such as "1MB" or "512KB"
// into a byte count. A bare number is interpreted as bytes.
func ParseBytes(s string) (int64, error) {
	s = strings.TrimSpace(strings.ToUpper(s))
	if s == "" {
		return 0, fmt.Errorf("empty byte size")
	}

	numEnd := len(s)
	for i, r := range s {
		if (r < '0' || r > '9') && r != '.' {
			numEnd = i
			break
		}
	}

	numPart := s[:numEnd]
	unitPart := strings.TrimSpace(s[numEnd:])

	if numPart == "" {
		return 0, fmt.Errorf("invalid byte size: %s", s)
	}

	value, err := strconv.ParseFloat(numPart, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid byte size: %s", s)
	}

	if unitPart == "" {
		unitPart = "B"
	}

	unit, ok := byteUnits[unitPart]
	if !ok {
		return 0, fmt.Errorf("unknown byte unit: %s", unitPart)
	}

	return int64(value * float64(unit)), nil
}
