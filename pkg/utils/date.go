package utils

import (
	"fmt"
	"strings"
	"time"
)

// ParseDateInLocation interpreta dateStr com o layout informado no fuso loc.
// Espaços nas pontas são ignorados; string vazia é erro.
func ParseDateInLocation(layout string, dateStr string, loc *time.Location) (time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return time.Time{}, fmt.Errorf("data vazia")
	}

	if loc == nil {
		loc = time.UTC
	}

	return time.ParseInLocation(layout, dateStr, loc)
}
