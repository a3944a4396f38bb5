package domain

import (
	"fmt"
	"regexp"
	"strings"
)

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// NormalizeColor validates a hex color string of the form "#rrggbb" and
// returns it lowercased. Comparison of colors elsewhere assumes this
// normalized form.
func NormalizeColor(color string) (string, error) {
	if !hexColorPattern.MatchString(color) {
		return "", fmt.Errorf("color %q must be a hex string like #1f6feb", color)
	}
	return strings.ToLower(color), nil
}
