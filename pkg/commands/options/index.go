package options

import (
	"fmt"
	"strconv"
)

// ParseIndex reads a zero-based item index as printed by get.
func ParseIndex(arg string) (int, error) {
	i, err := strconv.Atoi(arg)
	if err != nil || i < 0 {
		return 0, fmt.Errorf("invalid item index %q", arg)
	}
	return i, nil
}

// ParseSwitch reads on or off.
func ParseSwitch(arg string) (bool, error) {
	switch arg {
	case "on", "true", "yes":
		return true, nil
	case "off", "false", "no":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", arg)
}
