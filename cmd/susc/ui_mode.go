package main

import (
	"fmt"
	"os"
	"strings"
)

// uiMode is the value of a tri-state flag such as --ui or --color.
type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

var uiModeAliases = map[string]uiMode{
	"":       uiModeAuto,
	"auto":   uiModeAuto,
	"on":     uiModeOn,
	"always": uiModeOn,
	"off":    uiModeOff,
	"never":  uiModeOff,
}

func parseUIMode(flag, value string) (uiMode, error) {
	m, ok := uiModeAliases[strings.ToLower(strings.TrimSpace(value))]
	if !ok {
		return "", fmt.Errorf("invalid --%s value %q (expected auto|on|off)", flag, value)
	}
	return m, nil
}

func readUIMode(value string) (uiMode, error) { return parseUIMode("ui", value) }

// resolve decides an auto mode with auto.
func (m uiMode) resolve(auto func() bool) bool {
	if m == uiModeAuto {
		return auto()
	}
	return m == uiModeOn
}

// shouldUseTUI shows the progress view in auto mode only for several
// projects on a terminal.
func shouldUseTUI(mode uiMode, roots int) bool {
	return mode.resolve(func() bool { return roots > 1 && isTerminal(os.Stdout) })
}

// useColor resolves --color for output written to f. NO_COLOR turns auto off.
func useColor(value string, f *os.File) (bool, error) {
	m, err := parseUIMode("color", value)
	if err != nil {
		return false, err
	}
	return m.resolve(func() bool { return isTerminal(f) && os.Getenv("NO_COLOR") == "" }), nil
}
