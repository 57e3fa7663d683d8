// Package ui holds ANSI styling helpers for terminal output.
package ui

const (
	ColorReset = "\033[0m"
	ColorBold  = "\033[1m"
	ColorDim   = "\033[2m"

	ColorCyan   = "\033[36m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorRed    = "\033[31m"
)

func Bold(s string) string {
	return ColorBold + s + ColorReset
}

func Success(s string) string {
	return ColorGreen + s + ColorReset
}

func Info(s string) string {
	return ColorDim + ColorYellow + s + ColorReset
}

func Error(s string) string {
	return ColorRed + s + ColorReset
}
