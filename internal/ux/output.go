package ux

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jorge-barreto/specflow/internal/flowerr"
)

// ANSI color helpers
const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Dim    = "\033[2m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"
)

// JSON writes v to stdout as indented JSON.
func JSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// errorEnvelope is the structured error shape for --json consumers.
type errorEnvelope struct {
	Status string       `json:"status"`
	Error  errorDetails `json:"error"`
}

type errorDetails struct {
	Message string `json:"message"`
	Hint    string `json:"hint,omitempty"`
}

// RenderError prints err for humans, or as the JSON envelope when
// jsonMode is set. No stack traces either way.
func RenderError(err error, jsonMode bool) {
	hint := flowerr.HintOf(err)
	if jsonMode {
		JSON(errorEnvelope{Status: "error", Error: errorDetails{Message: err.Error(), Hint: hint}})
		return
	}
	fmt.Fprintf(os.Stderr, "%serror:%s %v\n", Red, Reset, err)
	if hint != "" {
		fmt.Fprintf(os.Stderr, "%shint:%s %s\n", Yellow, Reset, hint)
	}
}

// Successf prints a green confirmation line.
func Successf(format string, args ...any) {
	fmt.Printf("%s✓%s "+format+"\n", append([]any{Green, Reset}, args...)...)
}

// Warnf prints a yellow warning line.
func Warnf(format string, args ...any) {
	fmt.Printf("%s⚠%s "+format+"\n", append([]any{Yellow, Reset}, args...)...)
}
