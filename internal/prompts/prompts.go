// Package prompts holds the built-in extraction prompts for the OCR
// launchers.
package prompts

import (
	_ "embed"
	"strings"
)

var (
	//go:embed metadata.txt
	metadata string

	//go:embed transactions.txt
	transactions string
)

// Metadata returns the prompt that asks for statement metadata as one JSON
// object.
func Metadata() string {
	return strings.TrimSpace(metadata)
}

// Transactions returns the prompt that asks for statement rows as a JSON
// array of six-column arrays.
func Transactions() string {
	return strings.TrimSpace(transactions)
}
