package config

import "fmt"

// Error is a ConfigurationError: a required input file is missing, or an
// option holds a value that cannot be used.
type Error struct {
	Option string // option key, e.g. "model"
	Source string // where the value came from: "--port", "SERVER_PORT", "chat.port"
	Path   string // set when a required file is missing
	Err    error
}

func (e *Error) Error() string {
	switch {
	case e.Path != "":
		return fmt.Sprintf("%s file not found at %s", fileLabel(e.Option), e.Path)
	case e.Source != "":
		return fmt.Sprintf("invalid value for %s: %v", e.Source, e.Err)
	default:
		return fmt.Sprintf("invalid %s: %v", e.Option, e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

func fileLabel(option string) string {
	switch option {
	case KeyModel:
		return "Model"
	case KeyMMProj:
		return "MMPROJ"
	case KeyImage:
		return "Image"
	case KeyPromptFile:
		return "Prompt"
	default:
		return option
	}
}
