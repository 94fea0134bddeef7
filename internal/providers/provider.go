package providers

import (
	"errors"
	"fmt"
)

var ErrUnsupported = errors.New("unsupported provider")

// Provider names a hosted model vendor. The set is closed.
type Provider string

const (
	Groq   Provider = "Groq"
	OpenAI Provider = "OpenAI"
)

// All lists the supported providers in display order.
func All() []Provider {
	return []Provider{Groq, OpenAI}
}

// Parse matches the wire name exactly.
func Parse(s string) (Provider, error) {
	switch p := Provider(s); p {
	case Groq, OpenAI:
		return p, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnsupported, s)
	}
}
