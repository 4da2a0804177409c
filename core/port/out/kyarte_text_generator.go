// Package out defines outbound ports implemented by adapters.
package out

import "context"

// TextGenerator is the port to a remote text-generation service used by
// the LLM analysis engine. Implementations must return an error rather
// than blocking indefinitely.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
