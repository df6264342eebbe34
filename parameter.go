package scrape

import "context"

// ParameterStore retrieves named configuration values such as API keys.
type ParameterStore interface {
	// GetParameter returns the decrypted value stored at name.
	// Returns ECONFIG if the parameter is missing or empty.
	GetParameter(ctx context.Context, name string) (string, error)
}
