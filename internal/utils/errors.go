package utils

import "fmt"

// Error wrapping helpers shared by the file utilities and loaders so that
// messages read the same everywhere.

// WrapProcessError wraps an error with a "failed to process" message
func WrapProcessError(item string, err error) error {
	return fmt.Errorf("failed to process %s: %w", item, err)
}
