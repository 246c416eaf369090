package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// KeyFetcher refreshes a signing key set and lists the cached key ids.
type KeyFetcher interface {
	Refresh(ctx context.Context) error
	KeyIDs() []string
}

// RunFetchKeys fetches the identity provider key set and prints the ids of
// the keys usable for signature verification.
func RunFetchKeys(
	ctx context.Context,
	keySet KeyFetcher,
	logger *slog.Logger,
	writer io.Writer,
	jwksURL string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	logger.Info("fetching signing keys", slog.String("jwks_url", jwksURL))

	if err := keySet.Refresh(ctx); err != nil {
		return fmt.Errorf("failed to fetch signing keys: %w", err)
	}

	keyIDs := keySet.KeyIDs()

	if format == "json" {
		return writeJSON(writer, map[string]any{
			"jwks_url": jwksURL,
			"key_ids":  keyIDs,
		})
	}

	_, _ = fmt.Fprintf(writer, "Key set: %s\n", jwksURL)
	_, _ = fmt.Fprintf(writer, "Signing keys: %d\n", len(keyIDs))
	for _, kid := range keyIDs {
		_, _ = fmt.Fprintf(writer, "  - %s\n", kid)
	}
	return nil
}
