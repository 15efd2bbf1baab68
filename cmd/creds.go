package main

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/dren-arifi/isrcfind/internal/models"
)

// CredsSet stores Spotify client credentials in the key-value store.
//
// The expiry stamp comes from --ttl-hours, falling back to the config's
// credential TTL. Expired credentials are purged the next time any
// command reads them.
func (r *Runner) CredsSet(ctx context.Context, cmd *cli.Command) error {
	s, err := r.openStores()
	if err != nil {
		return err
	}
	defer s.Close()

	ttlHours := cmd.Int("ttl-hours")
	if ttlHours == 0 {
		ttlHours = r.config.Credentials.Spotify.TTLHours
	}

	creds := models.Credentials{
		ClientID:     cmd.String("client-id"),
		ClientSecret: cmd.String("client-secret"),
	}
	if ttlHours > 0 {
		creds.ExpiresAt = time.Now().Add(time.Duration(ttlHours) * time.Hour).UnixMilli()
	}

	if err := s.creds.Save(creds); err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}
	if err := s.tokens.Invalidate(); err != nil {
		return fmt.Errorf("failed to drop cached token: %w", err)
	}

	r.writePlainln("✓ Credentials saved")
	if ttlHours > 0 {
		r.writePlainln("  Expire in %d hours", ttlHours)
	}
	return nil
}

// CredsTest exchanges the stored credentials for a token to verify them.
func (r *Runner) CredsTest(ctx context.Context, cmd *cli.Command) error {
	s, err := r.openStores()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.tokens.Invalidate(); err != nil {
		return err
	}

	token, err := s.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("credential check failed: %w", err)
	}

	r.writePlainln("✓ Credentials valid")
	r.writePlainln("  Token expires %s", token.Expiry.Format(time.RFC3339))
	return nil
}

// CredsClear removes stored credentials and any cached token.
func (r *Runner) CredsClear(ctx context.Context, cmd *cli.Command) error {
	s, err := r.openStores()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.creds.Clear(); err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}

	r.writePlainln("✓ Credentials cleared")
	return nil
}
