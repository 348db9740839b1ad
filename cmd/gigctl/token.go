package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kirinyoku/gigledger/internal/domain"
	httpgin "github.com/kirinyoku/gigledger/internal/transport/http/gin"
)

func runToken(_ context.Context, args []string, out io.Writer) error {
	fs, g := newFlagSet("token")
	sub := fs.String("sub", "", "identity the token speaks for (required)")
	ttl := fs.Duration("ttl", 24*time.Hour, "token lifetime")
	secret := fs.String("secret", "", "signing secret (default: JWT_SECRET)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	id, err := domain.ParseIdentity(*sub)
	if err != nil {
		return fmt.Errorf("--sub: %w", err)
	}

	key := *secret
	if key == "" {
		// only the secret is needed, so skip full config validation
		_ = godotenv.Load(g.envFile)
		key = os.Getenv("JWT_SECRET")
	}
	if key == "" {
		return errors.New("no signing secret: set JWT_SECRET or --secret")
	}

	tok, err := httpgin.IssueToken([]byte(key), id, *ttl)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, tok)
	return err
}
