// gigctl is the operator command line for gigledger: it issues caller
// tokens, verifies the journal hash chain and seeds role approvals.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/kirinyoku/gigledger/internal/app"
	"github.com/kirinyoku/gigledger/internal/config"
	"github.com/kirinyoku/gigledger/internal/repository"
	"github.com/spf13/pflag"
)

const usage = `usage: gigctl <command> [flags]

commands:
  token   sign a caller token for an identity
  verify  recompute the journal hash chain
  seed    apply role and minter approvals from a YAML file
`

type command func(ctx context.Context, args []string, out io.Writer) error

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	commands := map[string]command{
		"token":  runToken,
		"verify": runVerify,
		"seed":   runSeed,
	}

	cmd, ok := commands[os.Args[1]]
	if !ok {
		fmt.Fprintf(os.Stderr, "gigctl: unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}

	if err := cmd(context.Background(), os.Args[2:], os.Stdout); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "gigctl %s: %v\n", os.Args[1], err)
		os.Exit(1)
	}
}

// globalFlags are shared by every command.
type globalFlags struct {
	envFile string
}

func newFlagSet(name string) (*pflag.FlagSet, *globalFlags) {
	g := &globalFlags{}
	fs := pflag.NewFlagSet("gigctl "+name, pflag.ContinueOnError)
	fs.StringVar(&g.envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	return fs, g
}

func openStore(ctx context.Context, g *globalFlags) (*config.Config, repository.Store, func(), error) {
	cfg, err := config.New(g.envFile)
	if err != nil {
		return nil, nil, nil, err
	}

	store, closeStore, err := app.Store(ctx, cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	return cfg, store, closeStore, nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
}
