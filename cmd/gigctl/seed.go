package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/kirinyoku/gigledger/internal/domain"
	"github.com/kirinyoku/gigledger/internal/service"
	"gopkg.in/yaml.v3"
)

// SeedFile lists approvals to apply, as the named operator.
//
//	operator: "0x..."
//	roles:
//	  organiser: ["0x..."]
//	  venue: ["0x..."]
//	minters:
//	  ticket: ["0x..."]
type SeedFile struct {
	Operator string              `yaml:"operator"`
	Roles    map[string][]string `yaml:"roles"`
	Minters  map[string][]string `yaml:"minters"`
}

func parseSeed(r io.Reader) (*SeedFile, error) {
	var f SeedFile

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}

	if _, err := domain.ParseIdentity(f.Operator); err != nil {
		return nil, fmt.Errorf("operator: %w", err)
	}

	return &f, nil
}

// applySeed approves every listed role and minter and returns how many
// approvals were made. Approving something twice is harmless.
func applySeed(ctx context.Context, svcs *service.Services, f *SeedFile) (int, error) {
	operator := domain.MustIdentity(f.Operator)
	n := 0

	for role := range f.Roles {
		if !domain.Role(role).Valid() {
			return n, fmt.Errorf("roles: unknown role %q", role)
		}
	}

	for _, role := range []domain.Role{domain.RoleOrganiser, domain.RoleVenue, domain.RoleArtist} {
		for _, raw := range f.Roles[string(role)] {
			id, err := domain.ParseIdentity(raw)
			if err != nil {
				return n, fmt.Errorf("roles.%s: %q: %w", role, raw, err)
			}
			if err := svcs.Registry.Approve(ctx, operator, role, id); err != nil {
				return n, fmt.Errorf("approve %s %s: %w", role, id, err)
			}
			n++
		}
	}
	for kind, ids := range f.Minters {
		iss, err := svcs.Issuer(domain.TokenKind(kind))
		if err != nil {
			return n, fmt.Errorf("minters.%s: %w", kind, err)
		}
		for _, raw := range ids {
			id, err := domain.ParseIdentity(raw)
			if err != nil {
				return n, fmt.Errorf("minters.%s: %q: %w", kind, raw, err)
			}
			if err := iss.SetApprovedMinter(ctx, operator, id); err != nil {
				return n, fmt.Errorf("approve %s minter %s: %w", kind, id, err)
			}
			n++
		}
	}

	return n, nil
}

func runSeed(ctx context.Context, args []string, out io.Writer) error {
	fs, g := newFlagSet("seed")
	path := fs.String("file", "seed.yaml", "YAML approvals file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	fh, err := os.Open(*path)
	if err != nil {
		return err
	}
	defer fh.Close()

	f, err := parseSeed(fh)
	if err != nil {
		return err
	}

	cfg, store, closeStore, err := openStore(ctx, g)
	if err != nil {
		return err
	}
	defer closeStore()

	svcs := service.NewServices(store, service.Deps{}, service.Config{
		Engine:    cfg.Engine.Identity,
		Operators: cfg.Engine.Operators,
	}, quietLogger())

	n, err := applySeed(ctx, svcs, f)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(out, "applied %d approvals\n", n)
	return err
}
