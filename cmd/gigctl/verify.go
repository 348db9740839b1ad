package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/kirinyoku/gigledger/internal/service/query"
)

var errChainBroken = errors.New("journal hash chain is broken")

func runVerify(ctx context.Context, args []string, out io.Writer) error {
	fs, g := newFlagSet("verify")
	if err := fs.Parse(args); err != nil {
		return err
	}

	_, store, closeStore, err := openStore(ctx, g)
	if err != nil {
		return err
	}
	defer closeStore()

	rep, err := query.New(store, nil, query.Config{}).VerifyLedger(ctx)
	if err != nil {
		return err
	}

	return printReport(out, rep)
}

func printReport(out io.Writer, rep *query.LedgerReport) error {
	if !rep.Valid {
		fmt.Fprintf(out, "entries: %d\nerror: %s\n", rep.Entries, rep.Error)
		return errChainBroken
	}

	head := rep.Head
	if head == "" {
		head = "(empty)"
	}
	_, err := fmt.Fprintf(out, "entries: %d\nhead: %s\nok\n", rep.Entries, head)
	return err
}
