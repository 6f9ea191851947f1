package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/lox/rags2riches/internal/config"
	"github.com/lox/rags2riches/internal/store"
)

// TransferCmd lists queued credit transfers. The host site has no
// transfer API, so each row holds the form values to submit by hand.
type TransferCmd struct {
	Config string `kong:"default='rags2riches.hcl',help='Path to the HCL config file'"`
	Clear  bool   `kong:"help='Clear the queue after listing'"`
}

func (c *TransferCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}

	db, err := store.Open(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("open statistics store: %w", err)
	}
	defer db.Close()

	transfers, err := db.PendingTransfers()
	if err != nil {
		return fmt.Errorf("load pending transfers: %w", err)
	}

	if len(transfers) == 0 {
		fmt.Println("No pending transfers.")
		return nil
	}

	fmt.Println(simHeaderStyle.Render(fmt.Sprintf("%d pending transfers", len(transfers))))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "recipient\tamount\treason")
	for _, t := range transfers {
		fmt.Fprintf(w, "%s\t%.2f\t%s\n", t.Recipient, t.Amount, t.Reason)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if c.Clear {
		if err := db.ClearPendingTransfers(); err != nil {
			return fmt.Errorf("clear pending transfers: %w", err)
		}
		fmt.Println("Queue cleared.")
	}
	return nil
}
