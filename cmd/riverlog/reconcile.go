// Reconcile command sweeps orphaned rows left by interrupted deletes.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Remove orphaned catches, flies, and events",
	Long: `Reconcile deletes rows whose parent no longer exists: catches
without a trip, flies without a box, and events without a fly. Normally a
no-op; useful after an interrupted delete.`,
	Args: cobra.NoArgs,
	RunE: runReconcile,
}

func runReconcile(cmd *cobra.Command, args []string) error {
	store, err := attachStore()
	if err != nil {
		return err
	}
	defer store.Detach()

	stats, err := store.Reconcile()
	if err != nil {
		return fmt.Errorf("reconcile: %w", err)
	}

	if flagJSON {
		return printJSON(stats)
	}
	fmt.Printf("Removed %d orphan catch(es), %d fly/flies, %d event(s)\n",
		stats.Catches, stats.Flies, stats.FlyEvents)
	return nil
}
