// Init command bootstraps the store with default entities.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the store and default entities",
	Long: `Init creates the database and ensures a default trip (named for
today) and a default fly box exist, so logging can start immediately.
Running init on an existing store changes nothing.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	store, err := attachStore()
	if err != nil {
		return err
	}
	defer store.Detach()

	trip, err := store.Trips().EnsureDefault()
	if err != nil {
		return fmt.Errorf("ensure default trip: %w", err)
	}
	box, err := store.FlyBoxes().EnsureDefault()
	if err != nil {
		return fmt.Errorf("ensure default fly box: %w", err)
	}

	if flagJSON {
		return printJSON(map[string]any{"trip": trip, "box": box})
	}
	fmt.Println("Trip:   ", trip.ID, trip.Name)
	fmt.Println("Fly box:", box.ID, box.Name)
	return nil
}
