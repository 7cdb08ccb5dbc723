// Trip commands: add, list, show, delete.
package main

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/tightlines/riverlog/internal/sqlite"
	"github.com/tightlines/riverlog/pkg/types"
)

var tripCmd = &cobra.Command{
	Use:   "trip",
	Short: "Manage fishing trips",
}

var (
	tripAddDate     string
	tripAddLocation string
	tripAddDesc     string
)

var tripAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a new trip",
	Long: `Add creates a new trip.

Example:
  riverlog trip add "Keuka Lake" --date 2026-08-30 --location "Keuka Outlet"`,
	Args: cobra.ExactArgs(1),
	RunE: runTripAdd,
}

var tripListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all trips, newest first",
	Args:  cobra.NoArgs,
	RunE:  runTripList,
}

var tripShowCmd = &cobra.Command{
	Use:   "show <trip-id>",
	Short: "Show one trip and its catches",
	Args:  cobra.ExactArgs(1),
	RunE:  runTripShow,
}

var tripDeleteCmd = &cobra.Command{
	Use:   "delete <trip-id>",
	Short: "Delete a trip and all of its catches",
	Args:  cobra.ExactArgs(1),
	RunE:  runTripDelete,
}

func init() {
	tripAddCmd.Flags().StringVar(&tripAddDate, "date", "", "trip date (YYYY-MM-DD, default today)")
	tripAddCmd.Flags().StringVar(&tripAddLocation, "location", "", "where the trip happened")
	tripAddCmd.Flags().StringVar(&tripAddDesc, "desc", "", "free-form description")

	tripCmd.AddCommand(tripAddCmd)
	tripCmd.AddCommand(tripListCmd)
	tripCmd.AddCommand(tripShowCmd)
	tripCmd.AddCommand(tripDeleteCmd)
}

func runTripAdd(cmd *cobra.Command, args []string) error {
	store, err := attachStore()
	if err != nil {
		return err
	}
	defer store.Detach()

	date := tripAddDate
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	now := time.Now().UnixMilli()
	trip := &types.Trip{
		ID:        sqlite.NewID(),
		Name:      args[0],
		Date:      date,
		Location:  tripAddLocation,
		Desc:      tripAddDesc,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := store.Trips().Save(trip); err != nil {
		return fmt.Errorf("save trip: %w", err)
	}

	if flagJSON {
		return printJSON(trip)
	}
	fmt.Println("Created trip", trip.ID)
	return nil
}

func runTripList(cmd *cobra.Command, args []string) error {
	store, err := attachStore()
	if err != nil {
		return err
	}
	defer store.Detach()

	trips, err := store.Trips().List()
	if err != nil {
		return fmt.Errorf("list trips: %w", err)
	}

	if flagJSON {
		return printJSON(trips)
	}
	printTripTable(trips)
	return nil
}

func runTripShow(cmd *cobra.Command, args []string) error {
	store, err := attachStore()
	if err != nil {
		return err
	}
	defer store.Detach()

	trip, err := store.Trips().Get(args[0])
	if err != nil {
		return fmt.Errorf("get trip: %w", err)
	}
	catches, err := store.Catches().ListByTrip(trip.ID)
	if err != nil {
		return fmt.Errorf("list catches: %w", err)
	}

	if flagJSON {
		return printJSON(struct {
			Trip    *types.Trip    `json:"trip"`
			Catches []*types.Catch `json:"catches"`
		}{trip, catches})
	}

	fmt.Println("Trip:", trip.Name)
	fmt.Println("  ID:      ", trip.ID)
	fmt.Println("  Date:    ", trip.Date)
	fmt.Println("  Location:", trip.Location)
	if trip.FlyWin != "" {
		fmt.Println("  Fly win: ", trip.FlyWin)
	}
	fmt.Printf("  Catches:  %d\n", len(catches))
	best := types.BiggestCatch(catches)
	for _, c := range catches {
		marks := ""
		if c == best {
			marks += " [biggest]"
		}
		if c.HasPhoto() {
			marks += " [photo]"
		}
		fmt.Printf("    %s  %s  %s%s\n", shortID(c.ID), c.Species, c.Length, marks)
	}
	return nil
}

func runTripDelete(cmd *cobra.Command, args []string) error {
	store, err := attachStore()
	if err != nil {
		return err
	}
	defer store.Detach()

	if _, err := store.Trips().Get(args[0]); err != nil {
		return fmt.Errorf("get trip: %w", err)
	}
	if err := store.DeleteTrip(args[0]); err != nil {
		return fmt.Errorf("delete trip: %w", err)
	}

	fmt.Println("Deleted trip", args[0])
	return nil
}

// printTripTable prints trips in a human-readable table format.
func printTripTable(trips []*types.Trip) {
	if len(trips) == 0 {
		fmt.Println("No trips found.")
		return
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "ID\tNAME\tDATE\tLOCATION")
	fmt.Fprintln(w, "--\t----\t----\t--------")
	for _, trip := range trips {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			shortID(trip.ID),
			truncate(trip.Name, 40),
			trip.Date,
			truncate(trip.Location, 30),
		)
	}
	w.Flush()

	for _, line := range strings.Split(sb.String(), "\n") {
		fmt.Println(strings.TrimRight(line, " "))
	}
	fmt.Printf("Total: %d trip(s)\n", len(trips))
}
