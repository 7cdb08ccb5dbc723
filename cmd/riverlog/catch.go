// Catch commands: add, list, delete.
package main

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/tightlines/riverlog/internal/sqlite"
	"github.com/tightlines/riverlog/pkg/types"
)

var catchCmd = &cobra.Command{
	Use:   "catch",
	Short: "Manage logged catches",
}

var (
	catchAddSpecies string
	catchAddFly     string
	catchAddLength  string
	catchAddNotes   string
	catchAddPhoto   string
	catchAddLat     float64
	catchAddLon     float64
)

var catchAddCmd = &cobra.Command{
	Use:   "add <trip-id>",
	Short: "Log a catch on a trip",
	Long: `Add logs a catch against an existing trip.

Example:
  riverlog catch add a1b2c3d4 --species "brown trout" --length "15 in" --photo brown.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: runCatchAdd,
}

var catchListCmd = &cobra.Command{
	Use:   "list <trip-id>",
	Short: "List the catches of a trip, newest first",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatchList,
}

var catchDeleteCmd = &cobra.Command{
	Use:   "delete <catch-id>",
	Short: "Delete a catch",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatchDelete,
}

func init() {
	catchAddCmd.Flags().StringVar(&catchAddSpecies, "species", "", "species caught")
	catchAddCmd.Flags().StringVar(&catchAddFly, "fly", "", "fly that took the fish")
	catchAddCmd.Flags().StringVar(&catchAddLength, "length", "", `length, free text (e.g. "15 in")`)
	catchAddCmd.Flags().StringVar(&catchAddNotes, "notes", "", "free-form notes")
	catchAddCmd.Flags().StringVar(&catchAddPhoto, "photo", "", "path to a photo file to attach")
	catchAddCmd.Flags().Float64Var(&catchAddLat, "lat", 0, "latitude of the catch")
	catchAddCmd.Flags().Float64Var(&catchAddLon, "lon", 0, "longitude of the catch")

	catchCmd.AddCommand(catchAddCmd)
	catchCmd.AddCommand(catchListCmd)
	catchCmd.AddCommand(catchDeleteCmd)
}

func runCatchAdd(cmd *cobra.Command, args []string) error {
	store, err := attachStore()
	if err != nil {
		return err
	}
	defer store.Detach()

	if _, err := store.Trips().Get(args[0]); err != nil {
		return fmt.Errorf("get trip: %w", err)
	}

	now := time.Now().UnixMilli()
	row := &types.Catch{
		ID:        sqlite.NewID(),
		TripID:    args[0],
		Species:   catchAddSpecies,
		Fly:       catchAddFly,
		Length:    catchAddLength,
		Notes:     catchAddNotes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if cmd.Flags().Changed("lat") || cmd.Flags().Changed("lon") {
		row.GPS = &types.GPSFix{Lat: catchAddLat, Lon: catchAddLon, TS: now}
	}

	if catchAddPhoto != "" {
		photo, err := os.ReadFile(catchAddPhoto)
		if err != nil {
			return fmt.Errorf("read photo: %w", err)
		}
		mimeType := mime.TypeByExtension(filepath.Ext(catchAddPhoto))
		if mimeType == "" {
			mimeType = "image/jpeg"
		}
		row.Photo = photo
		row.PhotoMime = mimeType
		row.PhotoName = filepath.Base(catchAddPhoto)
	}

	if err := store.Catches().Save(row); err != nil {
		return fmt.Errorf("save catch: %w", err)
	}

	if flagJSON {
		return printJSON(row)
	}
	fmt.Println("Logged catch", row.ID)
	return nil
}

func runCatchList(cmd *cobra.Command, args []string) error {
	store, err := attachStore()
	if err != nil {
		return err
	}
	defer store.Detach()

	catches, err := store.Catches().ListByTrip(args[0])
	if err != nil {
		return fmt.Errorf("list catches: %w", err)
	}

	if flagJSON {
		return printJSON(catches)
	}
	printCatchTable(catches)
	return nil
}

func runCatchDelete(cmd *cobra.Command, args []string) error {
	store, err := attachStore()
	if err != nil {
		return err
	}
	defer store.Detach()

	if _, err := store.Catches().Get(args[0]); err != nil {
		return fmt.Errorf("get catch: %w", err)
	}
	if err := store.Catches().Delete(args[0]); err != nil {
		return fmt.Errorf("delete catch: %w", err)
	}

	fmt.Println("Deleted catch", args[0])
	return nil
}

// printCatchTable prints catches in a human-readable table format.
func printCatchTable(catches []*types.Catch) {
	if len(catches) == 0 {
		fmt.Println("No catches found.")
		return
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "ID\tSPECIES\tFLY\tLENGTH\tPHOTO\tDATE")
	fmt.Fprintln(w, "--\t-------\t---\t------\t-----\t----")
	for _, c := range catches {
		photo := ""
		if c.HasPhoto() {
			photo = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			shortID(c.ID),
			truncate(c.Species, 24),
			truncate(c.Fly, 24),
			c.Length,
			photo,
			formatMillis(c.CreatedAt),
		)
	}
	w.Flush()

	for _, line := range strings.Split(sb.String(), "\n") {
		fmt.Println(strings.TrimRight(line, " "))
	}
	fmt.Printf("Total: %d catch(es)\n", len(catches))
}
