// Fly box commands: add, list, delete, clear.
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

var boxCmd = &cobra.Command{
	Use:   "box",
	Short: "Manage fly boxes",
}

var boxAddNotes string

var boxAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a new fly box",
	Args:  cobra.ExactArgs(1),
	RunE:  runBoxAdd,
}

var boxListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all fly boxes, newest first",
	Args:  cobra.NoArgs,
	RunE:  runBoxList,
}

var boxDeleteCmd = &cobra.Command{
	Use:   "delete <box-id>",
	Short: "Delete a fly box, its flies, and their history",
	Args:  cobra.ExactArgs(1),
	RunE:  runBoxDelete,
}

var boxClearForce bool

var boxClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every fly box, fly, and event",
	Args:  cobra.NoArgs,
	RunE:  runBoxClear,
}

func init() {
	boxAddCmd.Flags().StringVar(&boxAddNotes, "notes", "", "free-form notes")
	boxClearCmd.Flags().BoolVar(&boxClearForce, "force", false, "skip the confirmation check")

	boxCmd.AddCommand(boxAddCmd)
	boxCmd.AddCommand(boxListCmd)
	boxCmd.AddCommand(boxDeleteCmd)
	boxCmd.AddCommand(boxClearCmd)
}

func runBoxAdd(cmd *cobra.Command, args []string) error {
	store, err := attachStore()
	if err != nil {
		return err
	}
	defer store.Detach()

	now := time.Now().UnixMilli()
	box := &types.FlyBox{
		ID:        sqlite.NewID(),
		Name:      args[0],
		Notes:     boxAddNotes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := store.FlyBoxes().Save(box); err != nil {
		return fmt.Errorf("save fly box: %w", err)
	}

	if flagJSON {
		return printJSON(box)
	}
	fmt.Println("Created fly box", box.ID)
	return nil
}

func runBoxList(cmd *cobra.Command, args []string) error {
	store, err := attachStore()
	if err != nil {
		return err
	}
	defer store.Detach()

	boxes, err := store.FlyBoxes().List()
	if err != nil {
		return fmt.Errorf("list fly boxes: %w", err)
	}

	if flagJSON {
		return printJSON(boxes)
	}

	if len(boxes) == 0 {
		fmt.Println("No fly boxes found.")
		return nil
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tFLIES\tUPDATED")
	fmt.Fprintln(w, "--\t----\t-----\t-------")
	for _, box := range boxes {
		flies, err := store.Flies().ListByBox(box.ID)
		if err != nil {
			return fmt.Errorf("list flies: %w", err)
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
			shortID(box.ID),
			truncate(box.Name, 40),
			len(flies),
			formatMillis(box.UpdatedAt),
		)
	}
	w.Flush()

	for _, line := range strings.Split(sb.String(), "\n") {
		fmt.Println(strings.TrimRight(line, " "))
	}
	fmt.Printf("Total: %d box(es)\n", len(boxes))
	return nil
}

func runBoxDelete(cmd *cobra.Command, args []string) error {
	store, err := attachStore()
	if err != nil {
		return err
	}
	defer store.Detach()

	if _, err := store.FlyBoxes().Get(args[0]); err != nil {
		return fmt.Errorf("get fly box: %w", err)
	}
	if err := store.DeleteFlyBox(args[0]); err != nil {
		return fmt.Errorf("delete fly box: %w", err)
	}

	fmt.Println("Deleted fly box", args[0])
	return nil
}

func runBoxClear(cmd *cobra.Command, args []string) error {
	if !boxClearForce {
		return fmt.Errorf("this deletes every fly box, fly, and event; pass --force to proceed")
	}

	store, err := attachStore()
	if err != nil {
		return err
	}
	defer store.Detach()

	if err := store.ClearAllFlyBoxes(); err != nil {
		return fmt.Errorf("clear fly boxes: %w", err)
	}

	fmt.Println("Cleared all fly boxes")
	return nil
}
