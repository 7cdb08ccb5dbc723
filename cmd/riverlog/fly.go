// Fly inventory commands: add, list, use, restock, adjust, history, delete.
package main

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/tightlines/riverlog/internal/sqlite"
	"github.com/tightlines/riverlog/pkg/types"
)

var flyCmd = &cobra.Command{
	Use:   "fly",
	Short: "Manage fly inventory",
}

var (
	flyAddType   string
	flyAddSize   string
	flyAddQty    int
	flyAddColors string
)

var flyAddCmd = &cobra.Command{
	Use:   "add <box-id> <pattern>",
	Short: "Add a fly pattern to a box",
	Long: `Add puts a new fly pattern into a box. The starting quantity is
recorded as an "add" event so the history starts at the right count.

Example:
  riverlog fly add a1b2c3d4 "pheasant tail" --type nymph --size 16 --qty 6`,
	Args: cobra.ExactArgs(2),
	RunE: runFlyAdd,
}

var flyListCmd = &cobra.Command{
	Use:   "list <box-id>",
	Short: "List the flies in a box, newest first",
	Args:  cobra.ExactArgs(1),
	RunE:  runFlyList,
}

var flyUseCmd = &cobra.Command{
	Use:   "use <fly-id>",
	Short: "Record using one fly on the water",
	Args:  cobra.ExactArgs(1),
	RunE:  runFlyUse,
}

var (
	flyRestockQty int
	flyAdjustKind string
	flyAdjustNote string
)

var flyRestockCmd = &cobra.Command{
	Use:   "restock <fly-id>",
	Short: "Add flies back to a pattern",
	Args:  cobra.ExactArgs(1),
	RunE:  runFlyRestock,
}

var flyAdjustCmd = &cobra.Command{
	Use:   "adjust <fly-id> <delta>",
	Short: "Adjust a fly's quantity by a signed amount",
	Long: `Adjust applies a signed delta to a fly's quantity. The count never
goes below zero; the recorded event keeps the requested delta either way.

Example:
  riverlog fly adjust a1b2c3d4 -2 --kind lost --note "snagged in the willows"`,
	Args: cobra.ExactArgs(2),
	RunE: runFlyAdjust,
}

var flyHistoryCmd = &cobra.Command{
	Use:   "history <fly-id>",
	Short: "Show a fly's quantity history, newest first",
	Args:  cobra.ExactArgs(1),
	RunE:  runFlyHistory,
}

var flyDeleteCmd = &cobra.Command{
	Use:   "delete <fly-id>",
	Short: "Delete a fly and its history",
	Args:  cobra.ExactArgs(1),
	RunE:  runFlyDelete,
}

func init() {
	flyAddCmd.Flags().StringVar(&flyAddType, "type", types.FlyTypeOther, "fly type: "+strings.Join(types.FlyTypes, ", "))
	flyAddCmd.Flags().StringVar(&flyAddSize, "size", "", "hook size")
	flyAddCmd.Flags().IntVar(&flyAddQty, "qty", 0, "starting quantity")
	flyAddCmd.Flags().StringVar(&flyAddColors, "colors", "", "color notes")
	flyRestockCmd.Flags().IntVar(&flyRestockQty, "qty", 1, "number of flies to add")
	flyAdjustCmd.Flags().StringVar(&flyAdjustKind, "kind", types.EventAdjust, "event kind: add, use, lost, tie, adjust")
	flyAdjustCmd.Flags().StringVar(&flyAdjustNote, "note", "", "note recorded with the event")

	flyCmd.AddCommand(flyAddCmd)
	flyCmd.AddCommand(flyListCmd)
	flyCmd.AddCommand(flyUseCmd)
	flyCmd.AddCommand(flyRestockCmd)
	flyCmd.AddCommand(flyAdjustCmd)
	flyCmd.AddCommand(flyHistoryCmd)
	flyCmd.AddCommand(flyDeleteCmd)
}

func runFlyAdd(cmd *cobra.Command, args []string) error {
	if !types.ValidFlyType(flyAddType) {
		return fmt.Errorf("unknown fly type %q (valid: %s)", flyAddType, strings.Join(types.FlyTypes, ", "))
	}

	store, err := attachStore()
	if err != nil {
		return err
	}
	defer store.Detach()

	if _, err := store.FlyBoxes().Get(args[0]); err != nil {
		return fmt.Errorf("get fly box: %w", err)
	}

	now := time.Now().UnixMilli()
	fly := &types.Fly{
		ID:        sqlite.NewID(),
		BoxID:     args[0],
		Type:      flyAddType,
		Pattern:   args[1],
		Size:      flyAddSize,
		Colors:    flyAddColors,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := store.Flies().Save(fly); err != nil {
		return fmt.Errorf("save fly: %w", err)
	}

	// Seed the starting quantity through the ledger so the audit trail
	// covers the initial count.
	if flyAddQty > 0 {
		if _, err := store.AdjustQuantity(fly.ID, flyAddQty, types.EventAdd, "initial stock"); err != nil {
			return fmt.Errorf("record initial quantity: %w", err)
		}
		fly.Qty = flyAddQty
	}

	if flagJSON {
		return printJSON(fly)
	}
	fmt.Println("Added fly", fly.ID)
	return nil
}

func runFlyList(cmd *cobra.Command, args []string) error {
	store, err := attachStore()
	if err != nil {
		return err
	}
	defer store.Detach()

	flies, err := store.Flies().ListByBox(args[0])
	if err != nil {
		return fmt.Errorf("list flies: %w", err)
	}

	if flagJSON {
		return printJSON(flies)
	}

	if len(flies) == 0 {
		fmt.Println("No flies found.")
		return nil
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPATTERN\tTYPE\tSIZE\tQTY")
	fmt.Fprintln(w, "--\t-------\t----\t----\t---")
	for _, fly := range flies {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n",
			shortID(fly.ID),
			truncate(fly.Pattern, 32),
			fly.Type,
			fly.Size,
			fly.Qty,
		)
	}
	w.Flush()

	for _, line := range strings.Split(sb.String(), "\n") {
		fmt.Println(strings.TrimRight(line, " "))
	}
	fmt.Printf("Total: %d fly pattern(s)\n", len(flies))
	return nil
}

func runFlyUse(cmd *cobra.Command, args []string) error {
	store, err := attachStore()
	if err != nil {
		return err
	}
	defer store.Detach()

	adj, err := store.Expend(args[0])
	if err != nil {
		return fmt.Errorf("use fly: %w", err)
	}

	if flagJSON {
		return printJSON(adj)
	}
	fmt.Printf("Quantity %d -> %d\n", adj.Before, adj.After)
	return nil
}

func runFlyRestock(cmd *cobra.Command, args []string) error {
	if flyRestockQty <= 0 {
		return fmt.Errorf("restock quantity must be positive, got %d", flyRestockQty)
	}

	store, err := attachStore()
	if err != nil {
		return err
	}
	defer store.Detach()

	adj, err := store.AdjustQuantity(args[0], flyRestockQty, types.EventAdd, "restock")
	if err != nil {
		return fmt.Errorf("restock fly: %w", err)
	}

	if flagJSON {
		return printJSON(adj)
	}
	fmt.Printf("Quantity %d -> %d\n", adj.Before, adj.After)
	return nil
}

func runFlyAdjust(cmd *cobra.Command, args []string) error {
	delta, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("delta must be an integer, got %q", args[1])
	}

	store, err := attachStore()
	if err != nil {
		return err
	}
	defer store.Detach()

	adj, err := store.AdjustQuantity(args[0], delta, flyAdjustKind, flyAdjustNote)
	if err != nil {
		return fmt.Errorf("adjust fly: %w", err)
	}

	if flagJSON {
		return printJSON(adj)
	}
	fmt.Printf("Quantity %d -> %d\n", adj.Before, adj.After)
	return nil
}

func runFlyHistory(cmd *cobra.Command, args []string) error {
	store, err := attachStore()
	if err != nil {
		return err
	}
	defer store.Detach()

	events, err := store.FlyEvents().ListByFly(args[0])
	if err != nil {
		return fmt.Errorf("list fly events: %w", err)
	}

	if flagJSON {
		return printJSON(events)
	}

	if len(events) == 0 {
		fmt.Println("No history found.")
		return nil
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tKIND\tDELTA\tQTY\tNOTE")
	fmt.Fprintln(w, "----\t----\t-----\t---\t----")
	for _, ev := range events {
		fmt.Fprintf(w, "%s\t%s\t%+d\t%d -> %d\t%s\n",
			formatMillis(ev.CreatedAt),
			ev.Kind,
			ev.Delta,
			ev.QtyBefore, ev.QtyAfter,
			truncate(ev.Note, 40),
		)
	}
	w.Flush()

	for _, line := range strings.Split(sb.String(), "\n") {
		fmt.Println(strings.TrimRight(line, " "))
	}
	return nil
}

func runFlyDelete(cmd *cobra.Command, args []string) error {
	store, err := attachStore()
	if err != nil {
		return err
	}
	defer store.Detach()

	if _, err := store.Flies().Get(args[0]); err != nil {
		return fmt.Errorf("get fly: %w", err)
	}
	if err := store.DeleteFly(args[0]); err != nil {
		return fmt.Errorf("delete fly: %w", err)
	}

	fmt.Println("Deleted fly", args[0])
	return nil
}
