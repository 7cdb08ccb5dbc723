// Import command. ZIP archives are detected by content (trip or full
// backup); .json files are treated as inline trip packages.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tightlines/riverlog/internal/archive"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a trip archive, full backup, or trip package",
	Long: `Import reads an export file back into the store. The archive
variant is detected from its manifest; re-importing the same file is safe
and updates entities in place.

Example:
  riverlog import 2026-08-30_keuka-lake_riverlog.zip
  riverlog import trip_package.json`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read import file: %w", err)
	}

	store, err := attachStore()
	if err != nil {
		return err
	}
	defer store.Detach()

	codec := archive.NewCodec(store)

	var result *archive.ImportResult
	if strings.HasSuffix(strings.ToLower(args[0]), ".json") {
		result, err = codec.ImportPackageBytes(data)
	} else {
		result, err = codec.Import(data)
	}
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}

	if flagJSON {
		return printJSON(result)
	}

	fmt.Printf("Imported %d trip(s), %d catch(es)", result.Trips, result.Catches)
	if result.Mode == archive.SchemaAll {
		fmt.Printf(", %d box(es), %d fly/flies, %d event(s)", result.FlyBoxes, result.Flies, result.FlyEvents)
	}
	fmt.Println()
	for _, missing := range result.MissingPhotos {
		fmt.Println("Warning: photo not found:", missing)
	}
	return nil
}
