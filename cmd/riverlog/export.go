// Export commands: single-trip archive, full backup, inline package.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tightlines/riverlog/internal/archive"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export trips or a full backup",
}

var exportOut string

var exportTripCmd = &cobra.Command{
	Use:   "trip <trip-id>",
	Short: "Export one trip as a ZIP archive",
	Long: `Export trip writes a ZIP archive holding the trip, its catches,
and their photos.

Example:
  riverlog export trip a1b2c3d4 --out ~/backups`,
	Args: cobra.ExactArgs(1),
	RunE: runExportTrip,
}

var exportAllCmd = &cobra.Command{
	Use:   "all",
	Short: "Export everything as a full-backup ZIP archive",
	Args:  cobra.NoArgs,
	RunE:  runExportAll,
}

var exportPackageCmd = &cobra.Command{
	Use:   "package <trip-id>",
	Short: "Export one trip as a single JSON document with inline photos",
	Long: `Export package writes the trip as one JSON document, photos
embedded as base64, for transports that cannot carry a ZIP file.`,
	Args: cobra.ExactArgs(1),
	RunE: runExportPackage,
}

func init() {
	exportCmd.PersistentFlags().StringVar(&exportOut, "out", ".", "directory to write the export into")

	exportCmd.AddCommand(exportTripCmd)
	exportCmd.AddCommand(exportAllCmd)
	exportCmd.AddCommand(exportPackageCmd)
}

func runExportTrip(cmd *cobra.Command, args []string) error {
	store, err := attachStore()
	if err != nil {
		return err
	}
	defer store.Detach()

	data, name, err := archive.NewCodec(store).ExportTrip(args[0])
	if err != nil {
		return fmt.Errorf("export trip: %w", err)
	}
	return writeExport(name, data)
}

func runExportAll(cmd *cobra.Command, args []string) error {
	store, err := attachStore()
	if err != nil {
		return err
	}
	defer store.Detach()

	data, name, err := archive.NewCodec(store).ExportAll()
	if err != nil {
		return fmt.Errorf("export all: %w", err)
	}
	return writeExport(name, data)
}

func runExportPackage(cmd *cobra.Command, args []string) error {
	store, err := attachStore()
	if err != nil {
		return err
	}
	defer store.Detach()

	data, name, err := archive.NewCodec(store).ExportPackageBytes(args[0])
	if err != nil {
		return fmt.Errorf("export package: %w", err)
	}
	return writeExport(name, data)
}

// writeExport writes the export bytes into the --out directory and prints
// the resulting path.
func writeExport(name string, data []byte) error {
	path := filepath.Join(exportOut, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	fmt.Println("Wrote", path)
	return nil
}
