package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docdeck/internal/connectors/filesystem"
)

var watchSkipScan bool

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Ingest documents dropped into a folder",
	Long: `Ingests every supported file in the folder, then keeps watching it.
New or changed files are (re)ingested and removed files have their
document deleted. Hidden files and subfolders are ignored. A hidden
state file in the folder remembers what was ingested, so unchanged files
are skipped on the next run.

Press Ctrl+C to stop.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchSkipScan, "no-scan", false, "skip ingesting files already in the folder")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return notConfigured("document service")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w := filesystem.New(args[0], documentService)
	defer func() { _ = w.Close() }()
	if err := w.Open(); err != nil {
		return err
	}
	if !watchSkipScan {
		count, err := w.Scan(ctx)
		if err != nil {
			return err
		}
		cmd.Printf("Ingested %d new or changed documents from %s\n", count, w.Root())
	}

	cmd.Printf("Watching %s (Ctrl+C to stop)\n", w.Root())
	if err := w.Run(ctx); err != nil {
		return err
	}
	cmd.Println("Stopped.")
	return nil
}
