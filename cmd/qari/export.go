package cmd

import (
	"fmt"

	"github.com/kerbaras/qari/pkg/app/components"
	"github.com/kerbaras/qari/pkg/data"
	"github.com/kerbaras/qari/pkg/integrations"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export surahs as an EPUB",
	Long:  "Fetch a range of surahs and bind their text into a right-to-left EPUB",
	Run: func(cmd *cobra.Command, args []string) {
		from, _ := cmd.Flags().GetInt("from")
		to, _ := cmd.Flags().GetInt("to")
		output, _ := cmd.Flags().GetString("output")
		title, _ := cmd.Flags().GetString("title")

		if from > to {
			cobra.CheckErr(fmt.Errorf("invalid range %d-%d", from, to))
		}

		controller := newController()
		defer controller.Close()

		catalog := loadCatalog(cmd.Context())
		var chapters []data.Chapter
		for _, chapter := range catalog.Chapters() {
			if chapter.Number >= from && chapter.Number <= to {
				chapters = append(chapters, chapter)
			}
		}
		if len(chapters) == 0 {
			cobra.CheckErr(fmt.Errorf("no surahs between %d and %d", from, to))
		}
		if title == "" {
			title = fmt.Sprintf("Quran %d-%d", from, to)
		}

		fmt.Printf("📥 Exporting %d surahs\n", len(chapters))

		exporter := controller.NewExporter()
		tracker := components.NewProgressTracker(60)

		// Listen for progress
		done := make(chan struct{})
		go func() {
			defer close(done)
			for progress := range exporter.GetProgressChannel() {
				tracker.Update(progress)
				switch progress.Status {
				case "complete":
					fmt.Printf("  %s Surah %d\n", components.SimpleProgress(progress.Completed, progress.Total, 30), progress.ChapterNumber)
				case "error":
					fmt.Printf("  ⚠️  Surah %d: %v\n", progress.ChapterNumber, progress.Error)
				case "writing":
					fmt.Println("  Writing EPUB...")
				}
			}
		}()

		path, err := exporter.Export(cmd.Context(), chapters, integrations.NewEPubBuilder(output), title)
		exporter.Close()
		<-done
		if err != nil {
			cobra.CheckErr(fmt.Errorf("export failed: %w", err))
		}

		// chapters that failed stay in the tracker
		if tracker.HasActive() {
			fmt.Println()
			fmt.Println(tracker.View())
		}
		fmt.Printf("\n📖 EPUB created: %s\n", path)
	},
}

func init() {
	exportCmd.Flags().Int("from", 1, "First surah number")
	exportCmd.Flags().Int("to", 114, "Last surah number")
	exportCmd.Flags().StringP("output", "o", ".", "Output directory")
	exportCmd.Flags().StringP("title", "t", "", "Book title (default \"Quran <from>-<to>\")")
	rootCmd.AddCommand(exportCmd)
}
