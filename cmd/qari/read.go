package cmd

import (
	"fmt"
	"strconv"

	"github.com/kerbaras/qari/pkg/app/styles"
	"github.com/kerbaras/qari/pkg/services"
	"github.com/spf13/cobra"
)

var readCmd = &cobra.Command{
	Use:   "read [surah-number]",
	Short: "Print the text of a surah",
	Long:  "Fetch the text of a surah, or read it from the cache, and print it with its recitation URL",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		number, err := strconv.Atoi(args[0])
		if err != nil {
			cobra.CheckErr(fmt.Errorf("invalid surah number %q", args[0]))
		}

		controller := newController()
		defer controller.Close()

		catalog := loadCatalog(cmd.Context())
		chapter, err := chapterByNumber(catalog, number)
		cobra.CheckErr(err)

		fmt.Println(styles.TitleStyle.Render(chapter.Title()))
		fmt.Println(styles.SubtitleStyle.Render(fmt.Sprintf("%s · %d ayahs · %s", chapter.Name, chapter.AyahCount, chapter.RevelationType)))
		fmt.Println()

		content, _, err := controller.Content.Load(cmd.Context(), chapter)
		if err != nil {
			fmt.Println(styles.StatusWarning.Render(services.DegradedText(chapter)))
			cobra.CheckErr(fmt.Errorf("failed to load surah %d: %w", number, err))
		}

		fmt.Println(content.FullText)
		fmt.Println()
		fmt.Println(styles.MutedStyle.Render("🎧 " + content.AudioURL))
	},
}

func init() {
	rootCmd.AddCommand(readCmd)
}
