package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/kerbaras/qari/pkg/app/styles"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search for a surah",
	Long:  "Search surahs by number, name or translation and display the matches in a table",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		query := strings.Join(args, " ")
		catalog := loadCatalog(cmd.Context())

		matches := catalog.Search(query)
		if len(matches) == 0 {
			fmt.Println("No results found.")
			return
		}

		var (
			headerStyle = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true).Align(lipgloss.Center)
			cellStyle   = lipgloss.NewStyle().Padding(0, 1)
			arabicStyle = cellStyle.Foreground(styles.Secondary).Align(lipgloss.Right)
		)

		t := table.New().
			Border(lipgloss.HiddenBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(styles.Primary)).
			StyleFunc(func(row, col int) lipgloss.Style {
				switch {
				case row == table.HeaderRow:
					return headerStyle
				case col == 3:
					return arabicStyle
				default:
					return cellStyle
				}
			}).
			Headers("#", "Name", "Translation", "Arabic")

		for _, index := range matches {
			chapter, _ := catalog.At(index)
			t.Row(fmt.Sprintf("%d", chapter.Number), chapter.EnglishName, truncateString(chapter.EnglishTranslation, 40), chapter.Name)
		}

		fmt.Println(t)
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
