package cmd

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all surahs",
	Long:  "Display the catalog of surahs in a formatted table",
	Run: func(cmd *cobra.Command, args []string) {
		catalog := loadCatalog(cmd.Context())

		columns := []table.Column{
			{Title: "#", Width: 4},
			{Title: "Name", Width: 20},
			{Title: "Translation", Width: 28},
			{Title: "Ayahs", Width: 6},
			{Title: "Revelation", Width: 10},
		}

		rows := []table.Row{}
		for _, chapter := range catalog.Chapters() {
			rows = append(rows, table.Row{
				fmt.Sprintf("%d", chapter.Number),
				truncateString(chapter.EnglishName, 18),
				truncateString(chapter.EnglishTranslation, 26),
				fmt.Sprintf("%d", chapter.AyahCount),
				string(chapter.RevelationType),
			})
		}

		t := table.New(
			table.WithColumns(columns),
			table.WithRows(rows),
			table.WithFocused(false),
			table.WithHeight(len(rows)),
		)

		s := table.DefaultStyles()
		s.Header = s.Header.
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			BorderBottom(true).
			Bold(true)
		s.Selected = s.Selected.
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("30")).
			Bold(false)
		t.SetStyles(s)

		fmt.Printf("\n📖 Surahs (%d)\n\n", catalog.Len())
		fmt.Println(t.View())
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
