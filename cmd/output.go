package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lepinkainen/booktracer/internal/progress"
	"github.com/lepinkainen/booktracer/internal/store"
)

const (
	titleColWidth  = 33
	authorColWidth = 20
)

var (
	tableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("110"))
	tableDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("247"))
)

// printBookTable renders books in fixed-width columns with progress and an
// estimated days-to-finish based on the configured daily rate.
func printBookTable(books []store.Book, dailyRate int) {
	fmt.Print(renderBookTable(books, dailyRate))
}

func renderBookTable(books []store.Book, dailyRate int) string {
	if len(books) == 0 {
		return tableDimStyle.Render("No books.") + "\n"
	}

	format := "%-4s %-33s %-20s %9s %7s %5s %-9s %-13s"

	var sb strings.Builder
	header := fmt.Sprintf(format, "ID", "Title", "Author", "Pages", "Done", "ETA", "Status", "ISBN")
	sb.WriteString(tableHeaderStyle.Render(header))
	sb.WriteByte('\n')

	for _, b := range books {
		fmt.Fprintf(&sb, format+"\n",
			strconv.FormatInt(b.ID, 10),
			truncate(b.Title, titleColWidth),
			truncate(b.Author, authorColWidth),
			fmt.Sprintf("%d/%d", b.CurrentPage, b.TotalPages),
			fmt.Sprintf("%.1f%%", progress.PercentComplete(b)),
			formatETA(b, dailyRate),
			b.Status.String(),
			formatISBN(b.ISBN),
		)
	}
	return sb.String()
}

func formatETA(b store.Book, dailyRate int) string {
	days, ok := progress.DaysToFinish(b, dailyRate)
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%dd", days)
}

func formatISBN(isbn string) string {
	if isbn == "" {
		return "-"
	}
	return isbn
}

// truncate cuts s to max runes, marking the cut with an ellipsis.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
