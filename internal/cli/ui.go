package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/paperstreet/tradetalk/internal/models"
)

// UI styles
var (
	// Base styles
	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#7C3AED")).
		Background(lipgloss.Color("#1F2937")).
		Padding(0, 1).
		MarginBottom(1)

	assistantStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#3B82F6")).
		Padding(0, 1).
		Width(80)

	suggestionStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6B7280")).
		Italic(true)

	quoteStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#F59E0B")).
		Bold(true)

	errorStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#EF4444")).
		Bold(true)
)

// DisplayWelcomeBanner shows the welcome banner
func DisplayWelcomeBanner() {
	banner := `
████████╗██████╗  █████╗ ██████╗ ███████╗████████╗ █████╗ ██╗     ██╗  ██╗
╚══██╔══╝██╔══██╗██╔══██╗██╔══██╗██╔════╝╚══██╔══╝██╔══██╗██║     ██║ ██╔╝
   ██║   ██████╔╝███████║██║  ██║█████╗     ██║   ███████║██║     █████╔╝
   ██║   ██╔══██╗██╔══██║██║  ██║██╔══╝     ██║   ██╔══██║██║     ██╔═██╗
   ██║   ██║  ██║██║  ██║██████╔╝███████╗   ██║   ██║  ██║███████╗██║  ██╗
   ╚═╝   ╚═╝  ╚═╝╚═╝  ╚═╝╚═════╝ ╚══════╝   ╚═╝   ╚═╝  ╚═╝╚══════╝╚═╝  ╚═╝

              💬 Conversational Market Data Assistant 💬
`

	welcomeStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#7C3AED")).
		Bold(true).
		Align(lipgloss.Center).
		Width(80).
		MarginBottom(2)

	taglineStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#3B82F6")).
		Italic(true).
		Align(lipgloss.Center).
		Width(80).
		MarginBottom(2)

	fmt.Print(welcomeStyle.Render(banner))
	fmt.Print(taglineStyle.Render("Ask about stocks, compare symbols, check movers and news"))
	fmt.Println()
}

// ClearScreen clears the terminal screen
func ClearScreen() {
	fmt.Print("\033[2J\033[H")
}

// DisplaySessionHeader shows the session line above the chat
func DisplaySessionHeader(userID, sessionID string) {
	fmt.Println(titleStyle.Render(fmt.Sprintf("💬 %s | session %s", userID, shortID(sessionID))))
}

// DisplayAssistantReply renders one assistant turn
func DisplayAssistantReply(response string, stock *models.QuoteRecord, suggestions []string) {
	var content strings.Builder

	content.WriteString(response)
	if stock != nil {
		pct := stock.ChangePercent.StringFixed(2)
		if !strings.HasPrefix(pct, "-") {
			pct = "+" + pct
		}
		content.WriteString("\n\n")
		content.WriteString(quoteStyle.Render(fmt.Sprintf("%s %s (%s%%)",
			stock.Symbol, stock.Price.StringFixed(2), pct)))
	}

	fmt.Println(assistantStyle.Render(content.String()))

	if len(suggestions) > 0 {
		fmt.Println(suggestionStyle.Render("Try: " + strings.Join(suggestions, " | ")))
	}
	fmt.Println()
}

// DisplayError renders an error line
func DisplayError(err error) {
	fmt.Println(errorStyle.Render("❌ " + err.Error()))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
