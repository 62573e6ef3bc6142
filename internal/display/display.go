// Package display renders MealCraft in the terminal: the interactive
// recipe discovery screen built on Bubble Tea, and styled line output for
// the other commands.
package display

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// ── Styles ───────────────────────────────────────────────────────

var (
	// BannerStyle is the muted slate used for the startup banner.
	BannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fdba74")).
			Bold(true)

	chatStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bae6fd"))

	headingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bbf7d0")).
			Bold(true)

	primaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4d4d8"))

	secondaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))

	urgentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fca5a5"))

	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fde68a"))

	linkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7dd3fc")).
			Underline(true)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3f3f46")).
			Padding(0, 1)

	selectedCardStyle = cardStyle.
				BorderForeground(lipgloss.Color("#fdba74"))

	selectorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a1a1aa"))

	focusedSelectorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#18181b")).
				Background(lipgloss.Color("#fdba74"))
)

// ── Printer ──────────────────────────────────────────────────────

// Printer writes styled lines for the non-interactive commands.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a printer. A nil writer prints to stdout.
func NewPrinter(out io.Writer) *Printer {
	if out == nil {
		out = os.Stdout
	}
	return &Printer{out: out}
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer { return p.out }

// Println writes a plain line.
func (p *Printer) Println(a ...interface{}) {
	fmt.Fprintln(p.out, a...)
}

// Printf writes formatted text.
func (p *Printer) Printf(format string, a ...interface{}) {
	fmt.Fprintf(p.out, format, a...)
}

// Title prints a top-level heading.
func (p *Printer) Title(text string) {
	p.Println(titleStyle.Render(text))
}

// Heading prints a section heading.
func (p *Printer) Heading(text string) {
	p.Println(headingStyle.Render(text))
}

// Chat prints an assistant line.
func (p *Printer) Chat(text string) {
	p.Println(chatStyle.Render("  " + text))
}

// Line prints regular body text.
func (p *Printer) Line(text string) {
	p.Println(primaryStyle.Render("  " + text))
}

// Hint prints a dimmed line.
func (p *Printer) Hint(text string) {
	p.Println(secondaryStyle.Render("  " + text))
}

// Urgent prints a warning or error line.
func (p *Printer) Urgent(text string) {
	p.Println(urgentStyle.Render("  " + text))
}

// Link prints a URL.
func (p *Printer) Link(label, url string) {
	if label != "" {
		p.Println(primaryStyle.Render("  "+label+" ") + linkStyle.Render(url))
		return
	}
	p.Println("  " + linkStyle.Render(url))
}

// Prompt returns the REPL prompt text.
func Prompt(name string) string {
	return name + "> "
}

// PromptStyle renders text in the prompt color.
func PromptStyle(s string) string { return promptStyle.Render(s) }
