package cli

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// ConfigureColor drops styling when NO_COLOR is set or stdout is not a
// terminal, so piped output stays plain text.
func ConfigureColor() {
	lipgloss.SetColorProfile(colorProfile(os.Getenv("NO_COLOR") != "", isatty.IsTerminal(os.Stdout.Fd())))
}

func colorProfile(noColor, tty bool) termenv.Profile {
	if noColor || !tty {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}
