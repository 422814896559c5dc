package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"strmctl/internal/session"
)

const (
	ansiReset = "\x1b[0m"
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
)

const (
	indicatorLabelWidth = 12
	indicatorIndent     = "  "
)

// renderIndicator draws one two-valued indicator: green when on, red when off.
func renderIndicator(label string, on bool, colorize bool) string {
	line := fmt.Sprintf("%s%-*s %s", indicatorIndent, indicatorLabelWidth, label+":", onOff(on))
	if !colorize {
		return line
	}
	if on {
		return ansiGreen + line + ansiReset
	}
	return ansiRed + line + ansiReset
}

func renderIndicators(ind session.Indicators, colorize bool) []string {
	return []string{
		renderIndicator("Streaming", ind.Streaming, colorize),
		renderIndicator("Recording", ind.Recording, colorize),
	}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
