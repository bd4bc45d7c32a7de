package renderer

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/gookit/color"

	"fieldgen/pkg/engine/terminal"
	"fieldgen/pkg/game/locale"
)

var (
	ColorValue  color.Style
	ColorPath   color.Style
	ColorWarn   color.Style
	ColorSubtle color.Style

	regexpStringFunctions = regexp.MustCompile(`([A-Z]+){([^{}]+)}`)

	// Out receives everything PrintLine and PrintRule write
	Out io.Writer = os.Stdout
)

// InitColors initializes the color styles and turns colour on or off
func InitColors(enabled bool) {
	color.Enable = enabled

	ColorValue = color.Style{color.FgCyan, color.OpBold}
	ColorPath = color.Style{color.FgGreen}
	ColorWarn = color.Style{color.FgRed, color.OpBold}
	ColorSubtle = color.Style{color.FgGray}
}

// InitColorsForStdout enables colour only when stdout is a terminal
func InitColorsForStdout() {
	InitColors(terminal.IsTerminal(os.Stdout))
}

// markup expands GT{KEY} from the message catalog and styles VALUE{..}, PATH{..} and WARN{..}
func markup(ret string) string {
	matches := regexpStringFunctions.FindAllStringSubmatch(ret, -1)

	for _, match := range matches {
		function := match[1]
		operand := match[2]

		var val string

		switch function {
		case "GT":
			val = locale.Get(operand)
		case "VALUE":
			val = ColorValue.Sprint(operand)
		case "PATH":
			val = ColorPath.Sprint(operand)
		case "WARN":
			val = ColorWarn.Sprint(operand)
		default:
			continue
		}

		ret = strings.Replace(ret, match[0], val, 1)
	}

	return ret
}

// PrintLine prints the catalog message key, filled with a, followed by a newline
func PrintLine(key string, a ...any) {
	fmt.Fprintln(Out, markup(locale.Format(key, a...)))
}

// PrintRule prints a subtle horizontal line as wide as Out
func PrintRule() {
	fmt.Fprintln(Out, ColorSubtle.Sprint(strings.Repeat("─", terminal.Width(Out))))
}
