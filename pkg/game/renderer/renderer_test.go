package renderer

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"fieldgen/pkg/engine/terminal"
	"fieldgen/pkg/game/locale"
)

func TestMarkup_PlainWhenColourDisabled(t *testing.T) {
	InitColors(false)

	assert.Equal(t, "walls: 77", markup("walls: VALUE{77}"))
	assert.Equal(t, "wrote out/field_0_1.txt", markup("wrote PATH{out/field_0_1.txt}"))
	assert.Equal(t, "Done!", markup("GT{DONE}!"))
	assert.Equal(t, "FOO{x}", markup("FOO{x}"), "unknown functions are left alone")
	assert.Equal(t, "100% done", markup("VALUE{100%} done"), "percent signs are not verbs here")
}

func TestMarkup_ColourEnabled(t *testing.T) {
	InitColors(true)
	t.Cleanup(func() { InitColors(false) })

	out := markup("WARN{stuck}")
	assert.Contains(t, out, "stuck")
	assert.NotContains(t, out, "WARN{")
}

func TestPrintLine(t *testing.T) {
	InitColors(false)
	var buf bytes.Buffer
	prev := Out
	Out = &buf
	t.Cleanup(func() { Out = prev })

	PrintLine("LISTINGS_WRITTEN", 30, "out/100%")
	assert.Equal(t, "Wrote 30 listing file(s) to out/100%\n", buf.String())

	buf.Reset()
	assert.NoError(t, locale.Use("ru"))
	t.Cleanup(func() { _ = locale.Use(locale.DefaultLanguage) })
	PrintLine("DONE")
	assert.Equal(t, "Готово\n", buf.String())
}

func TestPrintLine_ErrorArgument(t *testing.T) {
	InitColors(false)
	var buf bytes.Buffer
	prev := Out
	Out = &buf
	t.Cleanup(func() { Out = prev })

	PrintLine("ERROR", errors.New("map 3: 40% walls"))
	assert.Equal(t, "Error: map 3: 40% walls\n", buf.String())
}

func TestPrintRule_DefaultWidthOffTerminal(t *testing.T) {
	InitColors(false)
	var buf bytes.Buffer
	prev := Out
	Out = &buf
	t.Cleanup(func() { Out = prev })

	PrintRule()
	assert.Equal(t, strings.Repeat("─", terminal.DefaultWidth)+"\n", buf.String())
}
