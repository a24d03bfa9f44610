package style

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/calperm/calperm/internal/logging"
	"github.com/calperm/calperm/internal/termcap"
)

const (
	reset = "\x1b[0m"
)

func sgr(params string) string { return "\x1b[" + params + "m" }

var fixedNow = time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)

func newTestRenderer(mode termcap.Mode) (*Renderer, *bytes.Buffer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	warnings := &bytes.Buffer{}
	r := New(mode, out)
	r.Warnings = warnings
	r.Width = func() int { return 40 }
	r.Now = func() time.Time { return fixedNow }
	return r, out, warnings
}

func TestPrint_ForegroundFallbackUsesFirstColor(t *testing.T) {
	r, out, _ := newTestRenderer(termcap.Ansi4Bit)

	err := r.Print(Request{
		Text:  []string{"a", "b", "c"},
		Color: Colors("DarkRed", "Green"),
	})
	require.NoError(t, err)

	want := sgr("31") + "a" + reset + sgr("92") + "b" + reset + sgr("31") + "c" + reset + "\n"
	assert.Equal(t, want, out.String())
}

func TestPrint_BackgroundFallbackIsNone(t *testing.T) {
	r, out, _ := newTestRenderer(termcap.Ansi4Bit)

	err := r.Print(Request{
		Text:       []string{"a", "b", "c"},
		Background: Colors("DarkBlue", "DarkGreen"),
	})
	require.NoError(t, err)

	want := sgr("44") + "a" + reset + sgr("42") + "b" + reset + "c\n"
	assert.Equal(t, want, out.String())
}

func TestPrint_ForegroundAndBackgroundPoliciesAreIndependent(t *testing.T) {
	r, out, _ := newTestRenderer(termcap.Ansi4Bit)

	err := r.Print(Request{
		Text:       []string{"a", "b", "c"},
		Color:      Colors("DarkRed", "Green"),
		Background: Colors("DarkBlue"),
	})
	require.NoError(t, err)

	want := sgr("31;44") + "a" + reset + sgr("92") + "b" + reset + sgr("31") + "c" + reset + "\n"
	assert.Equal(t, want, out.String())
}

func TestPrint_NoColorsMeansPlainSegments(t *testing.T) {
	r, out, _ := newTestRenderer(termcap.Ansi8Bit)
	require.NoError(t, r.Print(Plain("one ", "two")))
	assert.Equal(t, "one two\n", out.String())
}

func TestPrint_8BitNamedColors(t *testing.T) {
	r, out, _ := newTestRenderer(termcap.Ansi8Bit)
	require.NoError(t, r.Print(Request{Text: []string{"x"}, Color: Colors("Orange"), Background: Colors("Navy")}))
	assert.Equal(t, sgr("38;5;208;48;5;17")+"x"+reset+"\n", out.String())
}

func TestPrint_BoldBrightensIn8BitMode(t *testing.T) {
	tests := []struct {
		color string
		want  string
	}{
		{"DarkRed", "1;38;5;9"},    // Dark prefix stripped → Red
		{"Red", "1;38;5;203"},      // Light prefix added → LightRed
		{"DarkGray", "1;38;5;7"},   // → Gray
		{"Orange", "1;38;5;208"},   // no lighter shade, unchanged
		{"Gray", "1;38;5;250"},     // → LightGray
		{"LightBlue", "1;38;5;117"}, // already light
	}
	for _, tt := range tests {
		t.Run(tt.color, func(t *testing.T) {
			r, out, _ := newTestRenderer(termcap.Ansi8Bit)
			require.NoError(t, r.Print(Request{Text: []string{"x"}, Color: Colors(tt.color), Decorations: []Style{Bold}}))
			assert.Equal(t, sgr(tt.want)+"x"+reset+"\n", out.String())
		})
	}
}

func TestPrint_BoldUsesBrightCodeIn4BitMode(t *testing.T) {
	r, out, _ := newTestRenderer(termcap.Ansi4Bit)
	require.NoError(t, r.Print(Request{Text: []string{"x"}, Color: Colors("DarkRed"), Decorations: []Style{Bold}}))
	assert.Equal(t, sgr("1;91")+"x"+reset+"\n", out.String())
}

func TestPrint_UnknownColorFallsBackToGrayWithWarning(t *testing.T) {
	r, out, warnings := newTestRenderer(termcap.Ansi4Bit)

	require.NoError(t, r.Print(Colored("x", "Chartreuse")))

	assert.Equal(t, sgr("37")+"x"+reset+"\n", out.String())
	assert.Contains(t, warnings.String(), `unknown color "Chartreuse", using Gray`)
}

func TestPrint_UnknownFallbackWarnsAndUsesGray(t *testing.T) {
	r, out, warnings := newTestRenderer(termcap.Ansi4Bit)
	r.Fallback = "Graey"

	require.NoError(t, r.Print(Colored("x", "Chartreuse")))

	assert.Equal(t, sgr("37")+"x"+reset+"\n", out.String())
	assert.Contains(t, warnings.String(), `unknown fallback color "Graey", using Gray`)
}

func TestPrint_WarningsReachDiagnosticsLog(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	prev := logging.GetLogger()
	logging.SetLogger(zap.New(core))
	t.Cleanup(func() { logging.SetLogger(prev) })

	r, _, _ := newTestRenderer(termcap.Ansi4Bit)
	require.NoError(t, r.Print(Colored("x", "Chartreuse")))

	entries := logs.FilterMessage("render warning").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, `unknown color "Chartreuse", using Gray`, entries[0].ContextMap()["detail"])
}

func TestPrint_ColorNamesIgnoreCase(t *testing.T) {
	r, out, warnings := newTestRenderer(termcap.Ansi4Bit)
	require.NoError(t, r.Print(Colored("x", "darkred")))
	assert.Equal(t, sgr("31")+"x"+reset+"\n", out.String())
	assert.Empty(t, warnings.String())
}

func TestPrint_WarningsAreReportedOnce(t *testing.T) {
	r, _, warnings := newTestRenderer(termcap.Ansi4Bit)
	for i := 0; i < 3; i++ {
		require.NoError(t, r.Print(Colored("x", "Nope")))
	}
	assert.Equal(t, 1, strings.Count(warnings.String(), "WARNING:"))
}

func TestPrint_NumericColors(t *testing.T) {
	tests := []struct {
		name        string
		mode        termcap.Mode
		color       Color
		wantParams  string
		wantWarning string
	}{
		{"8-bit in range", termcap.Ansi8Bit, Code(42), "38;5;42", ""},
		{"8-bit out of range", termcap.Ansi8Bit, Code(300), "38;5;7", "outside 0-255"},
		{"8-bit negative", termcap.Ansi8Bit, Code(-1), "38;5;7", "outside 0-255"},
		{"4-bit normal", termcap.Ansi4Bit, Code(31), "31", ""},
		{"4-bit bright", termcap.Ansi4Bit, Code(96), "96", ""},
		{"4-bit invalid", termcap.Ansi4Bit, Code(50), "37", "not a 4-bit code"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, out, warnings := newTestRenderer(tt.mode)
			require.NoError(t, r.Print(Request{Text: []string{"x"}, Color: []Color{tt.color}}))
			assert.Equal(t, sgr(tt.wantParams)+"x"+reset+"\n", out.String())
			if tt.wantWarning == "" {
				assert.Empty(t, warnings.String())
			} else {
				assert.Contains(t, warnings.String(), tt.wantWarning)
			}
		})
	}
}

func TestPrint_BackgroundSentinels(t *testing.T) {
	tests := []struct {
		name string
		mode termcap.Mode
		bg   Color
		want string
	}{
		{"None", termcap.Ansi8Bit, None, "x\n"},
		{"none lower case", termcap.Ansi4Bit, Named("none"), "x\n"},
		{"8-bit out of range", termcap.Ansi8Bit, Code(999), "x\n"},
		{"4-bit foreground code used as background", termcap.Ansi4Bit, Code(31), sgr("41") + "x" + reset + "\n"},
		{"4-bit background code", termcap.Ansi4Bit, Code(103), sgr("103") + "x" + reset + "\n"},
		{"4-bit nonsense", termcap.Ansi4Bit, Code(12), "x\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, out, warnings := newTestRenderer(tt.mode)
			require.NoError(t, r.Print(Request{Text: []string{"x"}, Background: []Color{tt.bg}}))
			assert.Equal(t, tt.want, out.String())
			assert.Empty(t, warnings.String(), "background sentinels never warn")
		})
	}
}

func TestPrint_UnknownBackgroundWarnsAndUsesNone(t *testing.T) {
	r, out, warnings := newTestRenderer(termcap.Ansi4Bit)
	require.NoError(t, r.Print(Request{Text: []string{"x"}, Background: Colors("Plaid")}))
	assert.Equal(t, "x\n", out.String())
	assert.Contains(t, warnings.String(), `unknown background color "Plaid"`)
}

func TestPrint_InvalidColorTypeAbortsTheCall(t *testing.T) {
	r, out, _ := newTestRenderer(termcap.Ansi8Bit)

	err := r.Print(Request{Text: []string{"x", "y"}, Color: []Color{Named("Red"), ColorOf(3.5)}})

	var colorErr *InvalidColorError
	require.True(t, errors.As(err, &colorErr))
	assert.Equal(t, "foreground", colorErr.Field)
	assert.Equal(t, 1, colorErr.Index)
	assert.Empty(t, out.String(), "nothing is written for an aborted call")

	err = r.Print(Request{Text: []string{"x"}, Background: []Color{ColorOf(true)}})
	require.True(t, errors.As(err, &colorErr))
	assert.Equal(t, "background", colorErr.Field)
}

func TestColorOf(t *testing.T) {
	assert.Equal(t, Named("Red"), ColorOf("Red"))
	assert.Equal(t, Code(12), ColorOf(12))
	assert.Equal(t, Code(12), ColorOf(uint8(12)))
	assert.Equal(t, Named("Blue"), ColorOf(Named("Blue")))
	assert.Equal(t, "invalid([]int)", ColorOf([]int{1}).String())
}

func TestPrint_Styles(t *testing.T) {
	tests := []struct {
		name    string
		styling Styling
		want    string
	}{
		{"none", NoStyles(), "ab\n"},
		{"first segment only", FirstSegment(Bold), sgr("1") + "a" + reset + "b\n"},
		{"all segments", AllSegments(Underline), sgr("4") + "a" + reset + sgr("4") + "b" + reset + "\n"},
		{"one per segment", EachSegment(Italic, Faint), sgr("3") + "a" + reset + sgr("2") + "b" + reset + "\n"},
		{"several for one segment", PerSegment([]Style{Bold, Underline}), sgr("1;4") + "a" + reset + "b\n"},
		{"double underline and overline", PerSegment(nil, []Style{DoubleUnderline, Overline}), "a" + sgr("21;53") + "b" + reset + "\n"},
		{"blink and crossed out", AllSegments(Blink, CrossedOut), sgr("5;9") + "a" + reset + sgr("5;9") + "b" + reset + "\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, out, _ := newTestRenderer(termcap.Ansi4Bit)
			require.NoError(t, r.Print(Request{Text: []string{"a", "b"}, Style: tt.styling}))
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestPrint_EmissionOrder(t *testing.T) {
	r, out, _ := newTestRenderer(termcap.Ansi8Bit)
	require.NoError(t, r.Print(Request{
		Text:        []string{"x"},
		Color:       Colors("Cyan"),
		Background:  Colors("Black"),
		Style:       FirstSegment(Italic),
		Decorations: []Style{Underline},
	}))
	// segment style, line decoration, foreground, background
	assert.Equal(t, sgr("3;4;38;5;14;48;5;0")+"x"+reset+"\n", out.String())
}

func TestPrint_UnsupportedStyleIsIgnoredWithWarning(t *testing.T) {
	r, out, warnings := newTestRenderer(termcap.Ansi4Bit)
	require.NoError(t, r.Print(Request{Text: []string{"a"}, Style: AllSegments(Style(99), Bold)}))
	assert.Equal(t, sgr("1")+"a"+reset+"\n", out.String())
	assert.Contains(t, warnings.String(), "unsupported style 99")
}

func TestPrint_NoColorModeDropsEverything(t *testing.T) {
	r, out, _ := newTestRenderer(termcap.NoColor)
	require.NoError(t, r.Print(Request{
		Text:        []string{"a", "b"},
		Color:       Colors("Red", "Blue"),
		Background:  Colors("White"),
		Style:       AllSegments(Bold),
		Decorations: []Style{Underline},
	}))
	assert.Equal(t, "ab\n", out.String())
}

type recordingConsole struct {
	out *bytes.Buffer
}

func (c recordingConsole) SetColors(fg, bg int) error {
	fmt.Fprintf(c.out, "<%d,%d>", fg, bg)
	return nil
}

func (c recordingConsole) Reset() error {
	c.out.WriteString("</>")
	return nil
}

func TestPrint_NativeColorMode(t *testing.T) {
	r, out, _ := newTestRenderer(termcap.NativeColor)
	r.Console = recordingConsole{out: out}

	require.NoError(t, r.Print(Request{
		Text:       []string{"  ", "a", "b", "c"},
		Color:      []Color{{}, Named("Yellow"), Code(200)},
		Background: []Color{{}, Named("DarkBlue")},
		Style:      AllSegments(Bold),
	}))

	// segment 0 has no explicit color and falls back to the first color,
	// which is unset; the numeric code degrades to Gray.
	assert.Equal(t, "  <14,1>a</><7,-1>b</>c\n", out.String())
}

func TestPrint_NativeModeWithoutConsoleIsPlain(t *testing.T) {
	r, out, _ := newTestRenderer(termcap.NativeColor)
	require.NoError(t, r.Print(Colored("x", "Red")))
	assert.Equal(t, "x\n", out.String())
}

func TestSprint_NativeModeRendersPlain(t *testing.T) {
	r, _, _ := newTestRenderer(termcap.NativeColor)
	r.Console = recordingConsole{out: &bytes.Buffer{}}
	s, err := r.Sprint(Colored("x", "Red"))
	require.NoError(t, err)
	assert.Equal(t, "x\n", s)
}

func TestPrint_LineOptionsOrder(t *testing.T) {
	r, out, _ := newTestRenderer(termcap.NoColor)
	require.NoError(t, r.Print(Request{
		Text:        []string{"text"},
		LinesBefore: 1,
		LinesAfter:  2,
		StartTab:    1,
		StartSpaces: 2,
		ShowTime:    true,
	}))
	assert.Equal(t, "\n\t  [2026-10-19 10:00:00] text\n\n\n", out.String())
}

func TestPrint_Center(t *testing.T) {
	r, out, _ := newTestRenderer(termcap.NoColor)
	r.Width = func() int { return 20 }
	require.NoError(t, r.Print(Request{Text: []string{"ab", "cd"}, Center: true}))
	assert.Equal(t, strings.Repeat(" ", 8)+"abcd\n", out.String())
}

func TestPrint_CenterSkippedWhenTextOverflows(t *testing.T) {
	r, out, _ := newTestRenderer(termcap.NoColor)
	r.Width = func() int { return 3 }
	require.NoError(t, r.Print(Request{Text: []string{"abcd"}, Center: true}))
	assert.Equal(t, "abcd\n", out.String())
}

func TestPrint_CenterIgnoresEscapeCodes(t *testing.T) {
	r, out, _ := newTestRenderer(termcap.Ansi8Bit)
	r.Width = func() int { return 10 }
	require.NoError(t, r.Print(Request{Text: []string{"ab"}, Color: Colors("Red"), Center: true}))
	assert.True(t, strings.HasPrefix(out.String(), "    \x1b["))
}

func TestPrint_NoNewLineAndBlankLine(t *testing.T) {
	r, out, _ := newTestRenderer(termcap.NoColor)
	require.NoError(t, r.Print(Request{Text: []string{"prompt: "}, NoNewLine: true}))
	require.NoError(t, r.Print(Request{Text: []string{"ignored"}, BlankLine: true, LinesBefore: 3}))
	assert.Equal(t, "prompt: \n", out.String())
}

func TestPrint_LogSink(t *testing.T) {
	dir := t.TempDir()
	r, out, _ := newTestRenderer(termcap.Ansi8Bit)
	r.LogDir = dir

	require.NoError(t, r.Print(Request{
		Text:  []string{"granted ", "Editor"},
		Color: Colors("Green", "Yellow"),
		Log:   &LogOptions{File: "audit", Time: true, Level: "info"},
	}))
	require.NoError(t, r.Print(Request{
		Text:      []string{"second"},
		NoConsole: true,
		Log:       &LogOptions{File: "audit"},
	}))

	data, err := os.ReadFile(filepath.Join(dir, "audit.log"))
	require.NoError(t, err)
	assert.Equal(t, "[2026-10-19 10:00:00] [INFO] granted Editor\nsecond\n", string(data))
	assert.NotContains(t, out.String(), "second")
}

func TestPrint_LogFailureIsOnlyAWarning(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	r, out, warnings := newTestRenderer(termcap.NoColor)
	r.LogDir = blocker

	err := r.Print(Request{Text: []string{"hello"}, Log: &LogOptions{File: "audit", Retries: 3}})
	require.NoError(t, err)
	assert.Equal(t, "hello\n", out.String())
	assert.Contains(t, warnings.String(), "after 3 attempts")
}

func TestResolveLogPath(t *testing.T) {
	dir := filepath.Join("var", "logs")
	tests := []struct {
		name string
		want string
	}{
		{"audit", filepath.Join(dir, "audit.log")},
		{"audit.txt", filepath.Join(dir, "audit.txt")},
		{"sub/audit", "sub/audit"},
		{`C:\logs\audit`, `C:\logs\audit`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ResolveLogPath(dir, tt.name), tt.name)
	}
	assert.Equal(t, "audit.log", ResolveLogPath("", "audit"))
}

func TestFormatLogLine(t *testing.T) {
	assert.Equal(t, "plain", FormatLogLine("plain", "", ""))
	assert.Equal(t, "[WARN] x", FormatLogLine("x", "", "warn"))
	assert.Equal(t, "[t] [ERROR] x", FormatLogLine("x", "t", "ERROR"))
}

func TestLine_InvalidRequestRendersPlain(t *testing.T) {
	r, _, _ := newTestRenderer(termcap.Ansi8Bit)
	assert.Equal(t, "ab", r.Line(Request{Text: []string{"a", "b"}, Color: []Color{ColorOf(1.5)}}))
}

func TestPairs(t *testing.T) {
	req := Pairs("Mailbox: ", "Gray", "alice", "Cyan", "!")
	assert.Equal(t, []string{"Mailbox: ", "alice", "!"}, req.Text)
	assert.Equal(t, Colors("Gray", "Cyan"), req.Color)
}
