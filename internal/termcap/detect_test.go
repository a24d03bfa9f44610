package termcap

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func envFrom(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func tty(v bool) func(uintptr) bool {
	return func(uintptr) bool { return v }
}

func TestProbe_Detect(t *testing.T) {
	tests := []struct {
		name  string
		probe Probe
		want  Mode
	}{
		{
			name:  "NO_COLOR wins over a capable terminal",
			probe: Probe{GOOS: "linux", IsTerminal: tty(true), Getenv: envFrom(map[string]string{"NO_COLOR": "1", "TERM": "xterm-256color"})},
			want:  NoColor,
		},
		{
			name:  "not a terminal",
			probe: Probe{GOOS: "linux", IsTerminal: tty(false), Getenv: envFrom(map[string]string{"TERM": "xterm-256color"})},
			want:  NoColor,
		},
		{
			name:  "dumb terminal",
			probe: Probe{GOOS: "linux", IsTerminal: tty(true), Getenv: envFrom(map[string]string{"TERM": "dumb"})},
			want:  NoColor,
		},
		{
			name:  "xterm is 4-bit",
			probe: Probe{GOOS: "linux", IsTerminal: tty(true), Getenv: envFrom(map[string]string{"TERM": "xterm"})},
			want:  Ansi4Bit,
		},
		{
			name:  "256color TERM",
			probe: Probe{GOOS: "darwin", IsTerminal: tty(true), Getenv: envFrom(map[string]string{"TERM": "xterm-256color"})},
			want:  Ansi8Bit,
		},
		{
			name:  "truecolor COLORTERM",
			probe: Probe{GOOS: "linux", IsTerminal: tty(true), Getenv: envFrom(map[string]string{"TERM": "xterm", "COLORTERM": "truecolor"})},
			want:  Ansi8Bit,
		},
		{
			name: "Windows Terminal needs no enable attempt",
			probe: Probe{GOOS: "windows", IsTerminal: tty(true), Getenv: envFrom(map[string]string{"WT_SESSION": "abc"}),
				EnableVT: func(*os.File) bool { panic("EnableVT must not be called") }},
			want: Ansi8Bit,
		},
		{
			name:  "legacy console where VT can be enabled",
			probe: Probe{GOOS: "windows", IsTerminal: tty(true), Getenv: envFrom(nil), EnableVT: func(*os.File) bool { return true }},
			want:  Ansi4Bit,
		},
		{
			name:  "legacy console falls back to native colors",
			probe: Probe{GOOS: "windows", IsTerminal: tty(true), Getenv: envFrom(nil), EnableVT: func(*os.File) bool { return false }},
			want:  NativeColor,
		},
		{
			name:  "redirected output on windows",
			probe: Probe{GOOS: "windows", IsTerminal: tty(false), Getenv: envFrom(nil), EnableVT: func(*os.File) bool { return true }},
			want:  NoColor,
		},
	}

	f, err := os.CreateTemp(t.TempDir(), "tty")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.probe.Detect(f))
		})
	}
}

func TestProbe_NilFileIsUnsupported(t *testing.T) {
	p := Probe{GOOS: "linux", Getenv: envFrom(map[string]string{"TERM": "xterm"})}
	assert.False(t, p.EscapesSupported(nil))
	assert.Equal(t, NoColor, p.Detect(nil))
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in     string
		want   Mode
		wantOK bool
	}{
		{"none", NoColor, true},
		{"Native", NativeColor, true},
		{"4bit", Ansi4Bit, true},
		{"256", Ansi8Bit, true},
		{"auto", NoColor, false},
		{"", NoColor, false},
	}
	for _, tt := range tests {
		got, ok := ParseMode(tt.in)
		assert.Equal(t, tt.wantOK, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestMode_SupportsEscapes(t *testing.T) {
	assert.False(t, NoColor.SupportsEscapes())
	assert.False(t, NativeColor.SupportsEscapes())
	assert.True(t, Ansi4Bit.SupportsEscapes())
	assert.True(t, Ansi8Bit.SupportsEscapes())
}
