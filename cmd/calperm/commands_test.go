package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calperm/calperm/internal/config"
	"github.com/calperm/calperm/internal/termcap"
	"github.com/calperm/calperm/internal/urls"
)

func TestAdminFrom(t *testing.T) {
	defer func() { flagAdmin = "" }()

	tests := []struct {
		name    string
		flag    string
		args    []string
		want    string
		wantErr bool
	}{
		{"none", "", nil, "", false},
		{"positional", "", []string{"admin@contoso.com"}, "admin@contoso.com", false},
		{"flag", "admin@contoso.com", nil, "admin@contoso.com", false},
		{"both agree", "Admin@contoso.com", []string{"admin@contoso.com"}, "admin@contoso.com", false},
		{"both differ", "a@contoso.com", []string{"b@contoso.com"}, "", true},
		{"not an email", "", []string{"admin"}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flagAdmin = tt.flag
			got, err := adminFrom(tt.args)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestColorMode(t *testing.T) {
	tty := termcap.Probe{
		GOOS:       "linux",
		IsTerminal: func(uintptr) bool { return true },
	}
	withEnv := func(p termcap.Probe, vars map[string]string) termcap.Probe {
		p.Getenv = func(k string) string { return vars[k] }
		return p
	}

	cfg := config.NewConfig()
	assert.Equal(t, termcap.Ansi8Bit, colorMode(cfg, withEnv(tty, map[string]string{"TERM": "xterm-256color"}), os.Stdout))
	assert.Equal(t, termcap.NoColor, colorMode(cfg, withEnv(tty, map[string]string{"TERM": "xterm-256color", "NO_COLOR": "1"}), os.Stdout))

	cfg.UI.ColorMode = "4bit"
	assert.Equal(t, termcap.Ansi4Bit, colorMode(cfg, withEnv(tty, map[string]string{"TERM": "xterm-256color"}), os.Stdout))
	assert.Equal(t, termcap.NoColor, colorMode(cfg, withEnv(tty, map[string]string{"NO_COLOR": "1"}), os.Stdout),
		"NO_COLOR wins over a forced mode")
}

func TestRootHelpLinksDocumentation(t *testing.T) {
	assert.Contains(t, rootCmd.Long, "Documentation: "+urls.Project)
}
