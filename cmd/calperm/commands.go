package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/calperm/calperm/internal/config"
	"github.com/calperm/calperm/internal/exchange"
	"github.com/calperm/calperm/internal/layout"
	"github.com/calperm/calperm/internal/style"
	"github.com/calperm/calperm/internal/validation"
)

// Command flags
var (
	configPath   string
	flagAdmin    string
	flagLogLevel string
	flagColor    string
	flagTenant   string
	flagEndpoint string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default is the OS config directory)")
	rootCmd.PersistentFlags().StringVar(&flagAdmin, "admin", "", "Administrator account (UPN)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Diagnostic log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flagColor, "color", "", "Color mode (auto, none, native, 4bit, 8bit)")
	rootCmd.Flags().StringVar(&flagTenant, "tenant", "", "Tenant domain or ID (default is the admin's domain)")
	rootCmd.Flags().StringVar(&flagEndpoint, "endpoint", "", "Admin API endpoint")

	tokenCmd.AddCommand(tokenSetCmd, tokenDeleteCmd)
	configCmd.AddCommand(configInitCmd, configPathCmd)
	rootCmd.AddCommand(paletteCmd, tokenCmd, configCmd)
}

// adminFrom picks the administrator from the positional argument or --admin.
func adminFrom(args []string) (string, error) {
	admin := flagAdmin
	if len(args) > 0 {
		if admin != "" && !strings.EqualFold(admin, args[0]) {
			return "", fmt.Errorf("administrator given twice: %q and --admin %q", args[0], admin)
		}
		admin = args[0]
	}
	admin = strings.TrimSpace(admin)
	if admin != "" && !validation.IsEmail(admin) {
		return "", fmt.Errorf("invalid administrator %q: expected an email address", admin)
	}
	return admin, nil
}

func runInteractive(cmd *cobra.Command, args []string) error {
	admin, err := adminFrom(args)
	if err != nil {
		return err
	}
	env, err := loadEnvironment()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return env.app().Run(ctx, admin)
}

// paletteCmd prints every color name in its own color
var paletteCmd = &cobra.Command{
	Use:   "palette",
	Short: "Show the color names available to the configuration",
	Long: `Print every palette color name in its own color, as rendered in the
detected (or forced) color mode. Use these names for ui.default_foreground.`,
	RunE: runPalette,
}

func runPalette(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}
	r := env.renderer(os.Stdout, os.Stderr)

	if err := r.Print(style.Request{
		Text:        []string{fmt.Sprintf("Palette (%s mode)", env.mode)},
		Color:       style.Colors("White"),
		Decorations: []style.Style{style.Bold, style.Underline},
		LinesAfter:  1,
	}); err != nil {
		return err
	}

	names := style.Names()
	width := 0
	for _, n := range names {
		width = max(width, layout.Width(n))
	}
	for _, n := range names {
		pad := strings.Repeat(" ", layout.Pad(width, layout.Width(n))+2)
		if err := r.Print(style.Pairs("  "+n+pad, n, "sample text", n)); err != nil {
			return err
		}
	}
	return nil
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage stored admin API tokens",
	Long: `Store or delete the bearer token used to call the admin API.

Tokens are kept in the OS keyring under the service "calperm", keyed by
administrator. The CALPERM_TOKEN environment variable overrides any stored
token.`,
}

var tokenSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Store a token for --admin",
	Example: `  # Prompt for the token (input is hidden)
  calperm token set --admin admin@contoso.com

  # Read it from a pipe
  get-token | calperm token set --admin admin@contoso.com`,
	Args: cobra.NoArgs,
	RunE: runTokenSet,
}

func runTokenSet(cmd *cobra.Command, args []string) error {
	admin, err := adminFrom(nil)
	if err != nil {
		return err
	}
	if admin == "" {
		return fmt.Errorf("--admin is required")
	}
	env, err := loadEnvironment()
	if err != nil {
		return err
	}

	token, err := readToken(admin)
	if err != nil {
		return err
	}

	ring, err := exchange.OpenKeyring(env.keyringDir())
	if err != nil {
		return err
	}
	if err := exchange.StoreToken(ring, admin, token); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	fmt.Printf("Token stored for %s\n", admin)
	return nil
}

// readToken reads hidden input from a terminal, or one line from a pipe.
func readToken(admin string) (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprintf(os.Stderr, "Token for %s: ", admin)
		data, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("failed to read token: %w", err)
		}
		return string(data), nil
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read token from stdin: %w", err)
	}
	return line, nil
}

var tokenDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the token stored for --admin",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		admin, err := adminFrom(nil)
		if err != nil {
			return err
		}
		if admin == "" {
			return fmt.Errorf("--admin is required")
		}
		env, err := loadEnvironment()
		if err != nil {
			return err
		}
		ring, err := exchange.OpenKeyring(env.keyringDir())
		if err != nil {
			return err
		}
		if err := exchange.DeleteToken(ring, admin); err != nil {
			return fmt.Errorf("failed to delete token: %w", err)
		}
		fmt.Printf("Token deleted for %s\n", admin)
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or create the configuration file",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file location",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolvedConfigPath()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file with the default settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolvedConfigPath()
		if err != nil {
			return err
		}
		if err := config.CreateDefaultConfig(path); err != nil {
			return err
		}
		fmt.Printf("Configuration written to %s\n", path)
		return nil
	},
}

func resolvedConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return config.GetConfigPath()
}
