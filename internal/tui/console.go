package tui

import (
	"fmt"
	"io"

	"github.com/calperm/calperm/internal/style"
	"github.com/calperm/calperm/internal/termcap"
)

// Console runs screens and prints between them.
type Console struct {
	Theme  Theme
	Runner Runner
	Out    io.Writer

	// Width of result boxes; zero means the terminal width.
	Width int
}

// NewConsole wires a console writing to the theme's output.
func NewConsole(theme Theme, runner Runner) *Console {
	return &Console{Theme: theme, Runner: runner, Out: theme.Text.Out}
}

// Menu blocks until the menu reaches an outcome.
func (c *Console) Menu(menu Menu) (MenuResult, error) {
	final, err := c.Runner.Run(NewMenuModel(c.Theme, menu))
	if err != nil {
		return MenuResult{}, err
	}
	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{}, fmt.Errorf("unexpected model %T", final)
	}
	return m.Result(), nil
}

// Prompt blocks until a value is confirmed or the prompt is cancelled.
func (c *Console) Prompt(p Prompt) (PromptResult, error) {
	final, err := c.Runner.Run(NewPromptModel(c.Theme, p))
	if err != nil {
		return PromptResult{}, err
	}
	m, ok := final.(PromptModel)
	if !ok {
		return PromptResult{}, fmt.Errorf("unexpected model %T", final)
	}
	return m.Result(), nil
}

// Pause waits for any key. An empty message uses PauseMessage.
func (c *Console) Pause(message string) error {
	_, err := c.Runner.Run(NewPauseModel(c.Theme, message))
	return err
}

// Print renders one line through the style renderer.
func (c *Console) Print(req style.Request) error {
	return c.Theme.Text.Print(req)
}

// Blank prints an empty line.
func (c *Console) Blank() {
	_ = c.Theme.Text.Print(style.Request{BlankLine: true})
}

// boxWidth is the width of headers and result boxes.
func (c *Console) boxWidth() int {
	if c.Width != 0 {
		return c.Width
	}
	if c.Theme.Text.Width != nil {
		return min(c.Theme.Text.Width(), MaxResultWidth)
	}
	return termcap.DefaultWidth
}

// Show prints a result box.
func (c *Console) Show(r *Result) error {
	if r.Width == 0 {
		r.Width = c.boxWidth()
	}
	_, err := fmt.Fprintln(c.Out, r.Render(c.Theme.Boxes))
	return err
}

// Header prints a banner.
func (c *Console) Header(h *Header) error {
	if h.Width == 0 {
		h.Width = c.boxWidth()
	}
	_, err := fmt.Fprintln(c.Out, h.Render(c.Theme.Boxes))
	return err
}

// Success prints a success box.
func (c *Console) Success(title string, details ...Detail) error {
	return c.Show(NewSuccessResult(title, details...))
}

// Failure prints an error box with troubleshooting tips.
func (c *Console) Failure(title string, err error, tips ...string) error {
	return c.Show(NewFailureResult(title, err, tips...))
}
