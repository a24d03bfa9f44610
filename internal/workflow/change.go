package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/calperm/calperm/internal/exchange"
	"github.com/calperm/calperm/internal/opstate"
	"github.com/calperm/calperm/internal/permission"
	"github.com/calperm/calperm/internal/style"
	"github.com/calperm/calperm/internal/tui"
	"github.com/calperm/calperm/internal/urls"
)

// change is the state shared by the Add and Modify steps.
type change struct {
	target
	user    string // identity passed to the API
	display string
	current permission.AccessRight // Unknown for a new entry
	right   permission.AccessRight
	sharing permission.SharingFlags
	notify  bool
}

func (c *change) request() exchange.PermissionChange {
	sharing := c.sharing
	if !permission.Allowed(c.right, sharing) {
		sharing = permission.SharingNone
	}
	return exchange.PermissionChange{
		CalendarPath: c.path(),
		User:         c.user,
		AccessRight:  c.right,
		Notify:       c.notify,
		Sharing:      sharing,
	}
}

func (c *change) userLabel() string {
	if c.display != "" && c.display != c.user {
		return fmt.Sprintf("%s (%s)", c.display, c.user)
	}
	return c.user
}

func (a *App) accessStep(c *change) step {
	return func() (nav, error) {
		a.step("Access level")
		rights := permission.All()
		opts := make([]tui.Option, len(rights))
		preview := make([]style.Request, 0, len(rights)+1)
		preview = append(preview, style.Colored("  Access levels:", "Gray"))
		for i, r := range rights {
			opts[i] = tui.Option{Label: r.String(), Color: r.Color()}
			preview = append(preview, style.Pairs(fmt.Sprintf("    %-18s", r), r.Color(), r.Description(), "DarkGray"))
		}
		preview = append(preview, style.Pairs("  Reference: ", "DarkGray", urls.FolderPermissionRoles, "DarkCyan"))

		var summary []style.Request
		if c.current != permission.Unknown {
			summary = append(summary, style.Pairs("  Current access: ", "DarkGray", c.current.String(), c.current.Color()))
		}

		res, err := a.Console.Menu(tui.Menu{
			Title:     "Select access level for " + c.user,
			Options:   opts,
			AllowBack: true,
			Preview:   preview,
			Summary:   summary,
		})
		if err != nil {
			return navCancel, err
		}
		if res.Outcome != tui.OutcomeSelect {
			return outcomeNav(res), nil
		}
		c.right = rights[res.Index]
		return navNext, nil
	}
}

// delegateStep only asks for Editor, the one right that takes sharing flags.
func (a *App) delegateStep(c *change) step {
	return func() (nav, error) {
		if c.right != permission.Editor {
			c.sharing = permission.SharingNone
			return navSkip, nil
		}
		a.step("Delegate")

		choices := permission.DelegateChoices()
		opts := make([]tui.Option, len(choices))
		for i, f := range choices {
			opts[i] = tui.Option{Label: f.Label(), Hint: f.Hint()}
		}
		res, err := a.Console.Menu(tui.Menu{
			Title:     "Delegate access",
			Options:   opts,
			AllowBack: true,
		})
		if err != nil {
			return navCancel, err
		}
		if res.Outcome != tui.OutcomeSelect {
			return outcomeNav(res), nil
		}
		c.sharing = choices[res.Index]
		return navNext, nil
	}
}

// notifyStep is skipped for Default and Anonymous, which have no inbox.
func (a *App) notifyStep(c *change) step {
	return func() (nav, error) {
		if permission.IsBuiltIn(c.user) {
			c.notify = false
			return navSkip, nil
		}
		a.step("Notification")

		res, err := a.Console.Menu(tui.Menu{
			Title: "Send notification to " + c.user + "?",
			Options: []tui.Option{
				{Label: "Yes", Color: "Green", Hint: "The user receives a sharing invitation by email"},
				{Label: "No", Color: "DarkGray", Hint: "The change is applied silently"},
			},
			AllowBack: true,
		})
		if err != nil {
			return navCancel, err
		}
		if res.Outcome != tui.OutcomeSelect {
			return outcomeNav(res), nil
		}
		c.notify = res.Index == 0
		return navNext, nil
	}
}

func (c *change) summary() []style.Request {
	lines := []style.Request{
		style.Pairs("  Mailbox:      ", "DarkGray", c.address(), "Cyan"),
		style.Pairs("  Calendar:     ", "DarkGray", c.path(), "Cyan"),
		style.Pairs("  User:         ", "DarkGray", c.userLabel(), "White"),
	}
	if c.current != permission.Unknown {
		lines = append(lines, style.Pairs("  Current:      ", "DarkGray", c.current.String(), c.current.Color()))
	}
	lines = append(lines, style.Pairs("  Access level: ", "DarkGray", c.right.String(), c.right.Color()))
	if c.right == permission.Editor {
		lines = append(lines, style.Pairs("  Delegate:     ", "DarkGray", c.sharing.Label(), "White"))
	}
	if !permission.IsBuiltIn(c.user) {
		lines = append(lines, style.Pairs("  Notify user:  ", "DarkGray", yesNo(c.notify), "White"))
	}
	return lines
}

func (c *change) details() []tui.Detail {
	d := []tui.Detail{
		{Key: "Calendar", Value: c.path()},
		{Key: "User", Value: c.userLabel()},
		{Key: "Access level", Value: c.right.String()},
	}
	if c.right == permission.Editor {
		d = append(d, tui.Detail{Key: "Delegate", Value: c.sharing.Label()})
	}
	if !permission.IsBuiltIn(c.user) {
		d = append(d, tui.Detail{Key: "Notified", Value: yesNo(c.notify)})
	}
	return d
}

// confirmStep shows the summary and runs apply on confirmation.
func (a *App) confirmStep(ctx context.Context, c *change, verb string, apply func(context.Context, exchange.PermissionChange) error) step {
	return func() (nav, error) {
		a.step("Confirm")
		res, err := a.Console.Menu(tui.Menu{
			Title: "Confirm " + verb,
			Options: []tui.Option{
				{Label: verb, Color: "Green"},
				{Label: "Cancel", Color: "Red"},
			},
			AllowBack: true,
			Summary:   c.summary(),
		})
		if err != nil {
			return navCancel, err
		}
		if res.Outcome != tui.OutcomeSelect {
			return outcomeNav(res), nil
		}
		if res.Index != 0 {
			return navCancel, nil
		}

		a.step("Applying")
		req := c.request()
		if err := apply(ctx, req); err != nil {
			a.audit("ERROR", fmt.Sprintf("%s %s for %s on %s failed: %s", verb, req.AccessRight, req.User, req.CalendarPath, exchange.ShortMessage(err)))
			return a.fail(verb+" failed", err)
		}
		a.audit("INFO", fmt.Sprintf("%s %s for %s on %s (delegate: %s, notify: %s)",
			pastTense(verb), req.AccessRight, req.User, req.CalendarPath, req.Sharing, yesNo(req.Notify)))

		a.Tracker.Set(opstate.Step("Done"))
		if err := a.Console.Success("Permission "+strings.ToLower(pastTense(verb)), c.details()...); err != nil {
			return navCancel, err
		}
		return navNext, a.Console.Pause("")
	}
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func pastTense(verb string) string {
	switch verb {
	case "Add":
		return "Added"
	case "Modify":
		return "Modified"
	case "Remove":
		return "Removed"
	}
	return verb
}
