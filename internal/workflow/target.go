package workflow

import (
	"context"
	"fmt"

	"github.com/calperm/calperm/internal/exchange"
	"github.com/calperm/calperm/internal/opstate"
	"github.com/calperm/calperm/internal/tui"
	"github.com/calperm/calperm/internal/validation"
)

// target is the mailbox and calendar a workflow operates on.
type target struct {
	mailbox   *exchange.Mailbox
	calendars []exchange.Calendar
	calendar  exchange.Calendar
}

func (t *target) address() string {
	if t.mailbox == nil {
		return ""
	}
	return t.mailbox.Address()
}

func (t *target) path() string {
	return t.calendar.PermissionPath(t.address())
}

// autoSelect reports whether the only calendar is the default one.
func (t *target) autoSelect() bool {
	return len(t.calendars) == 1 && t.calendars[0].IsDefault()
}

// mailboxStep asks for the mailbox, resolves it and loads its calendars.
func (a *App) mailboxStep(ctx context.Context, t *target) step {
	return func() (nav, error) {
		a.step("Mailbox")
		res, err := a.Console.Prompt(tui.Prompt{
			Title:       "Mailbox",
			Prompt:      "Mailbox whose calendar you want to manage",
			Placeholder: "alice@contoso.com",
			Validation:  validation.Email,
		})
		if err != nil {
			return navCancel, err
		}
		if res.Cancelled {
			return navCancel, nil
		}

		mb, err := a.Service.ResolveMailbox(ctx, res.Value)
		if err != nil {
			return a.fail("Mailbox lookup failed", err)
		}
		a.Tracker.Set(opstate.Target(mb.Address()))

		cals, err := a.Service.ListCalendars(ctx, mb.Address())
		if err != nil {
			return a.fail("Could not list calendars", err)
		}
		if len(cals) == 0 {
			return a.fail("No calendars found", fmt.Errorf("mailbox %s has no calendar folders", mb.Address()))
		}
		t.mailbox, t.calendars = mb, cals
		return navNext, nil
	}
}

// calendarStep picks the calendar. A mailbox with only its default calendar
// skips the menu.
func (a *App) calendarStep(t *target) step {
	return func() (nav, error) {
		a.step("Calendar")
		if t.autoSelect() {
			t.calendar = t.calendars[0]
			return navSkip, nil
		}

		opts := make([]tui.Option, len(t.calendars))
		for i, c := range t.calendars {
			label := c.Name
			if c.IsDefault() {
				label += " (default)"
			}
			opts[i] = tui.Option{
				Label: fmt.Sprintf("%s - %d items, %s", label, c.ItemCount, exchange.FormatSize(c.SizeBytes)),
				Hint:  c.PermissionPath(t.address()),
			}
		}

		res, err := a.Console.Menu(tui.Menu{
			Title:     "Select calendar",
			Options:   opts,
			AllowBack: true,
		})
		if err != nil {
			return navCancel, err
		}
		if res.Outcome != tui.OutcomeSelect {
			return outcomeNav(res), nil
		}
		t.calendar = t.calendars[res.Index]
		return navNext, nil
	}
}
