package workflow

import (
	"context"
	"fmt"

	"github.com/calperm/calperm/internal/exchange"
	"github.com/calperm/calperm/internal/opstate"
	"github.com/calperm/calperm/internal/tui"
)

func (a *App) modify(ctx context.Context) error {
	c := &change{}
	return runSteps(
		a.mailboxStep(ctx, &c.target),
		a.calendarStep(&c.target),
		a.chooseEntryStep(ctx, &c.target, true, func(p exchange.Permission) {
			c.user, c.display = p.User, ""
			c.current, c.right, c.sharing = p.AccessRights, p.AccessRights, p.SharingFlags
		}),
		a.accessStep(c),
		a.delegateStep(c),
		a.notifyStep(c),
		a.confirmStep(ctx, c, "Modify", a.Service.ModifyPermission),
	)
}

// chooseEntryStep lists the calendar's entries and hands the chosen one to
// pick. Default and Anonymous are offered only when withBuiltIn is set.
func (a *App) chooseEntryStep(ctx context.Context, t *target, withBuiltIn bool, pick func(exchange.Permission)) step {
	return func() (nav, error) {
		a.step("Select user")
		perms, err := a.Service.ListPermissions(ctx, t.path())
		if err != nil {
			return a.fail("Could not read permissions", err)
		}

		var entries []exchange.Permission
		for _, p := range perms {
			if withBuiltIn || !p.IsBuiltIn() {
				entries = append(entries, p)
			}
		}
		if len(entries) == 0 {
			if err := a.Console.Show(tui.NewWarningResult("No user permissions on this calendar",
				tui.Detail{Key: "Calendar", Value: t.path()})); err != nil {
				return navCancel, err
			}
			return navCancel, a.Console.Pause("")
		}

		opts := make([]tui.Option, len(entries))
		for i, p := range entries {
			opts[i] = tui.Option{
				Label: fmt.Sprintf("%s (%s)", p.User, rightsText(p)),
				Color: p.AccessRights.Color(),
				Hint:  p.AccessRights.Description(),
			}
		}
		res, err := a.Console.Menu(tui.Menu{
			Title:     "Select user",
			Options:   opts,
			AllowBack: true,
		})
		if err != nil {
			return navCancel, err
		}
		if res.Outcome != tui.OutcomeSelect {
			return outcomeNav(res), nil
		}

		p := entries[res.Index]
		a.Tracker.Set(opstate.User(p.User))
		pick(p)
		return navNext, nil
	}
}
