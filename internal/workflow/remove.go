package workflow

import (
	"context"
	"fmt"

	"github.com/calperm/calperm/internal/exchange"
	"github.com/calperm/calperm/internal/opstate"
	"github.com/calperm/calperm/internal/style"
	"github.com/calperm/calperm/internal/tui"
)

func (a *App) remove(ctx context.Context) error {
	var t target
	var entry exchange.Permission
	return runSteps(
		a.mailboxStep(ctx, &t),
		a.calendarStep(&t),
		a.chooseEntryStep(ctx, &t, false, func(p exchange.Permission) { entry = p }),
		func() (nav, error) {
			a.step("Confirm")
			res, err := a.Console.Menu(tui.Menu{
				Title: "Confirm Remove",
				Options: []tui.Option{
					{Label: "Remove", Color: "Red"},
					{Label: "Cancel", Color: "DarkGray"},
				},
				AllowBack: true,
				Summary: []style.Request{
					style.Pairs("  Calendar:     ", "DarkGray", t.path(), "Cyan"),
					style.Pairs("  User:         ", "DarkGray", entry.User, "White"),
					style.Pairs("  Access level: ", "DarkGray", rightsText(entry), entry.AccessRights.Color()),
				},
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
			if err := a.Service.RevokePermission(ctx, t.path(), entry.User); err != nil {
				a.audit("ERROR", fmt.Sprintf("Remove %s for %s on %s failed: %s", rightsText(entry), entry.User, t.path(), exchange.ShortMessage(err)))
				return a.fail("Remove failed", err)
			}
			a.audit("INFO", fmt.Sprintf("Removed %s for %s on %s", rightsText(entry), entry.User, t.path()))

			a.Tracker.Set(opstate.Step("Done"))
			if err := a.Console.Success("Permission removed",
				tui.Detail{Key: "Calendar", Value: t.path()},
				tui.Detail{Key: "User", Value: entry.User},
				tui.Detail{Key: "Previous access", Value: rightsText(entry)},
			); err != nil {
				return navCancel, err
			}
			return navNext, a.Console.Pause("")
		},
	)
}
