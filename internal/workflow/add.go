package workflow

import (
	"context"

	"github.com/calperm/calperm/internal/opstate"
	"github.com/calperm/calperm/internal/tui"
	"github.com/calperm/calperm/internal/validation"
)

func (a *App) add(ctx context.Context) error {
	c := &change{}
	return runSteps(
		a.mailboxStep(ctx, &c.target),
		a.calendarStep(&c.target),
		a.addUserStep(ctx, c),
		a.accessStep(c),
		a.delegateStep(c),
		a.notifyStep(c),
		a.confirmStep(ctx, c, "Add", a.Service.GrantPermission),
	)
}

// addUserStep asks for the user to grant access to and checks it exists.
func (a *App) addUserStep(ctx context.Context, c *change) step {
	return func() (nav, error) {
		a.step("User")
		res, err := a.Console.Prompt(tui.Prompt{
			Title:       "User",
			Prompt:      "User to give access to " + c.address() + "'s calendar",
			Placeholder: "bob@contoso.com",
			Validation:  validation.Email,
		})
		if err != nil {
			return navCancel, err
		}
		if res.Cancelled {
			return navCancel, nil
		}

		u, err := a.Service.ResolveMailbox(ctx, res.Value)
		if err != nil {
			return a.fail("User lookup failed", err)
		}
		c.user, c.display = res.Value, u.DisplayName
		a.Tracker.Set(opstate.User(c.user))
		return navNext, nil
	}
}
