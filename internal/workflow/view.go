package workflow

import (
	"context"
	"strings"

	"github.com/calperm/calperm/internal/exchange"
	"github.com/calperm/calperm/internal/layout"
	"github.com/calperm/calperm/internal/permission"
	"github.com/calperm/calperm/internal/style"
)

func (a *App) view(ctx context.Context) error {
	var t target
	return runSteps(
		a.mailboxStep(ctx, &t),
		a.calendarStep(&t),
		func() (nav, error) {
			a.step("Permissions")
			perms, err := a.Service.ListPermissions(ctx, t.path())
			if err != nil {
				return a.fail("Could not read permissions", err)
			}
			if err := a.printPermissions(t.path(), perms); err != nil {
				return navCancel, err
			}
			return navNext, a.Console.Pause("")
		},
	)
}

// printPermissions writes one line per entry, colored by access level.
func (a *App) printPermissions(path string, perms []exchange.Permission) error {
	a.Console.Blank()
	if err := a.Console.Print(style.Pairs("  Permissions for ", "Gray", path, "Cyan")); err != nil {
		return err
	}
	a.Console.Blank()

	if len(perms) == 0 {
		return a.Console.Print(style.Colored("  No permission entries.", "DarkGray"))
	}

	width := 0
	for _, p := range perms {
		width = max(width, layout.Width(p.User))
	}
	for _, p := range perms {
		user := "  " + p.User + strings.Repeat(" ", layout.Pad(width, layout.Width(p.User))+2)
		userColor := "White"
		if p.IsBuiltIn() {
			userColor = "DarkGray"
		}
		req := style.Pairs(user, userColor, rightsText(p), p.AccessRights.Color())
		if p.SharingFlags != permission.SharingNone {
			req.Text = append(req.Text, "  ["+p.SharingFlags.Label()+"]")
			req.Color = append(req.Color, style.Named("DarkCyan"))
		}
		if err := a.Console.Print(req); err != nil {
			return err
		}
	}
	return nil
}

// rightsText shows the raw value for rights outside the known set.
func rightsText(p exchange.Permission) string {
	if p.AccessRights.Valid() {
		return p.AccessRights.String()
	}
	if p.RawAccessRights != "" {
		return p.RawAccessRights
	}
	return "None"
}
