package workflow

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/calperm/calperm/internal/exchange"
	"github.com/calperm/calperm/internal/logging"
	"github.com/calperm/calperm/internal/opstate"
	"github.com/calperm/calperm/internal/style"
	"github.com/calperm/calperm/internal/tui"
	"github.com/calperm/calperm/internal/validation"
	"github.com/calperm/calperm/internal/version"
)

// MainMenuTitle is the title of the top-level menu.
const MainMenuTitle = "Calendar Permissions Management"

// App is one interactive session: the main menu and the four workflows.
type App struct {
	Console *tui.Console
	Service Service
	Tracker *opstate.Tracker

	// Audit receives one line per attempted change. Nil disables the trail.
	Audit *style.LogOptions

	session *exchange.Session
}

// New returns an App drawing on console and calling svc.
func New(console *tui.Console, svc Service) *App {
	tracker := console.Theme.Tracker
	if tracker == nil {
		tracker = opstate.NewTracker("")
	}
	return &App{Console: console, Service: svc, Tracker: tracker}
}

type action struct {
	name  string
	label string
	color string
	hint  string
	run   func(a *App, ctx context.Context) error
}

var actions = []action{
	{"View", "View calendar permissions", "Cyan", "List who can see a calendar and at which level", (*App).view},
	{"Add", "Add calendar permission", "Green", "Give a user access to a calendar", (*App).add},
	{"Modify", "Modify calendar permission", "Yellow", "Change the access level of an existing entry", (*App).modify},
	{"Remove", "Remove calendar permission", "Red", "Take away a user's access to a calendar", (*App).remove},
}

// Run connects as admin, runs the main menu until the user quits and
// disconnects. An empty admin is prompted for. Connection failures and
// terminal errors are returned; everything else is shown and recovered.
func (a *App) Run(ctx context.Context, admin string) error {
	if admin == "" {
		res, err := a.Console.Prompt(tui.Prompt{
			Title:       "Administrator",
			Prompt:      "Administrator account to connect with",
			Placeholder: "admin@contoso.com",
			Validation:  validation.Email,
		})
		if err != nil {
			return err
		}
		if res.Cancelled {
			return nil
		}
		admin = res.Value
	}

	a.Tracker.Set(opstate.Action("Connect"), opstate.User(admin))
	session, err := a.Service.Connect(ctx, admin)
	if err != nil {
		a.Tracker.Reset()
		_ = a.Console.Failure("Connection failed", err, exchange.TroubleshootingHint(err)...)
		return fmt.Errorf("connect as %s: %w", admin, err)
	}
	a.session = session
	defer a.disconnect()

	org := session.Organization
	if org == "" {
		org = session.Tenant
	}
	banner := tui.NewHeader(a.Tracker.AppName, "calperm "+version.Version,
		tui.Detail{Key: "Organization", Value: org},
		tui.Detail{Key: "Tenant", Value: session.Tenant},
		tui.Detail{Key: "Administrator", Value: admin},
	)
	if err := a.Console.Header(banner); err != nil {
		return err
	}
	if err := a.Console.Print(style.Pairs("Connected to ", "Gray", org, "Cyan", " as ", "Gray", admin, "Cyan")); err != nil {
		return err
	}
	return a.mainMenu(ctx)
}

func (a *App) disconnect() {
	if err := a.Service.Disconnect(a.session); err != nil {
		logging.Warn("Disconnect failed", zap.Error(err))
	}
	a.session = nil
	a.Tracker.Reset()
}

func (a *App) mainMenu(ctx context.Context) error {
	opts := make([]tui.Option, len(actions))
	for i, act := range actions {
		opts[i] = tui.Option{Label: act.label, Color: act.color, Hint: act.hint}
	}

	for {
		a.Tracker.Reset()
		res, err := a.Console.Menu(tui.Menu{Title: MainMenuTitle, Options: opts, AllowQuit: true})
		if err != nil {
			return err
		}
		if res.Outcome != tui.OutcomeSelect {
			return nil
		}

		act := actions[res.Index]
		a.Tracker.Set(opstate.Action(act.name))
		logging.Debug("Workflow started", zap.String("action", act.name))
		if err := act.run(a, ctx); err != nil {
			return err
		}
	}
}

// step records the current step in the tracker and the diagnostic log.
func (a *App) step(name string) {
	a.Tracker.Set(opstate.Step(name))
	logging.LogStep(a.Tracker.State().Action, name)
}

// fail shows an error box, waits for a key and abandons the workflow.
func (a *App) fail(title string, err error) (nav, error) {
	logging.Warn(title, zap.Error(err))
	if perr := a.Console.Failure(title, err, exchange.TroubleshootingHint(err)...); perr != nil {
		return navCancel, perr
	}
	if perr := a.Console.Pause(""); perr != nil {
		return navCancel, perr
	}
	return navCancel, nil
}

// audit appends msg to the audit log.
func (a *App) audit(level, msg string) {
	logging.Info("Audit", zap.String("level", level), zap.String("entry", msg))
	if a.Audit == nil {
		return
	}
	opts := *a.Audit
	opts.Level = level
	_ = a.Console.Print(style.Request{Text: []string{msg}, NoConsole: true, Log: &opts})
}

// outcomeNav maps a menu that ended without a selection.
func outcomeNav(r tui.MenuResult) nav {
	if r.Outcome == tui.OutcomeBack {
		return navBack
	}
	return navCancel
}
