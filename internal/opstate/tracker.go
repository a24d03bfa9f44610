// Package opstate tracks the operation in progress so the window title and
// status bar can describe it.
package opstate

import "strings"

// DefaultAppName is used in titles when the tracker has no name.
const DefaultAppName = "Calendar Permissions"

// State is the display context of the current operation. Empty fields are
// unset.
type State struct {
	Action        string
	TargetMailbox string
	ActingUser    string
	Step          string
}

// Field sets one State field.
type Field func(*State)

// Action sets the workflow name, e.g. "Add".
func Action(s string) Field { return func(st *State) { st.Action = s } }

// Target sets the mailbox whose calendar is being worked on.
func Target(s string) Field { return func(st *State) { st.TargetMailbox = s } }

// User sets the user the permission applies to.
func User(s string) Field { return func(st *State) { st.ActingUser = s } }

// Step sets the current step within the workflow.
func Step(s string) Field { return func(st *State) { st.Step = s } }

// Tracker owns the State for one session. It is passed explicitly to the
// screens that display it.
type Tracker struct {
	AppName string

	// OnChange is called with the new title after every Set or Reset.
	OnChange func(title string)

	state State
}

// NewTracker returns an empty tracker.
func NewTracker(appName string) *Tracker {
	return &Tracker{AppName: appName}
}

// Set overwrites the given fields and keeps the rest.
func (t *Tracker) Set(fields ...Field) {
	for _, f := range fields {
		f(&t.state)
	}
	t.changed()
}

// Reset clears every field.
func (t *Tracker) Reset() {
	t.state = State{}
	t.changed()
}

// State returns a copy of the current state.
func (t *Tracker) State() State {
	return t.state
}

// Title is "<app> | <action> | Target: <t> | User: <u> | <step>" with empty
// parts left out.
func (t *Tracker) Title() string {
	name := t.AppName
	if name == "" {
		name = DefaultAppName
	}
	parts := []string{name}
	if t.state.Action != "" {
		parts = append(parts, t.state.Action)
	}
	if t.state.TargetMailbox != "" {
		parts = append(parts, "Target: "+t.state.TargetMailbox)
	}
	if t.state.ActingUser != "" {
		parts = append(parts, "User: "+t.state.ActingUser)
	}
	if t.state.Step != "" {
		parts = append(parts, t.state.Step)
	}
	return strings.Join(parts, " | ")
}

// StatusItem is one labeled value of the status bar.
type StatusItem struct {
	Label string
	Value string
}

// StatusBar lists the set fields in display order. It is empty when nothing
// is in progress.
func (t *Tracker) StatusBar() []StatusItem {
	var items []StatusItem
	add := func(label, value string) {
		if value != "" {
			items = append(items, StatusItem{Label: label, Value: value})
		}
	}
	add("Action", t.state.Action)
	add("Mailbox", t.state.TargetMailbox)
	add("User", t.state.ActingUser)
	add("Step", t.state.Step)
	return items
}

func (t *Tracker) changed() {
	if t.OnChange != nil {
		t.OnChange(t.Title())
	}
}
