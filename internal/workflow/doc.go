// Package workflow sequences menus and prompts into the four calendar
// permission workflows: view, add, modify and remove.
//
// Each workflow is a list of steps run by an explicit loop. A step returns
// where to go next: forward, back to the previous step, or out to the main
// menu. Steps with nothing to ask (a single default calendar, sharing flags
// for a right other than Editor) are skipped in whichever direction the user
// is moving.
//
// Remote failures never escape a workflow. They are shown in an error box,
// followed by a pause, and the user lands back on the main menu. Only a
// failed connection and terminal errors are returned from Run.
package workflow
