// Package tui provides the interactive screens of calperm.
//
// Every screen is a bubbletea model that ends in exactly one terminal state:
//
//   - MenuModel: bordered option list driven by the arrow keys. Ends with
//     Select(index), Back, Quit or Cancel. Back and Quit entries exist only
//     when the menu allows them.
//   - PromptModel: free text, validated, then confirmed through a nested
//     MenuModel offering Confirm, Retry and Cancel.
//   - PauseModel: waits for any key.
//
// Key bindings are fixed: Up/Left previous, Down/Right next, Enter select,
// Esc cancel. Ctrl+C is treated as Esc.
//
// Screens are run through a Runner. ProgramRunner owns the terminal;
// tuitest.Script replays key presses for tests. Console bundles a Runner with
// the Theme and adds result boxes:
//
//	console := tui.NewConsole(theme, tui.ProgramRunner{})
//	res, err := console.Menu(tui.Menu{Title: "Main Menu", Options: opts, AllowQuit: true})
//
// Screens are built as strings with style.Renderer.Sprint. In NativeColor
// mode that output is plain, so menus, prompts and the status bar draw
// without color; native console colors only apply to lines printed between
// screens through Console.Print.
package tui
