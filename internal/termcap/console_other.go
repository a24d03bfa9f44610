//go:build !windows

package termcap

import "os"

// NewConsole returns nil: only Windows consoles have a native color API.
func NewConsole(_ *os.File) Console {
	return nil
}
