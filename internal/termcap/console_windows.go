//go:build windows

package termcap

import (
	"os"

	"golang.org/x/sys/windows"
)

var procSetConsoleTextAttribute = windows.NewLazySystemDLL("kernel32.dll").NewProc("SetConsoleTextAttribute")

type windowsConsole struct {
	handle   windows.Handle
	original uint16
}

// NewConsole returns the native backend for f, or nil when f is not a console.
func NewConsole(f *os.File) Console {
	if f == nil {
		return nil
	}
	h := windows.Handle(f.Fd())
	var info windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(h, &info); err != nil {
		return nil
	}
	return &windowsConsole{handle: h, original: info.Attributes}
}

func (c *windowsConsole) SetColors(fg, bg int) error {
	attr := c.original
	if fg != NoConsoleColor {
		attr = attr&^0x0F | uint16(fg&0x0F)
	}
	if bg != NoConsoleColor {
		attr = attr&^0xF0 | uint16(bg&0x0F)<<4
	}
	return c.set(attr)
}

func (c *windowsConsole) Reset() error {
	return c.set(c.original)
}

func (c *windowsConsole) set(attr uint16) error {
	r, _, err := procSetConsoleTextAttribute.Call(uintptr(c.handle), uintptr(attr))
	if r == 0 {
		return err
	}
	return nil
}
