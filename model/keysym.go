package model

import (
	"fmt"
	"strings"
)

// Keysym is a symbolic key code, numbered like X11 keysyms.
type Keysym uint32

const (
	KeysymSpace     Keysym = 0x0020
	KeysymBackSpace Keysym = 0xff08
	KeysymTab       Keysym = 0xff09
	KeysymReturn    Keysym = 0xff0d
	KeysymEscape    Keysym = 0xff1b
	KeysymHome      Keysym = 0xff50
	KeysymLeft      Keysym = 0xff51
	KeysymUp        Keysym = 0xff52
	KeysymRight     Keysym = 0xff53
	KeysymDown      Keysym = 0xff54
	KeysymPageUp    Keysym = 0xff55
	KeysymPageDown  Keysym = 0xff56
	KeysymEnd       Keysym = 0xff57
	KeysymInsert    Keysym = 0xff63
	KeysymF1        Keysym = 0xffbe
	KeysymDelete    Keysym = 0xffff
)

var keysyms = map[string]Keysym{
	"backspace": KeysymBackSpace,
	"tab":       KeysymTab,
	"return":    KeysymReturn,
	"enter":     KeysymReturn,
	"escape":    KeysymEscape,
	"esc":       KeysymEscape,
	"space":     KeysymSpace,
	"delete":    KeysymDelete,
	"left":      KeysymLeft,
	"right":     KeysymRight,
	"up":        KeysymUp,
	"down":      KeysymDown,
	"home":      KeysymHome,
	"end":       KeysymEnd,
	"pageup":    KeysymPageUp,
	"prior":     KeysymPageUp,
	"pagedown":  KeysymPageDown,
	"next":      KeysymPageDown,
	"insert":    KeysymInsert,
}

func init() {
	for i := range 12 {
		keysyms[fmt.Sprintf("f%d", i+1)] = KeysymF1 + Keysym(i)
	}
}

// LookupKeysym resolves a configuration name such as "backspace" or "F5".
func LookupKeysym(name string) (Keysym, bool) {
	sym, ok := keysyms[strings.ToLower(strings.TrimSpace(name))]

	return sym, ok
}

func (k Keysym) String() string {
	return fmt.Sprintf("0x%04x", uint32(k))
}
