package ui

import (
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
)

// NumericalEntry is an Entry that only accepts typed digits.
type NumericalEntry struct {
	widget.Entry

	// MaxDigits caps the typed length; 0 means unlimited.
	MaxDigits int
}

// NewNumericalEntry creates a new instance of NumericalEntry.
func NewNumericalEntry() *NumericalEntry {
	entry := &NumericalEntry{}
	entry.ExtendBaseWidget(entry)
	return entry
}

// TypedRune drops anything but 0-9 and stops at MaxDigits.
// Pasted text goes through TypedShortcut untouched; the Validator catches it.
func (e *NumericalEntry) TypedRune(r rune) {
	if r < '0' || r > '9' {
		return
	}
	if e.MaxDigits > 0 && len(e.Text) >= e.MaxDigits {
		return
	}
	e.Entry.TypedRune(r)
}

// Keyboard requests the numeric keypad on mobile devices.
func (e *NumericalEntry) Keyboard() mobile.KeyboardType {
	return mobile.NumberKeyboard
}
