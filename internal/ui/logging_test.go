package ui

import (
	"github.com/pterm/pterm"
	"os"
)

func ExamplePrintfln() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()

	Printfln("Current profile: %s", "quiet")
	// Output:
	// Current profile: quiet
}

func ExampleDebug() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()
	SetDebugEnabled(true)

	Debug("Probing %s", "kbd_rgb_mode")
	// Output:
	// DEBUG: Probing kbd_rgb_mode
}

func ExampleInfo() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()

	Info("Found keyboard LED controls at %s", "asus::kbd_backlight")
	// Output:
	// INFO: Found keyboard LED controls at asus::kbd_backlight
}

func ExampleWarning() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()

	Warning("Clamped brightness to [0.0 ; 1.0], was %.1f", 1.5)
	// Output:
	// WARNING: Clamped brightness to [0.0 ; 1.0], was 1.5
}

func ExampleError() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()

	Error("Could not write frame: %v", os.ErrClosed)
	// Output:
	// ERROR: Could not write frame: file already closed
}
