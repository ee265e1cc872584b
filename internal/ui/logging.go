package ui

import (
	"github.com/pterm/pterm"
)

// SetDebugEnabled toggles printing of Debug messages
func SetDebugEnabled(enabled bool) {
	pterm.PrintDebugMessages = enabled
}

func Printf(format string, a ...interface{}) {
	pterm.Printf(format, a...)
}

func Printfln(format string, a ...interface{}) {
	pterm.Printfln(format, a...)
}

func Debug(format string, a ...interface{}) {
	pterm.Debug.Printfln(format, a...)
}

func Info(format string, a ...interface{}) {
	pterm.Info.Printfln(format, a...)
}

func Success(format string, a ...interface{}) {
	pterm.Success.Printfln(format, a...)
}

func Warning(format string, a ...interface{}) {
	pterm.Warning.Printfln(format, a...)
}

func Error(format string, a ...interface{}) {
	pterm.Error.Printfln(format, a...)
}

// Fatal prints the message and exits the process with a nonzero status
func Fatal(format string, a ...interface{}) {
	pterm.Fatal.Printfln(format, a...)
}

// Confirm asks the user a yes/no question on the terminal, defaulting to "no"
func Confirm(question string) bool {
	result, err := pterm.DefaultInteractiveConfirm.
		WithDefaultValue(false).
		Show(question)
	if err != nil {
		Warning("Unable to read confirmation: %v", err)
		return false
	}
	return result
}
