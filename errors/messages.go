package errors

import (
	"strings"

	"github.com/fatih/color"
	"github.com/mitchellh/go-wordwrap"
)

const width = 78

var ReportBugMessage = `
` + color.HiYellowString("REPORTING A BUG:") + `
` + wordwrap.WrapString("Please try troubleshooting before filing a bug. If the suggestions do not help you can file a bug at "+color.HiBlueString("https://github.com/fossas/mxsuite/issues/new")+".", width) + `
` + wordwrap.WrapString("Please attach the debug logs from:", width) + `

  ` + color.HiGreenString("mxsuite <cmd> --debug") + `
`

// Render formats err for display on a terminal. Errors of type Unknown also
// include instructions for reporting a bug.
func Render(err error) string {
	e, ok := err.(*Error)
	if !ok {
		return color.RedString("ERROR") + " " + err.Error() + "\n"
	}

	var b strings.Builder
	b.WriteString(color.RedString("ERROR"))
	b.WriteString(" ")
	if e.Message != "" {
		b.WriteString(e.Message)
		b.WriteString("\n")
		if e.Cause != nil {
			b.WriteString(lines(e.Cause.Error()))
		}
	} else {
		b.WriteString(e.Error())
		b.WriteString("\n")
	}

	if e.Troubleshooting != "" {
		b.WriteString("\n")
		b.WriteString(color.HiYellowString("TROUBLESHOOTING:"))
		b.WriteString("\n")
		b.WriteString(wordwrap.WrapString(e.Troubleshooting, width))
		b.WriteString("\n")
	}
	if e.Link != "" {
		b.WriteString("\n")
		b.WriteString("See " + color.HiBlueString(e.Link))
		b.WriteString("\n")
	}
	if e.Type == Unknown {
		b.WriteString(ReportBugMessage)
	}
	return b.String()
}
