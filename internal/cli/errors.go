package cli

import (
	"strings"

	"github.com/arthur-debert/dotsetup/pkg/errors"
	"github.com/arthur-debert/dotsetup/pkg/ui"
	"github.com/arthur-debert/dotsetup/pkg/ui/markup"
	"github.com/spf13/cobra"
)

// PrintError reports err on the command's error stream with an error marker.
// Usage errors get a pointer to the help text.
func PrintError(cmd *cobra.Command, err error) {
	printer := ui.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), ui.FormatAuto)
	printer.Error("%s", markup.Escape(errors.Message(err)))

	switch errors.GetErrorCode(err) {
	case errors.ErrPackageNotFound:
		if available, ok := errors.GetErrorDetails(err)["available"].([]string); ok && len(available) > 0 {
			printer.Info(MsgAvailable, markup.Escape(strings.Join(available, " ")))
		}
		printer.Info(MsgUsageHint)
	case errors.ErrUnknownOption, errors.ErrInvalidInput:
		printer.Info(MsgUsageHint)
	}
}
