package options

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/phoneshell/pkg/printers"
)

// OutputOptions
type OutputOptions struct {
	Format string
}

func AddOutputArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.PersistentFlags().StringVarP(&po.Format, "output", "o", printers.FormatTable,
		fmt.Sprintf("Output format. One of %s.", strings.Join(printers.Formats(), ", ")))
}

// JSON reports whether errors should be written as JSON.
func (o *OutputOptions) JSON() bool {
	return o.Format == printers.FormatJSON
}

// Printer returns a printer for the selected format.
func (o *OutputOptions) Printer(cmd *cobra.Command, locale string) *printers.PrettyPrint {
	return printers.New(cmd.OutOrStdout(), o.Format, locale)
}

func (o *OutputOptions) HandleError(err error) error {
	if o.JSON() && err != nil {
		out := map[string]string{
			"error": err.Error(),
		}
		b, err := json.Marshal(out)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(color.Output, string(b))
		return nil
	}
	return err
}
