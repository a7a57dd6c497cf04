package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/phoneshell/pkg/app"
	"tableflip.dev/phoneshell/pkg/printers"
)

func addSeed(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "load sample conversations and calls so badges have something to count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, func(svc *app.Service, pp *printers.PrettyPrint) error {
				if err := svc.Seed(); err != nil {
					return err
				}
				return pp.Notifications(svc.Notifications())
			})
		},
	}

	topLevel.AddCommand(cmd)
}

func addDoctor(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "check the stored layout for duplicates, orphans and an overfull dock",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, func(svc *app.Service, pp *printers.PrettyPrint) error {
				keys, problems := svc.Doctor(cmd.Context())
				report := printers.DoctorReport{Keys: keys, Healthy: problems == nil}
				if problems != nil {
					report.Problems = splitErrors(problems)
				}
				if err := pp.Doctor(report); err != nil {
					return err
				}
				if !report.Healthy {
					return fmt.Errorf("layout has %d problem(s)", len(report.Problems))
				}
				return nil
			})
		},
	}

	topLevel.AddCommand(cmd)
}

func splitErrors(err error) []string {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []string
		for _, e := range joined.Unwrap() {
			out = append(out, e.Error())
		}
		return out
	}
	return []string{err.Error()}
}
