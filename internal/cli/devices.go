package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/padkeys/internal/device/evdevpad"
)

func newDevicesCommand(_ *env) *cobra.Command {
	return &cobra.Command{
		Use:   "devices",
		Short: "List connected gamepads",
		Long: `List the evdev devices that look like gamepads. Pass a path to
"padkeys run --device" to pick one when several are connected.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pads, err := evdevpad.List()
			if err != nil {
				return fmt.Errorf("listing gamepads: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(pads) == 0 {
				fmt.Fprintln(out, mutedStyle.Render("No gamepads found. Check that your user can read /dev/input/event*."))
				return nil
			}
			rows := make([][]string, 0, len(pads))
			for _, p := range pads {
				rows = append(rows, []string{p.Path, p.Name})
			}
			fmt.Fprintln(out, newTable([]string{"Path", "Name"}, rows, 0))
			return nil
		},
	}
}
