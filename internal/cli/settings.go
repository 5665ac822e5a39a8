package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewSettingsCommand creates the settings command group
func NewSettingsCommand(rt *runtime) *cobra.Command {
	cobraCmd := &cobra.Command{
		Use:   "settings",
		Short: "Show and change workspace preferences",
	}

	cobraCmd.AddCommand(&cobra.Command{
		Use:   "skip-tests [on|off]",
		Short: "Show or set whether phase invocations skip tests",
		Long: `Shows or sets the skip-tests preference. When on, -DskipTests is added
to phase invocations and the test phase is shown as skipped.`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := rt.open(cmd.Context())
			if err != nil {
				return err
			}

			if len(args) == 1 {
				var skip bool
				switch args[0] {
				case "on", "true":
					skip = true
				case "off", "false":
				default:
					return fmt.Errorf("invalid value %q (must be on or off)", args[0])
				}
				if err := a.setSkipTests(skip); err != nil {
					return err
				}
			}

			state := "off"
			if a.skipTests {
				state = "on"
			}
			_, _ = fmt.Fprintf(rt.stdout(), "skip-tests: %s\n", state)
			return nil
		},
	})

	return cobraCmd
}
