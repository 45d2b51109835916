package nestbox

import (
	"fmt"
	"os"

	"github.com/arthur-debert/nestbox/pkg/config"
	"github.com/arthur-debert/nestbox/pkg/errors"
	"github.com/spf13/cobra"
)

func newGenConfigCmd(a *app) *cobra.Command {
	var (
		defaults bool
		write    bool
	)

	cmd := &cobra.Command{
		Use:     "gen-config",
		Short:   MsgGenConfigShort,
		GroupID: "misc",
		Example: `  nestbox gen-config                      # Effective configuration
  nestbox gen-config --defaults           # Annotated defaults
  nestbox gen-config --defaults -w        # Write to ./.nestbox.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var content []byte
			if defaults {
				content = []byte(config.GenerateConfigContent())
			} else {
				data, err := config.Marshal(a.cfg)
				if err != nil {
					return err
				}
				content = data
			}

			if !write {
				_, err := cmd.OutOrStdout().Write(content)
				return err
			}

			path := config.ProjectFile
			if _, err := os.Stat(path); err == nil {
				return errors.Newf(errors.ErrInvalidInput, MsgErrConfigExist, path).
					WithDetail("path", path)
			}
			if err := os.WriteFile(path, content, 0644); err != nil {
				return errors.Wrapf(err, errors.ErrSinkWrite, "failed to write %s", path)
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), MsgWroteConfig, path)
			return err
		},
	}

	cmd.Flags().BoolVar(&defaults, "defaults", false, MsgFlagDefaults)
	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)

	return cmd
}
