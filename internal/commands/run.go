package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dotcommander/osapilot/internal/osa"
	"github.com/dotcommander/osapilot/internal/output"
	"github.com/dotcommander/osapilot/internal/retry"
)

func NewRunCmd() *cobra.Command {
	var (
		file string
		vars []string
	)

	cmd := &cobra.Command{
		Use:   "run [script]",
		Short: "Run an AppleScript, retrying timeouts per policy",
		Long: `Run an AppleScript given inline or via --file. ${KEY} placeholders in the
script are substituted from --var KEY=value pairs with string-literal escaping.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			script, err := resolveScript(args, file)
			if err != nil {
				return cmdErr(err)
			}
			if len(vars) > 0 {
				values, err := parseVars(vars)
				if err != nil {
					return cmdErr(err)
				}
				script = osa.Expand(script, values)
			}

			policy, err := policyFromCmd(cmd)
			if err != nil {
				return cmdErr(err)
			}
			runner, em, cleanup, err := runnerFromCmd(cmd)
			if err != nil {
				return cmdErr(err)
			}
			defer cleanup()

			ctx := cmd.Context()
			res, err := retry.Do(ctx, policy, em, func() (osa.Result, error) {
				return runner.Run(ctx, script)
			})
			if err != nil {
				return cmdErr(err)
			}

			type resp struct {
				Output      string  `json:"output"`
				DurationSec float64 `json:"duration_sec"`
			}
			return output.PrintSuccess(resp{
				Output:      res.Output,
				DurationSec: res.Duration.Seconds(),
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read the script from a file instead of the argument")
	cmd.Flags().StringArrayVar(&vars, "var", nil, "Template variable KEY=value (repeatable)")

	return cmd
}

func resolveScript(args []string, file string) (string, error) {
	if file != "" {
		data, err := os.ReadFile(file) //nolint:gosec // G304: user-supplied script path is the point
		if err != nil {
			return "", fmt.Errorf("read script file: %w", err)
		}
		return string(data), nil
	}
	if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
		return args[0], nil
	}
	return "", fmt.Errorf("provide a script argument or --file")
}

func parseVars(pairs []string) (map[string]string, error) {
	values := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --var %q (expected KEY=value)", pair)
		}
		values[key] = value
	}
	return values, nil
}
