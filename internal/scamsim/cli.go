package scamsim

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/wolfman30/scam-honeypot/internal/intel"
)

// LocalFactory builds an in-process target. cleanup is called once the run ends.
type LocalFactory func(ctx context.Context) (target Target, cleanup func(), err error)

// NewRootCommand assembles the scamsim CLI.
func NewRootCommand(local LocalFactory) *cobra.Command {
	root := &cobra.Command{
		Use:           "scamsim",
		Short:         "Replay scripted scam conversations against the decoy",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCommand(local), newExtractCommand())
	return root
}

func newRunCommand(local LocalFactory) *cobra.Command {
	var (
		targetURL  string
		apiKey     string
		scriptPath string
		sessionID  string
		inProcess  bool
		pause      time.Duration
		timeout    time.Duration
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Play a scam script turn by turn and print the decoy's replies",
		Long: `Play a scam script against a running instance (or in-process with --local),
sending the accumulated history on every turn like a real counterpart.

  scamsim run --target http://127.0.0.1:8000/api/scam-honey-pot
  scamsim run --local --script scripts/lottery.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			script := DefaultScript
			if scriptPath != "" {
				loaded, err := LoadScript(scriptPath)
				if err != nil {
					return err
				}
				script = loaded
			}
			if sessionID == "" {
				sessionID = fmt.Sprintf("scamsim-%d", time.Now().Unix())
			}

			ctx := cmd.Context()
			var target Target
			if inProcess {
				if local == nil {
					return fmt.Errorf("scamsim: local mode unavailable")
				}
				t, cleanup, err := local(ctx)
				if err != nil {
					return err
				}
				defer cleanup()
				target = t
			} else {
				target = NewHTTPTarget(targetURL, apiKey, timeout)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Starting %q against %s (session %s)\n\n", script.Name, describeTarget(inProcess, targetURL), sessionID)
			results, err := play(ctx, target, sessionID, script, pause, out, labelsFor(out))
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Completed %d turns\n", len(results))
			return nil
		},
	}
	cmd.Flags().StringVar(&targetURL, "target", "http://127.0.0.1:8000/api/scam-honey-pot", "Turn endpoint URL")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "Value for the x-api-key header")
	cmd.Flags().StringVar(&scriptPath, "script", "", "YAML script file (default: built-in bank KYC scam)")
	cmd.Flags().StringVar(&sessionID, "session", "", "Session id (default: generated)")
	cmd.Flags().BoolVar(&inProcess, "local", false, "Run the decoy in-process using the environment configuration")
	cmd.Flags().DurationVar(&pause, "pause", time.Second, "Delay between turns")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "Per-turn HTTP timeout")
	return cmd
}

func newExtractCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "extract [text...]",
		Short: "Print the intelligence extracted from text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res := intel.Extract(strings.Join(args, " "))
			data, err := json.MarshalIndent(struct {
				Critical     bool               `json:"critical"`
				Intelligence intel.Intelligence `json:"intelligence"`
				Notes        string             `json:"notes"`
			}{res.Critical, res.Intelligence(), res.Notes()}, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}

func describeTarget(inProcess bool, url string) string {
	if inProcess {
		return "in-process decoy"
	}
	return url
}
