package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/securefab/traincore/config"
	"github.com/securefab/traincore/procedure"
	"github.com/securefab/traincore/session"
	"github.com/securefab/traincore/stability"
	"github.com/securefab/traincore/step"
	"github.com/securefab/traincore/zone"
)

var (
	runFile      string
	runProcedure string
)

const runLong = `Run drives a training session from stdin, either from a definition
file (-f) or a registered built-in procedure (-p, see 'traincore list').
Available commands:

  submit <zone>=<object> ...   validate a configuration (e.g. submit left=bottle)
  observe <zone>=<object> ...  feed a detection through the stability gate
  next | prev | goto <id> | reset
  status | steps | help | quit`

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a procedure interactively",
	Long:  runLong,
	RunE: func(cmd *cobra.Command, args []string) error {
		if runProcedure != "" {
			mgr, err := procedure.Get(runProcedure)
			if err != nil {
				return err
			}
			return runInteractive(cmd.OutOrStdout(), cmd.InOrStdin(), mgr, stability.DefaultThreshold)
		}

		cfg, err := config.NewLoader(runFile).Load()
		if err != nil {
			return err
		}
		mgr, err := cfg.BuildManager()
		if err != nil {
			return err
		}
		return runInteractive(cmd.OutOrStdout(), cmd.InOrStdin(), mgr, cfg.Spec.Options.StabilityThreshold)
	},
}

func init() {
	runCmd.Flags().StringVarP(&runFile, "file", "f", "procedure.yaml", "procedure definition file")
	runCmd.Flags().StringVarP(&runProcedure, "procedure", "p", "", "registered procedure name instead of a definition file")
	rootCmd.AddCommand(runCmd)
}

func runInteractive(out io.Writer, in io.Reader, mgr *procedure.Manager, stabilityThreshold int) error {
	sess := session.New(mgr, stabilityThreshold)
	defer sess.Close()

	mgr.OnStepChanged(func(s step.Step) {
		printStep(out, s, mgr.ProgressString())
	})
	mgr.OnConfigurationValidated(func(r procedure.Report) {
		if r.Matched() {
			fmt.Fprintln(out, "✓ configuration correct")
		} else {
			fmt.Fprintln(out, "✗ configuration incorrect:")
			for _, m := range r.Mismatches {
				fmt.Fprintf(out, "    %s\n", m)
			}
		}
	})
	mgr.OnProcedureComplete(func() {
		fmt.Fprintln(out, "*** procedure complete ***")
	})

	fmt.Fprintf(out, "Running procedure %q (%d steps). Type 'help' for commands.\n", mgr.Name(), mgr.TotalSteps())
	printStep(out, mgr.CurrentStep(), mgr.ProgressString())

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		switch strings.ToLower(fields[0]) {
		case "quit", "exit":
			fmt.Fprintln(out, sess.Summary())
			return scanner.Err()
		case "help":
			fmt.Fprintln(out, runLong)
		case "status":
			fmt.Fprintln(out, sess.Summary())
		case "steps":
			for _, s := range mgr.Steps() {
				marker := " "
				if s.ID == mgr.CurrentStep().ID && !mgr.Completed() {
					marker = ">"
				}
				fmt.Fprintf(out, " %s %d. %s  [%s]\n", marker, s.ID, s.Title, s.Expected)
			}
		case "submit":
			cfg, err := parseAssignments(fields[1:])
			if err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
				continue
			}
			sess.SubmitDirect(cfg)
		case "observe":
			cfg, err := parseAssignments(fields[1:])
			if err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
				continue
			}
			if _, validated := sess.Submit(cfg); !validated {
				fmt.Fprintln(out, "… observation recorded, not yet stable")
			}
		default:
			if err := sess.Command(line); err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
			}
		}
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, sess.Summary())
	return scanner.Err()
}

func printStep(out io.Writer, s step.Step, progress string) {
	fmt.Fprintf(out, "\n[%s] %s\n", progress, s.Title)
	if s.Body != "" {
		body, err := s.RenderedBody()
		if err != nil {
			body = s.Body
		}
		fmt.Fprintf(out, "  %s\n", body)
	}
	fmt.Fprintf(out, "  expected: %s\n", s.Expected)
}

// parseAssignments turns "left=bottle top=scissors" tokens into a
// Configuration.
func parseAssignments(tokens []string) (zone.Configuration, error) {
	assignments := make(map[string]string, len(tokens))
	for _, tok := range tokens {
		parts := strings.SplitN(tok, "=", 2)
		if len(parts) != 2 {
			return zone.Blank(), fmt.Errorf("malformed assignment %q (want zone=object)", tok)
		}
		assignments[strings.ToLower(parts[0])] = parts[1]
	}
	return zone.FromMap(assignments)
}
