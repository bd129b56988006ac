package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/sozercan/listing-lens/internal/analyzer"
	"github.com/sozercan/listing-lens/internal/backend"
	"github.com/sozercan/listing-lens/internal/render"
)

var errAnalysisFailed = errors.New("analysis failed")

var analyzeCmd = &cobra.Command{
	Use:   "analyze <query>",
	Short: "Analyze one listing and print the result",
	Long: `Sends the query (usually a listing URL) to the analysis API once and prints the result.
The text format is rendered markdown on a terminal and plain markdown otherwise.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		width, _ := cmd.Flags().GetInt("width")

		switch format {
		case "text", "json", "yaml":
		default:
			return fmt.Errorf("unknown format %q, want text, json or yaml", format)
		}

		client, err := backend.NewClient(cfg.Analysis)
		if err != nil {
			return fmt.Errorf("failed to create analysis client: %w", err)
		}

		state := analyzer.New(client, nil).Dispatch(cmd.Context(), strings.Join(args, " "))

		out := cmd.OutOrStdout()
		var pretty func(string) (string, error)
		if format == "text" {
			if w, ok := terminalWidth(out); ok {
				if width <= 0 {
					width = w
				}
				if pretty, err = render.NewTerminalRenderer(width); err != nil {
					return fmt.Errorf("failed to create terminal renderer: %w", err)
				}
			}
		}

		return writeResult(out, cmd.ErrOrStderr(), state, format, pretty)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringP("format", "f", "text", "Output format: text, json or yaml")
	analyzeCmd.Flags().Int("width", 0, "Wrap width for terminal output (default: terminal width)")
}

// writeResult prints a terminal state. pretty, when set, renders the
// markdown for a terminal. A Failed state is printed to errOut and
// reported as errAnalysisFailed.
func writeResult(out, errOut io.Writer, state analyzer.RequestState, format string, pretty func(string) (string, error)) error {
	switch st := state.(type) {
	case analyzer.Succeeded:
		switch format {
		case "json":
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(st.Result.Raw)
		case "yaml":
			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			if err := enc.Encode(st.Result.Raw); err != nil {
				return err
			}
			return enc.Close()
		}

		md := render.Markdown(render.Build(st.Result))
		if pretty != nil {
			rendered, err := pretty(md)
			if err != nil {
				return fmt.Errorf("failed to render markdown: %w", err)
			}
			md = rendered
		}
		_, err := io.WriteString(out, md)
		return err

	case analyzer.Failed:
		o := termenv.NewOutput(errOut)
		fmt.Fprintln(errOut, o.String("エラー: "+st.Message).Foreground(o.Color("1")).Bold())
		return errAnalysisFailed

	default:
		return fmt.Errorf("unexpected request state %q", state.Phase())
	}
}

func terminalWidth(w io.Writer) (int, bool) {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0, false
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return 80, true
	}
	return width, true
}
