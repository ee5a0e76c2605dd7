package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/tablestate/internal/store"
)

// ErrCodeDataChanged reports a replay against rows that differ from the
// recorded ones.
const ErrCodeDataChanged = "E304"

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Journal string
	Session string
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay <config> <source>",
		Short: "Replay a journaled session and check it reproduces",
		Long: `Rebuild the table from config and source, apply every command a
journaled session executed, and compare each outcome with the journal.

The rows must be the ones the session was recorded against. Without
--session the most recent session in the journal is replayed.

Exit codes:
  0 - every command reproduced its recorded outcome
  1 - the replay diverged
  2 - command error (journal, config or source unusable, data changed)`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Journal, "journal", "", "SQLite journal written by serve --journal")
	cmd.Flags().StringVar(&opts.Session, "session", "", "session ID (default: latest)")
	_ = cmd.MarkFlagRequired("journal")

	return cmd
}

func runReplay(opts *ReplayOptions, configPath, rawSource string, cmd *cobra.Command) error {
	ctx := cmd.Context()
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	logger := opts.logger()

	journal, err := store.Open(opts.Journal)
	if err != nil {
		return failCommand(formatter, &LoadError{Code: ErrCodeJournal, Message: "opening journal failed", Err: err})
	}
	defer journal.Close()

	sessionID := opts.Session
	if sessionID == "" {
		latest, err := journal.LatestSession(ctx)
		if err != nil {
			return failCommand(formatter, &LoadError{Code: ErrCodeJournal, Message: "no session to replay", Err: err})
		}
		sessionID = latest.ID
	}

	loaded, err := loadTable(ctx, configPath, rawSource, logger)
	if err != nil {
		return failCommand(formatter, err)
	}

	res, err := journal.ReplaySession(ctx, sessionID, loaded.DataHash, loaded.Table)
	switch {
	case errors.Is(err, store.ErrDataChanged):
		return failCommand(formatter, &LoadError{Code: ErrCodeDataChanged, Message: "cannot replay", Err: err})
	case err != nil:
		return failCommand(formatter, &LoadError{Code: ErrCodeJournal, Message: "replay failed", Err: err})
	}
	logger.Debug("replay finished", "session", sessionID, "applied", res.Applied, "divergences", len(res.Divergences))

	if formatter.Format == "json" {
		return outputReplayJSON(formatter, res)
	}
	return outputReplayText(formatter, res)
}

func outputReplayJSON(formatter *OutputFormatter, res store.ReplayResult) error {
	response := CLIResponse{Status: "ok", Data: res, SessionID: res.SessionID}
	if !res.OK() {
		response.Status = "error"
		response.Error = &CLIError{
			Code:    "E_REPLAY_DIVERGED",
			Message: fmt.Sprintf("%d divergence(s)", len(res.Divergences)),
		}
	}

	encoder := json.NewEncoder(formatter.Writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(response); err != nil {
		return err
	}
	if !res.OK() {
		return NewExitError(ExitFailure, fmt.Sprintf("replay diverged in %d place(s)", len(res.Divergences)))
	}
	return nil
}

func outputReplayText(formatter *OutputFormatter, res store.ReplayResult) error {
	w := formatter.Writer
	if res.OK() {
		fmt.Fprintf(w, "✓ Replayed %d command(s) of session %s\n", res.Applied, res.SessionID)
		fmt.Fprintln(w, pageSummary(res.Snapshot))
		return nil
	}

	fmt.Fprintf(w, "✗ Replay of session %s diverged\n\n", res.SessionID)
	rows := make([][]string, len(res.Divergences))
	for i, d := range res.Divergences {
		rows[i] = []string{fmt.Sprint(d.Seq), d.Op, d.Field, d.Want, d.Got}
	}
	if err := formatter.Table([]string{"seq", "op", "field", "want", "got"}, rows); err != nil {
		return err
	}
	return NewExitError(ExitFailure, fmt.Sprintf("replay diverged in %d place(s)", len(res.Divergences)))
}
