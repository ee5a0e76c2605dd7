package cli

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/tablestate/internal/httpapi"
	"github.com/roach88/tablestate/internal/session"
	"github.com/roach88/tablestate/internal/store"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	Addr            string
	ShutdownTimeout time.Duration
	Journal         string

	// onListen, if set, is called with the bound address before serving.
	onListen func(net.Addr)
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve <config> <source>",
		Short: "Serve a table session over HTTP",
		Long: `Load a table and expose it as one session over HTTP.

Routes:
  GET  /table/               current snapshot
  POST /table/sort           {"column": "age"}
  POST /table/filter         {"column": "team", "values": ["core"]}
  POST /table/page           {"current": 2, "page_size": 20}
  POST /table/select         {"index": 0, "checked": true, "shift": false}
  POST /table/select/bulk    {"op": "all"}
  POST /table/select/custom  {"key": "odd"}

With --journal, every command the session executes is appended to a
SQLite journal that "tablestate replay" can check later.

The server stops on SIGINT or SIGTERM.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", ":8080", "listen address")
	cmd.Flags().DurationVar(&opts.ShutdownTimeout, "shutdown-timeout", 10*time.Second, "grace period for in-flight requests")
	cmd.Flags().StringVar(&opts.Journal, "journal", "", "SQLite file to journal executed commands into")

	return cmd
}

// runServe serves until ctx is done, then shuts the server and the
// session down.
func runServe(ctx context.Context, opts *ServeOptions, configPath, rawSource string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	logger := opts.logger()

	loaded, err := loadTable(ctx, configPath, rawSource, logger)
	if err != nil {
		return failCommand(formatter, err)
	}

	sessOpts := []session.Option{session.WithLogger(logger)}
	var journal *store.Store
	if opts.Journal != "" {
		journal, err = store.Open(opts.Journal)
		if err != nil {
			return failCommand(formatter, &LoadError{Code: ErrCodeJournal, Message: "opening journal failed", Err: err})
		}
		defer journal.Close()
		sessOpts = append(sessOpts, session.WithRecorder(journal))
	}

	sess := session.New(loaded.Table, sessOpts...)
	if journal != nil {
		err := journal.WriteSession(ctx, store.SessionRecord{
			ID:       sess.ID(),
			Config:   configPath,
			Source:   loaded.Source.String(),
			DataHash: loaded.DataHash,
		})
		if err != nil {
			return failCommand(formatter, &LoadError{Code: ErrCodeJournal, Message: "writing session failed", Err: err})
		}
		logger.Info("journaling session", "journal", opts.Journal, "session", sess.ID())
	}
	sessCtx, cancelSession := context.WithCancel(context.Background())
	sessDone := make(chan struct{})
	go func() {
		defer close(sessDone)
		_ = sess.Run(sessCtx)
	}()
	defer func() {
		cancelSession()
		<-sessDone
	}()

	ln, err := net.Listen("tcp", opts.Addr)
	if err != nil {
		return failCommand(formatter, &LoadError{Code: ErrCodeGeneric, Message: "listen failed", Err: err})
	}
	if opts.onListen != nil {
		opts.onListen(ln.Addr())
	}

	server := httpapi.NewServer(sess, logger)
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Serve(ln)
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return WrapExitError(ExitCommandError, "server failed", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down", "session", sess.ID())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), opts.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
		return WrapExitError(ExitFailure, "shutdown", err)
	}
	if err := <-serveErr; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return WrapExitError(ExitCommandError, "server failed", err)
	}
	return nil
}
