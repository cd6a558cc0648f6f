// Package cli exposes the engine as wrld's cobra commands.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/llehouerou/wrld/internal/engine"
	"github.com/llehouerou/wrld/internal/errmsg"
)

// DefaultTimeout bounds each command's network work.
const DefaultTimeout = 30 * time.Second

// App holds what every command needs.
type App struct {
	engine  *engine.Engine
	out     io.Writer
	errOut  io.Writer
	timeout time.Duration
}

// NewApp creates the command set over e. Output goes to out, warnings to
// errOut.
func NewApp(e *engine.Engine, out, errOut io.Writer, timeout time.Duration) *App {
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &App{engine: e, out: out, errOut: errOut, timeout: timeout}
}

// Command returns the root command.
func (a *App) Command() *cobra.Command {
	root := &cobra.Command{
		Use:           "wrld",
		Short:         "Browse and play the Juice WRLD catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd.Context())
		},
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	root.AddCommand(a.songsCommand())
	root.AddCommand(a.openCommand())
	root.AddCommand(a.likeCommand())
	root.AddCommand(a.likesCommand())
	root.AddCommand(a.radioCommand())
	root.AddCommand(a.swipeCommand())
	root.AddCommand(a.erasCommand())
	root.AddCommand(a.searchCommand())
	return root
}

// load fetches the catalog. A failed fetch is reported and the command
// continues on whatever was loaded.
func (a *App) load(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()
	if err := a.engine.Load(ctx); err != nil {
		a.warn(errmsg.Format(errmsg.OpCatalogLoad, err))
	}
	return nil
}

func (a *App) warn(msg string) {
	if msg != "" {
		fmt.Fprintln(a.errOut, msg)
	}
}

func (a *App) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, a.timeout)
}
