// Command glyphrain generates digital rain frames, composites them
// into animated GIFs and previews them in the terminal or a window.
package main

import "os"
import "fmt"
import "context"
import "os/signal"

import "github.com/spf13/cobra"
import "github.com/hashicorp/go-hclog"

import "github.com/tinne26/glyphrain/internal/logging"

const version = "0.2.0"

var logLevel string

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use: "glyphrain",
		Short: "Generate looping digital rain animations",
		Version: version,
		SilenceUsage: true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	root.AddCommand(newFramesCmd(), newCompositeCmd(), newPreviewCmd(), newViewCmd())
	return root
}

func newLogger() hclog.Logger {
	return logging.NewLogger("glyphrain", logging.Level(logLevel), nil)
}
