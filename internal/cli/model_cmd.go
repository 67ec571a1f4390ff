package cli

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/nutrimind/internal/cli/formatter"
	"github.com/alexanderramin/nutrimind/internal/llm"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newModelCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "model",
		Short: "Manage the local language model",
	}

	status := &cobra.Command{
		Use:   "status",
		Short: "Show model status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := app.Service.ModelStatus(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatModelStatus(v))
			return nil
		},
	}

	pull := &cobra.Command{
		Use:   "pull",
		Short: "Download and load the model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := app.Service.ModelStatus(cmd.Context())
			if err != nil {
				return err
			}
			if app.interactive() {
				return pullInteractive(cmd.Context(), app, v.Model, cmd.OutOrStdout())
			}
			return pullPlain(cmd.Context(), app, cmd.OutOrStdout())
		},
	}

	unload := &cobra.Command{
		Use:   "unload",
		Short: "Release the model's memory; the next answer reloads it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Service.UnloadModel(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Model unloaded.")
			return nil
		},
	}

	cmd.AddCommand(status, pull, unload)
	return cmd
}

func pullInteractive(ctx context.Context, app *App, name string, out io.Writer) error {
	m := newPullModel(name, func() { _ = app.Service.CancelPull() })
	p := tea.NewProgram(m, tea.WithOutput(out), tea.WithContext(ctx))

	go func() {
		err := app.Service.PullModel(ctx, func(pr llm.Progress) { p.Send(pullProgressMsg(pr)) })
		p.Send(pullDoneMsg{err: err})
	}()

	final, err := p.Run()
	if err != nil {
		_ = app.Service.CancelPull()
		return err
	}
	return final.(pullModel).err
}

// pullPlain prints a progress line every 10% and cancels on SIGINT.
func pullPlain(ctx context.Context, app *App, out io.Writer) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		_ = app.Service.CancelPull()
	}()

	next := 0.0
	err := app.Service.PullModel(ctx, func(p llm.Progress) {
		if p.Percent >= next || p.Done {
			fmt.Fprintln(out, formatter.FormatProgressLine(p))
			next = p.Percent + 10
		}
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "Model ready.")
	return nil
}
