// Package app builds the gridview command.
package app

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/drake/componentgrid/config"
	"github.com/drake/componentgrid/debug"
	"github.com/drake/componentgrid/grid"
	"github.com/drake/componentgrid/internal/tasks"
	"github.com/drake/componentgrid/lua"
	"github.com/drake/componentgrid/ui/style"
	"github.com/drake/componentgrid/ui/tui"
	"github.com/drake/componentgrid/ui/tui/widget"
)

// Options are the command-line settings.
type Options struct {
	Columns  string // Lua column file; empty means the config dir default
	NoLua    bool
	MaxWidth int
}

// NewCommand returns the root command.
func NewCommand() *cobra.Command {
	var opts Options

	cmd := &cobra.Command{
		Use:   "gridview [rows.yaml]",
		Short: "Browse a task list in a grid with scriptable component columns",
		Long: `gridview shows tasks in a terminal grid. Columns can be added in Lua
with grid.column(id, title, fn) in ` + config.ColumnsFile() + `.

Set GRIDVIEW_DEBUG=1 to write a debug log to ` + config.LogFile() + `.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, closer, err := debug.Logger()
			if err != nil {
				return fmt.Errorf("open log: %w", err)
			}
			defer closer.Close()

			m, cleanup, err := Build(cmd.Context(), opts, args, logger)
			if err != nil {
				return err
			}
			defer cleanup()
			return tui.Run(m)
		},
	}

	cmd.Flags().StringVar(&opts.Columns, "columns", "", "Lua file defining extra columns (default: config dir columns.lua)")
	cmd.Flags().BoolVar(&opts.NoLua, "no-lua", false, "skip Lua column scripts")
	cmd.Flags().IntVar(&opts.MaxWidth, "max-width", 24, "maximum width of auto-sized columns")
	return cmd
}

// Build loads rows and columns and returns a ready model. cleanup stops
// the debug monitor and closes the Lua engine.
func Build(ctx context.Context, opts Options, args []string, logger *log.Logger) (*tui.Model[tasks.Task, int], func(), error) {
	if ctx == nil {
		ctx = context.Background()
	}
	rows := tasks.Sample()
	title := "sample"
	if len(args) == 1 {
		loaded, err := tasks.LoadFile(args[0])
		if err != nil {
			return nil, nil, err
		}
		rows, title = loaded, args[0]
	}

	styles := style.DefaultStyles()
	table := widget.NewTable[tasks.Task, int](styles, tasks.Columns()...)
	table.SetMaxColumnWidth(opts.MaxWidth)

	view := grid.NewKeyedView(tasks.Key, table,
		grid.WithLogger(logger),
		grid.WithStoreOptions(grid.Unique()),
	)
	if err := view.SetRows(rows); err != nil {
		return nil, nil, err
	}
	if err := tasks.InstallComponents(view, styles); err != nil {
		return nil, nil, err
	}

	engine := lua.NewEngine(logger)
	if err := engine.Init(); err != nil {
		return nil, nil, err
	}
	if !opts.NoLua {
		if err := loadLuaColumns(engine, view, table, styles, opts.Columns); err != nil {
			engine.Close()
			return nil, nil, err
		}
	}

	monitorCtx, cancel := context.WithCancel(ctx)
	debug.NewMonitor(monitorCtx, view, logger).Start()

	m := tui.NewModel(tui.Config[tasks.Task, int]{
		View:   view,
		Table:  table,
		Toggle: tasks.Toggle,
		Title:  title,
		Styles: styles,
		Logger: logger,
	})
	cleanup := func() {
		cancel()
		engine.Close()
	}
	return m, cleanup, nil
}

func loadLuaColumns(engine *lua.Engine, view *grid.View[tasks.Task, int], table *widget.Table[tasks.Task, int], styles style.Styles, path string) error {
	if path == "" {
		path = config.ColumnsFile()
		if !config.Exists(path) {
			return nil
		}
	}
	if err := engine.DoFile(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}

	render := func(c lua.Cell) grid.Component {
		return widget.Tone(c.Text, c.Style, styles)
	}
	cols, err := lua.Install(engine, view, tasks.Fields, render)
	if err != nil {
		return err
	}
	for _, c := range cols {
		table.SetColumnTitle(c.ID, c.Title)
		table.SetColumnWidth(c.ID, c.Width)
	}
	return nil
}
