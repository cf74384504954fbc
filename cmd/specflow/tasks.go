package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	cli "github.com/urfave/cli/v3"

	"github.com/jorge-barreto/specflow/internal/config"
	"github.com/jorge-barreto/specflow/internal/flowerr"
	"github.com/jorge-barreto/specflow/internal/state"
	"github.com/jorge-barreto/specflow/internal/status"
	"github.com/jorge-barreto/specflow/internal/tasks"
	"github.com/jorge-barreto/specflow/internal/ux"
)

// tasksFilePath resolves the tasks file for the current phase, or the
// explicit --tasks override.
func tasksFilePath(root string, cfg *config.Config, st *state.State, override string) (string, error) {
	if override != "" {
		return override, nil
	}
	if st == nil || st.PhaseNumber() == "" {
		return "", flowerr.NotFound(
			"open a phase first ('specflow phase open <number>') or pass --tasks",
			"no phase is open")
	}
	dir := status.PhaseDir(root, cfg, st.PhaseNumber())
	if dir == "" {
		return "", flowerr.NotFound(
			fmt.Sprintf("create %s/%s-<name>/tasks.md or pass --tasks", cfg.FeatureDir, st.PhaseNumber()),
			"no feature directory for phase %s", st.PhaseNumber())
	}
	return filepath.Join(dir, "tasks.md"), nil
}

func tasksFlag() cli.Flag {
	return &cli.StringFlag{Name: "tasks", Usage: "Path to the tasks file (overrides phase resolution)"}
}

func loadTasksDoc(cmd *cli.Command) (*tasks.Document, string, error) {
	root, cfg, err := loadProject()
	if err != nil {
		return nil, "", err
	}
	st, _ := state.Load(stateDir(root))
	path, err := tasksFilePath(root, cfg, st, cmd.String("tasks"))
	if err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", flowerr.NotFound(
				"create the tasks file or pass --tasks",
				"tasks file %s not found", path)
		}
		return nil, "", err
	}
	return tasks.Parse(string(data), path), path, nil
}

func tasksCmd() *cli.Command {
	return &cli.Command{
		Name:  "tasks",
		Usage: "Inspect and mark tasks in the current phase",
		Commands: []*cli.Command{
			tasksMarkCmd(),
			tasksNextCmd(),
			tasksListCmd(),
			tasksCyclesCmd(),
		},
	}
}

func tasksMarkCmd() *cli.Command {
	return &cli.Command{
		Name:      "mark",
		Usage:     "Flip task checkboxes by ID or range (all-or-nothing)",
		ArgsUsage: "<id|range>...",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "status", Value: "done", Usage: "Target status: todo, done, or deferred"},
			tasksFlag(),
			jsonFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ids, err := tasks.ExpandIDs(cmd.Args().Slice())
			if err != nil {
				return err
			}

			root, cfg, err := loadProject()
			if err != nil {
				return err
			}
			st, _ := state.Load(stateDir(root))
			path, err := tasksFilePath(root, cfg, st, cmd.String("tasks"))
			if err != nil {
				return err
			}

			doc, err := tasks.Mark(path, ids, tasks.Status(cmd.String("status")))
			if err != nil {
				return err
			}

			// Keep the state's progress counters in step with the file.
			if st != nil {
				st.SyncFrom(doc, nil)
				if err := st.Save(stateDir(root)); err != nil {
					return err
				}
			}

			if cmd.Bool("json") {
				return ux.JSON(map[string]any{
					"status":   "ok",
					"updated":  ids,
					"progress": doc.Progress,
				})
			}
			ux.Successf("marked %d task(s) %s — %d/%d complete (%d%%)",
				len(ids), cmd.String("status"),
				doc.Progress.Completed, doc.Progress.Total, doc.Progress.Percentage)
			return nil
		},
	}
}

func tasksNextCmd() *cli.Command {
	return &cli.Command{
		Name:  "next",
		Usage: "Show the first actionable task (todo with all dependencies done)",
		Flags: []cli.Flag{tasksFlag(), jsonFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			doc, _, err := loadTasksDoc(cmd)
			if err != nil {
				return err
			}
			next := tasks.FindNextTask(doc)
			if cmd.Bool("json") {
				return ux.JSON(map[string]any{"next": next, "progress": doc.Progress})
			}
			if next == nil {
				fmt.Printf("%sNo actionable task.%s %d/%d complete.\n",
					ux.Dim, ux.Reset, doc.Progress.Completed, doc.Progress.Total)
				return nil
			}
			fmt.Printf("%s%s%s %s\n", ux.Bold, next.ID, ux.Reset, next.Description)
			if len(next.Dependencies) > 0 {
				fmt.Printf("  %sdeps satisfied: %v%s\n", ux.Dim, next.Dependencies, ux.Reset)
			}
			return nil
		},
	}
}

func tasksListCmd() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List all tasks with status and section",
		Flags: []cli.Flag{tasksFlag(), jsonFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			doc, _, err := loadTasksDoc(cmd)
			if err != nil {
				return err
			}
			if cmd.Bool("json") {
				return ux.JSON(doc)
			}
			for _, t := range doc.Tasks {
				glyph := " "
				color := ux.Reset
				switch t.Status {
				case tasks.StatusDone:
					glyph, color = "x", ux.Green
				case tasks.StatusDeferred:
					glyph, color = "~", ux.Dim
				case tasks.StatusBlocked:
					glyph, color = "!", ux.Red
				}
				fmt.Printf("%s[%s] %s %s%s\n", color, glyph, t.ID, t.Description, ux.Reset)
			}
			fmt.Printf("\n%d/%d complete (%d%%)\n",
				doc.Progress.Completed, doc.Progress.Total, doc.Progress.Percentage)
			for _, w := range doc.Warnings {
				ux.Warnf("%s", w)
			}
			return nil
		},
	}
}

func tasksCyclesCmd() *cli.Command {
	return &cli.Command{
		Name:  "cycles",
		Usage: "Detect dependency cycles in the tasks file",
		Flags: []cli.Flag{tasksFlag(), jsonFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			doc, path, err := loadTasksDoc(cmd)
			if err != nil {
				return err
			}
			cycles := tasks.DetectCycles(doc)
			if cmd.Bool("json") {
				if err := ux.JSON(map[string]any{"cycles": cycles}); err != nil {
					return err
				}
			} else if len(cycles) == 0 {
				ux.Successf("no dependency cycles")
			} else {
				for _, c := range cycles {
					fmt.Printf("%s✗%s %s\n", ux.Red, ux.Reset, c)
				}
			}
			if len(cycles) > 0 {
				return flowerr.State(
					"break one dependency in each cycle",
					"%d dependency cycle(s) in %s", len(cycles), path)
			}
			return nil
		},
	}
}
