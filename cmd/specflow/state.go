package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	cli "github.com/urfave/cli/v3"

	"github.com/jorge-barreto/specflow/internal/flowerr"
	"github.com/jorge-barreto/specflow/internal/roadmap"
	"github.com/jorge-barreto/specflow/internal/state"
	"github.com/jorge-barreto/specflow/internal/tasks"
	"github.com/jorge-barreto/specflow/internal/ux"
)

func stateDir(root string) string {
	return filepath.Join(root, ".specflow")
}

func stateCmd() *cli.Command {
	return &cli.Command{
		Name:  "state",
		Usage: "Read and write the orchestration state document",
		Commands: []*cli.Command{
			stateInitCmd(),
			stateGetCmd(),
			stateSetCmd(),
			stateSyncCmd(),
		},
	}
}

func stateInitCmd() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Create the state document for this project",
		Flags: []cli.Flag{jsonFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			root, cfg, err := loadProject()
			if err != nil {
				return err
			}
			st, err := state.Init(stateDir(root), cfg.Name, root)
			if err != nil {
				return err
			}
			if cmd.Bool("json") {
				return ux.JSON(st.Document())
			}
			ux.Successf("state initialized for %s", cfg.Name)
			return nil
		},
	}
}

func stateGetCmd() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Read a value by dotted path (whole document if omitted)",
		ArgsUsage: "[path]",
		Flags:     []cli.Flag{jsonFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			root, _, err := loadProject()
			if err != nil {
				return err
			}
			st, err := state.Load(stateDir(root))
			if err != nil {
				return err
			}

			path := cmd.Args().First()
			if path == "" {
				return ux.JSON(st.Document())
			}
			v, ok := st.Get(path)
			if !ok {
				return flowerr.NotFound(
					"run 'specflow state get' with no path to see the document",
					"no value at %q", path)
			}
			if cmd.Bool("json") {
				return ux.JSON(map[string]any{"path": path, "value": v})
			}
			return ux.JSON(v)
		},
	}
}

func stateSetCmd() *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     "Write a value by dotted path, with schema coercion",
		ArgsUsage: "<path> <value>",
		Flags:     []cli.Flag{jsonFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.Args().Get(0)
			raw := cmd.Args().Get(1)
			if path == "" || cmd.Args().Len() < 2 {
				return flowerr.Validation(
					"usage: specflow state set <path> <value>",
					"path and value arguments are required")
			}

			root, _, err := loadProject()
			if err != nil {
				return err
			}
			st, err := state.Load(stateDir(root))
			if err != nil {
				return err
			}

			next, prev, err := st.Set(path, parseValue(raw))
			if err != nil {
				return err
			}
			if err := next.Save(stateDir(root)); err != nil {
				return err
			}

			newValue, _ := next.Get(path)
			if cmd.Bool("json") {
				return ux.JSON(map[string]any{
					"status":        "ok",
					"path":          path,
					"previousValue": prev,
					"value":         newValue,
				})
			}
			ux.Successf("%s = %v (was %v)", path, newValue, prev)
			return nil
		},
	}
}

func stateSyncCmd() *cli.Command {
	return &cli.Command{
		Name:  "sync",
		Usage: "Recompute state progress and phase fields from the markdown artifacts",
		Flags: []cli.Flag{jsonFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			root, cfg, err := loadProject()
			if err != nil {
				return err
			}
			st, err := state.Load(stateDir(root))
			if err != nil {
				return err
			}

			var doc *tasks.Document
			if path, err := tasksFilePath(root, cfg, st, ""); err == nil {
				if data, err := os.ReadFile(path); err == nil {
					doc = tasks.Parse(string(data), path)
				}
			}
			var rm *roadmap.Roadmap
			if data, err := os.ReadFile(filepath.Join(root, cfg.Roadmap)); err == nil {
				rm = roadmap.Parse(string(data), cfg.Roadmap)
			}

			st.SyncFrom(doc, rm)
			if err := st.Save(stateDir(root)); err != nil {
				return err
			}
			if cmd.Bool("json") {
				return ux.JSON(st.Document())
			}
			ux.Successf("state synced from artifacts")
			return nil
		},
	}
}

// parseValue interprets a CLI value argument: valid JSON is decoded
// (numbers, booleans, arrays, objects); everything else stays a string.
// Schema coercion in the state package refines it further.
func parseValue(raw string) any {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err == nil {
		return v
	}
	return raw
}
