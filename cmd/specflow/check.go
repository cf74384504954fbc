package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	cli "github.com/urfave/cli/v3"

	"github.com/jorge-barreto/specflow/internal/config"
	"github.com/jorge-barreto/specflow/internal/evidence"
	"github.com/jorge-barreto/specflow/internal/flowerr"
	"github.com/jorge-barreto/specflow/internal/state"
	"github.com/jorge-barreto/specflow/internal/status"
	"github.com/jorge-barreto/specflow/internal/tasks"
	"github.com/jorge-barreto/specflow/internal/ux"
)

// phaseDirOrErr resolves the open phase's feature directory.
func phaseDirOrErr(root string, cfg *config.Config, st *state.State) (string, error) {
	if st == nil || st.PhaseNumber() == "" {
		return "", flowerr.Validation("open a phase first", "no phase is open")
	}
	dir := status.PhaseDir(root, cfg, st.PhaseNumber())
	if dir == "" {
		return "", flowerr.NotFound(
			fmt.Sprintf("create %s/%s-<name>/", cfg.FeatureDir, st.PhaseNumber()),
			"no feature directory for phase %s", st.PhaseNumber())
	}
	return dir, nil
}

// verificationIDs picks the tasks tagged [V] out of the phase's tasks file.
func verificationIDs(dir string) []string {
	data, err := os.ReadFile(filepath.Join(dir, "tasks.md"))
	if err != nil {
		return nil
	}
	doc := tasks.Parse(string(data), "")
	var ids []string
	for _, t := range doc.Tasks {
		if t.IsVerification {
			ids = append(ids, t.ID)
		}
	}
	return ids
}

func checkCmd() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Check verification evidence for the open phase",
		ArgsUsage: "[id|range]...",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "require-evidence", Usage: "Fail when any checked item lacks evidence"},
			jsonFlag(),
		},
		Commands: []*cli.Command{
			checkRecordCmd(),
			checkRemoveCmd(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			root, cfg, err := loadProject()
			if err != nil {
				return err
			}
			st, _ := state.Load(stateDir(root))
			dir, err := phaseDirOrErr(root, cfg, st)
			if err != nil {
				return err
			}

			var ids []string
			if cmd.Args().Len() > 0 {
				if ids, err = tasks.ExpandIDs(cmd.Args().Slice()); err != nil {
					return err
				}
			} else {
				ids = verificationIDs(dir)
			}

			f, err := evidence.Load(dir)
			if err != nil {
				return err
			}
			res := evidence.Has(f, ids)

			if cmd.Bool("json") {
				if err := ux.JSON(map[string]any{
					"checked":  ids,
					"complete": res.Complete,
					"missing":  res.Missing,
				}); err != nil {
					return err
				}
			} else if len(ids) == 0 {
				ux.Successf("no verification items in phase %s", st.PhaseNumber())
			} else if res.Complete {
				ux.Successf("all %d verification item(s) have evidence", len(ids))
			} else {
				for _, id := range res.Missing {
					fmt.Printf("%s✗%s %s missing evidence\n", ux.Red, ux.Reset, id)
				}
			}

			if !res.Complete && cmd.Bool("require-evidence") {
				return flowerr.Validation(
					"record evidence with 'specflow check record <id> --evidence <text>'",
					"%d verification item(s) lack evidence", len(res.Missing))
			}
			return nil
		},
	}
}

func checkRecordCmd() *cli.Command {
	return &cli.Command{
		Name:      "record",
		Usage:     "Record verification evidence for one or more items",
		ArgsUsage: "<id|range>...",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "evidence", Usage: "Evidence text (command output, link, or note)", Required: true},
			jsonFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			root, cfg, err := loadProject()
			if err != nil {
				return err
			}
			st, _ := state.Load(stateDir(root))
			dir, err := phaseDirOrErr(root, cfg, st)
			if err != nil {
				return err
			}
			ids, err := tasks.ExpandIDs(cmd.Args().Slice())
			if err != nil {
				return err
			}
			f, err := evidence.Record(dir, ids, cmd.String("evidence"))
			if err != nil {
				return err
			}
			if cmd.Bool("json") {
				return ux.JSON(map[string]any{"status": "ok", "recorded": ids, "total": len(f.Items)})
			}
			ux.Successf("recorded evidence for %d item(s)", len(ids))
			return nil
		},
	}
}

func checkRemoveCmd() *cli.Command {
	return &cli.Command{
		Name:      "remove",
		Usage:     "Remove recorded evidence for one or more items",
		ArgsUsage: "<id|range>...",
		Flags:     []cli.Flag{jsonFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			root, cfg, err := loadProject()
			if err != nil {
				return err
			}
			st, _ := state.Load(stateDir(root))
			dir, err := phaseDirOrErr(root, cfg, st)
			if err != nil {
				return err
			}
			ids, err := tasks.ExpandIDs(cmd.Args().Slice())
			if err != nil {
				return err
			}
			if err := evidence.Remove(dir, ids); err != nil {
				return err
			}
			if cmd.Bool("json") {
				return ux.JSON(map[string]any{"status": "ok", "removed": ids})
			}
			ux.Successf("removed evidence for %d item(s)", len(ids))
			return nil
		},
	}
}
