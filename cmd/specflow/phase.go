package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	cli "github.com/urfave/cli/v3"

	"github.com/jorge-barreto/specflow/internal/backlog"
	"github.com/jorge-barreto/specflow/internal/flowerr"
	"github.com/jorge-barreto/specflow/internal/roadmap"
	"github.com/jorge-barreto/specflow/internal/state"
	"github.com/jorge-barreto/specflow/internal/status"
	"github.com/jorge-barreto/specflow/internal/tasks"
	"github.com/jorge-barreto/specflow/internal/ux"
)

func phaseCmd() *cli.Command {
	return &cli.Command{
		Name:  "phase",
		Usage: "Open, close, and manage roadmap phases",
		Commands: []*cli.Command{
			phaseOpenCmd(),
			phaseCloseCmd(),
			phaseAddCmd(),
			phaseArchiveCmd(),
			phaseScanCmd(),
		},
	}
}

func loadRoadmap(root string, roadmapRel string) (*roadmap.Roadmap, string, error) {
	path := filepath.Join(root, roadmapRel)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", flowerr.NotFound(
				"create the roadmap file or run 'specflow init'",
				"roadmap %s not found", path)
		}
		return nil, "", err
	}
	return roadmap.Parse(string(data), path), path, nil
}

// slugify turns a phase name into a directory / branch segment.
func slugify(name string) string {
	var b strings.Builder
	prevDash := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			prevDash = false
		default:
			if !prevDash {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// confirm asks a y/n question on stdin. Anything but y/yes declines.
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func phaseOpenCmd() *cli.Command {
	return &cli.Command{
		Name:      "open",
		Usage:     "Open a phase: mark it In Progress and point the state at it",
		ArgsUsage: "[number]",
		Flags:     []cli.Flag{jsonFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			root, cfg, err := loadProject()
			if err != nil {
				return err
			}
			rm, rmPath, err := loadRoadmap(root, cfg.Roadmap)
			if err != nil {
				return err
			}

			if active := rm.ActivePhase(); active != nil {
				return flowerr.Validation(
					fmt.Sprintf("close phase %s first ('specflow phase close')", active.Number),
					"phase %s is already in progress", active.Number)
			}

			var ph *roadmap.Phase
			if number := cmd.Args().First(); number != "" {
				if ph = rm.PhaseByNumber(number); ph == nil {
					return flowerr.NotFound(
						"add it with 'specflow phase add' or check the roadmap",
						"phase %s not in %s", number, rmPath)
				}
			} else if ph = rm.NextPhase(cfg.NextPhaseOrder); ph == nil {
				return flowerr.NotFound(
					"all phases are complete; add a new one with 'specflow phase add'",
					"no pending phase in %s", rmPath)
			}
			if ph.Status == roadmap.Complete {
				return flowerr.Validation(
					"pick a pending phase",
					"phase %s is already complete", ph.Number)
			}

			if _, err := roadmap.UpdatePhaseStatus(rmPath, ph.Number, roadmap.InProgress); err != nil {
				return err
			}

			slug := slugify(ph.Name)
			dir := filepath.Join(root, cfg.FeatureDir, ph.Number+"-"+slug)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}

			st, err := state.Load(stateDir(root))
			if err != nil {
				if !flowerr.IsNotFound(err) {
					return err
				}
				if st, err = state.Init(stateDir(root), cfg.Name, root); err != nil {
					return err
				}
			}
			branch := "phase/" + ph.Number + "-" + slug
			st.OpenPhase(ph.Number, ph.Name, branch, ph.HasUserGate)
			if err := st.Save(stateDir(root)); err != nil {
				return err
			}

			if cmd.Bool("json") {
				return ux.JSON(map[string]any{
					"status": "ok",
					"phase":  ph.Number,
					"name":   ph.Name,
					"branch": branch,
					"dir":    dir,
				})
			}
			ux.Successf("opened phase %s %q on %s", ph.Number, ph.Name, branch)
			return nil
		},
	}
}

func phaseCloseCmd() *cli.Command {
	return &cli.Command{
		Name:  "close",
		Usage: "Close the open phase: verify tasks, confirm gates, archive, reset state",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "Skip the user-gate confirmation"},
			&cli.BoolFlag{Name: "force", Usage: "Close even with incomplete tasks"},
			jsonFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			root, cfg, err := loadProject()
			if err != nil {
				return err
			}
			st, err := state.Load(stateDir(root))
			if err != nil {
				return err
			}
			number := st.PhaseNumber()
			if number == "" {
				return flowerr.Validation("open a phase first", "no phase is open")
			}
			rm, rmPath, err := loadRoadmap(root, cfg.Roadmap)
			if err != nil {
				return err
			}
			ph := rm.PhaseByNumber(number)
			if ph == nil {
				return flowerr.State(
					"run 'specflow state sync' to reconcile state and roadmap",
					"open phase %s missing from %s", number, rmPath)
			}

			phaseDir := status.PhaseDir(root, cfg, number)
			var progress tasks.Progress
			if phaseDir != "" {
				if data, err := os.ReadFile(filepath.Join(phaseDir, "tasks.md")); err == nil {
					doc := tasks.Parse(string(data), filepath.Join(phaseDir, "tasks.md"))
					progress = doc.Progress
					open := 0
					for _, t := range doc.Tasks {
						if t.Status == tasks.StatusTodo || t.Status == tasks.StatusBlocked {
							open++
						}
					}
					if open > 0 && !cmd.Bool("force") {
						return flowerr.Validation(
							"finish or defer the remaining tasks, or pass --force",
							"%d task(s) still open in phase %s", open, number)
					}
				}
			}

			if st.HasUserGate() && !cmd.Bool("yes") {
				if !confirm(fmt.Sprintf("Phase %s has a user gate. Has it been approved?", number)) {
					return flowerr.Validation(
						"get the gate approved, then rerun with --yes",
						"user gate for phase %s not confirmed", number)
				}
			}

			if _, err := roadmap.UpdatePhaseStatus(rmPath, number, roadmap.Complete); err != nil {
				return err
			}
			archived, err := backlog.ArchivePhase(root, phaseDir, ph, progress)
			if err != nil {
				return err
			}
			st.ResetPhase()
			if err := st.Save(stateDir(root)); err != nil {
				return err
			}

			if cmd.Bool("json") {
				return ux.JSON(map[string]any{
					"status":   "ok",
					"phase":    number,
					"archived": archived,
					"progress": progress,
				})
			}
			ux.Successf("closed phase %s — %d/%d tasks complete", number, progress.Completed, progress.Total)
			if archived != "" {
				fmt.Printf("  %sarchived to %s%s\n", ux.Dim, archived, ux.Reset)
			}
			return nil
		},
	}
}

func phaseAddCmd() *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Append a phase row to the roadmap",
		ArgsUsage: "<number> <name> | --hotfix <name>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "hotfix", Usage: "Allocate the next hotfix slot next to the active phase"},
			&cli.StringFlag{Name: "status", Value: "pending", Usage: "Initial status for the new phase"},
			&cli.StringFlag{Name: "gate", Usage: "Verification gate text (add 'USER GATE' to require approval)"},
			jsonFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			root, cfg, err := loadProject()
			if err != nil {
				return err
			}
			rm, rmPath, err := loadRoadmap(root, cfg.Roadmap)
			if err != nil {
				return err
			}

			var number, name string
			if cmd.Bool("hotfix") {
				name = cmd.Args().First()
				if name == "" {
					return flowerr.Validation("usage: specflow phase add --hotfix <name>", "hotfix name required")
				}
				if number = roadmap.NextHotfix(rm); number == "" {
					return flowerr.State(
						"all nine hotfix slots for the current decade are taken",
						"no free hotfix slot in %s", rmPath)
				}
			} else {
				number, name = cmd.Args().Get(0), cmd.Args().Get(1)
				if number == "" || name == "" {
					return flowerr.Validation("usage: specflow phase add <number> <name>", "phase number and name required")
				}
			}
			if err := cfg.ValidatePhaseNumber(number); err != nil {
				return flowerr.Validation(
					fmt.Sprintf("phase numbers must match %s", cfg.PhaseNumberPattern),
					"%v", err)
			}
			res, err := roadmap.InsertPhaseRow(rmPath, number, name,
				roadmap.NormalizeStatus(cmd.String("status")), cmd.String("gate"))
			if err != nil {
				return err
			}
			if cmd.Bool("json") {
				return ux.JSON(map[string]any{"status": "ok", "phase": number, "name": name, "line": res.Line})
			}
			ux.Successf("added phase %s %q to %s", number, name, cfg.Roadmap)
			return nil
		},
	}
}

func phaseArchiveCmd() *cli.Command {
	return &cli.Command{
		Name:      "archive",
		Usage:     "Archive a phase's feature directory without touching roadmap or state",
		ArgsUsage: "<number>",
		Flags:     []cli.Flag{jsonFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			root, cfg, err := loadProject()
			if err != nil {
				return err
			}
			number := cmd.Args().First()
			if number == "" {
				return flowerr.Validation("usage: specflow phase archive <number>", "phase number required")
			}
			rm, rmPath, err := loadRoadmap(root, cfg.Roadmap)
			if err != nil {
				return err
			}
			ph := rm.PhaseByNumber(number)
			if ph == nil {
				return flowerr.NotFound("check the roadmap", "phase %s not in %s", number, rmPath)
			}

			phaseDir := status.PhaseDir(root, cfg, number)
			var progress tasks.Progress
			if phaseDir != "" {
				if data, err := os.ReadFile(filepath.Join(phaseDir, "tasks.md")); err == nil {
					progress = tasks.Parse(string(data), "").Progress
				}
			}
			archived, err := backlog.ArchivePhase(root, phaseDir, ph, progress)
			if err != nil {
				return err
			}
			if cmd.Bool("json") {
				return ux.JSON(map[string]any{"status": "ok", "phase": number, "archived": archived})
			}
			if archived == "" {
				ux.Warnf("phase %s has no feature directory; history entry recorded only", number)
			} else {
				ux.Successf("archived phase %s to %s", number, archived)
			}
			return nil
		},
	}
}

func phaseScanCmd() *cli.Command {
	return &cli.Command{
		Name:  "scan",
		Usage: "Scan markdown files for deferred work",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "add", Usage: "Append findings to BACKLOG.md"},
			jsonFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			root, _, err := loadProject()
			if err != nil {
				return err
			}
			items, err := backlog.ScanDeferred(root)
			if err != nil {
				return err
			}
			if cmd.Bool("add") && len(items) > 0 {
				if err := backlog.Append(root, items); err != nil {
					return err
				}
			}
			if cmd.Bool("json") {
				return ux.JSON(map[string]any{"items": items, "count": len(items)})
			}
			if len(items) == 0 {
				ux.Successf("no deferred work found")
				return nil
			}
			for _, it := range items {
				fmt.Printf("%s%s%s %s", ux.Dim, it.Source, ux.Reset, it.Text)
				if it.ID != "" {
					fmt.Printf(" %s(%s)%s", ux.Dim, it.ID, ux.Reset)
				}
				fmt.Println()
			}
			if cmd.Bool("add") {
				ux.Successf("%d item(s) appended to BACKLOG.md", len(items))
			}
			return nil
		},
	}
}
