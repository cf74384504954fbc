package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	cli "github.com/urfave/cli/v3"

	"github.com/jorge-barreto/specflow/internal/config"
	"github.com/jorge-barreto/specflow/internal/docs"
	"github.com/jorge-barreto/specflow/internal/flowerr"
	"github.com/jorge-barreto/specflow/internal/scaffold"
	"github.com/jorge-barreto/specflow/internal/status"
	"github.com/jorge-barreto/specflow/internal/ux"
)

func main() {
	app := &cli.Command{
		Name:        "specflow",
		Usage:       "Spec-driven development workflow orchestration",
		Description: "Run 'specflow docs' for documentation on the tasks format, roadmap, state, and workflow.",
		Commands: []*cli.Command{
			initCmd(),
			statusCmd(),
			stateCmd(),
			phaseCmd(),
			tasksCmd(),
			checkCmd(),
			docsCmd(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		jsonMode := false
		for _, a := range os.Args[1:] {
			if a == "--json" {
				jsonMode = true
			}
		}
		ux.RenderError(err, jsonMode)
		if fe, ok := err.(*flowerr.Error); ok {
			os.Exit(fe.ExitCode())
		}
		os.Exit(1)
	}
}

func initCmd() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Initialize a .specflow/ directory, roadmap, and state",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir, err := os.Getwd()
			if err != nil {
				return err
			}
			return scaffold.Init(dir)
		},
	}
}

func statusCmd() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Show the unified project status and next action",
		Flags: []cli.Flag{jsonFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			root, cfg, _ := loadProject()
			snap := status.Collect(root, cfg)
			if cmd.Bool("json") {
				return ux.JSON(snap)
			}
			ux.RenderStatus(snap)
			return nil
		},
	}
}

func docsCmd() *cli.Command {
	return &cli.Command{
		Name:      "docs",
		Usage:     "Show documentation",
		ArgsUsage: "[topic]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			name := cmd.Args().First()
			if name == "" {
				fmt.Print("\nAvailable topics:\n\n")
				for _, t := range docs.All() {
					fmt.Printf("  %-12s %s\n", t.Name, t.Summary)
				}
				fmt.Println("\nRun 'specflow docs <topic>' to read a topic.")
				return nil
			}
			t, err := docs.Get(name)
			if err != nil {
				return err
			}
			fmt.Print(t.Content)
			return nil
		},
	}
}

func jsonFlag() cli.Flag {
	return &cli.BoolFlag{Name: "json", Usage: "Emit structured JSON output"}
}

// findProjectRoot walks up from cwd looking for .specflow/config.yaml.
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		configPath := filepath.Join(dir, ".specflow", "config.yaml")
		if _, err := os.Stat(configPath); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", flowerr.NotFound(
				"run 'specflow init' in your project first",
				"no .specflow/config.yaml found (searched from cwd to root)")
		}
		dir = parent
	}
}

// loadProject resolves the project root and its config. The root walk
// happens once here, at the command boundary, never deeper in.
func loadProject() (string, *config.Config, error) {
	root, err := findProjectRoot()
	if err != nil {
		return "", nil, err
	}
	cfg, err := config.Load(filepath.Join(root, ".specflow", "config.yaml"))
	if err != nil {
		return root, nil, fmt.Errorf("loading config: %w", err)
	}
	return root, cfg, nil
}
