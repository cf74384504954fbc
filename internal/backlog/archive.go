package backlog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jorge-barreto/specflow/internal/atomicfile"
	"github.com/jorge-barreto/specflow/internal/roadmap"
	"github.com/jorge-barreto/specflow/internal/tasks"
)

const historyFile = "HISTORY.md"

// ArchivePhase appends a completed-phase record to HISTORY.md and copies
// the phase's artifacts into a dated archive directory. Returns the
// archive directory path. phaseDir may be "" when the phase never grew a
// feature directory; the history record is still written.
func ArchivePhase(projectRoot, phaseDir string, phase *roadmap.Phase, progress tasks.Progress) (string, error) {
	if err := appendHistory(projectRoot, phase, progress); err != nil {
		return "", err
	}
	if phaseDir == "" {
		return "", nil
	}

	dest := filepath.Join(projectRoot, "archive",
		fmt.Sprintf("%s-%s", time.Now().UTC().Format("2006-01-02"), phase.Number))
	if err := copyTree(phaseDir, dest); err != nil {
		return "", err
	}
	return dest, nil
}

func appendHistory(projectRoot string, phase *roadmap.Phase, progress tasks.Progress) error {
	path := filepath.Join(projectRoot, historyFile)
	existing, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	var buf strings.Builder
	if len(existing) == 0 {
		buf.WriteString("# History\n")
	} else {
		buf.Write(existing)
		if !strings.HasSuffix(string(existing), "\n") {
			buf.WriteByte('\n')
		}
	}
	fmt.Fprintf(&buf, "\n## Phase %s — %s\n\n", phase.Number, phase.Name)
	fmt.Fprintf(&buf, "- Closed: %s\n", time.Now().UTC().Format("2006-01-02"))
	fmt.Fprintf(&buf, "- Tasks: %d/%d complete (%d deferred)\n",
		progress.Completed, progress.Total, progress.Deferred)
	if phase.VerificationGate != "" {
		fmt.Fprintf(&buf, "- Gate: %s\n", phase.VerificationGate)
	}

	return atomicfile.WriteFile(path, []byte(buf.String()), 0644)
}

func copyTree(src, dest string) error {
	return filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dest, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		return copyFile(path, target)
	})
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
