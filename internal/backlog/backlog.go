package backlog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jorge-barreto/specflow/internal/atomicfile"
	"github.com/jorge-barreto/specflow/internal/flowerr"
)

const backlogFile = "BACKLOG.md"

// Append adds items to the project backlog, creating the file with a
// header on first use. Existing content is preserved.
func Append(projectRoot string, items []Item) error {
	if len(items) == 0 {
		return flowerr.Validation("nothing to add; run 'specflow phase scan' first", "empty defer list")
	}

	path := filepath.Join(projectRoot, backlogFile)
	existing, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	var buf strings.Builder
	if len(existing) == 0 {
		buf.WriteString("# Backlog\n\nDeferred items collected from completed phases.\n")
	} else {
		buf.Write(existing)
		if !strings.HasSuffix(string(existing), "\n") {
			buf.WriteByte('\n')
		}
	}
	buf.WriteByte('\n')
	for _, it := range items {
		if it.ID != "" {
			fmt.Fprintf(&buf, "- [ ] %s %s (from %s)\n", it.ID, it.Text, it.Source)
		} else {
			fmt.Fprintf(&buf, "- [ ] %s (from %s)\n", it.Text, it.Source)
		}
	}

	return atomicfile.WriteFile(path, []byte(buf.String()), 0644)
}
