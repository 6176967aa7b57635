package searcher

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// DumpDir is the working-directory-relative folder conventionally used by Dump.
const DumpDir = "state"

// Dump writes one file per node, named by the node index, into dir. Each file holds the
// state, its player and, for non-terminal states, every successor state. Previous
// contents of dir are removed first.
func (t *GameTree[P, A, S]) Dump(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create dump directory: %w", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to list dump directory: %w", err)
	}
	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(dir, entry.Name())); err != nil {
			return fmt.Errorf("failed to clear dump directory: %w", err)
		}
	}

	g := errgroup.Group{}
	g.SetLimit(runtime.NumCPU())
	for i := range t.nodes {
		g.Go(func() error {
			path := filepath.Join(dir, strconv.Itoa(i))
			if err := os.WriteFile(path, []byte(t.render(i)), 0644); err != nil {
				return fmt.Errorf("failed to write state %d: %w", i, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	log.Debug().Str("dir", dir).Int("nodes", len(t.nodes)).Msg("dumped game tree")
	return nil
}

func (t *GameTree[P, A, S]) render(i int) string {
	n := &t.nodes[i]
	sb := strings.Builder{}
	sb.WriteString(n.state.String())
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprint(n.state.Player()))
	sb.WriteString("\n\n")
	for _, child := range n.children {
		sb.WriteString(t.nodes[child].state.String())
		sb.WriteString("\n")
	}
	return sb.String()
}
