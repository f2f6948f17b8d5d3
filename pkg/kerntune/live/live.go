// Package live reads the running kernel's current parameter values from
// the /proc/sys tree so recommendations can be compared against what the
// host is actually using. Reading is best-effort: unreadable entries
// (permissions, write-only tunables) are skipped silently.
package live

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"

	"github.com/jamesainslie/kerntune/pkg/kerntune/logging"
	"github.com/jamesainslie/kerntune/pkg/kerntune/param"
)

// logger is the package-level logger for live reads.
var logger = logging.Get("live")

// DefaultRoot is where Linux exposes the sysctl tree.
const DefaultRoot = "/proc/sys"

// Snapshot holds the kernel parameter values read in one walk.
type Snapshot struct {
	mu     sync.Mutex
	root   string
	values map[param.Key]param.Value
}

// Read walks the sysctl tree under root and snapshots every readable
// value. An empty root means DefaultRoot.
func Read(root string) (*Snapshot, error) {
	if root == "" {
		root = DefaultRoot
	}
	s := &Snapshot{
		root:   root,
		values: make(map[param.Key]param.Value),
	}

	conf := fastwalk.Config{
		Follow: false,
	}
	err := fastwalk.Walk(&conf, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Whole subtrees can be unreadable for non-root users.
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		key, ok := s.keyForPath(path)
		if !ok {
			return nil
		}
		s.mu.Lock()
		s.values[key] = param.Parse(string(data))
		s.mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("read live sysctl values", "root", root, "count", len(s.values))
	return s, nil
}

// keyForPath converts a /proc/sys file path to dotted key notation.
func (s *Snapshot) keyForPath(path string) (param.Key, bool) {
	rel, err := filepath.Rel(s.root, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", false
	}
	return param.Key(strings.ReplaceAll(filepath.ToSlash(rel), "/", ".")), true
}

// PathForKey converts a dotted key to its path under the snapshot root.
func PathForKey(root string, key param.Key) string {
	if root == "" {
		root = DefaultRoot
	}
	return filepath.Join(root, filepath.FromSlash(strings.ReplaceAll(string(key), ".", "/")))
}

// Get returns the snapshotted value for a key.
func (s *Snapshot) Get(key param.Key) (param.Value, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Len returns the number of snapshotted values.
func (s *Snapshot) Len() int { return len(s.values) }

// Diff is the comparison of one recommended entry against the snapshot.
type Diff struct {
	Key         param.Key
	Recommended param.Value
	Current     param.Value

	// HasCurrent is false when the key does not exist in the snapshot
	// (module not loaded, or tunable absent from this kernel).
	HasCurrent bool

	// Match reports whether the current value already equals the
	// recommendation.
	Match bool
}

// Compare evaluates every recommended entry against the snapshot,
// preserving entry order.
func (s *Snapshot) Compare(entries []param.Entry) []Diff {
	diffs := make([]Diff, len(entries))
	for i, e := range entries {
		d := Diff{Key: e.Key, Recommended: e.Value}
		if cur, ok := s.values[e.Key]; ok {
			d.Current = cur
			d.HasCurrent = true
			d.Match = cur.String() == e.Value.String()
		}
		diffs[i] = d
	}
	return diffs
}
