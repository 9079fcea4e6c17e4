// Package tournament implements the driver: discovering player programs, enumerating
// match-ups, running them under a bounded concurrency budget, and aggregating scores (§4.5).
package tournament

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mtbarta/connectn/internal/generics"
	"github.com/mtbarta/connectn/internal/subproc"
	"github.com/pkg/errors"
)

// allowedExtensions is the fixed set of source-file extensions a discovered program may carry
// (§4.5 step 1); "" means an extensionless file, assumed to be a prebuilt executable.
var allowedExtensions = generics.SetWith(".py", ".js", ".class", ".out", "")

// Program is one discovered player program: its path, the basename the score table keys on,
// and its command dispatch as resolved at discovery (SPEC_FULL.md §E). Matches start players
// from Path, so each spawn resolves the dispatch again.
type Program struct {
	Path         string
	BaseName     string
	Dispatch     string
	DispatchArgs []string
}

// Discover lists every runnable program directly under dir: files whose extension is in
// allowedExtensions and whose name does not begin with ".". Sub-directories are not
// descended into. Programs are returned sorted by basename for deterministic enumeration.
func Discover(dir string) ([]Program, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "tournament: failed to discover programs under %s", dir)
	}
	var programs []Program
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		ext := filepath.Ext(name)
		if !allowedExtensions.Has(ext) {
			continue
		}
		path := filepath.Join(dir, name)
		dispatchName, dispatchArgs := subproc.Dispatch(path)
		programs = append(programs, Program{
			Path:         path,
			BaseName:     name,
			Dispatch:     dispatchName,
			DispatchArgs: dispatchArgs,
		})
	}
	sort.Slice(programs, func(i, j int) bool { return programs[i].BaseName < programs[j].BaseName })
	return programs, nil
}
