package koji

import (
	"strconv"

	"github.com/dbsmedya/kojiimport/internal/sets"
)

type outputKey struct {
	buildRootID int
	filename    string
}

// IdentityConflicts lists identity keys shared by structurally different
// records: "buildroots[<id>]" for roots, "output[<filename>]" for outputs
// sharing buildroot id and filename. Build does not reject these; set
// membership is decided by full equality.
func (i *ImportInfo) IdentityConflicts() []string {
	conflicts := sets.New[string]()

	roots := make(map[int]int)
	for _, r := range i.BuildRoots() {
		roots[r.ID()]++
	}
	for id, n := range roots {
		if n > 1 {
			conflicts.Add(indexedPath(FieldBuildRoots, strconv.Itoa(id)))
		}
	}

	outputs := make(map[outputKey]int)
	for _, o := range i.Outputs() {
		outputs[outputKey{o.BuildRootID(), o.Filename()}]++
	}
	for key, n := range outputs {
		if n > 1 {
			conflicts.Add(indexedPath(FieldOutput, key.filename))
		}
	}

	return sets.Sorted(conflicts)
}

// DanglingOutputs lists "output[<filename>].buildroot_id" for every output
// whose build root id does not name a root of this import.
func (i *ImportInfo) DanglingOutputs() []string {
	ids := sets.New[int]()
	for _, r := range i.BuildRoots() {
		ids.Add(r.ID())
	}

	dangling := sets.New[string]()
	for _, o := range i.Outputs() {
		if !ids.Has(o.BuildRootID()) {
			dangling.Add(indexedPath(FieldOutput, o.Filename()) + "." + FieldBuildRootID)
		}
	}
	return sets.Sorted(dangling)
}
