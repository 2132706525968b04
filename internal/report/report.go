package report

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/gookit/color"

	"github.com/dbsmedya/kojiimport/internal/koji"
)

// documentSection groups missing top-level sections.
const documentSection = "(document)"

// splitPath separates a missing-property path into its section and field:
// "output[a.b.jar].filesize" -> ("output[a.b.jar]", "filesize").
// Top-level paths such as "buildroots" belong to documentSection.
func splitPath(path string) (section, field string) {
	if i := strings.LastIndex(path, "]."); i >= 0 {
		return path[:i+1], path[i+2:]
	}
	if rest, ok := strings.CutPrefix(path, koji.FieldBuild+"."); ok {
		return koji.FieldBuild, rest
	}
	return documentSection, path
}

// groupMissing groups paths by section, keeping the first-seen order.
func groupMissing(paths []string) *orderedmap.OrderedMap[string, []string] {
	groups := orderedmap.NewOrderedMap[string, []string]()
	for _, p := range paths {
		section, field := splitPath(p)
		fields, _ := groups.Get(section)
		groups.Set(section, append(fields, field))
	}
	return groups
}

// WriteMissing writes every missing property of a failed build, grouped by
// section.
func WriteMissing(w io.Writer, verr *koji.VerificationError) error {
	var sb strings.Builder

	noun := "properties"
	if len(verr.Missing) == 1 {
		noun = "property"
	}
	sb.WriteString(color.Red.Sprintf("✗ Import is incomplete: %d missing %s", len(verr.Missing), noun))
	sb.WriteString("\n")

	groups := groupMissing(verr.Missing)
	for el := groups.Front(); el != nil; el = el.Next() {
		sb.WriteString("\n")
		sb.WriteString(color.Bold.Sprint(el.Key))
		sb.WriteString("\n")
		for _, field := range el.Value {
			fmt.Fprintf(&sb, "  - %s\n", field)
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteProblems writes a titled list of paths, such as identity conflicts.
// Nothing is written for an empty list.
func WriteProblems(w io.Writer, title string, paths []string) error {
	if len(paths) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(color.Yellow.Sprintf("⚠ %s (%d)", title, len(paths)))
	sb.WriteString("\n")
	for _, p := range paths {
		fmt.Fprintf(&sb, "  - %s\n", p)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteSummary writes a human readable overview of a built import.
func WriteSummary(w io.Writer, info *koji.ImportInfo) error {
	var sb strings.Builder
	d := info.Build()

	sb.WriteString(color.Green.Sprintf("✓ %s", d.NVR()))
	sb.WriteString("\n\n")

	fmt.Fprintf(&sb, "  Metadata Version: %d\n", info.MetadataVersion())
	fmt.Fprintf(&sb, "  Source:           %s\n", d.Source())
	if d.Owner() != "" {
		fmt.Fprintf(&sb, "  Owner:            %s\n", d.Owner())
	} else {
		sb.WriteString("  Owner:            (none)\n")
	}
	fmt.Fprintf(&sb, "  Started:          %s\n", d.StartTime().Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&sb, "  Finished:         %s (%s)\n",
		d.EndTime().Format("2006-01-02 15:04:05 MST"), d.EndTime().Sub(d.StartTime()))
	if m, ok := d.Maven(); ok {
		fmt.Fprintf(&sb, "  Maven:            %s:%s:%s\n", m.GroupID, m.ArtifactID, m.Version)
	}
	sb.WriteString("\n")

	roots := info.BuildRoots()
	slices.SortStableFunc(roots, func(a, b koji.BuildRoot) int { return cmp.Compare(a.ID(), b.ID()) })
	rootTable := NewTable("ID", "HOST", "CONTAINER", "CONTENT GENERATOR", "TOOLS", "COMPONENTS")
	for _, r := range roots {
		host, container, cg := r.Host(), r.Container(), r.ContentGenerator()
		rootTable.AddRow(
			strconv.Itoa(r.ID()),
			host.OS+"/"+host.Arch,
			container.Type+"/"+container.Arch,
			cg.Name+" "+cg.Version,
			strconv.Itoa(len(r.Tools())),
			strconv.Itoa(len(r.Components())),
		)
	}
	fmt.Fprintf(&sb, "Build roots (%d):\n", rootTable.Len())
	if err := rootTable.Render(&sb); err != nil {
		return err
	}
	sb.WriteString("\n")

	outputs := info.Outputs()
	slices.SortStableFunc(outputs, func(a, b koji.BuildOutput) int {
		return cmp.Or(
			cmp.Compare(a.BuildRootID(), b.BuildRootID()),
			cmp.Compare(a.Filename(), b.Filename()),
		)
	})
	outputTable := NewTable("FILENAME", "ROOT", "ARCH", "TYPE", "SIZE", "CHECKSUM")
	for _, o := range outputs {
		outputTable.AddRow(
			o.Filename(),
			strconv.Itoa(o.BuildRootID()),
			o.Arch(),
			o.Type(),
			strconv.FormatInt(o.FileSize(), 10),
			o.ChecksumType()+":"+o.Checksum(),
		)
	}
	fmt.Fprintf(&sb, "Outputs (%d):\n", outputTable.Len())
	if err := outputTable.Render(&sb); err != nil {
		return err
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
