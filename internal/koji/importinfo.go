package koji

import (
	"strconv"
	"strings"

	"github.com/dbsmedya/kojiimport/internal/sets"
)

// ImportInfo is a validated content-generator import. It is only produced by
// ImportInfoBuilder.Build and is never modified afterwards.
type ImportInfo struct {
	metadataVersion int
	build           BuildDescription
	buildRoots      *recordSet[BuildRoot]
	outputs         *recordSet[BuildOutput]
}

// MetadataVersion returns the metadata format version.
func (i *ImportInfo) MetadataVersion() int { return i.metadataVersion }

// Build returns the build description.
func (i *ImportInfo) Build() BuildDescription { return i.build }

// BuildRoots returns the distinct build roots. Order is unspecified.
func (i *ImportInfo) BuildRoots() []BuildRoot { return i.buildRoots.items() }

// Outputs returns the distinct outputs. Order is unspecified.
func (i *ImportInfo) Outputs() []BuildOutput { return i.outputs.items() }

// Equal compares metadata version, build, and roots and outputs as sets.
func (i *ImportInfo) Equal(o *ImportInfo) bool {
	if i == nil || o == nil {
		return i == o
	}
	return i.metadataVersion == o.metadataVersion &&
		i.build.Equal(o.build) &&
		i.buildRoots.equal(o.buildRoots) &&
		i.outputs.equal(o.outputs)
}

// Hash returns a structural hash; equal imports hash equally regardless of
// the order roots and outputs were added in.
func (i *ImportInfo) Hash() uint64 {
	h := newHasher()
	h.int(int64(i.metadataVersion))
	h.uint(i.build.Hash())
	h.uint(i.buildRoots.hash())
	h.uint(i.outputs.hash())
	return h.sum()
}

// ImportInfoBuilder assembles an ImportInfo from a build description, build
// roots and outputs. Leaf builders are created through the WithNew methods
// and populated by the caller; Build validates the whole graph at once.
//
// An ImportInfoBuilder and its leaf builders are not safe for concurrent
// use. Confine them to the goroutine that owns the construction.
type ImportInfoBuilder struct {
	metadataVersion int
	description     *BuildDescriptionBuilder
	roots           []*BuildRootBuilder
	outputs         []*BuildOutputBuilder
}

// NewImportInfoBuilder returns an empty builder using DefaultMetadataVersion.
func NewImportInfoBuilder() *ImportInfoBuilder {
	return &ImportInfoBuilder{metadataVersion: DefaultMetadataVersion}
}

// WithMetadataVersion overrides DefaultMetadataVersion.
func (b *ImportInfoBuilder) WithMetadataVersion(v int) *ImportInfoBuilder {
	b.metadataVersion = v
	return b
}

// WithNewBuildDescription replaces any previous description builder.
func (b *ImportInfoBuilder) WithNewBuildDescription(name, version, release string) *BuildDescriptionBuilder {
	b.description = newBuildDescriptionBuilder(name, version, release)
	return b.description
}

// WithNewBuildRoot registers a new build root builder with the given id.
// Ids are not checked for uniqueness.
func (b *ImportInfoBuilder) WithNewBuildRoot(id int) *BuildRootBuilder {
	rb := newBuildRootBuilder(id)
	b.roots = append(b.roots, rb)
	return rb
}

// WithNewOutput registers a new output builder.
func (b *ImportInfoBuilder) WithNewOutput(buildRootID int, filename string) *BuildOutputBuilder {
	ob := newBuildOutputBuilder(buildRootID, filename)
	b.outputs = append(b.outputs, ob)
	return ob
}

// Build validates every builder in the graph and returns the frozen import.
// If anything is missing, it returns a *VerificationError listing all of it
// and no partial result.
func (b *ImportInfoBuilder) Build() (*ImportInfo, error) {
	missing := b.findMissing()
	if missing.Len() > 0 {
		return nil, &VerificationError{Missing: sets.Sorted(missing)}
	}

	info := &ImportInfo{
		metadataVersion: b.metadataVersion,
		build:           b.description.unsafeBuild(),
		buildRoots:      newRecordSet[BuildRoot](),
		outputs:         newRecordSet[BuildOutput](),
	}
	for _, rb := range b.roots {
		info.buildRoots.add(rb.unsafeBuild())
	}
	for _, ob := range b.outputs {
		info.outputs.add(ob.unsafeBuild())
	}
	return info, nil
}

func (b *ImportInfoBuilder) findMissing() sets.Set[string] {
	missing := sets.New[string]()

	if b.description == nil {
		missing.Add(FieldBuild)
	} else {
		b.description.FindMissingProperties(pathTemplate(FieldBuild), missing)
	}

	if len(b.roots) == 0 {
		missing.Add(FieldBuildRoots)
	} else {
		for _, rb := range b.roots {
			rb.FindMissingProperties(pathTemplate(indexedPath(FieldBuildRoots, strconv.Itoa(rb.ID()))), missing)
		}
	}

	if len(b.outputs) == 0 {
		missing.Add(FieldOutput)
	} else {
		for _, ob := range b.outputs {
			ob.FindMissingProperties(pathTemplate(indexedPath(FieldOutput, ob.Filename())), missing)
		}
	}

	return missing
}

func indexedPath(section, key string) string {
	return section + "[" + key + "]"
}

// pathTemplate turns a literal path prefix into a template with a single %s
// for the field name. Verbs inside the prefix (from filenames) are escaped.
func pathTemplate(prefix string) string {
	return strings.ReplaceAll(prefix, "%", "%%") + ".%s"
}
