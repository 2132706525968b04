package koji

import (
	"slices"

	"github.com/dbsmedya/kojiimport/internal/sets"
)

// Output types commonly produced by content generators.
const (
	OutputTypeLog   = "log"
	OutputTypeMaven = "maven"
	OutputTypeRPM   = "rpm"
	OutputTypeImage = "image"
)

// BuildOutput is a frozen entry of the "output" section.
// It names its build root by id; the reference is not checked here.
type BuildOutput struct {
	buildRootID  int
	filename     string
	filesize     int64
	arch         string
	checksumType string
	checksum     string
	outputType   string
	components   []BuildComponent
	maven        MavenInfo
}

// BuildRootID returns the id of the root that produced the output.
func (o BuildOutput) BuildRootID() int { return o.buildRootID }

// Filename returns the output file name.
func (o BuildOutput) Filename() string { return o.filename }

// FileSize returns the size in bytes.
func (o BuildOutput) FileSize() int64 { return o.filesize }

// Arch returns the output architecture.
func (o BuildOutput) Arch() string { return o.arch }

// ChecksumType returns the checksum algorithm, e.g. "md5".
func (o BuildOutput) ChecksumType() string { return o.checksumType }

// Checksum returns the file checksum.
func (o BuildOutput) Checksum() string { return o.checksum }

// Type returns the output type, such as OutputTypeLog.
func (o BuildOutput) Type() string { return o.outputType }

// Components returns a copy of the output's components.
func (o BuildOutput) Components() []BuildComponent { return slices.Clone(o.components) }

// Maven returns the Maven coordinates and whether any were recorded.
func (o BuildOutput) Maven() (MavenInfo, bool) {
	return o.maven, !o.maven.IsZero()
}

// Equal reports structural equality over every field.
func (o BuildOutput) Equal(other BuildOutput) bool {
	return o.buildRootID == other.buildRootID &&
		o.filename == other.filename &&
		o.filesize == other.filesize &&
		o.arch == other.arch &&
		o.checksumType == other.checksumType &&
		o.checksum == other.checksum &&
		o.outputType == other.outputType &&
		o.maven == other.maven &&
		slices.Equal(o.components, other.components)
}

// Hash returns a structural hash consistent with Equal.
func (o BuildOutput) Hash() uint64 {
	h := newHasher()
	h.int(int64(o.buildRootID))
	h.str(o.filename)
	h.int(o.filesize)
	h.str(o.arch)
	h.str(o.checksumType)
	h.str(o.checksum)
	h.str(o.outputType)
	o.maven.hashInto(h)
	h.int(int64(len(o.components)))
	for _, c := range o.components {
		c.hashInto(h)
	}
	return h.sum()
}

// BuildOutputBuilder accumulates the fields of one BuildOutput.
type BuildOutputBuilder struct {
	buildRootID  int
	filename     string
	filesize     *int64
	arch         string
	checksumType string
	checksum     string
	outputType   string
	components   []BuildComponent
	maven        MavenInfo
}

func newBuildOutputBuilder(buildRootID int, filename string) *BuildOutputBuilder {
	return &BuildOutputBuilder{buildRootID: buildRootID, filename: filename}
}

// BuildRootID returns the id of the root this output claims to come from.
func (b *BuildOutputBuilder) BuildRootID() int { return b.buildRootID }

// Filename labels the output in diagnostic paths. It need not be unique.
func (b *BuildOutputBuilder) Filename() string { return b.filename }

// WithFileSize sets the size in bytes. Zero counts as set.
func (b *BuildOutputBuilder) WithFileSize(size int64) *BuildOutputBuilder {
	b.filesize = &size
	return b
}

// WithArch sets the output architecture.
func (b *BuildOutputBuilder) WithArch(arch string) *BuildOutputBuilder {
	b.arch = arch
	return b
}

// WithChecksumType sets the checksum algorithm.
func (b *BuildOutputBuilder) WithChecksumType(checksumType string) *BuildOutputBuilder {
	b.checksumType = checksumType
	return b
}

// WithChecksum sets the file checksum.
func (b *BuildOutputBuilder) WithChecksum(checksum string) *BuildOutputBuilder {
	b.checksum = checksum
	return b
}

// WithOutputType sets the output type.
func (b *BuildOutputBuilder) WithOutputType(outputType string) *BuildOutputBuilder {
	b.outputType = outputType
	return b
}

// WithComponent appends a component.
func (b *BuildOutputBuilder) WithComponent(c BuildComponent) *BuildOutputBuilder {
	b.components = append(b.components, c)
	return b
}

// WithMavenInfo records Maven coordinates under "extra".
func (b *BuildOutputBuilder) WithMavenInfo(groupID, artifactID, version string) *BuildOutputBuilder {
	b.maven = MavenInfo{GroupID: groupID, ArtifactID: artifactID, Version: version}
	return b
}

func (b *BuildOutputBuilder) has(field string) bool {
	switch field {
	case FieldBuildRootID:
		return true
	case FieldFilename:
		return b.filename != ""
	case FieldFileSize:
		return b.filesize != nil
	case FieldArch:
		return b.arch != ""
	case FieldChecksumType:
		return b.checksumType != ""
	case FieldChecksum:
		return b.checksum != ""
	case FieldType:
		return b.outputType != ""
	case FieldComponents:
		return len(b.components) > 0
	case FieldExtra:
		return !b.maven.IsZero()
	}
	return false
}

// FindMissingProperties adds fmt.Sprintf(template, field) to missing for
// every required field that is unset. It does not modify the builder.
func (b *BuildOutputBuilder) FindMissingProperties(template string, missing sets.Set[string]) {
	BuildOutputFields.findMissing(b.has, template, missing)
}

func (b *BuildOutputBuilder) unsafeBuild() BuildOutput {
	o := BuildOutput{
		buildRootID:  b.buildRootID,
		filename:     b.filename,
		arch:         b.arch,
		checksumType: b.checksumType,
		checksum:     b.checksum,
		outputType:   b.outputType,
		components:   slices.Clone(b.components),
		maven:        b.maven,
	}
	if b.filesize != nil {
		o.filesize = *b.filesize
	}
	return o
}
