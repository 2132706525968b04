package koji

import (
	"time"

	"github.com/dbsmedya/kojiimport/internal/sets"
)

// BuildDescription is the frozen "build" section of an import.
// Times are kept at second precision, as Koji stores them.
type BuildDescription struct {
	name      string
	version   string
	release   string
	source    string
	startTime int64
	endTime   int64
	owner     string
	maven     MavenInfo
}

// Name returns the package name.
func (d BuildDescription) Name() string { return d.name }

// Version returns the package version.
func (d BuildDescription) Version() string { return d.version }

// Release returns the package release.
func (d BuildDescription) Release() string { return d.release }

// Source returns the source URL the build was made from.
func (d BuildDescription) Source() string { return d.source }

// Owner returns the build owner, or "" if none was set.
func (d BuildDescription) Owner() string { return d.owner }

// NVR returns the name-version-release identifier of the build.
func (d BuildDescription) NVR() string {
	return d.name + "-" + d.version + "-" + d.release
}

// StartTime returns the build start in UTC.
func (d BuildDescription) StartTime() time.Time { return time.Unix(d.startTime, 0).UTC() }

// EndTime returns the build end in UTC.
func (d BuildDescription) EndTime() time.Time { return time.Unix(d.endTime, 0).UTC() }

// Maven returns the Maven coordinates and whether any were recorded.
func (d BuildDescription) Maven() (MavenInfo, bool) {
	return d.maven, !d.maven.IsZero()
}

// Equal reports structural equality over every field.
func (d BuildDescription) Equal(o BuildDescription) bool {
	return d == o
}

// Hash returns a structural hash consistent with Equal.
func (d BuildDescription) Hash() uint64 {
	h := newHasher()
	h.str(d.name)
	h.str(d.version)
	h.str(d.release)
	h.str(d.source)
	h.int(d.startTime)
	h.int(d.endTime)
	h.str(d.owner)
	d.maven.hashInto(h)
	return h.sum()
}

// BuildDescriptionBuilder accumulates the fields of a BuildDescription.
// Setters never validate; missing fields surface from ImportInfoBuilder.Build.
type BuildDescriptionBuilder struct {
	name      string
	version   string
	release   string
	source    string
	startTime *time.Time
	endTime   *time.Time
	owner     string
	maven     MavenInfo
}

func newBuildDescriptionBuilder(name, version, release string) *BuildDescriptionBuilder {
	return &BuildDescriptionBuilder{name: name, version: version, release: release}
}

// NVR identifies the description in diagnostics. It is not validated.
func (b *BuildDescriptionBuilder) NVR() string {
	return b.name + "-" + b.version + "-" + b.release
}

// WithSource sets the source URL.
func (b *BuildDescriptionBuilder) WithSource(source string) *BuildDescriptionBuilder {
	b.source = source
	return b
}

// WithStartTime sets the build start. Sub-second precision is dropped.
func (b *BuildDescriptionBuilder) WithStartTime(t time.Time) *BuildDescriptionBuilder {
	b.startTime = &t
	return b
}

// WithEndTime sets the build end. Sub-second precision is dropped.
func (b *BuildDescriptionBuilder) WithEndTime(t time.Time) *BuildDescriptionBuilder {
	b.endTime = &t
	return b
}

// WithOwner sets the optional build owner.
func (b *BuildDescriptionBuilder) WithOwner(owner string) *BuildDescriptionBuilder {
	b.owner = owner
	return b
}

// WithMavenInfo records Maven coordinates under "extra".
func (b *BuildDescriptionBuilder) WithMavenInfo(groupID, artifactID, version string) *BuildDescriptionBuilder {
	b.maven = MavenInfo{GroupID: groupID, ArtifactID: artifactID, Version: version}
	return b
}

func (b *BuildDescriptionBuilder) has(field string) bool {
	switch field {
	case FieldName:
		return b.name != ""
	case FieldVersion:
		return b.version != ""
	case FieldRelease:
		return b.release != ""
	case FieldSource:
		return b.source != ""
	case FieldStartTime:
		return b.startTime != nil
	case FieldEndTime:
		return b.endTime != nil
	case FieldOwner:
		return b.owner != ""
	case FieldExtra:
		return !b.maven.IsZero()
	}
	return false
}

// FindMissingProperties adds fmt.Sprintf(template, field) to missing for
// every required field that is unset. It does not modify the builder.
func (b *BuildDescriptionBuilder) FindMissingProperties(template string, missing sets.Set[string]) {
	BuildDescriptionFields.findMissing(b.has, template, missing)
}

// unsafeBuild freezes the builder without checking required fields.
func (b *BuildDescriptionBuilder) unsafeBuild() BuildDescription {
	d := BuildDescription{
		name:    b.name,
		version: b.version,
		release: b.release,
		source:  b.source,
		owner:   b.owner,
		maven:   b.maven,
	}
	if b.startTime != nil {
		d.startTime = b.startTime.Unix()
	}
	if b.endTime != nil {
		d.endTime = b.endTime.Unix()
	}
	return d
}
