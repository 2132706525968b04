// Package wire maps import records to and from the Koji content-generator
// metadata document. Decoding always goes through koji.ImportInfoBuilder, so
// a decoded document is validated exactly like one assembled by hand.
package wire

// Document is the metadata document. Tag names follow the koji Field*
// constants. Pointer fields distinguish "absent" from zero values.
type Document struct {
	MetadataVersion *int           `json:"metadata_version,omitempty" yaml:"metadata_version,omitempty" mapstructure:"metadata_version"`
	Build           *BuildDoc      `json:"build,omitempty" yaml:"build,omitempty" mapstructure:"build"`
	BuildRoots      []BuildRootDoc `json:"buildroots" yaml:"buildroots" mapstructure:"buildroots"`
	Output          []OutputDoc    `json:"output" yaml:"output" mapstructure:"output"`
}

type BuildDoc struct {
	Name      string    `json:"name" yaml:"name" mapstructure:"name"`
	Version   string    `json:"version" yaml:"version" mapstructure:"version"`
	Release   string    `json:"release" yaml:"release" mapstructure:"release"`
	Source    string    `json:"source,omitempty" yaml:"source,omitempty" mapstructure:"source"`
	StartTime *int64    `json:"start_time,omitempty" yaml:"start_time,omitempty" mapstructure:"start_time"`
	EndTime   *int64    `json:"end_time,omitempty" yaml:"end_time,omitempty" mapstructure:"end_time"`
	Owner     string    `json:"owner,omitempty" yaml:"owner,omitempty" mapstructure:"owner"`
	Extra     *ExtraDoc `json:"extra,omitempty" yaml:"extra,omitempty" mapstructure:"extra"`
}

type BuildRootDoc struct {
	ID               int            `json:"id" yaml:"id" mapstructure:"id"`
	Host             *HostDoc       `json:"host,omitempty" yaml:"host,omitempty" mapstructure:"host"`
	Container        *ContainerDoc  `json:"container,omitempty" yaml:"container,omitempty" mapstructure:"container"`
	ContentGenerator *ToolDoc       `json:"content_generator,omitempty" yaml:"content_generator,omitempty" mapstructure:"content_generator"`
	Tools            []ToolDoc      `json:"tools" yaml:"tools" mapstructure:"tools"`
	Components       []ComponentDoc `json:"components" yaml:"components" mapstructure:"components"`
}

type HostDoc struct {
	OS   string `json:"os" yaml:"os" mapstructure:"os"`
	Arch string `json:"arch" yaml:"arch" mapstructure:"arch"`
}

type ContainerDoc struct {
	Type string `json:"type" yaml:"type" mapstructure:"type"`
	Arch string `json:"arch" yaml:"arch" mapstructure:"arch"`
}

type ToolDoc struct {
	Name    string `json:"name" yaml:"name" mapstructure:"name"`
	Version string `json:"version" yaml:"version" mapstructure:"version"`
}

type ComponentDoc struct {
	Type         string `json:"type" yaml:"type" mapstructure:"type"`
	Name         string `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
	Version      string `json:"version,omitempty" yaml:"version,omitempty" mapstructure:"version"`
	Release      string `json:"release,omitempty" yaml:"release,omitempty" mapstructure:"release"`
	Epoch        int    `json:"epoch,omitempty" yaml:"epoch,omitempty" mapstructure:"epoch"`
	Arch         string `json:"arch,omitempty" yaml:"arch,omitempty" mapstructure:"arch"`
	Sigmark      string `json:"sigmark,omitempty" yaml:"sigmark,omitempty" mapstructure:"sigmark"`
	Filename     string `json:"filename,omitempty" yaml:"filename,omitempty" mapstructure:"filename"`
	Filesize     int64  `json:"filesize,omitempty" yaml:"filesize,omitempty" mapstructure:"filesize"`
	ChecksumType string `json:"checksum_type,omitempty" yaml:"checksum_type,omitempty" mapstructure:"checksum_type"`
	Checksum     string `json:"checksum,omitempty" yaml:"checksum,omitempty" mapstructure:"checksum"`
}

type OutputDoc struct {
	BuildRootID  int            `json:"buildroot_id" yaml:"buildroot_id" mapstructure:"buildroot_id"`
	Filename     string         `json:"filename" yaml:"filename" mapstructure:"filename"`
	Filesize     *int64         `json:"filesize,omitempty" yaml:"filesize,omitempty" mapstructure:"filesize"`
	Arch         string         `json:"arch,omitempty" yaml:"arch,omitempty" mapstructure:"arch"`
	ChecksumType string         `json:"checksum_type,omitempty" yaml:"checksum_type,omitempty" mapstructure:"checksum_type"`
	Checksum     string         `json:"checksum,omitempty" yaml:"checksum,omitempty" mapstructure:"checksum"`
	Type         string         `json:"type,omitempty" yaml:"type,omitempty" mapstructure:"type"`
	Components   []ComponentDoc `json:"components,omitempty" yaml:"components,omitempty" mapstructure:"components"`
	Extra        *ExtraDoc      `json:"extra,omitempty" yaml:"extra,omitempty" mapstructure:"extra"`
}

// ExtraDoc is the subset of "extra" this tool understands.
type ExtraDoc struct {
	Maven *MavenDoc `json:"maven,omitempty" yaml:"maven,omitempty" mapstructure:"maven"`
}

type MavenDoc struct {
	GroupID    string `json:"group_id" yaml:"group_id" mapstructure:"group_id"`
	ArtifactID string `json:"artifact_id" yaml:"artifact_id" mapstructure:"artifact_id"`
	Version    string `json:"version" yaml:"version" mapstructure:"version"`
}
