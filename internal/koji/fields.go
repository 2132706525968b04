// Package koji builds validated, immutable content-generator import records
// (build description, build roots, outputs) for submission to Koji.
//
// Records are assembled through an ImportInfoBuilder. Leaf builders accept
// values without checking them; the single terminal Build call reports every
// missing required field of the whole graph at once.
package koji

// Field names shared with the serialization layer that consumes the records.
// Missing-field paths are rendered from the same vocabulary.
const (
	FieldMetadataVersion = "metadata_version"
	FieldBuild           = "build"
	FieldBuildRoots      = "buildroots"
	FieldOutput          = "output"

	FieldName      = "name"
	FieldVersion   = "version"
	FieldRelease   = "release"
	FieldSource    = "source"
	FieldStartTime = "start_time"
	FieldEndTime   = "end_time"
	FieldOwner     = "owner"
	FieldExtra     = "extra"

	FieldID               = "id"
	FieldHost             = "host"
	FieldContainer        = "container"
	FieldContentGenerator = "content_generator"
	FieldTools            = "tools"
	FieldComponents       = "components"

	FieldBuildRootID  = "buildroot_id"
	FieldFilename     = "filename"
	FieldFileSize     = "filesize"
	FieldArch         = "arch"
	FieldChecksumType = "checksum_type"
	FieldChecksum     = "checksum"
	FieldType         = "type"
)

// DefaultMetadataVersion is used when the caller never sets a metadata version.
const DefaultMetadataVersion = 0
