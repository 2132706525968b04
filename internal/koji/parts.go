package koji

// BuildHost describes the machine a build root ran on.
type BuildHost struct {
	OS   string
	Arch string
}

// BuildContainer describes the environment a build root ran in.
type BuildContainer struct {
	Type string
	Arch string
}

// BuildTool names a tool (or the content generator itself) and its version.
type BuildTool struct {
	Name    string
	Version string
}

// Component types recognised by Koji.
const (
	ComponentRPM  = "rpm"
	ComponentFile = "file"
)

// BuildComponent is an installed package or file inside a build root, or a
// constituent of an output.
type BuildComponent struct {
	Type    string
	Name    string
	Version string
	Release string
	Epoch   int
	Arch    string
	Sigmark string

	Filename     string
	Filesize     int64
	ChecksumType string
	Checksum     string
}

// RPMComponent returns an rpm-typed component.
func RPMComponent(name, version, release, arch, sigmark string, epoch int) BuildComponent {
	return BuildComponent{
		Type:    ComponentRPM,
		Name:    name,
		Version: version,
		Release: release,
		Epoch:   epoch,
		Arch:    arch,
		Sigmark: sigmark,
	}
}

// FileComponent returns a file-typed component.
func FileComponent(filename string, filesize int64, checksumType, checksum string) BuildComponent {
	return BuildComponent{
		Type:         ComponentFile,
		Filename:     filename,
		Filesize:     filesize,
		ChecksumType: checksumType,
		Checksum:     checksum,
	}
}

// MavenInfo carries the Maven coordinates stored under "extra".
type MavenInfo struct {
	GroupID    string
	ArtifactID string
	Version    string
}

// IsZero reports whether no coordinate is set.
func (m MavenInfo) IsZero() bool {
	return m == MavenInfo{}
}

func (t BuildTool) hashInto(h *hasher) {
	h.str(t.Name)
	h.str(t.Version)
}

func (c BuildComponent) hashInto(h *hasher) {
	h.str(c.Type)
	h.str(c.Name)
	h.str(c.Version)
	h.str(c.Release)
	h.int(int64(c.Epoch))
	h.str(c.Arch)
	h.str(c.Sigmark)
	h.str(c.Filename)
	h.int(c.Filesize)
	h.str(c.ChecksumType)
	h.str(c.Checksum)
}

func (m MavenInfo) hashInto(h *hasher) {
	h.str(m.GroupID)
	h.str(m.ArtifactID)
	h.str(m.Version)
}
