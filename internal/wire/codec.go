package wire

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dbsmedya/kojiimport/internal/koji"
)

// Assemble drives a koji.ImportInfoBuilder from doc. defaultVersion applies
// when the document carries no metadata_version. Missing fields come back as
// a *koji.VerificationError listing every path.
func Assemble(doc *Document, defaultVersion int) (*koji.ImportInfo, error) {
	b := koji.NewImportInfoBuilder().WithMetadataVersion(defaultVersion)
	if doc.MetadataVersion != nil {
		b.WithMetadataVersion(*doc.MetadataVersion)
	}

	if d := doc.Build; d != nil {
		db := b.WithNewBuildDescription(d.Name, d.Version, d.Release).
			WithSource(d.Source).
			WithOwner(d.Owner)
		if d.StartTime != nil {
			db.WithStartTime(time.Unix(*d.StartTime, 0))
		}
		if d.EndTime != nil {
			db.WithEndTime(time.Unix(*d.EndTime, 0))
		}
		if m := d.Extra.maven(); m != nil {
			db.WithMavenInfo(m.GroupID, m.ArtifactID, m.Version)
		}
	}

	for _, r := range doc.BuildRoots {
		rb := b.WithNewBuildRoot(r.ID)
		if r.Host != nil {
			rb.WithHost(r.Host.OS, r.Host.Arch)
		}
		if r.Container != nil {
			rb.WithContainer(r.Container.Type, r.Container.Arch)
		}
		if r.ContentGenerator != nil {
			rb.WithContentGenerator(r.ContentGenerator.Name, r.ContentGenerator.Version)
		}
		for _, t := range r.Tools {
			rb.WithTool(t.Name, t.Version)
		}
		for _, c := range r.Components {
			rb.WithComponent(c.component())
		}
	}

	for _, o := range doc.Output {
		ob := b.WithNewOutput(o.BuildRootID, o.Filename).
			WithArch(o.Arch).
			WithChecksumType(o.ChecksumType).
			WithChecksum(o.Checksum).
			WithOutputType(o.Type)
		if o.Filesize != nil {
			ob.WithFileSize(*o.Filesize)
		}
		for _, c := range o.Components {
			ob.WithComponent(c.component())
		}
		if m := o.Extra.maven(); m != nil {
			ob.WithMavenInfo(m.GroupID, m.ArtifactID, m.Version)
		}
	}

	return b.Build()
}

// FromImportInfo converts a record into a Document. Roots are ordered by id
// and outputs by build root id then filename so encodings are stable.
func FromImportInfo(info *koji.ImportInfo) *Document {
	version := info.MetadataVersion()
	d := info.Build()
	start, end := d.StartTime().Unix(), d.EndTime().Unix()

	doc := &Document{
		MetadataVersion: &version,
		Build: &BuildDoc{
			Name:      d.Name(),
			Version:   d.Version(),
			Release:   d.Release(),
			Source:    d.Source(),
			StartTime: &start,
			EndTime:   &end,
			Owner:     d.Owner(),
		},
	}
	if m, ok := d.Maven(); ok {
		doc.Build.Extra = mavenExtra(m)
	}

	roots := info.BuildRoots()
	slices.SortStableFunc(roots, func(a, b koji.BuildRoot) int {
		return cmp.Compare(a.ID(), b.ID())
	})
	doc.BuildRoots = make([]BuildRootDoc, 0, len(roots))
	for _, r := range roots {
		host, container, cg := r.Host(), r.Container(), r.ContentGenerator()
		rd := BuildRootDoc{
			ID:               r.ID(),
			Host:             &HostDoc{OS: host.OS, Arch: host.Arch},
			Container:        &ContainerDoc{Type: container.Type, Arch: container.Arch},
			ContentGenerator: &ToolDoc{Name: cg.Name, Version: cg.Version},
			Tools:            make([]ToolDoc, 0, len(r.Tools())),
			Components:       componentDocs(r.Components()),
		}
		for _, t := range r.Tools() {
			rd.Tools = append(rd.Tools, ToolDoc{Name: t.Name, Version: t.Version})
		}
		doc.BuildRoots = append(doc.BuildRoots, rd)
	}

	outputs := info.Outputs()
	slices.SortStableFunc(outputs, func(a, b koji.BuildOutput) int {
		return cmp.Or(
			cmp.Compare(a.BuildRootID(), b.BuildRootID()),
			cmp.Compare(a.Filename(), b.Filename()),
			cmp.Compare(a.Checksum(), b.Checksum()),
		)
	})
	doc.Output = make([]OutputDoc, 0, len(outputs))
	for _, o := range outputs {
		size := o.FileSize()
		od := OutputDoc{
			BuildRootID:  o.BuildRootID(),
			Filename:     o.Filename(),
			Filesize:     &size,
			Arch:         o.Arch(),
			ChecksumType: o.ChecksumType(),
			Checksum:     o.Checksum(),
			Type:         o.Type(),
		}
		if cs := o.Components(); len(cs) > 0 {
			od.Components = componentDocs(cs)
		}
		if m, ok := o.Maven(); ok {
			od.Extra = mavenExtra(m)
		}
		doc.Output = append(doc.Output, od)
	}

	return doc
}

// Encode renders info as indented JSON.
func Encode(info *koji.ImportInfo) ([]byte, error) {
	data, err := json.MarshalIndent(FromImportInfo(info), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode import: %w", err)
	}
	return data, nil
}

// EncodeYAML renders info as YAML.
func EncodeYAML(info *koji.ImportInfo) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(FromImportInfo(info)); err != nil {
		return nil, fmt.Errorf("failed to encode import as yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode import as yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode parses a JSON document and assembles it. Unknown keys are ignored.
func Decode(data []byte) (*koji.ImportInfo, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode import: %w", err)
	}
	return Assemble(&doc, koji.DefaultMetadataVersion)
}

func (e *ExtraDoc) maven() *MavenDoc {
	if e == nil {
		return nil
	}
	return e.Maven
}

func (c ComponentDoc) component() koji.BuildComponent {
	return koji.BuildComponent{
		Type:         c.Type,
		Name:         c.Name,
		Version:      c.Version,
		Release:      c.Release,
		Epoch:        c.Epoch,
		Arch:         c.Arch,
		Sigmark:      c.Sigmark,
		Filename:     c.Filename,
		Filesize:     c.Filesize,
		ChecksumType: c.ChecksumType,
		Checksum:     c.Checksum,
	}
}

func componentDocs(cs []koji.BuildComponent) []ComponentDoc {
	out := make([]ComponentDoc, 0, len(cs))
	for _, c := range cs {
		out = append(out, ComponentDoc{
			Type:         c.Type,
			Name:         c.Name,
			Version:      c.Version,
			Release:      c.Release,
			Epoch:        c.Epoch,
			Arch:         c.Arch,
			Sigmark:      c.Sigmark,
			Filename:     c.Filename,
			Filesize:     c.Filesize,
			ChecksumType: c.ChecksumType,
			Checksum:     c.Checksum,
		})
	}
	return out
}

func mavenExtra(m koji.MavenInfo) *ExtraDoc {
	return &ExtraDoc{Maven: &MavenDoc{GroupID: m.GroupID, ArtifactID: m.ArtifactID, Version: m.Version}}
}
