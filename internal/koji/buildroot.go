package koji

import (
	"slices"

	"github.com/dbsmedya/kojiimport/internal/sets"
)

// BuildRoot is a frozen entry of the "buildroots" section.
type BuildRoot struct {
	id               int
	host             BuildHost
	container        BuildContainer
	contentGenerator BuildTool
	tools            []BuildTool
	components       []BuildComponent
}

// ID returns the caller-assigned build root id.
func (r BuildRoot) ID() int { return r.id }

// Host returns the host the build root ran on.
func (r BuildRoot) Host() BuildHost { return r.host }

// Container returns the container the build ran in.
func (r BuildRoot) Container() BuildContainer { return r.container }

// ContentGenerator returns the generator that produced the import.
func (r BuildRoot) ContentGenerator() BuildTool { return r.contentGenerator }

// Tools returns a copy of the tools installed in the build root.
func (r BuildRoot) Tools() []BuildTool { return slices.Clone(r.tools) }

// Components returns a copy of the components installed in the build root.
func (r BuildRoot) Components() []BuildComponent { return slices.Clone(r.components) }

// Equal reports structural equality over every field, not just the id.
func (r BuildRoot) Equal(o BuildRoot) bool {
	return r.id == o.id &&
		r.host == o.host &&
		r.container == o.container &&
		r.contentGenerator == o.contentGenerator &&
		slices.Equal(r.tools, o.tools) &&
		slices.Equal(r.components, o.components)
}

// Hash returns a structural hash consistent with Equal.
func (r BuildRoot) Hash() uint64 {
	h := newHasher()
	h.int(int64(r.id))
	h.str(r.host.OS)
	h.str(r.host.Arch)
	h.str(r.container.Type)
	h.str(r.container.Arch)
	r.contentGenerator.hashInto(h)
	h.int(int64(len(r.tools)))
	for _, t := range r.tools {
		t.hashInto(h)
	}
	h.int(int64(len(r.components)))
	for _, c := range r.components {
		c.hashInto(h)
	}
	return h.sum()
}

// BuildRootBuilder accumulates the fields of one BuildRoot.
type BuildRootBuilder struct {
	id               int
	host             *BuildHost
	container        *BuildContainer
	contentGenerator *BuildTool
	tools            []BuildTool
	components       []BuildComponent
}

func newBuildRootBuilder(id int) *BuildRootBuilder {
	return &BuildRootBuilder{id: id}
}

// ID is the caller-assigned correlation key used in diagnostic paths.
func (b *BuildRootBuilder) ID() int { return b.id }

// WithHost sets the host OS and architecture.
func (b *BuildRootBuilder) WithHost(os, arch string) *BuildRootBuilder {
	b.host = &BuildHost{OS: os, Arch: arch}
	return b
}

// WithContainer sets the container type and architecture.
func (b *BuildRootBuilder) WithContainer(containerType, arch string) *BuildRootBuilder {
	b.container = &BuildContainer{Type: containerType, Arch: arch}
	return b
}

// WithContentGenerator sets the content generator name and version.
func (b *BuildRootBuilder) WithContentGenerator(name, version string) *BuildRootBuilder {
	b.contentGenerator = &BuildTool{Name: name, Version: version}
	return b
}

// WithTool appends a tool.
func (b *BuildRootBuilder) WithTool(name, version string) *BuildRootBuilder {
	b.tools = append(b.tools, BuildTool{Name: name, Version: version})
	return b
}

// WithComponent appends an installed component.
func (b *BuildRootBuilder) WithComponent(c BuildComponent) *BuildRootBuilder {
	b.components = append(b.components, c)
	return b
}

func (b *BuildRootBuilder) has(field string) bool {
	switch field {
	case FieldID:
		return true
	case FieldHost:
		return b.host != nil
	case FieldContainer:
		return b.container != nil
	case FieldContentGenerator:
		return b.contentGenerator != nil
	case FieldTools:
		return len(b.tools) > 0
	case FieldComponents:
		return len(b.components) > 0
	}
	return false
}

// FindMissingProperties adds fmt.Sprintf(template, field) to missing for
// every required field that is unset. It does not modify the builder.
func (b *BuildRootBuilder) FindMissingProperties(template string, missing sets.Set[string]) {
	BuildRootFields.findMissing(b.has, template, missing)
}

func (b *BuildRootBuilder) unsafeBuild() BuildRoot {
	r := BuildRoot{
		id:         b.id,
		tools:      slices.Clone(b.tools),
		components: slices.Clone(b.components),
	}
	if b.host != nil {
		r.host = *b.host
	}
	if b.container != nil {
		r.container = *b.container
	}
	if b.contentGenerator != nil {
		r.contentGenerator = *b.contentGenerator
	}
	return r
}
