package pipeline

import (
	"errors"
	"io/fs"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"golang.org/x/mod/semver"

	"github.com/biotsim/airlift/internal"
)

// Manifest is published next to the artifact and records what was built,
// how big it came out, and where it came from.
type Manifest struct {
	Artifact      string       `yaml:"artifact"`
	Target        string       `yaml:"target"`
	OptLevel      string       `yaml:"optLevel"`
	BuiltAt       time.Time    `yaml:"builtAt"`
	CompiledSize  int64        `yaml:"compiledSize"`
	OptimizedSize int64        `yaml:"optimizedSize"`
	Checksum      string       `yaml:"checksum"`
	Compressed    bool         `yaml:"compressed,omitempty"`
	Source        Source       `yaml:"source,omitempty"`
	Steps         []StepTiming `yaml:"steps,omitempty"`
}

type StepTiming struct {
	Name string `yaml:"name"`
	Took string `yaml:"took"`
}

type Source struct {
	Commit string `yaml:"commit,omitempty"`
	Tag    string `yaml:"tag,omitempty"`
}

// Comparable clears the fields that change on every run regardless of
// inputs, so that two builds of the same tree diff as equal.
func (manifest Manifest) Comparable() Manifest {
	manifest.BuiltAt = time.Time{}
	manifest.Steps = nil
	return manifest
}

// SourceFromRepo reads provenance from the working tree. Not being a git
// repository, or a repository without commits, degrades to empty provenance.
func SourceFromRepo(dir string) (src Source) {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return
	}

	if head, err := repo.Head(); err == nil {
		src.Commit = head.Hash().String()
	}

	iter, err := repo.Tags()
	if err != nil {
		return
	}

	iter.ForEach(func(r *plumbing.Reference) error {
		version := string(r.Name()[len("refs/tags/"):])
		if !semver.IsValid(version) {
			return nil
		}
		if src.Tag == "" || semver.Compare(version, src.Tag) > 0 {
			src.Tag = version
		}
		return nil
	})

	return
}

// LoadManifest reads a published manifest. A manifest that does not exist
// yet is not an error: it loads as the zero manifest.
func LoadManifest(path string) (Manifest, error) {
	var manifest Manifest
	if err := internal.ReadYAML(path, &manifest); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return manifest, err
	}
	return manifest, nil
}
