// Package suite defines the configuration model of an mx suite manifest.
//
// A Suite is decoded from the generic tree produced by one of the manifest
// readers (see package pylit and buildtools/mx), validated against its own
// declarations and optionally against the exports of its resolved imports,
// and can be turned back into a tree for re-serialization.
package suite

import (
	"sort"
)

// A ConflictPolicy decides which revision wins when the same suite is
// imported at different revisions.
type ConflictPolicy string

// Known conflict policies.
const (
	ConflictNone      ConflictPolicy = "none"
	ConflictIgnore    ConflictPolicy = "ignore"
	ConflictLatest    ConflictPolicy = "latest"
	ConflictLatestAll ConflictPolicy = "latest_all"
)

// ConflictPolicies lists every known policy.
var ConflictPolicies = []ConflictPolicy{ConflictNone, ConflictIgnore, ConflictLatest, ConflictLatestAll}

// Known reports whether p is a known policy. The empty policy is treated as
// ConflictNone.
func (p ConflictPolicy) Known() bool {
	if p == "" {
		return true
	}
	for _, k := range ConflictPolicies {
		if p == k {
			return true
		}
	}
	return false
}

// Effective returns the policy that applies, substituting the default.
func (p ConflictPolicy) Effective() ConflictPolicy {
	if p == "" {
		return ConflictNone
	}
	return p
}

// A Suite is a named, versioned collection of project, library and
// distribution declarations.
type Suite struct {
	MxVersion                 string         `mapstructure:"mxversion"`
	Name                      string         `mapstructure:"name"`
	Version                   string         `mapstructure:"version"`
	VersionConflictResolution ConflictPolicy `mapstructure:"versionConflictResolution"`
	Imports                   Imports        `mapstructure:"imports"`
	LintOverrides             string         `mapstructure:"javac.lint.overrides"`

	Licenses      []*License      `mapstructure:"-"`
	Libraries     []*Library      `mapstructure:"-"`
	Projects      []*Project      `mapstructure:"-"`
	Distributions []*Distribution `mapstructure:"-"`

	// Revision is the VCS revision of the checkout containing the manifest, if
	// known. It is not part of the manifest.
	Revision string `mapstructure:"-"`

	Extra map[string]interface{} `mapstructure:",remain"`

	// zeros holds the keys that were present with an empty value (None, "",
	// False, [] or {}) and their values, so that Tree writes them back.
	zeros map[string]interface{}
}

// Imports holds the import declarations of a suite.
type Imports struct {
	Suites []Import `mapstructure:"suites"`

	Extra map[string]interface{} `mapstructure:",remain"`

	zeros map[string]interface{}
}

// An Import references another suite at a pinned revision. SubDir is set when
// the suite lives in a directory named after it inside the repository.
type Import struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
	URLs    []URL  `mapstructure:"urls"`
	SubDir  bool   `mapstructure:"subdir"`
	Dynamic bool   `mapstructure:"dynamic"`

	Extra map[string]interface{} `mapstructure:",remain"`

	zeros map[string]interface{}
}

// A URL is a source location of an import.
type URL struct {
	URL  string `mapstructure:"url"`
	Kind string `mapstructure:"kind"`

	Extra map[string]interface{} `mapstructure:",remain"`

	zeros map[string]interface{}
}

// Known source location kinds.
const (
	KindGit    = "git"
	KindHg     = "hg"
	KindBinary = "binary"
)

// URLKinds lists every known source location kind.
var URLKinds = []string{KindGit, KindHg, KindBinary}

// A Project is a compilable unit of the suite.
type Project struct {
	Name              string   `mapstructure:"-"`
	SubDir            string   `mapstructure:"subDir"`
	SourceDirs        []string `mapstructure:"sourceDirs"`
	Dependencies      []string `mapstructure:"dependencies"`
	CheckstyleVersion string   `mapstructure:"checkstyleVersion"`
	Checkstyle        string   `mapstructure:"checkstyle"`
	JavaCompliance    string   `mapstructure:"javaCompliance"`
	Workingsets       string   `mapstructure:"workingSets"`
	License           string   `mapstructure:"license"`

	Extra map[string]interface{} `mapstructure:",remain"`

	zeros map[string]interface{}
}

// A Library is a prebuilt artifact a suite downloads.
type Library struct {
	Name         string   `mapstructure:"-"`
	Path         string   `mapstructure:"path"`
	SHA1         string   `mapstructure:"sha1"`
	URLs         []string `mapstructure:"urls"`
	Dependencies []string `mapstructure:"dependencies"`
	License      string   `mapstructure:"license"`

	Extra map[string]interface{} `mapstructure:",remain"`

	zeros map[string]interface{}
}

// A Distribution is an archive assembled from projects and libraries.
type Distribution struct {
	Name             string   `mapstructure:"-"`
	Path             string   `mapstructure:"path"`
	SubDir           string   `mapstructure:"subDir"`
	Dependencies     []string `mapstructure:"dependencies"`
	DistDependencies []string `mapstructure:"distDependencies"`
	Exclude          []string `mapstructure:"exclude"`
	License          string   `mapstructure:"license"`

	Extra map[string]interface{} `mapstructure:",remain"`

	zeros map[string]interface{}
}

// A License is a license declared by the suite.
type License struct {
	Name    string `mapstructure:"-"`
	Display string `mapstructure:"name"`
	URL     string `mapstructure:"url"`

	Extra map[string]interface{} `mapstructure:",remain"`

	zeros map[string]interface{}
}

// Identity returns `name@version`, falling back to the checkout revision when
// the manifest has no version.
func (s *Suite) Identity() string {
	v := s.Version
	if v == "" {
		v = s.Revision
	}
	if v == "" {
		return s.Name
	}
	return s.Name + "@" + v
}

// Import returns the import declaration named name.
func (s *Suite) Import(name string) (Import, bool) {
	for _, i := range s.Imports.Suites {
		if i.Name == name {
			return i, true
		}
	}
	return Import{}, false
}

// Project returns the project named name.
func (s *Suite) Project(name string) (*Project, bool) {
	for _, p := range s.Projects {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// Library returns the library named name.
func (s *Suite) Library(name string) (*Library, bool) {
	for _, l := range s.Libraries {
		if l.Name == name {
			return l, true
		}
	}
	return nil, false
}

// Distribution returns the distribution named name.
func (s *Suite) Distribution(name string) (*Distribution, bool) {
	for _, d := range s.Distributions {
		if d.Name == name {
			return d, true
		}
	}
	return nil, false
}

// License returns the license declared as name.
func (s *Suite) License(name string) (*License, bool) {
	for _, l := range s.Licenses {
		if l.Name == name {
			return l, true
		}
	}
	return nil, false
}

// Defines reports whether name is a project, library or distribution of s.
func (s *Suite) Defines(name string) bool {
	if _, ok := s.Project(name); ok {
		return true
	}
	if _, ok := s.Library(name); ok {
		return true
	}
	_, ok := s.Distribution(name)
	return ok
}

// Exports returns, sorted, the names other suites may depend on.
func (s *Suite) Exports() []string {
	var names []string
	for _, p := range s.Projects {
		names = append(names, p.Name)
	}
	for _, l := range s.Libraries {
		names = append(names, l.Name)
	}
	for _, d := range s.Distributions {
		names = append(names, d.Name)
	}
	sort.Strings(names)
	return names
}
