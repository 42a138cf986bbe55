package suite

import (
	"fmt"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/blang/semver"

	"github.com/fossas/mxsuite/errors"
	"github.com/fossas/mxsuite/graph"
)

// BuiltinLicenses are the licenses defined by mx itself. Suites may use them
// without declaring them.
var BuiltinLicenses = []string{
	"Apache-2.0",
	"BSD-new",
	"BSD-simple",
	"CC0",
	"CDDL",
	"EPL-1.0",
	"EPL-2.0",
	"GPLv2",
	"GPLv2-CPE",
	"GPLv3",
	"ICU",
	"LGPLv21",
	"MIT",
	"MPL-1.1",
	"MPL-2.0",
	"NCSA",
	"UPL",
	"zlib",
}

var pinnedRevision = regexp.MustCompile(`^[0-9a-fA-F]{40}$`)

// IsPinnedRevision reports whether rev is a full git commit id. Branch and tag
// names, `HEAD` and abbreviated hashes are floating and do not qualify.
func IsPinnedRevision(rev string) bool {
	return pinnedRevision.MatchString(rev)
}

// CheckImportName returns an error if name cannot be used as a directory name
// below the import cache, such as `..` or a name containing a path separator.
func CheckImportName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("must be a non-empty string")
	case name == "." || name == "..":
		return fmt.Errorf("%q is not a suite name", name)
	case strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, filepath.Separator):
		return fmt.Errorf("suite name %q must not contain a path separator", name)
	}
	return nil
}

// Options tune Validate.
type Options struct {
	// Exports maps an import name to the names its resolved suite exports.
	// When nil, qualified references are only checked against the declared
	// imports.
	Exports map[string][]string
}

// A Problem is a single configuration error at a path in the manifest.
type Problem struct {
	Path string
	Msg  string
}

func (p Problem) String() string {
	return p.Path + ": " + p.Msg
}

// Problems is every configuration error found in a manifest.
type Problems []Problem

func (ps Problems) Error() string {
	lines := make([]string, len(ps))
	for i, p := range ps {
		lines[i] = p.String()
	}
	return strings.Join(lines, "\n")
}

// Validate checks s and returns nil or an *errors.Error of type Config whose
// Cause is the Problems found.
func Validate(s *Suite, opts Options) error {
	ps := Check(s, opts)
	if len(ps) == 0 {
		return nil
	}
	noun := "errors"
	if len(ps) == 1 {
		noun = "error"
	}
	return &errors.Error{
		Type:            errors.Config,
		Cause:           ps,
		Message:         fmt.Sprintf("suite %q has %d configuration %s", s.Name, len(ps), noun),
		Troubleshooting: "Fix the listed entries in the suite manifest. A dependency must name a project, library or distribution of this suite, or be written as suite:NAME where suite is declared under imports.suites and pinned to a full commit hash.",
	}
}

// Check returns every configuration error in s.
func Check(s *Suite, opts Options) Problems {
	c := checker{s: s, opts: opts}
	c.header()
	c.imports()
	c.names()
	for _, l := range s.Libraries {
		c.library(l)
	}
	for _, p := range s.Projects {
		c.project(p)
	}
	for _, d := range s.Distributions {
		c.distribution(d)
	}
	c.cycles()
	return c.problems
}

type checker struct {
	s        *Suite
	opts     Options
	problems Problems
}

func (c *checker) addf(path, format string, args ...interface{}) {
	c.problems = append(c.problems, Problem{Path: path, Msg: fmt.Sprintf(format, args...)})
}

func (c *checker) header() {
	if c.s.Name == "" {
		c.addf("name", "must be a non-empty string")
	}
	if c.s.MxVersion == "" {
		c.addf("mxversion", "must be a non-empty string")
	} else if _, err := semver.ParseTolerant(c.s.MxVersion); err != nil {
		c.addf("mxversion", "must be a version such as 5.70.2, found %q", c.s.MxVersion)
	}
	if !c.s.VersionConflictResolution.Known() {
		c.addf("versionConflictResolution", "unknown policy %q (expected one of %s)", c.s.VersionConflictResolution, policyList())
	}
}

func (c *checker) imports() {
	seen := make(map[string]bool)
	for i, imp := range c.s.Imports.Suites {
		p := fmt.Sprintf("imports.suites[%d]", i)
		switch {
		case imp.Name == "":
			c.addf(p+".name", "must be a non-empty string")
		case imp.Name == c.s.Name:
			c.addf(p+".name", "suite %q cannot import itself", imp.Name)
		case seen[imp.Name]:
			c.addf(p+".name", "suite %q is imported more than once", imp.Name)
		default:
			if err := CheckImportName(imp.Name); err != nil {
				c.addf(p+".name", "%s", err)
			}
		}
		seen[imp.Name] = true

		switch {
		case imp.Version == "":
			c.addf(p+".version", "must be pinned to a revision")
		case !IsPinnedRevision(imp.Version):
			c.addf(p+".version", "must be a full 40-character commit hash, found %q", imp.Version)
		}

		if !usableURL(imp.URLs) {
			c.addf(p+".urls", "must list at least one source location with a url and a kind of %s", strings.Join(URLKinds, ", "))
		}
	}
}

// usableURL reports whether one of urls can be fetched. Incomplete entries and
// unknown kinds next to it are skipped when resolving.
func usableURL(urls []URL) bool {
	for _, u := range urls {
		if u.URL != "" && knownKind(u.Kind) {
			return true
		}
	}
	return false
}

// names reports entries defined in more than one section.
func (c *checker) names() {
	sections := make(map[string][]string)
	for _, p := range c.s.Projects {
		sections[p.Name] = append(sections[p.Name], sectionProjects)
	}
	for _, l := range c.s.Libraries {
		sections[l.Name] = append(sections[l.Name], sectionLibraries)
	}
	for _, d := range c.s.Distributions {
		sections[d.Name] = append(sections[d.Name], sectionDistributions)
	}
	var names []string
	for name, in := range sections {
		if len(in) > 1 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		c.addf(name, "is defined in more than one of %s", strings.Join(sections[name], ", "))
	}
}

func (c *checker) library(l *Library) {
	p := sectionLibraries + "." + l.Name
	if l.Path == "" && len(l.URLs) == 0 {
		c.addf(p, "must have a path or at least one URL")
	}
	if l.SHA1 != "" && !IsPinnedRevision(l.SHA1) {
		c.addf(p+".sha1", "must be a 40-character hex digest, found %q", l.SHA1)
	}
	if l.License != "" {
		c.license(p+".license", l.License)
	}
	c.references(p+".dependencies", l.Name, l.Dependencies)
}

func (c *checker) project(pr *Project) {
	p := sectionProjects + "." + pr.Name
	if pr.SubDir != "" && !relativePath(pr.SubDir) {
		c.addf(p+".subDir", "must be a relative path, found %q", pr.SubDir)
	}
	if len(pr.SourceDirs) == 0 {
		c.addf(p+".sourceDirs", "must list at least one source directory")
	}
	for i, dir := range pr.SourceDirs {
		if !relativePath(dir) {
			c.addf(fmt.Sprintf("%s.sourceDirs[%d]", p, i), "must be a relative path, found %q", dir)
		}
	}
	if pr.JavaCompliance == "" {
		c.addf(p+".javaCompliance", "must be set")
	} else if _, err := ParseCompliance(pr.JavaCompliance); err != nil {
		c.addf(p+".javaCompliance", "%s", err)
	}
	switch {
	case pr.License != "":
		c.license(p+".license", pr.License)
	case c.s.Extra["defaultLicense"] == nil:
		c.addf(p+".license", "must be set")
	}
	c.references(p+".dependencies", pr.Name, pr.Dependencies)
}

func (c *checker) distribution(d *Distribution) {
	p := sectionDistributions + "." + d.Name
	if d.License != "" {
		c.license(p+".license", d.License)
	}
	c.references(p+".dependencies", d.Name, d.Dependencies)
	c.references(p+".distDependencies", d.Name, d.DistDependencies)
}

func (c *checker) license(p, name string) {
	ref, err := ParseReference(name)
	if err != nil {
		c.addf(p, "%s", err)
		return
	}
	if ref.Qualified() {
		if _, ok := c.s.Import(ref.Suite); !ok {
			c.addf(p, "license %q refers to suite %q, which is not imported", name, ref.Suite)
		}
		return
	}
	if _, ok := c.s.License(name); ok {
		return
	}
	for _, b := range BuiltinLicenses {
		if b == name {
			return
		}
	}
	c.addf(p, "unknown license %q", name)
}

func (c *checker) references(p, owner string, refs []string) {
	for i, raw := range refs {
		rp := fmt.Sprintf("%s[%d]", p, i)
		ref, err := ParseReference(raw)
		if err != nil {
			c.addf(rp, "%s", err)
			continue
		}

		if !ref.Qualified() {
			switch {
			case ref.Name == owner:
				c.addf(rp, "%q depends on itself", owner)
			case !c.s.Defines(ref.Name):
				c.addf(rp, "unknown dependency %q: no project, library or distribution of suite %q has this name", ref.Name, c.s.Name)
			}
			continue
		}

		if ref.Suite == c.s.Name {
			if !c.s.Defines(ref.Name) {
				c.addf(rp, "unknown dependency %q: suite %q does not define %q", raw, c.s.Name, ref.Name)
			}
			continue
		}
		if _, ok := c.s.Import(ref.Suite); !ok {
			c.addf(rp, "dependency %q refers to suite %q, which is not imported", raw, ref.Suite)
			continue
		}
		if c.opts.Exports == nil {
			continue
		}
		exports, ok := c.opts.Exports[ref.Suite]
		if !ok {
			continue
		}
		if !contains(exports, ref.Name) {
			c.addf(rp, "dependency %q is not exported by suite %q", raw, ref.Suite)
		}
	}
}

func (c *checker) cycles() {
	g := DependencyGraph(c.s)
	if _, err := g.Order(); err != nil {
		c.addf("dependencies", "%s", err)
	}
}

// DependencyGraph returns the graph of local dependencies between the
// projects, libraries and distributions of s. Qualified references to other
// suites are not part of the graph; unresolved local references are skipped.
func DependencyGraph(s *Suite) *graph.Graph {
	g := graph.New()
	add := func(owner string, refs []string) {
		g.AddNode(owner)
		for _, raw := range refs {
			ref, err := ParseReference(raw)
			if err != nil || (ref.Qualified() && ref.Suite != s.Name) || !s.Defines(ref.Name) || ref.Name == owner {
				continue
			}
			g.AddEdge(owner, ref.Name)
		}
	}
	for _, l := range s.Libraries {
		add(l.Name, l.Dependencies)
	}
	for _, p := range s.Projects {
		add(p.Name, p.Dependencies)
	}
	for _, d := range s.Distributions {
		add(d.Name, append(append([]string{}, d.Dependencies...), d.DistDependencies...))
	}
	return g
}

// ExternalDependencies returns, in order of first appearance, the qualified
// references of the given entries and everything they depend on locally.
func ExternalDependencies(s *Suite, order []string) []Reference {
	seen := make(map[string]bool)
	var refs []Reference
	for _, name := range order {
		var deps []string
		if p, ok := s.Project(name); ok {
			deps = p.Dependencies
		} else if l, ok := s.Library(name); ok {
			deps = l.Dependencies
		} else if d, ok := s.Distribution(name); ok {
			deps = append(append([]string{}, d.Dependencies...), d.DistDependencies...)
		}
		for _, raw := range deps {
			ref, err := ParseReference(raw)
			if err != nil || !ref.Qualified() || ref.Suite == s.Name || seen[ref.String()] {
				continue
			}
			seen[ref.String()] = true
			refs = append(refs, ref)
		}
	}
	return refs
}

func relativePath(p string) bool {
	if p == "" || path.IsAbs(p) || strings.HasPrefix(p, "\\") || (len(p) > 1 && p[1] == ':') {
		return false
	}
	clean := path.Clean(strings.Replace(p, "\\", "/", -1))
	return clean != ".." && !strings.HasPrefix(clean, "../")
}

func knownKind(kind string) bool {
	return contains(URLKinds, kind)
}

func policyList() string {
	names := make([]string, len(ConflictPolicies))
	for i, p := range ConflictPolicies {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}

func contains(list []string, s string) bool {
	for _, e := range list {
		if e == s {
			return true
		}
	}
	return false
}
