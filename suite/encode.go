package suite

import (
	"sort"

	"github.com/fossas/mxsuite/pylit"
)

// Tree converts s back into a manifest tree. Keys are written in the order mx
// suites conventionally use; unknown keys follow in sorted order. Keys that
// were decoded with an empty value are written back with that value.
func (s *Suite) Tree() *pylit.Dict {
	e := newEntry(s.zeros)
	e.setString("mxversion", s.MxVersion)
	e.setString("name", s.Name)
	e.setString("version", s.Version)
	e.setString("versionConflictResolution", string(s.VersionConflictResolution))
	e.setDict("imports", s.Imports.tree())
	e.setString("javac.lint.overrides", s.LintOverrides)

	section := pylit.NewDict()
	for _, l := range s.Licenses {
		le := newEntry(l.zeros)
		le.setString("name", l.Display)
		le.setString("url", l.URL)
		le.setExtra(l.Extra)
		section.Set(l.Name, le.d)
	}
	e.setDict(sectionLicenses, section)

	section = pylit.NewDict()
	for _, l := range s.Libraries {
		le := newEntry(l.zeros)
		le.setString("path", l.Path)
		le.setString("sha1", l.SHA1)
		le.setStrings("urls", l.URLs)
		le.setStrings("dependencies", l.Dependencies)
		le.setString("license", l.License)
		le.setExtra(l.Extra)
		section.Set(l.Name, le.d)
	}
	e.setDict(sectionLibraries, section)

	section = pylit.NewDict()
	for _, p := range s.Projects {
		pe := newEntry(p.zeros)
		pe.setString("subDir", p.SubDir)
		pe.setStrings("sourceDirs", p.SourceDirs)
		pe.setStrings("dependencies", p.Dependencies)
		pe.setString("checkstyle", p.Checkstyle)
		pe.setString("checkstyleVersion", p.CheckstyleVersion)
		pe.setString("javaCompliance", p.JavaCompliance)
		pe.setString("workingSets", p.Workingsets)
		pe.setString("license", p.License)
		pe.setExtra(p.Extra)
		section.Set(p.Name, pe.d)
	}
	e.setDict(sectionProjects, section)

	section = pylit.NewDict()
	for _, dist := range s.Distributions {
		de := newEntry(dist.zeros)
		de.setString("path", dist.Path)
		de.setString("subDir", dist.SubDir)
		de.setStrings("dependencies", dist.Dependencies)
		de.setStrings("distDependencies", dist.DistDependencies)
		de.setStrings("exclude", dist.Exclude)
		de.setString("license", dist.License)
		de.setExtra(dist.Extra)
		section.Set(dist.Name, de.d)
	}
	e.setDict(sectionDistributions, section)

	e.setExtra(s.Extra)
	return e.d
}

func (i Imports) tree() *pylit.Dict {
	e := newEntry(i.zeros)
	if i.Suites != nil {
		suites := make([]interface{}, len(i.Suites))
		for n, imp := range i.Suites {
			suites[n] = imp.tree()
		}
		e.d.Set("suites", suites)
	} else {
		e.zero("suites")
	}
	e.setExtra(i.Extra)
	return e.d
}

func (i Import) tree() *pylit.Dict {
	e := newEntry(i.zeros)
	e.setString("name", i.Name)
	e.setBool("subdir", i.SubDir)
	e.setBool("dynamic", i.Dynamic)
	e.setString("version", i.Version)
	if i.URLs != nil {
		urls := make([]interface{}, len(i.URLs))
		for n, u := range i.URLs {
			ue := newEntry(u.zeros)
			ue.setString("url", u.URL)
			ue.setString("kind", u.Kind)
			ue.setExtra(u.Extra)
			urls[n] = ue.d
		}
		e.d.Set("urls", urls)
	} else {
		e.zero("urls")
	}
	e.setExtra(i.Extra)
	return e.d
}

// entry writes the keys of one dict of the manifest.
type entry struct {
	d     *pylit.Dict
	zeros map[string]interface{}
}

func newEntry(zeros map[string]interface{}) entry {
	return entry{d: pylit.NewDict(), zeros: zeros}
}

// zero writes key with the empty value it was decoded with, if any.
func (e entry) zero(key string) {
	if v, ok := e.zeros[key]; ok {
		e.d.Set(key, toTree(v))
	}
}

func (e entry) setString(key, value string) {
	if value == "" {
		e.zero(key)
		return
	}
	e.d.Set(key, value)
}

func (e entry) setBool(key string, value bool) {
	if !value {
		e.zero(key)
		return
	}
	e.d.Set(key, true)
}

// setStrings keeps empty but present lists, so that `[]` survives a round trip.
func (e entry) setStrings(key string, values []string) {
	if values == nil {
		e.zero(key)
		return
	}
	list := make([]interface{}, len(values))
	for i, v := range values {
		list[i] = v
	}
	e.d.Set(key, list)
}

func (e entry) setDict(key string, value *pylit.Dict) {
	if value.Len() == 0 {
		e.zero(key)
		return
	}
	e.d.Set(key, value)
}

func (e entry) setExtra(extra map[string]interface{}) {
	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		e.d.Set(k, toTree(extra[k]))
	}
}

func toTree(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		e := newEntry(nil)
		e.setExtra(t)
		return e.d
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = toTree(e)
		}
		return out
	default:
		return v
	}
}
