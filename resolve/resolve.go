// Package resolve materializes the imports of a suite at their pinned
// revisions.
//
// Imports are fetched into a content-addressed cache, one level of the import
// graph at a time and concurrently within a level. When the same suite is
// pinned to different revisions, the conflict policy of the importing suite
// decides which revision is used.
package resolve

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/apex/log"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/fossas/mxsuite/buildtools/mx"
	"github.com/fossas/mxsuite/files"
	"github.com/fossas/mxsuite/suite"
	"github.com/fossas/mxsuite/vcs"
)

// A Fetcher materializes repositories of one URL kind.
type Fetcher interface {
	Kind() string
	// Fetch creates dir as a checkout of url at revision.
	Fetch(ctx context.Context, url, revision, dir string) error
	// Verify checks that the checkout at dir is at revision.
	Verify(ctx context.Context, dir, revision string) error
	// CommitTime returns when revision was committed.
	CommitTime(ctx context.Context, dir, revision string) (time.Time, error)
}

// A Reader reads the manifest at path.
type Reader func(path string) (*suite.Suite, error)

// DefaultConcurrency bounds the number of simultaneous fetches.
const DefaultConcurrency = 4

// A Resolver fetches the imports of suites.
type Resolver struct {
	Fetchers    []Fetcher
	Cache       Cache
	Read        Reader
	Transitive  bool
	Concurrency int
}

// New returns a Resolver using git and Mercurial checkouts.
func New(cache Cache) *Resolver {
	return &Resolver{
		Fetchers:    []Fetcher{vcs.GitFetcher{}, vcs.MercurialFetcher{}},
		Cache:       cache,
		Read:        mx.Read,
		Concurrency: DefaultConcurrency,
	}
}

// Resolved is an imported suite materialized at a revision.
type Resolved struct {
	Name     string
	Revision string
	URL      string
	// Dir is the cache entry of the checkout.
	Dir string
	// SuiteDir is the directory of the suite inside the checkout.
	SuiteDir   string
	ImportedBy string
	Suite      *suite.Suite
	Exports    []string

	fetcher Fetcher
}

// A Resolution is the set of suites a root suite transitively depends on.
type Resolution struct {
	Suites map[string]*Resolved
}

// Names returns the names of the resolved suites, sorted.
func (r *Resolution) Names() []string {
	names := make([]string, 0, len(r.Suites))
	for name := range r.Suites {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Exports maps each resolved suite to the names it exports, for validation.
func (r *Resolution) Exports() map[string][]string {
	exports := make(map[string][]string, len(r.Suites))
	for name, s := range r.Suites {
		exports[name] = s.Exports
	}
	return exports
}

type pending struct {
	imp        suite.Import
	importedBy string
	policy     suite.ConflictPolicy
}

func (p pending) key() string {
	return p.imp.Name + "@" + p.imp.Version
}

// Resolve fetches every import of s. With Transitive set, the imports of the
// imported suites are fetched too.
func (r *Resolver) Resolve(ctx context.Context, s *suite.Suite) (*Resolution, error) {
	rootPolicy := s.VersionConflictResolution.Effective()
	res := &Resolution{Suites: make(map[string]*Resolved)}

	var queue []pending
	for _, imp := range s.Imports.Suites {
		queue = append(queue, pending{imp: imp, importedBy: s.Name, policy: rootPolicy})
	}

	for len(queue) > 0 {
		fetched, err := r.fetchAll(ctx, queue)
		if err != nil {
			return nil, err
		}

		var next []pending
		for _, p := range queue {
			candidate := fetched[p.key()]
			if existing, ok := res.Suites[p.imp.Name]; ok {
				if existing.Revision == candidate.Revision {
					continue
				}
				winner, err := r.conflict(ctx, p.policy, existing, candidate)
				if err != nil {
					return nil, err
				}
				if winner == existing {
					continue
				}
			}
			res.Suites[p.imp.Name] = candidate

			if !r.Transitive || candidate.Suite == nil {
				continue
			}
			policy := candidate.Suite.VersionConflictResolution.Effective()
			if rootPolicy == suite.ConflictLatestAll {
				policy = suite.ConflictLatestAll
			}
			for _, imp := range candidate.Suite.Imports.Suites {
				if imp.Name == s.Name {
					continue
				}
				next = append(next, pending{imp: imp, importedBy: candidate.Name, policy: policy})
			}
		}
		queue = next
	}
	return res, nil
}

// conflict picks between two revisions of the same suite.
func (r *Resolver) conflict(ctx context.Context, policy suite.ConflictPolicy, existing, candidate *Resolved) (*Resolved, error) {
	entry := log.WithFields(log.Fields{
		"suite":    existing.Name,
		"kept":     existing.Revision,
		"imported": candidate.Revision,
		"by":       candidate.ImportedBy,
		"policy":   string(policy),
	})
	switch policy {
	case suite.ConflictIgnore:
		entry.Warn("ignoring conflicting import revision")
		return existing, nil

	case suite.ConflictLatest, suite.ConflictLatestAll:
		a, err := existing.fetcher.CommitTime(ctx, existing.Dir, existing.Revision)
		if err != nil {
			return nil, &ResolutionError{Import: existing.Name, URL: existing.URL, Revision: existing.Revision, Cause: err}
		}
		b, err := candidate.fetcher.CommitTime(ctx, candidate.Dir, candidate.Revision)
		if err != nil {
			return nil, &ResolutionError{Import: candidate.Name, URL: candidate.URL, Revision: candidate.Revision, Cause: err}
		}
		if b.After(a) {
			entry.Info("using the more recent import revision")
			return candidate, nil
		}
		entry.Debug("keeping the more recent import revision")
		return existing, nil

	default:
		return nil, &ResolutionError{
			Import:   candidate.Name,
			URL:      candidate.URL,
			Revision: candidate.Revision,
			Cause: errors.Errorf("suite %q imports it at %s, but %q imports it at %s; set versionConflictResolution to pick one",
				candidate.ImportedBy, candidate.Revision, existing.ImportedBy, existing.Revision),
		}
	}
}

// fetchAll fetches each distinct name@revision of queue once.
func (r *Resolver) fetchAll(ctx context.Context, queue []pending) (map[string]*Resolved, error) {
	limit := r.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}
	sem := semaphore.NewWeighted(int64(limit))

	var mu sync.Mutex
	fetched := make(map[string]*Resolved)
	g, ctx := errgroup.WithContext(ctx)
	started := make(map[string]bool)
	for _, p := range queue {
		if started[p.key()] {
			continue
		}
		started[p.key()] = true

		p := p
		g.Go(func() error {
			if err := sem.Acquire(ctx, 1); err != nil {
				return err
			}
			defer sem.Release(1)

			resolved, err := r.fetch(ctx, p)
			if err != nil {
				return err
			}
			mu.Lock()
			fetched[p.key()] = resolved
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return fetched, nil
}

func (r *Resolver) fetcher(kind string) Fetcher {
	for _, f := range r.Fetchers {
		if f.Kind() == kind {
			return f
		}
	}
	return nil
}

// fetch materializes one import, trying its URLs in order.
func (r *Resolver) fetch(ctx context.Context, p pending) (*Resolved, error) {
	imp := p.imp
	if !suite.IsPinnedRevision(imp.Version) {
		return nil, &ResolutionError{
			Import:   imp.Name,
			Revision: imp.Version,
			Cause:    errors.New("version is not a pinned revision (a 40-character commit id)"),
		}
	}
	if len(imp.URLs) == 0 {
		return nil, &ResolutionError{Import: imp.Name, Revision: imp.Version, Cause: errors.New("no URLs to fetch from")}
	}

	dir, err := r.Cache.Dir(imp.Name, imp.Version)
	if err != nil {
		return nil, &ResolutionError{Import: imp.Name, Revision: imp.Version, Cause: err}
	}
	var last *ResolutionError
	for _, u := range imp.URLs {
		entry := log.WithFields(log.Fields{"suite": imp.Name, "revision": imp.Version, "url": u.URL})
		f := r.fetcher(u.Kind)
		if f == nil {
			entry.Debugf("skipping URL of unsupported kind %q", u.Kind)
			last = &ResolutionError{Import: imp.Name, URL: u.URL, Revision: imp.Version, Cause: errors.Errorf("unsupported URL kind %q", u.Kind)}
			continue
		}
		if u.URL == "" {
			last = &ResolutionError{Import: imp.Name, Revision: imp.Version, Cause: errors.New("empty URL")}
			continue
		}

		cached, err := files.ExistsFolder(dir)
		if err != nil {
			return nil, &ResolutionError{Import: imp.Name, URL: u.URL, Revision: imp.Version, Cause: err}
		}
		if cached {
			entry.WithField("dir", dir).Debug("using cached checkout")
			if err := f.Verify(ctx, dir, imp.Version); err != nil {
				return nil, &ResolutionError{Import: imp.Name, URL: u.URL, Revision: imp.Version, Cause: errors.Wrapf(err, "cache entry %s is corrupt", dir)}
			}
			return r.resolved(p, f, u.URL, dir)
		}

		entry.Info("fetching import")
		if err := r.materialize(ctx, f, imp.Name, u.URL, imp.Version, dir); err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			entry.WithError(err).Debug("could not fetch from URL")
			last = &ResolutionError{Import: imp.Name, URL: u.URL, Revision: imp.Version, Cause: err}
			continue
		}
		return r.resolved(p, f, u.URL, dir)
	}
	return nil, last
}

// materialize fetches into a staging directory and renames the verified
// checkout into place.
func (r *Resolver) materialize(ctx context.Context, f Fetcher, name, url, revision, dir string) error {
	staging, err := r.Cache.staging(name)
	if err != nil {
		return err
	}
	defer os.RemoveAll(staging)

	checkout := filepath.Join(staging, "checkout")
	if err := f.Fetch(ctx, url, revision, checkout); err != nil {
		return err
	}
	if err := f.Verify(ctx, checkout, revision); err != nil {
		return err
	}
	if err := os.Rename(checkout, dir); err != nil {
		// Another process may have populated the entry in the meantime.
		if ok, _ := files.ExistsFolder(dir); ok {
			return f.Verify(ctx, dir, revision)
		}
		return errors.Wrapf(err, "could not move checkout into %s", dir)
	}
	return nil
}

func (r *Resolver) resolved(p pending, f Fetcher, url, dir string) (*Resolved, error) {
	suiteDir := dir
	if p.imp.SubDir {
		suiteDir = filepath.Join(dir, p.imp.Name)
	}
	res := &Resolved{
		Name:       p.imp.Name,
		Revision:   p.imp.Version,
		URL:        url,
		Dir:        dir,
		SuiteDir:   suiteDir,
		ImportedBy: p.importedBy,
		fetcher:    f,
	}
	if r.Read == nil {
		return res, nil
	}

	s, err := r.Read(mx.ManifestPath(suiteDir, p.imp.Name))
	if err != nil {
		return nil, &ResolutionError{Import: p.imp.Name, URL: url, Revision: p.imp.Version, Cause: err}
	}
	res.Suite = s
	res.Exports = s.Exports()
	return res, nil
}
