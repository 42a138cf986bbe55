package vcs

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/pkg/errors"
	git "gopkg.in/src-d/go-git.v4"
	"gopkg.in/src-d/go-git.v4/plumbing"
)

// GitRepository is an opened git checkout.
type GitRepository struct {
	r   *git.Repository
	dir string
}

// OpenGit opens the git checkout rooted at dir.
func OpenGit(dir string) (*GitRepository, error) {
	r, err := git.PlainOpen(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open git repository at %s", dir)
	}
	return &GitRepository{
		r:   r,
		dir: dir,
	}, nil
}

// Head returns the checked out revision.
func (gr *GitRepository) Head() (Revision, error) {
	ref, err := gr.r.Head()
	if err != nil {
		return Revision{}, errors.Wrapf(err, "could not read HEAD of %s", gr.dir)
	}
	return Revision{
		Branch:     ref.Name().String(),
		RevisionID: ref.Hash().String(),
	}, nil
}

// Checkout detaches the worktree at revision, which must be a full commit id.
func (gr *GitRepository) Checkout(revision string) error {
	hash := plumbing.NewHash(revision)
	if _, err := gr.r.CommitObject(hash); err != nil {
		return errors.Wrapf(ErrRevisionNotFound, "%s in %s", revision, gr.dir)
	}
	wt, err := gr.r.Worktree()
	if err != nil {
		return errors.Wrapf(err, "could not open worktree of %s", gr.dir)
	}
	return errors.Wrapf(wt.Checkout(&git.CheckoutOptions{Hash: hash, Force: true}), "could not check out %s", revision)
}

// CommitTime returns the committer time of revision.
func (gr *GitRepository) CommitTime(revision string) (time.Time, error) {
	c, err := gr.r.CommitObject(plumbing.NewHash(revision))
	if err != nil {
		return time.Time{}, errors.Wrapf(ErrRevisionNotFound, "%s in %s", revision, gr.dir)
	}
	return c.Committer.When, nil
}

// Project returns the URL of the `origin` remote, if any.
func (gr *GitRepository) Project() string {
	origin, err := gr.r.Remote("origin")
	if err == nil && origin != nil && len(origin.Config().URLs) > 0 {
		return origin.Config().URLs[0]
	}
	return ""
}

// GitFetcher materializes git imports with go-git.
type GitFetcher struct {
	// Progress receives the sideband output of clones, if set.
	Progress io.Writer
}

// Kind returns the import URL kind handled by the fetcher.
func (GitFetcher) Kind() string {
	return "git"
}

// Fetch clones url into dir and checks out revision.
func (f GitFetcher) Fetch(ctx context.Context, url, revision, dir string) error {
	log.WithFields(log.Fields{"url": url, "revision": revision, "dir": dir}).Debug("cloning git repository")
	r, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:        url,
		NoCheckout: true,
		Progress:   f.Progress,
	})
	if err != nil {
		return errors.Wrapf(err, "could not clone %s", url)
	}
	repo := &GitRepository{r: r, dir: dir}
	return repo.Checkout(revision)
}

// Verify checks that the checkout at dir is at revision.
func (GitFetcher) Verify(ctx context.Context, dir, revision string) error {
	repo, err := OpenGit(dir)
	if err != nil {
		return err
	}
	head, err := repo.Head()
	if err != nil {
		return err
	}
	if !strings.EqualFold(head.RevisionID, revision) {
		return errors.Errorf("checkout %s is at %s, not at the pinned revision %s", dir, head.RevisionID, revision)
	}
	return nil
}

// CommitTime returns the committer time of revision in the checkout at dir.
func (GitFetcher) CommitTime(ctx context.Context, dir, revision string) (time.Time, error) {
	repo, err := OpenGit(dir)
	if err != nil {
		return time.Time{}, err
	}
	return repo.CommitTime(revision)
}
