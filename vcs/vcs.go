// Package vcs implements functions for interacting with version control
// systems: identifying the checkout a manifest lives in, and materializing
// imported suites at their pinned revisions.
package vcs

import (
	"errors"

	"github.com/fossas/mxsuite/files"
)

var (
	// ErrNoNearestVCS is returned by Nearest when no ancestor is a checkout.
	ErrNoNearestVCS = errors.New("could not find nearest VCS repository in ancestor directories")
	// ErrRevisionNotFound is returned when a repository does not contain a
	// requested revision.
	ErrRevisionNotFound = errors.New("revision not found in repository")
)

// Nearest returns the type and root directory of the checkout closest to dirname.
func Nearest(dirname string) (VCS, string, error) {
	var found VCS
	dir, err := files.WalkUp(dirname, func(d string) error {
		for _, v := range Types {
			ok, err := files.ExistsFolder(d, MetadataFolder(v))
			if err != nil {
				return err
			}
			if ok {
				found = v
				return files.ErrStopWalk
			}
		}
		return nil
	})
	if err == files.ErrDirNotFound {
		return None, "", ErrNoNearestVCS
	}
	if err != nil {
		return None, "", err
	}
	return found, dir, nil
}

// HeadRevision returns the revision checked out in the nearest checkout of dirname.
func HeadRevision(dirname string) (string, error) {
	v, dir, err := Nearest(dirname)
	if err != nil {
		return "", err
	}
	switch v {
	case Git:
		repo, err := OpenGit(dir)
		if err != nil {
			return "", err
		}
		head, err := repo.Head()
		if err != nil {
			return "", err
		}
		return head.RevisionID, nil
	default:
		return "", ErrNoNearestVCS
	}
}
