package vcs

import (
	"context"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/fossas/mxsuite/exec"
)

// MercurialFetcher materializes hg imports by running the Mercurial binary.
type MercurialFetcher struct {
	// Binary overrides the `hg` executable. $HG_BINARY is consulted otherwise.
	Binary string
}

// Kind returns the import URL kind handled by the fetcher.
func (MercurialFetcher) Kind() string {
	return "hg"
}

func (m MercurialFetcher) binary(ctx context.Context) (string, error) {
	cmd, _, err := exec.Which(ctx, "--version", m.Binary, os.Getenv("HG_BINARY"), "hg")
	if err != nil {
		return "", errors.Wrap(err, "could not find Mercurial binary")
	}
	return cmd, nil
}

func (m MercurialFetcher) run(ctx context.Context, dir string, argv ...string) (string, error) {
	cmd, err := m.binary(ctx)
	if err != nil {
		return "", err
	}
	stdout, stderr, err := exec.Run(ctx, exec.Cmd{
		Name: cmd,
		Argv: argv,
		Dir:  dir,
	})
	if err != nil {
		return "", errors.Wrapf(err, "could not run `%s %s`: %s", cmd, strings.Join(argv, " "), strings.TrimSpace(stderr))
	}
	return strings.TrimSpace(stdout), nil
}

// Fetch clones url into dir and updates the working copy to revision.
func (m MercurialFetcher) Fetch(ctx context.Context, url, revision, dir string) error {
	if _, err := m.run(ctx, "", "clone", "--noupdate", url, dir); err != nil {
		return err
	}
	if _, err := m.run(ctx, dir, "update", "--clean", "-r", revision); err != nil {
		return errors.Wrapf(ErrRevisionNotFound, "%s in %s: %s", revision, url, err)
	}
	return nil
}

// Verify checks that the working copy at dir is at revision.
func (m MercurialFetcher) Verify(ctx context.Context, dir, revision string) error {
	node, err := m.run(ctx, dir, "log", "-l", "1", "-r", ".", "--template", "{node}")
	if err != nil {
		return err
	}
	if !strings.EqualFold(node, revision) {
		return errors.Errorf("checkout %s is at %s, not at the pinned revision %s", dir, node, revision)
	}
	return nil
}

// CommitTime returns the commit time of revision in the working copy at dir.
func (m MercurialFetcher) CommitTime(ctx context.Context, dir, revision string) (time.Time, error) {
	out, err := m.run(ctx, dir, "log", "-r", revision, "--template", "{date|hgdate}")
	if err != nil {
		return time.Time{}, err
	}
	return parseHgDate(out)
}

// parseHgDate parses the `hgdate` template output: unix seconds followed by
// the timezone offset in seconds west of UTC.
func parseHgDate(s string) (time.Time, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return time.Time{}, errors.Errorf("unexpected hgdate %q", s)
	}
	secs, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "unexpected hgdate %q", s)
	}
	offset, err := strconv.Atoi(fields[1])
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "unexpected hgdate %q", s)
	}
	return time.Unix(secs, 0).In(time.FixedZone("", -offset)), nil
}
