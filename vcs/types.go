package vcs

// VCS represents a type of version control system.
type VCS int

const (
	_ VCS = iota
	Git
	Mercurial
	None
)

// Types has the VCS types that are identifiable by walking a directory tree.
var Types = [2]VCS{
	Git,
	Mercurial,
}

// MetadataFolder returns the folder a checkout of vcs keeps its metadata in.
func MetadataFolder(vcs VCS) string {
	switch vcs {
	case Git:
		return ".git"
	case Mercurial:
		return ".hg"
	default:
		return ""
	}
}

func (v VCS) String() string {
	switch v {
	case Git:
		return "git"
	case Mercurial:
		return "hg"
	default:
		return "none"
	}
}

// A Revision identifies the checked out state of a repository.
type Revision struct {
	Branch     string
	RevisionID string
}
