// Package discovery locates git repositories beneath filesystem roots.
package discovery

import (
	"io/fs"
	"path/filepath"
	"sort"
)

const repositoryMarkerNameConstant = ".git"

// FilesystemRepositoryDiscoverer locates git repositories on disk.
type FilesystemRepositoryDiscoverer struct{}

// NewFilesystemRepositoryDiscoverer constructs a repository discoverer backed by filepath.WalkDir.
func NewFilesystemRepositoryDiscoverer() *FilesystemRepositoryDiscoverer {
	return &FilesystemRepositoryDiscoverer{}
}

// DiscoverRepositories walks the provided roots and returns every directory
// holding a .git entry, sorted and deduplicated across overlapping roots.
// Worktree checkouts keep a .git file instead of a directory; both forms are
// reported. Unreadable paths are skipped rather than aborting the walk.
func (discoverer *FilesystemRepositoryDiscoverer) DiscoverRepositories(rootDirectories []string) ([]string, error) {
	seenRepositories := make(map[string]struct{})
	discoveredRepositories := []string{}

	for _, rootDirectory := range rootDirectories {
		walkError := discoverer.discoverSingleRoot(rootDirectory, seenRepositories, &discoveredRepositories)
		if walkError != nil {
			return nil, walkError
		}
	}

	sort.Strings(discoveredRepositories)
	return discoveredRepositories, nil
}

func (discoverer *FilesystemRepositoryDiscoverer) discoverSingleRoot(rootDirectory string, seenRepositories map[string]struct{}, discoveredRepositories *[]string) error {
	return filepath.WalkDir(rootDirectory, func(currentPath string, directoryEntry fs.DirEntry, walkError error) error {
		if walkError != nil {
			return nil
		}
		if directoryEntry.Name() != repositoryMarkerNameConstant {
			return nil
		}

		repositoryPath := filepath.Dir(currentPath)
		if _, alreadySeen := seenRepositories[repositoryPath]; !alreadySeen {
			seenRepositories[repositoryPath] = struct{}{}
			*discoveredRepositories = append(*discoveredRepositories, repositoryPath)
		}

		if directoryEntry.IsDir() {
			return fs.SkipDir
		}
		return nil
	})
}
