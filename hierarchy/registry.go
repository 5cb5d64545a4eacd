package hierarchy

import (
	"sort"
	"sync"

	"go.uber.org/multierr"
)

// DefaultRepositoryName is the name of the repository backing the
// package-level GetLogger.
const DefaultRepositoryName = "default"

var (
	registryMu   sync.Mutex
	repositories = make(map[string]*Repository)
)

// GetRepository returns the repository registered under name, creating
// an unconfigured one on first request. Repositories are process-wide
// and keyed by name; one per isolated logging domain.
func GetRepository(name string) *Repository {
	registryMu.Lock()
	defer registryMu.Unlock()
	r, ok := repositories[name]
	if !ok {
		r = NewRepository(name)
		repositories[name] = r
	}
	return r
}

// Default returns the default repository. The first call bootstraps
// it, unconfigured; apply a configuration (for example through the
// config package) before events are emitted.
func Default() *Repository {
	return GetRepository(DefaultRepositoryName)
}

// GetLogger returns the named logger from the default repository.
func GetLogger(name string) *Logger {
	return Default().Logger(name)
}

// RepositoryNames returns the names of all registered repositories,
// sorted.
func RepositoryNames() []string {
	registryMu.Lock()
	out := make([]string, 0, len(repositories))
	for name := range repositories {
		out = append(out, name)
	}
	registryMu.Unlock()
	sort.Strings(out)
	return out
}

// ShutdownAll shuts down every registered repository and returns the
// aggregated error. Intended for process teardown.
func ShutdownAll() error {
	registryMu.Lock()
	repos := make([]*Repository, 0, len(repositories))
	for _, r := range repositories {
		repos = append(repos, r)
	}
	registryMu.Unlock()

	var err error
	for _, r := range repos {
		err = multierr.Append(err, r.Shutdown())
	}
	return err
}
