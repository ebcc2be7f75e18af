package dialect

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

var errNoValidNames = errors.New("no valid dialect names provided")

var (
	registryMu sync.RWMutex
	registry   = make(map[string]*Dialect)
)

// Register adds the dialect under its name and aliases. Later registrations
// overwrite earlier ones.
func Register(d *Dialect) error {
	registryMu.Lock()
	defer registryMu.Unlock()

	names := append([]string{d.Name}, d.Aliases...)

	valid := 0
	for _, name := range names {
		if name == "" {
			continue
		}
		registry[strings.ToLower(name)] = d
		valid++
	}

	if valid == 0 {
		return errNoValidNames
	}
	return nil
}

// Lookup returns a registered dialect by name or alias (case insensitive).
func Lookup(name string) (*Dialect, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	d, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDialect, name)
	}
	return d, nil
}

// Names lists all registered names and aliases.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
