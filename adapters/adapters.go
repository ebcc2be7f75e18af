package adapters

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/kndndrj/dbquery/core"
)

var (
	errNoValidTypeAliases   = errors.New("no valid type aliases provided")
	ErrUnsupportedTypeAlias = errors.New("no driver registered for provided type alias")
)

// registeredAdapters holds implemented adapters - specific adapters register themselves in their init functions.
// The main reason is to be able to compile the binary without unsupported os/arch of specific drivers.
var (
	registeredAdapters = make(map[string]core.Adapter)
	registryMu         sync.RWMutex
)

// register registers a new adapter for specific database
func register(adapter core.Adapter, aliases ...string) error {
	if len(aliases) < 1 {
		return errNoValidTypeAliases
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	invalidCount := 0
	for _, alias := range aliases {
		if alias == "" {
			invalidCount++
			continue
		}
		registeredAdapters[alias] = adapter
	}

	if invalidCount == len(aliases) {
		return errNoValidTypeAliases
	}

	return nil
}

// Mux is an interface to all internal adapters.
type Mux struct{}

func (*Mux) GetAdapter(typ string) (core.Adapter, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	value, ok := registeredAdapters[typ]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedTypeAlias, typ)
	}

	return value, nil
}

func (*Mux) AddAdapter(typ string, adapter core.Adapter) error {
	return register(adapter, typ)
}

// Types lists all registered type aliases in alphabetical order.
func (*Mux) Types() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	types := make([]string, 0, len(registeredAdapters))
	for typ := range registeredAdapters {
		types = append(types, typ)
	}
	sort.Strings(types)

	return types
}

// NewConnection is a wrapper around core.NewConnection that uses the internal mux for
// adapter registration.
func NewConnection(params *core.ConnectionParams) (*core.Connection, error) {
	adapter, err := new(Mux).GetAdapter(params.Expand().Type)
	if err != nil {
		return nil, fmt.Errorf("Mux.GetAdapter: %w", err)
	}

	c, err := core.NewConnection(params, adapter)
	if err != nil {
		return nil, fmt.Errorf("core.NewConnection: %w", err)
	}

	return c, nil
}
