package builders

import "strings"

type clientConfig struct {
	typeProcessors map[string]func(any) any
}

type ClientOption func(*clientConfig)

// WithCustomTypeProcessor replaces the default value normalization for
// columns of the given database type name (case insensitive). The first
// processor registered for a type wins.
func WithCustomTypeProcessor(typ string, fn func(any) any) ClientOption {
	return func(cc *clientConfig) {
		t := strings.ToLower(typ)
		_, ok := cc.typeProcessors[t]
		if ok {
			// processor already registered for this type
			return
		}

		cc.typeProcessors[t] = fn
	}
}

// WithStringTypes renders values of the given database types as strings.
// Drivers that hand out byte slices for text-like types (uuid, xml) use it.
func WithStringTypes(types ...string) ClientOption {
	return func(cc *clientConfig) {
		for _, typ := range types {
			WithCustomTypeProcessor(typ, bytesToString)(cc)
		}
	}
}

func bytesToString(val any) any {
	if b, ok := val.([]byte); ok {
		return string(b)
	}
	return val
}
