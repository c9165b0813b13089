package schema

import "sync"

// Ids of the catalog entries callers address directly.
const (
	PC77       = "7-7"
	ANSI       = "ANSI 8-8-8"
	Japanese   = "Japanese 7-4-5"
	Chinese    = "Chinese 8-8-8"
	Russian    = "Russian 5-8-11"
	Brazilian  = "Brazilian 3-8-5"
	ITU383     = "3-8-3"
	DefaultExt = ANSI
)

type entry struct {
	schema Schema
	bits   int
}

func catalog() []entry {
	return []entry{
		{MustNew(PC77, "7-7 (ITU-T)", 7, 7).WithAliases("pc77"), Width14},
		{MustNew("6-8", "6-8", 6, 8), Width14},
		{MustNew("5-9", "5-9", 5, 9), Width14},
		{MustNew("8-6", "8-6", 8, 6), Width14},
		{MustNew("9-5", "9-5", 9, 5), Width14},
		{MustNew("4-3-7", "4-3-7", 4, 3, 7), Width14},
		{MustNew(ITU383, "3-8-3 (ITU-T)", 3, 8, 3), Width14},
		{MustNew("4-3-4-3", "4-3-4-3", 4, 3, 4, 3), Width14},
		{MustNew("4-4-6", "4-4-6", 4, 4, 6), Width14},

		{MustNew(ANSI, "ANSI (8-8-8)", 8, 8, 8).
			WithDescription("North America: Network-Cluster-Member").
			WithAliases("8-8-8"), Width24},
		{MustNew(Japanese, "Japanese (7-4-5)", 7, 4, 5).
			WithDescription("Japan Variant").
			WithAliases("7-4-5"), Width16},
		{MustNew(Chinese, "Chinese (8-8-8)", 8, 8, 8).
			WithDescription("China Variant: Network-Cluster-Member").
			WithAliases("8-8-8-cn"), Width24},
		{MustNew(Russian, "Russian (5-8-11)", 5, 8, 11).
			WithDescription("Russia: Zone-Area-ID").
			WithAliases("5-8-11"), Width24},
		{MustNew(Brazilian, "Brazilian (3-8-5)", 3, 8, 5).
			WithDescription("Brazil Variant").
			WithAliases("3-8-5"), Width16},
	}
}

// Build registers the standard catalog into a fresh, sealed registry.
func Build() (*Registry, error) {
	r := NewRegistry()
	for _, e := range catalog() {
		if err := r.Register(e.schema, e.bits); err != nil {
			return nil, err
		}
	}
	r.Seal()
	return r, nil
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	r, err := Build()
	if err != nil {
		panic(err)
	}
	return r
})

// Default returns the process-wide standard catalog. It is built on first
// use and never mutated afterwards.
func Default() *Registry {
	return defaultRegistry()
}
