package assetkit

import (
	"reflect"
	"slices"
	"sync"
)

// readerRegistry holds one reader instance per concrete reader type and
// memoizes the reader chosen for each requested type.
type readerRegistry struct {
	mu      sync.RWMutex
	readers []Reader
	byType  map[reflect.Type]Reader

	// onCreate is called, under the registry lock, for every reader the
	// registry constructs itself.
	onCreate func(readerType, forType reflect.Type)
}

func newReaderRegistry(onCreate func(readerType, forType reflect.Type)) *readerRegistry {
	return &readerRegistry{
		byType:   make(map[reflect.Type]Reader),
		onCreate: onCreate,
	}
}

// add registers r, replacing a registered instance of the same concrete type.
func (g *readerRegistry) add(r Reader) {
	if r == nil {
		return
	}
	rt := reflect.TypeOf(r)

	g.mu.Lock()
	defer g.mu.Unlock()

	for i, cur := range g.readers {
		if reflect.TypeOf(cur) == rt {
			g.purgeLocked(cur)
			g.readers[i] = r
			return
		}
	}
	g.readers = append(g.readers, r)
}

// remove unregisters r. It reports whether r was registered.
func (g *readerRegistry) remove(r Reader) bool {
	if r == nil {
		return false
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	for i, cur := range g.readers {
		if sameReader(cur, r) {
			g.readers = slices.Delete(g.readers, i, i+1)
			g.purgeLocked(cur)
			return true
		}
	}
	return false
}

func (g *readerRegistry) purgeLocked(r Reader) {
	for t, cur := range g.byType {
		if sameReader(cur, r) {
			delete(g.byType, t)
		}
	}
}

func (g *readerRegistry) snapshot() []Reader {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return slices.Clone(g.readers)
}

// readerFor returns the reader for the requested type t.
func (g *readerRegistry) readerFor(t reflect.Type) (Reader, error) {
	g.mu.RLock()
	r, ok := g.byType[t]
	g.mu.RUnlock()
	if ok {
		return r, nil
	}

	// Declarations may run user code; keep it outside the lock.
	rt, proto, err := declaredReader(t)
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if r, ok := g.byType[t]; ok {
		return r, nil
	}
	for _, cur := range g.readers {
		if reflect.TypeOf(cur) == rt {
			g.byType[t] = cur
			return cur, nil
		}
	}

	if proto != nil {
		var ok bool
		if r, ok = proto.(Reader); !ok {
			return nil, configError("%v does not implement Reader", rt)
		}
	} else if r, err = newReader(rt); err != nil {
		return nil, err
	}

	g.readers = append(g.readers, r)
	g.byType[t] = r
	if g.onCreate != nil {
		g.onCreate(rt, t)
	}
	return r, nil
}

// sameReader reports whether a and b are the same reader instance.
func sameReader(a, b Reader) bool {
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}
