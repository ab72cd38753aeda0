package assetkit

import (
	"context"
	"io"
	"reflect"
	"sync"
)

// Reader decodes a resolved stream into a value of the requested type.
//
// One instance serves every load of the types that declare it, possibly from
// several goroutines at once, so implementations must be safe for concurrent
// use.
type Reader interface {
	ReadContent(ctx context.Context, m *Manager, p *ReadParams) (any, error)
}

// ReadParams carries the inputs of a single decode.
type ReadParams struct {
	// Name is the asset name as passed to Load.
	Name string
	// Path is the resolved path (root directory joined with Name).
	Path string
	// Type is the requested type.
	Type reflect.Type
	// Stream is the resolved byte stream. A reader that sets KeepStreamOpen
	// owns it and must close it.
	Stream io.ReadCloser
	// Options are the caller's read options (see WithReadOptions).
	Options any
	// KeepStreamOpen transfers ownership of Stream to the reader when set.
	// Otherwise the manager closes the stream once ReadContent returns.
	KeepStreamOpen bool
}

// ReaderDeclarer is implemented by asset types that name their reader.
// The dynamic type of the returned value is the reader type; the value itself
// is used as the instance if no reader of that type is registered.
type ReaderDeclarer interface {
	ContentReader() any
}

// Sizer is implemented by values that report their resident size. Sizes are
// charged against the resource controller's memory limit while cached.
type Sizer interface {
	SizeBytes() int64
}

var declarations sync.Map // reflect.Type -> reflect.Type

// Declare associates the asset type T with the reader type R for all managers.
// A later declaration for the same T replaces the earlier one.
func Declare[T any, R Reader]() {
	declarations.Store(reflect.TypeFor[T](), reflect.TypeFor[R]())
}

var (
	readerType   = reflect.TypeFor[Reader]()
	declarerType = reflect.TypeFor[ReaderDeclarer]()
)

// declaredReader returns the reader type declared for t and, for method
// declarations, the prototype instance.
func declaredReader(t reflect.Type) (reflect.Type, any, error) {
	if rt, ok := declarations.Load(t); ok {
		return rt.(reflect.Type), nil, nil
	}

	d, ok := declarer(t)
	if !ok {
		return nil, nil, &UnsupportedTypeError{Type: t, Reason: "no reader declared"}
	}
	proto := d.ContentReader()
	if proto == nil {
		return nil, nil, configError("%v declares a nil reader", t)
	}
	return reflect.TypeOf(proto), proto, nil
}

func declarer(t reflect.Type) (ReaderDeclarer, bool) {
	switch {
	case t.Kind() == reflect.Interface:
		return nil, false
	case t.Kind() == reflect.Pointer && t.Implements(declarerType):
		return reflect.New(t.Elem()).Interface().(ReaderDeclarer), true
	case t.Implements(declarerType):
		return reflect.Zero(t).Interface().(ReaderDeclarer), true
	case reflect.PointerTo(t).Implements(declarerType):
		return reflect.New(t).Interface().(ReaderDeclarer), true
	}
	return nil, false
}

// newReader default-constructs a reader of type rt.
func newReader(rt reflect.Type) (Reader, error) {
	if rt.Kind() == reflect.Interface || !rt.Implements(readerType) {
		return nil, configError("%v is not a concrete Reader", rt)
	}
	var v reflect.Value
	if rt.Kind() == reflect.Pointer {
		v = reflect.New(rt.Elem())
	} else {
		v = reflect.Zero(rt)
	}
	return v.Interface().(Reader), nil
}
