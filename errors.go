package assetkit

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/hupe1980/assetkit/resolver"
)

var (
	// ErrConfiguration is returned when the manager is not set up to serve a
	// request: no resolver is registered, a declared reader type does not
	// implement Reader, or the root directory changes while assets are cached.
	ErrConfiguration = errors.New("assetkit: configuration error")

	// ErrAssetNotFound matches *AssetNotFoundError.
	ErrAssetNotFound = errors.New("assetkit: asset not found")

	// ErrUnsupportedType matches *UnsupportedTypeError and *TypeMismatchError.
	ErrUnsupportedType = errors.New("assetkit: unsupported type")

	// ErrClosed is returned by loads on a closed Manager.
	ErrClosed = errors.New("assetkit: manager closed")
)

// AssetNotFoundError indicates that no resolver produced a stream for an asset.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type AssetNotFoundError struct {
	Name  string
	Path  string
	cause error
}

func (e *AssetNotFoundError) Error() string {
	return fmt.Sprintf("assetkit: asset %q not found (path %q)", e.Name, e.Path)
}

func (e *AssetNotFoundError) Is(target error) bool { return target == ErrAssetNotFound }

func (e *AssetNotFoundError) Unwrap() error { return e.cause }

// UnsupportedTypeError indicates that no reader is declared for Type, or that
// the declared reader produced no value.
type UnsupportedTypeError struct {
	Type   reflect.Type
	Reason string
}

func (e *UnsupportedTypeError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("assetkit: unsupported type %v: %s", e.Type, e.Reason)
	}
	return fmt.Sprintf("assetkit: unsupported type %v", e.Type)
}

func (e *UnsupportedTypeError) Is(target error) bool { return target == ErrUnsupportedType }

// TypeMismatchError indicates that the value for an asset is not assignable to
// the requested type.
type TypeMismatchError struct {
	Name string
	Want reflect.Type
	Got  reflect.Type
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("assetkit: asset %q is %v, not %v", e.Name, e.Got, e.Want)
}

func (e *TypeMismatchError) Is(target error) bool { return target == ErrUnsupportedType }

func configError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}

// translateError maps resolver errors onto the public taxonomy.
func translateError(name, path string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, resolver.ErrNoResolver) {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	if errors.Is(err, resolver.ErrNotFound) {
		return &AssetNotFoundError{Name: name, Path: path, cause: err}
	}

	return err
}
