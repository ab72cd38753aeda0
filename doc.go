// Package assetkit provides a concurrency-safe, lazily populated asset content
// manager.
//
// A Manager resolves named assets into typed values. Raw bytes are located by
// an ordered chain of resolvers (see package resolver) and decoded by readers
// selected from the requested Go type. Decoded values are cached by name until
// they are unloaded.
//
// # Quick Start
//
//	m := assetkit.New(
//	    assetkit.WithRootDirectory("content"),
//	    assetkit.WithResolvers(resolver.NewDir("./game")),
//	)
//	defer m.Close()
//
//	clip, err := assetkit.Load[*reader.Clip](ctx, m, "sfx/jump.wav")
//
// # Declaring Readers
//
// The reader for a type is declared once, either with Declare:
//
//	assetkit.Declare[*Texture, *TextureReader]()
//
// or by the type itself:
//
//	func (*Texture) ContentReader() any { return &TextureReader{} }
//
// Readers are instantiated on first use and reused afterwards. A reader added
// with AddReader takes precedence over a default-constructed one of the same
// type.
//
// # Concurrency
//
// Loads of different names run in parallel. Concurrent loads of the same name
// collapse into a single resolve and decode; the other callers wait and then
// observe the cached value. UnloadAll takes no per-name locks and must not run
// concurrently with other operations on the same Manager.
//
// # Names
//
// Asset names are case-insensitive. The resolve path is the root directory
// joined with the name; the cache key is the case-folded name alone.
package assetkit
