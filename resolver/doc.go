// Package resolver locates the raw byte streams behind asset paths.
//
// A Resolver answers two questions for a slash-separated path: does the path
// exist, and if so, what are its bytes. Resolvers are combined into a Chain
// that asks each one in registration order; the first resolver that produces a
// stream wins.
//
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - Dir: local directory, memory-mapped streams
//   - FS: any io/fs.FS (embed.FS, fstest.MapFS, ...)
//   - Memory: in-memory map, useful for tests and generated content
//   - Caching: keeps resolved bytes of another resolver in a sharded LRU
//   - Compressed: transparently decodes "<path>.zst" and "<path>.lz4" siblings
//   - s3.Resolver, minio.Resolver, dynamodb.Resolver: remote backends
//
// # Custom Implementations
//
//	type Resolver interface {
//	    Exists(ctx, path) (bool, error)
//	    Resolve(ctx, path) (io.ReadCloser, error) // ErrNotFound if absent
//	}
package resolver
