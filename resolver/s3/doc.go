// Package s3 provides an Amazon S3 implementation of resolver.Resolver.
//
// # Usage
//
//	r, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("content/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
//	m := assetkit.New(assetkit.WithResolvers(r))
//
// # Features
//
//   - HeadObject existence checks
//   - Concurrent ranged downloads via the S3 transfer manager
//   - Configurable prefix for multi-tenant isolation
//   - Custom endpoints for S3-compatible services
package s3
