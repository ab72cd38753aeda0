// Package minio provides a MinIO (and S3-compatible) implementation of
// resolver.Resolver.
//
// # Usage
//
//	client, _ := minio.New("localhost:9000", &minio.Options{
//	    Creds:  credentials.NewStaticV4("access", "secret", ""),
//	    Secure: false,
//	})
//	r := assetminio.NewResolver(client, "game-assets", "content/")
//
// Existence is checked with StatObject; streams are returned as the
// *minio.Object itself so reads are not buffered in memory.
package minio
