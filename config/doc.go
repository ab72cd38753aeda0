// Package config loads assetkit manager configuration from YAML files.
//
// Example configuration:
//
//	root_directory: content
//	logging:
//	  level: info
//	  format: json
//	resources:
//	  max_concurrent_loads: 8
//	  memory_limit_bytes: 268435456
//	resolvers:
//	  - type: dir
//	    path: ./assets
//	    compressed: true
//	  - type: s3
//	    bucket: game-assets
//	    prefix: content/
//	    cache_bytes: 67108864
//
// Environment variables override file values (see LoadWithEnvOverrides).
package config
