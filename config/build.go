package config

import (
	"context"
	"fmt"
	"log/slog"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/hupe1980/assetkit"
	"github.com/hupe1980/assetkit/resolver"
	ddbresolver "github.com/hupe1980/assetkit/resolver/dynamodb"
	minioresolver "github.com/hupe1980/assetkit/resolver/minio"
	s3resolver "github.com/hupe1980/assetkit/resolver/s3"
	"github.com/hupe1980/assetkit/resource"
)

// Options translates the configuration into manager options. Remote
// resolvers are created with ctx.
func (c *Config) Options(ctx context.Context) ([]assetkit.Option, error) {
	logger, err := c.Logger()
	if err != nil {
		return nil, err
	}

	rc := c.ResourceController()

	resolvers, err := c.BuildResolvers(ctx, rc)
	if err != nil {
		return nil, err
	}

	return []assetkit.Option{
		assetkit.WithRootDirectory(c.RootDirectory),
		assetkit.WithResolvers(resolvers...),
		assetkit.WithResourceController(rc),
		assetkit.WithLogger(logger),
		assetkit.WithPreloadConcurrency(c.PreloadConcurrency),
	}, nil
}

// Logger creates the configured logger.
func (c *Config) Logger() (*assetkit.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Logging.Level)); err != nil {
		return nil, fmt.Errorf("logging.level: %w", err)
	}
	if c.Logging.Format == "json" {
		return assetkit.NewJSONLogger(level), nil
	}
	return assetkit.NewTextLogger(level), nil
}

// ResourceController returns a controller for the configured limits, or nil
// if no limit is set.
func (c *Config) ResourceController() *resource.Controller {
	r := c.Resources
	if r == (ResourcesConfig{}) {
		return nil
	}
	return resource.NewController(resource.Config{
		MemoryLimitBytes:   r.MemoryLimitBytes,
		MaxConcurrentLoads: r.MaxConcurrentLoads,
		IOLimitBytesPerSec: r.IOLimitBytesPerSec,
	})
}

// BuildResolvers creates the resolver chain in configuration order.
func (c *Config) BuildResolvers(ctx context.Context, rc *resource.Controller) ([]resolver.Resolver, error) {
	out := make([]resolver.Resolver, 0, len(c.Resolvers))
	for i, rcfg := range c.Resolvers {
		r, err := buildResolver(ctx, rcfg)
		if err != nil {
			return nil, fmt.Errorf("resolvers[%d] (%s): %w", i, rcfg.Type, err)
		}
		if rcfg.Compressed {
			r = resolver.NewCompressed(r)
		}
		if rcfg.CacheBytes > 0 {
			r = resolver.NewCaching(r, rcfg.CacheBytes, rc)
		}
		out = append(out, r)
	}
	return out, nil
}

func buildResolver(ctx context.Context, c ResolverConfig) (resolver.Resolver, error) {
	switch c.Type {
	case ResolverDir:
		return resolver.NewDir(c.Path), nil

	case ResolverS3:
		var opts []s3resolver.Option
		if c.Prefix != "" {
			opts = append(opts, s3resolver.WithPrefix(c.Prefix))
		}
		if c.Region != "" {
			opts = append(opts, s3resolver.WithRegion(c.Region))
		}
		if c.Endpoint != "" {
			opts = append(opts, s3resolver.WithEndpoint(c.Endpoint))
		}
		return s3resolver.New(ctx, c.Bucket, opts...)

	case ResolverMinIO:
		client, err := minio.New(c.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(c.AccessKey, c.SecretKey, ""),
			Secure: c.Secure,
		})
		if err != nil {
			return nil, err
		}
		return minioresolver.NewResolver(client, c.Bucket, c.Prefix), nil

	case ResolverDynamoDB:
		var loadOpts []func(*awsconfig.LoadOptions) error
		if c.Region != "" {
			loadOpts = append(loadOpts, awsconfig.WithRegion(c.Region))
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
		if err != nil {
			return nil, err
		}
		return ddbresolver.NewResolver(dynamodb.NewFromConfig(awsCfg), c.Table, ddbresolver.WithPrefix(c.Prefix)), nil

	default:
		return nil, fmt.Errorf("unknown resolver type %q", c.Type)
	}
}
