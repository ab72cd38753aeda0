package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/hupe1980/assetkit"
	"github.com/hupe1980/assetkit/codec"
	"github.com/hupe1980/assetkit/config"
	"github.com/hupe1980/assetkit/reader"
	"github.com/hupe1980/assetkit/resolver"
)

type jsonDocument map[string]any

type yamlDocument map[string]any

func init() {
	assetkit.Declare[jsonDocument, reader.JSON[jsonDocument]]()
	assetkit.Declare[yamlDocument, reader.YAML[yamlDocument]]()
}

type settings struct {
	configPath string
	dir        string
	root       string
	verbose    bool
	stats      bool
}

// RootCommand creates and returns the root command.
func RootCommand() *cobra.Command {
	s := &settings{}

	rootCmd := &cobra.Command{
		Use:           "assetctl",
		Short:         "Inspect and load assets",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&s.configPath, "config", "c", "", "YAML configuration file")
	rootCmd.PersistentFlags().StringVarP(&s.dir, "dir", "d", ".", "Asset directory when no configuration file is given")
	rootCmd.PersistentFlags().StringVar(&s.root, "root", "", "Root directory prepended to asset names")
	rootCmd.PersistentFlags().BoolVarP(&s.verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&s.stats, "stats", false, "Print load statistics when done")

	rootCmd.AddCommand(
		existsCommand(s),
		loadCommand(s),
	)

	return rootCmd
}

// newManager builds a manager from the configuration file, or from --dir.
func newManager(ctx context.Context, s *settings, metrics assetkit.MetricsCollector) (*assetkit.Manager, error) {
	var opts []assetkit.Option

	if s.configPath != "" {
		cfg, err := config.LoadWithEnvOverrides(s.configPath)
		if err != nil {
			return nil, err
		}
		if opts, err = cfg.Options(ctx); err != nil {
			return nil, err
		}
	} else {
		opts = append(opts, assetkit.WithResolvers(resolver.NewCompressed(resolver.NewDir(s.dir))))
	}

	if s.root != "" {
		opts = append(opts, assetkit.WithRootDirectory(s.root))
	}
	if s.verbose {
		opts = append(opts, assetkit.WithLogLevel(slog.LevelDebug))
	}
	opts = append(opts, assetkit.WithMetricsCollector(metrics))

	return assetkit.New(opts...), nil
}

func existsCommand(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "exists NAME...",
		Short: "Report whether assets can be resolved",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := newManager(cmd.Context(), s, nil)
			if err != nil {
				return err
			}
			defer m.Close()

			for _, name := range args {
				ok, err := m.Exists(cmd.Context(), name)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%t\n", name, ok)
			}
			return nil
		},
	}
}

func loadCommand(s *settings) *cobra.Command {
	var as string

	cmd := &cobra.Command{
		Use:   "load NAME...",
		Short: "Load assets and print a summary of each",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			metrics := &assetkit.BasicMetricsCollector{}
			m, err := newManager(cmd.Context(), s, metrics)
			if err != nil {
				return err
			}
			defer m.Close()

			out := cmd.OutOrStdout()
			for _, name := range args {
				if err := loadAndDescribe(cmd.Context(), out, m, name, as); err != nil {
					return fmt.Errorf("%s: %w", name, err)
				}
			}

			if s.stats {
				st := metrics.GetStats()
				fmt.Fprintf(out, "loads=%d errors=%d hits=%d avg=%dns\n",
					st.LoadCount, st.LoadErrors, st.CacheHits, st.LoadAvgNanos)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&as, "as", "raw", "Decode as raw, text, clip, mask, json or yaml")

	return cmd
}

func loadAndDescribe(ctx context.Context, out io.Writer, m *assetkit.Manager, name, as string) error {
	switch as {
	case "raw":
		b, err := assetkit.Load[[]byte](ctx, m, name)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s\t%d bytes\n", name, len(b))

	case "text":
		txt, err := assetkit.Load[string](ctx, m, name)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, txt)

	case "clip":
		c, err := assetkit.Load[*reader.Clip](ctx, m, name)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s\t%s %d Hz %d ch %d bit %s\n",
			name, c.Format, c.SampleRate, c.Channels, c.BitDepth, c.Duration())

	case "mask":
		mask, err := assetkit.Load[*reader.Mask](ctx, m, name)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s\t%d cells\n", name, mask.Cardinality())

	case "json":
		doc, err := assetkit.Load[jsonDocument](ctx, m, name)
		if err != nil {
			return err
		}
		return printDocument(out, doc)

	case "yaml":
		doc, err := assetkit.Load[yamlDocument](ctx, m, name)
		if err != nil {
			return err
		}
		return printDocument(out, doc)

	default:
		return fmt.Errorf("unknown decoder %q", as)
	}
	return nil
}

func printDocument(out io.Writer, doc map[string]any) error {
	b, err := codec.GoJSON{}.Marshal(doc)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(b))
	return err
}
