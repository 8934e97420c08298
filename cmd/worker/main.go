// The worker runs the batch pipelines against the spatial store:
// feature imports, the address to network link step, persistent-store
// conflation and provider consensus.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/street-conflate/app/config"
	"github.com/street-conflate/internal/conflate"
	"github.com/street-conflate/internal/consensus"
	"github.com/street-conflate/internal/store"
	"github.com/street-conflate/internal/stream"
	"github.com/street-conflate/internal/types"
)

type worker struct {
	logger *zap.Logger
	ctx    *types.Context
	store  *store.Store
}

func main() {
	var (
		configPath string
		errorsPath string
	)

	root := &cobra.Command{
		Use:           "worker",
		Short:         "Batch pipelines for address conflation, linking and consensus",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "config/pipeline.yaml", "pipeline configuration file")
	root.PersistentFlags().StringVar(&errorsPath, "errors", "", "per-feature rejection sink")

	setup := func(cmd *cobra.Command) (*worker, error) {
		if err := config.Load(configPath); err != nil {
			return nil, fmt.Errorf("load config %s: %w", configPath, err)
		}

		logger, err := zap.NewProduction()
		if err != nil {
			return nil, err
		}

		ctx, err := types.BuildContext(types.InputContext{
			Country:   config.C.Context.Country,
			Region:    config.C.Context.Region,
			Languages: config.C.Context.Languages,
		})
		if err != nil {
			return nil, err
		}

		st, err := store.New(cmd.Context(), config.C.DB, logger)
		if err != nil {
			return nil, err
		}

		return &worker{logger: logger, ctx: ctx, store: st}, nil
	}

	errorSink := func() (io.Writer, func(), error) {
		if errorsPath == "" {
			return nil, func() {}, nil
		}
		f, err := os.Create(errorsPath)
		if err != nil {
			return nil, nil, err
		}
		return f, func() { f.Close() }, nil
	}

	openInput := func(path string) (io.Reader, func(), error) {
		if path == "" || path == "-" {
			return os.Stdin, func() {}, nil
		}
		f, err := os.Open(path)
		if err != nil {
			return nil, nil, err
		}
		return f, func() { f.Close() }, nil
	}

	importAddr := &cobra.Command{
		Use:   "import-addr [input.geojson]",
		Short: "Import address features into the store",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := setup(cmd)
			if err != nil {
				return err
			}
			defer w.close()

			input, closeInput, err := openInput(first(args))
			if err != nil {
				return err
			}
			defer closeInput()

			sink, closeSink, err := errorSink()
			if err != nil {
				return err
			}
			defer closeSink()

			if err := w.store.CreateAddressTable(cmd.Context()); err != nil {
				return err
			}
			addrs := stream.NewAddrStream(stream.NewGeoStream(input), w.ctx, sink, w.logger)
			if _, err := w.store.ImportAddresses(cmd.Context(), addrs); err != nil {
				return err
			}
			if err := w.store.SeqAddressIDs(cmd.Context()); err != nil {
				return err
			}
			return w.store.IndexAddresses(cmd.Context())
		},
	}

	importNet := &cobra.Command{
		Use:   "import-net [input.geojson]",
		Short: "Import street network features into the store",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := setup(cmd)
			if err != nil {
				return err
			}
			defer w.close()

			input, closeInput, err := openInput(first(args))
			if err != nil {
				return err
			}
			defer closeInput()

			sink, closeSink, err := errorSink()
			if err != nil {
				return err
			}
			defer closeSink()

			if err := w.store.CreateNetworkTable(cmd.Context()); err != nil {
				return err
			}
			nets := stream.NewNetStream(stream.NewGeoStream(input), w.ctx, sink, w.logger)
			if _, err := w.store.ImportNetworks(cmd.Context(), nets); err != nil {
				return err
			}
			if err := w.store.SeqNetworkIDs(cmd.Context()); err != nil {
				return err
			}
			return w.store.IndexNetworks(cmd.Context())
		},
	}

	link := &cobra.Command{
		Use:   "link",
		Short: "Associate each address with its matching network",
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := setup(cmd)
			if err != nil {
				return err
			}
			defer w.close()

			return w.store.LinkAddresses(cmd.Context(), store.LinkOptions{
				Workers:   config.C.Link.Workers,
				Window:    config.C.Link.Window,
				RadiusDeg: config.C.Link.RadiusDeg,
				TopK:      config.C.Link.TopK,
			})
		},
	}

	conflateCmd := &cobra.Command{
		Use:   "conflate [input.geojson]",
		Short: "Conflate incoming addresses against the persistent store",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := setup(cmd)
			if err != nil {
				return err
			}
			defer w.close()

			input, closeInput, err := openInput(first(args))
			if err != nil {
				return err
			}
			defer closeInput()

			sink, closeSink, err := errorSink()
			if err != nil {
				return err
			}
			defer closeSink()

			addrs := stream.NewAddrStream(stream.NewGeoStream(input), w.ctx, sink, w.logger)
			return conflate.Run(cmd.Context(), w.store, addrs, os.Stdout, conflate.Options{
				RadiusDeg: config.C.Conflate.RadiusDeg,
				Generated: config.C.Conflate.Generated,
			}, w.logger)
		},
	}

	var consensusSources []string
	consensusCmd := &cobra.Command{
		Use:   "consensus [test-set.geojson]",
		Short: "Score provider agreement against a test set",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := setup(cmd)
			if err != nil {
				return err
			}
			defer w.close()

			input, closeInput, err := openInput(first(args))
			if err != nil {
				return err
			}
			defer closeInput()

			sink, closeSink, err := errorSink()
			if err != nil {
				return err
			}
			defer closeSink()

			testSet := stream.NewAddrStream(stream.NewGeoStream(input), w.ctx, sink, w.logger)
			results, err := consensus.Run(cmd.Context(), w.store, testSet, consensus.Options{
				Sources:   consensusSources,
				Threshold: config.C.Consensus.ThresholdMeters,
				RadiusDeg: config.C.Consensus.RadiusDeg,
			}, w.logger)
			if err != nil {
				return err
			}
			return json.NewEncoder(os.Stdout).Encode(results)
		},
	}
	consensusCmd.Flags().StringSliceVar(&consensusSources, "sources", nil, "provider sources to score")

	root.AddCommand(importAddr, importNet, link, conflateCmd, consensusCmd)

	if err := root.ExecuteContext(context.Background()); err != nil {
		log.Fatal(err)
	}
}

func (w *worker) close() {
	w.store.Close()
	w.logger.Sync()
}

func first(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
