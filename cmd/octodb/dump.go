package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/thanos-io/objstore"
	"github.com/thanos-io/objstore/providers/filesystem"

	"github.com/octris/octodb/internal/compress"
	"github.com/octris/octodb/octodb"
	"github.com/octris/octodb/octodb/config"
)

type dumpFlags struct {
	Path       string
	Collection string
	Spill      bool
	Codec      string
	Segments   string
}

func newDumpCmd() *cobra.Command {
	var flags dumpFlags

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the rows of a collection stored in a bolt file",
		Long: `Print the rows of a collection stored in a bolt file, one per line.
Without --collection every collection is printed.

With --spill the collection is first written to a compressed segment and
the rows are streamed back from it.

Examples:
  octodb dump --path data.db --collection users
  octodb dump --path data.db --collection users --spill --codec zstd --segments /tmp/segments`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDump(cmd, cmd.OutOrStdout(), flags)
		},
	}

	cmd.Flags().StringVar(&flags.Path, "path", "", "Bolt file to read")
	cmd.Flags().StringVarP(&flags.Collection, "collection", "c", "", "Collection to print")
	cmd.Flags().BoolVar(&flags.Spill, "spill", false, "Spill the collection to a segment and stream it back")
	cmd.Flags().StringVar(&flags.Codec, "codec", "snappy", "Segment compression: none, snappy, zlib, lz4 or zstd")
	cmd.Flags().StringVar(&flags.Segments, "segments", "", "Directory for spilled segments (kept in memory when empty)")
	_ = cmd.MarkFlagRequired("path")
	return cmd
}

func runDump(cmd *cobra.Command, out io.Writer, flags dumpFlags) error {
	ctx := cmd.Context()

	if _, err := os.Stat(flags.Path); err != nil {
		return fmt.Errorf("bolt file: %w", err)
	}
	codec, err := compress.ParseCodec(flags.Codec)
	if err != nil {
		return err
	}

	var bucket objstore.Bucket = objstore.NewInMemBucket()
	if flags.Segments != "" {
		if bucket, err = filesystem.NewBucket(filepath.Clean(flags.Segments)); err != nil {
			return fmt.Errorf("while opening segment directory: %w", err)
		}
	}

	opts := config.DefaultDeviceOptions()
	opts.BoltPath = flags.Path
	opts.CompressionCodec = config.CompressionCodec(codec)
	opts.Log = logger()
	d, err := octodb.OpenWithOptions(ctx, "dump", bucket, opts)
	if err != nil {
		return err
	}
	defer func() { _ = d.Close(ctx) }()

	if flags.Spill {
		if flags.Collection == "" {
			return fmt.Errorf("%w: --spill needs --collection", octodb.ErrInvalidArgument)
		}
		id, err := d.Spill(ctx, flags.Collection)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out, "# segment %s\n", id)
		res, err := d.Stream(ctx, id)
		if err != nil {
			return err
		}
		return printRows(out, res)
	}

	if flags.Collection == "" {
		res, err := d.Scan(ctx)
		if err != nil {
			return err
		}
		return printRows(out, res)
	}

	res, err := d.Select(ctx, flags.Collection)
	if err != nil {
		return err
	}
	return octodb.ForEach(res, func(obj *octodb.DataObject) error {
		_, err := fmt.Fprintln(out, obj)
		return err
	})
}

func printRows(out io.Writer, res *octodb.Result[octodb.Row]) error {
	err := octodb.ForEach(res, func(row octodb.Row) error {
		_, err := fmt.Fprintln(out, row)
		return err
	})
	if err != nil {
		return err
	}
	// Rows a broken engine could not produce are reported, not fatal.
	if warn := res.Warnings(); warn.Len() > 0 {
		_, _ = fmt.Fprintf(out, "# %s\n", warn)
	}
	return nil
}
