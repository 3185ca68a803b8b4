package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/thanos-io/objstore"

	"github.com/octris/octodb/octodb"
	"github.com/octris/octodb/octodb/config"
)

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run the cursor over a small in-memory collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDemo(cmd, cmd.OutOrStdout())
		},
	}
}

func runDemo(cmd *cobra.Command, out io.Writer) error {
	ctx := cmd.Context()

	opts := config.DefaultDeviceOptions()
	opts.Log = logger()
	d, err := octodb.OpenWithOptions(ctx, "demo", objstore.NewInMemBucket(), opts)
	if err != nil {
		return err
	}
	defer func() { _ = d.Close(ctx) }()

	users := []octodb.Row{
		octodb.NewRow("id", 1, "name", "alice", "admin", true),
		octodb.NewRow("id", 2, "name", "bob", "admin", false),
		octodb.NewRow("id", 3, "name", "carol", "admin", nil),
	}
	for i, row := range users {
		if err := d.Insert(ctx, "users", fmt.Sprintf("user:%d", i+1), row); err != nil {
			return err
		}
	}

	res, err := d.Select(ctx, "users")
	if err != nil {
		return err
	}
	defer func() { _ = res.Close() }()

	for pass := 1; pass <= 2; pass++ {
		_, _ = fmt.Fprintf(out, "select users, pass %d\n", pass)
		for res.Valid() {
			item, err := res.Current()
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(out, "  %d %s\n", res.Position(), item.MustGet())
			res.Next()
		}
		if err := res.Rewind(); err != nil {
			return err
		}
	}

	id, err := d.Spill(ctx, "users")
	if err != nil {
		return err
	}
	stream, err := d.Stream(ctx, id)
	if err != nil {
		return err
	}
	defer func() { _ = stream.Close() }()

	_, _ = fmt.Fprintf(out, "stream segment %s\n", id)
	for row, err := range stream.All() {
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out, "  %s\n", row)
	}
	if err := stream.Rewind(); errors.Is(err, octodb.ErrUnsupportedOperation) {
		_, _ = fmt.Fprintf(out, "rewind refused: %s\n", err)
	} else if err != nil {
		return err
	}
	return nil
}
