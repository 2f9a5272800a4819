package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/danmuck/wirepack/internal/objects"
	"github.com/danmuck/wirepack/packer"
)

func runDump(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("dump", flag.ContinueOnError)
	out := fs.String("out", "", "also write the raw encoding to this file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	objs := objects.Sample()
	buf, err := objects.ObjectsPacker.Pack(objs)
	if err != nil {
		return fmt.Errorf("pack sample: %w", err)
	}
	if err := objects.Fprint(stdout, objs); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "\n%d bytes\n%s", len(buf), hex.Dump(buf))

	if *out == "" {
		return nil
	}
	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("dump: %w", err)
	}
	defer f.Close()
	if err := packer.Write[[]objects.Object](f, objects.ObjectsPacker, objs); err != nil {
		return fmt.Errorf("dump %s: %w", *out, err)
	}
	return f.Close()
}
