package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"

	"github.com/danmuck/wirepack/internal/config"
	"github.com/danmuck/wirepack/internal/objects"
	"github.com/danmuck/wirepack/internal/testutil/testlog"
)

func TestRunRejectsUnknownCommand(t *testing.T) {
	var out bytes.Buffer
	if err := run(context.Background(), nil, &out); !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("expected flag.ErrHelp, got %v", err)
	}
	if !strings.Contains(out.String(), "usage: packctl") {
		t.Fatalf("expected usage output, got %q", out.String())
	}
	if err := run(context.Background(), []string{"bogus"}, &out); err == nil {
		t.Fatalf("expected unknown command error")
	}
}

func TestDumpPrintsAndWritesEncoding(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.bin")
	var out bytes.Buffer
	if err := run(context.Background(), []string{"dump", "-out", path}, &out); err != nil {
		t.Fatalf("dump: %v", err)
	}
	if !strings.Contains(out.String(), "Objects (4) {") || !strings.Contains(out.String(), "197 bytes") {
		t.Fatalf("unexpected dump output:\n%s", out.String())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read dump: %v", err)
	}
	want, err := objects.ObjectsPacker.Pack(objects.Sample())
	if err != nil {
		t.Fatalf("pack: %v", err)
	}
	if !bytes.Equal(want, data) {
		t.Fatalf("dump file does not match encoding")
	}
}

func TestServeReceivesSentObjects(t *testing.T) {
	testlog.Start(t)
	cfg := config.Default()
	cfg.MetricsAddr = ""

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	cfg.DialAddr = ln.Addr().String()

	got := make(chan objects.Objects, 2)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- serve(ctx, cfg, ln, zerolog.Nop(), func(objs objects.Objects) { got <- objs })
	}()

	if err := send(context.Background(), cfg, 2, zerolog.Nop()); err != nil {
		t.Fatalf("send: %v", err)
	}
	for i := 0; i < 2; i++ {
		select {
		case objs := <-got:
			if diff := cmp.Diff(objects.Sample(), objs); diff != "" {
				t.Fatalf("received objects mismatch (-want +got):\n%s", diff)
			}
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out waiting for objects")
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("serve did not stop")
	}
}
