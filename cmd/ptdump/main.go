// Command ptdump decodes one or more raw Intel PT trace files and prints
// the packets each one contains, one line per packet, to stdout. Files are
// decoded concurrently; the first decode error cancels the remaining work.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/pttrace/pttrace/pttrace"
)

func main() {
	level := slog.LevelInfo
	if os.Getenv("DEBUG") != "" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s trace-file [trace-file ...]\n", os.Args[0])
		os.Exit(2)
	}

	errDumpBytes := 8
	if n := envOrInt("PTDUMP_ERROR_DUMP_BYTES", 0); n > 0 {
		errDumpBytes = n
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	for _, path := range os.Args[1:] {
		path := path
		g.Go(func() error {
			return dumpFile(ctx, path, errDumpBytes)
		})
	}

	if err := g.Wait(); err != nil {
		slog.Error("decode failed", "error", err)
		os.Exit(1)
	}
}

func dumpFile(ctx context.Context, path string, errDumpBytes int) error {
	slog.Debug("decoding trace", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("ptdump: reading %s: %w", path, err)
	}

	p := pttrace.New(data, pttrace.WithErrorDumpBytes(errDumpBytes))
	count := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		pkt, err := p.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("ptdump: %s: %w", path, err)
		}
		count++
		if ip, ok, ipErr := pkt.TargetIP(); ok && ipErr == nil {
			fmt.Printf("%s: %s ip=%#016x\n", path, pkt.Kind, ip)
		} else {
			fmt.Printf("%s: %s\n", path, pkt.Kind)
		}
	}

	slog.Info("decoded trace", "path", path, "packets", count)
	return nil
}

func envOrInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n := 0
	for _, r := range v {
		if r < '0' || r > '9' {
			return fallback
		}
		n = n*10 + int(r-'0')
	}
	return n
}
