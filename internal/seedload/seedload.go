// Package seedload bulk-loads a newline-delimited interval dump into a
// pkg/intervalindex.Index at startup, sharding the parse-and-build work
// across goroutines with golang.org/x/sync/errgroup the way the teacher
// codebase reaches for golang.org/x/sync for concurrent fan-out, then
// merging the shards into the caller's index single-threaded (§10.7).
package seedload

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/edirooss/intervalidx/pkg/intervalindex"
	"golang.org/x/sync/errgroup"
)

// LoadFile reads path (one "inf sup inf_closed sup_closed" record per
// line), builds shards independent local indexes concurrently, and merges
// every parsed interval into dst. Returns the number of intervals merged.
func LoadFile(ctx context.Context, path string, dst *intervalindex.Index[float64], shards int) (int, error) {
	lines, err := readLines(path)
	if err != nil {
		return 0, fmt.Errorf("read seed file: %w", err)
	}
	if len(lines) == 0 {
		return 0, nil
	}
	if shards < 1 {
		shards = 1
	}

	chunks := split(lines, shards)
	shardIndexes := make([]*intervalindex.Index[float64], len(chunks))

	g, _ := errgroup.WithContext(ctx)
	for i, chunk := range chunks {
		i, chunk := i, chunk
		g.Go(func() error {
			shard := intervalindex.NewISL[float64]()
			if err := loadShard(shard, chunk); err != nil {
				return err
			}
			shardIndexes[i] = shard
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	n := 0
	for _, shard := range shardIndexes {
		shard.Iter(func(iv intervalindex.Interval[float64]) {
			dst.InsertInterval(iv)
			n++
		})
	}
	return n, nil
}

func loadShard(shard *intervalindex.Index[float64], lines []string) error {
	for _, line := range lines {
		iv, err := parseLine(line)
		if err != nil {
			return err
		}
		shard.InsertInterval(iv)
	}
	return nil
}

func parseLine(line string) (intervalindex.Interval[float64], error) {
	fields := strings.Fields(line)
	if len(fields) != 4 {
		return intervalindex.Interval[float64]{}, fmt.Errorf("malformed seed record %q: want 4 fields, got %d", line, len(fields))
	}
	inf, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return intervalindex.Interval[float64]{}, fmt.Errorf("parse inf in %q: %w", line, err)
	}
	sup, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return intervalindex.Interval[float64]{}, fmt.Errorf("parse sup in %q: %w", line, err)
	}
	infClosed, err := strconv.ParseBool(fields[2])
	if err != nil {
		return intervalindex.Interval[float64]{}, fmt.Errorf("parse inf_closed in %q: %w", line, err)
	}
	supClosed, err := strconv.ParseBool(fields[3])
	if err != nil {
		return intervalindex.Interval[float64]{}, fmt.Errorf("parse sup_closed in %q: %w", line, err)
	}
	iv, err := intervalindex.NewInterval(inf, sup, infClosed, supClosed)
	if err != nil {
		return intervalindex.Interval[float64]{}, fmt.Errorf("seed record %q: %w", line, err)
	}
	return iv, nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, sc.Err()
}

// split range-shards lines into at most n contiguous slices.
func split(lines []string, n int) [][]string {
	if n > len(lines) {
		n = len(lines)
	}
	chunks := make([][]string, 0, n)
	size := (len(lines) + n - 1) / n
	for i := 0; i < len(lines); i += size {
		end := i + size
		if end > len(lines) {
			end = len(lines)
		}
		chunks = append(chunks, lines[i:end])
	}
	return chunks
}
