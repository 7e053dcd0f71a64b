package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/samber/lo"
	"github.com/urfave/cli/v3"

	"github.com/wcharczuk/bitmath/pkg/bitmath"
	"github.com/wcharczuk/bitmath/pkg/filesize"
)

func commandDuplicates() *cli.Command {
	return &cli.Command{
		Name:      "dupes",
		Usage:     "Find duplicate files by comparing sha256 hashes and print the space they take.",
		ArgsUsage: "[TARGET_DIR]",
		Flags: append(listingFlags(),
			&cli.StringFlag{
				Name:  "min-size",
				Usage: "Skip files smaller than this, e.g. 5MiB (default: listing.min_size)",
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if !cmd.Args().Present() {
				return usageErrorf("must provide a TARGET_DIR")
			}
			if cmd.Args().Len() > 1 {
				return usageErrorf("must only provide a TARGET_DIR")
			}
			ctx, sess, err := setup(ctx, cmd)
			if err != nil {
				return err
			}
			threshold, err := minSize(cmd, sess)
			if err != nil {
				return err
			}
			targetDir := cmd.Args().First()
			if _, err := os.Stat(targetDir); err != nil {
				return err
			}
			sets, err := findDuplicateFiles(ctx, targetDir, threshold, listingOptions(cmd, sess)...)
			if err != nil {
				return err
			}

			var records []record
			var savings float64
			for _, set := range sets {
				original := set[0]
				for _, dupe := range set[1:] {
					savings += dupe.size.Bytes()
					records = append(records, record{Path: dupe.path, Size: dupe.size, Detail: "duplicate of " + original.path})
				}
			}
			records = append(records, record{Input: "total", Size: bitmath.BestPrefix(savings, sess.system), Detail: "total savings"})
			return sess.printer.print(ctx, records)
		},
	}
}

type fullFileInfo struct {
	os.FileInfo
	path string
	size bitmath.Size
}

// findDuplicateFiles groups the files under targetPath by content, oldest
// file first within a group. Only groups of two or more are returned. Hard
// links to the same file are not duplicates.
func findDuplicateFiles(ctx context.Context, targetPath string, minSize bitmath.Size, opts ...filesize.Option) ([][]fullFileInfo, error) {
	// only files of equal size need hashing
	bySize := make(map[float64][]fullFileInfo)
	for path, size := range filesize.ListDir(targetPath, opts...) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if size.Less(minSize) {
			continue
		}
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		bySize[size.Bytes()] = append(bySize[size.Bytes()], fullFileInfo{FileInfo: info, path: path, size: size})
	}

	hashes := make(map[string][]fullFileInfo)
	for _, candidates := range bySize {
		if len(candidates) < 2 {
			continue
		}
		for _, ffi := range candidates {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			cs, err := checksumFile(ffi.path)
			if err != nil {
				return nil, err
			}
			if slices.ContainsFunc(hashes[cs], func(existing fullFileInfo) bool {
				return os.SameFile(ffi.FileInfo, existing.FileInfo)
			}) {
				continue
			}
			hashes[cs] = insertSorted(hashes[cs], ffi, func(a, b fullFileInfo) int {
				return a.ModTime().Compare(b.ModTime())
			})
		}
	}

	sets := lo.Filter(lo.Values(hashes), func(set []fullFileInfo, _ int) bool { return len(set) > 1 })
	slices.SortFunc(sets, func(a, b []fullFileInfo) int { return strings.Compare(a[0].path, b[0].path) })
	return sets, nil
}

func checksumFile(path string) (checksum string, err error) {
	var f *os.File
	f, err = os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()
	h := sha256.New()
	if _, err = io.Copy(h, f); err != nil {
		return
	}
	checksum = hex.EncodeToString(h.Sum(nil))
	return
}

func insertSorted[A any](working []A, v A, sorter func(A, A) int) []A {
	insertAt, _ := slices.BinarySearchFunc(working, v, sorter)
	working = append(working, v)
	copy(working[insertAt+1:], working[insertAt:])
	working[insertAt] = v
	return working
}
