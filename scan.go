package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pngstash/png"
)

type finding struct {
	path  string
	types []string
}

func scanCmd() *cobra.Command {
	var threads uint
	var logFile string
	cmd := &cobra.Command{
		Use:   "scan <dir>",
		Short: "sweep a directory tree for png files carrying hidden payloads",
		Args:  cobra.ExactArgs(1),
		Run: run(func(args []string) error {
			logger, err := newScanLogger(logFile)
			if err != nil {
				return err
			}
			defer logger.Sync()

			findings, err := scanTree(args[0], int(threads), logger)
			if err != nil {
				return err
			}
			if len(findings) == 0 {
				fmt.Println("no hidden payloads found")
				return nil
			}
			for _, f := range findings {
				fmt.Printf("%s: %s\n", f.path, color.YellowString(strings.Join(f.types, " ")))
			}
			return nil
		}),
	}
	cmd.Flags().UintVar(&threads, "threads", 8, "number of concurrent workers")
	cmd.Flags().StringVar(&logFile, "log", "pngstash.log", "location to store per-file scan errors")
	return cmd
}

func newScanLogger(path string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to open scan log: %w", err)
	}
	return logger, nil
}

// walkPngs feeds every .png path under root to the returned channel. The
// error channel is buffered so the walker never blocks on it; it carries at
// most one walk failure.
func walkPngs(root string) (chan string, chan error) {
	paths := make(chan string)
	errs := make(chan error, 1)

	go func() {
		defer close(paths)
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if strings.EqualFold(filepath.Ext(path), ".png") {
				paths <- path
			}
			return nil
		})
		if err != nil {
			errs <- err
		}
		close(errs)
	}()

	return paths, errs
}

// scanTree checks every png under root across the given number of workers.
// Files that fail to read or parse are logged and skipped, not fatal; a bad
// file in a big sweep should not kill the run.
func scanTree(root string, threads int, logger *zap.Logger) ([]finding, error) {
	paths, walkErrs := walkPngs(root)
	progress := progressbar.Default(-1)

	var mu sync.Mutex
	var findings []finding

	var wg sync.WaitGroup
	wg.Add(threads)
	for i := 0; i < threads; i++ {
		go func() {
			defer wg.Done()
			for path := range paths {
				types, err := checkFile(path)
				if err != nil {
					logger.Warn("skipping file", zap.String("path", path), zap.Error(err))
				} else if len(types) > 0 {
					mu.Lock()
					findings = append(findings, finding{path: path, types: types})
					mu.Unlock()
				}
				_ = progress.Add(1)
			}
		}()
	}
	wg.Wait()
	_ = progress.Finish()

	if err := <-walkErrs; err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	sort.Slice(findings, func(i, j int) bool { return findings[i].path < findings[j].path })
	return findings, nil
}

func checkFile(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	found, err := png.FindHidden(raw)
	if err != nil {
		return nil, err
	}
	types := make([]string, 0, len(found))
	for _, c := range found {
		types = append(types, c.Type().String())
	}
	return types, nil
}
