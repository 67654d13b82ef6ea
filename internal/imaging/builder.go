package imaging

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/kozaktomas/portfolio/internal/catalog"
	"github.com/kozaktomas/portfolio/internal/fingerprint"
	"github.com/kozaktomas/portfolio/internal/selection"
)

// CatalogFile is the name of the catalog written into the output directory.
const CatalogFile = "photos.json"

// Progress is reported once per processed file.
type Progress struct {
	Folder   string
	Filename string
	Err      error
}

// Builder turns a source tree of category folders into web-ready photos and
// a catalog.
//
// Source layout: <Source>/<category>/<file> and <Source>/<asset folder>/<file>.
// Output layout: <Output>/photos/<category>/<file>, <Output>/<asset folder>/<file>
// and <Output>/photos.json.
type Builder struct {
	Source       string
	Output       string
	Categories   []string
	AssetFolders []string

	PortfolioWidth int
	AssetWidth     int
	Watermark      string
	Quality        int
	Concurrency    int
	// DuplicateThreshold bounds the hash distance of reported near
	// duplicates. Zero uses fingerprint.DefaultThreshold; negative disables.
	DuplicateThreshold int

	OnProgress func(Progress)
}

// Report summarizes a build.
type Report struct {
	Catalog   *catalog.Catalog
	Processed int
	Assets    int
	Errors    []error
	// Missing lists source folders that do not exist.
	Missing []string
	// Duplicates lists near-identical portfolio photos across categories.
	Duplicates []fingerprint.Pair
}

type job struct {
	folder   string
	filename string
	src      string
	dst      string
	opts     ProcessOptions
}

// Count returns how many files a build would process.
func (b *Builder) Count() (int, error) {
	n := 0
	for _, folder := range append(append([]string{}, b.Categories...), b.AssetFolders...) {
		files, err := listImages(filepath.Join(b.Source, folder))
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return 0, err
		}
		n += len(files)
	}
	return n, nil
}

// Build cleans the output directory, processes every image and writes the
// catalog. Files that fail to process are reported and left out.
func (b *Builder) Build(ctx context.Context) (*Report, error) {
	if err := Clean(b.Output, b.AssetFolders); err != nil {
		return nil, fmt.Errorf("cleaning output: %w", err)
	}
	if err := os.MkdirAll(b.Output, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	report := &Report{Catalog: catalog.New()}
	var hashes []fingerprint.Entry

	portfolio := ProcessOptions{
		Width:     orDefault(b.PortfolioWidth, DefaultPortfolioWidth),
		Watermark: b.Watermark,
		Quality:   orDefault(b.Quality, DefaultQuality),
	}
	for _, category := range b.Categories {
		report.Catalog.Add(category)
		jobs, err := b.jobs(category, filepath.Join(b.Output, "photos", category), portfolio)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				report.Missing = append(report.Missing, category)
				continue
			}
			return nil, err
		}

		results, errs := b.run(ctx, jobs)
		report.Errors = append(report.Errors, errs...)
		for i, res := range results {
			if res == nil {
				continue
			}
			report.Catalog.Add(category, selection.Photo{Filename: jobs[i].filename, Color: res.Color})
			hashes = append(hashes, fingerprint.Entry{Category: category, Filename: jobs[i].filename, Hash: res.Hash})
			report.Processed++
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	if err := report.Catalog.WriteFile(filepath.Join(b.Output, CatalogFile)); err != nil {
		return nil, err
	}
	threshold := b.DuplicateThreshold
	if threshold == 0 {
		threshold = fingerprint.DefaultThreshold
	}
	if threshold > 0 {
		report.Duplicates = fingerprint.Duplicates(hashes, threshold)
	}

	assets := ProcessOptions{
		Width:   orDefault(b.AssetWidth, DefaultAssetWidth),
		Quality: orDefault(b.Quality, DefaultQuality),
	}
	for _, folder := range b.AssetFolders {
		jobs, err := b.jobs(folder, filepath.Join(b.Output, folder), assets)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				report.Missing = append(report.Missing, folder)
				continue
			}
			return nil, err
		}

		results, errs := b.run(ctx, jobs)
		report.Errors = append(report.Errors, errs...)
		for _, res := range results {
			if res != nil {
				report.Assets++
			}
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	return report, nil
}

func (b *Builder) jobs(folder, outDir string, opts ProcessOptions) ([]job, error) {
	files, err := listImages(filepath.Join(b.Source, folder))
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", outDir, err)
	}

	jobs := make([]job, 0, len(files))
	for _, name := range files {
		jobs = append(jobs, job{
			folder:   folder,
			filename: name,
			src:      filepath.Join(b.Source, folder, name),
			dst:      filepath.Join(outDir, name),
			opts:     opts,
		})
	}
	return jobs, nil
}

// run processes jobs with bounded concurrency. Results keep job order; a
// failed job leaves a nil result.
func (b *Builder) run(ctx context.Context, jobs []job) ([]*Result, []error) {
	results := make([]*Result, len(jobs))
	var errs []error
	var mu sync.Mutex
	sem := make(chan struct{}, max(b.Concurrency, 1))
	var wg sync.WaitGroup

	for i := range jobs {
		wg.Add(1)
		go func(idx int, j job) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			err := ctx.Err()
			var res *Result
			if err == nil {
				res, err = ProcessFile(j.src, j.dst, j.opts)
			}

			mu.Lock()
			if err != nil {
				errs = append(errs, fmt.Errorf("%s/%s: %w", j.folder, j.filename, err))
			} else {
				results[idx] = res
			}
			mu.Unlock()

			if b.OnProgress != nil {
				b.OnProgress(Progress{Folder: j.folder, Filename: j.filename, Err: err})
			}
		}(i, jobs[i])
	}
	wg.Wait()

	return results, errs
}

// ProcessFile processes src into dst, choosing the encoding by dst's extension.
// A partially written dst is removed on failure.
func ProcessFile(src, dst string, opts ProcessOptions) (*Result, error) {
	format, err := FormatFromPath(dst)
	if err != nil {
		return nil, err
	}
	opts.Format = format

	in, err := os.Open(src)
	if err != nil {
		return nil, fmt.Errorf("opening source: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return nil, fmt.Errorf("creating output: %w", err)
	}

	res, err := Process(in, out, opts)
	if closeErr := out.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("closing output: %w", closeErr)
	}
	if err != nil {
		os.Remove(dst)
		return nil, err
	}
	return res, nil
}

// Clean removes the outputs of a previous build.
func Clean(output string, assetFolders []string) error {
	paths := []string{filepath.Join(output, "photos"), filepath.Join(output, CatalogFile)}
	for _, folder := range assetFolders {
		paths = append(paths, filepath.Join(output, folder))
	}
	for _, p := range paths {
		if err := os.RemoveAll(p); err != nil {
			return fmt.Errorf("removing %s: %w", p, err)
		}
	}
	return nil
}

// listImages returns the supported image files of dir in name order.
func listImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !Supported(e.Name()) {
			continue
		}
		files = append(files, e.Name())
	}
	return files, nil
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
