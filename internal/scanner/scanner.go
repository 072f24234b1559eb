package scanner

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"aidetect/internal/analysis"
	apperrors "aidetect/internal/errors"
	"aidetect/internal/monitoring"
)

// Result is the outcome of one directory or repository scan.
type Result struct {
	Source   string                `json:"source"`
	Branch   string                `json:"branch,omitempty"`
	Files    []analysis.FileResult `json:"files"`
	Stats    Stats                 `json:"stats"`
	Duration time.Duration         `json:"duration_ms"`
}

// Scanner walks directories and scores every code file through a shared
// analyzer. Files are independent, so scoring is embarrassingly parallel.
type Scanner struct {
	cfg      Config
	analyzer *analysis.Analyzer
	logger   *monitoring.Logger
}

// New creates a scanner. A nil logger disables scan logging.
func New(cfg Config, analyzer *analysis.Analyzer, logger *monitoring.Logger) *Scanner {
	if analyzer == nil {
		analyzer = analysis.NewAnalyzer()
	}
	return &Scanner{cfg: cfg, analyzer: analyzer, logger: logger}
}

// ScanDirectory scores every matching file under root. Individual file
// failures are recorded on their FileResult and never abort the scan; only
// context cancellation stops it early.
func (s *Scanner) ScanDirectory(ctx context.Context, root string) (*Result, error) {
	start := time.Now()

	files, err := s.findCodeFiles(root)
	if err != nil {
		return nil, err
	}

	results := make([]analysis.FileResult, len(files))

	workers := s.cfg.Workers
	if workers < 1 {
		workers = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = s.scanFile(path, root)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, apperrors.NewTimeoutError("scan cancelled", err)
	}

	result := &Result{
		Source:   root,
		Files:    results,
		Stats:    ComputeStats(results),
		Duration: time.Since(start),
	}

	if s.logger != nil {
		s.logger.ScanLogger(root, result.Stats.FilesScanned, result.Stats.FilesFailed,
			result.Stats.AvgProbability, result.Duration)
	}

	return result, nil
}

// ScanRepository clones a remote repository shallowly and scans the clone.
// The clone directory is always removed before returning.
func (s *Scanner) ScanRepository(ctx context.Context, url, branch string) (*Result, error) {
	normalized, err := ValidateRepoURL(url)
	if err != nil {
		return nil, err
	}

	dir, cleanup, err := Clone(ctx, normalized, branch)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	if branch == "" {
		branch = DefaultBranch(dir)
	}

	result, err := s.ScanDirectory(ctx, dir)
	if err != nil {
		return nil, err
	}

	result.Source = url
	result.Branch = branch

	// Report paths relative to the clone, not the temp dir.
	for i := range result.Files {
		if rel, relErr := filepath.Rel(dir, result.Files[i].Path); relErr == nil {
			result.Files[i].Path = rel
		}
	}

	return result, nil
}

// findCodeFiles walks root collecting scannable files: matching extension,
// under the size cap, outside the skip set, and resolving inside the root so
// symlinks cannot escape the scanned tree.
func (s *Scanner) findCodeFiles(root string) ([]string, error) {
	resolvedRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		return nil, apperrors.NewValidationError("cannot resolve scan root", root)
	}

	var files []string
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries are skipped, not fatal
		}

		if d.IsDir() {
			if s.cfg.SkipDirs[d.Name()] && path != root {
				return filepath.SkipDir
			}
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if _, ok := s.cfg.Extensions[ext]; !ok {
			return nil
		}

		resolved, err := filepath.EvalSymlinks(path)
		if err != nil {
			return nil
		}
		if resolved != resolvedRoot && !strings.HasPrefix(resolved, resolvedRoot+string(filepath.Separator)) {
			return nil
		}

		info, err := d.Info()
		if err != nil || info.Size() > s.cfg.MaxFileSize {
			return nil
		}

		files = append(files, path)
		return nil
	})
	if walkErr != nil {
		return nil, apperrors.NewInternalError("directory walk failed", walkErr)
	}

	return files, nil
}

// scanFile scores one file. All failures land on the FileResult so the
// caller can report them without losing the rest of the scan.
func (s *Scanner) scanFile(path, root string) analysis.FileResult {
	lang := s.cfg.LanguageFor(filepath.Ext(path))
	fileResult := analysis.FileResult{Path: path, Language: lang}

	data, err := os.ReadFile(path)
	if err != nil {
		fileResult.Error = "read failed: " + err.Error()
		return fileResult
	}

	if !utf8.Valid(data) {
		fileResult.Error = "file is not valid UTF-8"
		return fileResult
	}

	result, err := s.analyzer.Analyze(analysis.SourceSample{Text: string(data), Language: lang})
	if err != nil {
		fileResult.Error = err.Error()
		return fileResult
	}

	fileResult.Result = result
	return fileResult
}
