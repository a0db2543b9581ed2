// Package tagger drives the per-file pipeline: locate the header, drop the
// tags it already has, insert the rest and commit the rewritten file.
package tagger

import (
	"context"
	"errors"
	"runtime"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"tagdoc/internal/config"
	"tagdoc/internal/doctag"
	"tagdoc/internal/fsio"
	"tagdoc/internal/model"
	"tagdoc/internal/parser"
	"tagdoc/internal/rewrite"
)

// Tagger inserts the configured tags into source files.
type Tagger struct {
	tags    []model.Tag
	locator parser.Locator
	dryRun  bool
	jobs    int
	logger  *zap.Logger
}

// New creates a Tagger from cfg. A nil logger disables logging.
func New(cfg *config.Config, logger *zap.Logger) (*Tagger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	loc, err := parser.New(cfg.Options.Locator)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	jobs := cfg.Options.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return &Tagger{
		tags:    cfg.TagList(),
		locator: loc,
		dryRun:  cfg.Options.DryRun,
		jobs:    jobs,
		logger:  logger,
	}, nil
}

// Tags returns the tags inserted by t, in insertion order.
func (t *Tagger) Tags() []model.Tag {
	return t.tags
}

// Result describes what happened to one file.
type Result struct {
	Path     string
	Status   model.Status
	Added    []model.Tag // Tags inserted (or that would be, in dry-run mode)
	Reason   string      // Why the file was skipped or failed
	Err      error
	Warnings []string

	// Original and Updated are only kept in dry-run mode, for diffs.
	Original string
	Updated  string
}

// ProcessText computes the new content of one file. It never touches the
// filesystem. The returned text equals text unless the status is modified.
func (t *Tagger) ProcessText(path, text string) (Result, string) {
	res := Result{Path: path, Status: model.StatusUnchanged}
	if len(t.tags) == 0 {
		res.Reason = "no tags configured"
		return res, text
	}

	loc, err := t.locator.Locate(text)
	if err != nil {
		if errors.Is(err, model.ErrNoDeclarationFound) || errors.Is(err, model.ErrMalformedBlock) {
			return res.with(model.StatusSkipped, err), text
		}
		return res.with(model.StatusFailed, err), text
	}

	missing, err := doctag.Missing(loc.Block, t.tags)
	if err != nil {
		res.Warnings = append(res.Warnings, err.Error())
	}

	nl := model.DetectNewline(text)
	newRaw, ok := doctag.Insert(loc.Block, missing, nl)
	if !ok {
		res.Reason = "all tags present"
		return res, text
	}

	updated, err := rewrite.Rewrite(text, loc.Block, loc.Anchor, newRaw, nl)
	if err != nil {
		return res.with(model.StatusFailed, err), text
	}
	res.Status = model.StatusModified
	res.Added = missing
	if t.dryRun {
		res.Original = text
		res.Updated = updated
	}
	return res, updated
}

// ProcessFile reads path, processes it and, unless in dry-run mode, writes
// the new content back when something changed.
func (t *Tagger) ProcessFile(path string) Result {
	text, err := fsio.ReadFile(path)
	if err != nil {
		return Result{Path: path}.with(model.StatusFailed, err)
	}

	res, updated := t.ProcessText(path, text)
	if res.Status != model.StatusModified || t.dryRun {
		return res
	}
	if err := fsio.WriteFileAtomic(path, updated); err != nil {
		return res.with(model.StatusFailed, err)
	}
	return res
}

func (r Result) with(status model.Status, err error) Result {
	r.Status = status
	r.Err = err
	r.Reason = err.Error()
	r.Added = nil
	return r
}

// Summary aggregates the results of a batch.
type Summary struct {
	RunID   string
	Results []Result // Same order as the input paths
	Elapsed time.Duration
}

// Count returns how many files ended with status.
func (s *Summary) Count(status model.Status) int {
	n := 0
	for _, r := range s.Results {
		if r.Status == status {
			n++
		}
	}
	return n
}

// Failed reports whether any file failed.
func (s *Summary) Failed() bool {
	return s.Count(model.StatusFailed) > 0
}

// Run processes paths concurrently. Every file gets a Result; a failure in
// one file never stops the others. Files not yet started when ctx is
// cancelled are reported as failed.
func (t *Tagger) Run(ctx context.Context, paths []string) *Summary {
	start := time.Now()
	sum := &Summary{
		RunID:   uuid.NewString(),
		Results: make([]Result, len(paths)),
	}
	log := t.logger.With(zap.String("run_id", sum.RunID))
	log.Info("run started",
		zap.Int("files", len(paths)),
		zap.Int("tags", len(t.tags)),
		zap.Bool("dry_run", t.dryRun))

	var g errgroup.Group
	g.SetLimit(max(1, min(t.jobs, len(paths))))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				sum.Results[i] = Result{Path: path}.with(model.StatusFailed, err)
				return nil
			}
			res := t.ProcessFile(path)
			sum.Results[i] = res
			t.logResult(log, res)
			return nil
		})
	}
	_ = g.Wait()

	sum.Elapsed = time.Since(start)
	log.Info("run finished",
		zap.Int("modified", sum.Count(model.StatusModified)),
		zap.Int("unchanged", sum.Count(model.StatusUnchanged)),
		zap.Int("skipped", sum.Count(model.StatusSkipped)),
		zap.Int("failed", sum.Count(model.StatusFailed)),
		zap.Duration("elapsed", sum.Elapsed))
	return sum
}

func (t *Tagger) logResult(log *zap.Logger, res Result) {
	fields := []zap.Field{zap.String("path", res.Path), zap.String("status", string(res.Status))}
	for _, w := range res.Warnings {
		log.Warn("tag check failed", append(fields, zap.String("warning", w))...)
	}
	switch res.Status {
	case model.StatusFailed:
		log.Warn("file failed", append(fields, zap.Error(res.Err))...)
	case model.StatusSkipped:
		log.Info("file skipped", append(fields, zap.String("reason", res.Reason))...)
	case model.StatusModified:
		names := make([]string, len(res.Added))
		for i, tag := range res.Added {
			names[i] = tag.Name
		}
		log.Debug("file tagged", append(fields, zap.Strings("added", names))...)
	default:
		log.Debug("file unchanged", fields...)
	}
}
