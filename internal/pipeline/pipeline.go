// Package pipeline runs one recap end to end:
// resolve week, fetch matchups, analyze, compose, synthesize.
//
// A run is all-or-nothing. The first failing stage aborts the rest and is
// returned as a *StageError; nothing but the final artifact is written.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/albapepper/fantasy-recap/internal/artifact"
	"github.com/albapepper/fantasy-recap/internal/recap"
	"github.com/albapepper/fantasy-recap/internal/speech"
)

// Source is the league data the pipeline reads.
type Source interface {
	League(ctx context.Context, year int) (recap.League, error)
	Matchups(ctx context.Context, year, week int) ([]recap.Matchup, error)
}

// Store persists rendered audio.
type Store interface {
	Save(week int, data []byte) (artifact.Artifact, error)
	Path(name string) string
}

// Recorder receives stage timings. A nil Recorder is allowed.
type Recorder interface {
	ObserveStage(stage string, d time.Duration, err error)
	ObserveRun(outcome string, d time.Duration)
}

// Timeouts bound the external stages. Zero means no extra bound beyond the
// caller's context.
type Timeouts struct {
	League    time.Duration
	Narrative time.Duration
	Speech    time.Duration
}

// Request selects what to recap. Zero Year and Week mean "configured season"
// and "last completed week".
type Request struct {
	Year        int               `json:"year,omitempty"`
	Week        int               `json:"week,omitempty"`
	Personality recap.Personality `json:"personality,omitempty"`
}

// Result is a completed run.
type Result struct {
	RunID    string        `json:"run_id"`
	Year     int           `json:"year"`
	Week     int           `json:"week"`
	Text     string        `json:"text"`
	Filename string        `json:"filename"`
	Path     string        `json:"path"`
	Awards   recap.Awards  `json:"awards"`
	Duration time.Duration `json:"duration"`
}

// Options configures a Generator.
type Options struct {
	Source      Source
	Composer    *recap.Composer
	Renderer    speech.Renderer
	Store       Store
	DefaultYear int
	Timeouts    Timeouts
	Logger      *slog.Logger
	Recorder    Recorder
	Now         func() time.Time
}

// Generator is the recap orchestrator. It holds no per-run state and is safe
// for concurrent use.
type Generator struct {
	source      Source
	composer    *recap.Composer
	renderer    speech.Renderer
	store       Store
	defaultYear int
	timeouts    Timeouts
	logger      *slog.Logger
	recorder    Recorder
	now         func() time.Time
}

// New creates a Generator.
func New(opts Options) *Generator {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	composer := opts.Composer
	if composer == nil {
		composer = recap.NewComposer(nil, logger)
	}
	return &Generator{
		source:      opts.Source,
		composer:    composer,
		renderer:    opts.Renderer,
		store:       opts.Store,
		defaultYear: opts.DefaultYear,
		timeouts:    opts.Timeouts,
		logger:      logger,
		recorder:    opts.Recorder,
		now:         now,
	}
}

// Year resolves the season a request targets.
func (g *Generator) Year(requested int) int {
	if requested > 0 {
		return requested
	}
	if g.defaultYear > 0 {
		return g.defaultYear
	}
	return g.now().Year()
}

// ResolveWeek picks the week to recap given the league's current week and an
// optional override (0 = none).
func ResolveWeek(current, override int) (int, error) {
	if override > 0 {
		if override > current {
			return 0, fmt.Errorf("%w: week %d requested, current week is %d", ErrWeekIncomplete, override, current)
		}
		return override, nil
	}
	target := current - 1
	if target < 1 {
		return 0, fmt.Errorf("%w: current week is %d", ErrSeasonNotStarted, current)
	}
	return target, nil
}

// LeagueInfo returns league metadata for a season.
func (g *Generator) LeagueInfo(ctx context.Context, year int) (recap.League, error) {
	ctx, cancel := withTimeout(ctx, g.timeouts.League)
	defer cancel()
	return g.source.League(ctx, g.Year(year))
}

// Generate runs the whole pipeline for one request.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	start := g.now()
	runID := uuid.NewString()
	year := g.Year(req.Year)
	log := g.logger.With("run_id", runID, "year", year, "personality", string(req.Personality))
	log.Info("recap run started", "week_override", req.Week)

	res, err := g.run(ctx, log, year, req)
	elapsed := g.now().Sub(start)
	if err != nil {
		log.Error("recap run failed", "stage", string(StageOf(err)), "duration", elapsed, "error", err)
		g.observeRun("failure", elapsed)
		return nil, err
	}
	res.RunID = runID
	res.Duration = elapsed
	log.Info("recap run complete", "week", res.Week, "file", res.Filename, "duration", elapsed)
	g.observeRun("success", elapsed)
	return res, nil
}

func (g *Generator) run(ctx context.Context, log *slog.Logger, year int, req Request) (*Result, error) {
	var week int
	err := g.stage(log, StageResolveWeek, func() error {
		lctx, cancel := withTimeout(ctx, g.timeouts.League)
		defer cancel()
		league, err := g.source.League(lctx, year)
		if err != nil {
			return err
		}
		week, err = ResolveWeek(league.CurrentWeek, req.Week)
		return err
	})
	if err != nil {
		return nil, err
	}
	log = log.With("week", week)

	var matchups []recap.Matchup
	err = g.stage(log, StageFetchMatchups, func() error {
		lctx, cancel := withTimeout(ctx, g.timeouts.League)
		defer cancel()
		ms, err := g.source.Matchups(lctx, year, week)
		if err != nil {
			return err
		}
		if len(ms) == 0 {
			return fmt.Errorf("%w: no matchups for week %d", ErrWeekIncomplete, week)
		}
		matchups = ms
		return nil
	})
	if err != nil {
		return nil, err
	}

	var analysis recap.Analysis
	_ = g.stage(log, StageAnalyze, func() error {
		analysis = recap.Analyze(week, matchups)
		return nil
	})

	var text string
	err = g.stage(log, StageCompose, func() error {
		nctx, cancel := withTimeout(ctx, g.timeouts.Narrative)
		defer cancel()
		t, err := g.composer.Compose(nctx, analysis, req.Personality)
		if err != nil {
			return kind(ErrComposition, err)
		}
		text = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	var stored artifact.Artifact
	err = g.stage(log, StageSynthesize, func() error {
		sctx, cancel := withTimeout(ctx, g.timeouts.Speech)
		defer cancel()
		audio, err := g.renderer.Render(sctx, text)
		if err != nil {
			return kind(ErrSynthesis, err)
		}
		a, err := g.store.Save(week, audio.Data)
		if err != nil {
			return kind(ErrSynthesis, err)
		}
		stored = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &Result{
		Year:     year,
		Week:     week,
		Text:     text,
		Filename: stored.Filename,
		Path:     g.store.Path(stored.Filename),
		Awards:   analysis.Awards,
	}, nil
}

func (g *Generator) stage(log *slog.Logger, s Stage, fn func() error) error {
	start := g.now()
	log.Debug("stage started", "stage", string(s))
	err := fn()
	if g.recorder != nil {
		g.recorder.ObserveStage(string(s), g.now().Sub(start), err)
	}
	if err != nil {
		log.Warn("stage failed", "stage", string(s), "error", err)
		return &StageError{Stage: s, Err: err}
	}
	return nil
}

func (g *Generator) observeRun(outcome string, d time.Duration) {
	if g.recorder != nil {
		g.recorder.ObserveRun(outcome, d)
	}
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
