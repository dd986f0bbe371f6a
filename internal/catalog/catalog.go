package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"virtualconf/internal/domain"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"
)

// Source is the subset of the document store the catalog reads.
type Source interface {
	ListStages(ctx context.Context) ([]*domain.Stage, error)
	ListTalks(ctx context.Context) ([]*domain.Talk, error)
	ListCategories(ctx context.Context) ([]*domain.Category, error)
	GetSiteSetting(ctx context.Context) (*domain.SiteSetting, error)
}

// Snapshot is one consistent read of the published catalog. Snapshots are
// shared between requests and must not be modified.
type Snapshot struct {
	Stages     []*domain.Stage
	Talks      []*domain.Talk
	Categories []*domain.Category
	Site       *domain.SiteSetting
	FetchedAt  time.Time
}

// TalkBySlug returns the talk with the given slug.
func (s *Snapshot) TalkBySlug(slug string) (*domain.Talk, bool) {
	for _, t := range s.Talks {
		if t.Slug == slug {
			return t, true
		}
	}
	return nil, false
}

// Catalog keeps the last successfully fetched snapshot.
type Catalog struct {
	src     Source
	logger  *slog.Logger
	now     func() time.Time
	current atomic.Pointer[Snapshot]
	mu      sync.Mutex
}

func New(src Source, logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Catalog{src: src, logger: logger, now: time.Now}
}

// Refresh fetches a new snapshot and swaps it in. On failure the previous
// snapshot stays in place.
func (c *Catalog) Refresh(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := &Snapshot{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		next.Stages, err = c.src.ListStages(gctx)
		return err
	})
	g.Go(func() (err error) {
		next.Talks, err = c.src.ListTalks(gctx)
		return err
	})
	g.Go(func() (err error) {
		next.Categories, err = c.src.ListCategories(gctx)
		return err
	})
	g.Go(func() (err error) {
		next.Site, err = c.src.GetSiteSetting(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("refresh catalog: %w", err)
	}

	next.FetchedAt = c.now()
	c.current.Store(next)
	c.logger.DebugContext(ctx, "catalog refreshed",
		slog.Int("stages", len(next.Stages)),
		slog.Int("talks", len(next.Talks)))
	return nil
}

// Snapshot returns the current snapshot, fetching one if none has been
// loaded yet.
func (c *Catalog) Snapshot(ctx context.Context) (*Snapshot, error) {
	if s := c.current.Load(); s != nil {
		return s, nil
	}
	if err := c.Refresh(ctx); err != nil {
		if s := c.current.Load(); s != nil {
			return s, nil
		}
		return nil, err
	}
	return c.current.Load(), nil
}

// Start refreshes once and then on the given cron schedule until ctx is
// cancelled.
func (c *Catalog) Start(ctx context.Context, spec string) error {
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(spec, func() { c.refreshLogged(ctx) }); err != nil {
		return fmt.Errorf("schedule catalog refresh %q: %w", spec, err)
	}

	c.refreshLogged(ctx)
	scheduler.Start()
	c.logger.Info("catalog refresh scheduled", slog.String("spec", spec))

	go func() {
		<-ctx.Done()
		<-scheduler.Stop().Done()
		c.logger.Info("catalog refresh stopped")
	}()
	return nil
}

func (c *Catalog) refreshLogged(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if err := c.Refresh(ctx); err != nil {
		c.logger.ErrorContext(ctx, "catalog refresh failed", slog.Any("error", err))
	}
}
