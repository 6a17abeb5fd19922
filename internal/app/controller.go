package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/five82/perch/internal/catalog"
	"github.com/five82/perch/internal/state"
)

// Catalog is the slice of the catalog service the controller drives.
// *service.Service implements it.
type Catalog interface {
	Refresh(ctx context.Context, category string) (int, error)
	Categories(ctx context.Context) ([]string, bool, error)
	ToggleFavorite(ctx context.Context, id string) (bool, error)
	RecordView(ctx context.Context, id string) error
	DeleteHistory(ctx context.Context, id string) error
	ClearHistory(ctx context.Context) error
	PeripheralOnce(ctx context.Context, id string) (catalog.Peripheral, bool, error)
}

// Controller runs catalog operations on behalf of the UI and reports their
// outcome to the state engine. Data changes arrive through the pump, so the
// controller only dispatches lifecycle and error events.
type Controller struct {
	catalog Catalog
	state   Dispatcher
	logger  *slog.Logger
	now     func() time.Time

	// refreshMu keeps at most one sync in flight.
	refreshMu sync.Mutex
}

// NewController builds a Controller. A nil logger discards output.
func NewController(c Catalog, d Dispatcher, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Controller{
		catalog: c,
		state:   d,
		logger:  logger.With("component", "controller"),
		now:     time.Now,
	}
}

// Refresh syncs the full catalog. Concurrent calls while a sync is running
// return immediately.
func (c *Controller) Refresh(ctx context.Context) error {
	if !c.refreshMu.TryLock() {
		c.logger.Debug("refresh already running")
		return nil
	}
	defer c.refreshMu.Unlock()

	c.state.Dispatch(state.RefreshStarted{})
	_, err := c.catalog.Refresh(ctx, "")
	if err != nil {
		c.logger.Warn("refresh failed", "error", err)
	}
	c.state.Dispatch(state.RefreshFinished{Err: err, At: c.now()})
	return err
}

// LoadCategories fetches the category list.
func (c *Controller) LoadCategories(ctx context.Context) error {
	names, remote, err := c.catalog.Categories(ctx)
	if err != nil {
		c.report("load categories", err)
		return err
	}
	c.state.Dispatch(state.CategoriesLoaded{Categories: names, Remote: remote})
	return nil
}

// ToggleFavorite flips the favorite flag of id.
func (c *Controller) ToggleFavorite(ctx context.Context, id string) error {
	favorite, err := c.catalog.ToggleFavorite(ctx, id)
	if err != nil {
		c.report("toggle favorite", err)
		return err
	}
	c.logger.Info("favorite toggled", "id", id, "favorite", favorite)
	return nil
}

// Open looks id up (locally, then remotely) and records the view when found.
func (c *Controller) Open(ctx context.Context, id string) (catalog.Peripheral, bool, error) {
	p, found, err := c.catalog.PeripheralOnce(ctx, id)
	if err != nil {
		c.report("open peripheral", err)
		return catalog.Peripheral{}, false, err
	}
	if !found {
		return catalog.Peripheral{}, false, nil
	}
	if err := c.catalog.RecordView(ctx, id); err != nil {
		c.report("record view", err)
		return p, true, err
	}
	return p, true, nil
}

// DeleteHistory removes one history entry.
func (c *Controller) DeleteHistory(ctx context.Context, id string) error {
	if err := c.catalog.DeleteHistory(ctx, id); err != nil {
		c.report("delete history", err)
		return err
	}
	return nil
}

// ClearHistory removes every history entry.
func (c *Controller) ClearHistory(ctx context.Context) error {
	if err := c.catalog.ClearHistory(ctx); err != nil {
		c.report("clear history", err)
		return err
	}
	return nil
}

func (c *Controller) report(op string, err error) {
	c.logger.Error(op+" failed", "error", err)
	c.state.Dispatch(state.ErrorReported{Err: err})
}
