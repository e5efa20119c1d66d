package dashboard

import (
	"context"
	"errors"
	"sync"

	"planboard/internal/domain"
)

// ErrNotLoaded is returned for operations that need Load to have succeeded
// first.
var ErrNotLoaded = errors.New("dashboard: not loaded")

// ErrNoActiveTab is returned when a widget operation runs with no tab
// focused.
var ErrNoActiveTab = errors.New("dashboard: no active tab")

// AddWidget creates a widget on the active tab. When the request carries no
// layout the per-type default placement is used.
func (c *Coordinator) AddWidget(ctx context.Context, req domain.CreateWidgetRequest) (*domain.Widget, error) {
	c.mu.Lock()
	idx := c.tabIndex(c.activeTabID)
	if idx < 0 {
		c.mu.Unlock()
		return nil, ErrNoActiveTab
	}
	tabID := c.tabs[idx].ID
	c.mu.Unlock()

	if req.Layout == nil {
		layout := domain.DefaultLayout(req.Type)
		req.Layout = &layout
	}
	created, err := c.gw.InsertWidget(ctx, tabID, req)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if idx := c.tabIndex(tabID); idx >= 0 {
		c.tabs[idx].Widgets = append(c.tabs[idx].Widgets, created)
	}
	return created, nil
}

// UpdateWidget edits a widget's layout or config.
func (c *Coordinator) UpdateWidget(ctx context.Context, widgetID string, req domain.UpdateWidgetRequest) (*domain.Widget, error) {
	updated, err := c.gw.UpdateWidget(ctx, widgetID, req)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.replaceWidgetLocked(updated)
	return updated, nil
}

// DeleteWidget removes a widget from whichever tab holds it.
func (c *Coordinator) DeleteWidget(ctx context.Context, widgetID string) error {
	if err := c.gw.DeleteWidget(ctx, widgetID); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for t := range c.tabs {
		widgets := c.tabs[t].Widgets
		for i := range widgets {
			if widgets[i].ID == widgetID {
				c.tabs[t].Widgets = append(widgets[:i], widgets[i+1:]...)
				return nil
			}
		}
	}
	return nil
}

// ApplyLayouts applies a drag/resize batch to the local widgets at once,
// then persists each entry concurrently. Persistence failures are logged
// and do not undo the local placement; the next Load converges on whatever
// the server kept.
func (c *Coordinator) ApplyLayouts(ctx context.Context, updates []domain.LayoutUpdate) {
	c.mu.Lock()
	for _, u := range updates {
		if w := c.widgetLocked(u.ID); w != nil {
			w.Layout = domain.Layout{X: u.X, Y: u.Y, W: u.W, H: u.H}
		}
	}
	c.mu.Unlock()

	var wg sync.WaitGroup
	for _, u := range updates {
		wg.Add(1)
		go func(u domain.LayoutUpdate) {
			defer wg.Done()
			layout := domain.Layout{X: u.X, Y: u.Y, W: u.W, H: u.H}
			if err := c.gw.UpdateWidgetLayout(ctx, u.ID, layout); err != nil {
				c.log.Error().Err(err).Str("widget_id", u.ID).Msg("layout persist failed")
			}
		}(u)
	}
	wg.Wait()
}

// Widget returns a copy of the widget with the given id, if loaded.
func (c *Coordinator) Widget(widgetID string) (*domain.Widget, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if w := c.widgetLocked(widgetID); w != nil {
		copied := *w
		return &copied, true
	}
	return nil, false
}

func (c *Coordinator) widgetLocked(widgetID string) *domain.Widget {
	for t := range c.tabs {
		for _, w := range c.tabs[t].Widgets {
			if w.ID == widgetID {
				return w
			}
		}
	}
	return nil
}

func (c *Coordinator) replaceWidgetLocked(updated *domain.Widget) {
	for t := range c.tabs {
		widgets := c.tabs[t].Widgets
		for i := range widgets {
			if widgets[i].ID == updated.ID {
				widgets[i] = updated
				return
			}
		}
	}
}
