// Package service runs chart operations for one child at a time against
// persistent storage and fans changes out to live clients.
package service

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"sync"
	"time"

	"github.com/dukerupert/chartmaker/internal/chart"
	"github.com/dukerupert/chartmaker/internal/controller"
	"github.com/dukerupert/chartmaker/internal/illustration"
	"github.com/dukerupert/chartmaker/internal/model"
	"github.com/dukerupert/chartmaker/internal/progress"
	"github.com/dukerupert/chartmaker/internal/store"
	"github.com/dukerupert/chartmaker/internal/websocket"
)

var ErrInvalidChildKey = errors.New("child key must be 1-64 characters of a-z, 0-9, '-' or '_'")

var childKeyPattern = regexp.MustCompile(`^[a-z0-9_-]{1,64}$`)

// ValidChildKey reports whether key can address a chart.
func ValidChildKey(key string) bool {
	return childKeyPattern.MatchString(key)
}

// Queue accepts illustration jobs without blocking.
type Queue interface {
	Enqueue(job illustration.Job) error
}

// ChartService serialises every operation behind one mutex. Within a
// process the last write wins; nothing coordinates across processes.
type ChartService struct {
	mu       sync.Mutex
	charts   *store.ChartStore
	children *store.ChildStore
	progress *progress.Store
	hub      *websocket.Hub
	queue    Queue
	now      func() time.Time
	chartOpt []chart.Option
	logger   *slog.Logger
}

type Option func(*ChartService)

func WithClock(now func() time.Time) Option {
	return func(s *ChartService) { s.now = now }
}

func WithHub(hub *websocket.Hub) Option {
	return func(s *ChartService) { s.hub = hub }
}

func WithQueue(q Queue) Option {
	return func(s *ChartService) { s.queue = q }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *ChartService) { s.logger = logger }
}

// WithChartOptions passes options to every chart the service builds.
func WithChartOptions(opts ...chart.Option) Option {
	return func(s *ChartService) { s.chartOpt = append(s.chartOpt, opts...) }
}

func New(charts *store.ChartStore, children *store.ChildStore, ps *progress.Store, opts ...Option) *ChartService {
	s := &ChartService{
		charts:   charts,
		children: children,
		progress: ps,
		now:      time.Now,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetQueue attaches the illustration queue after construction; the worker
// and the service reference each other.
func (s *ChartService) SetQueue(q Queue) {
	s.mu.Lock()
	s.queue = q
	s.mu.Unlock()
}

func (s *ChartService) broadcast(msg websocket.Message) {
	if s.hub != nil {
		s.hub.Broadcast(msg)
	}
}

// load returns the stored chart, or an empty one when the child has none.
func (s *ChartService) load(key string) (*chart.Chart, bool, error) {
	snap, err := s.charts.Get(key)
	if err != nil {
		return nil, false, fmt.Errorf("load chart %s: %w", key, err)
	}
	if snap == nil {
		return chart.New("", s.chartOpt...), false, nil
	}
	return chart.FromSnapshot(*snap, s.chartOpt...), true, nil
}

func (s *ChartService) controller(key string, c *chart.Chart) *controller.Controller {
	return controller.New(c, s.progress, key,
		controller.WithClock(s.now),
		controller.WithLogger(s.logger),
	)
}

// open loads the chart for key and wraps it in a controller.
func (s *ChartService) open(key string) (*controller.Controller, error) {
	if !ValidChildKey(key) {
		return nil, ErrInvalidChildKey
	}
	c, _, err := s.load(key)
	if err != nil {
		return nil, err
	}
	return s.controller(key, c), nil
}

// edit runs fn against the chart and persists the result.
func (s *ChartService) edit(key string, fn func(ctl *controller.Controller) error) error {
	ctl, err := s.open(key)
	if err != nil {
		return err
	}
	if err := fn(ctl); err != nil {
		return err
	}
	if err := s.charts.Save(key, ctl.Chart().Snapshot()); err != nil {
		return fmt.Errorf("save chart %s: %w", key, err)
	}
	return nil
}

// ListCharts returns every child that has a stored chart.
func (s *ChartService) ListCharts() ([]model.Child, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.children.List()
}

// Chart returns the snapshot for key; unknown children get an empty chart.
func (s *ChartService) Chart(key string) (model.Chart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctl, err := s.open(key)
	if err != nil {
		return model.Chart{}, err
	}
	return ctl.Chart().Snapshot(), nil
}

// UpdateChild sets the display name and age, creating the chart if needed.
func (s *ChartService) UpdateChild(key, name, age string) (*model.Child, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !ValidChildKey(key) {
		return nil, ErrInvalidChildKey
	}
	child, err := s.children.Upsert(key, name, age)
	if err != nil {
		return nil, err
	}
	s.broadcast(websocket.NewMessage(key, websocket.EntityChart, "updated", "", map[string]any{"name": name}))
	return child, nil
}

// DeleteChart removes the chart. The progress record is left in storage.
func (s *ChartService) DeleteChart(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !ValidChildKey(key) {
		return ErrInvalidChildKey
	}
	if err := s.children.Delete(key); err != nil {
		return err
	}
	s.broadcast(websocket.NewMessage(key, websocket.EntityChart, "deleted", "", nil))
	return nil
}
