// Package router распределяет запросы Bot API между несколькими транспортами
// (например, собственными серверами Bot API) и выводит из пула недоступные.
package router

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"telegram-update-normalizer/internal/ports"
	"telegram-update-normalizer/internal/requests"
)

var (
	// ErrNoHealthyTransports возвращается, когда в пуле нет доступных транспортов.
	ErrNoHealthyTransports = errors.New("no healthy transports available")
	// ErrNoTransports возвращается конструктором при пустом пуле.
	ErrNoTransports = errors.New("no transports provided to router")
)

// Option определяет функциональную опцию для конфигурации роутера.
type Option func(*Router)

// WithHealthCheckInterval — опция для установки интервала проверки работоспособности.
func WithHealthCheckInterval(d time.Duration) Option {
	return func(r *Router) {
		if d > 0 {
			r.healthCheckInterval = d
		}
	}
}

// WithStrategy — опция для установки стратегии выбора транспорта.
func WithStrategy(s ports.Strategy) Option {
	return func(r *Router) {
		if s != nil {
			r.strategy = s
		}
	}
}

// WithLogger — опция для установки логгера.
func WithLogger(l *slog.Logger) Option {
	return func(r *Router) {
		if l != nil {
			r.log = l.With("component", "router")
		}
	}
}

// Router управляет пулом транспортов, их состоянием и выбором.
// Сам Router тоже является ports.BotTransport. По стратегии распределяется
// только Execute. getUpdates закреплен за одним транспортом: смещение
// подтвержденных обновлений у каждого сервера Bot API свое.
type Router struct {
	mu        sync.RWMutex
	healthy   map[string]ports.PooledTransport
	unhealthy map[string]ports.PooledTransport
	strategy  ports.Strategy
	poller    string // транспорт, через который идет getUpdates
	log       *slog.Logger

	healthCheckInterval time.Duration
	ticker              *time.Ticker
	done                chan struct{}
	wg                  sync.WaitGroup
}

var _ ports.BotTransport = (*Router)(nil)

// NewRouter создает роутер и запускает фоновую проверку работоспособности.
func NewRouter(transports []ports.PooledTransport, opts ...Option) (*Router, error) {
	r := &Router{
		healthy:             make(map[string]ports.PooledTransport),
		unhealthy:           make(map[string]ports.PooledTransport),
		strategy:            NewRoundRobinStrategy(),
		healthCheckInterval: 30 * time.Second,
		done:                make(chan struct{}),
		log:                 slog.Default().With("component", "router"),
	}
	for _, opt := range opts {
		opt(r)
	}

	if len(transports) == 0 {
		return nil, ErrNoTransports
	}
	for _, t := range transports {
		if _, dup := r.healthy[t.ID()]; dup {
			return nil, fmt.Errorf("duplicate transport id %q", t.ID())
		}
		r.healthy[t.ID()] = t
	}

	r.ticker = time.NewTicker(r.healthCheckInterval)
	r.wg.Add(1)
	go r.healthCheckLoop()

	return r, nil
}

// GetUpdates выполняет getUpdates через закрепленный транспорт. Транспорт
// меняется, только когда закрепленный выведен из пула.
func (r *Router) GetUpdates(ctx context.Context, offset int64, timeoutSeconds int, allowedUpdates []string) ([]byte, error) {
	t, err := r.pollTransport(ctx)
	if err != nil {
		return nil, err
	}
	data, err := t.GetUpdates(ctx, offset, timeoutSeconds, allowedUpdates)
	if err != nil {
		r.log.WarnContext(ctx, "getUpdates call failed", "transport_id", t.ID(), "error", err)
	}
	r.handleError(ctx, t, err)
	return data, err
}

// Execute отправляет запрос через выбранный транспорт.
func (r *Router) Execute(ctx context.Context, req requests.Request) (json.RawMessage, error) {
	t, err := r.next(ctx)
	if err != nil {
		return nil, err
	}
	res, err := t.Execute(ctx, req)
	if err != nil {
		r.log.WarnContext(ctx, "request failed", "transport_id", t.ID(), "method", req.Method(), "error", err)
	}
	r.handleError(ctx, t, err)
	return res, err
}

// HealthyCount возвращает число транспортов в пуле здоровых.
func (r *Router) HealthyCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.healthy)
}

// SetStrategy позволяет безопасно сменить стратегию выбора на лету.
func (r *Router) SetStrategy(s ports.Strategy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.strategy = s
	r.log.Info("router strategy updated")
}

// Stop останавливает фоновую проверку работоспособности транспортов.
func (r *Router) Stop() {
	r.log.Info("stopping router...")
	r.ticker.Stop()
	close(r.done)
	r.wg.Wait()
	r.log.Info("router stopped")
}

// next выбирает здоровый транспорт согласно стратегии.
// Транспорты упорядочены по ID, чтобы обход по кругу был стабильным.
func (r *Router) next(ctx context.Context) (ports.PooledTransport, error) {
	r.mu.RLock()
	transports := make([]ports.PooledTransport, 0, len(r.healthy))
	for _, t := range r.healthy {
		transports = append(transports, t)
	}
	strategy := r.strategy
	r.mu.RUnlock()

	sort.Slice(transports, func(i, j int) bool { return transports[i].ID() < transports[j].ID() })

	t, err := strategy.Next(transports)
	if err != nil {
		r.log.ErrorContext(ctx, "Strategy failed to get next transport", "error", err)
		return nil, fmt.Errorf("strategy failed to get next transport: %w", err)
	}
	r.log.DebugContext(ctx, "Transport selected by strategy", "transport_id", t.ID())
	return t, nil
}

// pollTransport возвращает закрепленный за getUpdates транспорт. Если он
// выведен из пула, закрепляется здоровый транспорт с наименьшим ID.
func (r *Router) pollTransport(ctx context.Context) (ports.PooledTransport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.healthy[r.poller]; ok {
		return t, nil
	}

	var picked ports.PooledTransport
	for id, t := range r.healthy {
		if picked == nil || id < picked.ID() {
			picked = t
		}
	}
	if picked == nil {
		return nil, ErrNoHealthyTransports
	}

	if r.poller != "" {
		r.log.WarnContext(ctx, "getUpdates moved to another transport", "from", r.poller, "to", picked.ID())
	}
	r.poller = picked.ID()
	return picked, nil
}

// handleError запускает проверку транспорта после ошибки вызова.
// Отмена контекста вызывающей стороной сбоем транспорта не считается.
func (r *Router) handleError(ctx context.Context, t ports.PooledTransport, err error) {
	if err == nil || ctx.Err() != nil {
		return
	}
	go r.forceHealthCheck(t)
}

func (r *Router) healthCheckLoop() {
	defer r.wg.Done()
	for {
		select {
		case <-r.ticker.C:
			r.checkUnhealthyTransports()
		case <-r.done:
			return
		}
	}
}

// checkUnhealthyTransports пытается вернуть неработоспособные транспорты в пул.
func (r *Router) checkUnhealthyTransports() {
	r.mu.RLock()
	candidates := make([]ports.PooledTransport, 0, len(r.unhealthy))
	for _, t := range r.unhealthy {
		candidates = append(candidates, t)
	}
	r.mu.RUnlock()

	for _, t := range candidates {
		ctx, cancel := context.WithTimeout(context.Background(), r.healthCheckInterval)
		err := t.Health(ctx)
		cancel()
		if err == nil {
			r.setHealthy(t.ID())
		} else {
			r.log.Debug("Transport remains unhealthy", "transport_id", t.ID(), "reason", err)
		}
	}
}

// forceHealthCheck перемещает транспорт в пул неработоспособных, если getMe не проходит.
func (r *Router) forceHealthCheck(t ports.PooledTransport) {
	ctx, cancel := context.WithTimeout(context.Background(), r.healthCheckInterval)
	defer cancel()
	if err := t.Health(ctx); err != nil {
		r.log.Warn("Транспорт не прошел проверку после ошибки", "transport_id", t.ID(), "reason", err)
		r.setUnhealthy(t.ID())
	}
}

func (r *Router) setUnhealthy(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.healthy[id]
	if !ok {
		return
	}
	delete(r.healthy, id)
	r.unhealthy[id] = t

	r.log.Warn("Transport moved to unhealthy pool", "transport_id", id, "healthy_count", len(r.healthy), "unhealthy_count", len(r.unhealthy))
}

func (r *Router) setHealthy(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.unhealthy[id]
	if !ok {
		return
	}
	delete(r.unhealthy, id)
	r.healthy[id] = t

	r.log.Info("Transport moved back to healthy pool", "transport_id", id, "healthy_count", len(r.healthy), "unhealthy_count", len(r.unhealthy))
}
