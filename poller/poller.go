// Package poller периодически перечитывает матчи из удалённого хранилища и держит
// последнюю удачную копию в памяти.
package poller

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/Dosada05/tournament-dashboard/gateway"
	"github.com/Dosada05/tournament-dashboard/models"
)

const DefaultInterval = 5 * time.Second

var ErrAlreadyRunning = errors.New("poller is already running")

type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateError   State = "error"
)

// Source - откуда поллер берёт матчи.
type Source interface {
	Fetch(ctx context.Context) ([]models.Match, error)
}

type SourceFunc func(ctx context.Context) ([]models.Match, error)

func (f SourceFunc) Fetch(ctx context.Context) ([]models.Match, error) { return f(ctx) }

// StageSource читает один раунд через шлюз. Пустой stage - все матчи.
func StageSource(r gateway.MatchReader, stage models.Stage) Source {
	return SourceFunc(func(ctx context.Context) ([]models.Match, error) {
		return r.ListMatches(ctx, stage)
	})
}

type Status struct {
	State       State      `json:"state"`
	Error       string     `json:"error,omitempty"`
	LastUpdated *time.Time `json:"last_updated,omitempty"`
	FirstLoad   bool       `json:"first_load"`
}

type Snapshot struct {
	Status
	Matches []models.Match `json:"matches"`
}

type Config struct {
	Name     string
	Source   Source
	Interval time.Duration
	Clock    clockwork.Clock
	Logger   *slog.Logger
	// OnUpdate вызывается после каждого удачного чтения, вне блокировки.
	OnUpdate func(matches []models.Match)
}

// Poller читает источник, ждёт Interval после завершения чтения и читает снова.
// Жизненный цикл: Start, затем Stop или отмена ctx; после остановки можно запустить снова.
// Чтения никогда не перекрываются.
type Poller struct {
	name     string
	source   Source
	interval time.Duration
	clock    clockwork.Clock
	logger   *slog.Logger
	onUpdate func([]models.Match)

	reload chan struct{}

	mu          sync.RWMutex
	state       State
	matches     []models.Match
	lastErr     string
	lastUpdated time.Time
	cycles      int
	cancel      context.CancelFunc
	done        chan struct{}
}

func New(cfg Config) (*Poller, error) {
	if cfg.Source == nil {
		return nil, errors.New("poller source is required")
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Name == "" {
		cfg.Name = "matches"
	}

	return &Poller{
		name:     cfg.Name,
		source:   cfg.Source,
		interval: cfg.Interval,
		clock:    cfg.Clock,
		logger:   cfg.Logger.With(slog.String("component", "poller"), slog.String("feed", cfg.Name)),
		onUpdate: cfg.OnUpdate,
		reload:   make(chan struct{}, 1),
		state:    StateIdle,
		matches:  []models.Match{},
	}, nil
}

// Start регистрирует запуск и крутит цикл в отдельной горутине до отмены ctx
// или вызова Stop. Первое чтение сразу. Stop, вызванный сразу после Start,
// гарантированно останавливает цикл.
func (p *Poller) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.cancel != nil {
		p.mu.Unlock()
		return ErrAlreadyRunning
	}
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	p.cancel = cancel
	p.done = done
	p.mu.Unlock()

	go p.loop(ctx, cancel, done)
	return nil
}

func (p *Poller) loop(ctx context.Context, cancel context.CancelFunc, done chan struct{}) {
	defer func() {
		cancel()
		p.mu.Lock()
		p.cancel = nil
		p.done = nil
		if p.state == StateLoading {
			p.state = StateIdle
		}
		p.mu.Unlock()
		close(done)
	}()

	p.logger.Info("poller started", slog.Duration("interval", p.interval))
	for ctx.Err() == nil {
		p.cycle(ctx)
		if ctx.Err() != nil {
			break
		}

		timer := p.clock.NewTimer(p.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
		case <-timer.Chan():
		case <-p.reload:
			timer.Stop()
		}
	}
	p.logger.Info("poller stopped")
}

// Stop отменяет запланированное и текущее чтение и ждёт выхода из цикла.
// Результат чтения, завершившегося после Stop, отбрасывается.
// Нельзя вызывать из OnUpdate.
func (p *Poller) Stop() {
	p.mu.RLock()
	cancel, done := p.cancel, p.done
	p.mu.RUnlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Reload просит немедленное чтение. Если чтение уже идёт, следующее
// начнётся сразу после него.
func (p *Poller) Reload() {
	select {
	case p.reload <- struct{}{}:
	default:
	}
}

func (p *Poller) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return Snapshot{
		Status:  p.statusLocked(),
		Matches: slices.Clone(p.matches),
	}
}

func (p *Poller) Status() Status {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.statusLocked()
}

func (p *Poller) statusLocked() Status {
	st := Status{
		State:     p.state,
		Error:     p.lastErr,
		FirstLoad: p.cycles == 0,
	}
	if !p.lastUpdated.IsZero() {
		t := p.lastUpdated
		st.LastUpdated = &t
	}
	return st
}

func (p *Poller) cycle(ctx context.Context) {
	p.mu.Lock()
	if ctx.Err() != nil {
		p.mu.Unlock()
		return
	}
	p.state = StateLoading
	p.mu.Unlock()

	matches, err := p.source.Fetch(ctx)

	p.mu.Lock()
	if ctx.Err() != nil {
		p.mu.Unlock()
		p.logger.Debug("discarding result of cancelled read")
		return
	}
	p.cycles++
	if err != nil {
		p.state = StateError
		p.lastErr = errorMessage(err)
		p.mu.Unlock()
		p.logger.Warn("poll failed, keeping previous snapshot", slog.Any("error", err))
		return
	}

	if matches == nil {
		matches = []models.Match{}
	}
	p.matches = matches
	p.state = StateReady
	p.lastErr = ""
	p.lastUpdated = p.clock.Now()
	p.mu.Unlock()

	p.logger.Debug("poll succeeded", slog.Int("matches", len(matches)))
	if p.onUpdate != nil {
		p.onUpdate(slices.Clone(matches))
	}
}

func errorMessage(err error) string {
	if reason, ok := gateway.Reason(err); ok {
		return reason
	}
	return err.Error()
}
