package world

import (
	"context"
	"fmt"
	"time"

	"monkey-social/internal/platform/logger"

	"github.com/robfig/cron/v3"
)

const DefaultSchedule = "@every 15m"

// Scheduler dispara Tick según una expresión cron. Un tick que se demora hace saltar
// el siguiente en vez de solaparse.
type Scheduler struct {
	cron    *cron.Cron
	job     *Job
	log     logger.Logger
	timeout time.Duration
}

// cronLogger adapta logger.Logger a cron.Logger.
type cronLogger struct {
	log logger.Logger
}

func (l cronLogger) Info(msg string, kv ...any) {
	l.log.Debug("cron: "+msg, kvFields(kv))
}

func (l cronLogger) Error(err error, msg string, kv ...any) {
	f := kvFields(kv)
	f["err"] = err
	l.log.Error("cron: "+msg, f)
}

func kvFields(kv []any) map[string]any {
	out := make(map[string]any, len(kv)/2+1)
	for i := 0; i+1 < len(kv); i += 2 {
		out[fmt.Sprint(kv[i])] = kv[i+1]
	}
	return out
}

// NewScheduler valida spec y registra el job. timeout acota cada tick (0 = sin límite).
func NewScheduler(spec string, job *Job, log logger.Logger, timeout time.Duration) (*Scheduler, error) {
	if spec == "" {
		spec = DefaultSchedule
	}
	if log == nil {
		log = logger.Nop()
	}
	cl := cronLogger{log: log}
	c := cron.New(
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)

	s := &Scheduler{cron: c, job: job, log: log, timeout: timeout}
	if _, err := c.AddFunc(spec, s.runOnce); err != nil {
		return nil, fmt.Errorf("world: invalid schedule %q: %w", spec, err)
	}
	return s, nil
}

func (s *Scheduler) runOnce() {
	ctx := context.Background()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	if _, err := s.job.Tick(ctx); err != nil {
		s.log.Error("world tick failed", map[string]any{"err": err})
	}
}

// Run arranca el cron y bloquea hasta que ctx termina; espera al tick en curso antes de volver.
func (s *Scheduler) Run(ctx context.Context) {
	s.cron.Start()
	s.log.Info("world scheduler started", map[string]any{"entries": len(s.cron.Entries())})
	<-ctx.Done()
	<-s.cron.Stop().Done()
	s.log.Info("world scheduler stopped", nil)
}
