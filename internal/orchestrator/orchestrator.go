// Package orchestrator runs the humanize pipeline: paraphrase, rule-based
// rewrites, and an optional grammar pass, one invocation at a time, on a
// background goroutine.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/valpere/humanizer/internal"
	"github.com/valpere/humanizer/internal/corrector"
	"github.com/valpere/humanizer/internal/paraphraser"
	"github.com/valpere/humanizer/internal/rules"
)

// Humanizer is the rule stage. *rules.Engine satisfies it.
type Humanizer interface {
	Apply(text string, rng rules.Random) string
}

// Recorder persists run outcomes. *store.Store satisfies it.
type Recorder interface {
	SaveRun(ctx context.Context, rec internal.RunRecord) error
}

// Request is one humanize invocation.
type Request struct {
	Text           string
	CorrectGrammar bool
}

// Result carries either Text or Err, never both.
type Result struct {
	ID   string
	Text string
	Err  *Error
}

// Failed reports whether the invocation ended in an error.
func (r Result) Failed() bool {
	return r.Err != nil
}

type Config struct {
	// Rand drives the opener stage. Only the in-flight worker touches it.
	Rand     rules.Random
	Logger   *zap.Logger
	Recorder Recorder
	// OnComplete is called exactly once per started invocation, from the
	// worker goroutine, after the busy slot is released.
	OnComplete func(Result)
}

type Orchestrator struct {
	paraphraser paraphraser.Service
	engine      Humanizer
	corrector   corrector.Corrector
	config      Config

	// slot holds a token while an invocation is in flight.
	slot chan struct{}
}

// New wires the pipeline. corr may be nil when grammar correction is never
// requested; a nil engine selects the default rule table.
func New(svc paraphraser.Service, engine Humanizer, corr corrector.Corrector, config Config) *Orchestrator {
	if engine == nil {
		engine = rules.NewEngine(nil)
	}
	if config.Rand == nil {
		config.Rand = rules.NewRand(uint64(time.Now().UnixNano()))
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}
	return &Orchestrator{
		paraphraser: svc,
		engine:      engine,
		corrector:   corr,
		config:      config,
		slot:        make(chan struct{}, 1),
	}
}

// Task is a started invocation.
type Task struct {
	id     string
	done   chan struct{}
	result Result
}

func (t *Task) ID() string {
	return t.id
}

// Done is closed once the result is available.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the invocation finishes and returns its result.
func (t *Task) Wait() Result {
	<-t.done
	return t.result
}

// Busy reports whether an invocation is in flight.
func (o *Orchestrator) Busy() bool {
	return len(o.slot) == cap(o.slot)
}

// TryRun validates req and starts it in the background, or returns ErrBusy
// if another invocation is still running. Empty input fails synchronously
// with an *Error of kind InputError.
func (o *Orchestrator) TryRun(ctx context.Context, req Request) (*Task, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	select {
	case o.slot <- struct{}{}:
	default:
		return nil, ErrBusy
	}
	return o.start(ctx, req), nil
}

// Run is TryRun with a queueing policy: the caller waits for the in-flight
// invocation to finish instead of being rejected. ctx only bounds that wait;
// once started, an invocation always runs to completion. A ctx that is
// already done never starts one, even when the slot is free.
func (o *Orchestrator) Run(ctx context.Context, req Request) (*Task, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	select {
	case o.slot <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return o.start(ctx, req), nil
}

func validate(req Request) error {
	if strings.TrimSpace(req.Text) == "" {
		return &Error{Kind: InputError, Detail: "input text is empty"}
	}
	return nil
}

func (o *Orchestrator) start(ctx context.Context, req Request) *Task {
	t := &Task{id: uuid.NewString(), done: make(chan struct{})}
	go o.work(context.WithoutCancel(ctx), t, req)
	return t
}

func (o *Orchestrator) work(ctx context.Context, t *Task, req Request) {
	started := time.Now()
	log := o.config.Logger.With(zap.String("run_id", t.id))
	text := strings.TrimSpace(req.Text)

	log.Debug("humanize started",
		zap.String("paraphraser", o.paraphraser.Name()),
		zap.Int("input_chars", utf8.RuneCountInString(text)),
		zap.Bool("correct_grammar", req.CorrectGrammar))

	defer func() {
		if r := recover(); r != nil {
			log.Error("humanize panicked", zap.Any("panic", r))
			t.result = Result{ID: t.id, Err: &Error{Kind: InternalError, Detail: fmt.Sprint(r)}}
		}
		<-o.slot
		o.finish(ctx, t, req, text, started, log)
	}()

	t.result = o.process(ctx, t.id, text, req.CorrectGrammar, log)
}

func (o *Orchestrator) process(ctx context.Context, id, text string, correctGrammar bool, log *zap.Logger) Result {
	paraphrased, err := o.paraphrase(ctx, text)
	if err != nil {
		log.Warn("paraphrase failed", zap.String("paraphraser", o.paraphraser.Name()), zap.Error(err))
		return Result{ID: id, Err: newError(ServiceError, err)}
	}

	humanized := o.engine.Apply(paraphrased, o.config.Rand)

	if !correctGrammar {
		return Result{ID: id, Text: humanized}
	}

	corrected, err := o.correct(ctx, humanized)
	if err != nil {
		log.Warn("grammar correction failed", zap.Error(err))
		return Result{ID: id, Err: newError(CorrectionError, err)}
	}
	return Result{ID: id, Text: corrected}
}

func (o *Orchestrator) paraphrase(ctx context.Context, text string) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("paraphraser panicked: %v", r)
		}
	}()
	return o.paraphraser.Paraphrase(ctx, paraphraser.Prompt(text))
}

func (o *Orchestrator) correct(ctx context.Context, text string) (out string, err error) {
	if o.corrector == nil {
		return "", errors.New("no grammar corrector configured")
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("grammar corrector panicked: %v", r)
		}
	}()
	return o.corrector.Correct(ctx, text)
}

func (o *Orchestrator) finish(ctx context.Context, t *Task, req Request, input string, started time.Time, log *zap.Logger) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("completion hook panicked", zap.Any("panic", r))
		}
		close(t.done)
	}()

	elapsed := time.Since(started)
	res := t.result

	if res.Failed() {
		log.Info("humanize failed", zap.Stringer("kind", res.Err.Kind), zap.Duration("duration", elapsed))
	} else {
		log.Info("humanize finished", zap.Int("output_chars", utf8.RuneCountInString(res.Text)), zap.Duration("duration", elapsed))
	}

	if o.config.Recorder != nil {
		rec := internal.RunRecord{
			ID:             t.id,
			StartedAt:      started,
			Duration:       elapsed,
			Paraphraser:    o.paraphraser.Name(),
			CorrectGrammar: req.CorrectGrammar,
			InputChars:     utf8.RuneCountInString(input),
			OutputChars:    utf8.RuneCountInString(res.Text),
		}
		if o.corrector != nil {
			rec.Corrector = o.corrector.Name()
		}
		if res.Failed() {
			rec.ErrorKind = res.Err.Kind.String()
		}
		if err := o.config.Recorder.SaveRun(ctx, rec); err != nil {
			log.Warn("failed to record run", zap.Error(err))
		}
	}

	if o.config.OnComplete != nil {
		o.config.OnComplete(res)
	}
}
