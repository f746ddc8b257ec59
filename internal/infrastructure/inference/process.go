package inference

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"screen-agent/internal/application/port/output"
	"screen-agent/internal/domain/entity"
	"screen-agent/internal/infrastructure/worker"
)

var _ output.InferencePort = (*ProcessInvoker)(nil)

type Config struct {
	// Command is the worker executable, started as Command Args...
	Command string        `mapstructure:"command"`
	Args    []string      `mapstructure:"args"`
	Env     []string      `mapstructure:"env"`
	Timeout time.Duration `mapstructure:"timeout"`
	// WaitDelay bounds how long a worker may linger after answering, and how
	// long its pipes are waited for once it has been killed.
	WaitDelay time.Duration `mapstructure:"wait_delay"`
}

func DefaultConfig() Config {
	return Config{
		Args:      []string{"worker"},
		Timeout:   10 * time.Minute,
		WaitDelay: 5 * time.Second,
	}
}

const stderrTailLines = 20

// ProcessInvoker runs every call in a fresh worker process so that nothing
// the model allocates outlives the call. Calls are serialised: at most one
// worker is alive per invoker.
type ProcessInvoker struct {
	cfg    Config
	model  entity.ModelConfig
	slot   *semaphore.Weighted
	logger output.LoggerPort
}

func NewProcessInvoker(cfg Config, model entity.ModelConfig, logger output.LoggerPort) *ProcessInvoker {
	return &ProcessInvoker{
		cfg:    cfg,
		model:  model,
		slot:   semaphore.NewWeighted(1),
		logger: logger.WithField("model", model.Name),
	}
}

func (p *ProcessInvoker) Model() entity.ModelConfig {
	return p.model
}

func (p *ProcessInvoker) Invoke(ctx context.Context, req output.InferenceRequest) (*output.InferenceResult, error) {
	messages := BuildMessages(req.System, req.User, req.Payloads, p.model.Capabilities)

	if err := p.slot.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("wait for worker slot: %w", err)
	}
	defer p.slot.Release(1)

	started := time.Now()
	text, err := p.run(ctx, worker.Request{
		ID:       uuid.NewString(),
		Model:    p.model,
		Messages: messages,
	})
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%s: %w", p.model.Name, entity.ErrEmptyGeneration)
	}

	p.logger.Debug("Inference finished", "duration", time.Since(started), "chars", len(text))
	return &output.InferenceResult{Messages: messages, Text: text}, nil
}

// run executes one worker process. Whatever happens, the process is waited
// for and both pipe readers are joined before run returns.
func (p *ProcessInvoker) run(ctx context.Context, req worker.Request) (string, error) {
	if p.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.Timeout)
		defer cancel()
	}
	ctx, kill := context.WithCancel(ctx)
	defer kill()

	payload, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("encode worker request: %w", err)
	}

	log := p.logger.WithField("request", req.ID)

	stdoutR, stdoutW := io.Pipe()
	stderrR, stderrW := io.Pipe()

	cmd := exec.CommandContext(ctx, p.cfg.Command, p.cfg.Args...)
	cmd.Env = append(os.Environ(), p.cfg.Env...)
	cmd.Stdin = bytes.NewReader(payload)
	cmd.Stdout = stdoutW
	cmd.Stderr = stderrW
	cmd.WaitDelay = p.cfg.WaitDelay

	if err := cmd.Start(); err != nil {
		stdoutW.Close()
		stderrW.Close()
		return "", fmt.Errorf("%w: start %s: %w", entity.ErrWorkerFailed, p.cfg.Command, err)
	}
	log.Debug("Worker started", "pid", cmd.Process.Pid)

	results := make(chan worker.Response, 1)
	var (
		g     errgroup.Group
		grace *time.Timer
		tail  = newLineTail(stderrTailLines)
	)

	g.Go(func() error {
		defer io.Copy(io.Discard, stdoutR)
		var resp worker.Response
		if err := json.NewDecoder(stdoutR).Decode(&resp); err != nil {
			return fmt.Errorf("decode worker response: %w", err)
		}
		results <- resp
		if p.cfg.WaitDelay > 0 {
			grace = time.AfterFunc(p.cfg.WaitDelay, kill)
		}
		return nil
	})

	g.Go(func() error {
		defer io.Copy(io.Discard, stderrR)
		scanner := bufio.NewScanner(stderrR)
		for scanner.Scan() {
			line := scanner.Text()
			tail.add(line)
			log.Debug("Worker output", "line", line)
		}
		return scanner.Err()
	})

	waitErr := cmd.Wait()
	stdoutW.Close()
	stderrW.Close()
	readErr := g.Wait()
	if grace != nil {
		grace.Stop()
	}

	var resp worker.Response
	select {
	case resp = <-results:
	default:
		cause := errors.Join(waitErr, readErr)
		if ctxErr := ctx.Err(); ctxErr != nil {
			cause = errors.Join(ctxErr, cause)
		}
		log.Error("Worker ended without a result", "error", cause, "stderr", tail.String())
		return "", fmt.Errorf("%w: %w", entity.ErrWorkerFailed, cause)
	}

	if resp.Error != "" {
		log.Error("Worker reported failure", "error", resp.Error, "exit", waitErr)
		return "", fmt.Errorf("%w: %s", entity.ErrWorkerFailed, resp.Error)
	}
	if resp.ID != req.ID {
		return "", fmt.Errorf("%w: response for request %q, want %q", entity.ErrWorkerFailed, resp.ID, req.ID)
	}
	if waitErr != nil {
		log.Warn("Worker answered but did not exit cleanly", "error", waitErr)
	}
	return resp.Text, nil
}

// lineTail keeps the last n lines written by a worker for error reports.
type lineTail struct {
	mu    sync.Mutex
	n     int
	lines []string
}

func newLineTail(n int) *lineTail {
	return &lineTail{n: n}
}

func (t *lineTail) add(line string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lines = append(t.lines, line)
	if len(t.lines) > t.n {
		t.lines = t.lines[len(t.lines)-t.n:]
	}
}

func (t *lineTail) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return strings.Join(t.lines, "\n")
}
