// Package batch runs files of messages, each on its own machine, and checks
// the output against the expected text.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/tldr-it-stepankutaj/enigmakit/internal/app"
	"github.com/tldr-it-stepankutaj/enigmakit/internal/enigma"
	"github.com/tldr-it-stepankutaj/enigmakit/internal/inventory"
	"github.com/tldr-it-stepankutaj/enigmakit/internal/models"
)

// Result statuses.
const (
	StatusPassed  = "passed"
	StatusFailed  = "failed"
	StatusError   = "error"
	StatusSkipped = "skipped"
)

var (
	// ErrEmptyJob is returned for a job without messages.
	ErrEmptyJob = errors.New("batch: job has no messages")
	// ErrFormat is returned for a job file that is neither YAML nor TOML.
	ErrFormat = errors.New("batch: unsupported job file format")
)

// Job is a named list of messages sharing a default setup.
type Job struct {
	Name        string    `yaml:"name" toml:"name" json:"name"`
	Description string    `yaml:"description,omitempty" toml:"description,omitempty" json:"description,omitempty"`
	Defaults    Setup     `yaml:"defaults,omitempty" toml:"defaults,omitempty" json:"defaults,omitempty"`
	Messages    []Message `yaml:"messages" toml:"messages" json:"messages"`
}

// Setup is the key a message is sent with. Empty fields fall back to the
// job defaults.
type Setup struct {
	Model     string   `yaml:"model,omitempty" toml:"model,omitempty" json:"model,omitempty"`
	Reflector string   `yaml:"reflector,omitempty" toml:"reflector,omitempty" json:"reflector,omitempty"`
	EntryDisc string   `yaml:"entry_disc,omitempty" toml:"entry_disc,omitempty" json:"entry_disc,omitempty"`
	Rotors    []string `yaml:"rotors,omitempty" toml:"rotors,omitempty" json:"rotors,omitempty"`
	// RingSettings is a letter string or a list of one based numbers.
	RingSettings any `yaml:"ring_settings,omitempty" toml:"ring_settings,omitempty" json:"ring_settings,omitempty"`
	// Plugs is a space separated string or a list of pairs.
	Plugs any `yaml:"plugs,omitempty" toml:"plugs,omitempty" json:"plugs,omitempty"`
}

// Message is one text to put through a machine.
type Message struct {
	ID     string `yaml:"id,omitempty" toml:"id,omitempty" json:"id,omitempty"`
	Name   string `yaml:"name,omitempty" toml:"name,omitempty" json:"name,omitempty"`
	Setup  *Setup `yaml:"setup,omitempty" toml:"setup,omitempty" json:"setup,omitempty"`
	Start  string `yaml:"start" toml:"start" json:"start"`
	Text   string `yaml:"text" toml:"text" json:"text"`
	Expect string `yaml:"expect,omitempty" toml:"expect,omitempty" json:"expect,omitempty"`
	// Parallel messages next to each other run at the same time.
	Parallel bool `yaml:"parallel,omitempty" toml:"parallel,omitempty" json:"parallel,omitempty"`
}

// Result holds the outcome of one message.
type Result struct {
	ID            string               `json:"id"`
	Name          string               `json:"name"`
	Status        string               `json:"status"`
	Start         string               `json:"start"`
	End           string               `json:"end,omitempty"`
	Input         string               `json:"input"`
	Output        string               `json:"output,omitempty"`
	Expect        string               `json:"expect,omitempty"`
	Configuration enigma.Configuration `json:"configuration"`
	Steps         int                  `json:"steps"`
	DoubleSteps   int                  `json:"double_steps"`
	Duration      time.Duration        `json:"duration"`
	Error         string               `json:"error,omitempty"`
}

// Run is the outcome of a whole job.
type Run struct {
	ID        string        `json:"id"`
	Job       string        `json:"job"`
	Status    string        `json:"status"`
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Duration  time.Duration `json:"duration"`
	Passed    int           `json:"passed"`
	Failed    int           `json:"failed"`
	Errors    int           `json:"errors"`
	Skipped   int           `json:"skipped"`
	Results   []*Result     `json:"results"`
}

// LoadJob reads a job from a YAML or TOML file, chosen by extension.
func LoadJob(path string) (*Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job file: %w", err)
	}

	var job Job
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &job)
	case ".toml":
		err = toml.Unmarshal(data, &job)
	default:
		return nil, fmt.Errorf("%w: %s", ErrFormat, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse job: %w", err)
	}

	assignIDs(&job)
	return &job, nil
}

// SaveJob writes a job as YAML or TOML, chosen by extension.
func SaveJob(job *Job, path string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(job)
	case ".toml":
		data, err = toml.Marshal(job)
	default:
		return fmt.Errorf("%w: %s", ErrFormat, path)
	}
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func assignIDs(job *Job) {
	for i := range job.Messages {
		if job.Messages[i].ID == "" {
			job.Messages[i].ID = fmt.Sprintf("msg_%d", i+1)
		}
	}
}

// Execute runs every message of job on a fresh machine. Neighbouring
// messages flagged parallel run concurrently; machines are never shared.
// When ctx.Ctx is cancelled the messages not yet started are skipped and the
// context error is returned with the partial run.
func Execute(ctx app.Context, job *Job) (*Run, error) {
	if job == nil || len(job.Messages) == 0 {
		return nil, ErrEmptyJob
	}
	assignIDs(job)

	c := ctx.Ctx
	if c == nil {
		c = context.Background()
	}
	inv := ctx.Inventory
	if inv == nil {
		inv = inventory.Standard()
	}
	reg := ctx.Models
	if reg == nil {
		reg = models.Standard()
	}
	logger := ctx.Logger
	if logger == nil {
		logger = slog.Default()
	}

	run := &Run{
		ID:        uuid.NewString(),
		Job:       job.Name,
		StartTime: time.Now(),
		Results:   make([]*Result, len(job.Messages)),
	}
	logger.Info("batch started", "job", job.Name, "run", run.ID, "messages", len(job.Messages))

	for i := 0; i < len(job.Messages); {
		end := i + 1
		if job.Messages[i].Parallel {
			for end < len(job.Messages) && job.Messages[end].Parallel {
				end++
			}
		}

		var wg sync.WaitGroup
		for j := i; j < end; j++ {
			if c.Err() != nil {
				run.Results[j] = skipped(job.Messages[j])
				continue
			}
			j := j
			wg.Add(1)
			go func() {
				defer wg.Done()
				run.Results[j] = executeMessage(inv, reg, logger, job.Defaults, job.Messages[j])
			}()
		}
		wg.Wait()
		i = end
	}

	finish(run)
	logger.Info("batch finished", "job", job.Name, "status", run.Status,
		"passed", run.Passed, "failed", run.Failed, "errors", run.Errors, "skipped", run.Skipped)
	return run, c.Err()
}

func skipped(msg Message) *Result {
	return &Result{ID: msg.ID, Name: msg.Name, Status: StatusSkipped, Start: msg.Start, Input: msg.Text, Expect: msg.Expect}
}

func executeMessage(inv *inventory.Inventory, reg *models.Registry, logger *slog.Logger, defaults Setup, msg Message) *Result {
	began := time.Now()
	res := &Result{ID: msg.ID, Name: msg.Name, Start: msg.Start, Input: msg.Text, Expect: msg.Expect}
	defer func() { res.Duration = time.Since(began) }()

	fail := func(err error) *Result {
		res.Status = StatusError
		res.Error = err.Error()
		logger.Warn("message could not be run", "id", msg.ID, "err", err)
		return res
	}

	if msg.Start == "" {
		return fail(fmt.Errorf("message %s has no start position", msg.ID))
	}
	mc := defaults.merge(msg.Setup).machineConfig(msg.ID)
	m, err := app.BuildMachine(mc, inv, reg, logger)
	if err != nil {
		return fail(err)
	}
	res.Configuration = m.Configuration()

	m.Listen("batch", enigma.ListenerFunc(func(e enigma.Event) {
		switch e.Kind {
		case enigma.EventStep:
			res.Steps++
		case enigma.EventDoubleStep:
			res.DoubleSteps++
		}
	}))

	out, err := m.Translate(enigma.Letters(msg.Start), msg.Text)
	if err != nil {
		return fail(err)
	}
	res.Output = out
	res.End = m.Windows()

	res.Status = StatusPassed
	if msg.Expect != "" && normalize(msg.Expect) != out {
		res.Status = StatusFailed
		logger.Debug("unexpected output", "id", msg.ID, "want", normalize(msg.Expect), "got", out)
	}
	return res
}

func finish(run *Run) {
	run.EndTime = time.Now()
	run.Duration = run.EndTime.Sub(run.StartTime)
	for _, r := range run.Results {
		switch r.Status {
		case StatusPassed:
			run.Passed++
		case StatusFailed:
			run.Failed++
		case StatusError:
			run.Errors++
		case StatusSkipped:
			run.Skipped++
		}
	}

	switch {
	case run.Skipped > 0:
		run.Status = "cancelled"
	case run.Failed+run.Errors > 0:
		run.Status = StatusFailed
	default:
		run.Status = StatusPassed
	}
}

// normalize puts expected text in the form Translate produces.
func normalize(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToUpper(r)
	}, s)
}

func (s Setup) merge(o *Setup) Setup {
	if o == nil {
		return s
	}
	if o.Model != "" {
		s.Model = o.Model
	}
	if o.Reflector != "" {
		s.Reflector = o.Reflector
	}
	if o.EntryDisc != "" {
		s.EntryDisc = o.EntryDisc
	}
	if len(o.Rotors) > 0 {
		s.Rotors = o.Rotors
	}
	if o.RingSettings != nil {
		s.RingSettings = o.RingSettings
	}
	if o.Plugs != nil {
		s.Plugs = o.Plugs
	}
	return s
}

func (s Setup) machineConfig(name string) app.MachineConfig {
	return app.MachineConfig{
		Name:         name,
		Model:        s.Model,
		Reflector:    s.Reflector,
		EntryDisc:    s.EntryDisc,
		Rotors:       s.Rotors,
		RingSettings: s.RingSettings,
		Plugs:        s.Plugs,
	}
}
