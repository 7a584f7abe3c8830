package cmd

import (
	"context"
	"io"
	"sync"

	"github.com/eykd/manifestlint-go/internal/config"
	"github.com/eykd/manifestlint-go/internal/domain"
	"github.com/eykd/manifestlint-go/internal/fs"
	"github.com/eykd/manifestlint-go/internal/logging"
	"github.com/eykd/manifestlint-go/internal/policy"
	"github.com/eykd/manifestlint-go/internal/validator"
)

// environment loads configuration and the logger once per process, after
// flags are parsed.
type environment struct {
	stdin      io.Reader
	stderr     io.Writer
	loadConfig func(config.Options) (*config.Config, error)
	loadPolicy func(path string) (domain.Policy, error)

	once sync.Once
	cfg  *config.Config
	log  *logging.Logger
	err  error
}

func newEnvironment(stdin io.Reader, stderr io.Writer) *environment {
	return &environment{
		stdin:      stdin,
		stderr:     stderr,
		loadConfig: config.Load,
		loadPolicy: policy.LoadFile,
	}
}

func (e *environment) setup() error {
	e.once.Do(func() {
		cfg, err := e.loadConfig(config.Options{File: GetConfigFile()})
		if err != nil {
			e.err = &ContextError{Op: "load config", Path: GetConfigFile(), Err: err}
			return
		}
		if l := GetLogLevel(); l != "" {
			cfg.Logging.Level = l
		}
		if f := GetLogFormat(); f != "" {
			cfg.Logging.Format = f
		}
		if err := cfg.Validate(); err != nil {
			e.err = err
			return
		}

		e.cfg = cfg
		e.log = logging.New(logging.Options{
			Level:   cfg.Logging.Level,
			Format:  cfg.Logging.Format,
			Output:  e.stderr,
			Verbose: GetVerbose(),
		}).WithComponent("cli")
	})
	return e.err
}

// resolvePolicy loads file, falling back to the configured policy file and
// then to the built-in policy.
func (e *environment) resolvePolicy(file string) (domain.Policy, PolicySource, error) {
	if file == "" {
		file = e.cfg.Policy.File
	}
	if file == "" {
		return policy.Default(), PolicySource{}, nil
	}
	p, err := e.loadPolicy(file)
	if err != nil {
		return domain.Policy{}, PolicySource{}, &ContextError{Op: "load policy", Err: err}
	}
	return p, PolicySource{File: file}, nil
}

// --- policyAdapter ---

type policyAdapter struct {
	env *environment
}

func (a *policyAdapter) Policy(_ context.Context, file string) (domain.Policy, PolicySource, error) {
	if err := a.env.setup(); err != nil {
		return domain.Policy{}, PolicySource{}, err
	}
	p, src, err := a.env.resolvePolicy(file)
	if err != nil {
		return domain.Policy{}, PolicySource{}, err
	}
	a.env.log.Debug().Str("source", src.String()).Msg("policy loaded")
	return p, src, nil
}

// --- validateAdapter ---

type validateAdapter struct {
	env *environment
}

func (a *validateAdapter) Validate(ctx context.Context, req ValidateRequest) ([]validator.FileResult, error) {
	env := a.env
	if err := env.setup(); err != nil {
		return nil, err
	}

	p, src, err := env.resolvePolicy(req.PolicyFile)
	if err != nil {
		return nil, err
	}

	workers := env.cfg.Concurrency.Workers
	if req.Workers > 0 {
		workers = req.Workers
	}

	engine := validator.New(p,
		validator.WithLogger(env.log.WithComponent("validator").Logger),
		validator.WithWorkers(workers),
		validator.WithFileReader(&fs.OSReader{Stdin: env.stdin}),
	)

	env.log.Debug().Str("policy", src.String()).Int("workers", workers).Msg("engine ready")
	env.log.Info().Int("files", len(req.Paths)).Msg("validating manifests")

	results, err := engine.ValidateFiles(ctx, req.Paths)
	if err != nil {
		return nil, err
	}

	s := validator.Summarize(results)
	env.log.Debug().
		Int("errors", s.Errors).
		Int("warnings", s.Warnings).
		Int("unreadable", s.Unreadable).
		Msg("validation finished")
	return results, nil
}
