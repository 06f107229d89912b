// Package app wires configuration, confirmation gates, the trim workflow,
// the audit trail and user output into the commands of prefixtrim.
package app

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"prefixtrim/internal/audit"
	"prefixtrim/internal/config"
	"prefixtrim/internal/language"
	"prefixtrim/internal/orchestrator"
	"prefixtrim/internal/organizer"
	"prefixtrim/internal/output"
	"prefixtrim/internal/prompt"
	"prefixtrim/internal/scanner"
)

// Params carries command-line values. Empty or false values fall back to the
// configuration file.
type Params struct {
	Directory  string
	ConfigPath string
	Language   string
	Prefix     string
	Exclude    []string
	AuditDir   string

	Yes    bool // answer the trim confirmation
	Delete bool // answer the delete confirmation
	DryRun bool
	Legacy bool // write copies one by one instead of staging them
}

// Report is the outcome of a trim command.
type Report struct {
	Result    *orchestrator.Result
	Deleted   []string
	Summary   *orchestrator.RunSummary
	Cancelled bool
}

// Runner executes prefixtrim commands.
type Runner struct {
	out         *output.Output
	prompter    *prompt.Prompter
	interactive bool
}

// NewRunner creates a Runner. Confirmations are asked through prompter only
// when interactive is true.
func NewRunner(out *output.Output, prompter *prompt.Prompter, interactive bool) *Runner {
	return &Runner{
		out:         out,
		prompter:    prompter,
		interactive: interactive,
	}
}

// Infer returns the prefix suggested for the directory.
func (r *Runner) Infer(p Params) (string, error) {
	cfg, lang, err := r.resolve(p)
	if err != nil {
		return "", err
	}
	return r.orchestrator(cfg, p, nil).InferPrefix(p.Directory, lang)
}

// List returns the candidate files of the directory.
func (r *Runner) List(p Params) ([]scanner.SourceFile, error) {
	cfg, lang, err := r.resolve(p)
	if err != nil {
		return nil, err
	}
	return r.orchestrator(cfg, p, nil).ListCandidates(p.Directory, lang)
}

// History returns the runs recorded in the audit log, newest first.
func (r *Runner) History(p Params) ([]audit.RunInfo, error) {
	dir := p.AuditDir
	if dir == "" && p.Directory != "" {
		cfg, err := r.loadConfig(p)
		if err != nil {
			return nil, err
		}
		dir = cfg.Audit.LogDirectory
	}
	if dir == "" {
		return nil, errors.New("no audit directory configured")
	}
	return audit.NewAuditReader(dir).ListRuns()
}

// Trim runs the full workflow: confirm, trim, summarize, then optionally
// delete the originals after a second confirmation.
func (r *Runner) Trim(p Params) (*Report, error) {
	startTime := time.Now()

	cfg, lang, err := r.resolve(p)
	if err != nil {
		return nil, err
	}

	prefix := cfg.Prefix
	if prefix == "" {
		prefix, err = r.orchestrator(cfg, p, nil).InferPrefix(p.Directory, lang)
		if err != nil {
			return nil, err
		}
		r.out.Info("Inferred prefix %q", prefix)
	}

	trimGate := prompt.Gate{Preset: p.Yes || p.DryRun, Interactive: r.interactive, Prompter: r.prompter}
	ok, err := trimGate.Confirm(fmt.Sprintf("Trim prefix %q from %s files in %s?", prefix, lang, p.Directory))
	if err != nil {
		return nil, err
	}
	if !ok {
		r.out.Warn("Trim cancelled")
		return &Report{Cancelled: true}, nil
	}

	var writer *audit.AuditWriter
	if cfg.Audit.Enabled() && !p.DryRun {
		writer, err = audit.NewAuditWriter(cfg.Audit)
		if err != nil {
			return nil, fmt.Errorf("opening audit log: %w", err)
		}
		defer writer.Close()

		if _, err := writer.StartRun(audit.RunParams{
			Directory: p.Directory,
			Language:  lang.String(),
			Prefix:    prefix,
			Staged:    cfg.IsStaged(),
			DryRun:    p.DryRun,
		}); err != nil {
			return nil, fmt.Errorf("starting audit run: %w", err)
		}
	}

	rec := &recorder{out: r.out, writer: writer}
	orch := r.orchestrator(cfg, p, rec.handle)

	if candidates, err := orch.ListCandidates(p.Directory, lang); err == nil {
		r.out.StartProgress(len(candidates))
	}
	result, err := orch.TrimAll(p.Directory, lang, prefix)
	r.out.EndProgress()
	if err != nil {
		rec.end(audit.RunStatusFailed, result, nil)
		return &Report{Result: result}, err
	}

	if !p.DryRun {
		r.out.Success("Trimmed %d files", len(result.Trimmed))
	}
	for _, tf := range result.Trimmed {
		r.out.Info("%s -> %s", tf.Source.Name, tf.NewName)
	}

	var deleted []string
	if !p.DryRun && len(result.Trimmed) > 0 {
		deleteGate := prompt.Gate{Preset: p.Delete || cfg.DeleteOriginals, Interactive: r.interactive, Prompter: r.prompter}
		confirmed, err := deleteGate.Confirm(fmt.Sprintf("Delete %d original files?", len(result.Trimmed)))
		if err != nil {
			rec.end(audit.RunStatusFailed, result, nil)
			return &Report{Result: result}, err
		}
		deleted, err = orch.DeleteSuperseded(result, confirmed)
		if err != nil {
			rec.end(audit.RunStatusFailed, result, deleted)
			return &Report{Result: result, Deleted: deleted}, err
		}
		if !confirmed {
			r.out.Info("Originals kept")
		}
	}

	summary := orchestrator.GenerateSummary(result, len(deleted), time.Since(startTime))
	r.out.Info("%s", summary.String())
	rec.end(audit.RunStatusCompleted, result, deleted)

	return &Report{Result: result, Deleted: deleted, Summary: summary}, nil
}

// resolve loads the configuration, applies command-line overrides and
// validates the result.
func (r *Runner) resolve(p Params) (*config.Configuration, language.Language, error) {
	cfg, err := r.loadConfig(p)
	if err != nil {
		return nil, "", err
	}

	if p.Language != "" {
		cfg.Language = p.Language
	}
	if p.Prefix != "" {
		cfg.Prefix = p.Prefix
	}
	if len(p.Exclude) > 0 {
		cfg.Exclude = append(cfg.Exclude, p.Exclude...)
	}
	if p.AuditDir != "" {
		cfg.Audit.LogDirectory = p.AuditDir
	}
	if p.Legacy {
		cfg.SetStaged(false)
	}

	validation := config.ValidateConfig(cfg)
	for _, w := range validation.Warnings {
		r.out.Warn("Warning: %s: %s", w.Field, w.Message)
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}

	lang, err := language.Parse(cfg.Language)
	if err != nil {
		return nil, "", err
	}
	return cfg, lang, nil
}

// loadConfig reads the explicit config file, or the default file in the
// target directory when one exists.
func (r *Runner) loadConfig(p Params) (*config.Configuration, error) {
	if p.ConfigPath != "" {
		return config.Load(p.ConfigPath)
	}
	if p.Directory == "" {
		return config.Default(), nil
	}
	path := filepath.Join(p.Directory, config.DefaultFileName)
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return nil, err
	}
	if organizer.FileExists(path) {
		r.out.Verbose("Using configuration %s", path)
	}
	return cfg, nil
}

func (r *Runner) orchestrator(cfg *config.Configuration, p Params, onEvent func(orchestrator.Event)) *orchestrator.Orchestrator {
	return orchestrator.New(orchestrator.Options{
		Staged:  cfg.IsStaged(),
		DryRun:  p.DryRun,
		Exclude: cfg.Exclude,
		OnEvent: onEvent,
	})
}
