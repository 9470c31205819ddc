// Package batch renders every configured input into every target category.
//
// Pairs are processed sequentially. A missing input is skipped with a
// warning; a failure while processing an input abandons that input's
// remaining categories and the run continues with the next input.
package batch

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"net/http"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/youruser/shotframe/internal/config"
	imagepkg "github.com/youruser/shotframe/internal/image"
	"github.com/youruser/shotframe/internal/logging"
	"github.com/youruser/shotframe/internal/target"
	"github.com/youruser/shotframe/internal/util"
)

// QRFileName is written to the output root when a store URL is configured.
const QRFileName = "store_qr.png"

type Runner struct {
	cfg        *config.Config
	background color.NRGBA
	logger     *zap.Logger
}

// NewRunner validates cfg and returns a runner for it.
func NewRunner(cfg *config.Config, logger *zap.Logger) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("batch: nil config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("batch: %w", err)
	}
	bg, err := cfg.BackgroundColor()
	if err != nil {
		return nil, fmt.Errorf("batch: %w", err)
	}
	return &Runner{
		cfg:        cfg,
		background: bg,
		logger:     logging.Component(logger, "batch"),
	}, nil
}

// Run processes all configured inputs. The returned error is non-nil only when
// the output directories cannot be created or ctx is cancelled; per-input
// failures are recorded in the report.
func (r *Runner) Run(ctx context.Context) (Report, error) {
	var report Report
	if err := r.prepareDirs(); err != nil {
		return report, err
	}
	r.logger.Info("starting batch",
		zap.Int("inputs", len(r.cfg.Inputs)),
		zap.Int("targets", len(r.cfg.Targets)),
		zap.String("output_dir", r.cfg.OutputDir))

	for _, input := range r.cfg.Inputs {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		rep, err := r.process(ctx, input)
		report.merge(rep)
		if err != nil {
			return report, err
		}
	}

	if r.cfg.StoreURL != "" {
		path, err := r.writeQR()
		if err != nil {
			r.logger.Error("store qr failed", zap.Error(err))
		} else {
			report.QRPath = path
		}
	}

	r.logger.Info("batch finished",
		zap.Int("ok", report.OK()),
		zap.Int("missing", report.Missing()),
		zap.Int("failed", report.Failed()))
	return report, nil
}

// RunOne processes a single input against every target.
func (r *Runner) RunOne(ctx context.Context, input string) (Report, error) {
	if err := r.prepareDirs(); err != nil {
		return Report{}, err
	}
	return r.process(ctx, input)
}

func (r *Runner) prepareDirs() error {
	for _, t := range r.cfg.Targets {
		dir := filepath.Join(r.cfg.OutputDir, t.Name)
		if err := util.EnsureDir(dir); err != nil {
			return fmt.Errorf("create output dir %s: %w", dir, err)
		}
	}
	return nil
}

func (r *Runner) process(ctx context.Context, input string) (Report, error) {
	var rep Report
	log := r.logger.With(zap.String("input", input))

	src, err := r.load(input)
	if err != nil {
		var missing *MissingInputError
		if errors.As(err, &missing) {
			log.Warn("input not found, skipping")
			rep.add(Result{Input: input, Status: StatusMissing, Err: err})
			return rep, nil
		}
		perr := &ProcessingError{Input: input, Err: err}
		log.Error("failed to load input", zap.Error(err))
		r.abandon(&rep, input, 0, perr)
		return rep, nil
	}

	for i, t := range r.cfg.Targets {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		out := r.OutputPath(input, t)
		if err := r.render(src, t, out); err != nil {
			perr := &ProcessingError{Input: input, Category: t.Name, Err: err}
			log.Error("failed to process input", zap.String("category", t.Name), zap.Error(err))
			r.abandon(&rep, input, i, perr)
			return rep, nil
		}
		log.Info("generated", zap.String("category", t.Name), zap.String("path", out))
		rep.add(Result{Input: input, Category: t.Name, OutputPath: out, Status: StatusOK})
	}
	return rep, nil
}

// OutputPath is <output_dir>/<category>/processed_<stem>.png.
func (r *Runner) OutputPath(input string, t target.Spec) string {
	return filepath.Join(r.cfg.OutputDir, t.Name, util.OutputName(input))
}

// abandon records targets[from] as failed and every later target as
// abandoned.
func (r *Runner) abandon(rep *Report, input string, from int, err error) {
	for i := from; i < len(r.cfg.Targets); i++ {
		status := StatusAbandoned
		if i == from {
			status = StatusFailed
		}
		rep.add(Result{Input: input, Category: r.cfg.Targets[i].Name, Status: status, Err: err})
	}
}

func (r *Runner) load(input string) (image.Image, error) {
	if util.IsRemote(input) {
		b, err := util.GetBytes(input)
		if err != nil {
			var se *util.StatusError
			if errors.As(err, &se) && se.Code == http.StatusNotFound {
				return nil, &MissingInputError{Input: input}
			}
			return nil, fmt.Errorf("fetch: %w", err)
		}
		return imagepkg.DecodeBytes(b)
	}
	if !util.Exists(input) {
		return nil, &MissingInputError{Input: input}
	}
	return imagepkg.Open(input)
}

func (r *Runner) render(src image.Image, t target.Spec, out string) error {
	canvas, err := imagepkg.Compose(src, t, r.background)
	if err != nil {
		return err
	}
	return imagepkg.SavePNG(out, canvas)
}

func (r *Runner) writeQR() (string, error) {
	b, err := imagepkg.GenerateBrandedQRPNG(r.cfg.StoreURL, r.cfg.QRSize, r.background)
	if err != nil {
		return "", err
	}
	path := filepath.Join(r.cfg.OutputDir, QRFileName)
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	r.logger.Info("generated store qr", zap.String("path", path))
	return path, nil
}
