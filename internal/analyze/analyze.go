// Package analyze orchestrates nmap scans and AI-generated security
// reports. For each target it runs a scan, validates the XML output,
// asks a local language model for an assessment, and writes one
// Markdown report per target.
package analyze

import (
	"context"
	"encoding/xml"
	"strings"

	"github.com/Ullaakut/nmap/v3"
	"github.com/google/uuid"

	"github.com/netsurvey/netsurvey/internal/config"
	"github.com/netsurvey/netsurvey/internal/errors"
	"github.com/netsurvey/netsurvey/internal/logging"
	"github.com/netsurvey/netsurvey/internal/ollama"
)

// ScanFunc runs a scan against a single target and returns the raw
// XML output. Replaceable for tests.
type ScanFunc func(ctx context.Context, target string) ([]byte, error)

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithScanFunc replaces the default nmap-backed scan function.
func WithScanFunc(fn ScanFunc) Option {
	return func(o *Orchestrator) { o.scan = fn }
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

// Orchestrator runs the scan-and-analyze pipeline over a target list.
type Orchestrator struct {
	config config.AnalyzeConfig
	client *ollama.Client
	logger *logging.Logger
	scan   ScanFunc
}

// New creates an orchestrator for the given configuration and Ollama client.
func New(cfg config.AnalyzeConfig, client *ollama.Client, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		config: cfg,
		client: client,
		logger: logging.Default(),
	}
	o.scan = o.nmapScan
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run processes every target in the configured targets file. Per-target
// failures (scan error, invalid output, analysis error) are logged and
// skipped; only setup failures abort the run.
func (o *Orchestrator) Run(ctx context.Context) error {
	targets, err := ReadTargets(o.config.TargetsFile)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		return errors.NewScanError(errors.CodeValidation,
			"no scan targets found in "+o.config.TargetsFile)
	}

	// Fail fast if the analysis service is down; individual generate
	// calls can still fail later and are handled per target.
	if err := o.client.Available(ctx); err != nil {
		return err
	}

	log := o.logger.WithRunID(uuid.New().String())
	log.Info("starting analysis run", "target_count", len(targets))

	completed := 0
	for _, target := range targets {
		select {
		case <-ctx.Done():
			return errors.WrapScanError(errors.CodeCanceled, "analysis run canceled", ctx.Err())
		default:
		}

		if o.processTarget(ctx, log, target) {
			completed++
		}
	}

	log.Info("analysis run completed", "targets", len(targets), "reports", completed)
	return nil
}

// processTarget runs the scan-analyze-report pipeline for one target.
// Returns true when a report was written.
func (o *Orchestrator) processTarget(ctx context.Context, log *logging.Logger, target string) bool {
	log.InfoScan("scanning target", target)

	xmlOut, err := o.scan(ctx, target)
	if err != nil {
		log.ErrorScan("scan failed, skipping target", target, err)
		return false
	}

	if err := validateScanXML(xmlOut); err != nil {
		log.ErrorScan("scan produced invalid XML, skipping target", target, err)
		return false
	}

	log.InfoScan("analyzing scan output", target)
	report, err := o.client.Generate(ctx, o.client.RenderPrompt(string(xmlOut)))
	if err != nil {
		log.ErrorScan("analysis failed, skipping target", target, err)
		return false
	}

	path, err := WriteReport(o.config.OutputDir, target, report)
	if err != nil {
		log.ErrorScan("failed to write report, skipping target", target, err)
		return false
	}

	log.InfoScan("report written", target, "path", path)
	return true
}

// nmapScan performs an aggressive scan of the target and returns the
// result serialized back to XML for the analysis prompt.
func (o *Orchestrator) nmapScan(ctx context.Context, target string) ([]byte, error) {
	scanCtx, cancel := context.WithTimeout(ctx, o.config.ScanTimeout)
	defer cancel()

	scanner, err := nmap.NewScanner(scanCtx,
		nmap.WithTargets(target),
		nmap.WithAggressiveScan(),
	)
	if err != nil {
		return nil, errors.WrapScanErrorWithTarget(errors.CodeScanFailed,
			"failed to create scanner", target, err)
	}

	result, warnings, err := scanner.Run()
	if err != nil {
		if scanCtx.Err() == context.DeadlineExceeded ||
			strings.Contains(err.Error(), "timed out") {
			return nil, errors.WrapScanErrorWithTarget(errors.CodeTimeout,
				"scan operation timed out", target, err)
		}
		return nil, errors.WrapScanErrorWithTarget(errors.CodeScanFailed,
			"scanner execution failed", target, err)
	}

	if warnings != nil && len(*warnings) > 0 {
		o.logger.Warn("scan completed with warnings", "target", target, "warnings", *warnings)
	}

	data, err := xml.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, errors.WrapScanErrorWithTarget(errors.CodeOutputInvalid,
			"failed to serialize scan result", target, err)
	}
	return data, nil
}

// validateScanXML checks that the scan output is well-formed XML
// before it goes anywhere near the analysis prompt.
func validateScanXML(data []byte) error {
	var doc struct {
		XMLName xml.Name
	}
	if err := xml.Unmarshal(data, &doc); err != nil {
		return errors.WrapScanError(errors.CodeOutputInvalid, "scan output is not valid XML", err)
	}
	return nil
}
