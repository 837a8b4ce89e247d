package checker

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/netsurvey/netsurvey/internal/errors"
)

// Run reads the configured input file, checks every URL concurrently,
// writes the CSV report, and returns a summary of the run. Result
// order follows input order regardless of worker scheduling.
func (c *Checker) Run(ctx context.Context) ([]Result, *Summary, error) {
	start := time.Now()
	log := c.logger.WithRunID(uuid.New().String())

	urls, err := ReadURLs(c.config.InputFile)
	if err != nil {
		return nil, nil, err
	}
	if len(urls) == 0 {
		return nil, nil, errors.NewCheckError(errors.CodeValidation,
			"no URLs found in "+c.config.InputFile)
	}

	workers := c.config.Workers
	if workers <= 0 {
		workers = 1
	}
	if workers > len(urls) {
		workers = len(urls)
	}
	log.Info("starting check run", "urls", len(urls), "workers", workers)

	results := make([]Result, len(urls))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				log.InfoCheck("checking url", urls[idx])
				results[idx] = c.CheckURL(ctx, urls[idx])
			}
		}()
	}

dispatch:
	for i := range urls {
		select {
		case <-ctx.Done():
			break dispatch
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if ctx.Err() != nil {
		return nil, nil, errors.WrapCheckError(errors.CodeCanceled,
			"check run canceled", "", ctx.Err())
	}

	if err := WriteResults(c.config.OutputFile, results); err != nil {
		return nil, nil, err
	}

	summary := Summarize(results, time.Since(start))
	log.Info("check run completed",
		"urls", summary.Total,
		"ping_reachable", summary.PingReachable,
		"elapsed", summary.Elapsed.Round(time.Millisecond).String(),
		"output", c.config.OutputFile)

	return results, summary, nil
}
