package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/atotto/clipboard"
	"github.com/urfave/cli/v3"

	"github.com/dren-arifi/isrcfind/internal/formatter"
	"github.com/dren-arifi/isrcfind/internal/models"
	"github.com/dren-arifi/isrcfind/internal/repositories"
	"github.com/dren-arifi/isrcfind/internal/shared"
	"github.com/dren-arifi/isrcfind/internal/tasks"
)

// lastInputsKey stores the most recently submitted batch so an empty
// invocation can replay it.
const lastInputsKey = "inputs.last"

// gatherInputs merges positional arguments with lines from --file,
// skipping blanks and comment lines.
func gatherInputs(cmd *cli.Command) ([]string, error) {
	inputs := append([]string{}, cmd.StringArgs("videos")...)

	if path := cmd.String("file"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open input file: %w", err)
		}
		defer f.Close()

		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			inputs = append(inputs, line)
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("failed to read input file: %w", err)
		}
	}

	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: no videos given", shared.ErrMissingArgument)
	}

	return inputs, nil
}

// resolveInputs returns the batch from arguments and --file, persisting it
// as the last submitted batch. When no inputs are given, the previously
// submitted batch is restored from the key-value store instead.
func (r *Runner) resolveInputs(cmd *cli.Command, kv *repositories.KVStore) ([]string, error) {
	inputs, err := gatherInputs(cmd)
	if errors.Is(err, shared.ErrMissingArgument) {
		var saved []string
		found, kvErr := kv.GetJSON(lastInputsKey, &saved)
		if kvErr != nil || !found || len(saved) == 0 {
			return nil, err
		}

		r.writePlainln("Restoring last batch (%d videos)", len(saved))
		return saved, nil
	}
	if err != nil {
		return nil, err
	}

	if err := kv.SetJSON(lastInputsKey, inputs); err != nil {
		r.logger.Warn("saving input batch", "error", err)
	}

	return inputs, nil
}

// drainProgress prints engine progress messages until the channel closes.
func (r *Runner) drainProgress(progress <-chan tasks.ProgressUpdate) *sync.WaitGroup {
	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()
		for update := range progress {
			r.writePlainln("%s", update.Message)
		}
	}()

	return &wg
}

// Lookup resolves one or more videos to ranked catalog candidates.
func (r *Runner) Lookup(ctx context.Context, cmd *cli.Command) error {
	s, err := r.openStores()
	if err != nil {
		return err
	}
	defer s.Close()

	inputs, err := r.resolveInputs(cmd, s.kv)
	if err != nil {
		return err
	}

	progress := make(chan tasks.ProgressUpdate, 50)
	wg := r.drainProgress(progress)

	report, err := s.engine.LookupBatch(ctx, progress, inputs)
	close(progress)
	wg.Wait()
	if err != nil {
		return fmt.Errorf("lookup failed: %w", err)
	}

	if cmd.Bool("fallback") {
		r.applyFallbacks(ctx, s.engine, report)
	}

	if cmd.Bool("json") {
		if err := r.writeJSON(report, cmd.Bool("pretty")); err != nil {
			return err
		}
	} else {
		text, err := formatter.ExportToText(report)
		if err != nil {
			return err
		}
		r.writePlain("%s", string(text))
	}

	if base := cmd.String("save"); base != "" {
		saved, err := formatter.WriteCSVExport(report, base)
		if err != nil {
			return fmt.Errorf("failed to save report: %w", err)
		}
		r.writePlainln("✓ Saved %s and %s", saved.ResultsFile, saved.ReportFile)
	}

	if cmd.Bool("copy") {
		return r.copyBestISRC(report)
	}

	return nil
}

// applyFallbacks reruns low-scoring lookups with their description query
// and keeps whichever result scored higher.
func (r *Runner) applyFallbacks(ctx context.Context, engine *tasks.LookupEngine, report *models.LookupReport) {
	for i := range report.Results {
		result := &report.Results[i]
		if !result.FallbackAvailable {
			continue
		}

		fallback, err := engine.RunFallback(ctx, nil, result)
		if err != nil {
			r.logger.Warn("fallback search failed", "input", result.Input, "error", err)
			continue
		}

		if fallback.MaxScore > result.MaxScore {
			report.Results[i] = *fallback
		}
	}
}

// copyBestISRC copies the first matched result's best ISRC.
func (r *Runner) copyBestISRC(report *models.LookupReport) error {
	for _, result := range report.Results {
		best := result.Best()
		if best == nil || best.ISRC == models.NA {
			continue
		}

		if err := clipboard.WriteAll(best.ISRC); err != nil {
			return fmt.Errorf("failed to copy ISRC: %w", err)
		}
		r.writePlainln("✓ Copied %s", best.ISRC)
		return nil
	}

	r.writePlainln("No ISRC to copy")
	return nil
}
