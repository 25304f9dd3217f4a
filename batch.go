package doctype

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Upload is one file submitted for analysis.
type Upload struct {
	Name string // original file name, used for extension sniffing
	Type string // declared MIME type, may be empty
	Data []byte
}

// BatchResult is the analysis of one upload of a batch.
type BatchResult struct {
	Upload      Upload
	Analysis    Analysis
	DuplicateOf int   // index of an earlier upload showing the same picture, or -1
	Err         error // set only when the upload was skipped (context cancelled)
}

// AnalyzeBatch analyzes uploads concurrently and flags images that are
// perceptually identical to an earlier upload of the same batch. Results are
// returned in input order. Uploads not started before ctx is done are
// labelled unknown_document with Err set to the context error.
func (cfg *Config) AnalyzeBatch(ctx context.Context, uploads []Upload) []BatchResult {
	cfg = cfg.withDefaults()

	results := make([]BatchResult, len(uploads))
	dedup := &dedupFilter{threshold: cfg.DedupThreshold}

	g := new(errgroup.Group)
	g.SetLimit(cfg.Concurrency)

	for i, up := range uploads {
		results[i] = BatchResult{
			Upload:      up,
			Analysis:    Analysis{Label: LabelUnknownDocument, Size: len(up.Data)},
			DuplicateOf: -1,
		}

		if err := ctx.Err(); err != nil {
			results[i].Err = err
			continue
		}

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			cfg.analyzeOne(&results[i], i, dedup)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors

	for i, dup := range dedup.resolve(len(results)) {
		results[i].DuplicateOf = dup
	}
	return results
}

// analyzeOne fills in a single batch result.
// Recovers from panics to protect the worker pool.
func (cfg *Config) analyzeOne(res *BatchResult, i int, dedup *dedupFilter) {
	defer func() {
		if r := recover(); r != nil {
			cfg.panicked("batchAnalysis", r)
			cfg.logger().Warn("doctype: batch item failed", "file", res.Upload.Name, "panic", r)
			res.Analysis.Label = LabelUnknownDocument
			res.Err = fmt.Errorf("panic: %v", r)
		}
	}()

	up := res.Upload
	res.Analysis = cfg.AnalyzeDocumentFull(up.Data, up.Name, up.Type)
	if res.Analysis.Route == RouteImage && hashable(res.Analysis.Shape) {
		dedup.add(i, hashImage(up.Data))
	}
}
