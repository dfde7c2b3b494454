package gom

import (
	"encoding/json"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/sourcegraph/conc/iter"
	"github.com/thanhnguyen2187/gom-savior/gom/gjson"
	"github.com/thanhnguyen2187/gom-savior/gom/gnode"
)

// SplitRecords cuts the export array into raw records without decoding them.
func SplitRecords(bs []byte) ([]json.RawMessage, error) {
	records, err := gjson.ParseArray(bs, "gom.SplitRecords")
	if err != nil {
		return nil, err
	}
	return records, nil
}

func mapper[R any](opts Options) iter.Mapper[json.RawMessage, R] {
	workers := opts.Workers
	if workers < 0 {
		workers = 0
	}
	return iter.Mapper[json.RawMessage, R]{
		MaxGoroutines: workers,
	}
}

// DecodeExport decodes every record, keeping the export order. Any bad record
// fails the call; the returned error joins the failures of all of them.
func DecodeExport(bs []byte, opts Options) ([]gnode.NodeObjPair, error) {
	records, err := SplitRecords(bs)
	if err != nil {
		return nil, err
	}

	pairs, err := mapper[gnode.NodeObjPair](opts).MapErr(
		records,
		func(record *json.RawMessage) (gnode.NodeObjPair, error) {
			return gnode.DecodeNodeObjPair(*record)
		},
	)
	if err != nil {
		return nil, errors.Wrap(err, "gom.DecodeExport error")
	}
	return pairs, nil
}

// DecodeExportEach decodes every record and reports each outcome separately,
// so that callers can decide what a bad record means to them.
func DecodeExportEach(bs []byte, opts Options) ([]Result, error) {
	records, err := SplitRecords(bs)
	if err != nil {
		return nil, err
	}
	return DecodeRecordsEach(records, opts), nil
}

// DecodeRecordsEach is DecodeExportEach over records that are already split.
func DecodeRecordsEach(records []json.RawMessage, opts Options) []Result {
	results := mapper[Result](opts).Map(
		records,
		func(record *json.RawMessage) Result {
			pair, err := gnode.DecodeNodeObjPair(*record)
			return Result{Pair: pair, Err: err}
		},
	)
	for i := range results {
		results[i].Index = i
		if results[i].Err != nil {
			results[i].Err = errors.Wrapf(results[i].Err, "gom.DecodeRecordsEach error: record %d", i)
		}
	}
	return results
}

// KeepValid drops the failed results. With skipInvalid each of them is
// logged; without it the first one is returned as the error.
func KeepValid(results []Result, skipInvalid bool, logger *slog.Logger) ([]Result, error) {
	kept := make([]Result, 0, len(results))
	for _, result := range results {
		if result.Err == nil {
			kept = append(kept, result)
			continue
		}
		if !skipInvalid {
			return nil, result.Err
		}
		logger.Warn("skipped record", "index", result.Index, "err", result.Err)
	}
	return kept, nil
}

// Collect is KeepValid returning the records alone.
func Collect(results []Result, skipInvalid bool, logger *slog.Logger) ([]gnode.NodeObjPair, error) {
	kept, err := KeepValid(results, skipInvalid, logger)
	if err != nil {
		return nil, err
	}
	return Pairs(kept), nil
}

func Pairs(results []Result) []gnode.NodeObjPair {
	return lo.Map(results, func(result Result, _ int) gnode.NodeObjPair {
		return result.Pair
	})
}
