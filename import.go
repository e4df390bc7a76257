package coinledger

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// ImportResult is the outcome of an import operation. Errors holds one
// human-readable line per skipped row or degraded step; the pipeline never
// panics past its boundary.
type ImportResult struct {
	Imported int
	Errors   []string
}

// ImportOptions tunes the commit pipeline.
type ImportOptions struct {
	// MergeTransfers collapses matched internal-transfer legs of the
	// batch before appending.
	MergeTransfers bool
	// Oracle, when set, backfills missing EUR/USD values after the batch
	// is committed. Lookup failures are logged and otherwise ignored.
	Oracle PriceOracle
	Logger *zerolog.Logger
}

func (o ImportOptions) logger() zerolog.Logger {
	if o.Logger == nil {
		return zerolog.Nop()
	}
	return *o.Logger
}

// Commit runs the tail of the import pipeline over a parsed batch:
// dedup-filter, optional transfer merge, append, link normalization, then
// best-effort price enrichment. Persistence is the caller's job; treat the
// save that follows as the durability boundary.
func Commit(ctx context.Context, ledger *Ledger, batch []Transaction, parseErrs []string, opts ImportOptions) ImportResult {
	log := opts.logger()
	result := ImportResult{Errors: append([]string(nil), parseErrs...)}

	dedup := NewDedupIndex(ledger)
	duplicate := func(tx Transaction) {
		msg := fmt.Sprintf("duplicate skipped: %s %s %s @ %s",
			tx.Type, tx.Amount, tx.Asset, tx.Timestamp.UTC().Format("2006-01-02 15:04:05"))
		result.Errors = append(result.Errors, msg)
		log.Warn().Str("asset", tx.Asset).Msg("duplicate transaction skipped")
	}

	accepted := make([]Transaction, 0, len(batch))
	batchSeen := make(map[string]bool, len(batch))
	for _, tx := range batch {
		if !dedup.Accept(tx) {
			duplicate(tx)
			continue
		}
		batchSeen[Fingerprint(tx)] = true
		accepted = append(accepted, tx)
	}

	if opts.MergeTransfers {
		before := len(accepted)
		merged := MergeInternalTransfers(accepted)
		if pairs := before - len(merged); pairs > 0 {
			log.Info().Int("pairs", pairs).Msg("merged internal transfer legs")
		}
		// merging rewrites the paired legs into a record with a fresh
		// fingerprint, so the merged records must clear the dedup index
		// too: re-importing a file whose legs were already merged and
		// stored would otherwise sail past the leg-level filter
		accepted = accepted[:0]
		for _, tx := range merged {
			if batchSeen[Fingerprint(tx)] {
				// passed through the merger unchanged, already accepted
				accepted = append(accepted, tx)
				continue
			}
			if !dedup.Accept(tx) {
				duplicate(tx)
				continue
			}
			accepted = append(accepted, tx)
		}
	}

	if len(accepted) == 0 {
		return result
	}

	ids, err := ledger.Append(accepted...)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return result
	}
	result.Imported = len(ids)
	log.Info().Int("imported", len(ids)).Msg("batch committed")

	if opts.Oracle != nil {
		enrich(ctx, ledger, ids, opts.Oracle, log)
	}
	return result
}

// enrich backfills missing EUR/USD values on freshly committed rows. It is
// best-effort: a failed lookup leaves the committed transaction unchanged.
func enrich(ctx context.Context, ledger *Ledger, ids []int64, oracle PriceOracle, log zerolog.Logger) {
	for _, id := range ids {
		tx, ok := ledger.Get(id)
		if !ok {
			continue
		}
		if tx.ValueEUR != nil && tx.ValueUSD != nil {
			continue
		}
		if IsFiat(tx.Asset) {
			continue
		}
		pp, err := oracle.HistoricalPrice(ctx, tx.Asset, tx.Timestamp)
		if err != nil {
			log.Warn().Err(err).Str("asset", tx.Asset).Int64("id", id).
				Msg("price enrichment failed")
			continue
		}
		if tx.ValueEUR == nil {
			v := pp.EUR.Mul(tx.Amount)
			tx.ValueEUR = &v
		}
		if tx.ValueUSD == nil {
			v := pp.USD.Mul(tx.Amount)
			tx.ValueUSD = &v
		}
		if err := ledger.Update(tx); err != nil {
			log.Warn().Err(err).Int64("id", id).Msg("could not store enriched values")
		}
	}
}
