// Package coinledger implements a personal crypto-portfolio ledger.
//
// The ledger is a flat, timestamp-ordered list of transactions belonging to
// one profile. From that list the package derives current holdings and
// tax-relevant holding periods, and it can ingest transactions from several
// third-party export formats (a generic CSV schema, Binance spreadsheets and
// Bitpanda CSV exports) without ever producing duplicate or orphaned records.
//
// Transactions can reference each other through a bidirectional prev/next
// link used to model split or related entries. The link graph is not trusted:
// after every structural mutation Normalize repairs it deterministically, so
// at rest the set always satisfies the symmetry and no-dangling invariants.
//
// Persistence is a human-readable JSONL file per profile, with a JSON sidecar
// for the profile settings. See the cmd package for the CLI.
package coinledger
