// Package basket implements a basket-backed accounting engine. It accepts a
// reserve currency from depositors, converts it into a weighted basket of
// assets held in custody, and issues a fungible share token representing each
// depositor's proportional claim on the basket's value.
//
// The core functionalities include:
//   - Valuation: pricing the custodied basket in a common reference asset and
//     deriving the current share price from it.
//   - Deposits and withdrawals: dilution-free share minting, proportional
//     liquidation on withdrawal, and fee extraction.
//   - Strategy management: replacing the basket composition atomically and
//     rebalancing drifted holdings back to their target weights.
//   - Audit trail: an append-only journal of deposit, withdraw, strategy
//     change and rebalance records, persistable as JSONL or SQLite.
//
// All arithmetic is fixed-point over integer base units with truncating
// division, so results are reproducible across implementations.
//
// This package serves as the foundational logic for the `bkt` command-line
// tool.
package basket
