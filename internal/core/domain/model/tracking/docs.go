// Package tracking contains the per-parcel status history ("suivi"): an
// append-only ledger of {status, timestamp} events created lazily on the first
// status write and never truncated.
package tracking
