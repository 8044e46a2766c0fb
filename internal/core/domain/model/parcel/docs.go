// Package parcel contains the Parcel aggregate and its supporting value
// objects: the closed Status set, the carrier-vocabulary translation table,
// the CarrierMode and the Recipient.
//
// The aggregate owns the lifecycle invariants; the append-only status history
// lives in the tracking package and is written by the application layer, never
// by the aggregate itself.
package parcel
