// Package shipment contains the Shipment aggregate: boxes, their contents,
// GS1 shipping identifiers and the packing/manifest lifecycle.
//
// The aggregate owns three hard gates of the dispatch flow:
//   - box numbers come from a monotonic per-shipment sequence and are never
//     reused after deletion
//   - CompletePacking refuses until every box has a weight and every
//     allocated quantity is packed, reporting all offenders at once
//   - Manifest refuses until every box carries a valid SSCC, again reporting
//     all offenders at once
package shipment
