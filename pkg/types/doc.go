// Package types defines the RiverLog entity types, standard errors, and the
// store configuration.
//
// Entities serialize with the same field names the archive manifests use, so
// rows round-trip through backups without a translation layer. All timestamps
// are Unix milliseconds.
package types
