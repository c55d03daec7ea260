// Package avro implements the value-reader core of an Iceberg-compatible
// Avro decoding layer: a compositional tree of per-type decoders that turn
// a binary Avro byte stream into in-memory records shaped by an expected
// logical schema rather than merely the physical schema of the file.
//
// The package does not parse Avro container files, apply compression
// codecs, or talk to a catalog. It consumes a byte-oriented Decoder (see
// decoder.go) and a read plan (see plan.go) built from an expected schema,
// a writer schema, and a constant map, and produces one decoded struct per
// call to a root ValueReader's Read method.
package avro
