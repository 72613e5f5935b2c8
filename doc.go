// Package lsmtree implements the read and write paths of a log-structured
// merge tree storage engine: encoding and decoding data blocks and SSTs,
// merging multiple sorted iterators into one, and buffering writes in a
// concurrent MemTable ahead of a flush.
//
// It does not implement a full storage engine: there is no write-ahead log,
// no leveled compaction, and no top-level DB type tying flush and compaction
// together on a background schedule. Callers that need those wire this
// package's pieces together themselves, the way cmd/lsmdemo does for a
// single-flush example.
package lsmtree
