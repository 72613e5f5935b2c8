package lsmtree

import (
	log "github.com/sirupsen/logrus"
)

// Settings holds the tunables that control how blocks, SSTs, and the block
// cache are sized. There is no WAL or compaction setting here: this package
// stops at the flush boundary (see the design doc's scope notes).
type Settings struct {
	SStableDataBlockSizeByte uint
	MemtableFlushSizeByte    uint
	BlockCacheCapacity       int
	LogLevel                 log.Level
}

// Option configures a Settings value.
type Option func(*Settings)

// WithSsTableDataBlockSizeByte configures the target size, in bytes, of each
// data block written by an SsTableBuilder. Individual entries larger than
// this still get their own block; see BlockBuilder.Add.
func WithSsTableDataBlockSizeByte(size uint) Option {
	return func(s *Settings) {
		s.SStableDataBlockSizeByte = size
	}
}

// WithMemtableFlushSizeByte configures the approximate MemTable size, in
// bytes, at which a caller should flush it into an SsTable.
func WithMemtableFlushSizeByte(size uint) Option {
	return func(s *Settings) {
		s.MemtableFlushSizeByte = size
	}
}

// WithBlockCacheCapacity configures how many decoded blocks the block cache
// holds at once. It must be positive: NewBlockCache returns a KindMisuse
// error for a capacity of 0 or less.
func WithBlockCacheCapacity(capacity int) Option {
	return func(s *Settings) {
		s.BlockCacheCapacity = capacity
	}
}

// WithLogLevel records a logrus level in Settings.LogLevel. Nothing in this
// package applies it: the package's own diagnostic logging (block cache
// loader failures) goes to the standard logrus logger at whatever level that
// logger is set to.
func WithLogLevel(level log.Level) Option {
	return func(s *Settings) {
		s.LogLevel = level
	}
}

func defaultSettings() *Settings {
	return &Settings{
		SStableDataBlockSizeByte: 4 * 1024,
		MemtableFlushSizeByte:    4 * 1024 * 1024,
		BlockCacheCapacity:       256,
		LogLevel:                 log.WarnLevel,
	}

}

// NewSettings builds a Settings value from the given options, applied over
// a set of defaults modeled after typical LSM tree deployments.
func NewSettings(opts ...Option) *Settings {
	settings := defaultSettings()
	for _, opt := range opts {
		opt(settings)
	}
	return settings
}
