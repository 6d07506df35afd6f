package feed

// DedupePolicy decides whether a received entry is buffered when an entry
// sharing its identity is already present. The policy is caller-defined:
// the client never silently drops duplicates on the consumer's behalf.
type DedupePolicy func(e Entry, duplicate bool) bool

// KeepAll buffers every entry, duplicates included. Default for the
// sales feed, where repeated ids represent distinct deliveries.
func KeepAll(Entry, bool) bool { return true }

// DropDuplicates rejects entries whose identity is already buffered.
// Default for the alerts feed.
func DropDuplicates(_ Entry, duplicate bool) bool { return !duplicate }
