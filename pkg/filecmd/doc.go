// Package filecmd appends workflow commands to the files the runner provides
// for outputs, environment exports, path prepends, saved state, and the step
// summary.
//
// # Channels
//
// Each channel is announced through an environment variable holding the path
// of a file the action appends to:
//
//	GITHUB_OUTPUT        step outputs
//	GITHUB_ENV           environment for later steps
//	GITHUB_PATH          PATH entries for later steps
//	GITHUB_STATE         state passed to the post step
//	GITHUB_STEP_SUMMARY  markdown job summary
//
// When the variable is unset the channel is unavailable (older runners) and
// operations fail with ErrChannelUnavailable.
//
// # Record Format
//
// Key/value channels (OUTPUT, ENV, STATE) take one record per write:
//
//	key<<ghadelimiter_<uuid>\n
//	value\n
//	ghadelimiter_<uuid>\n
//
// The delimiter is a fresh random UUID for every record, so values may span
// several lines without any escaping. A key or value that contains the
// generated delimiter is rejected with ErrDelimiterCollision.
//
// The PATH channel takes one plain path per line. The step summary takes raw
// markdown and may be overwritten as a whole.
//
// # Locking and Durability
//
// Every write opens the file in append mode, takes an exclusive advisory lock
// for the duration of one record, writes the record with a single write call,
// and releases the lock even when the write fails. A successful return means
// the bytes reached the OS; with SyncFsync the file is also fsynced.
package filecmd
