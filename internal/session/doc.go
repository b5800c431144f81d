package session

// Package session coordinates dashboard updates. The UI submits control
// state snapshots; a single worker goroutine evaluates the latest one against
// the base table and hands the result back through a callback. Older pending
// submissions are coalesced away and results that were overtaken while being
// computed are discarded.
