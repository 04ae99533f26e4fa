package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/autocareer/autocareer/pkg/kernel"
)

// Action names the pipeline stage an entry records
type Action string

const (
	ActionSearch  Action = "search"
	ActionAnalyze Action = "analyze"
	ActionDraft   Action = "draft"
	ActionSubmit  Action = "submit"
	ActionRun     Action = "run"
)

// EntryStatus is the outcome the entry records
type EntryStatus string

const (
	EntrySuccess  EntryStatus = "success"
	EntryFallback EntryStatus = "fallback"
	EntrySkipped  EntryStatus = "skipped"
	EntryAborted  EntryStatus = "aborted"
	EntryFailure  EntryStatus = "failure"
)

// LogEntry is one immutable record of pipeline activity. Entries form a
// hash chain: each entry's hash covers the previous entry's hash, so
// tampering with history breaks verification from that point on.
type LogEntry struct {
	ID        kernel.LogEntryID `db:"id" json:"id"`
	RunID     kernel.RunID      `db:"run_id" json:"run_id,omitempty"`
	JobID     kernel.JobID      `db:"job_id" json:"job_id,omitempty"`
	Action    Action            `db:"action" json:"action"`
	Status    EntryStatus       `db:"status" json:"status"`
	Detail    string            `db:"detail" json:"detail,omitempty"`
	PrevHash  string            `db:"prev_hash" json:"prev_hash"`
	Hash      string            `db:"hash" json:"hash"`
	CreatedAt time.Time         `db:"created_at" json:"created_at"`
}

// ComputeHash derives the entry's chain hash from its content and the
// previous entry's hash. The timestamp participates so identical events
// at different times hash differently.
func (e *LogEntry) ComputeHash() string {
	h := sha256.New()
	h.Write([]byte(e.PrevHash))
	h.Write([]byte(e.JobID))
	h.Write([]byte(e.Action))
	h.Write([]byte(e.Status))
	h.Write([]byte(e.CreatedAt.UTC().Format(time.RFC3339Nano)))
	h.Write([]byte(e.Detail))
	return hex.EncodeToString(h.Sum(nil))
}

// Verify recomputes the hash and compares it to the stored one
func (e *LogEntry) Verify() bool {
	return e.Hash == e.ComputeHash()
}

// VerifyChain walks entries in storage order and reports the index of the
// first broken link, or -1 when the chain is intact. The first entry must
// carry an empty PrevHash.
func VerifyChain(entries []LogEntry) int {
	prev := ""
	for i := range entries {
		if entries[i].PrevHash != prev || !entries[i].Verify() {
			return i
		}
		prev = entries[i].Hash
	}
	return -1
}
