package domain

import (
	"strings"
	"time"
)

// Batch is one feed's result within one fetch cycle, the unit exchanged between
// the fetching and the storing side
type Batch struct {
	FetchID    string    `json:"fetchId"`
	FetchedAt  time.Time `json:"fetchedAt"`
	SourceID   string    `json:"sourceId"`
	SourceName string    `json:"sourceName"`
	SourceURL  string    `json:"sourceUrl"`
	Items      []Article `json:"items"`
	Error      *string   `json:"error"`
}

// OK reports whether the batch carries items rather than an error
func (b Batch) OK() bool {
	return b.Error == nil || strings.TrimSpace(*b.Error) == ""
}

// ErrorText returns the batch error or an empty string
func (b Batch) ErrorText() string {
	if b.Error == nil {
		return ""
	}
	return *b.Error
}

// IngestResult reports the outcome of ingesting one batch
type IngestResult struct {
	Added  int      `json:"added"`
	Errors []string `json:"errors"`
}

// RefreshRun is the result of dispatching one fetch cycle
type RefreshRun struct {
	FetchID    string  `json:"fetchId"`
	BatchCount int     `json:"batchCount"`
	Error      *string `json:"error"`
	Busy       bool    `json:"busy,omitempty"` // another cycle was in progress, nothing dispatched
}

// OK reports whether the cycle was dispatched
func (r RefreshRun) OK() bool {
	return r.Error == nil || strings.TrimSpace(*r.Error) == ""
}

// TriggerKind tags the outcome of a refresh request
type TriggerKind string

// trigger outcomes
const (
	TriggerOK     TriggerKind = "ok"
	TriggerWait   TriggerKind = "wait"
	TriggerFailed TriggerKind = "error"
)

// TriggerResult is the outcome of asking the fetching side for a refresh.
// FetchID and BatchCount are set only for TriggerOK.
type TriggerResult struct {
	Kind       TriggerKind `json:"kind"`
	FetchID    string      `json:"fetchId,omitempty"`
	BatchCount int         `json:"batchCount,omitempty"`
	Message    string      `json:"message,omitempty"`
}

// TriggerFromRun converts a dispatched run into a trigger result
func TriggerFromRun(run RefreshRun) TriggerResult {
	switch {
	case run.Busy:
		return TriggerResult{Kind: TriggerWait, Message: "refresh already in progress"}
	case !run.OK():
		return TriggerResult{Kind: TriggerFailed, Message: *run.Error}
	default:
		return TriggerResult{Kind: TriggerOK, FetchID: run.FetchID, BatchCount: run.BatchCount, Message: "refresh requested"}
	}
}

// StrPtr returns a pointer to s
func StrPtr(s string) *string { return &s }
