// Package changelog records what a deduplication run did: which records were
// removed, merged, or kept, and under which decision. A log is an audit
// artifact, written next to the cleaned export so a run can be reviewed or
// reverted by hand later.
package changelog

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/agentstation/utc"
	"github.com/goccy/go-yaml"

	"github.com/taggedzi/creddedupe/pkg/dedupe"
	"github.com/taggedzi/creddedupe/pkg/errors"
	"github.com/taggedzi/creddedupe/pkg/vault"
)

// Action classifies a changelog entry.
type Action string

const (
	// ActionRemoveExact marks records dropped because every important field
	// matched the surviving one.
	ActionRemoveExact Action = "remove_exact"
	// ActionMerge marks records folded into a survivor whose notes carry
	// their distinct values.
	ActionMerge Action = "merge"
	// ActionDiscardManual marks records dropped by an explicit keep-one
	// decision.
	ActionDiscardManual Action = "discard_manual"
	// ActionKeepAll marks a cluster the reviewer chose to keep in full.
	ActionKeepAll Action = "keep_all"
	// ActionSkip marks a cluster deferred to a later run.
	ActionSkip Action = "skip"
)

// Entry is one recorded event.
type Entry struct {
	Time    utc.Time `json:"time" yaml:"time"`
	Action  Action   `json:"action" yaml:"action"`
	Domain  string   `json:"domain,omitempty" yaml:"domain,omitempty"`
	Login   string   `json:"login,omitempty" yaml:"login,omitempty"`
	Title   string   `json:"title,omitempty" yaml:"title,omitempty"`
	Source  string   `json:"source,omitempty" yaml:"source,omitempty"`
	Removed int      `json:"removed,omitempty" yaml:"removed,omitempty"`
	Detail  string   `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// Log is a full run record.
type Log struct {
	Tool        string   `json:"tool" yaml:"tool"`
	CreatedAt   utc.Time `json:"created_at" yaml:"created_at"`
	InputFiles  []string `json:"input_files,omitempty" yaml:"input_files,omitempty"`
	InputHashes []string `json:"input_hashes,omitempty" yaml:"input_hashes,omitempty"`
	Provider    string   `json:"provider,omitempty" yaml:"provider,omitempty"`
	Entries     []Entry  `json:"entries" yaml:"entries"`
}

// New returns an empty log stamped with the current time.
func New() *Log {
	return &Log{
		Tool:      "creddedupe",
		CreatedAt: utc.Now(),
	}
}

// AddInput records an input file and its content hash. Hashing failures are
// reported rather than silently recorded, since a log with a wrong hash is
// worse than none.
func (l *Log) AddInput(path string) error {
	sum, err := HashFile(path)
	if err != nil {
		return err
	}
	l.InputFiles = append(l.InputFiles, path)
	l.InputHashes = append(l.InputHashes, sum)
	return nil
}

// Append adds an entry stamped with the current time.
func (l *Log) Append(e Entry) {
	if e.Time.IsZero() {
		e.Time = utc.Now()
	}
	l.Entries = append(l.Entries, e)
}

// RecordAutoMerge records the collapse of an exact-duplicate cluster into
// its surviving record.
func (l *Log) RecordAutoMerge(key dedupe.Key, survivor vault.Item, removed int) {
	l.Append(Entry{
		Action:  ActionRemoveExact,
		Domain:  key.Domain,
		Login:   key.Login,
		Title:   survivor.Title,
		Source:  survivor.Source,
		Removed: removed,
	})
}

// RecordDecision records the resolution of a pending cluster.
func (l *Log) RecordDecision(c *dedupe.Cluster, d dedupe.Decision, removed int) {
	e := Entry{
		Domain:  c.Key.Domain,
		Login:   c.Key.Login,
		Removed: removed,
	}
	if len(c.Members) > 0 {
		survivor := c.Members[c.Preferred]
		if d.Action == dedupe.KeepOne && d.Index >= 0 && d.Index < len(c.Members) {
			survivor = c.Members[d.Index]
		}
		e.Title = survivor.Title
		e.Source = survivor.Source
	}

	switch d.Action {
	case dedupe.KeepOne:
		e.Action = ActionDiscardManual
		e.Detail = fmt.Sprintf("kept member %d of %d", d.Index, len(c.Members))
	case dedupe.KeepBest:
		e.Action = ActionMerge
		e.Detail = fmt.Sprintf("merged %d records", len(c.Members))
	case dedupe.KeepAll:
		e.Action = ActionKeepAll
	case dedupe.Skip:
		e.Action = ActionSkip
	}
	l.Append(e)
}

// Removed returns the total number of records the log says were discarded.
func (l *Log) Removed() int {
	total := 0
	for _, e := range l.Entries {
		total += e.Removed
	}
	return total
}

// Save writes the log as indented JSON.
func (l *Log) Save(path string) error {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return errors.WrapIO("marshal changelog", path, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return errors.WrapIO("write changelog", path, err)
	}
	return nil
}

// SaveYAML writes the log as YAML.
func (l *Log) SaveYAML(path string) error {
	data, err := yaml.Marshal(l)
	if err != nil {
		return errors.WrapIO("marshal changelog", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapIO("write changelog", path, err)
	}
	return nil
}

// Load reads a previously saved JSON log.
func Load(path string) (*Log, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read changelog", path, err)
	}
	var l Log
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, errors.NewParseError("json", path, "invalid changelog", err)
	}
	return &l, nil
}

// HashFile returns the hex SHA-256 of a file's contents.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.WrapIO("open", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", errors.WrapIO("hash", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
