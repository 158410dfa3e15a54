package handlers

import (
	"context"
	"errors"
	"sync"
)

// fakeMessenger records every message; sends whose index is in failAt return an error.
type fakeMessenger struct {
	mu     sync.Mutex
	sent   []Outgoing
	failAt map[int]bool
	calls  int
}

func (m *fakeMessenger) Send(ctx context.Context, msg Outgoing) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := m.calls
	m.calls++
	if m.failAt[idx] {
		return errors.New("telegram: bad gateway")
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *fakeMessenger) to(chatID int64) []Outgoing {
	var out []Outgoing
	for _, s := range m.sent {
		if s.ChatID == chatID {
			out = append(out, s)
		}
	}
	return out
}

type fakeMetrics struct {
	counts map[string]int
	err    error
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{counts: map[string]int{}}
}

func (m *fakeMetrics) Count(ctx context.Context, name string) error {
	m.counts[name]++
	return m.err
}

type dedupRecord struct {
	status string
	note   string
}

// fakeDeduper mirrors the claim rules of the DynamoDB store: a key can be
// claimed when absent or previously failed.
type fakeDeduper struct {
	mu      sync.Mutex
	records map[string]*dedupRecord
	err     error
}

func newFakeDeduper() *fakeDeduper {
	return &fakeDeduper{records: map[string]*dedupRecord{}}
}

func (d *fakeDeduper) Claim(ctx context.Context, key, kind string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return false, d.err
	}
	if rec, ok := d.records[key]; ok && rec.status != "FAILED" {
		return false, nil
	}
	d.records[key] = &dedupRecord{status: "IN_PROGRESS"}
	return true, nil
}

func (d *fakeDeduper) MarkDone(ctx context.Context, key string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.records[key].status = "DONE"
	return nil
}

func (d *fakeDeduper) MarkFailed(ctx context.Context, key, note string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.records[key].status = "FAILED"
	d.records[key].note = note
	return nil
}
