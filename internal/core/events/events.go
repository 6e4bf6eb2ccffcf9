// Package events 发布资源生命周期事件（created / updated / deleted / restored）。
package events

import (
	"context"
	"sync"
	"time"
)

const (
	Created  = "created"
	Updated  = "updated"
	Deleted  = "deleted"
	Restored = "restored"
)

type Event struct {
	Type     string    `json:"type"`
	Resource string    `json:"resource"`
	ID       string    `json:"id"`
	At       time.Time `json:"at"`
	// Cause 级联产生的事件记录源头，如 cluster/01HX...
	Cause string `json:"cause,omitempty"`
}

// Publisher 事务提交后调用；实现需并发安全
type Publisher interface {
	Publish(ctx context.Context, evs ...Event) error
	Close()
}

type Nop struct{}

func (Nop) Publish(context.Context, ...Event) error { return nil }
func (Nop) Close()                                  {}

// Recorder 内存记录，测试与本地调试用
type Recorder struct {
	mu  sync.Mutex
	evs []Event
}

func (r *Recorder) Publish(_ context.Context, evs ...Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.evs = append(r.evs, evs...)
	return nil
}

func (r *Recorder) Close() {}

func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.evs...)
}

// Of 按类型筛选
func (r *Recorder) Of(typ string) []Event {
	var out []Event
	for _, e := range r.Events() {
		if e.Type == typ {
			out = append(out, e)
		}
	}
	return out
}
