package usecase

import (
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/io"
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/model"
)

// Notifier receives committed activity entries. Implementations deliver them
// to whatever is listening (webhooks, mail, a message bus); delivery is
// best-effort and happens outside the transaction.
type Notifier interface {
	Notify(entry *model.ActivityEntry) error
}

// NopNotifier drops everything.
type NopNotifier struct{}

func (NopNotifier) Notify(*model.ActivityEntry) error { return nil }

// ActivitySink adapts a Notifier to the store's sink interface. Only activity
// entries are forwarded, every other committed change is ignored.
type ActivitySink struct {
	notifier Notifier
}

func NewActivitySink(notifier Notifier) *ActivitySink {
	return &ActivitySink{notifier: notifier}
}

func (s *ActivitySink) ProcessObject(obj io.MemoryStorableObject) error {
	if entry, ok := obj.(*model.ActivityEntry); ok {
		return s.notifier.Notify(entry)
	}
	return nil
}

func (s *ActivitySink) ProcessObjectDelete(io.MemoryStorableObject) error {
	return nil
}

func (s *ActivitySink) Name() string {
	return "activity-notifier"
}
