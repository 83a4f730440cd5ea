package view

import (
	"context"
	"errors"
	"sync"

	"github.com/iliyamo/tourfront/internal/logger"
	"github.com/iliyamo/tourfront/internal/model"
	"github.com/iliyamo/tourfront/internal/queue"
)

func init() { logger.IsTest = true }

var errBackend = errors.New("backend down")

type fakeInquiryAPI struct {
	mu        sync.Mutex
	items     []model.Inquiry
	listErr   error
	deleteErr error
	replyErr  error

	listCalls   int
	deleted     []string
	replies     []model.ReplyRequest
	loadingSeen bool
	state       *InquiriesState
}

func (f *fakeInquiryAPI) ListInquiries(ctx context.Context) ([]model.Inquiry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.state != nil && f.state.Loading {
		f.loadingSeen = true
	}
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]model.Inquiry, len(f.items))
	copy(out, f.items)
	return out, nil
}

func (f *fakeInquiryAPI) DeleteInquiry(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	kept := f.items[:0]
	for _, inq := range f.items {
		if inq.ID != id {
			kept = append(kept, inq)
		}
	}
	f.items = kept
	return nil
}

func (f *fakeInquiryAPI) SendReply(ctx context.Context, req model.ReplyRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replies = append(f.replies, req)
	return f.replyErr
}

type recordingAudit struct {
	events []queue.InquiryEvent
	err    error
}

func (r *recordingAudit) Publish(ctx context.Context, ev queue.InquiryEvent) error {
	r.events = append(r.events, ev)
	return r.err
}

type fakeTourAPI struct {
	tours []model.Tour
	err   error
	calls int
}

func (f *fakeTourAPI) ListTours(ctx context.Context) ([]model.Tour, error) {
	f.calls++
	return f.tours, f.err
}

func answer(yes bool) Confirmer {
	return ConfirmFunc(func(ctx context.Context, prompt string) (bool, error) { return yes, nil })
}
