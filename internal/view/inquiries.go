package view

import (
	"context"
	"time"

	"github.com/iliyamo/tourfront/internal/logger"
	"github.com/iliyamo/tourfront/internal/model"
	"github.com/iliyamo/tourfront/internal/queue"
)

// User-facing messages of the inquiries panel.
const (
	MsgFetchFailed   = "Failed to fetch inquiries."
	MsgDeleteConfirm = "Are you sure you want to delete this inquiry?"
	MsgDeleted       = "Inquiry deleted successfully."
	MsgDeleteFailed  = "Failed to delete inquiry."
	MsgReplyEmpty    = "Reply message cannot be empty."
	MsgReplySent     = "Reply sent successfully."
	MsgReplyFailed   = "Failed to send reply."
	MsgNoReply       = "No reply has been sent for this inquiry."
	MsgNotFound      = "Inquiry not found."
)

// DefaultPageSize is the number of rows on one page of the inquiries table.
const DefaultPageSize = 6

// InquiryAPI is the part of the backend the inquiries panel talks to.
type InquiryAPI interface {
	ListInquiries(ctx context.Context) ([]model.Inquiry, error)
	DeleteInquiry(ctx context.Context, id string) error
	SendReply(ctx context.Context, req model.ReplyRequest) error
}

// AuditSink receives an event after a delete or reply succeeded.
type AuditSink interface {
	Publish(ctx context.Context, ev queue.InquiryEvent) error
}

// InquiriesState is everything the panel remembers between requests.  It is
// serialized by the session store.
type InquiriesState struct {
	Inquiries    []model.Inquiry `json:"inquiries"`
	Loading      bool            `json:"loading"`
	ReplyOpen    bool            `json:"reply_open"`
	Selected     *model.Inquiry  `json:"selected,omitempty"`
	DraftSubject string          `json:"draft_subject"`
	DraftMessage string          `json:"draft_message"`
	Notices      []Notice        `json:"notices,omitempty"`
	Mounted      bool            `json:"mounted"`
}

// NewInquiriesState returns the state of a panel that was never rendered.
func NewInquiriesState() *InquiriesState {
	return &InquiriesState{Inquiries: []model.Inquiry{}}
}

// InquiriesConfig carries the optional collaborators of the panel.
type InquiriesConfig struct {
	PageSize int
	Location *time.Location // zone for reply timestamps
	Audit    AuditSink
	Now      func() time.Time
}

// InquiriesView binds a state to the backend.
type InquiriesView struct {
	State *InquiriesState

	api      InquiryAPI
	audit    AuditSink
	pageSize int
	loc      *time.Location
	now      func() time.Time
}

// NewInquiriesView binds state (a fresh one when nil) to api.
func NewInquiriesView(api InquiryAPI, state *InquiriesState, cfg InquiriesConfig) *InquiriesView {
	if state == nil {
		state = NewInquiriesState()
	}
	if cfg.PageSize < 1 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &InquiriesView{
		State:    state,
		api:      api,
		audit:    cfg.Audit,
		pageSize: cfg.PageSize,
		loc:      cfg.Location,
		now:      cfg.Now,
	}
}

// Mount loads the collection the first time the panel is shown.
func (v *InquiriesView) Mount(ctx context.Context) {
	if v.State.Mounted {
		return
	}
	v.Refresh(ctx)
}

// Refresh replaces the snapshot with the server's collection.  On failure
// the previous snapshot is kept and an error notice is queued.  Any list
// request counts as the mount, so a later Mount does not fetch again.
func (v *InquiriesView) Refresh(ctx context.Context) {
	v.State.Mounted = true
	v.State.Loading = true
	defer func() { v.State.Loading = false }()

	items, err := v.api.ListInquiries(ctx)
	if err != nil {
		logger.GetLogger().Errorw("Error fetching inquiries", "error", err)
		v.notify(NoticeError, MsgFetchFailed)
		return
	}
	if items == nil {
		items = []model.Inquiry{}
	}
	v.State.Inquiries = items
}

// Find returns the inquiry with id from the current snapshot.
func (v *InquiriesView) Find(id string) (model.Inquiry, bool) {
	for _, inq := range v.State.Inquiries {
		if inq.ID == id {
			return inq, true
		}
	}
	return model.Inquiry{}, false
}

// Delete removes inq after the user confirmed.  Nothing is sent when the
// confirmation is declined or fails.
func (v *InquiriesView) Delete(ctx context.Context, inq model.Inquiry, confirm Confirmer) {
	log := logger.GetLogger()
	ok, err := confirm.Confirm(ctx, MsgDeleteConfirm)
	if err != nil {
		log.Warnw("Delete confirmation failed", "inquiryID", inq.ID, "error", err)
		return
	}
	if !ok {
		log.Debugw("Delete not confirmed", "inquiryID", inq.ID)
		return
	}

	if err := v.api.DeleteInquiry(ctx, inq.ID); err != nil {
		log.Errorw("Error deleting inquiry", "inquiryID", inq.ID, "error", err)
		v.notify(NoticeError, MsgDeleteFailed)
		return
	}
	log.Infow("Inquiry deleted", "inquiryID", inq.ID)
	v.notify(NoticeSuccess, MsgDeleted)
	v.publish(ctx, queue.InquiryEvent{
		Action:    queue.ActionDeleted,
		InquiryID: inq.ID,
		Name:      inq.Name,
		Email:     inq.Email,
	})
	v.Refresh(ctx)
}

// OpenReply selects inq and shows the reply dialog.  The subject is left as
// drafted; an empty one gets a default when the reply is sent.
func (v *InquiriesView) OpenReply(inq model.Inquiry) {
	selected := inq
	v.State.Selected = &selected
	v.State.ReplyOpen = true
}

// CloseReply hides the dialog and keeps the drafts.
func (v *InquiriesView) CloseReply() {
	v.State.ReplyOpen = false
}

// SetDrafts stores what the user typed in the reply dialog.
func (v *InquiriesView) SetDrafts(subject, message string) {
	v.State.DraftSubject = subject
	v.State.DraftMessage = message
}

// SendReply posts the drafted reply for the selected inquiry.  It returns
// true when the backend accepted it.  On failure the dialog and drafts are
// left untouched so the user can retry.
func (v *InquiriesView) SendReply(ctx context.Context) bool {
	log := logger.GetLogger()
	sel := v.State.Selected
	if sel == nil || v.State.DraftMessage == "" {
		v.notify(NoticeError, MsgReplyEmpty)
		return false
	}

	subject := v.State.DraftSubject
	if subject == "" {
		subject = "Reply to: " + sel.Name
	}
	req := model.ReplyRequest{
		InquiryID:    sel.ID,
		Email:        sel.Email,
		Subject:      subject,
		ReplyMessage: v.State.DraftMessage,
	}
	if err := v.api.SendReply(ctx, req); err != nil {
		log.Errorw("Error sending reply", "inquiryID", sel.ID, "email", logger.MaskEmail(sel.Email), "error", err)
		v.notify(NoticeError, MsgReplyFailed)
		return false
	}

	log.Infow("Reply sent", "inquiryID", sel.ID, "email", logger.MaskEmail(sel.Email))
	v.notify(NoticeSuccess, MsgReplySent)
	v.State.ReplyOpen = false
	v.State.DraftMessage = ""
	v.State.DraftSubject = ""
	v.publish(ctx, queue.InquiryEvent{
		Action:    queue.ActionReplied,
		InquiryID: req.InquiryID,
		Name:      sel.Name,
		Email:     req.Email,
		Subject:   req.Subject,
	})
	v.Refresh(ctx)
	return true
}

// ReplyDetail is the read-only dialog showing a sent reply.
type ReplyDetail struct {
	Title   string
	Subject string
	Message string
	SentOn  string
}

// ViewReply returns the reply of inq for display.  When there is none an
// info notice is queued and ok is false.
func (v *InquiriesView) ViewReply(inq model.Inquiry) (ReplyDetail, bool) {
	if inq.Reply == nil {
		v.notify(NoticeInfo, MsgNoReply)
		return ReplyDetail{}, false
	}
	return ReplyDetail{
		Title:   "Reply to " + inq.Name,
		Subject: inq.Reply.Subject,
		Message: inq.Reply.Message,
		SentOn:  FormatSentAt(inq.Reply.SentAt, v.loc),
	}, true
}

// NotifyMissing queues the notice shown when an action names an inquiry
// that is not in the snapshot.
func (v *InquiriesView) NotifyMissing() {
	v.notify(NoticeError, MsgNotFound)
}

// TakeNotices returns the pending notices and clears them.
func (v *InquiriesView) TakeNotices() []Notice {
	n := v.State.Notices
	v.State.Notices = nil
	return n
}

// InquiryRow is one table row.  Exactly one of the two emphasis flags is
// set; this is the only place reply status shows up in the table.
type InquiryRow struct {
	model.Inquiry
	EmphasizeReply     bool
	EmphasizeViewReply bool
}

// Page is a slice of the snapshot for the table.
type Page struct {
	Rows   []InquiryRow
	Number int // 1-based
	Total  int // number of pages, at least 1
	Count  int // number of inquiries
}

func (p Page) HasPrev() bool { return p.Number > 1 }
func (p Page) HasNext() bool { return p.Number < p.Total }
func (p Page) Prev() int     { return p.Number - 1 }
func (p Page) Next() int     { return p.Number + 1 }

// Page returns page n of the snapshot.  n is clamped to the valid range.
func (v *InquiriesView) Page(n int) Page {
	all := v.State.Inquiries
	total := (len(all) + v.pageSize - 1) / v.pageSize
	if total < 1 {
		total = 1
	}
	if n < 1 {
		n = 1
	}
	if n > total {
		n = total
	}
	start := (n - 1) * v.pageSize
	end := start + v.pageSize
	if end > len(all) {
		end = len(all)
	}
	rows := make([]InquiryRow, 0, end-start)
	for _, inq := range all[start:end] {
		rows = append(rows, InquiryRow{
			Inquiry:            inq,
			EmphasizeReply:     !inq.HasReply(),
			EmphasizeViewReply: inq.HasReply(),
		})
	}
	return Page{Rows: rows, Number: n, Total: total, Count: len(all)}
}

func (v *InquiriesView) notify(kind NoticeKind, text string) {
	v.State.Notices = append(v.State.Notices, Notice{Kind: kind, Text: text})
}

func (v *InquiriesView) publish(ctx context.Context, ev queue.InquiryEvent) {
	if v.audit == nil {
		return
	}
	ev.At = v.now().UTC()
	if err := v.audit.Publish(ctx, ev); err != nil {
		logger.GetLogger().Warnw("Audit event dropped", "action", ev.Action, "inquiryID", ev.InquiryID, "error", err)
	}
}
