package view

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/tourfront/internal/model"
	"github.com/iliyamo/tourfront/internal/queue"
)

func sampleInquiries() []model.Inquiry {
	return []model.Inquiry{
		{ID: "1", Name: "Ann", Email: "ann@example.com", Message: "Is Bali open in May?"},
		{ID: "2", Name: "Bo", Email: "bo@example.com", Message: "Group rates?", Reply: &model.Reply{
			Subject: "Group rates", Message: "Yes, 10% off.", SentAt: "2024-05-01T14:30:00Z",
		}},
	}
}

func newView(api *fakeInquiryAPI, audit AuditSink) *InquiriesView {
	st := NewInquiriesState()
	api.state = st
	fixed := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	return NewInquiriesView(api, st, InquiriesConfig{Audit: audit, Now: func() time.Time { return fixed }})
}

func TestRefresh(t *testing.T) {
	t.Run("replaces collection and clears loading", func(t *testing.T) {
		api := &fakeInquiryAPI{items: sampleInquiries()}
		v := newView(api, nil)

		v.Refresh(context.Background())

		assert.True(t, api.loadingSeen, "loading must be set while the request is in flight")
		assert.False(t, v.State.Loading)
		assert.Len(t, v.State.Inquiries, 2)
		assert.Empty(t, v.State.Notices)
	})

	t.Run("failure keeps previous snapshot", func(t *testing.T) {
		api := &fakeInquiryAPI{items: sampleInquiries()}
		v := newView(api, nil)
		v.Refresh(context.Background())

		api.listErr = errBackend
		v.Refresh(context.Background())

		assert.False(t, v.State.Loading)
		assert.Len(t, v.State.Inquiries, 2)
		assert.Equal(t, []Notice{{Kind: NoticeError, Text: MsgFetchFailed}}, v.TakeNotices())
		assert.Empty(t, v.State.Notices)
	})
}

func TestMountFetchesOnce(t *testing.T) {
	api := &fakeInquiryAPI{items: sampleInquiries()}
	v := newView(api, nil)

	v.Mount(context.Background())
	v.Mount(context.Background())

	assert.Equal(t, 1, api.listCalls)
	assert.True(t, v.State.Mounted)
}

func TestRefreshCountsAsMount(t *testing.T) {
	api := &fakeInquiryAPI{items: sampleInquiries()}
	v := newView(api, nil)

	v.Delete(context.Background(), model.Inquiry{ID: "1"}, ConfirmFunc(func(context.Context, string) (bool, error) { return true, nil }))
	v.Mount(context.Background())

	assert.Equal(t, 1, api.listCalls)
	assert.True(t, v.State.Mounted)
}

func TestDelete(t *testing.T) {
	t.Run("declined sends nothing", func(t *testing.T) {
		api := &fakeInquiryAPI{items: sampleInquiries()}
		v := newView(api, nil)
		v.Refresh(context.Background())

		v.Delete(context.Background(), v.State.Inquiries[0], answer(false))

		assert.Empty(t, api.deleted)
		assert.Equal(t, 1, api.listCalls)
		assert.Len(t, v.State.Inquiries, 2)
	})

	t.Run("confirmation error sends nothing", func(t *testing.T) {
		api := &fakeInquiryAPI{items: sampleInquiries()}
		v := newView(api, nil)
		failing := ConfirmFunc(func(ctx context.Context, prompt string) (bool, error) {
			return true, errors.New("dialog closed")
		})

		v.Delete(context.Background(), sampleInquiries()[0], failing)

		assert.Empty(t, api.deleted)
	})

	t.Run("confirmed deletes and refetches once", func(t *testing.T) {
		api := &fakeInquiryAPI{items: sampleInquiries()}
		audit := &recordingAudit{}
		v := newView(api, audit)
		v.Refresh(context.Background())

		var prompt string
		confirm := ConfirmFunc(func(ctx context.Context, p string) (bool, error) {
			prompt = p
			return true, nil
		})
		v.Delete(context.Background(), v.State.Inquiries[0], confirm)

		assert.Equal(t, MsgDeleteConfirm, prompt)
		assert.Equal(t, []string{"1"}, api.deleted)
		assert.Equal(t, 2, api.listCalls, "exactly one follow-up list request")
		require.Len(t, v.State.Inquiries, 1)
		assert.Equal(t, "2", v.State.Inquiries[0].ID)
		assert.Equal(t, []Notice{{Kind: NoticeSuccess, Text: MsgDeleted}}, v.TakeNotices())

		require.Len(t, audit.events, 1)
		assert.Equal(t, queue.ActionDeleted, audit.events[0].Action)
		assert.Equal(t, "1", audit.events[0].InquiryID)
		assert.Equal(t, time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC), audit.events[0].At)
	})

	t.Run("failure leaves list unchanged", func(t *testing.T) {
		api := &fakeInquiryAPI{items: sampleInquiries(), deleteErr: errBackend}
		audit := &recordingAudit{}
		v := newView(api, audit)
		v.Refresh(context.Background())

		v.Delete(context.Background(), v.State.Inquiries[0], answer(true))

		assert.Equal(t, 1, api.listCalls)
		assert.Len(t, v.State.Inquiries, 2)
		assert.Equal(t, []Notice{{Kind: NoticeError, Text: MsgDeleteFailed}}, v.TakeNotices())
		assert.Empty(t, audit.events)
	})

	t.Run("audit failure does not affect the view", func(t *testing.T) {
		api := &fakeInquiryAPI{items: sampleInquiries()}
		v := newView(api, &recordingAudit{err: errors.New("broker down")})

		v.Delete(context.Background(), sampleInquiries()[0], answer(true))

		assert.Equal(t, []Notice{{Kind: NoticeSuccess, Text: MsgDeleted}}, v.TakeNotices())
		assert.Equal(t, 1, api.listCalls)
	})
}

func TestOpenReplyDoesNotPrefillSubject(t *testing.T) {
	v := newView(&fakeInquiryAPI{}, nil)
	inq := sampleInquiries()[0]

	v.OpenReply(inq)

	assert.True(t, v.State.ReplyOpen)
	require.NotNil(t, v.State.Selected)
	assert.Equal(t, "1", v.State.Selected.ID)
	assert.Empty(t, v.State.DraftSubject)
}

func TestSendReply(t *testing.T) {
	t.Run("empty message is rejected without a request", func(t *testing.T) {
		for _, selected := range []bool{true, false} {
			api := &fakeInquiryAPI{items: sampleInquiries()}
			v := newView(api, nil)
			if selected {
				v.OpenReply(sampleInquiries()[0])
			}
			v.SetDrafts("Hello", "")

			assert.False(t, v.SendReply(context.Background()))
			assert.Empty(t, api.replies, fmt.Sprintf("selected=%v", selected))
			assert.Zero(t, api.listCalls)
			assert.Equal(t, []Notice{{Kind: NoticeError, Text: MsgReplyEmpty}}, v.TakeNotices())
		}
	})

	t.Run("no selection is rejected", func(t *testing.T) {
		api := &fakeInquiryAPI{}
		v := newView(api, nil)
		v.SetDrafts("", "Thanks")

		assert.False(t, v.SendReply(context.Background()))
		assert.Empty(t, api.replies)
	})

	t.Run("empty subject defaults to reply to name", func(t *testing.T) {
		api := &fakeInquiryAPI{items: sampleInquiries()}
		audit := &recordingAudit{}
		v := newView(api, audit)
		v.OpenReply(sampleInquiries()[0])
		v.SetDrafts("", "We are open in May.")

		require.True(t, v.SendReply(context.Background()))

		require.Len(t, api.replies, 1)
		assert.Equal(t, model.ReplyRequest{
			InquiryID:    "1",
			Email:        "ann@example.com",
			Subject:      "Reply to: Ann",
			ReplyMessage: "We are open in May.",
		}, api.replies[0])
		assert.Equal(t, 1, api.listCalls, "exactly one follow-up list request")
		assert.False(t, v.State.ReplyOpen)
		assert.Empty(t, v.State.DraftSubject)
		assert.Empty(t, v.State.DraftMessage)
		assert.Equal(t, []Notice{{Kind: NoticeSuccess, Text: MsgReplySent}}, v.TakeNotices())

		require.Len(t, audit.events, 1)
		assert.Equal(t, queue.ActionReplied, audit.events[0].Action)
		assert.Equal(t, "Reply to: Ann", audit.events[0].Subject)
	})

	t.Run("explicit subject is kept", func(t *testing.T) {
		api := &fakeInquiryAPI{}
		v := newView(api, nil)
		v.OpenReply(sampleInquiries()[0])
		v.SetDrafts("May availability", "Yes")

		require.True(t, v.SendReply(context.Background()))
		assert.Equal(t, "May availability", api.replies[0].Subject)
	})

	t.Run("failure keeps dialog and drafts", func(t *testing.T) {
		api := &fakeInquiryAPI{replyErr: errBackend}
		v := newView(api, nil)
		v.OpenReply(sampleInquiries()[0])
		v.SetDrafts("Subj", "Body")

		assert.False(t, v.SendReply(context.Background()))

		assert.True(t, v.State.ReplyOpen)
		assert.Equal(t, "Subj", v.State.DraftSubject)
		assert.Equal(t, "Body", v.State.DraftMessage)
		assert.Zero(t, api.listCalls)
		assert.Equal(t, []Notice{{Kind: NoticeError, Text: MsgReplyFailed}}, v.TakeNotices())
	})
}

func TestCloseReplyKeepsDrafts(t *testing.T) {
	v := newView(&fakeInquiryAPI{}, nil)
	v.OpenReply(sampleInquiries()[0])
	v.SetDrafts("s", "m")

	v.CloseReply()

	assert.False(t, v.State.ReplyOpen)
	assert.Equal(t, "m", v.State.DraftMessage)
}

func TestViewReply(t *testing.T) {
	t.Run("no reply gives info notice", func(t *testing.T) {
		v := newView(&fakeInquiryAPI{}, nil)

		_, ok := v.ViewReply(sampleInquiries()[0])

		assert.False(t, ok)
		assert.Equal(t, []Notice{{Kind: NoticeInfo, Text: MsgNoReply}}, v.TakeNotices())
	})

	t.Run("shows exactly the reply", func(t *testing.T) {
		v := newView(&fakeInquiryAPI{}, nil)

		d, ok := v.ViewReply(sampleInquiries()[1])

		require.True(t, ok)
		assert.Equal(t, ReplyDetail{
			Title:   "Reply to Bo",
			Subject: "Group rates",
			Message: "Yes, 10% off.",
			SentOn:  "5/1/2024, 2:30:00 PM",
		}, d)
		assert.Empty(t, v.State.Notices)
	})

	t.Run("bad timestamp falls back", func(t *testing.T) {
		v := newView(&fakeInquiryAPI{}, nil)
		for _, raw := range []string{"", "yesterday", "2024-13-45T99:00:00Z"} {
			inq := model.Inquiry{ID: "9", Name: "X", Reply: &model.Reply{Subject: "s", Message: "m", SentAt: raw}}
			d, ok := v.ViewReply(inq)
			require.True(t, ok)
			assert.Equal(t, InvalidDate, d.SentOn, raw)
		}
	})
}

func TestPage(t *testing.T) {
	api := &fakeInquiryAPI{}
	for i := 1; i <= 14; i++ {
		inq := model.Inquiry{ID: fmt.Sprint(i), Name: fmt.Sprintf("n%d", i)}
		if i%2 == 0 {
			inq.Reply = &model.Reply{Subject: "s", Message: "m"}
		}
		api.items = append(api.items, inq)
	}
	v := newView(api, nil)
	v.Refresh(context.Background())

	p := v.Page(1)
	assert.Len(t, p.Rows, 6)
	assert.Equal(t, 3, p.Total)
	assert.Equal(t, 14, p.Count)
	assert.False(t, p.HasPrev())
	assert.True(t, p.HasNext())
	assert.True(t, p.Rows[0].EmphasizeReply)
	assert.False(t, p.Rows[0].EmphasizeViewReply)
	assert.False(t, p.Rows[1].EmphasizeReply)
	assert.True(t, p.Rows[1].EmphasizeViewReply)

	last := v.Page(99)
	assert.Equal(t, 3, last.Number)
	assert.Len(t, last.Rows, 2)
	assert.Equal(t, "13", last.Rows[0].ID)

	assert.Equal(t, 1, v.Page(-4).Number)

	empty := newView(&fakeInquiryAPI{}, nil)
	ep := empty.Page(1)
	assert.Equal(t, 1, ep.Total)
	assert.Empty(t, ep.Rows)
}
