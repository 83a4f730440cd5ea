package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/tourfront/internal/logger"
	"github.com/iliyamo/tourfront/internal/middleware"
	"github.com/iliyamo/tourfront/internal/model"
	"github.com/iliyamo/tourfront/internal/session"
	"github.com/iliyamo/tourfront/internal/view"
	"github.com/iliyamo/tourfront/internal/web"
)

const inquiriesPath = "/admin/inquiries"

// InquiriesHandler serves the admin panel.  Each request loads the
// session's view state, runs one view operation and saves the state back.
// Mutations redirect to the list, which renders from the refreshed state
// without fetching again.
type InquiriesHandler struct {
	API      view.InquiryAPI
	Sessions session.Store
	Audit    view.AuditSink
	PageSize int
	Location *time.Location
}

func NewInquiriesHandler(api view.InquiryAPI, sessions session.Store, audit view.AuditSink, pageSize int, loc *time.Location) *InquiriesHandler {
	if api == nil || sessions == nil {
		panic("nil dependency passed to NewInquiriesHandler")
	}
	return &InquiriesHandler{API: api, Sessions: sessions, Audit: audit, PageSize: pageSize, Location: loc}
}

type inquiriesPage struct {
	Title         string
	CSRF          string
	Notices       []view.Notice
	Loading       bool
	Page          view.Page
	ReplyOpen     bool
	Selected      *model.Inquiry
	DraftSubject  string
	DraftMessage  string
	Detail        *view.ReplyDetail
	Confirm       *model.Inquiry
	ConfirmPrompt string
}

// formConfirmer answers the delete prompt from the submitted dialog.
type formConfirmer struct{ answer string }

func (f formConfirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f.answer == "yes", nil
}

// List handles GET /admin/inquiries.  The first visit of a session mounts
// the view, which fetches the collection.
func (h *InquiriesHandler) List(c echo.Context) error {
	page := pageParam(c)
	return h.withView(c, func(ctx context.Context, v *view.InquiriesView) error {
		v.Mount(ctx)
		return h.render(c, v, page, nil)
	})
}

// Reload handles POST /admin/inquiries/reload.
func (h *InquiriesHandler) Reload(c echo.Context) error {
	return h.withView(c, func(ctx context.Context, v *view.InquiriesView) error {
		v.Refresh(ctx)
		return redirectToList(c, pageParam(c))
	})
}

// ConfirmDelete handles GET /admin/inquiries/:id/delete by showing the
// confirmation dialog.  Nothing is sent to the backend.
func (h *InquiriesHandler) ConfirmDelete(c echo.Context) error {
	return h.withView(c, func(ctx context.Context, v *view.InquiriesView) error {
		inq, ok := v.Find(c.Param("id"))
		if !ok {
			v.NotifyMissing()
			return redirectToList(c, pageParam(c))
		}
		return h.render(c, v, pageParam(c), func(p *inquiriesPage) {
			p.Confirm = &inq
			p.ConfirmPrompt = view.MsgDeleteConfirm
		})
	})
}

// Delete handles POST /admin/inquiries/:id/delete.  The form field
// confirm=yes is the user's answer to the prompt.
func (h *InquiriesHandler) Delete(c echo.Context) error {
	return h.withView(c, func(ctx context.Context, v *view.InquiriesView) error {
		id := c.Param("id")
		inq, ok := v.Find(id)
		if !ok {
			inq = model.Inquiry{ID: id}
		}
		v.Delete(ctx, inq, formConfirmer{answer: c.FormValue("confirm")})
		return redirectToList(c, pageParam(c))
	})
}

// OpenReply handles POST /admin/inquiries/:id/reply.
func (h *InquiriesHandler) OpenReply(c echo.Context) error {
	return h.withView(c, func(ctx context.Context, v *view.InquiriesView) error {
		inq, ok := v.Find(c.Param("id"))
		if !ok {
			v.NotifyMissing()
			return redirectToList(c, pageParam(c))
		}
		v.OpenReply(inq)
		return redirectToList(c, pageParam(c))
	})
}

// SendReply handles POST /admin/reply/send with the dialog's fields.
func (h *InquiriesHandler) SendReply(c echo.Context) error {
	return h.withView(c, func(ctx context.Context, v *view.InquiriesView) error {
		v.SetDrafts(c.FormValue("subject"), c.FormValue("replyMessage"))
		v.SendReply(ctx)
		return redirectToList(c, pageParam(c))
	})
}

// CancelReply handles POST /admin/reply/cancel.  What was typed is kept.
func (h *InquiriesHandler) CancelReply(c echo.Context) error {
	return h.withView(c, func(ctx context.Context, v *view.InquiriesView) error {
		if f, err := c.FormParams(); err == nil && (f.Has("subject") || f.Has("replyMessage")) {
			v.SetDrafts(f.Get("subject"), f.Get("replyMessage"))
		}
		v.CloseReply()
		return redirectToList(c, pageParam(c))
	})
}

// ViewReply handles GET /admin/inquiries/:id/reply.
func (h *InquiriesHandler) ViewReply(c echo.Context) error {
	return h.withView(c, func(ctx context.Context, v *view.InquiriesView) error {
		inq, ok := v.Find(c.Param("id"))
		if !ok {
			v.NotifyMissing()
			return redirectToList(c, pageParam(c))
		}
		detail, ok := v.ViewReply(inq)
		if !ok {
			return redirectToList(c, pageParam(c))
		}
		return h.render(c, v, pageParam(c), func(p *inquiriesPage) { p.Detail = &detail })
	})
}

func (h *InquiriesHandler) withView(c echo.Context, fn func(ctx context.Context, v *view.InquiriesView) error) error {
	ctx := c.Request().Context()
	log := logger.GetLogger()
	sid := middleware.SessionID(c)

	st, err := h.Sessions.Load(ctx, sid)
	if err != nil {
		log.Warnw("Could not load session state, starting fresh", "error", err)
		st = view.NewInquiriesState()
	}
	v := view.NewInquiriesView(h.API, st, view.InquiriesConfig{
		PageSize: h.PageSize,
		Location: h.Location,
		Audit:    h.Audit,
	})

	ferr := fn(ctx, v)
	if err := h.Sessions.Save(ctx, sid, st); err != nil {
		log.Errorw("Could not save session state", "error", err)
	}
	return ferr
}

func (h *InquiriesHandler) render(c echo.Context, v *view.InquiriesView, page int, decorate func(*inquiriesPage)) error {
	st := v.State
	p := inquiriesPage{
		Title:        "Contact Inquiries",
		CSRF:         csrfToken(c),
		Notices:      v.TakeNotices(),
		Loading:      st.Loading,
		Page:         v.Page(page),
		ReplyOpen:    st.ReplyOpen,
		Selected:     st.Selected,
		DraftSubject: st.DraftSubject,
		DraftMessage: st.DraftMessage,
	}
	if decorate != nil {
		decorate(&p)
	}
	return c.Render(http.StatusOK, web.PageInquiries, p)
}

// redirectToList sends the browser back to the table, keeping its page.
func redirectToList(c echo.Context, page int) error {
	target := inquiriesPath
	if page > 1 {
		target += "?page=" + strconv.Itoa(page)
	}
	return c.Redirect(http.StatusSeeOther, target)
}

// pageParam reads the table page from the query or the posted form.  Zero
// means the first page.
func pageParam(c echo.Context) int {
	n, err := strconv.Atoi(c.FormValue("page"))
	if err != nil || n < 1 {
		return 0
	}
	return n
}

// csrfToken is the token set by echo's CSRF middleware, empty without it.
func csrfToken(c echo.Context) string {
	if tok, ok := c.Get(echomw.DefaultCSRFConfig.ContextKey).(string); ok {
		return tok
	}
	return ""
}
