package session

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/tourfront/internal/model"
	"github.com/iliyamo/tourfront/internal/view"
)

func sampleState() *view.InquiriesState {
	st := view.NewInquiriesState()
	st.Inquiries = []model.Inquiry{{ID: "1", Name: "Ann", Email: "ann@example.com", Message: "hi"}}
	st.Mounted = true
	st.ReplyOpen = true
	st.Selected = &st.Inquiries[0]
	st.DraftMessage = "draft"
	return st
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(time.Hour)

	fresh, err := s.Load(ctx, "unknown")
	require.NoError(t, err)
	assert.False(t, fresh.Mounted)
	assert.NotNil(t, fresh.Inquiries)

	require.NoError(t, s.Save(ctx, "abc", sampleState()))
	got, err := s.Load(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, got.Mounted)
	assert.Equal(t, "draft", got.DraftMessage)

	got.DraftMessage = "changed"
	again, _ := s.Load(ctx, "abc")
	assert.Equal(t, "draft", again.DraftMessage, "loaded state must not alias stored state")
}

func TestMemoryStoreExpires(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	require.NoError(t, s.Save(ctx, "abc", sampleState()))
	now = now.Add(2 * time.Minute)

	got, err := s.Load(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, got.Mounted)
}

func TestRedisStoreLoad(t *testing.T) {
	ctx := context.Background()
	db, mock := redismock.NewClientMock()
	s := NewRedisStore(db, time.Hour)

	mock.ExpectGet(Key("missing")).RedisNil()
	fresh, err := s.Load(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, fresh.Mounted)

	bs, err := json.Marshal(sampleState())
	require.NoError(t, err)
	mock.ExpectGet(Key("abc")).SetVal(string(bs))
	got, err := s.Load(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, got.ReplyOpen)
	require.NotNil(t, got.Selected)
	assert.Equal(t, "Ann", got.Selected.Name)

	mock.ExpectGet(Key("broken")).SetVal("{not json")
	_, err = s.Load(ctx, "broken")
	assert.Error(t, err)

	mock.ExpectGet(Key("down")).SetErr(errors.New("connection refused"))
	_, err = s.Load(ctx, "down")
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStoreSave(t *testing.T) {
	ctx := context.Background()
	db, mock := redismock.NewClientMock()
	s := NewRedisStore(db, 30*time.Minute)

	st := sampleState()
	bs, err := json.Marshal(st)
	require.NoError(t, err)

	mock.ExpectSet(Key("abc"), bs, 30*time.Minute).SetVal("OK")
	require.NoError(t, s.Save(ctx, "abc", st))

	mock.ExpectSet(Key("abc"), bs, 30*time.Minute).SetErr(errors.New("readonly"))
	assert.Error(t, s.Save(ctx, "abc", st))

	assert.NoError(t, mock.ExpectationsWereMet())
}
