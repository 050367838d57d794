package live

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assetdash/assetdash/pkg/api"
	"github.com/assetdash/assetdash/pkg/types"
)

func jsonDecode(rsp *http.Response, v any) error {
	return json.NewDecoder(rsp.Body).Decode(v)
}

func TestSessionApply(t *testing.T) {
	s := &Session{ID: newSessionID()}
	assert.Len(t, s.ID, sessionIDLength)

	assert.True(t, s.Apply(api.LiveRequest{Seq: 0, Criteria: types.FilterCriteria{Search: " troll "}}))
	assert.Equal(t, "troll", s.Criteria.Search)
	assert.False(t, s.Apply(api.LiveRequest{Seq: 0, Criteria: types.FilterCriteria{Search: "x"}}))

	assert.True(t, s.Apply(api.LiveRequest{Seq: 5, Criteria: types.FilterCriteria{Country: "Norway"}, Selected: "EQ-NO-001"}))
	assert.Equal(t, types.FilterCriteria{Country: "Norway"}, s.Criteria)
	assert.Equal(t, "EQ-NO-001", s.Selected)

	assert.False(t, s.Apply(api.LiveRequest{Seq: 4, Reset: true}))
	assert.Equal(t, "Norway", s.Criteria.Country)

	assert.True(t, s.Apply(api.LiveRequest{Seq: 6, Reset: true, Selected: "EQ-NO-002"}))
	assert.True(t, s.Criteria.IsEmpty())
	assert.Empty(t, s.Selected)
	assert.Equal(t, uint64(6), s.LastSeq)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry(2)
	now := time.Now()
	a := &Session{ID: "a", StartedAt: now.Add(time.Second)}
	b := &Session{ID: "b", StartedAt: now}

	require.Nil(t, r.Create(a))
	require.Nil(t, r.Create(b))
	assert.ErrorIs(t, r.Create(a), ErrAlreadyExists)
	assert.ErrorIs(t, r.Create(&Session{ID: "c"}), ErrTooManySessions)
	assert.ErrorIs(t, r.Create(&Session{}), ErrInvalidSession)

	list := r.List()
	require.Len(t, list, 2)
	assert.Equal(t, "b", list[0].ID)
	assert.Equal(t, "a", list[1].ID)

	a.Criteria.Country = "Norway"
	require.Nil(t, r.Update(a))
	info, err := r.Get("a")
	require.Nil(t, err)
	assert.Equal(t, "Norway", info.Criteria.Country)

	require.Nil(t, r.Delete("a"))
	assert.ErrorIs(t, r.Delete("a"), ErrInvalidSession)
	_, err = r.Get("a")
	assert.ErrorIs(t, err, ErrInvalidSession)
	assert.Equal(t, 1, r.Len())
	assert.ErrorIs(t, r.Update(a), ErrInvalidSession)
}
