// Copyright (c) 2021-2026 Rustam Gilyazov and Contributors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package client

import (
	"errors"
	"testing"

	"github.com/rusq/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/rusq/slackinsight/internal/client/mock_client"
	"github.com/rusq/slackinsight/internal/network"
)

// testLimits boosts the limiters so tests do not wait on the throttler.
var testLimits = network.Limits{
	Tier2: network.TierLimit{Boost: 100_000, Burst: 1, Retries: 1},
	Tier3: network.TierLimit{Boost: 100_000, Burst: 1, Retries: 1},
}

func newTestClient(t *testing.T) (*Client, *mock_client.MockSlacker) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := mock_client.NewMockSlacker(ctrl)
	return New(m, WithLimits(testLimits)), m
}

func slackMsg(text, ts, user string) slack.Message {
	return slack.Message{Msg: slack.Msg{Type: "message", Text: text, Timestamp: ts, User: user}}
}

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mock_client.NewMockSlacker(ctrl)
	t.Run("default limits", func(t *testing.T) {
		c := New(m)
		assert.Equal(t, network.DefLimits, c.limits)
		assert.NotNil(t, c.tier2)
		assert.NotNil(t, c.tier3)
	})
	t.Run("limits override", func(t *testing.T) {
		c := New(m, WithLimits(testLimits))
		assert.Equal(t, testLimits, c.limits)
	})
	t.Run("invalid limits are ignored", func(t *testing.T) {
		bad := testLimits
		bad.Tier2.Burst = 0
		c := New(m, WithLimits(bad))
		assert.Equal(t, network.DefLimits, c.limits)
	})
}

func TestClient_AuthTest(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		c, m := newTestClient(t)
		want := &slack.AuthTestResponse{Team: "testers", User: "insightbot"}
		m.EXPECT().AuthTestContext(gomock.Any()).Return(want, nil)

		got, err := c.AuthTest(t.Context())
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})
	t.Run("error", func(t *testing.T) {
		c, m := newTestClient(t)
		m.EXPECT().AuthTestContext(gomock.Any()).Return(nil, errors.New("invalid_auth"))

		_, err := c.AuthTest(t.Context())
		assert.ErrorContains(t, err, "auth test")
	})
}

func TestClient_Channels(t *testing.T) {
	t.Run("follows pagination", func(t *testing.T) {
		c, m := newTestClient(t)
		first := &slack.GetConversationsParameters{
			Limit:           perRequest,
			Types:           []string{"public_channel", "private_channel"},
			ExcludeArchived: true,
		}
		second := &slack.GetConversationsParameters{
			Cursor:          "next1",
			Limit:           perRequest,
			Types:           []string{"public_channel", "private_channel"},
			ExcludeArchived: true,
		}
		chn := func(id string) slack.Channel {
			var ch slack.Channel
			ch.ID = id
			return ch
		}
		gomock.InOrder(
			m.EXPECT().GetConversationsContext(gomock.Any(), first).
				Return([]slack.Channel{chn("C1")}, "next1", nil),
			m.EXPECT().GetConversationsContext(gomock.Any(), second).
				Return([]slack.Channel{chn("C2")}, "", nil),
		)

		got, err := c.Channels(t.Context())
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "C1", got[0].ID)
		assert.Equal(t, "C2", got[1].ID)
	})
	t.Run("error", func(t *testing.T) {
		c, m := newTestClient(t)
		m.EXPECT().GetConversationsContext(gomock.Any(), gomock.Any()).
			Return(nil, "", errors.New("missing_scope"))

		_, err := c.Channels(t.Context())
		assert.ErrorContains(t, err, "list channels")
	})
}

func TestClient_History(t *testing.T) {
	t.Run("single page", func(t *testing.T) {
		c, m := newTestClient(t)
		m.EXPECT().GetConversationHistoryContext(gomock.Any(), &slack.GetConversationHistoryParameters{
			ChannelID: "C1",
			Limit:     perRequest,
			Oldest:    "1.0",
			Latest:    "2.0",
		}).Return(&slack.GetConversationHistoryResponse{
			Messages: []slack.Message{slackMsg("hello", "1.5", "U1")},
		}, nil)

		got, err := c.History(t.Context(), "C1", 100, "1.0", "2.0")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "hello", got[0].PlainText())
	})
	t.Run("truncates to limit across pages", func(t *testing.T) {
		c, m := newTestClient(t)
		page1 := &slack.GetConversationHistoryResponse{
			Messages: []slack.Message{slackMsg("a", "1.1", "U1"), slackMsg("b", "1.2", "U1")},
			HasMore:  true,
		}
		page1.ResponseMetaData.NextCursor = "next1"
		page2 := &slack.GetConversationHistoryResponse{
			Messages: []slack.Message{slackMsg("c", "1.3", "U1"), slackMsg("d", "1.4", "U1")},
		}
		gomock.InOrder(
			m.EXPECT().GetConversationHistoryContext(gomock.Any(), gomock.Any()).Return(page1, nil),
			m.EXPECT().GetConversationHistoryContext(gomock.Any(), gomock.Any()).Return(page2, nil),
		)

		got, err := c.History(t.Context(), "C1", 3, "", "")
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "c", got[2].PlainText())
	})
	t.Run("error names the channel", func(t *testing.T) {
		c, m := newTestClient(t)
		m.EXPECT().GetConversationHistoryContext(gomock.Any(), gomock.Any()).
			Return(nil, errors.New("channel_not_found"))

		_, err := c.History(t.Context(), "C404", 10, "", "")
		assert.ErrorContains(t, err, "C404")
	})
}

func TestClient_Replies(t *testing.T) {
	t.Run("follows pagination", func(t *testing.T) {
		c, m := newTestClient(t)
		gomock.InOrder(
			m.EXPECT().GetConversationRepliesContext(gomock.Any(), &slack.GetConversationRepliesParameters{
				ChannelID: "C1",
				Timestamp: "1.0",
				Limit:     perRequest,
			}).Return([]slack.Message{slackMsg("parent", "1.0", "U1")}, true, "next1", nil),
			m.EXPECT().GetConversationRepliesContext(gomock.Any(), &slack.GetConversationRepliesParameters{
				ChannelID: "C1",
				Timestamp: "1.0",
				Cursor:    "next1",
				Limit:     perRequest,
			}).Return([]slack.Message{slackMsg("child", "1.1", "U2")}, false, "", nil),
		)

		got, err := c.Replies(t.Context(), "C1", "1.0")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "parent", got[0].PlainText())
		assert.Equal(t, "child", got[1].PlainText())
	})
	t.Run("error names the thread", func(t *testing.T) {
		c, m := newTestClient(t)
		m.EXPECT().GetConversationRepliesContext(gomock.Any(), gomock.Any()).
			Return(nil, false, "", errors.New("thread_not_found"))

		_, err := c.Replies(t.Context(), "C1", "1.0")
		assert.ErrorContains(t, err, "thread 1.0")
	})
}

func TestClient_Users(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		c, m := newTestClient(t)
		m.EXPECT().GetUsersContext(gomock.Any()).
			Return([]slack.User{{ID: "U1", Name: "alice"}}, nil)

		got, err := c.Users(t.Context())
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "alice", got[0].Name)
	})
	t.Run("error", func(t *testing.T) {
		c, m := newTestClient(t)
		m.EXPECT().GetUsersContext(gomock.Any()).Return(nil, errors.New("boom"))

		_, err := c.Users(t.Context())
		assert.ErrorContains(t, err, "list users")
	})
}

func TestClient_PostMessage(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		c, m := newTestClient(t)
		m.EXPECT().PostMessageContext(gomock.Any(), "C1", gomock.Any()).
			Return("C1", "1700000000.000100", nil)

		ts, err := c.PostMessage(t.Context(), "C1", "hello")
		require.NoError(t, err)
		assert.Equal(t, "1700000000.000100", ts)
	})
	t.Run("error", func(t *testing.T) {
		c, m := newTestClient(t)
		m.EXPECT().PostMessageContext(gomock.Any(), "C1", gomock.Any()).
			Return("", "", errors.New("not_in_channel"))

		_, err := c.PostMessage(t.Context(), "C1", "hello")
		assert.ErrorContains(t, err, "post to C1")
	})
}

func TestClient_AddReaction(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		c, m := newTestClient(t)
		m.EXPECT().AddReactionContext(gomock.Any(), "thumbsup", slack.NewRefToMessage("C1", "1.0")).
			Return(nil)

		require.NoError(t, c.AddReaction(t.Context(), "C1", "1.0", "thumbsup"))
	})
	t.Run("error", func(t *testing.T) {
		c, m := newTestClient(t)
		m.EXPECT().AddReactionContext(gomock.Any(), "thumbsup", gomock.Any()).
			Return(errors.New("already_reacted"))

		err := c.AddReaction(t.Context(), "C1", "1.0", "thumbsup")
		assert.ErrorContains(t, err, `add reaction "thumbsup"`)
	})
}
