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

// Package client wraps the Slack Web API client with the tiered rate
// limiting and retry discipline from the network package.  The analysis
// layer never talks to Slack directly; it goes through this package, which
// hands it plain message values.
package client

//go:generate mockgen -destination=mock_client/mock_client.go . Slacker

import (
	"context"
	"fmt"

	"github.com/rusq/slack"
	"golang.org/x/time/rate"

	"github.com/rusq/slackinsight/internal/network"
	"github.com/rusq/slackinsight/types"
)

// Slacker is the subset of the Slack API client that this package consumes.
// *slack.Client satisfies it.
type Slacker interface {
	AuthTestContext(ctx context.Context) (*slack.AuthTestResponse, error)
	GetConversationsContext(ctx context.Context, params *slack.GetConversationsParameters) ([]slack.Channel, string, error)
	GetConversationHistoryContext(ctx context.Context, params *slack.GetConversationHistoryParameters) (*slack.GetConversationHistoryResponse, error)
	GetConversationRepliesContext(ctx context.Context, params *slack.GetConversationRepliesParameters) ([]slack.Message, bool, string, error)
	GetUsersContext(ctx context.Context, options ...slack.GetUsersOption) ([]slack.User, error)
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
	AddReactionContext(ctx context.Context, name string, item slack.ItemRef) error
}

// perRequest is the page size for history and replies requests, the value
// recommended by Slack.
const perRequest = 200

// Client is a rate limited Slack API client.
type Client struct {
	cl     Slacker
	limits network.Limits
	tier2  *rate.Limiter
	tier3  *rate.Limiter
}

// Option is the Client option.
type Option func(*Client)

// WithLimits overrides the default API limits.
func WithLimits(l network.Limits) Option {
	return func(c *Client) {
		if l.Validate() == nil {
			c.limits = l
		}
	}
}

// New returns a Client wrapping cl.
func New(cl Slacker, opts ...Option) *Client {
	c := &Client{
		cl:     cl,
		limits: network.DefLimits,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.tier2 = network.NewLimiter(network.Tier2, c.limits.Tier2.Burst, c.limits.Tier2.Boost)
	c.tier3 = network.NewLimiter(network.Tier3, c.limits.Tier3.Burst, c.limits.Tier3.Boost)
	return c
}

// NewFromToken constructs a Client from a bot token.
func NewFromToken(token string, opts ...Option) *Client {
	return New(slack.New(token), opts...)
}

// AuthTest verifies the token and returns the workspace information.
func (c *Client) AuthTest(ctx context.Context) (*slack.AuthTestResponse, error) {
	var resp *slack.AuthTestResponse
	err := network.WithRetry(ctx, c.tier3, c.limits.Tier3.Retries, func() error {
		var err error
		resp, err = c.cl.AuthTestContext(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("auth test: %w", err)
	}
	return resp, nil
}

// Channels lists all channels visible to the token, following pagination.
func (c *Client) Channels(ctx context.Context) ([]slack.Channel, error) {
	var (
		all    []slack.Channel
		cursor string
	)
	for {
		params := &slack.GetConversationsParameters{
			Cursor:          cursor,
			Limit:           perRequest,
			Types:           []string{"public_channel", "private_channel"},
			ExcludeArchived: true,
		}
		var (
			page []slack.Channel
			next string
		)
		err := network.WithRetry(ctx, c.tier2, c.limits.Tier2.Retries, func() error {
			var err error
			page, next, err = c.cl.GetConversationsContext(ctx, params)
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("list channels: %w", err)
		}
		all = append(all, page...)
		if next == "" {
			return all, nil
		}
		cursor = next
	}
}

// History fetches up to limit messages of the channel's history, newest
// first, following pagination.  limit <= 0 fetches a single page.
func (c *Client) History(ctx context.Context, channelID string, limit int, oldest, latest string) ([]types.Message, error) {
	var (
		all    []slack.Message
		cursor string
	)
	for {
		params := &slack.GetConversationHistoryParameters{
			ChannelID: channelID,
			Cursor:    cursor,
			Limit:     perRequest,
			Oldest:    oldest,
			Latest:    latest,
		}
		var resp *slack.GetConversationHistoryResponse
		err := network.WithRetry(ctx, c.tier3, c.limits.Tier3.Retries, func() error {
			var err error
			resp, err = c.cl.GetConversationHistoryContext(ctx, params)
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("channel %s history: %w", channelID, err)
		}
		all = append(all, resp.Messages...)
		if limit > 0 && len(all) >= limit {
			all = all[:limit]
			break
		}
		if !resp.HasMore || resp.ResponseMetaData.NextCursor == "" || limit <= 0 {
			break
		}
		cursor = resp.ResponseMetaData.NextCursor
	}
	return types.ConvertMsgs(all), nil
}

// Replies fetches all replies of the thread, following pagination.  The
// parent message is the first element of the result.
func (c *Client) Replies(ctx context.Context, channelID, threadTS string) ([]types.Message, error) {
	var (
		all    []slack.Message
		cursor string
	)
	for {
		params := &slack.GetConversationRepliesParameters{
			ChannelID: channelID,
			Timestamp: threadTS,
			Cursor:    cursor,
			Limit:     perRequest,
		}
		var (
			page    []slack.Message
			hasMore bool
			next    string
		)
		err := network.WithRetry(ctx, c.tier3, c.limits.Tier3.Retries, func() error {
			var err error
			page, hasMore, next, err = c.cl.GetConversationRepliesContext(ctx, params)
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("thread %s replies: %w", threadTS, err)
		}
		all = append(all, page...)
		if !hasMore || next == "" {
			return types.ConvertMsgs(all), nil
		}
		cursor = next
	}
}

// Users fetches all workspace users.
func (c *Client) Users(ctx context.Context) (types.Users, error) {
	var users []slack.User
	err := network.WithRetry(ctx, c.tier2, c.limits.Tier2.Retries, func() error {
		var err error
		users, err = c.cl.GetUsersContext(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return types.Users(users), nil
}

// PostMessage posts text to a channel and returns the message timestamp.
func (c *Client) PostMessage(ctx context.Context, channelID, text string) (string, error) {
	var ts string
	err := network.WithRetry(ctx, c.tier3, c.limits.Tier3.Retries, func() error {
		var err error
		_, ts, err = c.cl.PostMessageContext(ctx, channelID, slack.MsgOptionText(text, false))
		return err
	})
	if err != nil {
		return "", fmt.Errorf("post to %s: %w", channelID, err)
	}
	return ts, nil
}

// AddReaction adds the named reaction to the message.
func (c *Client) AddReaction(ctx context.Context, channelID, timestamp, name string) error {
	err := network.WithRetry(ctx, c.tier3, c.limits.Tier3.Retries, func() error {
		return c.cl.AddReactionContext(ctx, name, slack.NewRefToMessage(channelID, timestamp))
	})
	if err != nil {
		return fmt.Errorf("add reaction %q: %w", name, err)
	}
	return nil
}
