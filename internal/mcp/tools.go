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

package mcp

// In this file: data tool definitions and handler implementations.

import (
	"context"
	"errors"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"

	"github.com/rusq/slackinsight/types"
)

// ─── list_channels ────────────────────────────────────────────────────────────

func (s *Server) toolListChannels() mcpsrv.ServerTool {
	tool := mcplib.NewTool("list_channels",
		mcplib.WithDescription("List all channels (conversations) the bot has access to in the workspace. Returns channel IDs, names, types, and member counts."),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleListChannels}
}

// channelSummary is a JSON-serialisable summary of a Slack channel.
type channelSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	IsChannel   bool   `json:"is_channel,omitempty"`
	IsGroup     bool   `json:"is_group,omitempty"`
	IsIM        bool   `json:"is_im,omitempty"`
	IsMPIM      bool   `json:"is_mpim,omitempty"`
	IsArchived  bool   `json:"is_archived,omitempty"`
	MemberCount int    `json:"member_count,omitempty"`
	Topic       string `json:"topic,omitempty"`
	Purpose     string `json:"purpose,omitempty"`
}

func (s *Server) handleListChannels(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	channels, err := s.api.Channels(ctx)
	if err != nil {
		return resultErr(fmt.Errorf("list_channels: %w", err)), nil
	}

	summaries := make([]channelSummary, 0, len(channels))
	for _, c := range channels {
		summaries = append(summaries, channelSummary{
			ID:          c.ID,
			Name:        c.Name,
			IsChannel:   c.IsChannel,
			IsGroup:     c.IsGroup,
			IsIM:        c.IsIM,
			IsMPIM:      c.IsMpIM,
			IsArchived:  c.IsArchived,
			MemberCount: c.NumMembers,
			Topic:       c.Topic.Value,
			Purpose:     c.Purpose.Value,
		})
	}

	result, err := resultJSON(summaries)
	if err != nil {
		return resultErr(fmt.Errorf("list_channels: serialise: %w", err)), nil
	}
	return result, nil
}

// ─── list_users ───────────────────────────────────────────────────────────────

func (s *Server) toolListUsers() mcpsrv.ServerTool {
	tool := mcplib.NewTool("list_users",
		mcplib.WithDescription("List all users/members in the workspace. Returns user IDs, display names, real names, and email addresses."),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleListUsers}
}

// userSummary is a JSON-serialisable summary of a Slack user.
type userSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	RealName    string `json:"real_name,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	Email       string `json:"email,omitempty"`
	IsBot       bool   `json:"is_bot,omitempty"`
	IsDeleted   bool   `json:"is_deleted,omitempty"`
	TZ          string `json:"tz,omitempty"`
}

func (s *Server) handleListUsers(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	users, err := s.api.Users(ctx)
	if err != nil {
		return resultErr(fmt.Errorf("list_users: %w", err)), nil
	}
	if s.users != nil {
		if err := s.users.Save(users); err != nil {
			s.logger.DebugContext(ctx, "failed to save user cache", "error", err)
		}
	}

	summaries := make([]userSummary, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, userSummary{
			ID:          u.ID,
			Name:        u.Name,
			RealName:    u.RealName,
			DisplayName: u.Profile.DisplayName,
			Email:       u.Profile.Email,
			IsBot:       u.IsBot,
			IsDeleted:   u.Deleted,
			TZ:          u.TZ,
		})
	}

	result, err := resultJSON(summaries)
	if err != nil {
		return resultErr(fmt.Errorf("list_users: serialise: %w", err)), nil
	}
	return result, nil
}

// ─── get_messages ─────────────────────────────────────────────────────────────

func (s *Server) toolGetMessages() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_messages",
		mcplib.WithDescription(`Retrieve recent messages from a channel.

Returns messages sorted by timestamp in ascending order.  Use 'oldest' and
'latest' to constrain the time range (Slack ts format).  Thread reply counts
are included but thread bodies are not; use get_thread for those.`),
		mcplib.WithString("channel_id",
			mcplib.Description("The Slack channel ID to read messages from (e.g. C01234ABCD)"),
			mcplib.Required(),
		),
		mcplib.WithNumber("limit",
			mcplib.Description("Maximum number of messages to return (1–1000, default 100)"),
		),
		mcplib.WithString("oldest",
			mcplib.Description("Only include messages after this timestamp (Slack ts format, e.g. \"1609459200.000001\")"),
		),
		mcplib.WithString("latest",
			mcplib.Description("Only include messages before this timestamp (Slack ts format)"),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleGetMessages}
}

// messageSummary is a JSON-serialisable summary of a Slack message.
type messageSummary struct {
	Timestamp  string `json:"ts"`
	UserID     string `json:"user,omitempty"`
	Username   string `json:"username,omitempty"`
	Text       string `json:"text,omitempty"`
	ReplyCount int    `json:"reply_count,omitempty"`
	ThreadTS   string `json:"thread_ts,omitempty"`
	Subtype    string `json:"subtype,omitempty"`
}

const (
	defLimit = 100
	minLimit = 1
	maxLimit = 1000
)

// summarise converts messages into their wire summaries, resolving user IDs
// to display names through the index.
func summarise(msgs []types.Message, idx types.UserIndex) []messageSummary {
	summaries := make([]messageSummary, 0, len(msgs))
	for _, m := range msgs {
		username := ""
		if m.User != "" {
			username = idx.DisplayName(m.User)
		}
		summaries = append(summaries, messageSummary{
			Timestamp:  m.Timestamp,
			UserID:     m.User,
			Username:   username,
			Text:       m.Text,
			ReplyCount: m.ReplyCount,
			ThreadTS:   m.ThreadTimestamp,
			Subtype:    m.SubType,
		})
	}
	return summaries
}

func (s *Server) handleGetMessages(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	channelID, ok := stringArg(req, "channel_id")
	if !ok || channelID == "" {
		return resultErr(errors.New("get_messages: channel_id is required")), nil
	}

	limit := intArg(req, "limit", defLimit)
	limit = max(min(limit, maxLimit), minLimit) // ensure within bounds

	oldest, _ := stringArg(req, "oldest")
	latest, _ := stringArg(req, "latest")

	msgs, err := s.api.History(ctx, channelID, limit, oldest, latest)
	if err != nil {
		return resultErr(fmt.Errorf("get_messages: %w", err)), nil
	}
	types.SortMessages(msgs)

	result, err := resultJSON(summarise(msgs, s.userIndex(ctx)))
	if err != nil {
		return resultErr(fmt.Errorf("get_messages: serialise: %w", err)), nil
	}
	return result, nil
}

// ─── get_thread ───────────────────────────────────────────────────────────────

func (s *Server) toolGetThread() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_thread",
		mcplib.WithDescription("Retrieve all messages in a thread (including the parent message)."),
		mcplib.WithString("channel_id",
			mcplib.Description("The Slack channel ID that contains the thread (e.g. C01234ABCD)"),
			mcplib.Required(),
		),
		mcplib.WithString("thread_ts",
			mcplib.Description("The timestamp of the parent message / thread ID (Slack ts format, e.g. \"1609459200.000001\")"),
			mcplib.Required(),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleGetThread}
}

func (s *Server) handleGetThread(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	channelID, ok := stringArg(req, "channel_id")
	if !ok || channelID == "" {
		return resultErr(errors.New("get_thread: channel_id is required")), nil
	}
	threadTS, ok := stringArg(req, "thread_ts")
	if !ok || threadTS == "" {
		return resultErr(errors.New("get_thread: thread_ts is required")), nil
	}

	msgs, err := s.api.Replies(ctx, channelID, threadTS)
	if err != nil {
		return resultErr(fmt.Errorf("get_thread: %w", err)), nil
	}

	result, err := resultJSON(summarise(msgs, s.userIndex(ctx)))
	if err != nil {
		return resultErr(fmt.Errorf("get_thread: serialise: %w", err)), nil
	}
	return result, nil
}

// ─── post_message ─────────────────────────────────────────────────────────────

func (s *Server) toolPostMessage() mcpsrv.ServerTool {
	tool := mcplib.NewTool("post_message",
		mcplib.WithDescription("Post a message to a channel as the bot user."),
		mcplib.WithString("channel_id",
			mcplib.Description("The Slack channel ID to post to (e.g. C01234ABCD)"),
			mcplib.Required(),
		),
		mcplib.WithString("text",
			mcplib.Description("The message text to post. Slack mrkdwn formatting is supported."),
			mcplib.Required(),
		),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handlePostMessage}
}

func (s *Server) handlePostMessage(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	channelID, ok := stringArg(req, "channel_id")
	if !ok || channelID == "" {
		return resultErr(errors.New("post_message: channel_id is required")), nil
	}
	text, ok := stringArg(req, "text")
	if !ok || text == "" {
		return resultErr(errors.New("post_message: text is required")), nil
	}

	s.logger.InfoContext(ctx, "mcp: post_message", "channel", channelID, "len", len(text))

	ts, err := s.api.PostMessage(ctx, channelID, text)
	if err != nil {
		return resultErr(fmt.Errorf("post_message: %w", err)), nil
	}
	return resultText(fmt.Sprintf("Message posted to %s with timestamp %s.", channelID, ts)), nil
}

// ─── add_reaction ─────────────────────────────────────────────────────────────

func (s *Server) toolAddReaction() mcpsrv.ServerTool {
	tool := mcplib.NewTool("add_reaction",
		mcplib.WithDescription("Add an emoji reaction to a message."),
		mcplib.WithString("channel_id",
			mcplib.Description("The Slack channel ID containing the message (e.g. C01234ABCD)"),
			mcplib.Required(),
		),
		mcplib.WithString("timestamp",
			mcplib.Description("The timestamp of the message to react to (Slack ts format)"),
			mcplib.Required(),
		),
		mcplib.WithString("name",
			mcplib.Description("The emoji name without colons (e.g. \"thumbsup\")"),
			mcplib.Required(),
		),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleAddReaction}
}

func (s *Server) handleAddReaction(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	channelID, ok := stringArg(req, "channel_id")
	if !ok || channelID == "" {
		return resultErr(errors.New("add_reaction: channel_id is required")), nil
	}
	timestamp, ok := stringArg(req, "timestamp")
	if !ok || timestamp == "" {
		return resultErr(errors.New("add_reaction: timestamp is required")), nil
	}
	name, ok := stringArg(req, "name")
	if !ok || name == "" {
		return resultErr(errors.New("add_reaction: name is required")), nil
	}

	if err := s.api.AddReaction(ctx, channelID, timestamp, name); err != nil {
		return resultErr(fmt.Errorf("add_reaction: %w", err)), nil
	}
	return resultText(fmt.Sprintf("Reaction :%s: added to message %s in %s.", name, timestamp, channelID)), nil
}
