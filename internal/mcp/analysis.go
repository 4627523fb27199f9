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

// In this file: analysis tool definitions and handler implementations.

import (
	"context"
	"errors"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"
	"golang.org/x/sync/errgroup"

	"github.com/rusq/slackinsight/internal/action"
	"github.com/rusq/slackinsight/internal/decision"
	"github.com/rusq/slackinsight/internal/sentiment"
	"github.com/rusq/slackinsight/types"
)

// fetchThread retrieves the thread messages and the user index concurrently.
func (s *Server) fetchThread(ctx context.Context, channelID, threadTS string) ([]types.Message, types.UserIndex, error) {
	var (
		msgs []types.Message
		idx  types.UserIndex
	)
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		msgs, err = s.api.Replies(ctx, channelID, threadTS)
		return err
	})
	eg.Go(func() error {
		idx = s.userIndex(ctx)
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}
	return msgs, idx, nil
}

// ─── analyze_sentiment ────────────────────────────────────────────────────────

func (s *Server) toolAnalyzeSentiment() mcpsrv.ServerTool {
	tool := mcplib.NewTool("analyze_sentiment",
		mcplib.WithDescription(`Analyse the overall sentiment of a thread.

Counts positive and negative sentiment words in both English and Japanese,
applying negation, emphasis, and mitigation rules.  Returns the classified
sentiment (positive/negative/neutral) together with detailed counts and a
human-readable explanation.`),
		mcplib.WithString("channel_id",
			mcplib.Description("The Slack channel ID that contains the thread (e.g. C01234ABCD)"),
			mcplib.Required(),
		),
		mcplib.WithString("thread_ts",
			mcplib.Description("The timestamp of the parent message / thread ID (Slack ts format)"),
			mcplib.Required(),
		),
		mcplib.WithBoolean("explain",
			mcplib.Description("Include a human-readable breakdown of the analysis (default false)"),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleAnalyzeSentiment}
}

// sentimentReport is the wire format of the analyze_sentiment result.
type sentimentReport struct {
	Channel     string           `json:"channel"`
	ThreadTS    string           `json:"thread_ts"`
	Messages    int              `json:"messages"`
	Result      sentiment.Result `json:"result"`
	Explanation string           `json:"explanation,omitempty"`
}

func (s *Server) handleAnalyzeSentiment(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	channelID, ok := stringArg(req, "channel_id")
	if !ok || channelID == "" {
		return resultErr(errors.New("analyze_sentiment: channel_id is required")), nil
	}
	threadTS, ok := stringArg(req, "thread_ts")
	if !ok || threadTS == "" {
		return resultErr(errors.New("analyze_sentiment: thread_ts is required")), nil
	}

	msgs, err := s.api.Replies(ctx, channelID, threadTS)
	if err != nil {
		return resultErr(fmt.Errorf("analyze_sentiment: %w", err)), nil
	}

	res := sentiment.Analyze(msgs, s.sentiment)
	report := sentimentReport{
		Channel:  channelID,
		ThreadTS: threadTS,
		Messages: len(msgs),
		Result:   res,
	}
	if boolArg(req, "explain", false) {
		report.Explanation = sentiment.Explain(res)
	}

	s.logger.InfoContext(ctx, "mcp: analyze_sentiment",
		"channel", channelID, "thread", threadTS,
		"messages", len(msgs), "sentiment", res.Sentiment)

	result, err := resultJSON(report)
	if err != nil {
		return resultErr(fmt.Errorf("analyze_sentiment: serialise: %w", err)), nil
	}
	return result, nil
}

// ─── extract_decisions ────────────────────────────────────────────────────────

func (s *Server) toolExtractDecisions() mcpsrv.ServerTool {
	tool := mcplib.NewTool("extract_decisions",
		mcplib.WithDescription(`Extract decisions made in a thread.

Scans messages for English and Japanese decision language (e.g. "decided",
"approved", 決定, 承認), scores each candidate by confidence, and returns
only high-confidence decisions with the participant who made them.`),
		mcplib.WithString("channel_id",
			mcplib.Description("The Slack channel ID that contains the thread (e.g. C01234ABCD)"),
			mcplib.Required(),
		),
		mcplib.WithString("thread_ts",
			mcplib.Description("The timestamp of the parent message / thread ID (Slack ts format)"),
			mcplib.Required(),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleExtractDecisions}
}

func (s *Server) handleExtractDecisions(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	channelID, ok := stringArg(req, "channel_id")
	if !ok || channelID == "" {
		return resultErr(errors.New("extract_decisions: channel_id is required")), nil
	}
	threadTS, ok := stringArg(req, "thread_ts")
	if !ok || threadTS == "" {
		return resultErr(errors.New("extract_decisions: thread_ts is required")), nil
	}

	msgs, idx, err := s.fetchThread(ctx, channelID, threadTS)
	if err != nil {
		return resultErr(fmt.Errorf("extract_decisions: %w", err)), nil
	}

	res := decision.ExtractForThread(channelID, threadTS, msgs)
	for i := range res.DecisionsMade {
		res.DecisionsMade[i].Participant = idx.DisplayName(res.DecisionsMade[i].Participant)
	}

	s.logger.InfoContext(ctx, "mcp: extract_decisions",
		"channel", channelID, "thread", threadTS,
		"messages", len(msgs), "decisions", len(res.DecisionsMade))

	result, err := resultJSON(res)
	if err != nil {
		return resultErr(fmt.Errorf("extract_decisions: serialise: %w", err)), nil
	}
	return result, nil
}

// ─── extract_action_items ─────────────────────────────────────────────────────

func (s *Server) toolExtractActionItems() mcpsrv.ServerTool {
	tool := mcplib.NewTool("extract_action_items",
		mcplib.WithDescription(`Extract action items from a thread.

Scans messages line by line for action language in English and Japanese,
scoring each line by bullet points, request patterns (〜お願いします,
〜してください), user mentions, and urgency keywords.  Japanese verbs are
normalised to dictionary form before matching, so 修正しました matches the
修正 indicator.  Returns items with priority, status, and assignees.`),
		mcplib.WithString("channel_id",
			mcplib.Description("The Slack channel ID that contains the thread (e.g. C01234ABCD)"),
			mcplib.Required(),
		),
		mcplib.WithString("thread_ts",
			mcplib.Description("The timestamp of the parent message / thread ID (Slack ts format)"),
			mcplib.Required(),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleExtractActionItems}
}

// actionReport is the wire format of the extract_action_items result.
type actionReport struct {
	Channel  string `json:"channel"`
	ThreadTS string `json:"thread_ts"`
	action.ExtractResult
}

func (s *Server) handleExtractActionItems(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	channelID, ok := stringArg(req, "channel_id")
	if !ok || channelID == "" {
		return resultErr(errors.New("extract_action_items: channel_id is required")), nil
	}
	threadTS, ok := stringArg(req, "thread_ts")
	if !ok || threadTS == "" {
		return resultErr(errors.New("extract_action_items: thread_ts is required")), nil
	}

	msgs, idx, err := s.fetchThread(ctx, channelID, threadTS)
	if err != nil {
		return resultErr(fmt.Errorf("extract_action_items: %w", err)), nil
	}

	res := action.ExtractFromMessages(msgs, s.action)
	for i := range res.ActionItems {
		it := &res.ActionItems[i]
		it.SourceUser = idx.DisplayName(it.SourceUser)
		for j, id := range it.MentionedUsers {
			it.MentionedUsers[j] = idx.DisplayName(id)
		}
	}

	s.logger.InfoContext(ctx, "mcp: extract_action_items",
		"channel", channelID, "thread", threadTS,
		"messages", len(msgs), "items", len(res.ActionItems))

	result, err := resultJSON(actionReport{
		Channel:       channelID,
		ThreadTS:      threadTS,
		ExtractResult: res,
	})
	if err != nil {
		return resultErr(fmt.Errorf("extract_action_items: serialise: %w", err)), nil
	}
	return result, nil
}

// ─── analyze_thread ───────────────────────────────────────────────────────────

func (s *Server) toolAnalyzeThread() mcpsrv.ServerTool {
	tool := mcplib.NewTool("analyze_thread",
		mcplib.WithDescription(`Run a combined analysis of a thread: sentiment, decisions, and action items in a single call.

Equivalent to calling analyze_sentiment, extract_decisions, and
extract_action_items on the same thread, but fetches the thread once.`),
		mcplib.WithString("channel_id",
			mcplib.Description("The Slack channel ID that contains the thread (e.g. C01234ABCD)"),
			mcplib.Required(),
		),
		mcplib.WithString("thread_ts",
			mcplib.Description("The timestamp of the parent message / thread ID (Slack ts format)"),
			mcplib.Required(),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleAnalyzeThread}
}

// threadReport is the wire format of the analyze_thread result.
type threadReport struct {
	Channel      string              `json:"channel"`
	ThreadTS     string              `json:"thread_ts"`
	Messages     int                 `json:"messages"`
	Participants []string            `json:"participants"`
	Sentiment    sentiment.Result    `json:"sentiment"`
	Decisions    []decision.Decision `json:"decisions"`
	ActionItems  []action.Item       `json:"action_items"`
}

func (s *Server) handleAnalyzeThread(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	channelID, ok := stringArg(req, "channel_id")
	if !ok || channelID == "" {
		return resultErr(errors.New("analyze_thread: channel_id is required")), nil
	}
	threadTS, ok := stringArg(req, "thread_ts")
	if !ok || threadTS == "" {
		return resultErr(errors.New("analyze_thread: thread_ts is required")), nil
	}

	msgs, idx, err := s.fetchThread(ctx, channelID, threadTS)
	if err != nil {
		return resultErr(fmt.Errorf("analyze_thread: %w", err)), nil
	}

	senti := sentiment.Analyze(msgs, s.sentiment)
	decisions := decision.Extract(msgs).Decisions
	items := action.ExtractFromMessages(msgs, s.action).ActionItems

	seen := make(map[string]bool)
	var participants []string
	for _, m := range msgs {
		if m.User == "" || seen[m.User] {
			continue
		}
		seen[m.User] = true
		participants = append(participants, idx.DisplayName(m.User))
	}
	for i := range decisions {
		decisions[i].User = idx.DisplayName(decisions[i].User)
	}
	for i := range items {
		items[i].SourceUser = idx.DisplayName(items[i].SourceUser)
		for j, id := range items[i].MentionedUsers {
			items[i].MentionedUsers[j] = idx.DisplayName(id)
		}
	}

	s.logger.InfoContext(ctx, "mcp: analyze_thread",
		"channel", channelID, "thread", threadTS, "messages", len(msgs),
		"sentiment", senti.Sentiment, "decisions", len(decisions), "items", len(items))

	result, err := resultJSON(threadReport{
		Channel:      channelID,
		ThreadTS:     threadTS,
		Messages:     len(msgs),
		Participants: participants,
		Sentiment:    senti,
		Decisions:    decisions,
		ActionItems:  items,
	})
	if err != nil {
		return resultErr(fmt.Errorf("analyze_thread: serialise: %w", err)), nil
	}
	return result, nil
}
