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

package decision

// In this file: the thread wrapper and the validating service boundary.

import (
	"fmt"

	"github.com/rusq/slackinsight/internal/service"
	"github.com/rusq/slackinsight/types"
)

// ThreadDecision is a decision attributed to a thread participant.
type ThreadDecision struct {
	Decision    string  `json:"decision"`
	Participant string  `json:"participant"`
	Timestamp   string  `json:"timestamp"`
	Confidence  float64 `json:"confidence"`
}

// ThreadResult is the thread-level extraction outcome.
type ThreadResult struct {
	Channel       string           `json:"channel"`
	ThreadTS      string           `json:"thread_ts"`
	DecisionsMade []ThreadDecision `json:"decisionsMade"`
}

// ExtractForThread maps each retained decision in the thread's messages to a
// participant attribution.
func ExtractForThread(channel, threadTS string, msgs []types.Message) ThreadResult {
	res := ThreadResult{
		Channel:       channel,
		ThreadTS:      threadTS,
		DecisionsMade: []ThreadDecision{},
	}
	for _, d := range Extract(msgs).Decisions {
		res.DecisionsMade = append(res.DecisionsMade, ThreadDecision{
			Decision:    d.Text,
			Participant: d.User,
			Timestamp:   d.Timestamp,
			Confidence:  d.Confidence,
		})
	}
	return res
}

// Boundary validation messages.  The strings are part of the service
// contract and must not change.
const (
	errArgsObject    = "Invalid arguments: object expected"
	errMessagesArray = "Invalid messages: array expected"
	errExtractPrefix = "Failed to extract decisions: "
)

// ExtractService is the validating boundary around Extract.  args must be a
// map with a "messages" array; anything else produces a 400 result.  An
// internal failure during extraction produces a 500 result.  The pure
// analysis functions themselves never validate: only this boundary does.
func ExtractService(args any) service.Result {
	obj, ok := args.(map[string]any)
	if args == nil || !ok {
		return service.Err(400, errArgsObject)
	}

	msgs, ok := messagesFromArgs(obj["messages"])
	if !ok {
		return service.Err(400, errMessagesArray)
	}

	res, err := safeExtract(msgs)
	if err != nil {
		return service.Err(500, errExtractPrefix+err.Error())
	}
	return service.OK(res)
}

// safeExtract runs Extract, converting a panic into an error so that the
// boundary can degrade to a 500 result instead of unwinding the caller.
func safeExtract(msgs []types.Message) (res ExtractResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return Extract(msgs), nil
}

// messagesFromArgs converts the loosely typed messages argument into
// []types.Message.  Accepts an already-typed slice or a JSON-decoded
// []any of objects; per-element fields that are missing or of the wrong
// type are normalised to the empty string.
func messagesFromArgs(v any) ([]types.Message, bool) {
	switch vv := v.(type) {
	case []types.Message:
		return vv, true
	case []any:
		msgs := make([]types.Message, 0, len(vv))
		for _, el := range vv {
			obj, ok := el.(map[string]any)
			if !ok {
				msgs = append(msgs, types.Message{})
				continue
			}
			msgs = append(msgs, types.NewMessage(
				stringField(obj, "text"),
				stringField(obj, "ts"),
				stringField(obj, "user"),
				stringField(obj, "type"),
			))
		}
		return msgs, true
	default:
		return nil, false
	}
}

func stringField(obj map[string]any, name string) string {
	s, _ := obj[name].(string)
	return s
}
