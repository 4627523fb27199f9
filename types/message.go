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

package types

// In this file: Message wrapper around the Slack message type.

import (
	"sort"
	"time"

	"github.com/rusq/slack"
)

// Message is the internal representation of a Slack message.  Fields that the
// analysis packages rely on (Text, Timestamp, User, Type) may be empty on
// malformed input; accessors return zero values instead of panicking.
type Message struct {
	slack.Message
}

// NewMessage constructs a Message from the bare fields.  It is mostly useful
// in tests and at the service boundary, where messages arrive as loose JSON
// objects.  A missing text is normalised to the empty string by virtue of Go
// zero values, so downstream scoring never needs nil checks.
func NewMessage(text, ts, user, typ string) Message {
	return Message{Message: slack.Message{Msg: slack.Msg{
		Type:      typ,
		Text:      text,
		Timestamp: ts,
		User:      user,
	}}}
}

// PlainText returns the raw message text.
func (m Message) PlainText() string {
	return m.Msg.Text
}

// Datetime returns the message timestamp as time.Time.
func (m Message) Datetime() (time.Time, error) {
	return ParseSlackTS(m.Timestamp)
}

// IsBotMessage returns true if the message is from a bot.
func (m Message) IsBotMessage() bool {
	return m.Msg.BotID != ""
}

// IsThread returns true if the message belongs to a thread.
func (m Message) IsThread() bool {
	return m.Msg.ThreadTimestamp != ""
}

// IsThreadParent returns true if the message is the parent message of a
// thread (has more than 0 replies).
func (m Message) IsThreadParent() bool {
	return m.IsThread() && m.Msg.ReplyCount != 0
}

// IsThreadChild returns true if the message is a child message of a thread.
func (m Message) IsThreadChild() bool {
	return m.IsThread() && m.Msg.ReplyCount == 0
}

// SortMessages sorts the messages by timestamp, in place.
func SortMessages(msgs []Message) {
	sort.Slice(msgs, func(i, j int) bool {
		return msgs[i].Timestamp < msgs[j].Timestamp
	})
}

// ConvertMsgs converts a slice of slack.Message to []types.Message.
func ConvertMsgs(sm []slack.Message) []Message {
	msgs := make([]Message, len(sm))
	for i := range sm {
		msgs[i].Message = sm[i]
	}
	return msgs
}
