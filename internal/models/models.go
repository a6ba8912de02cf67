package models

import (
	"encoding/json"
	"time"
)

type User struct {
	ID       int64  `db:"id" json:"id"`
	Username string `db:"username" json:"username"`
	Email    string `db:"email" json:"email"`
	Password string `db:"password" json:"-"`
	Chats    string `db:"chats" json:"-"` // JSON-encoded array of chat IDs
	Phone    string `db:"phone" json:"phone"`
}

type Chat struct {
	ID       int64     `json:"id"`
	Messages []Message `json:"messages"`
}

type Article struct {
	ID       int64  `db:"id" json:"id"`
	Contents string `db:"contents" json:"contents"`
	Language string `db:"language" json:"language"`
	Author   string `db:"author" json:"author"`
}

// Message is the canonical message shape: {sender, text, ts}. Older rows
// were written in two other forms — a bare string (sender implied by
// position in the thread) and an object with "content"/"timestamp" instead
// of "text"/"ts" — so decoding accepts all three and collapses them here.
// A Message decoded from a bare string has an empty Sender; presentation
// code infers the sender from the message's position.
type Message struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
	TS     int64  `json:"ts"` // unix milliseconds
}

// NewMessage builds a canonical message stamped with the current time.
func NewMessage(sender, text string) Message {
	return Message{Sender: sender, Text: text, TS: time.Now().UnixMilli()}
}

func (m *Message) UnmarshalJSON(data []byte) error {
	// Legacy bare-string entry.
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*m = Message{Text: s}
		return nil
	}

	var raw struct {
		Sender    string          `json:"sender"`
		Text      string          `json:"text"`
		Content   string          `json:"content"`
		TS        json.RawMessage `json:"ts"`
		Timestamp json.RawMessage `json:"timestamp"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	m.Sender = raw.Sender
	m.Text = raw.Text
	if m.Text == "" {
		m.Text = raw.Content
	}
	m.TS = parseTimestamp(raw.TS)
	if m.TS == 0 {
		m.TS = parseTimestamp(raw.Timestamp)
	}
	return nil
}

// parseTimestamp accepts the formats found in stored rows: unix
// milliseconds as a JSON number, or an RFC 3339 string. Anything else
// degrades to zero rather than failing the whole decode.
func parseTimestamp(raw json.RawMessage) int64 {
	if len(raw) == 0 {
		return 0
	}
	var ms int64
	if err := json.Unmarshal(raw, &ms); err == nil {
		return ms
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t.UnixMilli()
		}
	}
	return 0
}
