package socketlabs

import (
	"maps"
	"slices"
)

// MessageType identifies the variant of a Message.
type MessageType int

const (
	// MessageTypeBasic is a message with explicit To, Cc and Bcc lists.
	MessageTypeBasic MessageType = iota + 1
	// MessageTypeBulk is a message personalized per recipient through
	// merge data.
	MessageTypeBulk
)

func (t MessageType) String() string {
	switch t {
	case MessageTypeBasic:
		return "basic"
	case MessageTypeBulk:
		return "bulk"
	default:
		return "unknown"
	}
}

// Message is implemented by *BasicMessage and *BulkMessage only.
type Message interface {
	// Type returns the variant tag.
	Type() MessageType

	base() *MessageBase
	basic() *BasicMessage
	bulk() *BulkMessage
}

// MessageBase holds the fields shared by every message variant.
type MessageBase struct {
	Subject       string
	PlainTextBody string
	HTMLBody      string
	AmpBody       string
	// APITemplate is the ID of a stored template. It overrides the bodies
	// when greater than zero.
	APITemplate int
	MailingID   string
	MessageID   string
	CharSet     string

	From    EmailAddress
	ReplyTo *EmailAddress

	Attachments   []*Attachment
	CustomHeaders []CustomHeader
	Metadata      []Metadata
	Tags          []string
}

func (m *MessageBase) base() *MessageBase { return m }

// SetFrom sets the From address.
func (m *MessageBase) SetFrom(email string, friendlyName ...string) {
	m.From = NewEmailAddress(email, friendlyName...)
}

// SetReplyTo sets the Reply-To address.
func (m *MessageBase) SetReplyTo(email string, friendlyName ...string) {
	addr := NewEmailAddress(email, friendlyName...)
	m.ReplyTo = &addr
}

// AddAttachment appends an attachment.
func (m *MessageBase) AddAttachment(a *Attachment) {
	m.Attachments = append(m.Attachments, a)
}

// AddCustomHeader appends a custom header.
func (m *MessageBase) AddCustomHeader(name, value string) {
	m.CustomHeaders = append(m.CustomHeaders, CustomHeader{Name: name, Value: value})
}

// AddMetadata appends a metadata entry.
func (m *MessageBase) AddMetadata(key, value string) {
	m.Metadata = append(m.Metadata, Metadata{Key: key, Value: value})
}

// AddTag appends a tag.
func (m *MessageBase) AddTag(tag string) {
	m.Tags = append(m.Tags, tag)
}

func (m *MessageBase) clone() MessageBase {
	c := *m
	if m.ReplyTo != nil {
		replyTo := *m.ReplyTo
		c.ReplyTo = &replyTo
	}
	c.Attachments = nil
	for _, a := range m.Attachments {
		c.Attachments = append(c.Attachments, a.Clone())
	}
	c.CustomHeaders = slices.Clone(m.CustomHeaders)
	c.Metadata = slices.Clone(m.Metadata)
	c.Tags = slices.Clone(m.Tags)
	return c
}

// BasicMessage is a message sent to explicit To, Cc and Bcc lists.
//
//	msg := &socketlabs.BasicMessage{}
//	msg.Subject = "Hello"
//	msg.HTMLBody = "<p>Hello</p>"
//	msg.SetFrom("from@example.com")
//	msg.AddToEmailAddress("to@example.com", "Recipient")
type BasicMessage struct {
	MessageBase

	To  []EmailAddress
	Cc  []EmailAddress
	Bcc []EmailAddress
}

// Type returns MessageTypeBasic.
func (m *BasicMessage) Type() MessageType { return MessageTypeBasic }

func (m *BasicMessage) basic() *BasicMessage { return m }
func (m *BasicMessage) bulk() *BulkMessage   { return nil }

// AddToEmailAddress appends a To recipient.
func (m *BasicMessage) AddToEmailAddress(email string, friendlyName ...string) {
	m.To = append(m.To, NewEmailAddress(email, friendlyName...))
}

// AddCcEmailAddress appends a Cc recipient.
func (m *BasicMessage) AddCcEmailAddress(email string, friendlyName ...string) {
	m.Cc = append(m.Cc, NewEmailAddress(email, friendlyName...))
}

// AddBccEmailAddress appends a Bcc recipient.
func (m *BasicMessage) AddBccEmailAddress(email string, friendlyName ...string) {
	m.Bcc = append(m.Bcc, NewEmailAddress(email, friendlyName...))
}

// RecipientCount returns the combined number of To, Cc and Bcc recipients.
func (m *BasicMessage) RecipientCount() int {
	return len(m.To) + len(m.Cc) + len(m.Bcc)
}

// Clone returns a deep copy of m.
func (m *BasicMessage) Clone() *BasicMessage {
	return &BasicMessage{
		MessageBase: m.MessageBase.clone(),
		To:          slices.Clone(m.To),
		Cc:          slices.Clone(m.Cc),
		Bcc:         slices.Clone(m.Bcc),
	}
}

// BulkMessage is a single message template delivered to each recipient in To.
// Merge fields such as %%FirstName%% in the bodies are replaced per recipient
// from the recipient's MergeData, falling back to GlobalMergeData.
type BulkMessage struct {
	MessageBase

	To              []*BulkRecipient
	GlobalMergeData map[string]string
}

// Type returns MessageTypeBulk.
func (m *BulkMessage) Type() MessageType { return MessageTypeBulk }

func (m *BulkMessage) basic() *BasicMessage { return nil }
func (m *BulkMessage) bulk() *BulkMessage   { return m }

// AddToRecipient appends a new recipient and returns it so merge data can be
// added:
//
//	msg.AddToRecipient("to@example.com", "Recipient").AddMergeData("FirstName", "Ann")
func (m *BulkMessage) AddToRecipient(email string, friendlyName ...string) *BulkRecipient {
	r := NewBulkRecipient(email, friendlyName...)
	m.To = append(m.To, r)
	return r
}

// AddBulkRecipient appends a copy of r. Later changes to r do not affect the
// message.
func (m *BulkMessage) AddBulkRecipient(r *BulkRecipient) {
	m.To = append(m.To, r.Clone())
}

// AddGlobalMergeData sets a merge field that applies to every recipient.
func (m *BulkMessage) AddGlobalMergeData(key, value string) {
	if m.GlobalMergeData == nil {
		m.GlobalMergeData = map[string]string{}
	}
	m.GlobalMergeData[key] = value
}

// Clone returns a deep copy of m, including every recipient's merge data.
func (m *BulkMessage) Clone() *BulkMessage {
	c := &BulkMessage{
		MessageBase:     m.MessageBase.clone(),
		GlobalMergeData: maps.Clone(m.GlobalMergeData),
	}
	for _, r := range m.To {
		c.To = append(c.To, r.Clone())
	}
	return c
}
