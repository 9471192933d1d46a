package socketlabs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailAddress(t *testing.T) {
	addr := NewEmailAddress("a@b.com", "Ann")
	assert.Equal(t, "Ann <a@b.com>", addr.String())
	assert.True(t, addr.IsValid())
	assert.False(t, addr.IsBlank())

	assert.Equal(t, "a@b.com", NewEmailAddress("a@b.com").String())
	assert.True(t, NewEmailAddress(" ", "").IsBlank())
}

func TestBulkRecipient_CloneOwnsMergeData(t *testing.T) {
	r := NewBulkRecipient("r@example.com", "R").AddMergeData("A", "1")
	c := r.Clone()

	c.MergeData["A"] = "2"
	c.MergeData["B"] = "3"

	assert.Equal(t, map[string]string{"A": "1"}, r.MergeData)
	assert.Equal(t, "R <r@example.com>", c.String())
}

func TestBulkRecipient_SetMergeDataCopies(t *testing.T) {
	data := map[string]string{"A": "1"}
	r := NewBulkRecipient("r@example.com").SetMergeData(data)

	data["A"] = "changed"

	assert.Equal(t, "1", r.MergeData["A"])
	assert.NotNil(t, NewBulkRecipient("x@example.com").SetMergeData(nil).MergeData)
}

func TestBulkMessage_AddBulkRecipientCopies(t *testing.T) {
	msg := &BulkMessage{}
	r := NewBulkRecipient("r@example.com").AddMergeData("A", "1")
	msg.AddBulkRecipient(r)

	r.AddMergeData("A", "2")
	r.Email = "other@example.com"

	require.Len(t, msg.To, 1)
	assert.Equal(t, "r@example.com", msg.To[0].Email)
	assert.Equal(t, "1", msg.To[0].MergeData["A"])
}

func TestBulkMessage_Clone(t *testing.T) {
	msg := validBulkMessage()
	msg.AddGlobalMergeData("G", "1")
	msg.SetReplyTo("reply@example.com")
	msg.AddAttachment(NewAttachment("a.txt", "text/plain", []byte("abc")))
	msg.AddTag("t")

	c := msg.Clone()
	require.Equal(t, msg, c)

	c.To[0].MergeData["Name"] = "Changed"
	c.GlobalMergeData["G"] = "2"
	c.ReplyTo.Email = "changed@example.com"
	c.Attachments[0].Content[0] = 'X'
	c.Tags[0] = "changed"

	assert.Equal(t, "One", msg.To[0].MergeData["Name"])
	assert.Equal(t, "1", msg.GlobalMergeData["G"])
	assert.Equal(t, "reply@example.com", msg.ReplyTo.Email)
	assert.Equal(t, []byte("abc"), msg.Attachments[0].Content)
	assert.Equal(t, "t", msg.Tags[0])
}

func TestBasicMessage_Clone(t *testing.T) {
	msg := validBasicMessage()
	msg.AddCcEmailAddress("cc@example.com")
	msg.AddCustomHeader("X-A", "1")

	c := msg.Clone()
	require.Equal(t, msg, c)

	c.To[0].Email = "changed@example.com"
	c.CustomHeaders[0].Value = "2"

	assert.Equal(t, "to@example.com", msg.To[0].Email)
	assert.Equal(t, "1", msg.CustomHeaders[0].Value)
	assert.Equal(t, 2, msg.RecipientCount())
}

func TestMessageType(t *testing.T) {
	assert.Equal(t, MessageTypeBasic, (&BasicMessage{}).Type())
	assert.Equal(t, MessageTypeBulk, (&BulkMessage{}).Type())
	assert.Equal(t, "basic", MessageTypeBasic.String())
	assert.Equal(t, "bulk", MessageTypeBulk.String())
	assert.Equal(t, "unknown", MessageType(0).String())
}

func TestCustomHeaderAndMetadata_IsValid(t *testing.T) {
	assert.True(t, CustomHeader{Name: "X", Value: "1"}.IsValid())
	assert.False(t, CustomHeader{Name: "X"}.IsValid())
	assert.False(t, CustomHeader{Name: " ", Value: "1"}.IsValid())
	assert.True(t, Metadata{Key: "k", Value: "v"}.IsValid())
	assert.False(t, Metadata{Key: "k", Value: "\t"}.IsValid())
}

func TestNewAttachmentFromFile(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name     string
		file     string
		content  []byte
		expected string
	}{
		{"extension", "report.pdf", []byte("%PDF-1.4 not really"), "application/pdf"},
		{"text extension drops charset", "notes.txt", []byte("hello"), "text/plain"},
		{"sniffed png", "image.unknownext", []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), "image/png"},
		{"sniffed binary", "blob.unknownext", []byte{0x00, 0x01, 0x02, 0x03}, "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			require.NoError(t, os.WriteFile(path, tt.content, 0o600))

			a, err := NewAttachmentFromFile(path)
			require.NoError(t, err)

			assert.Equal(t, tt.file, a.Name)
			assert.Equal(t, tt.expected, a.MimeType)
			assert.Equal(t, tt.content, a.Content)
		})
	}
}

func TestNewAttachmentFromFile_Missing(t *testing.T) {
	_, err := NewAttachmentFromFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
