package socketlabs

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Attachment is a file attached to a message. Setting ContentID makes the
// attachment available for inline embedding, for example as
// <img src="cid:logo">.
type Attachment struct {
	Name          string
	MimeType      string
	ContentID     string
	Content       []byte
	CustomHeaders []CustomHeader
}

// NewAttachment creates an attachment from in-memory content.
func NewAttachment(name, mimeType string, content []byte) *Attachment {
	return &Attachment{
		Name:     name,
		MimeType: mimeType,
		Content:  content,
	}
}

// NewAttachmentFromFile reads the file at path into an attachment named after
// the file. The MIME type is taken from the file extension, or detected from
// the content when the extension is unknown.
func NewAttachmentFromFile(path string) (*Attachment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read attachment: %w", err)
	}

	return &Attachment{
		Name:     filepath.Base(path),
		MimeType: detectMimeType(path, data),
		Content:  data,
	}, nil
}

// AddCustomHeader appends a header to the attachment.
func (a *Attachment) AddCustomHeader(name, value string) *Attachment {
	a.CustomHeaders = append(a.CustomHeaders, CustomHeader{Name: name, Value: value})
	return a
}

// Clone returns a deep copy of a.
func (a *Attachment) Clone() *Attachment {
	if a == nil {
		return nil
	}
	c := *a
	c.Content = slices.Clone(a.Content)
	c.CustomHeaders = slices.Clone(a.CustomHeaders)
	return &c
}

func (a *Attachment) String() string {
	return a.Name + ", " + a.MimeType
}

func detectMimeType(path string, data []byte) string {
	if t := mime.TypeByExtension(filepath.Ext(path)); t != "" {
		return mediaType(t)
	}
	return mediaType(mimetype.Detect(data).String())
}

// mediaType strips parameters such as charset from a MIME type.
func mediaType(t string) string {
	if mt, _, err := mime.ParseMediaType(t); err == nil {
		return mt
	}
	if i := strings.IndexByte(t, ';'); i >= 0 {
		return strings.TrimSpace(t[:i])
	}
	return t
}
