package socketlabs

import (
	"slices"
	"strconv"

	"github.com/socketlabs/socketlabs-go/internal/api"
)

// Merge tokens and synthetic merge fields used to address each recipient of
// a bulk message.
const (
	deliveryAddressToken = "%%DeliveryAddress%%"
	recipientNameToken   = "%%RecipientName%%"

	deliveryAddressField = "DeliveryAddress"
	recipientNameField   = "RecipientName"
)

// newInjectionRequest converts a validated message into the wire request.
// It does not modify msg, and the same message always serializes to the same
// JSON.
func newInjectionRequest(serverID int, apiKey string, msg Message) *api.InjectionRequest {
	m := newMessageJSON(msg.base())

	switch msg.Type() {
	case MessageTypeBasic:
		addBasicRecipients(&m, msg.basic())
	case MessageTypeBulk:
		addBulkRecipients(&m, msg.bulk())
	}

	return &api.InjectionRequest{
		ServerID: strconv.Itoa(serverID),
		APIKey:   apiKey,
		Messages: []api.MessageJSON{m},
	}
}

func newMessageJSON(m *MessageBase) api.MessageJSON {
	msg := api.MessageJSON{
		From:          addressJSON(m.From),
		Subject:       m.Subject,
		HTMLBody:      m.HTMLBody,
		AmpBody:       m.AmpBody,
		TextBody:      m.PlainTextBody,
		MailingID:     m.MailingID,
		MessageID:     m.MessageID,
		CharSet:       m.CharSet,
		CustomHeaders: customHeadersJSON(m.CustomHeaders),
		Attachments:   attachmentsJSON(m.Attachments),
		Metadata:      metadataJSON(m.Metadata),
		Tags:          tagsJSON(m.Tags),
	}
	if m.APITemplate > 0 {
		msg.APITemplate = strconv.Itoa(m.APITemplate)
	}
	if m.ReplyTo != nil && !m.ReplyTo.IsBlank() {
		replyTo := addressJSON(*m.ReplyTo)
		msg.ReplyTo = &replyTo
	}
	return msg
}

func addBasicRecipients(m *api.MessageJSON, msg *BasicMessage) {
	m.To = addressListJSON(msg.To)
	m.Cc = addressListJSON(msg.Cc)
	m.Bcc = addressListJSON(msg.Bcc)
}

// addBulkRecipients addresses the message to a single placeholder recipient
// and moves the real recipients into per-message merge data rows, indexed
// like msg.To.
func addBulkRecipients(m *api.MessageJSON, msg *BulkMessage) {
	m.To = []api.AddressJSON{{
		EmailAddress: deliveryAddressToken,
		FriendlyName: recipientNameToken,
	}}

	data := &api.MergeDataJSON{
		Global: mergeFieldsJSON(msg.GlobalMergeData),
	}
	for _, r := range msg.To {
		row := mergeFieldsJSON(r.MergeData)
		row = append(row, api.MergeFieldJSON{Field: deliveryAddressField, Value: r.Email})
		if r.FriendlyName != "" {
			row = append(row, api.MergeFieldJSON{Field: recipientNameField, Value: r.FriendlyName})
		}
		data.PerMessage = append(data.PerMessage, row)
	}
	m.MergeData = data
}

func addressJSON(a EmailAddress) api.AddressJSON {
	addr := api.AddressJSON{EmailAddress: a.Email}
	if !isBlank(a.FriendlyName) {
		addr.FriendlyName = a.FriendlyName
	}
	return addr
}

func addressListJSON(addrs []EmailAddress) []api.AddressJSON {
	if len(addrs) == 0 {
		return nil
	}
	out := make([]api.AddressJSON, 0, len(addrs))
	for _, a := range addrs {
		out = append(out, addressJSON(a))
	}
	return out
}

func customHeadersJSON(headers []CustomHeader) []api.CustomHeaderJSON {
	if len(headers) == 0 {
		return nil
	}
	out := make([]api.CustomHeaderJSON, 0, len(headers))
	for _, h := range headers {
		out = append(out, api.CustomHeaderJSON{Name: h.Name, Value: h.Value})
	}
	return out
}

func metadataJSON(metadata []Metadata) []api.MetadataJSON {
	if len(metadata) == 0 {
		return nil
	}
	out := make([]api.MetadataJSON, 0, len(metadata))
	for _, md := range metadata {
		out = append(out, api.MetadataJSON{Key: md.Key, Value: md.Value})
	}
	return out
}

func tagsJSON(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	return slices.Clone(tags)
}

func attachmentsJSON(attachments []*Attachment) []api.AttachmentJSON {
	if len(attachments) == 0 {
		return nil
	}
	out := make([]api.AttachmentJSON, 0, len(attachments))
	for _, a := range attachments {
		if a == nil {
			continue
		}
		out = append(out, api.AttachmentJSON{
			Name:          a.Name,
			Content:       a.Content,
			ContentType:   a.MimeType,
			ContentID:     a.ContentID,
			CustomHeaders: customHeadersJSON(a.CustomHeaders),
		})
	}
	return out
}

// mergeFieldsJSON emits merge data sorted by key.
func mergeFieldsJSON(data map[string]string) []api.MergeFieldJSON {
	if len(data) == 0 {
		return nil
	}
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	out := make([]api.MergeFieldJSON, 0, len(keys))
	for _, k := range keys {
		out = append(out, api.MergeFieldJSON{Field: k, Value: data[k]})
	}
	return out
}
