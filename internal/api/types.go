package api

// InjectionRequest is the POST body accepted by the Injection API.
// The API accepts exactly one message per request.
type InjectionRequest struct {
	ServerID string        `json:"serverId"`
	APIKey   string        `json:"apiKey"`
	Messages []MessageJSON `json:"messages,omitempty"`
}

// MessageJSON is a single message in an InjectionRequest. Every optional
// field is omitted when empty.
type MessageJSON struct {
	From          AddressJSON        `json:"from"`
	Subject       string             `json:"subject,omitempty"`
	HTMLBody      string             `json:"htmlBody,omitempty"`
	AmpBody       string             `json:"ampBody,omitempty"`
	TextBody      string             `json:"textBody,omitempty"`
	APITemplate   string             `json:"apiTemplate,omitempty"`
	MailingID     string             `json:"mailingId,omitempty"`
	MessageID     string             `json:"messageId,omitempty"`
	ReplyTo       *AddressJSON       `json:"replyTo,omitempty"`
	CharSet       string             `json:"charSet,omitempty"`
	To            []AddressJSON      `json:"to,omitempty"`
	Cc            []AddressJSON      `json:"cc,omitempty"`
	Bcc           []AddressJSON      `json:"bcc,omitempty"`
	CustomHeaders []CustomHeaderJSON `json:"customHeaders,omitempty"`
	Attachments   []AttachmentJSON   `json:"attachments,omitempty"`
	MergeData     *MergeDataJSON     `json:"mergeData,omitempty"`
	Metadata      []MetadataJSON     `json:"metadata,omitempty"`
	Tags          []string           `json:"tags,omitempty"`
}

// AddressJSON is an email address with an optional display name.
type AddressJSON struct {
	EmailAddress string `json:"emailAddress"`
	FriendlyName string `json:"friendlyName,omitempty"`
}

// CustomHeaderJSON is a name/value header pair.
type CustomHeaderJSON struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// MetadataJSON is a key/value metadata pair.
type MetadataJSON struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// AttachmentJSON is a file attached to a message. Content is encoded as
// standard base64 by encoding/json.
type AttachmentJSON struct {
	Name          string             `json:"name"`
	Content       []byte             `json:"content"`
	ContentType   string             `json:"contentType"`
	ContentID     string             `json:"contentId,omitempty"`
	CustomHeaders []CustomHeaderJSON `json:"customHeaders,omitempty"`
}

// MergeFieldJSON is a single merge token substitution.
type MergeFieldJSON struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// MergeDataJSON carries bulk personalization. PerMessage is indexed the same
// way as the recipient list; Global applies to every recipient.
type MergeDataJSON struct {
	Global     []MergeFieldJSON   `json:"global,omitempty"`
	PerMessage [][]MergeFieldJSON `json:"perMessage,omitempty"`
}

// InjectionResponse is the response body returned by the Injection API.
type InjectionResponse struct {
	ErrorCode          string          `json:"ErrorCode"`
	TransactionReceipt string          `json:"TransactionReceipt"`
	MessageResults     []MessageResult `json:"MessageResults"`
}

// MessageResult is the per-message outcome inside an InjectionResponse.
type MessageResult struct {
	Index          int             `json:"Index"`
	ErrorCode      string          `json:"ErrorCode"`
	AddressResults []AddressResult `json:"AddressResults"`
}

// AddressResult is the per-recipient outcome inside a MessageResult.
type AddressResult struct {
	EmailAddress string `json:"EmailAddress"`
	Accepted     bool   `json:"Accepted"`
	ErrorCode    string `json:"ErrorCode"`
}

// Response is the raw outcome of one HTTP attempt.
type Response struct {
	StatusCode int
	Body       []byte
}
