package socketlabs

// SendResult is the outcome of a send, either reported by the Injection API
// or produced by client-side validation before any request is made.
type SendResult int

// Results returned by the Injection API.
const (
	UnknownError SendResult = iota
	Timeout
	Success
	Warning
	InternalError
	MessageTooLarge
	TooManyRecipients
	InvalidData
	OverQuota
	TooManyErrors
	InvalidAuthentication
	AccountDisabled
	TooManyMessages
	NoValidRecipients
	InvalidAddress
	InvalidAttachment
	NoMessages
	EmptyMessage
	EmptySubject
	InvalidFrom
	EmptyToAddress
	NoValidBodyParts
	InvalidTemplateID
	TemplateHasNoContent
	MessageBodyConflict
	InvalidMergeData
)

// Results produced by client-side validation. A message failing any of these
// checks is never sent.
const (
	AuthenticationValidationFailed SendResult = iota + InvalidMergeData + 1
	EmailAddressValidationMissingFrom
	EmailAddressValidationInvalidFrom
	RecipientValidationMaxExceeded
	RecipientValidationNoneInMessage
	RecipientValidationMissingTo
	RecipientValidationInvalidReplyTo
	RecipientValidationInvalidRecipients
	MessageValidationEmptySubject
	MessageValidationEmptyMessage
	MessageValidationInvalidCustomHeaders
)

type resultInfo struct {
	name        string
	description string
}

var sendResults = map[SendResult]resultInfo{
	UnknownError:          {"UnknownError", "An error has occurred that was unforeseen"},
	Timeout:               {"Timeout", "A timeout occurred sending the message"},
	Success:               {"Success", "Successful send of message"},
	Warning:               {"Warning", "Warnings were found while sending the message"},
	InternalError:         {"InternalError", "Internal server error"},
	MessageTooLarge:       {"MessageTooLarge", "Message size has exceeded the size limit"},
	TooManyRecipients:     {"TooManyRecipients", "Message exceeded maximum recipient count in the message"},
	InvalidData:           {"InvalidData", "Invalid data was found on the message"},
	OverQuota:             {"OverQuota", "The account is over the send quota, rate limit exceeded"},
	TooManyErrors:         {"TooManyErrors", "Too many errors occurred sending the message"},
	InvalidAuthentication: {"InvalidAuthentication", "The ServerId/ApiKey combination is invalid"},
	AccountDisabled:       {"AccountDisabled", "The account has been disabled"},
	TooManyMessages:       {"TooManyMessages", "Too many messages were found in the request"},
	NoValidRecipients:     {"NoValidRecipients", "No valid recipients were found in the message"},
	InvalidAddress:        {"InvalidAddress", "An invalid recipient was found on the message"},
	InvalidAttachment:     {"InvalidAttachment", "An invalid attachment was found on the message"},
	NoMessages:            {"NoMessages", "No message was found in the request"},
	EmptyMessage:          {"EmptyMessage", "No message body was found in the message"},
	EmptySubject:          {"EmptySubject", "No subject was found in the message"},
	InvalidFrom:           {"InvalidFrom", "An invalid from address was found on the message"},
	EmptyToAddress:        {"EmptyToAddress", "No To addresses were found in the message"},
	NoValidBodyParts:      {"NoValidBodyParts", "No valid message body was found in the message"},
	InvalidTemplateID:     {"InvalidTemplateId", "An invalid TemplateId was found in the message"},
	TemplateHasNoContent:  {"TemplateHasNoContent", "The specified TemplateId has no content for the message"},
	MessageBodyConflict:   {"MessageBodyConflict", "A conflict occurred on the message body of the message"},
	InvalidMergeData:      {"InvalidMergeData", "Invalid MergeData was found on the message"},

	AuthenticationValidationFailed: {
		"AuthenticationValidationFailed",
		"SDK Validation Error : Authentication Validation Failed, Missing or invalid ServerId or ApiKey",
	},
	EmailAddressValidationMissingFrom: {
		"EmailAddressValidationMissingFrom",
		"SDK Validation Error : From email address is missing in the message",
	},
	EmailAddressValidationInvalidFrom: {
		"EmailAddressValidationInvalidFrom",
		"SDK Validation Error : From email address in the message is invalid",
	},
	RecipientValidationMaxExceeded: {
		"RecipientValidationMaxExceeded",
		"SDK Validation Error : Message exceeded maximum recipient count in the message",
	},
	RecipientValidationNoneInMessage: {
		"RecipientValidationNoneInMessage",
		"SDK Validation Error : No Recipients were found in the message",
	},
	RecipientValidationMissingTo: {
		"RecipientValidationMissingTo",
		"SDK Validation Error : To addresses are missing in the message",
	},
	RecipientValidationInvalidReplyTo: {
		"RecipientValidationInvalidReplyTo",
		"SDK Validation Error : Invalid ReplyTo Address was found in the message",
	},
	RecipientValidationInvalidRecipients: {
		"RecipientValidationInvalidRecipients",
		"SDK Validation Error : Invalid recipients were found in the message",
	},
	MessageValidationEmptySubject: {
		"MessageValidationEmptySubject",
		"SDK Validation Error : No Subject was found in the message",
	},
	MessageValidationEmptyMessage: {
		"MessageValidationEmptyMessage",
		"SDK Validation Error : No message body was found in the message",
	},
	MessageValidationInvalidCustomHeaders: {
		"MessageValidationInvalidCustomHeaders",
		"SDK Validation Error : Invalid Custom Headers were found in the message",
	},
}

var resultsByName = func() map[string]SendResult {
	m := make(map[string]SendResult, len(sendResults))
	for r, info := range sendResults {
		m[info.name] = r
	}
	return m
}()

// String returns a human readable description of the result.
func (r SendResult) String() string {
	if info, ok := sendResults[r]; ok {
		return info.description
	}
	return sendResults[UnknownError].description
}

// Name returns the result code as it appears in Injection API responses,
// for example "InvalidAuthentication".
func (r SendResult) Name() string {
	if info, ok := sendResults[r]; ok {
		return info.name
	}
	return sendResults[UnknownError].name
}

// IsValidation reports whether r was produced by client-side validation.
func (r SendResult) IsValidation() bool {
	return r >= AuthenticationValidationFailed && r <= MessageValidationInvalidCustomHeaders
}

// ParseSendResult maps an Injection API error code to a SendResult.
// Unrecognized codes map to UnknownError and ok is false.
func ParseSendResult(code string) (result SendResult, ok bool) {
	result, ok = resultsByName[code]
	if !ok {
		return UnknownError, false
	}
	return result, true
}

// AddressResult is the outcome for a single recipient address.
type AddressResult struct {
	EmailAddress string
	Accepted     bool
	ErrorCode    string
}

// SendResponse is the structured result of a send.
type SendResponse struct {
	Result SendResult
	// TransactionReceipt identifies the request on the SocketLabs side. It
	// is empty when the message failed validation.
	TransactionReceipt string
	// AddressResults lists per-recipient outcomes. Validation failures list
	// every rejected address; API responses carry the first message's
	// results.
	AddressResults []AddressResult
}

// ResponseMessage returns the description of Result.
func (r *SendResponse) ResponseMessage() string {
	return r.Result.String()
}

func (r *SendResponse) String() string {
	return r.Result.Name() + ": " + r.Result.String()
}

func newSendResponse(result SendResult) *SendResponse {
	return &SendResponse{Result: result}
}
