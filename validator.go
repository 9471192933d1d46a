package socketlabs

// MaxRecipientsPerMessage is the largest number of recipients a single
// message may carry. For a BasicMessage it counts To, Cc and Bcc together.
const MaxRecipientsPerMessage = 50

// invalidAddressCode is the error code reported for addresses rejected by
// client-side validation.
const invalidAddressCode = "InvalidAddress"

// ValidateCredentials checks that the server ID is positive and the API key
// is not blank. It returns a response with Result Success or
// AuthenticationValidationFailed.
func ValidateCredentials(serverID int, apiKey string) *SendResponse {
	if serverID <= 0 || isBlank(apiKey) {
		return newSendResponse(AuthenticationValidationFailed)
	}
	return newSendResponse(Success)
}

// ValidateMessage runs the checks the Injection API would otherwise reject a
// message for. Checks run in this order and stop at the first failure:
//
//  1. subject is not blank
//  2. From is set
//  3. From passes IsValidEmailAddress
//  4. ReplyTo is nil, blank, or valid
//  5. an API template is set, or the HTML or plain text body is not blank
//  6. every custom header has a name and a value
//  7. recipient count and recipient addresses
//
// When recipients fail the syntax check the response lists every rejected
// address, not just the first.
func ValidateMessage(msg Message) *SendResponse {
	if isNilMessage(msg) {
		return newSendResponse(MessageValidationEmptyMessage)
	}

	if result := validateBase(msg.base()); result != Success {
		return newSendResponse(result)
	}

	switch msg.Type() {
	case MessageTypeBasic:
		return validateBasicRecipients(msg.basic())
	case MessageTypeBulk:
		return validateBulkRecipients(msg.bulk())
	default:
		return newSendResponse(UnknownError)
	}
}

func isNilMessage(msg Message) bool {
	if msg == nil {
		return true
	}
	switch msg.Type() {
	case MessageTypeBasic:
		return msg.basic() == nil
	case MessageTypeBulk:
		return msg.bulk() == nil
	}
	return true
}

func validateBase(m *MessageBase) SendResult {
	if isBlank(m.Subject) {
		return MessageValidationEmptySubject
	}
	if isBlank(m.From.Email) {
		return EmailAddressValidationMissingFrom
	}
	if !m.From.IsValid() {
		return EmailAddressValidationInvalidFrom
	}
	if !hasValidReplyTo(m) {
		return RecipientValidationInvalidReplyTo
	}
	if !hasMessageBody(m) {
		return MessageValidationEmptyMessage
	}
	if !hasValidCustomHeaders(m.CustomHeaders) {
		return MessageValidationInvalidCustomHeaders
	}
	return Success
}

// hasValidReplyTo treats a fully blank Reply-To as not set.
func hasValidReplyTo(m *MessageBase) bool {
	if m.ReplyTo == nil || m.ReplyTo.IsBlank() {
		return true
	}
	return m.ReplyTo.IsValid()
}

// hasMessageBody reports whether the message has content. An API template
// overrides the bodies. An AMP body alone does not count.
func hasMessageBody(m *MessageBase) bool {
	if m.APITemplate > 0 {
		return true
	}
	return !isBlank(m.HTMLBody) || !isBlank(m.PlainTextBody)
}

func hasValidCustomHeaders(headers []CustomHeader) bool {
	for _, h := range headers {
		if !h.IsValid() {
			return false
		}
	}
	return true
}

func validateBasicRecipients(m *BasicMessage) *SendResponse {
	count := m.RecipientCount()
	if count == 0 {
		return newSendResponse(RecipientValidationNoneInMessage)
	}
	if count > MaxRecipientsPerMessage {
		return newSendResponse(RecipientValidationMaxExceeded)
	}

	var invalid []AddressResult
	for _, list := range [][]EmailAddress{m.To, m.Cc, m.Bcc} {
		for _, addr := range list {
			if !addr.IsValid() {
				invalid = append(invalid, rejectedAddress(addr.Email))
			}
		}
	}
	return recipientResponse(invalid)
}

func validateBulkRecipients(m *BulkMessage) *SendResponse {
	if len(m.To) == 0 {
		return newSendResponse(RecipientValidationMissingTo)
	}
	if len(m.To) > MaxRecipientsPerMessage {
		return newSendResponse(RecipientValidationMaxExceeded)
	}

	var invalid []AddressResult
	for _, r := range m.To {
		if r == nil {
			invalid = append(invalid, rejectedAddress(""))
			continue
		}
		if !r.IsValid() {
			invalid = append(invalid, rejectedAddress(r.Email))
		}
	}
	return recipientResponse(invalid)
}

func rejectedAddress(email string) AddressResult {
	return AddressResult{EmailAddress: email, Accepted: false, ErrorCode: invalidAddressCode}
}

func recipientResponse(invalid []AddressResult) *SendResponse {
	if len(invalid) > 0 {
		return &SendResponse{
			Result:         RecipientValidationInvalidRecipients,
			AddressResults: invalid,
		}
	}
	return newSendResponse(Success)
}
