package socketlabs

import (
	"maps"
	"strings"
)

const maxEmailAddressLength = 320

// EmailAddress is an email address with an optional display name.
type EmailAddress struct {
	Email        string
	FriendlyName string
}

// NewEmailAddress returns an EmailAddress. An optional friendly name may be
// given as the second argument.
func NewEmailAddress(email string, friendlyName ...string) EmailAddress {
	addr := EmailAddress{Email: email}
	if len(friendlyName) > 0 {
		addr.FriendlyName = friendlyName[0]
	}
	return addr
}

// IsValid reports whether the address passes IsValidEmailAddress.
func (a EmailAddress) IsValid() bool {
	return IsValidEmailAddress(a.Email)
}

// IsBlank reports whether both the address and the friendly name are blank.
func (a EmailAddress) IsBlank() bool {
	return isBlank(a.Email) && isBlank(a.FriendlyName)
}

func (a EmailAddress) String() string {
	if a.FriendlyName != "" {
		return a.FriendlyName + " <" + a.Email + ">"
	}
	return a.Email
}

// BulkRecipient is a recipient of a BulkMessage. MergeData holds the
// recipient's own merge fields, which take precedence over the message's
// global merge data for the same key.
type BulkRecipient struct {
	Email        string
	FriendlyName string
	MergeData    map[string]string
}

// NewBulkRecipient returns a BulkRecipient with empty merge data. An optional
// friendly name may be given as the second argument.
func NewBulkRecipient(email string, friendlyName ...string) *BulkRecipient {
	r := &BulkRecipient{Email: email, MergeData: map[string]string{}}
	if len(friendlyName) > 0 {
		r.FriendlyName = friendlyName[0]
	}
	return r
}

// AddMergeData sets a merge field for this recipient.
func (r *BulkRecipient) AddMergeData(key, value string) *BulkRecipient {
	if r.MergeData == nil {
		r.MergeData = map[string]string{}
	}
	r.MergeData[key] = value
	return r
}

// SetMergeData replaces the recipient's merge data with a copy of data.
func (r *BulkRecipient) SetMergeData(data map[string]string) *BulkRecipient {
	r.MergeData = maps.Clone(data)
	if r.MergeData == nil {
		r.MergeData = map[string]string{}
	}
	return r
}

// IsValid reports whether the recipient address passes IsValidEmailAddress.
func (r *BulkRecipient) IsValid() bool {
	return IsValidEmailAddress(r.Email)
}

// Clone returns a deep copy of r. The copy never shares its merge data with r.
func (r *BulkRecipient) Clone() *BulkRecipient {
	if r == nil {
		return nil
	}
	c := *r
	c.MergeData = maps.Clone(r.MergeData)
	return &c
}

func (r *BulkRecipient) String() string {
	if r.FriendlyName != "" {
		return r.FriendlyName + " <" + r.Email + ">"
	}
	return r.Email
}

// IsValidEmailAddress performs a simple syntax check. An address is valid if
// it is at most 320 characters, has exactly one "@" with non-blank text on
// both sides, and contains no comma, space or semicolon.
//
// This is deliberately not RFC 5322 validation; the Injection API performs
// its own checks and reports rejected addresses in the response.
func IsValidEmailAddress(email string) bool {
	if email == "" || len(email) > maxEmailAddressLength {
		return false
	}

	parts := strings.Split(email, "@")
	if len(parts) != 2 || isBlank(parts[0]) || isBlank(parts[1]) {
		return false
	}

	return !strings.ContainsAny(email, ", ;")
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
