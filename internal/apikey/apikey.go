// Package apikey classifies Injection API keys.
//
// Accounts created before key rotation use a single opaque key that is sent
// in the request body. Newer accounts use a combined key of the form
// "<public>.<secret>" where the public part identifies the key and the secret
// part is sent as a bearer token.
package apikey

import "strings"

// Combined key geometry.
const (
	KeyLength       = 61
	PublicPartLen   = 20
	SecretPartLen   = 40
	separator       = "."
	separatorWindow = 50
)

// Result is the outcome of classifying an API key.
type Result int

const (
	// Success means the key is a well formed combined key.
	Success Result = iota
	// InvalidEmptyOrWhitespace means the key is blank.
	InvalidEmptyOrWhitespace
	// InvalidKeyLength means the key is not exactly KeyLength characters.
	InvalidKeyLength
	// InvalidKeyFormat means the key has no separator.
	InvalidKeyFormat
	// InvalidUnableToExtractPublicPart means no separator was found early enough.
	InvalidUnableToExtractPublicPart
	// InvalidUnableToExtractSecretPart means nothing follows the separator.
	InvalidUnableToExtractSecretPart
	// InvalidPublicPartLength means the public part is not PublicPartLen characters.
	InvalidPublicPartLength
	// InvalidSecretPartLength means the secret part is not SecretPartLen characters.
	InvalidSecretPartLength
)

var resultNames = map[Result]string{
	Success:                          "Success",
	InvalidEmptyOrWhitespace:         "InvalidEmptyOrWhitespace",
	InvalidKeyLength:                 "InvalidKeyLength",
	InvalidKeyFormat:                 "InvalidKeyFormat",
	InvalidUnableToExtractPublicPart: "InvalidUnableToExtractPublicPart",
	InvalidUnableToExtractSecretPart: "InvalidUnableToExtractSecretPart",
	InvalidPublicPartLength:          "InvalidPublicPartLength",
	InvalidSecretPartLength:          "InvalidSecretPartLength",
}

func (r Result) String() string {
	if name, ok := resultNames[r]; ok {
		return name
	}
	return "Unknown"
}

// Parts holds the two halves of a combined key. Both are empty unless
// Parse returned Success.
type Parts struct {
	Public string
	Secret string
}

// Parse classifies key and, on Success, splits it into its public and
// secret parts. Parse has no side effects.
func Parse(key string) (Parts, Result) {
	if strings.TrimSpace(key) == "" {
		return Parts{}, InvalidEmptyOrWhitespace
	}
	if len(key) != KeyLength {
		return Parts{}, InvalidKeyLength
	}
	if !strings.Contains(key, separator) {
		return Parts{}, InvalidKeyFormat
	}

	publicEnd := strings.Index(key[:separatorWindow], separator)
	if publicEnd == -1 {
		return Parts{}, InvalidUnableToExtractPublicPart
	}
	public := key[:publicEnd]
	if len(public) != PublicPartLen {
		return Parts{}, InvalidPublicPartLength
	}

	if len(key) <= publicEnd+1 {
		return Parts{}, InvalidUnableToExtractSecretPart
	}
	secret := key[publicEnd+1:]
	if len(secret) != SecretPartLen {
		return Parts{}, InvalidSecretPartLength
	}

	return Parts{Public: public, Secret: secret}, Success
}
