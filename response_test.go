package socketlabs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResponse_StatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		expected SendResult
	}{
		{"200 success", 200, `{"ErrorCode":"Success"}`, Success},
		{"200 over quota", 200, `{"ErrorCode":"OverQuota"}`, OverQuota},
		{"200 template id", 200, `{"ErrorCode":"InvalidTemplateId"}`, InvalidTemplateID},
		{"200 unknown code", 200, `{"ErrorCode":"SomethingNew"}`, UnknownError},
		{"200 empty body", 200, ``, UnknownError},
		{"500", 500, `{"ErrorCode":"Success"}`, InternalError},
		{"500 html", 500, `<html>oops</html>`, InternalError},
		{"408", 408, ``, Timeout},
		{"401", 401, `{"ErrorCode":"InvalidAuthentication"}`, InvalidAuthentication},
		{"400 maps to invalid authentication", 400, `{"ErrorCode":"InvalidData"}`, InvalidAuthentication},
		{"403 maps to invalid authentication", 403, ``, InvalidAuthentication},
		{"503 maps to invalid authentication", 503, ``, InvalidAuthentication},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := parseResponse(tt.status, []byte(tt.body))
			assert.Equal(t, tt.expected, resp.Result)
		})
	}
}

func TestParseResponse_WarningDrillsIntoFirstMessage(t *testing.T) {
	body := `{
		"ErrorCode": "Warning",
		"TransactionReceipt": "rcpt-123",
		"MessageResults": [
			{"Index": 0, "ErrorCode": "NoValidRecipients", "AddressResults": [
				{"EmailAddress": "bad@example.com", "Accepted": false, "ErrorCode": "InvalidAddress"}
			]},
			{"Index": 1, "ErrorCode": "OverQuota", "AddressResults": []}
		]
	}`

	resp := parseResponse(200, []byte(body))

	assert.Equal(t, NoValidRecipients, resp.Result)
	assert.Equal(t, "rcpt-123", resp.TransactionReceipt)
	require.Len(t, resp.AddressResults, 1)
	assert.Equal(t, AddressResult{EmailAddress: "bad@example.com", Accepted: false, ErrorCode: "InvalidAddress"}, resp.AddressResults[0])
}

func TestParseResponse_WarningWithoutMessageResults(t *testing.T) {
	resp := parseResponse(200, []byte(`{"ErrorCode":"Warning","TransactionReceipt":"r"}`))

	assert.Equal(t, Warning, resp.Result)
	assert.Equal(t, "r", resp.TransactionReceipt)
	assert.Nil(t, resp.AddressResults)
}

func TestParseResponse_CarriesAddressResultsOnSuccess(t *testing.T) {
	body := `{"ErrorCode":"Success","TransactionReceipt":"r","MessageResults":[
		{"Index":0,"ErrorCode":"Success","AddressResults":[{"EmailAddress":"ok@example.com","Accepted":true,"ErrorCode":""}]}
	]}`

	resp := parseResponse(200, []byte(body))

	assert.Equal(t, Success, resp.Result)
	require.Len(t, resp.AddressResults, 1)
	assert.True(t, resp.AddressResults[0].Accepted)
}

func TestParseResponse_ReceiptOnErrorStatus(t *testing.T) {
	resp := parseResponse(401, []byte(`{"ErrorCode":"InvalidAuthentication","TransactionReceipt":"r-401"}`))

	assert.Equal(t, InvalidAuthentication, resp.Result)
	assert.Equal(t, "r-401", resp.TransactionReceipt)
}
