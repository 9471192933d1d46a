package socketlabs

import (
	"net/http"

	"github.com/socketlabs/socketlabs-go/internal/api"
)

// parseResponse converts a raw Injection API response into a SendResponse.
//
// Only a 200 response is classified by its ErrorCode. Every other status maps
// to a fixed result; statuses other than 500 and 408 all report
// InvalidAuthentication, which existing integrations depend on.
func parseResponse(statusCode int, body []byte) *SendResponse {
	decoded := api.DecodeResponse(body)

	resp := &SendResponse{
		Result:             resultForStatus(statusCode, decoded.ErrorCode),
		TransactionReceipt: decoded.TransactionReceipt,
	}

	if len(decoded.MessageResults) > 0 {
		first := decoded.MessageResults[0]
		if resp.Result == Warning {
			resp.Result, _ = ParseSendResult(first.ErrorCode)
		}
		resp.AddressResults = addressResults(first.AddressResults)
	}

	return resp
}

func resultForStatus(statusCode int, errorCode string) SendResult {
	switch statusCode {
	case http.StatusOK:
		result, _ := ParseSendResult(errorCode)
		return result
	case http.StatusInternalServerError:
		return InternalError
	case http.StatusRequestTimeout:
		return Timeout
	default:
		return InvalidAuthentication
	}
}

func addressResults(in []api.AddressResult) []AddressResult {
	if len(in) == 0 {
		return nil
	}
	out := make([]AddressResult, 0, len(in))
	for _, r := range in {
		out = append(out, AddressResult{
			EmailAddress: r.EmailAddress,
			Accepted:     r.Accepted,
			ErrorCode:    r.ErrorCode,
		})
	}
	return out
}
