package api

import "encoding/json"

// DecodeResponse decodes an Injection API response body. Bodies that are not
// valid JSON (proxy error pages, empty 5xx bodies) decode to an empty
// response so the caller can still classify by status code.
func DecodeResponse(body []byte) *InjectionResponse {
	var resp InjectionResponse
	if len(body) == 0 {
		return &resp
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return &InjectionResponse{}
	}
	return &resp
}
