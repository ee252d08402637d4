package chat

import "encoding/json"

// Question is one inbound websocket frame. ID is kept as raw JSON so the
// client may use any opaque token (string, number) and get it echoed back.
type Question struct {
	ID   json.RawMessage `json:"id,omitempty"`
	Text string          `json:"text"`
}

// Answer is the structured tutor response. Speech is plain text suitable
// for text-to-speech; markup stays in Explanation.
type Answer struct {
	Explanation string `json:"explanation"`
	Speech      string `json:"speech"`
}

// Reply is one outbound websocket frame. ID echoes the question ID and
// marshals as null when the question carried none.
type Reply struct {
	ID       json.RawMessage `json:"id"`
	Response Answer          `json:"response"`
}
