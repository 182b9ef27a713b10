package mock_generator

// ScriptedChunk is one scripted stream element. Kind is "text", "image" or
// "end"; Delay is the number of milliseconds to wait before emitting it.
type ScriptedChunk struct {
	Kind     string `json:"kind"`
	Text     string `json:"text,omitempty"`
	ImageB64 string `json:"image_b64,omitempty"`
	Delay    int    `json:"delay"`
}
