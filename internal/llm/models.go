package llm

// DefaultModel is used when no model is configured
const DefaultModel = "gemini-1.5-flash"

// JSONMIMEType asks Gemini to reply with a bare JSON document
const JSONMIMEType = "application/json"

// maxLoggedPrompt bounds prompt excerpts in debug logs
const maxLoggedPrompt = 200

// Options tunes generation for every request made by a Client
type Options struct {
	Model       string
	Timeout     int // seconds
	Temperature float32
	TopP        float32
	TopK        int32
	MaxTokens   int32
	JSON        bool
}
