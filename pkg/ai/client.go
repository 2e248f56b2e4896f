package ai

import "context"

// Client is the text/vision generation backend. All methods return the raw
// model output; callers own parsing, validation and retries so that fallback
// policy stays in one place per orchestrator.
type Client interface {
	// GenerateJSON forces JSON output mode.
	GenerateJSON(ctx context.Context, system, user string) (string, error)
	// GenerateText returns free text.
	GenerateText(ctx context.Context, system, user string) (string, error)
	// AnalyzeImage sends a prompt plus an inline image and forces JSON output.
	AnalyzeImage(ctx context.Context, prompt string, image []byte, mimeType string) (string, error)
}
