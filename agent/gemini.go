package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// DefaultGeminiModel is used when no model is configured
const DefaultGeminiModel = "gemini-2.0-flash"

const classifierInstruction = `You route requests for a campus administration assistant.
Pick exactly one operation from the list below for the user's request and extract its arguments.
Use "none" when no operation fits. Never invent argument values that the user did not give.

Operations:
%s`

// GeminiClassifier asks a Gemini model to pick the operation for a query
type GeminiClassifier struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

// NewGeminiClassifier creates a classifier backed by the Gemini API
func NewGeminiClassifier(ctx context.Context, apiKey, model string, logger *zap.Logger) (*GeminiClassifier, error) {
	if apiKey == "" {
		return nil, errors.New("Gemini API key is required")
	}

	if model == "" {
		model = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GeminiClassifier{
		client: client,
		model:  model,
		logger: logger,
	}, nil
}

// Classify sends the query with a response schema restricted to the offered operations
func (g *GeminiClassifier) Classify(ctx context.Context, query string, operations []OperationSpec) (Intent, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(describeOperations(operations), genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    responseSchema(operations),
		Temperature:       genai.Ptr[float32](0),
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(query), config)
	if err != nil {
		return Intent{}, fmt.Errorf("GenAI classification failed: %w", err)
	}

	text := result.Text()
	g.logger.Debug("classifier response", zap.String("model", g.model), zap.String("response", text))

	return parseIntent(text)
}

func describeOperations(operations []OperationSpec) string {
	var b strings.Builder
	for _, op := range operations {
		fmt.Fprintf(&b, "- %s: %s", op.Name, op.Description)
		if len(op.Args) > 0 {
			fmt.Fprintf(&b, " (arguments: %s)", strings.Join(op.Args, ", "))
		}
		b.WriteString("\n")
	}
	return fmt.Sprintf(classifierInstruction, b.String())
}

// responseSchema builds a flat object: "operation" plus every argument any
// operation accepts, all as strings
func responseSchema(operations []OperationSpec) *genai.Schema {
	names := []string{NoOperation}
	argSet := map[string]bool{}
	for _, op := range operations {
		names = append(names, op.Name)
		for _, arg := range op.Args {
			argSet[arg] = true
		}
	}

	properties := map[string]*genai.Schema{
		"operation": {Type: genai.TypeString, Enum: names},
	}

	args := make([]string, 0, len(argSet))
	for arg := range argSet {
		args = append(args, arg)
	}
	sort.Strings(args)
	for _, arg := range args {
		properties[arg] = &genai.Schema{Type: genai.TypeString}
	}

	return &genai.Schema{
		Type:             genai.TypeObject,
		Properties:       properties,
		Required:         []string{"operation"},
		PropertyOrdering: append([]string{"operation"}, args...),
	}
}

// parseIntent decodes the model's JSON answer
func parseIntent(text string) (Intent, error) {
	var fields map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &fields); err != nil {
		return Intent{}, fmt.Errorf("failed to decode classifier response: %w", err)
	}

	operation, _ := fields["operation"].(string)
	if operation == "" {
		return Intent{}, errors.New("classifier response has no operation")
	}
	delete(fields, "operation")

	intent := Intent{Operation: operation, Args: map[string]string{}}
	for key, value := range fields {
		switch v := value.(type) {
		case string:
			if v != "" {
				intent.Args[key] = v
			}
		case float64, bool:
			intent.Args[key] = fmt.Sprint(v)
		}
	}

	return intent, nil
}
