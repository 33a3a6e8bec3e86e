package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"

	"github.com/doffpett/evhenter/internal/entity"
)

const (
	maxPageContentChars = 8000
	fetchTimeout        = 15 * time.Second
)

var (
	scriptRe     = regexp.MustCompile(`(?is)<script\b.*?</script>`)
	styleRe      = regexp.MustCompile(`(?is)<style\b.*?</style>`)
	tagRe        = regexp.MustCompile(`<[^>]+>`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

const extractionPrompt = `You are an expert at extracting event information from web pages.

Parse the following event page content and extract structured information in Norwegian.

URL: %s

Content:
%s

Respond with a single JSON object with these keys: title, description, eventType,
venueName, venueAddress, city, startDate, endDate, isFree, priceMin, priceMax,
organizerName, organizerUrl, ticketUrl, capacity. Omit keys you cannot determine.
Dates must be ISO 8601 with timezone (Europe/Oslo). Event types must be one of:
konsert, workshop, festival, teater, sport, mat-drikke, kunst, nettverking,
marked, konferanse. All text must be in Norwegian.`

type parserService struct {
	client     *openai.Client
	httpClient *http.Client
	model      string
	imageModel string
}

// NewParserService builds the AI extraction collaborator. An empty API key
// leaves the client nil; every call then fails with ErrAIUnavailable.
func NewParserService(apiKey, model, imageModel string) ParserService {
	var client *openai.Client
	if apiKey != "" {
		client = openai.NewClient(apiKey)
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	if imageModel == "" {
		imageModel = openai.CreateImageModelDallE3
	}
	return &parserService{
		client:     client,
		httpClient: &http.Client{Timeout: fetchTimeout},
		model:      model,
		imageModel: imageModel,
	}
}

func (s *parserService) ParseEventFromURL(ctx context.Context, url string) (*EventDraft, error) {
	if s.client == nil {
		return nil, entity.ErrAIUnavailable
	}

	content, err := s.fetchPageText(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch event page: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"url":            url,
		"content_length": len(content),
	}).Info("parsing event page")

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(extractionPrompt, url, content),
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("ai extraction failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("ai extraction returned no choices")
	}

	var draft EventDraft
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &draft); err != nil {
		return nil, fmt.Errorf("failed to decode extracted event: %w", err)
	}
	if draft.Title == "" {
		return nil, fmt.Errorf("ai extraction produced no title")
	}

	return &draft, nil
}

// fetchPageText downloads a page and reduces it to plain text bounded at
// maxPageContentChars to stay inside model token limits.
func (s *parserService) fetchPageText(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}

	text := scriptRe.ReplaceAllString(string(body), " ")
	text = styleRe.ReplaceAllString(text, " ")
	text = tagRe.ReplaceAllString(text, " ")
	text = strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))

	if len(text) > maxPageContentChars {
		text = text[:maxPageContentChars]
	}

	return text, nil
}

func (s *parserService) GenerateEventImage(ctx context.Context, req *GenerateImageRequest) (string, error) {
	if s.client == nil {
		return "", entity.ErrAIUnavailable
	}

	prompt := fmt.Sprintf(`Create a vibrant, modern illustration for an event poster.

Event: %s
Type: %s
Location: %s

Style: Flat design, colorful, friendly, modern
Mood: Inviting and exciting
Elements: Abstract shapes representing %s theme
No text, no people, just abstract artistic representation.`,
		req.Title, req.EventType, req.City, req.EventType)

	resp, err := s.client.CreateImage(ctx, openai.ImageRequest{
		Model:  s.imageModel,
		Prompt: prompt,
		N:      1,
		Size:   openai.CreateImageSize1024x1024,
	})
	if err != nil {
		if strings.Contains(err.Error(), "content_policy") {
			return "", entity.ErrContentPolicy
		}
		return "", fmt.Errorf("image generation failed: %w", err)
	}
	if len(resp.Data) == 0 {
		return "", fmt.Errorf("image generation returned no data")
	}

	return resp.Data[0].URL, nil
}
