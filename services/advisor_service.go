package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/anjiri1684/omnilearn/models"
	"github.com/go-resty/resty/v2"
)

const (
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com"
	DefaultGeminiModel   = "gemini-2.5-flash"

	advisorTemperature = 0.7
	tutorTemperature   = 0.5

	AdvisorFallbackReply = "I'm currently having trouble connecting to the course database. Please try again in a moment."
	TutorFallbackReply   = "I am having trouble connecting to the course materials right now. Please try again."
)

var ErrEmptyReply = errors.New("model returned no text")

type ChatTurn struct {
	Role string `json:"role" validate:"required,oneof=user model"`
	Text string `json:"text" validate:"required"`
}

type ChatRequest struct {
	SystemInstruction string
	Temperature       float64
	History           []ChatTurn
	Message           string
}

// ChatModel is a hosted chat completion backend.
type ChatModel interface {
	Generate(ctx context.Context, req ChatRequest) (string, error)
}

type GeminiClient struct {
	client *resty.Client
	apiKey string
	model  string
}

func NewGeminiClient(baseURL, apiKey, model string) *GeminiClient {
	if baseURL == "" {
		baseURL = DefaultGeminiBaseURL
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(30*time.Second).
		SetHeader("Content-Type", "application/json")

	return &GeminiClient{client: client, apiKey: apiKey, model: model}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent `json:"systemInstruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
	GenerationConfig  struct {
		Temperature float64 `json:"temperature"`
	} `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func (g *GeminiClient) Generate(ctx context.Context, req ChatRequest) (string, error) {
	if g.apiKey == "" {
		return "", errors.New("gemini api key is not configured")
	}

	body := geminiRequest{}
	if req.SystemInstruction != "" {
		body.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: req.SystemInstruction}}}
	}
	for _, turn := range req.History {
		body.Contents = append(body.Contents, geminiContent{Role: turn.Role, Parts: []geminiPart{{Text: turn.Text}}})
	}
	body.Contents = append(body.Contents, geminiContent{Role: "user", Parts: []geminiPart{{Text: req.Message}}})
	body.GenerationConfig.Temperature = req.Temperature

	var out geminiResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetQueryParam("key", g.apiKey).
		SetBody(body).
		SetResult(&out).
		Post(fmt.Sprintf("/v1beta/models/%s:generateContent", g.model))
	if err != nil {
		return "", fmt.Errorf("gemini request: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("gemini returned %d: %s", resp.StatusCode(), resp.String())
	}

	var text strings.Builder
	for _, c := range out.Candidates {
		for _, p := range c.Content.Parts {
			text.WriteString(p.Text)
		}
		if text.Len() > 0 {
			break
		}
	}
	if text.Len() == 0 {
		return "", ErrEmptyReply
	}
	return text.String(), nil
}

// Advisor answers buyer questions. Backend failures never reach the caller;
// they degrade to a fixed apology.
type Advisor struct {
	model ChatModel
}

func NewAdvisor(model ChatModel) *Advisor {
	return &Advisor{model: model}
}

type catalogEntry struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Category string   `json:"category"`
	Level    string   `json:"level"`
	Tags     []string `json:"tags"`
	Price    int64    `json:"price"`
}

func AdvisorInstruction(courses []models.Course) string {
	entries := make([]catalogEntry, 0, len(courses))
	for _, c := range courses {
		entries = append(entries, catalogEntry{ID: c.ID, Title: c.Title, Category: c.Category, Level: c.Level, Tags: c.Tags, Price: c.Price})
	}
	catalog, _ := json.Marshal(entries)

	return fmt.Sprintf(`You are "Omni", the academic advisor for OmniLearn Academy.
Help prospective students pick the right course from this catalog and nothing else:
%s

All prices are in INR.

Rules:
1. Only recommend OmniLearn courses.
2. Be warm and persuasive, never dishonest.
3. Mention that courses are expert-led, project-based and come with lifetime access.
4. If we do not cover a topic, suggest the closest course we have or say new courses are coming.
5. Keep answers under 150 words.`, catalog)
}

func TutorInstruction(course models.Course) string {
	knowledge := course.AIContext
	if strings.TrimSpace(knowledge) == "" {
		knowledge = "No instructor notes were provided. Answer from general knowledge about the course title and description."
	}

	return fmt.Sprintf(`You are the AI tutor for the course %q.

Instructor notes:
%q

Course description:
%q

Rules:
1. Treat the instructor notes as the source of truth.
2. When the notes do not cover a question, answer from general knowledge and say so.
3. Be encouraging and polite.
4. Reply in the language the student writes in.`, course.Title, knowledge, course.Description)
}

func (a *Advisor) Advise(ctx context.Context, courses []models.Course, history []ChatTurn, message string) string {
	reply, err := a.model.Generate(ctx, ChatRequest{
		SystemInstruction: AdvisorInstruction(courses),
		Temperature:       advisorTemperature,
		History:           history,
		Message:           message,
	})
	if err != nil {
		log.Printf("🔥 Advisor chat failed: %v", err)
		return AdvisorFallbackReply
	}
	return reply
}

func (a *Advisor) Tutor(ctx context.Context, course models.Course, history []ChatTurn, message string) string {
	reply, err := a.model.Generate(ctx, ChatRequest{
		SystemInstruction: TutorInstruction(course),
		Temperature:       tutorTemperature,
		History:           history,
		Message:           message,
	})
	if err != nil {
		log.Printf("🔥 Tutor chat for course %s failed: %v", course.ID, err)
		return TutorFallbackReply
	}
	return reply
}
