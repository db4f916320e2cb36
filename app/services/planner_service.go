package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/risewynn/qellum/app/pricing"
	"github.com/risewynn/qellum/config"
	"github.com/risewynn/qellum/pkg/http"
	"github.com/risewynn/qellum/pkg/logger"
	"github.com/risewynn/qellum/pkg/metrics"
)

// PlanRequest is the normalized preference payload for an AI plan.
type PlanRequest struct {
	Brief  string `json:"brief"  validate:"nullable,max=2000"`
	Days   int    `json:"days"   validate:"required,gte=1,lte=7"`
	Sex    string `json:"sex,omitempty"    validate:"nullable,in=male,female"`
	Age    int    `json:"age,omitempty"    validate:"nullable,between=1,120"`
	Height int    `json:"height,omitempty" validate:"nullable,between=50,260"`
	Weight int    `json:"weight,omitempty" validate:"nullable,between=20,400"`

	pricing.PlanOptions
}

// Quote returns the deterministic token cost of this request.
func (r PlanRequest) Quote() int64 {
	return pricing.QuoteAIPlan(r.Days, r.PlanOptions)
}

// Summary is the short human-readable order description stored on the
// meal plan row.
func (r PlanRequest) Summary() string {
	parts := []string{fmt.Sprintf("%d-day AI meal plan", r.Days)}
	if r.DietType != "" {
		parts = append(parts, r.DietType)
	}
	if r.MealStructure != "" {
		parts = append(parts, r.MealStructure)
	}
	return strings.Join(parts, ", ")
}

// PlannerService calls the upstream model provider to generate plan
// content. It holds no state between calls; a failed generation must
// never cost the user tokens, so callers generate before they charge.
type PlannerService struct{}

func NewPlannerService() *PlannerService {
	return &PlannerService{}
}

// Provider wire format (Gemini generateContent).
type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Generate produces one markdown-formatted meal plan for the request.
// Any provider failure or malformed payload maps to ErrGenerationFailed.
func (s *PlannerService) Generate(req PlanRequest) (string, error) {
	base := config.PlannerURL()
	key := config.PlannerKey()
	if base == "" || key == "" {
		return "", fmt.Errorf("%w: planner provider not configured", ErrGenerationFailed)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		strings.TrimRight(base, "/"), config.PlannerModel(), key)

	start := time.Now()
	resp, err := http.Post(url).
		Body(generateRequest{
			Contents: []content{{Parts: []part{{Text: buildPrompt(req)}}}},
		}).
		Timeout(60 * time.Second).
		Retry(2, time.Second).
		Send()
	if err != nil {
		metrics.ObservePlanGeneration("failed", start)
		logger.Error("planner: provider call failed", "error", err)
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	if err := resp.Throw(); err != nil {
		metrics.ObservePlanGeneration("failed", start)
		logger.Error("planner: provider returned error", "status", resp.StatusCode)
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	var out generateResponse
	if err := resp.JSON(&out); err != nil {
		metrics.ObservePlanGeneration("failed", start)
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	text := extractText(out)
	if strings.TrimSpace(text) == "" {
		metrics.ObservePlanGeneration("failed", start)
		return "", fmt.Errorf("%w: empty plan returned", ErrGenerationFailed)
	}

	metrics.ObservePlanGeneration("success", start)
	return text, nil
}

func extractText(out generateResponse) string {
	var b strings.Builder
	for _, c := range out.Candidates {
		for _, p := range c.Content.Parts {
			b.WriteString(p.Text)
		}
		break // first candidate only
	}
	return b.String()
}

// buildPrompt renders the request into the instruction the provider
// receives. Output must be pure markdown so it can be stored and
// rendered as-is.
func buildPrompt(req PlanRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a professional nutritionist. Create a %d-day meal plan.\n", req.Days)
	b.WriteString("Respond with the plan in markdown only, no preamble.\n\n")

	if req.Brief != "" {
		fmt.Fprintf(&b, "Client brief: %s\n", req.Brief)
	}
	if req.Sex != "" {
		fmt.Fprintf(&b, "Sex: %s\n", req.Sex)
	}
	if req.Age > 0 {
		fmt.Fprintf(&b, "Age: %d\n", req.Age)
	}
	if req.Height > 0 {
		fmt.Fprintf(&b, "Height: %d cm\n", req.Height)
	}
	if req.Weight > 0 {
		fmt.Fprintf(&b, "Weight: %d kg\n", req.Weight)
	}
	if req.ActivityLevel != "" {
		fmt.Fprintf(&b, "Activity level: %s\n", req.ActivityLevel)
	}
	if req.CalorieMethod != "" {
		fmt.Fprintf(&b, "Calorie calculation method: %s\n", req.CalorieMethod)
	}
	if req.ProteinTarget != "" {
		fmt.Fprintf(&b, "Protein target: %s\n", req.ProteinTarget)
	}
	if req.MealStructure != "" {
		fmt.Fprintf(&b, "Meal structure: %s\n", req.MealStructure)
	}
	if req.DietType != "" {
		fmt.Fprintf(&b, "Diet type: %s\n", req.DietType)
	}

	return b.String()
}
