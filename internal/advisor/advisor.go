// Package advisor turns computed portfolio figures into a short written
// assessment using Gemini. It consumes valuation and projection output
// only; no raw holdings or account identifiers leave the process.
package advisor

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/ringgitlab/firetrack/internal/portfolio"
)

const model = "gemini-2.5-flash"

const systemInstruction = `You are a cautious personal-finance assistant for a
Malaysian FIRE planner. You receive already-computed portfolio figures in MYR.
Summarize the current position, progress toward the target, and anything the
projection implies about the plan. Be concrete, under 200 words, no disclaimers
about being an AI, no product recommendations.`

// Advisor generates narrative advisories from computed results.
type Advisor struct {
	client *genai.Client
}

// New creates an Advisor. The genai client reads its API key from the
// environment (GEMINI_API_KEY).
func New(ctx context.Context) (*Advisor, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("initializing Gemini client: %w", err)
	}
	return &Advisor{client: client}, nil
}

// Advise produces a free-text assessment of the current portfolio and
// projection.
func (a *Advisor) Advise(ctx context.Context, view portfolio.View, proj portfolio.ProjectionView) (string, error) {
	chat, err := a.client.Chats.Create(ctx, model, &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemInstruction}}},
	}, nil)
	if err != nil {
		return "", fmt.Errorf("creating chat: %w", err)
	}

	content, err := chat.Send(ctx, &genai.Part{Text: buildPrompt(view, proj)})
	if err != nil {
		return "", fmt.Errorf("generating advisory: %w", err)
	}
	if len(content.Candidates) == 0 || content.Candidates[0].Content == nil ||
		len(content.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty advisory response")
	}
	return content.Candidates[0].Content.Parts[0].Text, nil
}

// buildPrompt flattens the computed figures into plain text for the model.
func buildPrompt(view portfolio.View, proj portfolio.ProjectionView) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Net worth: RM %s\n", view.Totals.NetWorth.StringFixed(0))
	fmt.Fprintf(&b, "Investable: RM %s (cost RM %s, P/L %s%%)\n",
		view.Totals.Investable.StringFixed(0),
		view.Totals.InvestableCost.StringFixed(0),
		view.Totals.ProfitPct.StringFixed(1))
	fmt.Fprintf(&b, "EPF: RM %s\n", view.Totals.EPF.StringFixed(0))
	fmt.Fprintf(&b, "Target portfolio: RM %s\n", proj.Target.StringFixed(0))

	if proj.TotalGoal.Reached {
		fmt.Fprintf(&b, "Projected to reach the target at age %d (%d).\n",
			proj.TotalGoal.Age, proj.TotalGoal.Year)
	} else {
		b.WriteString("The target is not reached within the projection horizon.\n")
	}
	if proj.LiquidGoal.Reached {
		fmt.Fprintf(&b, "Liquid assets alone reach the target at age %d.\n", proj.LiquidGoal.Age)
	}

	for _, m := range proj.Milestones {
		if m.Achieved {
			fmt.Fprintf(&b, "Milestone RM %s: already achieved.\n", m.Threshold.StringFixed(0))
		} else {
			fmt.Fprintf(&b, "Milestone RM %s: projected at age %d.\n", m.Threshold.StringFixed(0), m.Age)
		}
	}

	return b.String()
}
