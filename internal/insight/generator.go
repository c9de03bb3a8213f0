package insight

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bowerhall/cadence/internal/llm"
	"github.com/bowerhall/cadence/internal/logger"
	"github.com/bowerhall/cadence/internal/store"
)

const defaultMaxRecommendations = 3

// memoryLimit caps how many recalled texts feed a prompt
const memoryLimit = 3

const dailyIntent = "recent struggles and motivation"
const monthlyIntent = "previous productivity patterns and improvements"

const dailyPrompt = `You are a calm, supportive personal coach.

What you remember about this user:
%s
User context (last few days):
- average mood: %.2f
- average sleep hours: %.2f
- average work hours: %.2f
- average study hours: %.2f
- days logged recently: %d
- missed yesterday's goal: %t

Rules:
- Never ask questions
- No cliches
- Be specific to the user's data
- Never give generic advice
- The message must be uplifting and motivating
- Never judge or criticize
- Never ask why
- No toxic positivity
- No medical advice
- Max 2 lines
- Be practical and human`

const monthlyPrompt = `You are a behavioral analyst AI.

What you remember about this user:
%s
User monthly timeline for %s:
%s

Tasks:
1. Identify behavior patterns across work, study, sleep, mood, and goals.
2. Explain likely root causes for strong or weak patterns.
3. Suggest %d realistic, actionable improvements for next month.
4. Highlight streaks or irregularities.

Rules:
- Be concise but thorough
- Avoid generic advice
- Base your analysis strictly on the data
- Be practical and human
- Do not wrap the output in markdown fences
- Do not emit fractions like 1/2, write decimals instead
- Return the output strictly as JSON with this structure:

{
    "patterns": "...",
    "root_causes": "...",
    "recommendations": ["...", "...", "..."],
    "notable": "..."
}`

// Generator produces the two artifact types: free-text daily motivations and
// structured monthly reviews. The model client and memory store are injected;
// their lifecycles belong to the process.
type Generator struct {
	model   llm.LLM
	memory  *store.Store
	maxRecs int
}

func NewGenerator(model llm.LLM, memory *store.Store, maxRecs int) *Generator {
	if maxRecs <= 0 {
		maxRecs = defaultMaxRecommendations
	}

	return &Generator{
		model:   model,
		memory:  memory,
		maxRecs: maxRecs,
	}
}

// DailyMotivation generates a short motivational message from the user's
// recent context. No fallback here: the job layer decides skip vs. retry, so
// a model failure propagates.
func (g *Generator) DailyMotivation(ctx context.Context, userID int64, rc RecentContext) (string, error) {
	memories := g.recall(ctx, userID, dailyIntent)

	prompt := fmt.Sprintf(dailyPrompt, memories,
		rc.AvgMood, rc.AvgSleepHours, rc.AvgWorkHours, rc.AvgStudyHours,
		rc.ConsistencyDays, rc.MissedYesterday)

	response, err := g.model.Chat(ctx, "", []llm.Message{
		{Role: "user", Content: prompt},
	})
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(response), nil
}

// MonthlyReview generates a structured review for one month of activity.
// It never fails: any error in generation or normalization yields the
// fallback record.
func (g *Generator) MonthlyReview(ctx context.Context, userID int64, month string, timeline []TimelineDay) ReviewRecord {
	memories := g.recall(ctx, userID, monthlyIntent)

	timelineJSON, err := json.Marshal(timeline)
	if err != nil {
		logger.Error("failed to encode timeline", "user", userID, "error", err)
		return fallbackReview()
	}

	prompt := fmt.Sprintf(monthlyPrompt, memories, month, timelineJSON, g.maxRecs)

	raw, err := g.model.Chat(ctx, "", []llm.Message{
		{Role: "user", Content: prompt},
	})
	if err != nil {
		logger.Error("monthly review generation failed", "user", userID, "error", err)
		return fallbackReview()
	}

	parsed, ok := parseReview(raw)
	if !ok {
		logger.Warn("monthly review output unusable, using fallback", "user", userID)
		return fallbackReview()
	}

	return enforceSchema(parsed, g.maxRecs)
}

// recall fetches semantic memory for a prompt. Best-effort: failures leave
// the prompt without longitudinal context rather than failing the artifact.
func (g *Generator) recall(ctx context.Context, userID int64, intent string) string {
	memories, err := g.memory.Recall(ctx, userID, intent, memoryLimit)
	if err != nil {
		logger.Warn("memory recall failed", "user", userID, "error", err)
		memories = nil
	}

	if len(memories) == 0 {
		return "(no stored memories yet)\n"
	}

	var b strings.Builder
	for _, m := range memories {
		fmt.Fprintf(&b, "- %s\n", m)
	}
	return b.String()
}

func fallbackReview() ReviewRecord {
	return ReviewRecord{
		Patterns:        "Insufficient data to detect strong patterns.",
		RootCauses:      "Monthly data volume or consistency was too low.",
		Recommendations: []string{"Continue tracking activities consistently next month."},
		Notable:         "",
	}
}

// Summary flattens a review into one human-readable line, used as the
// back-fill content for the memory store.
func Summary(r ReviewRecord) string {
	return fmt.Sprintf("Patterns: %s. Root causes: %s. Recommendations: %s. Notable: %s.",
		r.Patterns, r.RootCauses, strings.Join(r.Recommendations, "; "), r.Notable)
}
