package telegram

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"macrolog/internal/app"
	"macrolog/internal/config"
	"macrolog/internal/food"
	"macrolog/internal/nutrition"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bot wraps the Telegram API around the tracker. Free text is treated as a
// food log; commands cover the rest.
type Bot struct {
	api     *tgbotapi.BotAPI
	tracker *app.Tracker
	cfg     *config.Config
}

// NewBot initializes the Telegram Bot and sets the Webhook.
func NewBot(cfg *config.Config, tracker *app.Tracker) (*Bot, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}

	log.Printf("Authorized on account %s", bot.Self.UserName)

	wh, _ := tgbotapi.NewWebhook(cfg.TelegramWebhookURL)
	resp, err := bot.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", cfg.TelegramWebhookURL, err)
	}
	log.Printf("Webhook set response: %s", resp.Description)

	return &Bot{api: bot, tracker: tracker, cfg: cfg}, nil
}

// RegisterHandlers registers the webhook handler with the default HTTP mux.
func (b *Bot) RegisterHandlers() {
	http.HandleFunc("/webhook", b.handleWebhook)
	http.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := b.api.HandleUpdate(r)
	if err != nil {
		log.Printf("Error parsing update: %v", err)
		return
	}

	if update.Message == nil {
		return
	}

	isAllowed := false
	for _, id := range b.cfg.TelegramAllowUserIDs {
		if update.Message.From.ID == id {
			isAllowed = true
			break
		}
	}

	if !isAllowed {
		log.Printf("⚠️ Unauthorized access attempt from UserID: %d (@%s)", update.Message.From.ID, update.Message.From.UserName)
		return
	}

	go b.processMessage(update.Message)
}

func (b *Bot) processMessage(msg *tgbotapi.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	text := strings.TrimSpace(msg.Text)

	switch {
	case text == "/start" || text == "/help":
		b.reply(msg.Chat.ID, helpText)
	case text == "/today":
		b.handleToday(ctx, msg.Chat.ID)
	case text == "/targets":
		b.handleTargets(ctx, msg.Chat.ID)
	case text == "/project":
		b.handleProject(ctx, msg.Chat.ID)
	case strings.HasPrefix(text, "/weight"):
		b.handleWeight(ctx, msg.Chat.ID, strings.TrimSpace(strings.TrimPrefix(text, "/weight")))
	case strings.HasPrefix(text, "/goal"):
		b.handleGoal(ctx, msg.Chat.ID, strings.TrimSpace(strings.TrimPrefix(text, "/goal")))
	case strings.HasPrefix(text, "/"):
		b.reply(msg.Chat.ID, "Unknown command. "+helpText)
	default:
		// Free text defaults to logging food.
		b.handleLog(ctx, msg.Chat.ID, text)
	}
}

const helpText = "Send me what you ate (e.g. `2 eggs and 1 cup rice`) and I'll log it.\n\n" +
	"*Commands*\n" +
	"/today — today's totals and suggestions\n" +
	"/targets — your daily macro targets\n" +
	"/weight `<lbs>` — log today's weight\n" +
	"/goal `<YYYY-MM-DD>` — plan a rate to hit your goal by a date\n" +
	"/project — project your weight to year end"

func today() string {
	return time.Now().UTC().Format("2006-01-02")
}

func (b *Bot) handleLog(ctx context.Context, chatID int64, text string) {
	results, err := b.tracker.LogFreeText(ctx, today(), text, food.MealSnack)
	if err != nil {
		b.replyError(chatID, "Error logging food", err)
		return
	}

	var sb strings.Builder
	for _, r := range results {
		if r.Logged != nil {
			sb.WriteString(fmt.Sprintf("✅ Logged *%s* ×%s\n", r.Food.Name, trimFloat(r.Logged.Servings)))
			continue
		}
		if len(r.Candidates) == 0 {
			sb.WriteString(fmt.Sprintf("❓ No match for *%s* — add it to your foods first\n", r.Entry.FoodName))
			continue
		}
		sb.WriteString(fmt.Sprintf("🤔 Not sure about *%s*, did you mean:\n", r.Entry.FoodName))
		for _, c := range r.Candidates {
			sb.WriteString(fmt.Sprintf("  • %s (%.0f%%)\n", c.Food.Name, c.Score*100))
		}
	}
	b.reply(chatID, sb.String())
}

func (b *Bot) handleToday(ctx context.Context, chatID int64) {
	summary, err := b.tracker.Summary(ctx, today())
	if err != nil {
		b.replyError(chatID, "Error building summary", err)
		return
	}
	b.reply(chatID, formatSummaryMarkdown(summary))
}

func (b *Bot) handleTargets(ctx context.Context, chatID int64) {
	targets, err := b.tracker.Targets(ctx)
	if err != nil {
		b.replyError(chatID, "Error computing targets", err)
		return
	}

	var sb strings.Builder
	sb.WriteString("🎯 *Daily Targets*\n\n")
	sb.WriteString(fmt.Sprintf("• Calories: %d kcal\n", targets.Calories))
	sb.WriteString(fmt.Sprintf("• Protein: %d g\n", targets.ProteinG))
	sb.WriteString(fmt.Sprintf("• Carbs: %d g\n", targets.CarbsG))
	sb.WriteString(fmt.Sprintf("• Fat: %d g\n", targets.FatG))
	sb.WriteString(fmt.Sprintf("\nBMR %d kcal · TDEE %d kcal · deficit %d kcal/day", targets.BMR, targets.TDEE, targets.Deficit))
	b.reply(chatID, sb.String())
}

func (b *Bot) handleWeight(ctx context.Context, chatID int64, arg string) {
	if arg == "" {
		b.reply(chatID, "Usage: /weight `<lbs>`")
		return
	}
	lbs, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		b.reply(chatID, fmt.Sprintf("Couldn't read a weight from %q", arg))
		return
	}

	if err := b.tracker.LogWeight(ctx, today(), lbs); err != nil {
		b.replyError(chatID, "Error logging weight", err)
		return
	}
	b.reply(chatID, fmt.Sprintf("⚖️ Logged *%s lbs* for today.", trimFloat(lbs)))
}

func (b *Bot) handleGoal(ctx context.Context, chatID int64, arg string) {
	if arg == "" {
		b.reply(chatID, "Usage: /goal `<YYYY-MM-DD>`")
		return
	}
	targetDate, err := time.Parse("2006-01-02", arg)
	if err != nil {
		b.reply(chatID, fmt.Sprintf("Couldn't read a date from %q (use YYYY-MM-DD)", arg))
		return
	}

	plan, err := b.tracker.PlanGoalByDate(ctx, targetDate, time.Now().UTC())
	if err != nil {
		b.replyError(chatID, "Error planning goal", err)
		return
	}

	switch plan.Result.Status {
	case nutrition.RateAlreadyAtGoal:
		b.reply(chatID, "🎉 You're already at (or below) your goal weight!")
	case nutrition.RateDateInPast:
		b.reply(chatID, "That date is in the past — pick a future date.")
	default:
		text := fmt.Sprintf("To hit your goal by *%s* you need to lose *%.1f lbs/week*.", arg, plan.Result.LbsPerWeek)
		switch plan.Pace {
		case nutrition.PaceAggressive:
			text += "\n⚠️ That pace is aggressive (>2 lbs/week). Consider a later date."
		case nutrition.PaceChallenging:
			text += "\n💪 That's a challenging pace, but doable."
		}
		text += "\nSaved as your active loss rate."
		b.reply(chatID, text)
	}
}

func (b *Bot) handleProject(ctx context.Context, chatID int64) {
	now := time.Now().UTC()
	projection, err := b.tracker.ProjectWeight(ctx, now, time.Time{})
	if err != nil {
		b.replyError(chatID, "Error projecting weight", err)
		return
	}

	var sb strings.Builder
	sb.WriteString("📉 *Weight Projection*\n\n")
	for _, p := range projection.Points {
		sb.WriteString(fmt.Sprintf("• %s: %.1f lbs\n", p.Date.Format("Jan 2"), p.WeightLbs))
	}
	sb.WriteString(fmt.Sprintf("\nProjected loss by year end: *%.1f lbs*", projection.TotalLoss))
	b.reply(chatID, sb.String())
}

func formatSummaryMarkdown(s *app.DaySummary) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📋 *Today* (%s)\n\n", s.Date))

	if len(s.Entries) == 0 {
		sb.WriteString("_Nothing logged yet_\n")
	}
	for _, e := range s.Entries {
		name := "(deleted food)"
		if e.Item != nil {
			name = e.Item.Name
		}
		sb.WriteString(fmt.Sprintf("• %s ×%s\n", name, trimFloat(e.Entry.Servings)))
	}

	sb.WriteString(fmt.Sprintf("\n*Consumed*: %.0f kcal · P %.0fg · C %.0fg · F %.0fg\n",
		s.Consumed.Calories, s.Consumed.Protein, s.Consumed.Carbs, s.Consumed.Fat))
	sb.WriteString(fmt.Sprintf("*Remaining*: %.0f kcal · P %.0fg · C %.0fg · F %.0fg\n",
		s.Remaining.Calories, s.Remaining.Protein, s.Remaining.Carbs, s.Remaining.Fat))

	if len(s.Suggestions) > 0 {
		sb.WriteString("\n💡 *Suggestions*\n")
		for _, sug := range s.Suggestions {
			sb.WriteString(fmt.Sprintf("• %s (%.0f kcal)", sug.Food.Name, sug.Food.Calories))
			if sug.Reason != "" {
				sb.WriteString(" — " + sug.Reason)
			}
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (b *Bot) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Failed to send message: %v", err)
	}
}

func (b *Bot) replyError(chatID int64, prefix string, err error) {
	log.Printf("%s: %v", prefix, err)
	safeErr := strings.ReplaceAll(err.Error(), "`", "'")
	b.reply(chatID, fmt.Sprintf("❌ *%s:*\n```\n%v\n```", prefix, safeErr))
}
