package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"horizon_backend/internal/config"
	"horizon_backend/internal/model"
	"horizon_backend/pkg/discord"
	"horizon_backend/pkg/logger"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const (
	colorNewApplication = 0x00F2EA
	colorAccepted       = 0x22C55E
	colorRefused        = 0xEF4444
)

// NotifyHandlers sends the Discord messages the site owes: a channel post
// for every new application, and a DM to the applicant on accept/refuse.
type NotifyHandlers struct {
	Discord *discord.Client
	Cfg     config.DiscordConfig
}

func NewNotifyHandlers(client *discord.Client, cfg config.DiscordConfig) *NotifyHandlers {
	return &NotifyHandlers{Discord: client, Cfg: cfg}
}

func (h *NotifyHandlers) HandleSubmissionNotify(ctx context.Context, t *asynq.Task) error {
	var payload SubmissionNotifyPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return err
	}

	fields := make([]discord.EmbedField, len(payload.Answers))
	for i, ans := range payload.Answers {
		value := ans.Answer
		if value == "" {
			value = "No answer provided."
		}
		fields[i] = discord.EmbedField{
			Name:  fmt.Sprintf("Question #%d: %s", i+1, ans.QuestionText),
			Value: fmt.Sprintf("```%s```", value),
		}
	}

	mention := ""
	if len(h.Cfg.AdminRoleIDs) > 0 {
		mention = fmt.Sprintf("<@&%s>", h.Cfg.AdminRoleIDs[0])
	}

	embed := discord.Embed{
		Title:     fmt.Sprintf("New Application Submitted: %s", payload.QuizTitle),
		Color:     colorNewApplication,
		Author:    &discord.EmbedAuthor{Name: payload.Username},
		Fields:    fields,
		Footer:    &discord.EmbedFooter{Text: fmt.Sprintf("Applicant ID: %s | Submission ID: %s", payload.UserID, payload.SubmissionID)},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	err := h.Discord.SendChannelMessage(ctx, h.Cfg.NotifyChannelID, mention, []discord.Embed{embed})
	if err != nil {
		logger.Log.Error("submission notification failed",
			zap.String("submissionId", payload.SubmissionID), zap.Error(err))
		return err
	}
	return nil
}

func (h *NotifyHandlers) HandleDecisionNotify(ctx context.Context, t *asynq.Task) error {
	var payload DecisionNotifyPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return err
	}

	color := colorRefused
	if payload.Status == model.StatusAccepted {
		color = colorAccepted
	}

	embed := discord.Embed{
		Title: "Your Application Status has been Updated",
		Color: color,
		Description: fmt.Sprintf("Hello %s, your application for **%s** has been **%s**.",
			payload.Username, payload.QuizTitle, strings.ToUpper(string(payload.Status))),
		Footer:    &discord.EmbedFooter{Text: fmt.Sprintf("Action by: %s", payload.AdminUsername)},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	err := h.Discord.SendDirectMessage(ctx, payload.UserID, []discord.Embed{embed})
	if err != nil {
		logger.Log.Error("decision notification failed",
			zap.String("submissionId", payload.SubmissionID), zap.Error(err))
		return err
	}
	return nil
}
