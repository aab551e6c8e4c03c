package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"resolveia-be/internal/dto"
	"resolveia-be/internal/pkg/logger"
	"resolveia-be/internal/repository/memory"
	"resolveia-be/internal/service"
	"resolveia-be/pkg/llm/factory"
	"resolveia-be/pkg/store"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bot is the long-polling Telegram front-end. Command handlers mutate
// the per-chat session; voice notes are enqueued for the consumer so
// the polling loop never blocks on a model call.
type Bot struct {
	api       *tgbotapi.BotAPI
	publisher service.IPublisherService
	sessions  *memory.SessionRepository
	backends  *factory.Set
	logger    logger.ILogger
}

func NewBot(
	token string,
	publisher service.IPublisherService,
	sessions *memory.SessionRepository,
	backends *factory.Set,
	sysLogger logger.ILogger,
) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram init: %w", err)
	}
	return &Bot{
		api:       api,
		publisher: publisher,
		sessions:  sessions,
		backends:  backends,
		logger:    sysLogger,
	}, nil
}

// Run polls for updates until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)

	b.logger.Info("Telegram", "Polling started", map[string]interface{}{"bot": b.api.Self.UserName})

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.Message == nil {
		return
	}
	msg := update.Message

	switch {
	case msg.IsCommand():
		b.handleCommand(msg)
	case msg.Voice != nil:
		b.handleVoice(ctx, msg)
	default:
		b.reply(msg.Chat.ID, "Send a voice message with the exam item, or /start for the command list.")
	}
}

func (b *Bot) handleCommand(msg *tgbotapi.Message) {
	chatKey := strconv.FormatInt(msg.Chat.ID, 10)
	sess := b.sessions.GetOrCreate(chatKey)

	switch msg.Command() {
	case "start":
		b.reply(msg.Chat.ID,
			"Resolve.ia online!\n\n"+
				"/fase1 - judgement mode (single verdict)\n"+
				"/fase2 - discursive mode (dictated essay)\n"+
				"/prioridade gemini|groq - backend attempt order\n"+
				"/limpar - clear the supporting text\n"+
				"/status - current settings\n\n"+
				"Send a voice message to begin.")

	case "fase1":
		sess.Phase = store.PhaseJudgement
		b.sessions.Save(sess)
		b.logger.Info("Telegram", "Phase changed", map[string]interface{}{"chat_id": chatKey, "phase": "1"})
		b.reply(msg.Chat.ID, "Phase 1 (quick judgement) enabled.")

	case "fase2":
		sess.Phase = store.PhaseDiscursive
		b.sessions.Save(sess)
		b.logger.Info("Telegram", "Phase changed", map[string]interface{}{"chat_id": chatKey, "phase": "2"})
		b.reply(msg.Chat.ID, "Phase 2 (discursive mode) enabled.")

	case "prioridade":
		switch msg.CommandArguments() {
		case "gemini":
			sess.Priority = store.PriorityPrimary
		case "groq":
			sess.Priority = store.PrioritySecondary
		default:
			b.reply(msg.Chat.ID, "Usage: /prioridade gemini|groq")
			return
		}
		b.sessions.Save(sess)
		b.reply(msg.Chat.ID, "Priority updated: "+msg.CommandArguments()+" first.")

	case "limpar":
		sess.SupportingText = ""
		b.sessions.Save(sess)
		b.reply(msg.Chat.ID, "Supporting text cleared.")

	case "status":
		b.reply(msg.Chat.ID, b.statusReport(sess))

	default:
		b.reply(msg.Chat.ID, "Unknown command. Send /start for the list.")
	}
}

func (b *Bot) statusReport(sess *store.Session) string {
	engines := ""
	if b.backends.Primary.Available {
		engines += "Gemini "
	}
	if b.backends.Secondary.Available {
		engines += "Groq"
	}
	if engines == "" {
		engines = "none configured"
	}

	supporting := "empty"
	if sess.SupportingText != "" {
		supporting = fmt.Sprintf("%d chars stored", len(sess.SupportingText))
	}

	return fmt.Sprintf(
		"Resolve.ia status\n"+
			"Phase: %s\n"+
			"Priority: %s first\n"+
			"Engines: %s\n"+
			"Supporting text: %s\n"+
			"Last query: %s",
		sess.Phase, sess.Priority, engines, supporting, sess.LastQuery)
}

func (b *Bot) handleVoice(ctx context.Context, msg *tgbotapi.Message) {
	b.logger.Info("Telegram", "Voice message received", map[string]interface{}{
		"chat_id": msg.Chat.ID,
		"from":    msg.From.FirstName,
	})
	b.reply(msg.Chat.ID, "Processing your audio...")

	task := dto.VoiceTaskMessage{
		ChatID:    msg.Chat.ID,
		MessageID: msg.MessageID,
		FileID:    msg.Voice.FileID,
		Sender:    msg.From.FirstName,
	}
	if err := b.publisher.PublishVoiceTask(ctx, task); err != nil {
		b.logger.Error("Telegram", "Failed to enqueue voice task", map[string]interface{}{"error": err.Error()})
		b.reply(msg.Chat.ID, "Internal error: could not queue your audio.")
	}
}

func (b *Bot) reply(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		b.logger.Warn("Telegram", "Failed to send message", map[string]interface{}{"error": err.Error()})
	}
}

// --- service.VoiceFileFetcher / service.Replier implementations ---

// Download fetches the Telegram voice file into the temp directory and
// returns the local .ogg path.
func (b *Bot) Download(ctx context.Context, fileID string) (string, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return "", fmt.Errorf("get file: %w", err)
	}

	url := file.Link(b.api.Token)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return "", err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download file: status %d", resp.StatusCode)
	}

	localPath := filepath.Join(os.TempDir(), fmt.Sprintf("voice_%d.ogg", time.Now().UnixNano()))
	out, err := os.Create(localPath)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		os.Remove(localPath)
		return "", err
	}
	return localPath, nil
}

func (b *Bot) SendText(chatID int64, text string) error {
	_, err := b.api.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

func (b *Bot) SendVoice(chatID int64, audio []byte) error {
	voice := tgbotapi.NewVoice(chatID, tgbotapi.FileBytes{Name: "answer.mp3", Bytes: audio})
	_, err := b.api.Send(voice)
	return err
}
