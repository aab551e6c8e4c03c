package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"resolveia-be/internal/dto"
	"resolveia-be/internal/pkg/logger"
	"resolveia-be/internal/repository/memory"
	"resolveia-be/pkg/ai/router"
	"resolveia-be/pkg/audio"
	"resolveia-be/pkg/events"
	"resolveia-be/pkg/nats"
	"resolveia-be/pkg/speech"
	"resolveia-be/pkg/transcript"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// VoiceFileFetcher downloads a Telegram voice file to local disk.
type VoiceFileFetcher interface {
	Download(ctx context.Context, fileID string) (string, error)
}

// Replier sends the pipeline's output back to the chat.
type Replier interface {
	SendText(chatID int64, text string) error
	SendVoice(chatID int64, audio []byte) error
}

// IConsumerService drains the voice work queue. One task is one full
// request cycle: download, convert, transcribe, classify, answer.
type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub      *gochannel.GoChannel
	topicName   string
	fetcher     VoiceFileFetcher
	replier     Replier
	converter   *audio.Converter
	recognizer  speech.Recognizer
	synthesizer speech.Synthesizer
	cleaner     *transcript.Cleaner
	assistant   IAssistantService
	sessions    *memory.SessionRepository
	eventBus    *nats.Publisher
	language    string
	logger      logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	fetcher VoiceFileFetcher,
	replier Replier,
	converter *audio.Converter,
	recognizer speech.Recognizer,
	synthesizer speech.Synthesizer,
	cleaner *transcript.Cleaner,
	assistant IAssistantService,
	sessions *memory.SessionRepository,
	eventBus *nats.Publisher,
	language string,
	sysLogger logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:      pubSub,
		topicName:   topicName,
		fetcher:     fetcher,
		replier:     replier,
		converter:   converter,
		recognizer:  recognizer,
		synthesizer: synthesizer,
		cleaner:     cleaner,
		assistant:   assistant,
		sessions:    sessions,
		eventBus:    eventBus,
		language:    language,
		logger:      sysLogger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	// One task must never take the poller goroutine down, whatever a
	// collaborator does. Ack runs last so even a panicking task is
	// consumed exactly once.
	defer msg.Ack()
	defer func() {
		if r := recover(); r != nil {
			cs.logger.Error("Consumer", "Voice cycle panicked", map[string]interface{}{"panic": fmt.Sprint(r)})
		}
	}()

	var task dto.VoiceTaskMessage
	if err := json.Unmarshal(msg.Payload, &task); err != nil {
		cs.logger.Error("Consumer", "Failed to unmarshal voice task", map[string]interface{}{"error": err.Error()})
		return
	}

	started := time.Now()
	if err := cs.handleTask(ctx, task, started); err != nil {
		cs.logger.Error("Consumer", "Voice cycle failed", map[string]interface{}{
			"chat_id": task.ChatID,
			"error":   err.Error(),
		})
		if cs.replier != nil {
			_ = cs.replier.SendText(task.ChatID, "Internal error: "+err.Error())
		}
		_ = cs.eventBus.Publish(ctx, events.NewCycleFailed(strconv.FormatInt(task.ChatID, 10), err.Error()))
	}
}

func (cs *consumerService) handleTask(ctx context.Context, task dto.VoiceTaskMessage, started time.Time) error {
	oggPath, err := cs.fetcher.Download(ctx, task.FileID)
	if err != nil {
		return fmt.Errorf("download voice file: %w", err)
	}
	defer os.Remove(oggPath)

	wavPath, err := cs.converter.ToWav(oggPath)
	if err != nil {
		return fmt.Errorf("convert audio: %w", err)
	}
	defer os.Remove(wavPath)

	rawText, err := cs.recognizer.Recognize(ctx, wavPath, cs.language)
	if err != nil {
		return fmt.Errorf("speech recognition: %w", err)
	}

	text := cs.cleaner.Clean(ctx, rawText)
	cs.logger.Info("Consumer", "Transcription ready", map[string]interface{}{
		"chat_id": task.ChatID,
		"text":    text,
	})

	// Echo the transcript so the user can audit what was understood.
	_ = cs.replier.SendText(task.ChatID, "Transcript: "+text)

	chatKey := strconv.FormatInt(task.ChatID, 10)
	sess := cs.sessions.GetOrCreate(chatKey)

	parsed := router.Parse(text)
	switch parsed.Mode {
	case router.ModeSaveContext:
		if parsed.IsEmpty() {
			return cs.replier.SendText(task.ChatID, "Dictate the passage right after the save command.")
		}
		sess.SupportingText = parsed.CleanPrompt
		cs.sessions.Save(sess)
		_ = cs.eventBus.Publish(ctx, events.BaseEvent{
			Type:       events.TypeContextSaved,
			Data:       map[string]interface{}{"chat_id": chatKey},
			OccurredAt: time.Now(),
		})
		return cs.replier.SendText(task.ChatID, "Supporting text saved. It will be used on the next questions.")

	case router.ModeClearContext:
		sess.SupportingText = ""
		cs.sessions.Save(sess)
		return cs.replier.SendText(task.ChatID, "Supporting text cleared.")
	}

	sess.LastQuery = parsed.CleanPrompt
	cs.sessions.Save(sess)

	answer := cs.assistant.Process(ctx, sess, parsed.CleanPrompt)

	if err := cs.replier.SendText(task.ChatID, answer.Text); err != nil {
		return fmt.Errorf("send answer: %w", err)
	}

	// Voice reply is best effort: the text answer already reached the
	// user.
	if voice, err := cs.synthesizer.Synthesize(ctx, answer.Text, cs.language); err == nil {
		if err := cs.replier.SendVoice(task.ChatID, voice); err != nil {
			cs.logger.Warn("Consumer", "Failed to send voice reply", map[string]interface{}{"error": err.Error()})
		}
	} else {
		cs.logger.Warn("Consumer", "Speech synthesis failed", map[string]interface{}{"error": err.Error()})
	}

	_ = cs.eventBus.Publish(ctx, events.NewCycleCompleted(chatKey, answer.Source, time.Since(started)))
	cs.logger.Info("Consumer", "Cycle finished", map[string]interface{}{
		"chat_id": task.ChatID,
		"source":  answer.Source,
		"elapsed": time.Since(started).String(),
	})
	return nil
}
