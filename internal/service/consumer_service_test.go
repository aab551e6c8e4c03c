package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"resolveia-be/internal/dto"
	"resolveia-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }
func (nopLogger) GetLogs(string, int, int) ([]logger.LogEntry, error) {
	return nil, nil
}
func (nopLogger) GetLogById(string) (*logger.LogEntry, error) { return nil, nil }

type panickingFetcher struct{}

func (panickingFetcher) Download(context.Context, string) (string, error) {
	panic("fetcher exploded")
}

type failingFetcher struct{}

func (failingFetcher) Download(context.Context, string) (string, error) {
	return "", errors.New("file gone")
}

type recordingReplier struct {
	texts []string
}

func (r *recordingReplier) SendText(_ int64, text string) error {
	r.texts = append(r.texts, text)
	return nil
}

func (r *recordingReplier) SendVoice(int64, []byte) error { return nil }

func newConsumer(fetcher VoiceFileFetcher, replier Replier) *consumerService {
	return NewConsumerService(
		nil, "VOICE_TEST",
		fetcher, replier,
		nil, nil, nil, nil,
		nil, nil, nil,
		"pt-BR", nopLogger{},
	).(*consumerService)
}

func taskMessage(t *testing.T) *message.Message {
	t.Helper()
	payload, err := json.Marshal(dto.VoiceTaskMessage{ChatID: 42, FileID: "abc"})
	require.NoError(t, err)
	return message.NewMessage("m1", payload)
}

func assertAcked(t *testing.T, msg *message.Message) {
	t.Helper()
	select {
	case <-msg.Acked():
	default:
		t.Fatal("message was not acked")
	}
}

func TestProcessMessageSurvivesCollaboratorPanic(t *testing.T) {
	replier := &recordingReplier{}
	cs := newConsumer(panickingFetcher{}, replier)
	msg := taskMessage(t)

	require.NotPanics(t, func() {
		cs.processMessage(context.Background(), msg)
	})
	assertAcked(t, msg)
}

func TestProcessMessageFailureWithNilReplier(t *testing.T) {
	cs := newConsumer(failingFetcher{}, nil)
	msg := taskMessage(t)

	require.NotPanics(t, func() {
		cs.processMessage(context.Background(), msg)
	})
	assertAcked(t, msg)
}

func TestProcessMessageFailureReportsToChat(t *testing.T) {
	replier := &recordingReplier{}
	cs := newConsumer(failingFetcher{}, replier)

	cs.processMessage(context.Background(), taskMessage(t))

	require.Len(t, replier.texts, 1)
	assert.Contains(t, replier.texts[0], "Internal error")
	assert.Contains(t, replier.texts[0], "file gone")
}

func TestProcessMessageInvalidPayloadAcked(t *testing.T) {
	cs := newConsumer(failingFetcher{}, nil)
	msg := message.NewMessage("m2", []byte("not json"))

	require.NotPanics(t, func() {
		cs.processMessage(context.Background(), msg)
	})
	assertAcked(t, msg)
}
