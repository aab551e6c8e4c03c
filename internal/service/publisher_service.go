package service

import (
	"context"
	"encoding/json"

	"resolveia-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// IPublisherService enqueues one voice-processing task per incoming
// Telegram voice note, so a slow backend call never stalls the poller.
type IPublisherService interface {
	PublishVoiceTask(ctx context.Context, task dto.VoiceTaskMessage) error
}

type publisherService struct {
	topicName string
	pubSub    *gochannel.GoChannel
}

func NewPublisherService(topicName string, pubSub *gochannel.GoChannel) IPublisherService {
	return &publisherService{
		topicName: topicName,
		pubSub:    pubSub,
	}
}

func (ps *publisherService) PublishVoiceTask(_ context.Context, task dto.VoiceTaskMessage) error {
	payload, err := json.Marshal(task)
	if err != nil {
		return err
	}
	msg := message.NewMessage(uuid.New().String(), payload)
	return ps.pubSub.Publish(ps.topicName, msg)
}
