package bootstrap

import (
	"context"
	"log"

	"resolveia-be/internal/config"
	"resolveia-be/internal/controller"
	"resolveia-be/internal/pkg/logger"
	"resolveia-be/internal/repository/memory"
	"resolveia-be/internal/service"
	"resolveia-be/internal/telegram"
	"resolveia-be/pkg/audio"
	"resolveia-be/pkg/knowledge"
	"resolveia-be/pkg/llm"
	"resolveia-be/pkg/llm/factory"
	"resolveia-be/pkg/llm/groq"
	"resolveia-be/pkg/prompt"
	"resolveia-be/pkg/retrieval"
	"resolveia-be/pkg/speech"
	"resolveia-be/pkg/transcript"

	pktNats "resolveia-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type Container struct {
	// Controllers
	AssistantController controller.IAssistantController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Telegram front-end (nil when TELEGRAM_TOKEN is not set)
	Bot *telegram.Bot

	SysLogger     logger.ILogger
	NatsPublisher *pktNats.Publisher
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	llmLogger := service.InitLLMLogger()

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS (optional, warn and continue without it)
	var natsPub *pktNats.Publisher
	if cfg.App.NatsURL != "" {
		var err error
		natsPub, err = pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		}
	}

	// 3. Model Backends
	backends := factory.NewBackendSet(
		context.Background(),
		cfg.Keys.Gemini,
		cfg.Ai.GeminiModel,
		cfg.Keys.Groq,
		cfg.Ai.GroqModel,
	)
	if backends.Primary.Available {
		log.Printf("[INFO] Primary backend ready: %s (%s)", backends.Primary.Name, cfg.Ai.GeminiModel)
	} else {
		log.Printf("[WARN] Primary backend disabled: %s", backends.Primary.Reason)
	}
	if backends.Secondary.Available {
		log.Printf("[INFO] Secondary backend ready: %s (%s)", backends.Secondary.Name, cfg.Ai.GroqModel)
	} else {
		log.Printf("[WARN] Secondary backend disabled: %s", backends.Secondary.Reason)
	}

	// In-Memory Session Storage
	sessionRepo := memory.NewSessionRepository(cfg.Session.TTL, cfg.Session.DefaultPhase, cfg.Session.DefaultPriority)

	// 4. Answering Pipeline
	retriever := retrieval.NewStubRetriever(llmLogger)
	lookup := knowledge.NewClient(cfg.Ai.WikipediaURL, llmLogger)
	builder := prompt.NewBuilder(nil)

	assistantService := service.NewAssistantService(
		retriever,
		lookup,
		builder,
		backends,
		cfg.Ai.CompletionTimeout,
		llmLogger,
	)

	// Transcript cleaning prefers the secondary backend's cheap base
	// model; without it the primary model does the job.
	var cleanProvider llm.Provider
	var cleanModel string
	switch {
	case backends.Secondary.Available:
		cleanProvider = backends.Secondary.Provider
		cleanModel = cfg.Ai.GroqModel
		if gp, ok := cleanProvider.(*groq.Provider); ok {
			cleanModel = gp.BaseModel()
		}
	case backends.Primary.Available:
		cleanProvider = backends.Primary.Provider
		cleanModel = cfg.Ai.GeminiModel
	}
	cleaner := transcript.NewCleaner(cleanProvider, cleanModel, llmLogger)

	// 5. Voice Pipeline
	publisherService := service.NewPublisherService(cfg.Telegram.VoiceTopic, pubSub)
	converter := audio.NewConverter()
	recognizer := speech.NewGoogleRecognizer(cfg.Keys.Speech, "")
	synthesizer := speech.NewGoogleSynthesizer("")

	var bot *telegram.Bot
	if cfg.Telegram.Token != "" {
		var err error
		bot, err = telegram.NewBot(cfg.Telegram.Token, publisherService, sessionRepo, backends, sysLogger)
		if err != nil {
			log.Printf("[WARN] Telegram bot disabled: %v", err)
			bot = nil
		}
	} else {
		log.Println("[WARN] TELEGRAM_TOKEN not set, voice front-end disabled")
	}

	var fetcher service.VoiceFileFetcher
	var replier service.Replier
	if bot != nil {
		fetcher = bot
		replier = bot
	}

	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Telegram.VoiceTopic,
		fetcher,
		replier,
		converter,
		recognizer,
		synthesizer,
		cleaner,
		assistantService,
		sessionRepo,
		natsPub,
		cfg.Ai.AnswerLanguage,
		sysLogger,
	)

	// 6. Controllers
	return &Container{
		AssistantController: controller.NewAssistantController(
			assistantService,
			sessionRepo,
			backends,
			cfg,
			sysLogger,
		),
		ConsumerService: consumerService,
		Bot:             bot,
		SysLogger:       sysLogger,
		NatsPublisher:   natsPub,
	}
}
