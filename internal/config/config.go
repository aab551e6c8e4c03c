package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"resolveia-be/pkg/store"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Telegram TelegramConfig
	Keys     APIKeys
	Ai       AIConfig
	Session  SessionConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
}

type TelegramConfig struct {
	Token string
	// Topic name of the in-process voice-message work queue.
	VoiceTopic string
}

type APIKeys struct {
	Gemini string
	Groq   string
	Speech string
}

type AIConfig struct {
	GeminiModel string
	GroqModel   string
	// WikipediaURL is the MediaWiki action API used for the external
	// knowledge lookup ("" keeps the built-in default).
	WikipediaURL string
	// AnswerLanguage is the BCP-47 tag used for speech in and out.
	AnswerLanguage string
	// CompletionTimeout bounds every model backend call.
	CompletionTimeout time.Duration
}

type SessionConfig struct {
	DefaultPhase    store.Phase
	DefaultPriority store.Priority
	// TTL after which an idle chat's settings and supporting text expire.
	TTL time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment variables")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8585"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
		},
		Telegram: TelegramConfig{
			Token:      getEnv("TELEGRAM_TOKEN", ""),
			VoiceTopic: getEnv("VOICE_TOPIC_NAME", "PROCESS_VOICE_MESSAGE"),
		},
		Keys: APIKeys{
			Gemini: getEnv("GEMINI_API_KEY", getEnv("GOOGLE_API_KEY", "")),
			Groq:   getEnv("GROQ_API_KEY", ""),
			Speech: getEnv("SPEECH_API_KEY", ""),
		},
		Ai: AIConfig{
			GeminiModel:       getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
			GroqModel:         getEnv("GROQ_MODEL", "llama-3.3-70b-versatile"),
			WikipediaURL:      getEnv("WIKIPEDIA_API_URL", ""),
			AnswerLanguage:    getEnv("ANSWER_LANGUAGE", "pt-BR"),
			CompletionTimeout: time.Duration(getEnvAsInt("LLM_TIMEOUT_SECONDS", 60)) * time.Second,
		},
		Session: SessionConfig{
			DefaultPhase:    store.Phase(getEnv("DEFAULT_PHASE", string(store.PhaseJudgement))),
			DefaultPriority: store.Priority(getEnv("MODEL_PRIORITY", string(store.PrioritySecondary))),
			TTL:             time.Duration(getEnvAsInt("CONTEXT_TTL_MINUTES", 120)) * time.Minute,
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
