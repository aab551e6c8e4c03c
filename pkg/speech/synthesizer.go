package speech

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
	"unicode/utf8"
)

// Synthesizer turns answer text into a spoken audio payload (MP3).
type Synthesizer interface {
	Synthesize(ctx context.Context, text string, language string) ([]byte, error)
}

// maxChunkLen is the per-request text limit of the translate TTS
// endpoint; longer answers are split on rune boundaries and the audio
// chunks concatenated (MP3 frames concatenate cleanly).
const maxChunkLen = 200

// GoogleSynthesizer uses the public Google Translate TTS endpoint, the
// same voice the original deployment shipped with.
type GoogleSynthesizer struct {
	baseURL string
	client  *http.Client
}

var _ Synthesizer = &GoogleSynthesizer{}

func NewGoogleSynthesizer(baseURL string) *GoogleSynthesizer {
	if baseURL == "" {
		baseURL = "https://translate.google.com/translate_tts"
	}
	return &GoogleSynthesizer{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (s *GoogleSynthesizer) Synthesize(ctx context.Context, text string, language string) ([]byte, error) {
	var audio []byte
	for _, chunk := range splitChunks(text, maxChunkLen) {
		part, err := s.fetchChunk(ctx, chunk, language)
		if err != nil {
			return nil, err
		}
		audio = append(audio, part...)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("nothing to synthesize")
	}
	return audio, nil
}

func (s *GoogleSynthesizer) fetchChunk(ctx context.Context, text, language string) ([]byte, error) {
	params := url.Values{}
	params.Add("ie", "UTF-8")
	params.Add("client", "tw-ob")
	params.Add("q", text)
	params.Add("tl", language)

	req, err := http.NewRequestWithContext(ctx, "GET", s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tts request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tts error: status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// splitChunks breaks text into rune-safe pieces of at most limit runes,
// preferring to cut at a space so words are not split mid-syllable.
func splitChunks(text string, limit int) []string {
	if utf8.RuneCountInString(text) <= limit {
		if text == "" {
			return nil
		}
		return []string{text}
	}

	var chunks []string
	runes := []rune(text)
	for len(runes) > 0 {
		if len(runes) <= limit {
			chunks = append(chunks, string(runes))
			break
		}
		cut := limit
		for i := limit; i > limit/2; i-- {
			if runes[i] == ' ' {
				cut = i
				break
			}
		}
		chunks = append(chunks, string(runes[:cut]))
		runes = runes[cut:]
		for len(runes) > 0 && runes[0] == ' ' {
			runes = runes[1:]
		}
	}
	return chunks
}
