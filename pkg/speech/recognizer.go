package speech

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// Recognizer converts a normalized mono 16kHz WAV recording into text.
type Recognizer interface {
	Recognize(ctx context.Context, wavPath string, language string) (string, error)
}

// GoogleRecognizer calls the Google Cloud Speech-to-Text REST API with
// an API key. The recording must already be mono 16kHz LINEAR16.
type GoogleRecognizer struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

var _ Recognizer = &GoogleRecognizer{}

func NewGoogleRecognizer(apiKey, baseURL string) *GoogleRecognizer {
	if baseURL == "" {
		baseURL = "https://speech.googleapis.com/v1"
	}
	return &GoogleRecognizer{
		apiKey:  apiKey,
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type recognizeRequest struct {
	Config struct {
		Encoding        string `json:"encoding"`
		SampleRateHertz int    `json:"sampleRateHertz"`
		LanguageCode    string `json:"languageCode"`
	} `json:"config"`
	Audio struct {
		Content string `json:"content"`
	} `json:"audio"`
}

type recognizeResponse struct {
	Results []struct {
		Alternatives []struct {
			Transcript string `json:"transcript"`
		} `json:"alternatives"`
	} `json:"results"`
}

func (r *GoogleRecognizer) Recognize(ctx context.Context, wavPath string, language string) (string, error) {
	audio, err := os.ReadFile(wavPath)
	if err != nil {
		return "", fmt.Errorf("read audio file: %w", err)
	}

	var reqPayload recognizeRequest
	reqPayload.Config.Encoding = "LINEAR16"
	reqPayload.Config.SampleRateHertz = 16000
	reqPayload.Config.LanguageCode = language
	reqPayload.Audio.Content = base64.StdEncoding.EncodeToString(audio)

	payloadBytes, err := json.Marshal(reqPayload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := r.baseURL + "/speech:recognize?key=" + r.apiKey
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("speech request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("speech error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var recResp recognizeResponse
	if err := json.Unmarshal(bodyBytes, &recResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if len(recResp.Results) == 0 || len(recResp.Results[0].Alternatives) == 0 {
		return "", fmt.Errorf("no speech recognized")
	}

	return recResp.Results[0].Alternatives[0].Transcript, nil
}
