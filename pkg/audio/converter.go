package audio

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ffmpegPaths are probed in order when the binary is not on PATH.
var ffmpegPaths = []string{
	"/opt/homebrew/bin/ffmpeg",
	"/usr/local/bin/ffmpeg",
	"/usr/bin/ffmpeg",
}

// Converter normalizes Telegram voice notes (OGG/Opus) into the mono
// 16kHz WAV stream the speech recognizer expects.
type Converter struct {
	binary string
}

func NewConverter() *Converter {
	return &Converter{binary: resolveBinary()}
}

func resolveBinary() string {
	if path, err := exec.LookPath("ffmpeg"); err == nil {
		return path
	}
	for _, path := range ffmpegPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return "ffmpeg"
}

// ToWav converts inputPath to a sibling .wav file and returns its path.
func (c *Converter) ToWav(inputPath string) (string, error) {
	outputPath := strings.TrimSuffix(inputPath, ".ogg") + ".wav"

	cmd := exec.Command(c.binary, "-i", inputPath, "-ac", "1", "-ar", "16000", outputPath, "-y")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("ffmpeg conversion failed: %w (%s)", err, strings.TrimSpace(stderr.String()))
	}
	return outputPath, nil
}
