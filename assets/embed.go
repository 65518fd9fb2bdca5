package assets

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

//go:embed audio/*.wav
var assetsFS embed.FS

const SampleRate = 44100

var (
	contextOnce  sync.Once
	audioContext *audio.Context
)

// AudioContext returns the process-wide ebiten audio context, creating it on
// first use. Ebiten allows only one.
func AudioContext() *audio.Context {
	contextOnce.Do(func() {
		audioContext = audio.NewContext(SampleRate)
	})
	return audioContext
}

// LoadFile loads an embedded asset by assets-relative path.
func LoadFile(path string) ([]byte, error) {
	return assetsFS.ReadFile(cleanAssetPath(path))
}

// LoadAudioPlayer decodes an embedded wav into a one-shot player.
func LoadAudioPlayer(path string) (*audio.Player, error) {
	stream, err := decode(path)
	if err != nil {
		return nil, err
	}
	return AudioContext().NewPlayer(stream)
}

// LoadLoopPlayer decodes an embedded wav into a player that repeats forever.
func LoadLoopPlayer(path string) (*audio.Player, error) {
	stream, err := decode(path)
	if err != nil {
		return nil, err
	}
	return AudioContext().NewPlayer(audio.NewInfiniteLoop(stream, stream.Length()))
}

type sizedStream interface {
	io.ReadSeeker
	Length() int64
}

func decode(path string) (sizedStream, error) {
	b, err := LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("assets: load %q: %w", path, err)
	}
	if !strings.HasSuffix(strings.ToLower(path), ".wav") {
		return nil, fmt.Errorf("assets: %q is not a wav file", path)
	}
	stream, err := wav.DecodeWithSampleRate(AudioContext().SampleRate(), bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("assets: decode wav %q: %w", path, err)
	}
	return stream, nil
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if filepath.IsAbs(path) {
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return "audio/" + filepath.Base(path)
	}
	s = strings.TrimPrefix(s, "assets/")
	if !strings.Contains(s, "/") {
		return "audio/" + s
	}
	return s
}
