package main

import (
	"github.com/hajimehoshi/ebiten/v2/audio"
	"go.uber.org/zap"

	"github.com/milk9111/mrexhibit/assets"
	"github.com/milk9111/mrexhibit/config"
)

const clickCue = "click.wav"

// AudioService plays exhibit cues and keeps the background loops running.
// Players are decoded on first use and reused.
type AudioService struct {
	cfg     config.Audio
	log     *zap.Logger
	players map[string]*audio.Player
	missing map[string]bool
	loops   []*audio.Player
}

func NewAudioService(cfg config.Audio, log *zap.Logger) *AudioService {
	return &AudioService{
		cfg:     cfg,
		log:     log,
		players: make(map[string]*audio.Player),
		missing: make(map[string]bool),
	}
}

// PlayCue restarts the cue from the beginning. An empty ref is ignored.
func (a *AudioService) PlayCue(ref string) {
	if ref == "" {
		return
	}
	p := a.player(ref)
	if p == nil {
		return
	}
	p.SetVolume(a.cfg.Volume)
	if err := p.Rewind(); err != nil {
		a.log.Warn("cue rewind failed", zap.String("cue", ref), zap.Error(err))
		return
	}
	p.Play()
	a.log.Debug("cue played", zap.String("cue", ref))
}

func (a *AudioService) player(ref string) *audio.Player {
	if p, ok := a.players[ref]; ok {
		return p
	}
	if a.missing[ref] {
		return nil
	}
	p, err := assets.LoadAudioPlayer(ref)
	if err != nil {
		a.missing[ref] = true
		a.log.Warn("cue unavailable", zap.String("cue", ref), zap.Error(err))
		return nil
	}
	a.players[ref] = p
	return p
}

// StartAmbience starts the background music and ambience loops.
func (a *AudioService) StartAmbience() {
	for _, name := range []string{a.cfg.BGM, a.cfg.Ambient} {
		if name == "" {
			continue
		}
		p, err := assets.LoadLoopPlayer(name)
		if err != nil {
			a.log.Warn("background loop unavailable", zap.String("file", name), zap.Error(err))
			continue
		}
		p.SetVolume(a.cfg.Volume)
		p.Play()
		a.loops = append(a.loops, p)
	}
}

func (a *AudioService) Close() {
	for _, p := range a.loops {
		_ = p.Close()
	}
	for _, p := range a.players {
		_ = p.Close()
	}
	a.loops = nil
	clear(a.players)
}
