//go:build !ci

package sound

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
	"github.com/sirupsen/logrus"
)

const sampleRate = beep.SampleRate(44100)

// Player 音效播放器
type Player struct {
	dir string
	log logrus.FieldLogger

	mu      sync.RWMutex
	buffers map[Cue]*beep.Buffer
	enabled bool
}

// NewPlayer 创建播放器，dir 为空时使用 DefaultDir
func NewPlayer(dir string, log logrus.FieldLogger) *Player {
	if dir == "" {
		dir = DefaultDir
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Player{
		dir:     dir,
		log:     log.WithField("component", "sound"),
		buffers: make(map[Cue]*beep.Buffer),
	}
}

// Init 初始化扬声器并加载音效
func (p *Player) Init() error {
	// Init speaker with smaller buffer for lower latency
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("failed to initialize speaker: %w", err)
	}
	if err := p.Load(); err != nil {
		return err
	}

	p.mu.Lock()
	p.enabled = true
	p.mu.Unlock()
	return nil
}

// Load decodes every mp3/wav file of the sound directory. A missing
// directory is not an error; a file that fails to decode is skipped.
func (p *Player) Load() error {
	files, err := os.ReadDir(p.dir)
	if err != nil {
		if os.IsNotExist(err) {
			p.log.WithField("dir", p.dir).Warn("Sound directory not found")
			return nil
		}
		return fmt.Errorf("failed to read sound directory: %w", err)
	}

	for _, file := range files {
		if file.IsDir() {
			continue
		}
		name := file.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".mp3" && ext != ".wav" {
			continue
		}

		buf, err := p.decode(filepath.Join(p.dir, name), ext)
		if err != nil {
			p.log.WithFields(logrus.Fields{"file": name, "error": err}).Warn("Skipped sound file")
			continue
		}
		p.mu.Lock()
		p.buffers[Cue(strings.TrimSuffix(name, filepath.Ext(name)))] = buf
		p.mu.Unlock()
	}
	return nil
}

// decode reads one file into a stereo buffer at sampleRate
func (p *Player) decode(path, ext string) (*beep.Buffer, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var streamer beep.StreamSeekCloser
	var format beep.Format
	switch ext {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	}
	if err != nil {
		return nil, err
	}
	defer func() { _ = streamer.Close() }()

	// Resample if necessary
	var resampled beep.Streamer = streamer
	if format.SampleRate != sampleRate {
		resampled = beep.Resample(4, format.SampleRate, sampleRate, streamer)
	}

	buffer := beep.NewBuffer(beep.Format{
		SampleRate:  sampleRate,
		NumChannels: 2,
		Precision:   4,
	})
	buffer.Append(resampled)
	return buffer, nil
}

// Has reports whether a cue was loaded
func (p *Player) Has(cue Cue) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.buffers[cue]
	return ok
}

// Play 播放音效，未初始化或音效不存在时静默返回
func (p *Player) Play(cue Cue) {
	p.mu.RLock()
	buffer, ok := p.buffers[cue]
	enabled := p.enabled
	p.mu.RUnlock()

	if !enabled || !ok {
		return
	}
	speaker.Play(buffer.Streamer(0, buffer.Len()))
}

// Close 停止播放
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.enabled {
		speaker.Clear()
	}
	p.enabled = false
}
