// Package operator backs the hidden operator console: a bounded log of recent
// lines fed by zap and the tap gesture that reveals it.
package operator

import (
	"image/color"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap/zapcore"
)

const DefaultMaxLines = 15

// Line is one rendered log entry.
type Line struct {
	Time    time.Time
	Level   zapcore.Level
	Message string
}

var (
	colorDebug = color.NRGBA{R: 0x9e, G: 0x9e, B: 0x9e, A: 0xff}
	colorInfo  = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	colorWarn  = color.NRGBA{R: 0xff, G: 0xd5, B: 0x4f, A: 0xff}
	colorError = color.NRGBA{R: 0xef, G: 0x53, B: 0x50, A: 0xff}
)

// Color is the text colour the console draws l with.
func (l Line) Color() color.NRGBA {
	switch {
	case l.Level >= zapcore.ErrorLevel:
		return colorError
	case l.Level == zapcore.WarnLevel:
		return colorWarn
	case l.Level == zapcore.InfoLevel:
		return colorInfo
	default:
		return colorDebug
	}
}

func (l Line) String() string {
	return l.Time.Format("15:04:05") + " " + l.Level.CapitalString() + " " + l.Message
}

// Console keeps the most recent lines, oldest first. Safe for concurrent use.
type Console struct {
	mu    sync.Mutex
	max   int
	lines []Line
}

func NewConsole(max int) *Console {
	if max <= 0 {
		max = DefaultMaxLines
	}
	return &Console{max: max, lines: make([]Line, 0, max)}
}

func (c *Console) append(l Line) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.lines) == c.max {
		copy(c.lines, c.lines[1:])
		c.lines = c.lines[:c.max-1]
	}
	c.lines = append(c.lines, l)
}

// Lines returns a copy of the buffered lines.
func (c *Console) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Line(nil), c.lines...)
}

// Cap is the number of lines kept.
func (c *Console) Cap() int {
	return c.max
}

func (c *Console) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}

// Text joins the buffered lines for copying out.
func (c *Console) Text() string {
	lines := c.Lines()
	var b strings.Builder
	for i, l := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(l.String())
	}
	return b.String()
}

func (c *Console) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = c.lines[:0]
}

// Core returns a zap core that writes into the console. Tee it with the
// process core so the console sees the same entries.
func (c *Console) Core(enab zapcore.LevelEnabler) zapcore.Core {
	return &consoleCore{
		LevelEnabler: enab,
		console:      c,
		enc: zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
			MessageKey:       "msg",
			NameKey:          "logger",
			EncodeName:       zapcore.FullNameEncoder,
			EncodeDuration:   zapcore.StringDurationEncoder,
			ConsoleSeparator: " ",
		}),
	}
}

type consoleCore struct {
	zapcore.LevelEnabler
	console *Console
	enc     zapcore.Encoder
}

func (cc *consoleCore) With(fields []zapcore.Field) zapcore.Core {
	enc := cc.enc.Clone()
	for _, f := range fields {
		f.AddTo(enc)
	}
	return &consoleCore{LevelEnabler: cc.LevelEnabler, console: cc.console, enc: enc}
}

func (cc *consoleCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if cc.Enabled(ent.Level) {
		return ce.AddCore(ent, cc)
	}
	return ce
}

func (cc *consoleCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	buf, err := cc.enc.EncodeEntry(ent, fields)
	if err != nil {
		return err
	}
	msg := strings.TrimRight(buf.String(), "\n")
	buf.Free()
	cc.console.append(Line{Time: ent.Time, Level: ent.Level, Message: msg})
	return nil
}

func (cc *consoleCore) Sync() error { return nil }
