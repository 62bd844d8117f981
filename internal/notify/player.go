package notify

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strconv"
)

//go:embed assets/alarm.wav
var AlarmSound []byte

// ErrMuted is returned by Play when volume is zero and nothing was played.
var ErrMuted = errors.New("alarm sound muted")

// Player plays an audio payload at volume in [0,1] without waiting for it to end.
type Player interface {
	Play(payload []byte, volume float64) error
}

// ExecPlayer hands the payload to the platform's command-line audio player and
// falls back to the terminal bell when none is installed.
type ExecPlayer struct {
	Bell     io.Writer
	lookPath func(string) (string, error)
}

func NewExecPlayer(bell io.Writer) *ExecPlayer {
	return &ExecPlayer{Bell: bell, lookPath: exec.LookPath}
}

func (p *ExecPlayer) Play(payload []byte, volume float64) error {
	if volume <= 0 {
		return ErrMuted
	}
	if volume > 1 {
		volume = 1
	}

	name, args := p.command(volume)
	if name == "" {
		return p.ring()
	}

	tmp, err := os.CreateTemp("", "zentasks-alarm-*.wav")
	if err != nil {
		return p.ring()
	}
	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("❌ Failed to stage alarm sound: %w", err)
	}
	tmp.Close()

	c := exec.Command(name, append(args, tmp.Name())...)
	if err := c.Start(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("❌ Failed to start %s: %w", name, err)
	}
	go func() {
		_ = c.Wait()
		os.Remove(tmp.Name())
	}()
	return nil
}

func (p *ExecPlayer) command(volume float64) (string, []string) {
	switch runtime.GOOS {
	case "darwin":
		if _, err := p.lookPath("afplay"); err == nil {
			return "afplay", []string{"-v", strconv.FormatFloat(volume, 'f', 2, 64)}
		}
	case "linux":
		if _, err := p.lookPath("paplay"); err == nil {
			return "paplay", []string{"--volume=" + strconv.Itoa(int(volume*65536))}
		}
		if _, err := p.lookPath("aplay"); err == nil {
			return "aplay", []string{"-q"}
		}
	}
	return "", nil
}

func (p *ExecPlayer) ring() error {
	if p.Bell == nil {
		return fmt.Errorf("no audio player available")
	}
	_, err := io.WriteString(p.Bell, "\a")
	return err
}
