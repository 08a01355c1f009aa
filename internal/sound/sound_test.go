//go:build !ci

package sound

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/wav"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeWav(t *testing.T, path string, rate beep.SampleRate) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	format := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
	require.NoError(t, wav.Encode(f, beep.Silence(int(rate)/10), format))
}

func TestPlayer_Load(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeWav(t, filepath.Join(dir, "book.wav"), sampleRate)
	writeWav(t, filepath.Join(dir, "deal.wav"), 22050)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "transfer.mp3"), []byte("not an mp3"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	log, hook := logtest.NewNullLogger()
	p := NewPlayer(dir, log)
	require.NoError(t, p.Load())

	assert.True(t, p.Has(CueBook))
	assert.True(t, p.Has(CueDeal))
	assert.False(t, p.Has(CueTransfer))
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "Skipped sound file", hook.LastEntry().Message)

	// not initialised: playing is a silent no-op
	assert.NotPanics(t, func() { p.Play(CueBook) })
	p.Close()
}

func TestPlayer_MissingDir(t *testing.T) {
	t.Parallel()

	p := NewPlayer(filepath.Join(t.TempDir(), "nope"), nil)
	assert.NoError(t, p.Load())
	assert.False(t, p.Has(CueBook))
}

func TestNewPlayer_DefaultDir(t *testing.T) {
	t.Parallel()

	p := NewPlayer("", nil)
	assert.Equal(t, DefaultDir, p.dir)
}
