package audio

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/gopxl/beep/v2"
)

// pcmWAV builds a mono 16-bit PCM WAV file with n samples of a ramp.
func pcmWAV(rate, n int) []byte {
	var data bytes.Buffer
	for i := 0; i < n; i++ {
		binary.Write(&data, binary.LittleEndian, int16(i*37%30000))
	}

	var b bytes.Buffer
	b.WriteString("RIFF")
	binary.Write(&b, binary.LittleEndian, uint32(36+data.Len()))
	b.WriteString("WAVE")
	b.WriteString("fmt ")
	binary.Write(&b, binary.LittleEndian, uint32(16))
	binary.Write(&b, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&b, binary.LittleEndian, uint16(1)) // mono
	binary.Write(&b, binary.LittleEndian, uint32(rate))
	binary.Write(&b, binary.LittleEndian, uint32(rate*2))
	binary.Write(&b, binary.LittleEndian, uint16(2))
	binary.Write(&b, binary.LittleEndian, uint16(16))
	b.WriteString("data")
	binary.Write(&b, binary.LittleEndian, uint32(data.Len()))
	b.Write(data.Bytes())
	return b.Bytes()
}

func TestAttenuate(t *testing.T) {
	tests := []struct {
		vol  float64
		want float64
	}{
		{1.0, 0.8},
		{0.5, 0.4},
		{0.25, 0.2},
		{0.0, 0.0},
	}

	for _, tt := range tests {
		src := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
			for i := range samples {
				samples[i] = [2]float64{0.8, -0.8}
			}
			return len(samples), true
		})
		out := make([][2]float64, 4)
		attenuate(src, tt.vol).Stream(out)
		if math.Abs(out[0][0]-tt.want) > 1e-9 || math.Abs(out[3][1]+tt.want) > 1e-9 {
			t.Errorf("attenuate(%g) gave %v, want +-%g", tt.vol, out[0], tt.want)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi, want float64
	}{
		{0.5, 0, 1, 0.5},
		{-1, 0, 1, 0},
		{2, 0, 1, 1},
		{0, 0, 1, 0},
		{1, 0, 1, 1},
	}

	for _, tt := range tests {
		got := clamp(tt.v, tt.lo, tt.hi)
		if got != tt.want {
			t.Errorf("clamp(%f, %f, %f) = %f, want %f", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestNewManagerVolume(t *testing.T) {
	m := New(3)
	if m.Volume() != 1.0 {
		t.Errorf("volume = %f, want 1.0 (clamped)", m.Volume())
	}

	if v := New(0.5).Volume(); v != 0.5 {
		t.Errorf("volume = %f, want 0.5", v)
	}
	if v := New(-1).Volume(); v != 0.0 {
		t.Errorf("volume = %f, want 0.0 (clamped)", v)
	}
}

func TestLoad(t *testing.T) {
	m := New(1)
	if err := m.Load("knock", pcmWAV(44100, 4410)); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	n, ok := m.Loaded("knock")
	if !ok {
		t.Fatal("knock not loaded")
	}
	if n != 4410 {
		t.Errorf("loaded %d samples, want 4410", n)
	}
}

func TestLoadResamples(t *testing.T) {
	m := New(1)
	if err := m.Load("low", pcmWAV(22050, 2205)); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	n, _ := m.Loaded("low")
	// 0.1 s at 44.1 kHz, give or take the resampler's tail.
	if n < 4300 || n > 4500 {
		t.Errorf("resampled to %d samples, want about 4410", n)
	}
}

func TestLoadInvalid(t *testing.T) {
	m := New(1)
	if err := m.Load("bad", []byte("not a wav file")); err == nil {
		t.Error("expected error for invalid data")
	}
	if _, ok := m.Loaded("bad"); ok {
		t.Error("invalid sound should not be kept")
	}
}

func TestPlayRequiresInit(t *testing.T) {
	m := New(1)
	if err := m.Load("knock", pcmWAV(44100, 100)); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := m.Play("knock"); err == nil {
		t.Error("expected error when speaker is not initialized")
	}
}

func TestCloseDropsSounds(t *testing.T) {
	m := New(1)
	if err := m.Load("knock", pcmWAV(44100, 100)); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	m.Close()
	if _, ok := m.Loaded("knock"); ok {
		t.Error("Close should drop loaded sounds")
	}
}
