package audio

import (
	"testing"
	"time"

	"github.com/lixenwraith/collisions/parameter"
)

// TestClickFrequency verifies the pitch range and saturation
func TestClickFrequency(t *testing.T) {
	if got := ClickFrequency(0); got != parameter.ClickBaseFreq {
		t.Errorf("Expected base frequency, got %g", got)
	}
	top := parameter.ClickBaseFreq + parameter.ClickFreqRange
	if got := ClickFrequency(1 << 40); got != top {
		t.Errorf("Expected saturation at %g, got %g", top, got)
	}
	if ClickFrequency(10) <= ClickFrequency(2) {
		t.Error("Expected pitch to rise with collision count")
	}
}

// TestClick_LengthAndFade verifies the click ends after ClickDuration and fades out
func TestClick_LengthAndFade(t *testing.T) {
	click, err := Click(parameter.ClickBaseFreq)
	if err != nil {
		t.Fatalf("Click failed: %v", err)
	}
	want := sampleRate.N(parameter.ClickDuration)

	buf := make([][2]float64, 256)
	total := 0
	var peak, tail float64
	for {
		n, ok := click.Stream(buf)
		for i := 0; i < n; i++ {
			v := buf[i][0]
			if v < 0 {
				v = -v
			}
			peak = max(peak, v)
			tail = v
		}
		total += n
		if !ok || n == 0 {
			break
		}
	}
	if total != want {
		t.Errorf("Expected %d samples, got %d", want, total)
	}
	if peak > parameter.ClickVolume+1e-9 {
		t.Errorf("Expected peak under %g, got %g", parameter.ClickVolume, peak)
	}
	if tail > peak/4 {
		t.Errorf("Expected faded tail, got %g of peak %g", tail, peak)
	}
}

// TestSonifier_Uninitialized verifies frames are dropped without a device
func TestSonifier_Uninitialized(t *testing.T) {
	s := NewSonifier()
	s.Frame(time.Now(), 10)
	s.SetMuted(true)
	if !s.Muted() {
		t.Error("Expected muted")
	}
	s.Close()
}
