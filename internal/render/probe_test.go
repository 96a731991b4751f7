package render

import "testing"

func TestParseProbeOutputLandscape(t *testing.T) {
	lines := []string{
		"Input #0, mov,mp4,m4a,3gp,3g2,mj2, from 'clip.mp4':",
		"  Metadata:",
		"    major_brand     : isom",
		"  Duration: 00:01:23.45, start: 0.000000, bitrate: 8000 kb/s",
		"  Stream #0:0(und): Video: h264 (High) (avc1 / 0x31637661), yuv420p(tv, bt709), 1920x1080 [SAR 1:1 DAR 16:9], 7862 kb/s, 30 fps, 30 tbr, 15360 tbn (default)",
		"  Stream #0:1(und): Audio: aac (LC) (mp4a / 0x6134706D), 48000 Hz, stereo, fltp, 128 kb/s (default)",
	}
	res := parseProbeOutput(lines)
	if res.Width != 1920 || res.Height != 1080 {
		t.Fatalf("dimensions = %dx%d, want 1920x1080", res.Width, res.Height)
	}
	if res.DurationMs != 83450 {
		t.Fatalf("duration = %dms, want 83450", res.DurationMs)
	}
	if res.Rotation != 0 {
		t.Fatalf("rotation = %d, want 0", res.Rotation)
	}
	if res.Portrait() {
		t.Fatal("landscape input reported portrait")
	}
}

func TestParseProbeOutputRotateTagSwapsDimensions(t *testing.T) {
	lines := []string{
		"  Duration: 00:00:30.00, start: 0.000000, bitrate: 20000 kb/s",
		"  Stream #0:0(und): Video: h264, yuv420p, 1080x1920, 20000 kb/s, 30 fps",
		"    Metadata:",
		"      rotate          : 90",
	}
	res := parseProbeOutput(lines)
	if res.Width != 1920 || res.Height != 1080 {
		t.Fatalf("dimensions = %dx%d, want swap to 1920x1080", res.Width, res.Height)
	}
	if res.Rotation != 90 {
		t.Fatalf("rotation = %d, want 90", res.Rotation)
	}
}

func TestParseProbeOutputDisplayMatrix(t *testing.T) {
	lines := []string{
		"  Duration: 00:00:12.00, start: 0.000000, bitrate: 12000 kb/s",
		"  Stream #0:0(und): Video: hevc, yuv420p(tv, bt709), 1920x1080, 11858 kb/s, 29.97 fps",
		"    Side data:",
		"      displaymatrix: rotation of -90.00 degrees",
	}
	res := parseProbeOutput(lines)
	if res.Rotation != 270 {
		t.Fatalf("rotation = %d, want 270", res.Rotation)
	}
	if res.Width != 1080 || res.Height != 1920 {
		t.Fatalf("dimensions = %dx%d, want swap to 1080x1920", res.Width, res.Height)
	}
	if !res.Portrait() {
		t.Fatal("rotated input should report portrait")
	}
}

func TestParseProbeOutputFullRotationIsIgnored(t *testing.T) {
	lines := []string{
		"  Stream #0:0: Video: h264, yuv420p, 1280x720, 30 fps",
		"      rotate          : 360",
	}
	res := parseProbeOutput(lines)
	if res.Rotation != 0 {
		t.Fatalf("rotation = %d, want 0", res.Rotation)
	}
	if res.Width != 1280 || res.Height != 720 {
		t.Fatalf("dimensions = %dx%d, want 1280x720", res.Width, res.Height)
	}
}

func TestParseProbeOutputMissingFields(t *testing.T) {
	res := parseProbeOutput([]string{"clip.mp4: No such file or directory"})
	if res.Width != 0 || res.Height != 0 || res.DurationMs != 0 {
		t.Fatalf("result = %+v, want zero values", res)
	}
}

func TestNormalizeRotation(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, 0}, {90, 90}, {180, 180}, {270, 270},
		{360, 0}, {450, 90}, {-90, 270}, {-270, 90}, {-450, 270},
	}
	for _, tc := range tests {
		if got := normalizeRotation(tc.in); got != tc.want {
			t.Errorf("normalizeRotation(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
