package probe

import "testing"

func TestDecodeStream(t *testing.T) {
	raw := []byte(`{"index":1,"codec_name":"aac","codec_type":"audio","disposition":{"forced":0},"tags":{"language":"eng"},"avg_frame_rate":"0/0"}`)
	stream, err := decodeStream(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stream.Index != 1 || stream.CodecType != "audio" {
		t.Fatalf("got %+v", stream)
	}
	if stream.Extra["avg_frame_rate"] != "0/0" {
		t.Fatalf("expected avg_frame_rate to survive in Extra, got %+v", stream.Extra)
	}
	if _, ok := stream.Extra["codec_type"]; ok {
		t.Fatalf("known field codec_type leaked into Extra: %+v", stream.Extra)
	}
}

func TestDecodeFormatCoercesDuration(t *testing.T) {
	format, err := decodeFormat([]byte(`{"duration":"123.456","bit_rate":"900000"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if format["duration"] != 123.456 {
		t.Fatalf("got %v, want 123.456 as float64", format["duration"])
	}
	if format["bit_rate"] != float64(900000) {
		t.Fatalf("got %v, want 900000 as float64", format["bit_rate"])
	}
}

func TestResultDurationZeroWhenAbsent(t *testing.T) {
	r := Result{Format: map[string]any{}}
	if r.Duration() != 0 {
		t.Fatalf("expected 0 duration when absent")
	}
}
