package middleware

import (
	"net/http"
	"testing"
)

func TestEncodeDecodePayload(t *testing.T) {
	hdr := http.Header{}
	hdr.Set("Content-Type", "application/json")
	body := []byte(`{"courses":[]}`)

	bs, err := encodePayload(http.StatusOK, hdr, body)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	status, gotHdr, gotBody, ok := decodePayload(bs)
	if !ok {
		t.Fatal("decode failed")
	}
	if status != http.StatusOK {
		t.Fatalf("status: got %d", status)
	}
	if gotHdr.Get("Content-Type") != "application/json" {
		t.Fatalf("header: got %q", gotHdr.Get("Content-Type"))
	}
	if string(gotBody) != string(body) {
		t.Fatalf("body: got %q", gotBody)
	}
}

func TestDecodePayloadRejectsGarbage(t *testing.T) {
	for _, bs := range [][]byte{nil, {}, {1}, []byte("short"), {0, 0, 0, 0}} {
		if _, _, _, ok := decodePayload(bs); ok {
			t.Fatalf("garbage %v decoded", bs)
		}
	}
}

func TestAsInt64(t *testing.T) {
	cases := []struct {
		in   interface{}
		want int64
	}{
		{int64(5), 5},
		{"7", 7},
		{nil, 0},
		{"x", 0},
	}
	for _, tc := range cases {
		if got := asInt64(tc.in); got != tc.want {
			t.Fatalf("asInt64(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
