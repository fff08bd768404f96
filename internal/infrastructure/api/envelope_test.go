package api

import "testing"

func TestDecodeEnvelope_Wrapped(t *testing.T) {
	data := []byte(`{"code":200,"message":"ok","result":{"id":7,"username":"a@b.com"},"timestamp":"2025-01-01T00:00:00Z"}`)

	var out struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
	}
	if err := decodeEnvelope(data, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.ID != 7 || out.Username != "a@b.com" {
		t.Fatalf("unexpected payload: %+v", out)
	}
}

func TestDecodeEnvelope_Raw(t *testing.T) {
	data := []byte(`{"id":7,"username":"a@b.com"}`)

	var out struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
	}
	if err := decodeEnvelope(data, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.ID != 7 {
		t.Fatalf("unexpected payload: %+v", out)
	}
}

func TestDecodeEnvelope_RawArray(t *testing.T) {
	data := []byte(`[{"id":1},{"id":2}]`)

	var out []struct {
		ID int64 `json:"id"`
	}
	if err := decodeEnvelope(data, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 2 || out[1].ID != 2 {
		t.Fatalf("unexpected payload: %+v", out)
	}
}

func TestServerMessage(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"error key", `{"error":"boom"}`, "boom"},
		{"message key", `{"message":"suspended"}`, "suspended"},
		{"error wins", `{"error":"boom","message":"other"}`, "boom"},
		{"empty body", ``, ""},
		{"not json", `<html>`, ""},
	}
	for _, tc := range cases {
		if got := serverMessage([]byte(tc.body)); got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}
