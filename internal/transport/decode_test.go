package transport

import (
	"errors"
	"testing"

	"github.com/yndnr/partage-bss-go/internal/core/domain"
)

func TestXMLDecoder(t *testing.T) {
	body := []byte(`<?xml version="1.0" encoding="UTF-8"?>
<Response>
  <status>0</status>
  <message>Authentification réussie</message>
  <token> abc123 </token>
  <account><name>x</name></account>
</Response>`)

	resp, err := XMLDecoder{}.Decode(body)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if resp.Status != 0 || !resp.OK() {
		t.Errorf("Status = %d, want 0", resp.Status)
	}
	if resp.Message != "Authentification réussie" {
		t.Errorf("Message = %q", resp.Message)
	}
	if tok, _ := resp.Field("token"); tok != "abc123" {
		t.Errorf("token = %q, want %q", tok, "abc123")
	}
	if _, ok := resp.Field("name"); ok {
		t.Error("nested elements should not become top-level fields")
	}
}

func TestXMLDecoder_Latin1(t *testing.T) {
	// "réussie" encoded as ISO-8859-1 (0xE9).
	body := []byte("<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><Response><status>0</status><message>r\xe9ussie</message></Response>")

	resp, err := XMLDecoder{}.Decode(body)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if resp.Message != "réussie" {
		t.Errorf("Message = %q, want %q", resp.Message, "réussie")
	}
}

func TestJSONDecoder(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		token  string
	}{
		{"numeric status", `{"status": 0, "message": "ok", "token": "abc"}`, 0, "abc"},
		{"string status", `{"status": "0", "message": "ok", "token": "abc"}`, 0, "abc"},
		{"failure", `{"status": 2, "message": "bad preauth", "token": null}`, 2, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := JSONDecoder{}.Decode([]byte(tt.body))
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if resp.Status != tt.status {
				t.Errorf("Status = %d, want %d", resp.Status, tt.status)
			}
			if tok, _ := resp.Field("token"); tok != tt.token {
				t.Errorf("token = %q, want %q", tok, tt.token)
			}
		})
	}
}

func TestDecoders_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		decoder Decoder
		body    string
	}{
		{"xml missing status", XMLDecoder{}, `<r><message>m</message><token>t</token></r>`},
		{"xml missing message", XMLDecoder{}, `<r><status>0</status><token>t</token></r>`},
		{"xml non-integer status", XMLDecoder{}, `<r><status>ok</status><message>m</message></r>`},
		{"xml broken", XMLDecoder{}, `<r><status>0</status`},
		{"xml empty root", XMLDecoder{}, `<r/>`},
		{"json missing status", JSONDecoder{}, `{"message": "m"}`},
		{"json missing message", JSONDecoder{}, `{"status": 0}`},
		{"json not an object", JSONDecoder{}, `[1,2]`},
		{"json broken", JSONDecoder{}, `{"status":`},
		{"auto empty", AutoDecoder{}, "  \n"},
		{"auto html", AutoDecoder{}, "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.decoder.Decode([]byte(tt.body))
			if !errors.Is(err, domain.ErrTransport) {
				t.Errorf("Decode() error = %v, want ErrTransport", err)
			}
		})
	}
}

func TestAutoDecoder(t *testing.T) {
	xmlResp, err := AutoDecoder{}.Decode([]byte("\n  <Response><status>1</status><message>x</message></Response>"))
	if err != nil || xmlResp.Status != 1 {
		t.Errorf("xml sniff: %+v, %v", xmlResp, err)
	}

	jsonResp, err := AutoDecoder{}.Decode([]byte("\ufeff{\"status\":3,\"message\":\"y\"}"))
	if err != nil || jsonResp.Status != 3 {
		t.Errorf("json sniff: %+v, %v", jsonResp, err)
	}
}

func TestNewDecoder(t *testing.T) {
	if _, ok := NewDecoder(FormatXML).(XMLDecoder); !ok {
		t.Error("NewDecoder(xml) should return XMLDecoder")
	}
	if _, ok := NewDecoder(FormatJSON).(JSONDecoder); !ok {
		t.Error("NewDecoder(json) should return JSONDecoder")
	}
	if _, ok := NewDecoder("whatever").(AutoDecoder); !ok {
		t.Error("NewDecoder(unknown) should return AutoDecoder")
	}
}
