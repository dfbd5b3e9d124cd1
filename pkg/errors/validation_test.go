package errors

import (
	"testing"
)

func TestValidatePartname(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid slide", "/ppt/slides/slide1.xml", false},
		{"valid manifest", "/[Content_Types].xml", false},
		{"valid rels", "/ppt/slides/_rels/slide1.xml.rels", false},
		{"valid root rels", "/_rels/.rels", false},

		{"empty", "", true},
		{"relative", "ppt/slides/slide1.xml", true},
		{"root only", "/", true},
		{"trailing slash", "/ppt/slides/", true},
		{"double slash", "/ppt//slide1.xml", true},
		{"dot segment", "/ppt/./slide1.xml", true},
		{"dotdot segment", "/ppt/../slide1.xml", true},
		{"backslash", "/ppt\\slide1.xml", true},
		{"null byte", "/ppt/slide\x001.xml", true},
		{"malformed", "!blat/rhumba.1x&", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePartname(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePartname(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPartname) {
				t.Errorf("ValidatePartname(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidPartname)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid relative", "deck.pptx", false},
		{"valid absolute", "/tmp/out/deck.pptx", false},
		{"valid dir", "build/deck/", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 5000)), true},
		{"null byte", "deck\x00.pptx", true},
		{"newline", "deck\n.pptx", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateExternalTarget(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"http url", "https://example.com/page", false},
		{"mailto", "mailto:someone@example.com", false},
		{"relative file", "../other.pptx", false},

		{"empty", "", true},
		{"blank", "   ", true},
		{"control char", "https://example.com/\x01", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateExternalTarget(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateExternalTarget(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
