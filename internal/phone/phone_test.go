package phone

import "testing"

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode string
		wantNum  string
	}{
		{name: "us length match", input: "+14155551234", wantCode: "+1", wantNum: "4155551234"},
		{name: "uk length match", input: "+447123456789", wantCode: "+44", wantNum: "7123456789"},
		{name: "india length match", input: "+919876543210", wantCode: "+91", wantNum: "9876543210"},
		{name: "germany length match", input: "+4915123456789", wantCode: "+49", wantNum: "15123456789"},
		// the generic rule is greedy and takes four digits when nothing pins
		// the length, so UAE-style codes over-capture
		{name: "generic fallback is greedy", input: "+9715551234567", wantCode: "+9715", wantNum: "551234567"},
		{name: "no plus prefix", input: "4155551234", wantCode: "+1", wantNum: "4155551234"},
		{name: "empty", input: "", wantCode: "+1", wantNum: ""},
		{name: "plus but no digits", input: "+", wantCode: "+1", wantNum: "+"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, num := Extract(tt.input)
			if code != tt.wantCode || num != tt.wantNum {
				t.Errorf("Extract(%q) = (%q, %q), want (%q, %q)",
					tt.input, code, num, tt.wantCode, tt.wantNum)
			}
		})
	}
}

func TestExtractAmbiguousLength(t *testing.T) {
	// +1 followed by 12 digits does not match the {+1, 12} pattern, so the
	// greedy generic rule takes four digits as the code
	code, num := Extract("+141555512345")
	if code != "+1415" || num != "55512345" {
		t.Errorf("Extract long +1 number = (%q, %q), want (+1415, 55512345)", code, num)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "us number", input: "+12345678900", want: "+1 (234) 567-8900"},
		{name: "uk number", input: "+447123456789", want: "+44 7123 456789"},
		{name: "other country passes through", input: "+919876543210", want: "+919876543210"},
		{name: "no plus passes through", input: "4155551234", want: "4155551234"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.input); got != tt.want {
				t.Errorf("Format(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsKnownCode(t *testing.T) {
	if !IsKnownCode("+44") {
		t.Error("expected +44 to be known")
	}
	if IsKnownCode("+999") {
		t.Error("expected +999 to be unknown")
	}
}
