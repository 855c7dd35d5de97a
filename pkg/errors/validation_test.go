package errors

import "testing"

func TestValidateWindow(t *testing.T) {
	tests := []struct {
		name       string
		start, end int
		length     int
		wantErr    bool
	}{
		{name: "inside", start: 425, end: 650, length: 1000},
		{name: "from zero", start: 0, end: 10, length: 20},
		{name: "last index", start: 0, end: 19, length: 20},
		{name: "negative start", start: -1, end: 10, length: 20, wantErr: true},
		{name: "end at length", start: 0, end: 20, length: 20, wantErr: true},
		{name: "reversed", start: 12, end: 4, length: 20, wantErr: true},
		{name: "empty", start: 10, end: 10, length: 20, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWindow(tt.start, tt.end, tt.length)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateWindow() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeOutOfBounds) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeOutOfBounds)
			}
		})
	}
}

func TestValidateSequenceLength(t *testing.T) {
	if err := ValidateSequenceLength(50); err != nil {
		t.Errorf("ValidateSequenceLength(50) = %v", err)
	}
	for _, n := range []int{0, -3} {
		if err := ValidateSequenceLength(n); !Is(err, ErrCodeInvalidInput) {
			t.Errorf("ValidateSequenceLength(%d) = %v, want INVALID_INPUT", n, err)
		}
	}
}

func TestValidateOutputPath(t *testing.T) {
	tests := []struct {
		path    string
		wantErr bool
	}{
		{"out.svg", false},
		{"build/plots/out.json", false},
		{"/tmp/out.svg", false},
		{"", true},
		{"../out.svg", true},
		{"a/../../out.svg", true},
		{"out\x00.svg", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			err := ValidateOutputPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}
