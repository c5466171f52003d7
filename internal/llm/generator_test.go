package llm

import "testing"

func TestNewGenerator(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		wantType string
		wantErr  bool
	}{
		{name: "default is gemini", opts: Options{APIKey: "k"}, wantType: "gemini"},
		{name: "gemini", opts: Options{Provider: "gemini", Model: "gemini-2.0-flash"}, wantType: "gemini"},
		{name: "openai", opts: Options{Provider: "openai", BaseURL: "http://localhost:8080", APIKey: "k"}, wantType: "openai"},
		{name: "openai without base url", opts: Options{Provider: "openai"}, wantErr: true},
		{name: "unknown", opts: Options{Provider: "cohere"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen, err := NewGenerator(tt.opts)
			if tt.wantErr {
				if err == nil {
					t.Errorf("NewGenerator() expected error, got %T", gen)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewGenerator() error = %v", err)
			}
			switch tt.wantType {
			case "gemini":
				if _, ok := gen.(*GeminiClient); !ok {
					t.Errorf("NewGenerator() = %T, want *GeminiClient", gen)
				}
			case "openai":
				if _, ok := gen.(*ChatClient); !ok {
					t.Errorf("NewGenerator() = %T, want *ChatClient", gen)
				}
			}
		})
	}
}
