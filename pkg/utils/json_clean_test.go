package utils

import "testing"

func TestCleanJSONResponse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "already clean",
			input: `{"trip_summary": "ok"}`,
			want:  `{"trip_summary": "ok"}`,
		},
		{
			name:  "json fences",
			input: "```json\n{\"trip_summary\": \"ok\"}\n```",
			want:  `{"trip_summary": "ok"}`,
		},
		{
			name:  "uppercase fences",
			input: "```JSON\n{\"a\": 1}\n```",
			want:  `{"a": 1}`,
		},
		{
			name:  "prose prefix",
			input: `Here's the itinerary: {"a": 1}`,
			want:  `{"a": 1}`,
		},
		{
			name:  "trailing prose after object",
			input: `{"a": 1} Let me know if you want changes!`,
			want:  `{"a": 1}`,
		},
		{
			name:  "array payload",
			input: "Itinerary:\n[{\"day\": 1}]",
			want:  `[{"day": 1}]`,
		},
		{
			name:  "braces inside strings",
			input: `{"note": "use {curly} and \"quoted\" text"} trailing`,
			want:  `{"note": "use {curly} and \"quoted\" text"}`,
		},
		{
			name:  "no json at all",
			input: "Sorry, I cannot help with that.",
			want:  "Sorry, I cannot help with that.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanJSONResponse(tt.input); got != tt.want {
				t.Errorf("CleanJSONResponse() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFindMatching(t *testing.T) {
	tests := []struct {
		name  string
		s     string
		start int
		want  int
	}{
		{"flat object", `{"a": 1}`, 0, 7},
		{"nested object", `{"a": {"b": 2}}`, 0, 14},
		{"unbalanced", `{"a": 1`, 0, -1},
		{"start not an opener", `x{"a": 1}`, 0, -1},
		{"closer inside string ignored", `{"a": "}"}`, 0, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := findMatching(tt.s, tt.start, '{', '}'); got != tt.want {
				t.Errorf("findMatching() = %d, want %d", got, tt.want)
			}
		})
	}
}
