package cache

import "testing"

func TestQuizTableKey(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		variants []string
		want     string
	}{
		{
			name: "plain id",
			id:   "01HGZ8VNRYXS8QKNJV5GRWPWDQ",
			want: "mcqgen:quiz:table:01HGZ8VNRYXS8QKNJV5GRWPWDQ",
		},
		{
			name:     "empty variants",
			id:       "abc",
			variants: []string{},
			want:     "mcqgen:quiz:table:abc",
		},
		{
			name:     "variants joined into one segment",
			id:       "xyz",
			variants: []string{"utf8", "noindex"},
			want:     "mcqgen:quiz:table:xyz:utf8_noindex",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := QuizTableKey(tt.id, tt.variants...); got != tt.want {
				t.Errorf("QuizTableKey() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKey_DropsEmptyParts(t *testing.T) {
	if got := Key("quiz", "", "table"); got != "mcqgen:quiz:table" {
		t.Errorf("Key() = %v", got)
	}
	if got := Key(); got != KeyPrefix {
		t.Errorf("Key() = %v, want %v", got, KeyPrefix)
	}
}
