package agent

import "testing"

func TestResolvePlaceholders(t *testing.T) {
	placeholders := PlaceholderMap{
		"[V1]": "https://www.youtube.com/watch?v=aaa",
		"[V2]": "https://www.youtube.com/watch?v=bbb",
	}
	text := `{"resources":[{"title":"Intro","url":"[V1]"},{"title":"More","url":"[V2]"},{"title":"Again","url":"[V1]"}]}`
	got := ResolvePlaceholders(text, placeholders)
	want := `{"resources":[{"title":"Intro","url":"https://www.youtube.com/watch?v=aaa"},{"title":"More","url":"https://www.youtube.com/watch?v=bbb"},{"title":"Again","url":"https://www.youtube.com/watch?v=aaa"}]}`
	if got != want {
		t.Fatalf("ResolvePlaceholders = %s", got)
	}
}

func TestResolvePlaceholdersEmptyMap(t *testing.T) {
	text := "nothing to do [V1]"
	if got := ResolvePlaceholders(text, nil); got != text {
		t.Fatalf("empty map must leave text unchanged, got %s", got)
	}
}
