package assets

import "testing"

func TestMessages(t *testing.T) {
	msgs, err := Messages()
	if err != nil {
		t.Fatalf("Messages: %v", err)
	}
	for _, k := range []string{"start", "ask_length", "ask_move", "ask_retry", "result_title", "result_outcome", "result_tries", "error_prefix"} {
		if msgs[k] == "" {
			t.Errorf("missing message %q", k)
		}
	}
}
