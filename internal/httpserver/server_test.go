package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/robalobadob/bridge/internal/bridge"
	"github.com/robalobadob/bridge/internal/store"
)

// downUpDown returns generators for the bridge [D, U, D, ...].
func downUpDown() bridge.NumberGenerator {
	vals := []int{0, 1, 0}
	i := 0
	return bridge.GeneratorFunc(func() int {
		v := vals[i%len(vals)]
		i++
		return v
	})
}

func newTestServer() *Server {
	return New(store.NewMemoryStore(), downUpDown)
}

func do(t *testing.T, s *Server, method, path, body string) (*httptest.ResponseRecorder, gameRes) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	var res gameRes
	if rec.Code == http.StatusOK && strings.HasPrefix(path, "/game") {
		if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
			t.Fatalf("%s %s: decode %q: %v", method, path, rec.Body.String(), err)
		}
	}
	return rec, res
}

func newGame(t *testing.T, s *Server) string {
	t.Helper()
	rec, res := do(t, s, http.MethodPost, "/game/new", `{"size":"3"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("new game status = %d body=%s", rec.Code, rec.Body.String())
	}
	if res.Size != 3 || res.State != "in_progress" || res.Tries != 1 {
		t.Fatalf("new game = %+v", res)
	}
	return res.GameID
}

func TestHealth(t *testing.T) {
	rec, _ := do(t, newTestServer(), http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok":true`) {
		t.Fatalf("health = %d %s", rec.Code, rec.Body.String())
	}
}

func TestGameFlow_FailRetryCross(t *testing.T) {
	s := newTestServer()
	id := newGame(t, s)

	move := func(dir string) (int, gameRes) {
		rec, res := do(t, s, http.MethodPost, "/game/move", `{"gameId":"`+id+`","direction":"`+dir+`"}`)
		return rec.Code, res
	}

	if code, res := move("D"); code != http.StatusOK || res.State != "in_progress" {
		t.Fatalf("move D = %d %+v", code, res)
	}
	code, res := move("D")
	if code != http.StatusOK || res.State != "failed" {
		t.Fatalf("move D (wrong) = %d %+v", code, res)
	}
	if len(res.Map.Down) != 2 || res.Map.Down[1] != bridge.CellFail || res.Map.Up[0] != bridge.CellBlank {
		t.Errorf("map = %+v", res.Map)
	}
	if res.Ended {
		t.Error("failed attempt reported as ended")
	}
	if code, _ := move("U"); code != http.StatusConflict {
		t.Errorf("move while failed = %d, want 409", code)
	}

	rec, res := do(t, s, http.MethodPost, "/game/retry", `{"gameId":"`+id+`","command":"R"}`)
	if rec.Code != http.StatusOK || res.Retry == nil || !*res.Retry || res.Tries != 2 || len(res.Map.Up) != 0 {
		t.Fatalf("retry = %d %+v", rec.Code, res)
	}

	move("D")
	move("U")
	code, res = move("D")
	if code != http.StatusOK || res.State != "crossed" || !res.Ended || res.Result != bridge.ResultSuccess {
		t.Fatalf("final move = %d %+v", code, res)
	}

	rec, res = do(t, s, http.MethodGet, "/game/"+id, "")
	if rec.Code != http.StatusOK || res.Tries != 2 || res.Result != bridge.ResultSuccess {
		t.Errorf("status = %d %+v", rec.Code, res)
	}
}

func TestGameFlow_Quit(t *testing.T) {
	s := newTestServer()
	id := newGame(t, s)
	do(t, s, http.MethodPost, "/game/move", `{"gameId":"`+id+`","direction":"U"}`)

	rec, res := do(t, s, http.MethodPost, "/game/retry", `{"gameId":"`+id+`","command":"Q"}`)
	if rec.Code != http.StatusOK || res.Retry == nil || *res.Retry {
		t.Fatalf("quit = %d %+v", rec.Code, res)
	}
	if !res.Ended || res.Result != bridge.ResultFailure || res.Tries != 1 {
		t.Errorf("quit result = %+v", res)
	}
}

func TestErrors(t *testing.T) {
	s := newTestServer()
	id := newGame(t, s)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"bad json", http.MethodPost, "/game/new", `{`, http.StatusBadRequest},
		{"length too small", http.MethodPost, "/game/new", `{"size":"2"}`, http.StatusBadRequest},
		{"length not numeric", http.MethodPost, "/game/new", `{"size":"2a"}`, http.StatusBadRequest},
		{"bad direction", http.MethodPost, "/game/move", `{"gameId":"` + id + `","direction":"u"}`, http.StatusBadRequest},
		{"unknown game", http.MethodPost, "/game/move", `{"gameId":"nope","direction":"U"}`, http.StatusNotFound},
		{"bad command", http.MethodPost, "/game/retry", `{"gameId":"` + id + `","command":"q"}`, http.StatusBadRequest},
		{"retry before failing", http.MethodPost, "/game/retry", `{"gameId":"` + id + `","command":"R"}`, http.StatusConflict},
		{"unknown status", http.MethodGet, "/game/nope", "", http.StatusNotFound},
		{"unknown route", http.MethodGet, "/nowhere", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _ := do(t, s, tt.method, tt.path, tt.body)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.want, rec.Body.String())
			}
			if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
				t.Errorf("Content-Type = %q, want application/json", ct)
			}
			var body struct {
				Error string `json:"error"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || body.Error == "" {
				t.Errorf("body %q is not a JSON error: %v", rec.Body.String(), err)
			}
		})
	}
}

func TestNewGameReplacesSession(t *testing.T) {
	s := newTestServer()
	first := newGame(t, s)
	second := newGame(t, s)
	if first == second {
		t.Fatal("expected distinct game IDs")
	}
	rec, _ := do(t, s, http.MethodGet, "/game/"+first, "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("old session status = %d, want 404", rec.Code)
	}
}
