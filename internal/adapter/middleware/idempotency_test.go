package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// helper: new Echo with the middleware and a run-trigger style route
func setupEcho(rdb *redis.Client, ttl time.Duration, handler echo.HandlerFunc) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(IdempotencyMiddleware(rdb, ttl))
	e.POST("/runs", handler)
	e.GET("/runs", handler) // for the non-mutating bypass test
	return e
}

func mkJSONBody(t *testing.T, v any) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return bytes.NewReader(b)
}

func doReq(t *testing.T, e *echo.Echo, method, path string, body io.Reader, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func newMiniredisClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, rdb
}

func validHeaders() map[string]string {
	return map[string]string{
		"Ax-Request-Id":  strings.Repeat("a", 32),
		"Ax-Request-At":  strconv.FormatInt(time.Now().Unix(), 10),
		"Ax-Operator-Id": strings.Repeat("b", 32),
	}
}

func triggeredHandler(c echo.Context) error {
	return c.JSON(http.StatusCreated, map[string]any{"run_id": "deadbeef", "status": "succeeded"})
}

func Test_BypassOnGET_NoHeadersRequired(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	e := setupEcho(rdb, 30*time.Second, func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "get ok"})
	})
	rec := doReq(t, e, http.MethodGet, "/runs", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func Test_ValidationFailures(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	e := setupEcho(rdb, 30*time.Second, triggeredHandler)

	cases := []struct {
		name   string
		mutate func(h map[string]string)
		want   int
	}{
		{"missing request id", func(h map[string]string) { delete(h, "Ax-Request-Id") }, http.StatusBadRequest},
		{"bad request id", func(h map[string]string) { h["Ax-Request-Id"] = "nope" }, http.StatusBadRequest},
		{"missing request at", func(h map[string]string) { delete(h, "Ax-Request-At") }, http.StatusBadRequest},
		{"naive timestamp", func(h map[string]string) { h["Ax-Request-At"] = "2026-03-05T10:00:00" }, http.StatusBadRequest},
		{"skewed timestamp", func(h map[string]string) {
			h["Ax-Request-At"] = strconv.FormatInt(time.Now().Add(-time.Hour).Unix(), 10)
		}, http.StatusBadRequest},
		{"missing operator id", func(h map[string]string) { delete(h, "Ax-Operator-Id") }, http.StatusBadRequest},
		{"bad operator id", func(h map[string]string) { h["Ax-Operator-Id"] = "UPPER" }, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := validHeaders()
			tc.mutate(h)
			rec := doReq(t, e, http.MethodPost, "/runs", mkJSONBody(t, map[string]any{}), h)
			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d (body=%s)", rec.Code, tc.want, rec.Body.String())
			}
		})
	}
}

func Test_FirstCallPassesThrough(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()

	calls := 0
	e := setupEcho(rdb, 30*time.Second, func(c echo.Context) error {
		calls++
		return triggeredHandler(c)
	})

	rec := doReq(t, e, http.MethodPost, "/runs", mkJSONBody(t, map[string]any{}), validHeaders())
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body=%s)", rec.Code, rec.Body.String())
	}
	if calls != 1 {
		t.Fatalf("handler calls = %d, want 1", calls)
	}
}

func Test_ReplaySameRequest(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()

	calls := 0
	e := setupEcho(rdb, 30*time.Second, func(c echo.Context) error {
		calls++
		return triggeredHandler(c)
	})

	h := validHeaders()
	body := map[string]any{}

	rec1 := doReq(t, e, http.MethodPost, "/runs", mkJSONBody(t, body), h)
	if rec1.Code != http.StatusCreated {
		t.Fatalf("first call status = %d", rec1.Code)
	}
	rec2 := doReq(t, e, http.MethodPost, "/runs", mkJSONBody(t, body), h)
	if rec2.Code != http.StatusCreated {
		t.Fatalf("replay status = %d, want 201", rec2.Code)
	}
	if calls != 1 {
		t.Fatalf("handler calls = %d, want 1 (replay must not rerun the pipeline)", calls)
	}
	if rec1.Body.String() != rec2.Body.String() {
		t.Fatalf("replay body differs:\n%s\nvs\n%s", rec1.Body.String(), rec2.Body.String())
	}
}

func Test_SameIDDifferentBody_Conflict(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	e := setupEcho(rdb, 30*time.Second, triggeredHandler)

	h := validHeaders()
	rec1 := doReq(t, e, http.MethodPost, "/runs", mkJSONBody(t, map[string]any{"note": "one"}), h)
	if rec1.Code != http.StatusCreated {
		t.Fatalf("first call status = %d", rec1.Code)
	}
	rec2 := doReq(t, e, http.MethodPost, "/runs", mkJSONBody(t, map[string]any{"note": "two"}), h)
	if rec2.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec2.Code)
	}
}

func Test_InProgress_Conflict(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	e := setupEcho(rdb, 30*time.Second, triggeredHandler)

	// Simulate an in-flight run by pre-seeding the provisional lock.
	h := validHeaders()
	body := mkJSONBody(t, map[string]any{})
	raw, _ := io.ReadAll(body)
	entry := idempEntry{InProgress: true, BodySHA256: bodyHash(raw), RequestID: h["Ax-Request-Id"], CreatedAt: nowUTC()}
	payload, _ := json.Marshal(entry)
	key := buildKey(http.MethodPost, "/runs", h["Ax-Operator-Id"], h["Ax-Request-Id"])
	if err := mr.Set(key, string(payload)); err != nil {
		t.Fatalf("seed redis: %v", err)
	}

	rec := doReq(t, e, http.MethodPost, "/runs", bytes.NewReader(raw), h)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409 (body=%s)", rec.Code, rec.Body.String())
	}
}
