package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pairkeep/pairkeep/internal/config"
	"github.com/pairkeep/pairkeep/internal/logger"
	"github.com/pairkeep/pairkeep/models"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func newTestGateway(t *testing.T, handler http.Handler) (*HTTPGateway, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	gw, err := NewHTTPGateway(config.AgentRemote{
		BaseURL:        srv.URL,
		RequestTimeout: 5 * time.Second,
	}, staticToken("test-token"), logger.Nop())
	require.NoError(t, err)
	return gw, srv
}

func remoteMoodJSON(id string) map[string]any {
	return map[string]any{
		"id":           id,
		"user_id":      "user-1",
		"mood_type":    "happy",
		"mood_types":   []string{"happy", "calm"},
		"note":         "good day",
		"captured_day": "2026-08-29",
		"created_at":   "2026-08-29T10:00:00Z",
	}
}

func TestNormalizeBaseURL(t *testing.T) {
	got, err := normalizeBaseURL("api.example.test/")
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.test", got)

	_, err = normalizeBaseURL("   ")
	assert.Error(t, err)
}

func TestCreate_Success(t *testing.T) {
	gw, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/rest/v1/moods", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "return=representation", r.Header.Get("Prefer"))

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode([]map[string]any{remoteMoodJSON("mood-1")})
	}))

	mood, err := gw.Create(context.Background(), models.MoodInsert{
		UserID: "user-1", MoodType: "happy", MoodTypes: []string{"happy", "calm"},
		Note: "good day", CapturedDay: "2026-08-29",
	})
	require.NoError(t, err)
	assert.Equal(t, "mood-1", mood.ID)
	assert.Equal(t, "happy", mood.MoodType)
}

func TestCreate_UniqueViolationFallsBackToUpdate(t *testing.T) {
	var patched bool
	gw, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			w.WriteHeader(http.StatusConflict)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"code":    pgerrcode.UniqueViolation,
				"message": "duplicate key value violates unique constraint",
			})
		case http.MethodPatch:
			patched = true
			assert.Equal(t, "eq.user-1", r.URL.Query().Get("user_id"))
			assert.Equal(t, "eq.2026-08-29", r.URL.Query().Get("captured_day"))
			_ = json.NewEncoder(w).Encode([]map[string]any{remoteMoodJSON("mood-existing")})
		default:
			t.Fatalf("unexpected method %s", r.Method)
		}
	}))

	mood, err := gw.Create(context.Background(), models.MoodInsert{
		UserID: "user-1", MoodType: "happy", CapturedDay: "2026-08-29",
	})
	require.NoError(t, err)
	assert.True(t, patched)
	assert.Equal(t, "mood-existing", mood.ID)
}

func TestCreate_MalformedRowIsValidationError(t *testing.T) {
	gw, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		row := remoteMoodJSON("mood-1")
		delete(row, "created_at")
		_ = json.NewEncoder(w).Encode([]map[string]any{row})
	}))

	_, err := gw.Create(context.Background(), models.MoodInsert{UserID: "user-1"})

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.False(t, IsRetryable(err))
}

func TestCreate_TransportFailureIsRetryable(t *testing.T) {
	gw, srv := newTestGateway(t, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	_, err := gw.Create(context.Background(), models.MoodInsert{UserID: "user-1"})

	var se *ServiceError
	require.ErrorAs(t, err, &se)
	assert.True(t, se.IsNetworkError)
	assert.True(t, IsRetryable(err))
	assert.Contains(t, se.Hint, "back online")
}

func TestCreate_PermissionDeniedIsPermanent(t *testing.T) {
	gw, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"code":    pgerrcode.InsufficientPrivilege,
			"message": "permission denied for table moods",
		})
	}))

	_, err := gw.Create(context.Background(), models.MoodInsert{UserID: "user-1"})

	var se *ServiceError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, pgerrcode.InsufficientPrivilege, se.Code)
	assert.False(t, IsRetryable(err))
}

func TestLatestForUser_NoRowsYieldsNil(t *testing.T) {
	gw, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotAcceptable)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"code":    "PGRST116",
			"message": "JSON object requested, multiple (or no) rows returned",
		})
	}))

	mood, err := gw.LatestForUser(context.Background(), "user-2")
	require.NoError(t, err)
	assert.Nil(t, mood)
}

func TestLatestForUser_ReturnsRow(t *testing.T) {
	gw, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "eq.user-2", r.URL.Query().Get("user_id"))
		assert.Equal(t, "created_at.desc", r.URL.Query().Get("order"))
		_ = json.NewEncoder(w).Encode(remoteMoodJSON("mood-7"))
	}))

	mood, err := gw.LatestForUser(context.Background(), "user-2")
	require.NoError(t, err)
	require.NotNil(t, mood)
	assert.Equal(t, "mood-7", mood.ID)
}

func TestFetchByDateRange(t *testing.T) {
	gw, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, []string{"gte.2026-08-01T00:00:00Z", "lte.2026-08-29T23:59:59Z"},
			r.URL.Query()["created_at"])
		_ = json.NewEncoder(w).Encode([]map[string]any{remoteMoodJSON("mood-1"), remoteMoodJSON("mood-2")})
	}))

	moods, err := gw.FetchByDateRange(context.Background(), "user-1",
		"2026-08-01T00:00:00Z", "2026-08-29T23:59:59Z")
	require.NoError(t, err)
	assert.Len(t, moods, 2)
}

func TestSendAndListNotes(t *testing.T) {
	gw, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/rest/v1/love_notes", r.URL.Path)
		switch r.Method {
		case http.MethodPost:
			w.WriteHeader(http.StatusCreated)
		case http.MethodGet:
			assert.Equal(t, "eq.user-1", r.URL.Query().Get("recipient_id"))
			_ = json.NewEncoder(w).Encode([]models.LoveNote{{ID: "note-1", Text: "miss you"}})
		}
	}))

	require.NoError(t, gw.Send(context.Background(), models.LoveNote{
		SenderID: "user-1", RecipientID: "user-2", Text: "hi",
	}))

	notes, err := gw.FetchSince(context.Background(), "user-1", "2026-08-01T00:00:00Z")
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "note-1", notes[0].ID)
}

func TestPing(t *testing.T) {
	gw, srv := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/health", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))

	assert.True(t, gw.Ping(context.Background()))

	srv.Close()
	assert.False(t, gw.Ping(context.Background()))
}

func TestOfflineCheckFailsFastWithoutRequest(t *testing.T) {
	requests := 0
	gw, _ := newTestGateway(t, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		requests++
	}))
	gw.SetOnlineCheck(func() bool { return false })

	_, err := gw.Create(context.Background(), models.MoodInsert{UserID: "user-1"})

	var se *ServiceError
	require.ErrorAs(t, err, &se)
	assert.True(t, se.IsNetworkError)
	assert.Zero(t, requests, "no request may leave the device while offline")
}

func TestFetchByID_UnknownIDYieldsNil(t *testing.T) {
	gw, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "eq.mood-404", r.URL.Query().Get("id"))
		w.WriteHeader(http.StatusNotAcceptable)
		_ = json.NewEncoder(w).Encode(map[string]string{"code": "PGRST116", "message": "no rows"})
	}))

	mood, err := gw.FetchByID(context.Background(), "mood-404")
	require.NoError(t, err)
	assert.Nil(t, mood)
}

func TestFetchByOwner_AppliesLimit(t *testing.T) {
	gw, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "7", r.URL.Query().Get("limit"))
		_ = json.NewEncoder(w).Encode([]map[string]any{remoteMoodJSON("mood-1")})
	}))

	moods, err := gw.FetchByOwner(context.Background(), "user-1", 7)
	require.NoError(t, err)
	assert.Len(t, moods, 1)
}

func TestUpdateAndDelete(t *testing.T) {
	gw, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPatch:
			assert.Equal(t, "eq.mood-1", r.URL.Query().Get("id"))
			_ = json.NewEncoder(w).Encode([]map[string]any{remoteMoodJSON("mood-1")})
		case http.MethodDelete:
			assert.Equal(t, "eq.mood-1", r.URL.Query().Get("id"))
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Fatalf("unexpected method %s", r.Method)
		}
	}))

	mood, err := gw.Update(context.Background(), "mood-1", models.MoodInsert{UserID: "user-1", MoodType: "calm"})
	require.NoError(t, err)
	assert.Equal(t, "mood-1", mood.ID)

	require.NoError(t, gw.Delete(context.Background(), "mood-1"))
}

func TestIsRetryable_UnknownErrors(t *testing.T) {
	assert.True(t, IsRetryable(errors.New("some transient thing")))
}
