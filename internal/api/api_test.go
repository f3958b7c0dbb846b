package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/olenak/lingocards/internal/api"
	"github.com/olenak/lingocards/internal/auth"
	"github.com/olenak/lingocards/internal/models"
	"github.com/olenak/lingocards/internal/repository/sqlite"
	"github.com/olenak/lingocards/internal/services"
	"github.com/olenak/lingocards/internal/testutil"
	"github.com/olenak/lingocards/internal/testutil/mocks"
)

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestServer(t *testing.T) http.Handler {
	db := testutil.NewTestDB(t)
	t.Cleanup(func() { testutil.MustClose(t, db) })

	userRepo := sqlite.NewUserRepository(db)
	collectionRepo := sqlite.NewCollectionRepository(db)
	flashcardRepo := sqlite.NewFlashcardRepository(db)
	shareRepo := sqlite.NewShareRepository(db)
	sessionRepo := sqlite.NewSessionRepository(db)
	progressRepo := sqlite.NewProgressRepository(db)
	statsRepo := sqlite.NewStatsRepository(db)

	jwtManager := auth.NewJWTManager("0123456789abcdef0123456789abcdef", "lingocards-test", time.Hour)
	queue := new(mocks.MockQueue)

	collectionService := services.NewCollectionService(collectionRepo, shareRepo)

	srv := &api.Server{
		AuthService:       services.NewAuthService(userRepo, jwtManager),
		CollectionService: collectionService,
		FlashcardService:  services.NewFlashcardService(flashcardRepo, collectionService),
		ShareService:      services.NewShareService(shareRepo, collectionRepo, userRepo, queue, "http://localhost:8080"),
		StudyService:      services.NewStudyService(sessionRepo, flashcardRepo, progressRepo, collectionService),
		StatsService:      services.NewStatsService(statsRepo, progressRepo, collectionService),
		MediaService:      services.NewMediaService(t.TempDir(), 1<<20),
		JWT:               jwtManager,
		MediaDir:          t.TempDir(),
	}
	return srv.Routes()
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), "body: %s", rec.Body.String())
	return rec, env
}

func registerUser(t *testing.T, h http.Handler, email string) string {
	t.Helper()
	rec, env := doJSON(t, h, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    email,
		"password": "supersecret",
		"name":     "Tester",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token
}

func createCollectionWithCards(t *testing.T, h http.Handler, token string, terms ...string) models.Collection {
	t.Helper()
	rec, env := doJSON(t, h, http.MethodPost, "/api/collections", token, map[string]any{
		"name":        "Spanish Basics",
		"source_lang": "es",
		"target_lang": "en",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var collection models.Collection
	require.NoError(t, json.Unmarshal(env.Data, &collection))

	for _, term := range terms {
		rec, _ = doJSON(t, h, http.MethodPost, fmt.Sprintf("/api/collections/%d/flashcards", collection.ID), token, map[string]string{
			"term":       term,
			"definition": "definition of " + term,
		})
		require.Equal(t, http.StatusCreated, rec.Code)
	}
	return collection
}

func TestHealthz(t *testing.T) {
	h := newTestServer(t)

	rec, env := doJSON(t, h, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", env.Status)
}

func TestAuthRequired(t *testing.T) {
	h := newTestServer(t)

	rec, env := doJSON(t, h, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "error", env.Status)

	var data struct {
		StatusCode int    `json:"statusCode"`
		Code       string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, http.StatusUnauthorized, data.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", data.Code)
}

func TestRegisterAndLogin(t *testing.T) {
	h := newTestServer(t)
	registerUser(t, h, "u@example.com")

	rec, env := doJSON(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "u@example.com",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", env.Status)

	rec, _ = doJSON(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "u@example.com",
		"password": "wrongpassword",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Duplicate registration conflicts.
	rec, _ = doJSON(t, h, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    "u@example.com",
		"password": "supersecret",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestStudyFlow(t *testing.T) {
	h := newTestServer(t)
	token := registerUser(t, h, "u@example.com")

	collection := createCollectionWithCards(t, h, token, "perro", "gato", "casa", "agua")

	// Start a session.
	rec, env := doJSON(t, h, http.MethodPost, "/api/study-sessions/start", token, map[string]any{
		"collectionId": collection.ID,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var session models.StudySession
	require.NoError(t, json.Unmarshal(env.Data, &session))
	assert.Len(t, session.Cards, 4)
	assert.Equal(t, 0, session.CurrentIndex)
	assert.Equal(t, models.PhaseIntroduction, session.Status)

	// A wrong answer keeps the index and drops the card's score.
	rec, env = doJSON(t, h, http.MethodPost, fmt.Sprintf("/api/study-sessions/%d/check", collection.ID), token, map[string]string{
		"answer": "definitely wrong",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var check services.CheckResult
	require.NoError(t, json.Unmarshal(env.Data, &check))
	assert.False(t, check.Correct)
	assert.Equal(t, "perro", check.CorrectAnswer)
	assert.Equal(t, 0, check.Session.CurrentIndex)
	assert.Equal(t, 25, check.Session.Cards[0].Score)

	// A correct answer advances the sub-phase.
	rec, env = doJSON(t, h, http.MethodPost, fmt.Sprintf("/api/study-sessions/%d/check", collection.ID), token, map[string]string{
		"answer": "Perro",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &check))
	assert.True(t, check.Correct)
	assert.True(t, check.Session.Cards[0].Intro)
	assert.Equal(t, models.PhaseQuiz, check.Session.Status)

	// The current session endpoint returns the same state.
	rec, env = doJSON(t, h, http.MethodGet, fmt.Sprintf("/api/study-sessions/%d", collection.ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &session))
	assert.Equal(t, models.PhaseQuiz, session.Status)
}

func TestCheckAnswer_EmptyAnswerRejected(t *testing.T) {
	h := newTestServer(t)
	token := registerUser(t, h, "u@example.com")
	collection := createCollectionWithCards(t, h, token, "perro", "gato", "casa", "agua")

	rec, _ := doJSON(t, h, http.MethodPost, "/api/study-sessions/start", token, map[string]any{
		"collectionId": collection.ID,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	checkPath := fmt.Sprintf("/api/study-sessions/%d/check", collection.ID)
	for _, body := range []map[string]string{{}, {"answer": ""}, {"answer": "   "}} {
		rec, env := doJSON(t, h, http.MethodPost, checkPath, token, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "error", env.Status)
	}

	// The malformed requests must not have been scored as misses.
	rec, env := doJSON(t, h, http.MethodGet, fmt.Sprintf("/api/study-sessions/%d", collection.ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var session models.StudySession
	require.NoError(t, json.Unmarshal(env.Data, &session))
	assert.Equal(t, 30, session.Cards[0].Score)
	assert.Equal(t, models.PhaseIntroduction, session.Status)
}

func TestStudyResponseKeys(t *testing.T) {
	h := newTestServer(t)
	token := registerUser(t, h, "u@example.com")
	collection := createCollectionWithCards(t, h, token, "perro", "gato", "casa", "agua")

	rec, env := doJSON(t, h, http.MethodPost, "/api/study-sessions/start", token, map[string]any{
		"collectionId": collection.ID,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var sessionKeys map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &sessionKeys))
	for _, key := range []string{"id", "userId", "collectionId", "flashcards", "currentIndex", "status", "score", "startTime", "endTime"} {
		assert.Contains(t, sessionKeys, key)
	}

	var cardKeys []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(sessionKeys["flashcards"], &cardKeys))
	require.Len(t, cardKeys, 4)
	for _, key := range []string{"flashcardId", "term", "intro", "quiz", "typing", "score"} {
		assert.Contains(t, cardKeys[0], key)
	}

	rec, env = doJSON(t, h, http.MethodPost, fmt.Sprintf("/api/study-sessions/%d/check", collection.ID), token, map[string]string{
		"answer": "perro",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var checkKeys map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &checkKeys))
	for _, key := range []string{"isCorrect", "correctAnswer", "nextPhase"} {
		assert.Contains(t, checkKeys, key)
	}
	var updated models.StudySession
	require.NoError(t, json.Unmarshal(checkKeys["nextPhase"], &updated))
	assert.True(t, updated.Cards[0].Intro)
}

func TestStudySessionStart_TooFewCards(t *testing.T) {
	h := newTestServer(t)
	token := registerUser(t, h, "u@example.com")

	rec, env := doJSON(t, h, http.MethodPost, "/api/collections", token, map[string]any{"name": "Tiny"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var collection models.Collection
	require.NoError(t, json.Unmarshal(env.Data, &collection))

	rec, env = doJSON(t, h, http.MethodPost, "/api/study-sessions/start", token, map[string]any{
		"collectionId": collection.ID,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "error", env.Status)
}

func TestCollectionAccessControl(t *testing.T) {
	h := newTestServer(t)
	ownerToken := registerUser(t, h, "owner@example.com")
	strangerToken := registerUser(t, h, "stranger@example.com")

	rec, env := doJSON(t, h, http.MethodPost, "/api/collections", ownerToken, map[string]any{"name": "Private"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var collection models.Collection
	require.NoError(t, json.Unmarshal(env.Data, &collection))

	rec, _ = doJSON(t, h, http.MethodGet, fmt.Sprintf("/api/collections/%d", collection.ID), strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = doJSON(t, h, http.MethodDelete, fmt.Sprintf("/api/collections/%d", collection.ID), strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = doJSON(t, h, http.MethodDelete, fmt.Sprintf("/api/collections/%d", collection.ID), ownerToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
