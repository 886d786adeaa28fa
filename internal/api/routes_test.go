package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/akeath18/HPE-assets/internal/config"
	"github.com/akeath18/HPE-assets/internal/repository/file"
	"github.com/akeath18/HPE-assets/internal/service"
	"github.com/akeath18/HPE-assets/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCoachKey = "test-coach-key"

type testServer struct {
	router *gin.Engine
	plans  *storage.MemoryStore
}

func newTestServer(t *testing.T, cfg config.Config, remote []byte) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo, err := file.NewSubmissionStore(filepath.Join(t.TempDir(), "submissions.json"))
	require.NoError(t, err)

	plans := storage.NewMemoryStore(remote)
	submissionService := service.NewSubmissionService(repo)
	reviewService := service.NewReviewService(repo, plans)

	router := gin.New()
	SetupRoutes(router, cfg, submissionService, reviewService)
	return &testServer{router: router, plans: plans}
}

func coachConfig() config.Config {
	var cfg config.Config
	cfg.Review.CoachKey = testCoachKey
	return cfg
}

func (s *testServer) do(method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	recorder := httptest.NewRecorder()
	s.router.ServeHTTP(recorder, req)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

func withCoachKey() map[string]string {
	return map[string]string{"x-coach-key": testCoachKey}
}

const submissionBody = `{
	"clientId": "jane-doe",
	"submittedBy": "Coach A",
	"note": "Week 3 updates",
	"updatedClient": {"id": "Jane Doe!!", "profile": {"clientName": "Jane"}}
}`

func submitOne(t *testing.T, server *testServer) string {
	t.Helper()
	recorder := server.do(http.MethodPost, "/api/submissions", submissionBody, nil)
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	body := decodeBody(t, recorder)
	id, _ := body["submissionId"].(string)
	require.NotEmpty(t, id)
	return id
}

func TestHealthEndpoint(t *testing.T) {
	cfg := coachConfig()
	cfg.GitHub.Token = "ghp_test"
	server := newTestServer(t, cfg, []byte(`{"clients": []}`))

	recorder := server.do(http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	body := decodeBody(t, recorder)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, true, body["githubConfigured"])
	assert.Equal(t, true, body["coachKeyConfigured"])
	assert.NotEmpty(t, body["now"])
}

func TestCreateSubmission(t *testing.T) {
	server := newTestServer(t, coachConfig(), []byte(`{"clients": []}`))

	recorder := server.do(http.MethodPost, "/api/submissions", submissionBody, nil)
	require.Equal(t, http.StatusCreated, recorder.Code)

	body := decodeBody(t, recorder)
	assert.Equal(t, true, body["ok"])
	assert.NotEmpty(t, body["submissionId"])
}

func TestCreateSubmission_InvalidPayload(t *testing.T) {
	server := newTestServer(t, coachConfig(), []byte(`{"clients": []}`))

	cases := map[string]string{
		"not json":              `{{{`,
		"missing updatedClient": `{"clientId": "jane", "submittedBy": "Coach A"}`,
		"missing profile":       `{"clientId": "jane", "submittedBy": "Coach A", "updatedClient": {"id": "jane"}}`,
	}

	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			recorder := server.do(http.MethodPost, "/api/submissions", payload, nil)
			assert.Equal(t, http.StatusBadRequest, recorder.Code)

			body := decodeBody(t, recorder)
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestPendingQueue_RequiresCoachKey(t *testing.T) {
	server := newTestServer(t, coachConfig(), []byte(`{"clients": []}`))

	recorder := server.do(http.MethodGet, "/api/submissions/pending", "", nil)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder = server.do(http.MethodGet, "/api/submissions/pending", "", map[string]string{"x-coach-key": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Equal(t, "Unauthorized coach key.", decodeBody(t, recorder)["error"])
}

func TestPendingQueue_AcceptsBearerToken(t *testing.T) {
	server := newTestServer(t, coachConfig(), []byte(`{"clients": []}`))

	recorder := server.do(http.MethodGet, "/api/submissions/pending", "",
		map[string]string{"Authorization": "Bearer " + testCoachKey})
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestPendingQueue_UnconfiguredKeyIsServerError(t *testing.T) {
	server := newTestServer(t, config.Config{}, []byte(`{"clients": []}`))

	recorder := server.do(http.MethodGet, "/api/submissions/pending", "", withCoachKey())
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Contains(t, decodeBody(t, recorder)["error"], "not configured")
}

func TestPendingQueue_ListsSubmission(t *testing.T) {
	server := newTestServer(t, coachConfig(), []byte(`{"clients": []}`))
	id := submitOne(t, server)

	recorder := server.do(http.MethodGet, "/api/submissions/pending", "", withCoachKey())
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Submissions []struct {
			ID       string `json:"id"`
			ClientID string `json:"clientId"`
			Status   string `json:"status"`
		} `json:"submissions"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.Len(t, body.Submissions, 1)
	assert.Equal(t, id, body.Submissions[0].ID)
	assert.Equal(t, "jane-doe", body.Submissions[0].ClientID)
	assert.Equal(t, "pending", body.Submissions[0].Status)
}

func TestApprove_PublishesAndReturnsCommit(t *testing.T) {
	server := newTestServer(t, coachConfig(), []byte(`{"clients": []}`))
	id := submitOne(t, server)

	recorder := server.do(http.MethodPost, "/api/submissions/"+id+"/approve",
		`{"approvedBy": "Coach B"}`, withCoachKey())
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	body := decodeBody(t, recorder)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, id, body["submissionId"])
	assert.NotEmpty(t, body["commitSha"])

	// The remote document now carries the approved client.
	assert.Contains(t, string(server.plans.Content()), `"jane-doe"`)

	// The queue reflects the terminal state.
	recorder = server.do(http.MethodGet, "/api/submissions/history", "", withCoachKey())
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"approved"`)
}

func TestApprove_EmptyBodyAllowed(t *testing.T) {
	server := newTestServer(t, coachConfig(), []byte(`{"clients": []}`))
	id := submitOne(t, server)

	recorder := server.do(http.MethodPost, "/api/submissions/"+id+"/approve", "", withCoachKey())
	assert.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
}

func TestApprove_Twice_Conflicts(t *testing.T) {
	server := newTestServer(t, coachConfig(), []byte(`{"clients": []}`))
	id := submitOne(t, server)

	recorder := server.do(http.MethodPost, "/api/submissions/"+id+"/approve", "", withCoachKey())
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = server.do(http.MethodPost, "/api/submissions/"+id+"/approve", "", withCoachKey())
	assert.Equal(t, http.StatusConflict, recorder.Code)
	assert.Contains(t, decodeBody(t, recorder)["error"], "already approved")
}

func TestApprove_UnknownSubmission(t *testing.T) {
	server := newTestServer(t, coachConfig(), []byte(`{"clients": []}`))

	recorder := server.do(http.MethodPost, "/api/submissions/nope/approve", "", withCoachKey())
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestApprove_CorruptRemoteDocument(t *testing.T) {
	server := newTestServer(t, coachConfig(), []byte("not json at all"))
	id := submitOne(t, server)

	recorder := server.do(http.MethodPost, "/api/submissions/"+id+"/approve", "", withCoachKey())
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.NotEmpty(t, decodeBody(t, recorder)["error"])

	// The failure leaves the submission pending so the approval can be
	// retried after the remote file is repaired.
	recorder = server.do(http.MethodGet, "/api/submissions/pending", "", withCoachKey())
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), id)
}

func TestReject(t *testing.T) {
	server := newTestServer(t, coachConfig(), []byte(`{"clients": []}`))
	id := submitOne(t, server)

	recorder := server.do(http.MethodPost, "/api/submissions/"+id+"/reject",
		`{"reviewedBy": "Coach B", "reason": "needs work"}`, withCoachKey())
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, true, decodeBody(t, recorder)["ok"])

	// Rejection never touches the remote store.
	reads, writes := server.plans.Calls()
	assert.Zero(t, reads)
	assert.Zero(t, writes)

	recorder = server.do(http.MethodGet, "/api/submissions/history", "", withCoachKey())
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"rejected"`)
	assert.Contains(t, recorder.Body.String(), "needs work")
}
