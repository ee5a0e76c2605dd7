package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tablestate/internal/config"
	"github.com/roach88/tablestate/internal/logging"
	"github.com/roach88/tablestate/internal/record"
	"github.com/roach88/tablestate/internal/session"
	"github.com/roach88/tablestate/internal/table"
)

const testConfig = `
name: people
row_key: id
columns:
  - key: name
    sorter: {type: string}
  - key: age
    sorter: {type: number}
  - key: team
    filter: {type: equals}
    filters:
      - {text: Core, value: core}
      - {text: Edge, value: edge}
pagination:
  page_size: 3
selection:
  type: checkbox
  disabled_when: {field: id, equals: "2"}
  selections:
    - {key: core, text: Core team, action: select, when: {field: team, equals: core}}
`

func people() []record.Object {
	teams := []string{"core", "edge"}
	out := make([]record.Object, 7)
	for i := range out {
		out[i] = record.NewObject(
			record.O("id", record.Int(i+1)),
			record.O("name", record.String(fmt.Sprintf("p%d", i+1))),
			record.O("age", record.Int(70-i*10)),
			record.O("team", record.String(teams[i%2])),
		)
	}
	return out
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg, err := config.ParseYAML([]byte(testConfig))
	require.NoError(t, err)
	props, err := config.Build(cfg)
	require.NoError(t, err)
	props.DataSource = people()

	tbl := table.New(props, table.WithLogger(logging.Discard()))
	sess := session.New(tbl,
		session.WithIDGenerator(session.NewFixedGenerator("test-session")),
		session.WithLogger(logging.Discard()),
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = sess.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	return NewServer(sess, logging.Discard())
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

type response struct {
	Event    map[string]any `json:"event"`
	Snapshot struct {
		Sort         table.SortState     `json:"sort"`
		Filters      map[string][]string `json:"filters"`
		Pagination   *table.Pagination   `json:"pagination"`
		Total        int                 `json:"total"`
		PageKeys     []string            `json:"page_keys"`
		SelectedKeys []string            `json:"selected_keys"`
		Dirty        bool                `json:"dirty"`
	} `json:"snapshot"`
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) response {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestSnapshot(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/table/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var snap table.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, []string{"1", "2", "3"}, snap.PageKeys)
	assert.Equal(t, 7, snap.Total)
	require.NotNil(t, snap.Pagination)
	assert.Equal(t, table.Pagination{Current: 1, PageSize: 3, Total: 7}, *snap.Pagination)
}

func TestSortAndPage(t *testing.T) {
	s := newTestServer(t)

	resp := decodeResponse(t, do(t, s, http.MethodPost, "/table/sort", `{"column":"age"}`))
	assert.Equal(t, "sort", resp.Event["extra"].(map[string]any)["action"])
	assert.Equal(t, table.SortState{ColumnKey: "age", Order: table.Ascend}, resp.Snapshot.Sort)
	assert.Equal(t, []string{"7", "6", "5"}, resp.Snapshot.PageKeys)

	resp = decodeResponse(t, do(t, s, http.MethodPost, "/table/page", `{"current":3}`))
	assert.Equal(t, []string{"1"}, resp.Snapshot.PageKeys)
	assert.Equal(t, 3, resp.Snapshot.Pagination.Current)

	resp = decodeResponse(t, do(t, s, http.MethodPost, "/table/page", `{"current":1,"page_size":5}`))
	assert.Equal(t, []string{"7", "6", "5", "4", "3"}, resp.Snapshot.PageKeys)
}

func TestFilterResetsPage(t *testing.T) {
	s := newTestServer(t)

	decodeResponse(t, do(t, s, http.MethodPost, "/table/page", `{"current":2}`))
	resp := decodeResponse(t, do(t, s, http.MethodPost, "/table/filter", `{"column":"team","values":["edge"]}`))

	assert.Equal(t, map[string][]string{"team": {"edge"}}, resp.Snapshot.Filters)
	assert.Equal(t, 3, resp.Snapshot.Total)
	assert.Equal(t, 1, resp.Snapshot.Pagination.Current)
	assert.Equal(t, []string{"2", "4", "6"}, resp.Snapshot.PageKeys)
}

func TestUnchangedFilterHasNullEvent(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/table/filter", `{"column":"team","values":[]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"event":null`)
}

func TestSelection(t *testing.T) {
	s := newTestServer(t)

	resp := decodeResponse(t, do(t, s, http.MethodPost, "/table/select", `{"index":0,"checked":true}`))
	assert.Equal(t, []string{"1"}, resp.Snapshot.SelectedKeys)
	assert.True(t, resp.Snapshot.Dirty)
	assert.Equal(t, "onSelect", resp.Event["way"])

	// Row "2" is disabled, so the range only adds "3".
	resp = decodeResponse(t, do(t, s, http.MethodPost, "/table/select", `{"index":2,"checked":true,"shift":true}`))
	assert.ElementsMatch(t, []string{"1", "3"}, resp.Snapshot.SelectedKeys)
	assert.Equal(t, "onSelectMultiple", resp.Event["way"])

	resp = decodeResponse(t, do(t, s, http.MethodPost, "/table/select/bulk", `{"op":"invert"}`))
	assert.Empty(t, resp.Snapshot.SelectedKeys)

	resp = decodeResponse(t, do(t, s, http.MethodPost, "/table/select/custom", `{"key":"core"}`))
	assert.Equal(t, "core", resp.Event["selection"])
	assert.Equal(t, []any{"1", "3"}, resp.Event["changed_keys"])
	assert.Equal(t, []string{"1", "3"}, resp.Snapshot.SelectedKeys)
}

func TestErrors(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name     string
		path     string
		body     string
		wantCode int
		wantErr  string
	}{
		{"unknown column", "/table/sort", `{"column":"nope"}`, http.StatusNotFound, "UNKNOWN_COLUMN"},
		{"not sortable", "/table/sort", `{"column":"team"}`, http.StatusConflict, "NOT_SORTABLE"},
		{"row out of range", "/table/select", `{"index":9,"checked":true}`, http.StatusBadRequest, "ROW_OUT_OF_RANGE"},
		{"unknown selection", "/table/select/custom", `{"key":"odd"}`, http.StatusNotFound, "UNKNOWN_SELECTION"},
		{"bad bulk op", "/table/select/bulk", `{"op":"some"}`, http.StatusBadRequest, CodeInvalidRequest},
		{"missing column", "/table/sort", `{}`, http.StatusBadRequest, CodeInvalidRequest},
		{"unknown field", "/table/sort", `{"column":"age","extra":1}`, http.StatusBadRequest, CodeInvalidRequest},
		{"malformed", "/table/page", `{`, http.StatusBadRequest, CodeInvalidRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
			assert.Equal(t, tt.wantErr, decodeError(t, rec).Code)
		})
	}
}

func TestClosedSession(t *testing.T) {
	tbl := table.New(table.Props{}, table.WithLogger(logging.Discard()))
	sess := session.New(tbl, session.WithLogger(logging.Discard()))
	sess.Stop()

	s := NewServer(sess, logging.Discard())
	rec := do(t, s, http.MethodGet, "/table/", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, CodeUnavailable, decodeError(t, rec).Code)
}

func TestRequestIDHeaderIsLogged(t *testing.T) {
	var buf bytes.Buffer
	s := newTestServer(t)
	s.logger = slog.New(slog.NewTextHandler(&buf, nil))

	req := httptest.NewRequest(http.MethodGet, "/table/", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	s.Router().ServeHTTP(httptest.NewRecorder(), req)

	assert.Contains(t, buf.String(), "request_id=abc-123")
	assert.Contains(t, buf.String(), "status=200")
}
