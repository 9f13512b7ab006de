package transcript

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	client "github.com/snakanz/adviceApp-sub002/internal/infrastructure/external/transcript"
)

type stubFetcher struct {
	body []byte
	err  error
	urls []string
}

func (f *stubFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	f.urls = append(f.urls, url)
	return f.body, f.err
}

type stubArchiver struct {
	objects map[string]string
	err     error
}

func (a *stubArchiver) UploadText(_ context.Context, name, content string) error {
	if a.err != nil {
		return a.err
	}
	if a.objects == nil {
		a.objects = map[string]string{}
	}
	a.objects[name] = content
	return nil
}

func TestExtractText(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"text field", `{"text":"Client wants to increase pension contributions."}`, "Client wants to increase pension contributions."},
		{"text wins over transcript", `{"transcript":"second","text":"first"}`, "first"},
		{"transcript before content", `{"content":"third","transcript":"second"}`, "second"},
		{"content only", `{"content":"third"}`, "third"},
		{"empty text falls through", `{"text":"  ","content":"third"}`, "third"},
		{"no known field", `{"body":"nope"}`, ""},
		{"not json", `plain words`, ""},
		{
			"segments with words",
			`[{"speaker":"Alice","words":[{"text":"Hello"},{"text":"there"}]},{"speaker":"Bob","words":[{"text":"Hi"}]}]`,
			"Alice: Hello there\nBob: Hi",
		},
		{
			"segments under transcript",
			`{"transcript":[{"participant":{"name":"Ann"},"text":"Pension review"}]}`,
			"Ann: Pension review",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractText([]byte(tt.body)))
		})
	}
}

func TestPointerFromData(t *testing.T) {
	assert.Equal(t, Pointer{URL: "https://x/t.json"}, PointerFromData(map[string]any{"transcript_url": "https://x/t.json"}))
	assert.Equal(t, Pointer{URL: "https://x/t.json"}, PointerFromData(map[string]any{"transcript": map[string]any{"url": "https://x/t.json"}}))
	assert.Equal(t, Pointer{URL: "https://x/d"}, PointerFromData(map[string]any{
		"transcript": map[string]any{"data": map[string]any{"download_url": "https://x/d"}},
	}))
	assert.Equal(t, Pointer{Inline: "said things"}, PointerFromData(map[string]any{"transcript": "said things"}))
	assert.True(t, PointerFromData(nil).IsZero())
}

func TestAcquire_InlineSkipsFetch(t *testing.T) {
	f := &stubFetcher{}
	a := NewAcquirer(f, nil, zap.NewNop())

	text, ok := a.Acquire(context.Background(), Pointer{Inline: " hi ", URL: "https://x"}, "old")
	assert.True(t, ok)
	assert.Equal(t, "hi", text)
	assert.Empty(t, f.urls)
}

func TestAcquire_FetchFailureKeepsPrevious(t *testing.T) {
	a := NewAcquirer(&stubFetcher{err: errors.New("boom")}, nil, zap.NewNop())

	text, ok := a.Acquire(context.Background(), Pointer{URL: "https://x"}, "old transcript")
	assert.False(t, ok)
	assert.Equal(t, "old transcript", text)
}

func TestAcquire_EmptyDocumentKeepsPrevious(t *testing.T) {
	a := NewAcquirer(&stubFetcher{body: []byte(`{"other":1}`)}, nil, nil)

	text, ok := a.Acquire(context.Background(), Pointer{URL: "https://x"}, "old")
	assert.False(t, ok)
	assert.Equal(t, "old", text)
}

func TestAcquire_NoPointer(t *testing.T) {
	a := NewAcquirer(&stubFetcher{}, nil, nil)

	text, ok := a.Acquire(context.Background(), Pointer{}, "")
	assert.False(t, ok)
	assert.Empty(t, text)
}

func TestAcquire_OverHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"text":"Client wants to increase pension contributions."}`))
	}))
	defer srv.Close()

	a := NewAcquirer(client.NewClient("", time.Second), nil, zap.NewNop())
	text, ok := a.Acquire(context.Background(), Pointer{URL: srv.URL}, "")
	require.True(t, ok)
	assert.Equal(t, "Client wants to increase pension contributions.", text)
}

func TestArchive(t *testing.T) {
	meetingID := uuid.New()
	arch := &stubArchiver{}
	a := NewAcquirer(&stubFetcher{}, arch, zap.NewNop())

	a.Archive(context.Background(), meetingID, "evt-1", "text")
	assert.Equal(t, "text", arch.objects["transcripts/"+meetingID.String()+"/evt-1.txt"])

	failing := NewAcquirer(&stubFetcher{}, &stubArchiver{err: errors.New("s3 down")}, zap.NewNop())
	assert.NotPanics(t, func() {
		failing.Archive(context.Background(), meetingID, "evt-2", "text")
	})
}
