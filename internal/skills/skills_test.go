package skills

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"aura/internal/classify"
	"aura/internal/config"
	"aura/internal/executor"
	"aura/internal/session"

	"github.com/stretchr/testify/require"
)

type okSkill struct{}

func (okSkill) Handle(ctx context.Context, args string) (*executor.Result, error) {
	return executor.Ok("done"), nil
}

func TestRegistryRegisterAndResolve(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("open", okSkill{}, []string{"open"}))
	require.Error(t, r.Register("open", okSkill{}, nil), "duplicate registration must fail")

	s, ok := r.Resolve("open")
	require.True(t, ok)
	require.NotNil(t, s)

	_, ok = r.Resolve("missing")
	require.False(t, ok)
}

func TestRegistryMatchKeyword(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("volume", okSkill{}, []string{"volume", "mute"}))
	require.NoError(t, r.Register("general", okSkill{}, nil))

	cat, kw, ok := r.MatchKeyword("please mute the speakers")
	require.True(t, ok)
	require.Equal(t, "volume", cat)
	require.Equal(t, "mute", kw)

	_, _, ok = r.MatchKeyword("tell me a joke")
	require.False(t, ok)
}

func TestFileSearchFindsAndRemembersCandidates(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.MkdirAll(sub, 0755))
	for _, name := range []string{"report.pdf", "nested/invoice.pdf", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}

	memory := session.NewMemory(10)
	fs := NewFileSearch([]string{dir}, memory)

	res, err := fs.Handle(context.Background(), "the pdf i downloaded")
	require.NoError(t, err)
	require.True(t, res.Success, res.Message)
	require.Contains(t, res.Message, "2 files")

	v, ok := memory.GetContext("file_candidates")
	require.True(t, ok)
	require.Len(t, v.([]string), 2)
}

func TestFileSearchNoMatch(t *testing.T) {
	memory := session.NewMemory(10)
	fs := NewFileSearch([]string{t.TempDir()}, memory)

	res, err := fs.Handle(context.Background(), "quarterly report pdf")
	require.NoError(t, err)
	require.False(t, res.Success)
	require.Contains(t, res.Message, "no files found")
}

func TestFileSearchOrdinalWithoutCandidates(t *testing.T) {
	memory := session.NewMemory(10)
	fs := NewFileSearch([]string{t.TempDir()}, memory)

	res, err := fs.OpenCandidate(context.Background(), 1)
	require.NoError(t, err)
	require.False(t, res.Success)
	require.Contains(t, res.Message, "no file candidates")
}

func TestBuildPattern(t *testing.T) {
	pattern, hint := buildPattern("the pdf i downloaded")
	require.Equal(t, "**/*.pdf", pattern)
	require.Empty(t, hint)

	pattern, hint = buildPattern("resume pdf")
	require.Equal(t, "**/*.pdf", pattern)
	require.Equal(t, "resume", hint)

	pattern, _ = buildPattern("something")
	require.Equal(t, "**/*.*", pattern)
}

func TestExtractResultTitles(t *testing.T) {
	page := `<html><body>
		<a class="result__a" href="/one">First Result</a>
		<a href="/skip">Not a result</a>
		<a class="result__a" href="/two">Second <b>Result</b></a>
		<a class="result__a" href="/three">Third</a>
	</body></html>`

	titles := extractResultTitles(strings.NewReader(page), 2)
	require.Equal(t, []string{"First Result", "Second Result"}, titles)
}

func TestGeneralLocalReplies(t *testing.T) {
	memory := session.NewMemory(10)
	g := NewGeneral(nil, memory)

	res, err := g.Handle(context.Background(), "my name is sam")
	require.NoError(t, err)
	require.Contains(t, res.Message, "Nice to meet you, sam")

	res, err = g.Handle(context.Background(), "what is my name")
	require.NoError(t, err)
	require.Contains(t, res.Message, "sam")
}

func TestGeneralWithoutResponder(t *testing.T) {
	g := NewGeneral(nil, session.NewMemory(10))
	res, err := g.Handle(context.Background(), "tell me a joke")
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Contains(t, res.Message, "AI backend")
}

func TestBuildRegistryCoversClosedSet(t *testing.T) {
	r := BuildRegistry(config.DefaultConfig(), session.NewMemory(10), nil)
	for _, cat := range classify.Categories {
		if _, ok := r.Resolve(cat); !ok {
			t.Errorf("category %s has no registered skill", cat)
		}
	}
}
