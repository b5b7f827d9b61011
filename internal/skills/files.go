package skills

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"aura/internal/classify"
	"aura/internal/executor"
	"aura/internal/logging"
	"aura/internal/session"

	"github.com/bmatcuk/doublestar/v4"
)

// extHints maps file-type words to glob extensions.
var extHints = map[string]string{
	"pdf":          "pdf",
	"doc":          "doc*",
	"document":     "doc*",
	"documents":    "doc*",
	"spreadsheet":  "xls*",
	"presentation": "ppt*",
	"image":        "{png,jpg,jpeg}",
	"picture":      "{png,jpg,jpeg}",
	"text":         "txt",
	"video":        "{mp4,mkv,webm}",
}

const maxFileCandidates = 5

// FileSearch finds files matching a spoken description under the
// configured search directories and remembers the candidates so a
// follow-up ("open the first one") can act on them.
type FileSearch struct {
	dirs   []string
	memory *session.Memory
}

// NewFileSearch creates the file search skill.
func NewFileSearch(dirs []string, memory *session.Memory) *FileSearch {
	return &FileSearch{dirs: dirs, memory: memory}
}

// Handle searches for files described by args, e.g. "the pdf i downloaded"
// or "resume". Matches land in session context under file_candidates.
// An ordinal argument ("the first one", "2") selects a candidate from the
// previous search instead of searching again.
func (s *FileSearch) Handle(ctx context.Context, args string) (*executor.Result, error) {
	if n := classify.ParseOrdinal(strings.Fields(args)); n > 0 {
		if _, ok := s.memory.GetContext("file_candidates"); ok {
			return s.OpenCandidate(ctx, n)
		}
	}

	pattern, nameHint := buildPattern(args)

	var matches []string
	for _, dir := range s.dirs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		found, err := doublestar.FilepathGlob(filepath.Join(dir, pattern))
		if err != nil {
			logging.Debug("glob failed", "dir", dir, "pattern", pattern, "error", err)
			continue
		}
		for _, f := range found {
			if nameHint == "" || strings.Contains(strings.ToLower(filepath.Base(f)), nameHint) {
				matches = append(matches, f)
			}
			if len(matches) >= maxFileCandidates {
				break
			}
		}
		if len(matches) >= maxFileCandidates {
			break
		}
	}

	if len(matches) == 0 {
		return executor.Fail("", fmt.Sprintf("no files found matching %q", args)), nil
	}

	s.memory.SetContext("file_candidates", matches)

	if len(matches) == 1 {
		return s.openFile(ctx, matches[0])
	}

	var b strings.Builder
	fmt.Fprintf(&b, "I found %d files. Which one should I open?\n", len(matches))
	for i, f := range matches {
		fmt.Fprintf(&b, "%d. %s\n", i+1, filepath.Base(f))
	}
	return executor.Ok(strings.TrimRight(b.String(), "\n")).WithData("candidates", matches), nil
}

// OpenCandidate opens a previously found file by its 1-based index.
// The candidates stay in session context even if the open fails, so the
// same selection can be retried.
func (s *FileSearch) OpenCandidate(ctx context.Context, index int) (*executor.Result, error) {
	v, ok := s.memory.GetContext("file_candidates")
	if !ok {
		return executor.Fail("", "no file candidates to choose from"), nil
	}
	candidates, ok := v.([]string)
	if !ok || len(candidates) == 0 {
		return executor.Fail("", "no file candidates to choose from"), nil
	}
	if index < 1 || index > len(candidates) {
		return executor.Fail("", fmt.Sprintf("there is no option %d, only %d files", index, len(candidates))), nil
	}
	return s.openFile(ctx, candidates[index-1])
}

func (s *FileSearch) openFile(ctx context.Context, path string) (*executor.Result, error) {
	opener := "xdg-open"
	if _, err := exec.LookPath(opener); err != nil {
		opener = "open"
		if _, err := exec.LookPath(opener); err != nil {
			return executor.Fail("", "no file opener found on this system"), nil
		}
	}
	if err := exec.CommandContext(ctx, opener, path).Start(); err != nil {
		return executor.Fail("", fmt.Sprintf("failed to open %s: %v", filepath.Base(path), err)), nil
	}
	s.memory.SetContext("recent_entity", filepath.Base(path))
	return executor.Ok(fmt.Sprintf("Opening %s", filepath.Base(path))), nil
}

// buildPattern turns a spoken description into a recursive glob pattern
// and an optional name substring filter.
func buildPattern(args string) (pattern, nameHint string) {
	tokens := strings.Fields(strings.ToLower(args))
	ext := ""
	var nameParts []string

	for _, tok := range tokens {
		switch tok {
		case "the", "a", "an", "i", "my", "that", "file", "files",
			"downloaded", "download", "downloads", "recent", "yesterday", "from":
			continue
		}
		if e, ok := extHints[tok]; ok && ext == "" {
			ext = e
			continue
		}
		nameParts = append(nameParts, tok)
	}

	if ext == "" {
		ext = "*"
	}
	return "**/*." + ext, strings.Join(nameParts, " ")
}
