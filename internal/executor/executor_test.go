package executor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"aura/internal/classify"
)

// scriptedSkill returns queued results in order, repeating the last one.
type scriptedSkill struct {
	results []*Result
	errs    []error
	calls   int
}

func (s *scriptedSkill) Handle(ctx context.Context, args string) (*Result, error) {
	i := s.calls
	s.calls++
	if i >= len(s.results) {
		i = len(s.results) - 1
	}
	var err error
	if i < len(s.errs) {
		err = s.errs[i]
	}
	return s.results[i], err
}

type panicSkill struct{}

func (panicSkill) Handle(ctx context.Context, args string) (*Result, error) {
	panic("boom")
}

type fakeRegistry map[string]Skill

func (r fakeRegistry) Resolve(category string) (Skill, bool) {
	s, ok := r[category]
	return s, ok
}

func newExecutor(reg fakeRegistry) *Executor {
	return New(reg, 0.75)
}

func TestExecuteSingleSuccess(t *testing.T) {
	skill := &scriptedSkill{results: []*Result{Ok("Opening chrome")}}
	e := newExecutor(fakeRegistry{classify.CategoryOpen: skill})

	res := e.Execute(context.Background(),
		&classify.Decision{Category: classify.CategoryOpen, Args: "chrome", Confidence: 0.95},
		"open chrome")
	if !res.Success || res.Message != "Opening chrome" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if len(e.Trace()) != 1 {
		t.Fatalf("trace length = %d, want 1", len(e.Trace()))
	}
}

func TestExecuteNoCategory(t *testing.T) {
	e := newExecutor(fakeRegistry{})
	res := e.Execute(context.Background(), &classify.Decision{Confidence: 0.9}, "whatever")
	if res.Success || res.ErrKind != ErrNoCategory {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestExecuteLowConfidenceNeverDispatches(t *testing.T) {
	skill := &scriptedSkill{results: []*Result{Ok("should not run")}}
	e := newExecutor(fakeRegistry{classify.CategoryOpen: skill})

	res := e.Execute(context.Background(),
		&classify.Decision{Category: classify.CategoryOpen, Args: "chrome", Confidence: 0.6},
		"open chrome")
	if res.Success || res.ErrKind != ErrLowConfidence {
		t.Fatalf("unexpected result: %+v", res)
	}
	if skill.calls != 0 {
		t.Fatalf("skill invoked %d times below threshold", skill.calls)
	}
}

func TestExecutePlanStopsAtFirstFailure(t *testing.T) {
	open := &scriptedSkill{results: []*Result{Ok("Opened chrome")}}
	play := &scriptedSkill{results: []*Result{Fail(ErrFatal, "player crashed")}}
	search := &scriptedSkill{results: []*Result{Ok("Searched")}}
	e := newExecutor(fakeRegistry{
		classify.CategoryOpen:   open,
		classify.CategoryPlay:   play,
		classify.CategorySearch: search,
	})

	res := e.Execute(context.Background(), &classify.Decision{
		Confidence: 0.9,
		Plan: []classify.Step{
			{Category: classify.CategoryOpen, Args: "chrome"},
			{Category: classify.CategoryPlay, Args: "music"},
			{Category: classify.CategorySearch, Args: "cars"},
		},
	}, "open chrome and play music and search cars")

	if res.Success {
		t.Fatalf("plan with failing step reported success: %+v", res)
	}
	if !strings.Contains(res.Message, "step 2 of 3") {
		t.Fatalf("message = %q, want step summary", res.Message)
	}
	if search.calls != 0 {
		t.Fatal("step after failure was executed")
	}

	trace := e.Trace()
	if len(trace) != 2 {
		t.Fatalf("trace length = %d, want 2", len(trace))
	}
	if !trace[0].Success || trace[1].Success {
		t.Fatalf("unexpected trace: %+v", trace)
	}
	if _, ok := res.Data["trace"]; !ok {
		t.Fatal("partial trace not attached to result data")
	}
}

func TestExecutePlanCarriesAlternativeForward(t *testing.T) {
	open := &scriptedSkill{results: []*Result{Fail("", "chrme is not installed")}}
	search := &scriptedSkill{results: []*Result{Ok("Searched")}}
	e := newExecutor(fakeRegistry{
		classify.CategoryOpen:   open,
		classify.CategorySearch: search,
	})

	res := e.Execute(context.Background(), &classify.Decision{
		Confidence:   0.9,
		Alternatives: []string{"open chrome"},
		Plan: []classify.Step{
			{Category: classify.CategoryOpen, Args: "chrme"},
			{Category: classify.CategorySearch, Args: "cars"},
		},
	}, "open chrme and search cars")

	if res.ErrKind != ErrAlternativeAvailable {
		t.Fatalf("error kind = %s, want %s", res.ErrKind, ErrAlternativeAvailable)
	}
	if !strings.Contains(res.Message, "Stopped at step 1 of 2") {
		t.Fatalf("message = %q, want step summary", res.Message)
	}
	if res.Data["suggested_alternative"] != "open chrome" {
		t.Fatalf("suggested_alternative = %v, want it carried onto the plan summary", res.Data["suggested_alternative"])
	}
	if search.calls != 0 {
		t.Fatal("step after failure was executed")
	}
}

func TestExecutePlanSuccessJoinsMessages(t *testing.T) {
	open := &scriptedSkill{results: []*Result{Ok("Opened chrome")}}
	search := &scriptedSkill{results: []*Result{Ok("Searching for cars")}}
	e := newExecutor(fakeRegistry{
		classify.CategoryOpen:   open,
		classify.CategorySearch: search,
	})

	res := e.Execute(context.Background(), &classify.Decision{
		Confidence: 0.9,
		Plan: []classify.Step{
			{Category: classify.CategoryOpen, Args: "chrome"},
			{Category: classify.CategorySearch, Args: "cars"},
		},
	}, "open chrome and search cars")

	if !res.Success {
		t.Fatalf("plan failed: %+v", res)
	}
	if res.Message != "Opened chrome then Searching for cars" {
		t.Fatalf("message = %q", res.Message)
	}
}

func TestRecoveryPermission(t *testing.T) {
	skill := &scriptedSkill{results: []*Result{Fail("", "access denied by system policy")}}
	e := newExecutor(fakeRegistry{classify.CategoryClose: skill})

	res := e.Execute(context.Background(),
		&classify.Decision{Category: classify.CategoryClose, Args: "systemd", Confidence: 0.95},
		"close systemd")
	if res.ErrKind != ErrPermission {
		t.Fatalf("error kind = %s, want %s", res.ErrKind, ErrPermission)
	}
	if !strings.Contains(res.Message, "elevated privileges") {
		t.Fatalf("message = %q", res.Message)
	}
}

func TestRecoveryAlternativeAvailable(t *testing.T) {
	skill := &scriptedSkill{results: []*Result{Fail("", "spotify is not installed")}}
	e := newExecutor(fakeRegistry{classify.CategoryOpen: skill})

	res := e.Execute(context.Background(), &classify.Decision{
		Category:     classify.CategoryOpen,
		Args:         "spotify",
		Confidence:   0.95,
		Alternatives: []string{"open youtube"},
	}, "open spotify")

	if res.ErrKind != ErrAlternativeAvailable {
		t.Fatalf("error kind = %s, want %s", res.ErrKind, ErrAlternativeAvailable)
	}
	if !strings.Contains(res.Message, "Should I try 'open youtube' instead?") {
		t.Fatalf("message = %q", res.Message)
	}
	if res.Data["suggested_alternative"] != "open youtube" {
		t.Fatalf("suggested_alternative = %v", res.Data["suggested_alternative"])
	}
}

func TestRecoveryNoAlternative(t *testing.T) {
	skill := &scriptedSkill{results: []*Result{Fail("", "command not found")}}
	e := newExecutor(fakeRegistry{classify.CategoryOpen: skill})

	res := e.Execute(context.Background(),
		&classify.Decision{Category: classify.CategoryOpen, Args: "zzz", Confidence: 0.95},
		"open zzz")
	if res.ErrKind != ErrNoAlternative {
		t.Fatalf("error kind = %s, want %s", res.ErrKind, ErrNoAlternative)
	}
}

func TestRecoveryRetrySucceeds(t *testing.T) {
	skill := &scriptedSkill{results: []*Result{
		Fail("", "application not responding"),
		Ok("Closed chrome"),
	}}
	e := newExecutor(fakeRegistry{classify.CategoryClose: skill})

	res := e.Execute(context.Background(),
		&classify.Decision{Category: classify.CategoryClose, Args: "chrome", Confidence: 0.95},
		"close chrome")
	if !res.Success {
		t.Fatalf("retry should have succeeded: %+v", res)
	}
	if !strings.HasPrefix(res.Message, "Retry successful: ") {
		t.Fatalf("message = %q", res.Message)
	}
	if skill.calls != 2 {
		t.Fatalf("skill called %d times, want 2", skill.calls)
	}
}

func TestRecoveryRetryLimit(t *testing.T) {
	skill := &scriptedSkill{results: []*Result{
		Fail("", "timeout waiting for window"),
		Fail("", "timeout waiting for window"),
		Ok("should never happen"),
	}}
	e := newExecutor(fakeRegistry{classify.CategoryClose: skill})

	res := e.Execute(context.Background(),
		&classify.Decision{Category: classify.CategoryClose, Args: "chrome", Confidence: 0.95},
		"close chrome")
	if res.ErrKind != ErrRetryLimit {
		t.Fatalf("error kind = %s, want %s", res.ErrKind, ErrRetryLimit)
	}
	if !strings.HasPrefix(res.Message, "Retry failed: ") {
		t.Fatalf("message = %q", res.Message)
	}
	if skill.calls != 2 {
		t.Fatalf("skill called %d times, want exactly 2 (no third attempt)", skill.calls)
	}
}

func TestRecoveryKeepsValidationVerdict(t *testing.T) {
	// "unrecognized" overlaps the not-found terms; a skill's own
	// validation verdict must not be relabeled as an alternative.
	skill := &scriptedSkill{results: []*Result{
		Fail(ErrValidationFailed, `unrecognized volume direction "sideways"`),
	}}
	e := newExecutor(fakeRegistry{classify.CategoryVolume: skill})

	res := e.Execute(context.Background(), &classify.Decision{
		Category:     classify.CategoryVolume,
		Args:         "sideways",
		Confidence:   0.95,
		Alternatives: []string{"volume up"},
	}, "turn the volume sideways")

	if res.ErrKind != ErrValidationFailed {
		t.Fatalf("error kind = %s, want %s", res.ErrKind, ErrValidationFailed)
	}
	if _, ok := res.Data["suggested_alternative"]; ok {
		t.Fatal("validation failure produced an alternative proposal")
	}
	if skill.calls != 1 {
		t.Fatalf("skill called %d times, want 1", skill.calls)
	}
}

func TestRecoveryFatalEchoesMessage(t *testing.T) {
	skill := &scriptedSkill{results: []*Result{Fail("", "disk exploded")}}
	e := newExecutor(fakeRegistry{classify.CategoryOpen: skill})

	res := e.Execute(context.Background(),
		&classify.Decision{Category: classify.CategoryOpen, Args: "x", Confidence: 0.95},
		"open x")
	if res.ErrKind != ErrFatal || res.Message != "disk exploded" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestGeneralWithActionVerbRejected(t *testing.T) {
	general := &scriptedSkill{results: []*Result{Ok("chatting")}}
	e := newExecutor(fakeRegistry{classify.CategoryGeneral: general})

	res := e.Execute(context.Background(),
		&classify.Decision{Category: classify.CategoryGeneral, Args: "", Confidence: 0.9},
		"open the garage door somehow")
	if res.ErrKind != ErrAmbiguousGeneral {
		t.Fatalf("error kind = %s, want %s", res.ErrKind, ErrAmbiguousGeneral)
	}
	if general.calls != 0 {
		t.Fatal("conversational handler ran for an action-verb query")
	}
}

func TestGeneralAutoRoutesLiteralSearch(t *testing.T) {
	search := &scriptedSkill{results: []*Result{Ok("Searching for cats")}}
	e := newExecutor(fakeRegistry{classify.CategorySearch: search})

	res := e.Execute(context.Background(),
		&classify.Decision{Category: classify.CategoryGeneral, Confidence: 0.9},
		"search cats")
	if !res.Success || search.calls != 1 {
		t.Fatalf("auto-route failed: %+v calls=%d", res, search.calls)
	}
}

func TestGeneralWithoutActionVerbPasses(t *testing.T) {
	general := &scriptedSkill{results: []*Result{Ok("The capital of France is Paris.")}}
	e := newExecutor(fakeRegistry{classify.CategoryGeneral: general})

	res := e.Execute(context.Background(),
		&classify.Decision{Category: classify.CategoryGeneral, Confidence: 0.9},
		"what is the capital of france")
	if !res.Success || general.calls != 1 {
		t.Fatalf("conversational query blocked: %+v", res)
	}
}

func TestSkillErrorNormalized(t *testing.T) {
	skill := &scriptedSkill{results: []*Result{nil}, errs: []error{errors.New("window manager timeout")}}
	// Second call (the retry) also errors.
	skill.results = append(skill.results, nil)
	skill.errs = append(skill.errs, errors.New("window manager timeout"))

	e := newExecutor(fakeRegistry{classify.CategoryClose: skill})
	res := e.Execute(context.Background(),
		&classify.Decision{Category: classify.CategoryClose, Args: "chrome", Confidence: 0.95},
		"close chrome")
	if res.ErrKind != ErrRetryLimit {
		t.Fatalf("error kind = %s, want %s", res.ErrKind, ErrRetryLimit)
	}
}

func TestPanicBecomesInternal(t *testing.T) {
	e := newExecutor(fakeRegistry{classify.CategoryOpen: panicSkill{}})
	res := e.Execute(context.Background(),
		&classify.Decision{Category: classify.CategoryOpen, Args: "x", Confidence: 0.95},
		"open x")
	if res.Success || res.ErrKind != ErrInternal {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestPostConditionOpenNeedsTarget(t *testing.T) {
	skill := &scriptedSkill{results: []*Result{Ok("opened nothing")}}
	e := newExecutor(fakeRegistry{classify.CategoryOpen: skill})

	res := e.Execute(context.Background(),
		&classify.Decision{Category: classify.CategoryOpen, Args: "  ", Confidence: 0.95},
		"open")
	if res.Success || res.ErrKind != ErrValidationFailed {
		t.Fatalf("unexpected result: %+v", res)
	}
}
