package tui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/f3rmion/grader/internal/api"
	"github.com/f3rmion/grader/internal/clipboard"
	"github.com/f3rmion/grader/internal/grader"
)

// fakeAnalyzer records requests and answers with a canned result.
type fakeAnalyzer struct {
	mu    sync.Mutex
	calls []grader.AnalyzeRequest
	resp  *grader.AnalyzeResponse
	err   error
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, req grader.AnalyzeRequest) (*grader.AnalyzeResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req)
	return f.resp, f.err
}

func sampleResponse() *grader.AnalyzeResponse {
	return &grader.AnalyzeResponse{
		WhatItIs:   "A checkout button generator",
		WhoItIsFor: "Impatient shop owners",
		ValueProp:  "More sales with fewer words",
		Scores: grader.Scores{
			grader.Clarity:         4,
			grader.Focus:           5,
			grader.Differentiation: 3,
			grader.CTAStrength:     2,
		},
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+y":
		return tea.KeyMsg{Type: tea.KeyCtrlY}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm, cmd
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	m, _ = send(t, m, key(s))
	return m
}

// runCmd executes cmd (and any batched commands) and returns the analysis result.
func runCmd(t *testing.T, cmd tea.Cmd) (analyzeResultMsg, bool) {
	t.Helper()
	if cmd == nil {
		return analyzeResultMsg{}, false
	}
	switch msg := cmd().(type) {
	case analyzeResultMsg:
		return msg, true
	case tea.BatchMsg:
		for _, c := range msg {
			if res, ok := runCmd(t, c); ok {
				return res, true
			}
		}
	}
	return analyzeResultMsg{}, false
}

func TestNew_Defaults(t *testing.T) {
	m := New(context.Background(), &fakeAnalyzer{}, nil)

	if m.Mode() != grader.ModeURL {
		t.Errorf("Expected url mode, got %s", m.Mode())
	}
	if m.Loading() || m.Result() != nil || m.Err() != "" {
		t.Error("Expected idle state with no result or error")
	}
	if m.CanSubmit() {
		t.Error("Expected submit disabled with empty fields")
	}
}

func TestSubmit_URLModeSendsTrimmedURL(t *testing.T) {
	fa := &fakeAnalyzer{resp: sampleResponse()}
	m := New(context.Background(), fa, nil)
	m = typeText(t, m, "  https://example.com  ")

	m, cmd := send(t, m, key("enter"))
	if !m.Loading() {
		t.Fatal("Expected loading after submit")
	}

	res, ok := runCmd(t, cmd)
	if !ok {
		t.Fatal("Expected an analysis command")
	}
	if len(fa.calls) != 1 || fa.calls[0] != (grader.AnalyzeRequest{URL: "https://example.com"}) {
		t.Errorf("Unexpected requests: %+v", fa.calls)
	}

	m, _ = send(t, m, res)
	if m.Loading() {
		t.Error("Expected loading to clear")
	}
	if m.Result() == nil {
		t.Fatal("Expected result to be stored")
	}
}

func TestSubmit_TextModeSendsTrimmedRawText(t *testing.T) {
	fa := &fakeAnalyzer{resp: sampleResponse()}
	m := New(context.Background(), fa, nil)

	m, _ = send(t, m, key("tab"))
	if m.Mode() != grader.ModeText {
		t.Fatalf("Expected text mode, got %s", m.Mode())
	}
	m = typeText(t, m, "  Buy now.  ")

	m, cmd := send(t, m, key("ctrl+s"))
	if _, ok := runCmd(t, cmd); !ok {
		t.Fatal("Expected an analysis command")
	}
	if len(fa.calls) != 1 || fa.calls[0] != (grader.AnalyzeRequest{RawText: "Buy now."}) {
		t.Errorf("Unexpected requests: %+v", fa.calls)
	}
	if !m.Loading() {
		t.Error("Expected loading after submit")
	}
}

func TestSubmit_BlankInputIsRejected(t *testing.T) {
	fa := &fakeAnalyzer{resp: sampleResponse()}

	for _, mode := range []grader.Mode{grader.ModeURL, grader.ModeText} {
		m := New(context.Background(), fa, nil)
		if mode == grader.ModeText {
			m, _ = send(t, m, key("tab"))
		}
		m = typeText(t, m, "   ")

		if m.CanSubmit() {
			t.Errorf("%s: expected submit disabled for whitespace input", mode)
		}
		m, cmd := send(t, m, key("ctrl+s"))
		if cmd != nil {
			t.Errorf("%s: expected no command for blank submit", mode)
		}
		if m.Loading() {
			t.Errorf("%s: expected to stay idle", mode)
		}
	}

	if len(fa.calls) != 0 {
		t.Errorf("Analyzer should never be called, got %d calls", len(fa.calls))
	}
}

func TestSubmit_DisabledWhileLoading(t *testing.T) {
	fa := &fakeAnalyzer{resp: sampleResponse()}
	m := New(context.Background(), fa, nil)
	m = typeText(t, m, "https://example.com")

	m, first := send(t, m, key("enter"))
	if m.CanSubmit() {
		t.Error("Expected submit disabled while loading")
	}

	m, second := send(t, m, key("ctrl+s"))
	if second != nil {
		t.Error("Expected second submission to be ignored")
	}

	runCmd(t, first)
	if len(fa.calls) != 1 {
		t.Errorf("Expected exactly one request, got %d", len(fa.calls))
	}
	if !strings.Contains(m.View(), "Analyzing...") {
		t.Error("Expected loading label in view")
	}
}

func TestSubmit_ClearsPreviousResultAndError(t *testing.T) {
	m := New(context.Background(), &fakeAnalyzer{}, nil)
	m.result = sampleResponse()
	m.err = "old failure"
	m = typeText(t, m, "https://example.com")

	m, _ = send(t, m, key("enter"))
	if m.Result() != nil || m.Err() != "" {
		t.Error("Expected result and error to be cleared on submit")
	}
}

func TestFailure_RequestFailed(t *testing.T) {
	fa := &fakeAnalyzer{err: &api.RequestFailedError{StatusCode: 500, StatusText: "Internal Server Error"}}
	m := New(context.Background(), fa, nil)
	m = typeText(t, m, "https://example.com")

	m, cmd := send(t, m, key("enter"))
	res, _ := runCmd(t, cmd)
	m, _ = send(t, m, res)

	if m.Err() != "Analysis failed: Internal Server Error" {
		t.Errorf("Unexpected error message: %q", m.Err())
	}
	if m.Result() != nil {
		t.Error("Expected no result after failure")
	}

	view := m.View()
	if !strings.Contains(view, "Analysis failed: Internal Server Error") {
		t.Error("Expected error message in view")
	}
	if strings.Contains(view, "Analysis Results") {
		t.Error("Expected no results panel after failure")
	}
}

func TestFailure_FallbackMessage(t *testing.T) {
	m := New(context.Background(), &fakeAnalyzer{}, nil)
	m.loading = true

	m, _ = send(t, m, analyzeResultMsg{err: errors.New("  ")})
	if m.Err() != "An error occurred" {
		t.Errorf("Expected fallback message, got %q", m.Err())
	}

	m.loading = true
	m, _ = send(t, m, analyzeResultMsg{})
	if m.Err() != "An error occurred" {
		t.Errorf("Expected fallback for empty result, got %q", m.Err())
	}
	if m.Loading() {
		t.Error("Expected loading to clear")
	}
}

func TestToggleMode_PreservesFieldsAndResult(t *testing.T) {
	m := New(context.Background(), &fakeAnalyzer{}, nil)
	m = typeText(t, m, "https://example.com")

	m, _ = send(t, m, key("tab"))
	m = typeText(t, m, "Buy now.")
	m.result = sampleResponse()
	m.err = "still here"

	m, _ = send(t, m, key("tab"))
	if m.Mode() != grader.ModeURL {
		t.Fatalf("Expected url mode, got %s", m.Mode())
	}
	if m.url.Value() != "https://example.com" {
		t.Errorf("URL field lost its value: %q", m.url.Value())
	}
	if m.text.Value() != "Buy now." {
		t.Errorf("Text field lost its value: %q", m.text.Value())
	}
	if m.Result() == nil || m.Err() != "still here" {
		t.Error("Mode toggle must not clear result or error")
	}
}

func TestRoundTrip_RendersSections(t *testing.T) {
	fa := &fakeAnalyzer{resp: sampleResponse()}
	m := New(context.Background(), fa, nil)

	m, _ = send(t, m, key("tab"))
	m = typeText(t, m, "Buy now.")
	m, cmd := send(t, m, key("ctrl+s"))
	res, ok := runCmd(t, cmd)
	if !ok {
		t.Fatal("Expected an analysis command")
	}
	m, _ = send(t, m, res)

	if fa.calls[0] != (grader.AnalyzeRequest{RawText: "Buy now."}) {
		t.Errorf("Unexpected request: %+v", fa.calls[0])
	}

	view := m.View()
	for _, want := range []string{
		"Analysis Results",
		"What it is", "A checkout button generator",
		"Who it's for", "Impatient shop owners",
		"Value proposition", "More sales with fewer words",
		"Clarity Scores",
		"Clarity", "Focus", "Differentiation", "Cta Strength",
		"4/5", "5/5", "3/5", "2/5",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("Expected view to contain %q", want)
		}
	}
}

func TestRoundTrip_WideLayout(t *testing.T) {
	m := New(context.Background(), &fakeAnalyzer{}, nil)
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 140, Height: 50})
	m.result = sampleResponse()

	view := m.View()
	for _, want := range []string{"What it is", "Clarity Scores", "2/5"} {
		if !strings.Contains(view, want) {
			t.Errorf("Expected wide view to contain %q", want)
		}
	}
}

func TestView_ScoreBarProportions(t *testing.T) {
	m := New(context.Background(), &fakeAnalyzer{}, nil)
	m.result = sampleResponse()
	view := m.View()

	tests := []struct {
		score  string
		filled int
	}{
		{"4/5", 16}, // 80%
		{"5/5", 20}, // 100%
		{"3/5", 12}, // 60%
		{"2/5", 8},  // 40%
	}

	for _, tt := range tests {
		var line string
		for _, l := range strings.Split(view, "\n") {
			if strings.Contains(l, tt.score) {
				line = l
				break
			}
		}
		if line == "" {
			t.Fatalf("No score line for %s in view:\n%s", tt.score, view)
		}

		filled := strings.Count(line, "█")
		empty := strings.Count(line, "░")
		if filled != tt.filled {
			t.Errorf("%s: %d filled cells, want %d", tt.score, filled, tt.filled)
		}
		if filled+empty != 20 {
			t.Errorf("%s: bar is %d cells, want 20", tt.score, filled+empty)
		}
	}
}

func TestCopyResult(t *testing.T) {
	var copied string
	m := New(context.Background(), &fakeAnalyzer{}, nil)
	m.canCopy = true
	m.copy = func(s string) error {
		copied = s
		return nil
	}

	m, cmd := send(t, m, key("ctrl+y"))
	if cmd != nil || copied != "" {
		t.Error("Expected nothing to copy without a result")
	}

	m.result = sampleResponse()
	m, cmd = send(t, m, key("ctrl+y"))
	if cmd == nil {
		t.Error("Expected a command to clear the copied badge")
	}
	if !strings.Contains(copied, "More sales with fewer words") {
		t.Errorf("Unexpected clipboard contents: %q", copied)
	}
	if !strings.Contains(m.View(), "Copied!") {
		t.Error("Expected copied badge in view")
	}

	m, _ = send(t, m, clearCopiedMsg{seq: m.copySeq})
	if strings.Contains(m.View(), "Copied!") {
		t.Error("Expected copied badge to clear")
	}

	m.copy = func(string) error { return errors.New("no clipboard") }
	m, _ = send(t, m, key("ctrl+y"))
	if !strings.Contains(m.View(), "Copy failed: no clipboard") {
		t.Error("Expected copy failure in view")
	}
}

func TestCopyResult_RepeatedCopyKeepsBadge(t *testing.T) {
	m := New(context.Background(), &fakeAnalyzer{}, nil)
	m.canCopy = true
	m.copy = func(string) error { return nil }
	m.result = sampleResponse()

	m, first := send(t, m, key("ctrl+y"))
	m, second := send(t, m, key("ctrl+y"))
	if first == nil || second == nil {
		t.Fatal("Expected a clear command for each copy")
	}

	m, _ = send(t, m, clearCopiedMsg{seq: 1})
	if !strings.Contains(m.View(), "Copied!") {
		t.Error("Expected badge to stay until the latest copy expires")
	}

	m, _ = send(t, m, clearCopiedMsg{seq: 2})
	if strings.Contains(m.View(), "Copied!") {
		t.Error("Expected badge to clear after the latest copy expires")
	}
}

func TestCopyResult_NoClipboard(t *testing.T) {
	called := false
	m := New(context.Background(), &fakeAnalyzer{}, nil)
	m.canCopy = false
	m.copy = func(string) error {
		called = true
		return nil
	}
	m.result = sampleResponse()

	if strings.Contains(m.View(), "ctrl+y: copy") {
		t.Error("Expected copy hint to be hidden without a clipboard tool")
	}

	m, cmd := send(t, m, key("ctrl+y"))
	if called || cmd != nil {
		t.Error("Expected no copy attempt without a clipboard tool")
	}
	if !strings.Contains(m.View(), "Copy failed: "+clipboard.ErrUnavailable.Error()) {
		t.Error("Expected unavailable clipboard message in view")
	}

	m.canCopy = true
	if !strings.Contains(m.View(), "ctrl+y: copy") {
		t.Error("Expected copy hint when a clipboard tool exists")
	}
}

func TestFailure_TransportErrorIsPrefixed(t *testing.T) {
	fa := &fakeAnalyzer{err: errors.New("sending analysis request: connection refused")}
	m := New(context.Background(), fa, nil)
	m = typeText(t, m, "https://example.com")

	m, cmd := send(t, m, key("enter"))
	res, _ := runCmd(t, cmd)
	m, _ = send(t, m, res)

	if m.Err() != "Analysis failed: sending analysis request: connection refused" {
		t.Errorf("Unexpected error message: %q", m.Err())
	}
}
