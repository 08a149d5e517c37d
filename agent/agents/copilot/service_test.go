package copilot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	contractx "github.com/foliopilot/foliopilot/agent/contract"
	statex "github.com/foliopilot/foliopilot/agent/state"
	toolx "github.com/foliopilot/foliopilot/agent/tool"
)

type fakeStore struct {
	loadState *statex.SessionState
	loadErr   error
	saveErr   error
	saved     []*statex.SessionState
}

func (f *fakeStore) Load(ctx context.Context, sessionID string) (*statex.SessionState, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	if f.loadState == nil {
		return nil, statex.ErrStateNotFound
	}
	return cloneSessionState(f.loadState), nil
}

func (f *fakeStore) Save(ctx context.Context, st *statex.SessionState) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, cloneSessionState(st))
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, sessionID string) error {
	return nil
}

func cloneSessionState(st *statex.SessionState) *statex.SessionState {
	data, err := json.Marshal(st)
	if err != nil {
		panic(fmt.Sprintf("clone session state: %v", err))
	}
	var out statex.SessionState
	if err := json.Unmarshal(data, &out); err != nil {
		panic(fmt.Sprintf("clone session state: %v", err))
	}
	return &out
}

type memoryWrite struct {
	userID string
	update string
}

type fakeMemory struct {
	summary  string
	readErr  error
	writeErr error
	writes   []memoryWrite
}

func (f *fakeMemory) ReadSummary(ctx context.Context, userID string) (string, error) {
	if f.readErr != nil {
		return "", f.readErr
	}
	return f.summary, nil
}

func (f *fakeMemory) WriteSummary(ctx context.Context, userID string, update string) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.writes = append(f.writes, memoryWrite{userID: userID, update: update})
	return nil
}

type fakeTopicker struct {
	topic string
	err   error
	calls int
}

func (f *fakeTopicker) ExtractTopic(ctx context.Context, req contractx.TopicRequest) (contractx.TopicResponse, error) {
	f.calls++
	if f.err != nil {
		return contractx.TopicResponse{}, f.err
	}
	return contractx.TopicResponse{Topic: f.topic}, nil
}

type fakeWriter struct {
	haiku contractx.Haiku
	err   error
	calls int
}

func (f *fakeWriter) Write(ctx context.Context, req contractx.HaikuRequest) (contractx.HaikuResponse, error) {
	f.calls++
	if f.err != nil {
		return contractx.HaikuResponse{}, f.err
	}
	return contractx.HaikuResponse{Haiku: f.haiku}, nil
}

type fakeRegistry struct {
	topicker contractx.Topicker
	writer   contractx.HaikuWriter
}

func (f *fakeRegistry) Topicker() contractx.Topicker {
	return f.topicker
}

func (f *fakeRegistry) HaikuWriter() contractx.HaikuWriter {
	return f.writer
}

func testNow() time.Time {
	return time.Date(2025, time.March, 14, 9, 30, 0, 0, time.UTC)
}

func validHaiku() contractx.Haiku {
	return contractx.Haiku{
		Japanese:   []string{"aki kaze ya", "kabuka no nami mo", "shizuka nari"},
		English:    []string{"autumn wind rises", "even the waves of prices", "settle into calm"},
		ImageNames: []string{"Mount_Fuji.jpg"},
	}
}

func newTestCopilot(t *testing.T, store *fakeStore, memory *fakeMemory, topicker *fakeTopicker, writer *fakeWriter) *Copilot {
	t.Helper()

	c, err := New(
		store,
		&fakeRegistry{topicker: topicker, writer: writer},
		toolx.NewGateway(nil),
		memory,
		Config{UserID: "user-1"},
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

func TestHandleMessage(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	memory := &fakeMemory{summary: "likes tech stocks"}
	topicker := &fakeTopicker{topic: "semiconductor rally"}
	writer := &fakeWriter{haiku: validHaiku()}

	c := newTestCopilot(t, store, memory, topicker, writer)

	reply, err := c.HandleMessage(context.Background(), "session-1", "how are chip stocks doing?")
	if err != nil {
		t.Fatalf("HandleMessage() error = %v", err)
	}

	if reply.Topic != "semiconductor rally" {
		t.Fatalf("unexpected topic: %s", reply.Topic)
	}
	if !strings.Contains(reply.Message, "semiconductor rally") {
		t.Fatalf("reply must mention the topic: %s", reply.Message)
	}
	if len(reply.Haiku.Japanese) != contractx.HaikuLineCount {
		t.Fatalf("unexpected haiku: %+v", reply.Haiku)
	}

	if topicker.calls != 1 || writer.calls != 1 {
		t.Fatalf("unexpected model calls: topic=%d haiku=%d", topicker.calls, writer.calls)
	}

	if len(store.saved) != 1 {
		t.Fatalf("expected one saved state, got %d", len(store.saved))
	}
	saved := store.saved[0]
	if saved.ActiveTopic != "semiconductor rally" {
		t.Fatalf("active topic not persisted: %s", saved.ActiveTopic)
	}
	if len(saved.Turns) != 2 {
		t.Fatalf("expected user and copilot turns, got %d", len(saved.Turns))
	}
	if len(saved.Haikus) != 1 {
		t.Fatalf("expected one haiku record, got %d", len(saved.Haikus))
	}

	if len(memory.writes) != 1 {
		t.Fatalf("expected one memory write, got %d", len(memory.writes))
	}
	if memory.writes[0].userID != "user-1" {
		t.Fatalf("unexpected memory user: %s", memory.writes[0].userID)
	}
}

func TestHandleMessageResumesExistingSession(t *testing.T) {
	t.Parallel()

	existing := statex.NewSessionState("session-1", "user-1", "chat", testNow())
	if err := existing.AppendTurn(statex.RoleUser, "earlier message", testNow()); err != nil {
		t.Fatalf("seed turn: %v", err)
	}

	store := &fakeStore{loadState: existing}
	c := newTestCopilot(t, store, &fakeMemory{}, &fakeTopicker{topic: "bonds"}, &fakeWriter{haiku: validHaiku()})

	if _, err := c.HandleMessage(context.Background(), "session-1", "what about bonds?"); err != nil {
		t.Fatalf("HandleMessage() error = %v", err)
	}

	saved := store.saved[0]
	if len(saved.Turns) != 3 {
		t.Fatalf("existing transcript must be extended, got %d turns", len(saved.Turns))
	}
}

func TestHandleMessageValidatesInput(t *testing.T) {
	t.Parallel()

	c := newTestCopilot(t, &fakeStore{}, &fakeMemory{}, &fakeTopicker{topic: "t"}, &fakeWriter{haiku: validHaiku()})

	if _, err := c.HandleMessage(context.Background(), "  ", "hello"); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("error = %v, want ErrInvalidSession", err)
	}
	if _, err := c.HandleMessage(context.Background(), "session-1", "   "); !errors.Is(err, ErrInvalidMessage) {
		t.Fatalf("error = %v, want ErrInvalidMessage", err)
	}
}

func TestHandleMessageTopicFailurePropagates(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	topicker := &fakeTopicker{err: fmt.Errorf("%w: upstream", contractx.ErrModelInvoke)}
	c := newTestCopilot(t, store, &fakeMemory{}, topicker, &fakeWriter{haiku: validHaiku()})

	_, err := c.HandleMessage(context.Background(), "session-1", "hello")
	if !errors.Is(err, contractx.ErrModelInvoke) {
		t.Fatalf("error = %v, want ErrModelInvoke", err)
	}
	if len(store.saved) != 0 {
		t.Fatalf("failed turn must not be persisted, saved=%d", len(store.saved))
	}
}

func TestHandleMessageRejectsContractViolatingHaiku(t *testing.T) {
	t.Parallel()

	bad := validHaiku()
	bad.ImageNames = []string{"Louvre.jpg"}

	store := &fakeStore{}
	c := newTestCopilot(t, store, &fakeMemory{}, &fakeTopicker{topic: "t"}, &fakeWriter{haiku: bad})

	_, err := c.HandleMessage(context.Background(), "session-1", "hello")
	if !errors.Is(err, contractx.ErrSchemaViolation) {
		t.Fatalf("error = %v, want ErrSchemaViolation", err)
	}
	if len(store.saved) != 0 {
		t.Fatalf("invalid haiku must not be persisted, saved=%d", len(store.saved))
	}
}

func TestHandleMessageMemoryReadFailureDoesNotBlock(t *testing.T) {
	t.Parallel()

	memory := &fakeMemory{readErr: errors.New("memory down")}
	c := newTestCopilot(t, &fakeStore{}, memory, &fakeTopicker{topic: "gold"}, &fakeWriter{haiku: validHaiku()})

	if _, err := c.HandleMessage(context.Background(), "session-1", "gold outlook?"); err != nil {
		t.Fatalf("HandleMessage() error = %v", err)
	}
}

func TestHandleMessageSaveFailurePropagates(t *testing.T) {
	t.Parallel()

	store := &fakeStore{saveErr: errors.New("redis down")}
	c := newTestCopilot(t, store, &fakeMemory{}, &fakeTopicker{topic: "t"}, &fakeWriter{haiku: validHaiku()})

	if _, err := c.HandleMessage(context.Background(), "session-1", "hello"); err == nil {
		t.Fatal("expected save failure to propagate")
	}
}

func TestNewRequiresDependencies(t *testing.T) {
	t.Parallel()

	registry := &fakeRegistry{topicker: &fakeTopicker{}, writer: &fakeWriter{}}
	gateway := toolx.NewGateway(nil)

	if _, err := New(nil, registry, gateway, nil, Config{}); err == nil {
		t.Fatal("expected error for nil store")
	}
	if _, err := New(&fakeStore{}, nil, gateway, nil, Config{}); err == nil {
		t.Fatal("expected error for nil registry")
	}
	if _, err := New(&fakeStore{}, registry, nil, nil, Config{}); err == nil {
		t.Fatal("expected error for nil tool gateway")
	}
	if _, err := New(&fakeStore{}, registry, gateway, nil, Config{}); err != nil {
		t.Fatalf("nil memory must default to a noop store: %v", err)
	}
}
