package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"retroboard/internal/llm"
	"retroboard/internal/model"
	"retroboard/internal/mq"
)

type fakeStore struct {
	nextID int
	rows   map[int]*model.PMJob
}

func newFakeStore() *fakeStore {
	return &fakeStore{nextID: 1, rows: map[int]*model.PMJob{}}
}

func (s *fakeStore) Create(_ context.Context, input json.RawMessage) (int, error) {
	id := s.nextID
	s.nextID++
	s.rows[id] = &model.PMJob{
		ID:        id,
		Status:    model.JobPending,
		Input:     input,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	return id, nil
}

func (s *fakeStore) FindByID(_ context.Context, id int) (*model.PMJob, error) {
	j, ok := s.rows[id]
	if !ok {
		return nil, errors.New("no rows in result set")
	}
	return j, nil
}

func (s *fakeStore) Complete(_ context.Context, id int, result json.RawMessage) error {
	j, ok := s.rows[id]
	if !ok {
		return errors.New("no rows in result set")
	}
	j.Status = model.JobCompleted
	j.Result = result
	return nil
}

func (s *fakeStore) Fail(_ context.Context, id int, errMsg string) error {
	j, ok := s.rows[id]
	if !ok {
		return errors.New("no rows in result set")
	}
	j.Status = model.JobError
	j.Error = &errMsg
	return nil
}

type fakePublisher struct {
	published []mq.PMGenerateRequested
	err       error
}

func (p *fakePublisher) Publish(_ string, payload any) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, payload.(mq.PMGenerateRequested))
	return nil
}

type fakeCompleter struct {
	response string
	err      error
	lastReq  llm.Request
}

func (c *fakeCompleter) Complete(_ context.Context, r llm.Request) (string, error) {
	c.lastReq = r
	if c.err != nil {
		return "", c.err
	}
	return c.response, nil
}

func validInput(t *testing.T) json.RawMessage {
	t.Helper()
	in := GenerateInput{OfferText: strings.Repeat("offer text ", 10)}
	b, err := json.Marshal(in)
	require.NoError(t, err)
	return b
}

func TestSubmitCreatesPendingAndPublishes(t *testing.T) {
	store := newFakeStore()
	pub := &fakePublisher{}
	q := NewMQQueue(store, pub, zap.NewNop())

	id, err := q.Submit(context.Background(), validInput(t))
	require.NoError(t, err)

	job, err := q.Poll(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, model.JobPending, job.Status)

	require.Len(t, pub.published, 1)
	assert.Equal(t, id, pub.published[0].JobID)
}

func TestSubmitPublishFailureFailsJob(t *testing.T) {
	store := newFakeStore()
	pub := &fakePublisher{err: errors.New("broker down")}
	q := NewMQQueue(store, pub, zap.NewNop())

	_, err := q.Submit(context.Background(), validInput(t))
	require.Error(t, err)

	// the row must not be left pending forever
	job := store.rows[1]
	require.NotNil(t, job)
	assert.Equal(t, model.JobError, job.Status)
}

func runJob(t *testing.T, store *fakeStore, w *Worker, input json.RawMessage) *model.PMJob {
	t.Helper()
	id, err := store.Create(context.Background(), input)
	require.NoError(t, err)

	event, err := json.Marshal(mq.PMGenerateRequested{JobID: id, Input: input})
	require.NoError(t, err)
	require.NoError(t, w.HandleGenerate(context.Background(), event))

	return store.rows[id]
}

func TestWorkerCompletesJob(t *testing.T) {
	store := newFakeStore()
	completer := &fakeCompleter{response: `{"detected_project_name":"Acme","tasks":[]}`}
	w := NewWorker(store, completer, "gpt-4o-mini", zap.NewNop())

	job := runJob(t, store, w, validInput(t))
	assert.Equal(t, model.JobCompleted, job.Status)
	assert.JSONEq(t, `{"detected_project_name":"Acme","tasks":[]}`, string(job.Result))

	assert.Equal(t, "gpt-4o-mini", completer.lastReq.Model)
	assert.InDelta(t, llm.GenerateTasksTemperature, completer.lastReq.Temperature, 1e-9)
}

func TestWorkerFailsOnUpstreamError(t *testing.T) {
	store := newFakeStore()
	completer := &fakeCompleter{err: &llm.UpstreamError{StatusCode: 500}}
	w := NewWorker(store, completer, "gpt-4o-mini", zap.NewNop())

	job := runJob(t, store, w, validInput(t))
	assert.Equal(t, model.JobError, job.Status)
	require.NotNil(t, job.Error)
	assert.Contains(t, *job.Error, "completion failed")
}

func TestWorkerFailsOnUnparseableResponse(t *testing.T) {
	store := newFakeStore()
	completer := &fakeCompleter{response: "I cannot produce tasks for this."}
	w := NewWorker(store, completer, "gpt-4o-mini", zap.NewNop())

	job := runJob(t, store, w, validInput(t))
	assert.Equal(t, model.JobError, job.Status)
	require.NotNil(t, job.Error)
	assert.Equal(t, "failed to parse AI response", *job.Error)
}

func TestWorkerFailsOnShortOffer(t *testing.T) {
	store := newFakeStore()
	completer := &fakeCompleter{response: "{}"}
	w := NewWorker(store, completer, "gpt-4o-mini", zap.NewNop())

	in, err := json.Marshal(GenerateInput{OfferText: "too short"})
	require.NoError(t, err)

	job := runJob(t, store, w, in)
	assert.Equal(t, model.JobError, job.Status)
}

func TestWorkerSlovenianPrompt(t *testing.T) {
	store := newFakeStore()
	completer := &fakeCompleter{response: "{}"}
	w := NewWorker(store, completer, "gpt-4o-mini", zap.NewNop())

	in, err := json.Marshal(GenerateInput{
		OfferText: strings.Repeat("ponudba ", 10),
		Language:  "sl",
	})
	require.NoError(t, err)

	runJob(t, store, w, in)
	assert.Equal(t, llm.GenerateTasksSystemPromptSL, completer.lastReq.System)
}
