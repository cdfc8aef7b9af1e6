package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"retroboard/internal/llm"
	"retroboard/internal/metrics"
	"retroboard/internal/model"
)

type stubCompleter struct {
	response string
	err      error
	lastReq  llm.Request
	lastMsgs []llm.Message
}

func (c *stubCompleter) Complete(_ context.Context, r llm.Request) (string, error) {
	c.lastReq = r
	if c.err != nil {
		return "", c.err
	}
	return c.response, nil
}

func (c *stubCompleter) CompleteMessages(_ context.Context, _, _ string, msgs []llm.Message, _ float64, _ int) (string, error) {
	c.lastMsgs = msgs
	if c.err != nil {
		return "", c.err
	}
	return c.response, nil
}

type stubEstimateStore struct {
	saved []*model.AIEstimate
	err   error
}

func (s *stubEstimateStore) Create(_ context.Context, e *model.AIEstimate) error {
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, e)
	return nil
}

func (s *stubEstimateStore) List(_ context.Context, _ int) ([]model.AIEstimate, error) {
	return nil, nil
}

func (s *stubEstimateStore) Delete(_ context.Context, _ int) error { return nil }

func TestEstimateGenerateSavesOnSuccess(t *testing.T) {
	completer := &stubCompleter{response: `{"confidence":"high","total":{"realistic":268}}`}
	store := &stubEstimateStore{}
	svc := NewEstimateService(completer, store, "gpt-4o", zap.NewNop())

	res, err := svc.Generate(context.Background(), GenerateEstimateRequest{
		BriefText:   "E-commerce site for a furniture brand",
		ProjectType: "ecommerce",
	})
	require.NoError(t, err)
	assert.Empty(t, res.Error)
	assert.JSONEq(t, `{"confidence":"high","total":{"realistic":268}}`, string(res.Estimate))

	require.Len(t, store.saved, 1)
	assert.Equal(t, "ecommerce", store.saved[0].ProjectType)

	assert.Equal(t, "gpt-4o", completer.lastReq.Model)
	assert.InDelta(t, llm.EstimateTemperature, completer.lastReq.Temperature, 1e-9)
	assert.Contains(t, completer.lastReq.User, "E-commerce site for a furniture brand")
}

func TestEstimateGenerateSoftFailure(t *testing.T) {
	completer := &stubCompleter{response: "I am unable to estimate this."}
	store := &stubEstimateStore{}
	svc := NewEstimateService(completer, store, "gpt-4o", zap.NewNop())

	res, err := svc.Generate(context.Background(), GenerateEstimateRequest{BriefText: "brief"})
	require.NoError(t, err)
	assert.Nil(t, res.Estimate)
	assert.Equal(t, "I am unable to estimate this.", res.Raw)
	assert.NotEmpty(t, res.Error)
	assert.Empty(t, store.saved)
}

func TestEstimateGenerateUpstreamError(t *testing.T) {
	completer := &stubCompleter{err: &llm.UpstreamError{StatusCode: 503}}
	svc := NewEstimateService(completer, &stubEstimateStore{}, "gpt-4o", zap.NewNop())

	_, err := svc.Generate(context.Background(), GenerateEstimateRequest{BriefText: "brief"})
	var ue *llm.UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, 503, ue.StatusCode)
}

func TestOfferParseRejectsShortText(t *testing.T) {
	svc := NewOfferService(&stubCompleter{}, "gpt-4o", zap.NewNop())

	_, err := svc.Parse(context.Background(), "short offer")
	assert.ErrorIs(t, err, ErrOfferTooShort)
}

func TestOfferParseSuccess(t *testing.T) {
	completer := &stubCompleter{response: `{"name":"Redesign","client":"Acme","offer_value":67400}`}
	svc := NewOfferService(completer, "gpt-4o", zap.NewNop())

	res, err := svc.Parse(context.Background(), strings.Repeat("offer line ", 10))
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Redesign","client":"Acme","offer_value":67400}`, string(res.Parsed))
	assert.InDelta(t, llm.ParseOfferTemperature, completer.lastReq.Temperature, 1e-9)
}

func TestAssistantChatPrependsContext(t *testing.T) {
	completer := &stubCompleter{response: "Margins look healthy."}
	svc := NewAssistantService(completer, "gpt-4o")

	out, err := svc.Chat(context.Background(), []llm.Message{
		{Role: "user", Content: "How are margins?"},
	}, "Project A: 52% margin")
	require.NoError(t, err)
	assert.Equal(t, "Margins look healthy.", out)

	require.Len(t, completer.lastMsgs, 2)
	assert.Equal(t, "system", completer.lastMsgs[0].Role)
	assert.Contains(t, completer.lastMsgs[0].Content, "Project A: 52% margin")
}

func TestAssistantChatRequiresMessages(t *testing.T) {
	svc := NewAssistantService(&stubCompleter{}, "gpt-4o")
	_, err := svc.Chat(context.Background(), nil, "")
	assert.Error(t, err)
}

type stubSnapshotSource struct {
	snapshots map[int]*metrics.ProjectSnapshot
	listErr   error
}

func (s *stubSnapshotSource) List(_ context.Context) ([]model.Project, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]model.Project, 0, len(s.snapshots))
	for _, snap := range s.snapshots {
		out = append(out, snap.Detail.Project)
	}
	return out, nil
}

func (s *stubSnapshotSource) GetSnapshot(_ context.Context, id int) (*metrics.ProjectSnapshot, error) {
	snap, ok := s.snapshots[id]
	if !ok {
		return nil, errors.New("no rows in result set")
	}
	return snap, nil
}

func analyticsFixture() *stubSnapshotSource {
	engine := metrics.NewEngine(30, 50, 55)
	source := &stubSnapshotSource{snapshots: map[int]*metrics.ProjectSnapshot{}}

	completed := &model.ProjectDetail{
		Project: model.Project{ID: 1, Name: "Shop", Status: model.StatusCompleted, OfferValue: 12000, ScopeCreep: true},
		ProfileHours: []model.ProfileHours{
			{Profile: model.ProfileDev, EstimatedHours: 100, ActualHours: 120},
		},
	}
	draft := &model.ProjectDetail{
		Project: model.Project{ID: 2, Name: "Brand", Status: model.StatusDraft, OfferValue: 5000},
	}

	source.snapshots[1] = &metrics.ProjectSnapshot{Detail: completed, Metrics: engine.Compute(completed)}
	source.snapshots[2] = &metrics.ProjectSnapshot{Detail: draft, Metrics: engine.Compute(draft)}
	return source
}

func TestAnalyticsSummaryWithoutCache(t *testing.T) {
	svc := NewAnalyticsService(analyticsFixture(), nil, zap.NewNop())

	summary, err := svc.GetSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Portfolio.TotalProjects)
	assert.InDelta(t, 50.0, summary.Portfolio.ScopeCreepRate, 1e-9)
	assert.InDelta(t, 17000.0, summary.Portfolio.TotalRevenue, 1e-9)
	assert.Len(t, summary.Projects, 2)
}

func TestAnalyticsSummaryPropagatesListError(t *testing.T) {
	source := &stubSnapshotSource{listErr: errors.New("db down")}
	svc := NewAnalyticsService(source, nil, zap.NewNop())

	_, err := svc.GetSummary(context.Background())
	assert.Error(t, err)
}
