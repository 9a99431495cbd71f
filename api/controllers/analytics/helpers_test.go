package analytics

import (
	"context"
	"sync"

	"github.com/angelmondragon/pulse-analytics/internal/analytics"
)

type testAnalyticsService struct {
	mu       sync.Mutex
	last     analytics.Request
	calls    int
	response *analytics.Payload
	err      error
	prompt   string
}

func (s *testAnalyticsService) Query(ctx context.Context, req analytics.Request) (*analytics.Payload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = req
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if s.response == nil {
		s.response = &analytics.Payload{Sales: []analytics.SalesPoint{}}
	}
	return s.response, nil
}

func (s *testAnalyticsService) Prompt(q analytics.Query) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = analytics.Request{Query: q}
	if s.err != nil {
		return "", s.err
	}
	return s.prompt, nil
}

func (s *testAnalyticsService) called() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls > 0
}
