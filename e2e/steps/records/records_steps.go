package records

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body any, headers map[string]string) error
	DELETE(path string, headers map[string]string) error
	AccessToken() string
	Expand(s string) string
}

// RegisterSteps registers authenticated records API step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &recordsSteps{tc: tc}

	ctx.Step(`^I POST to "([^"]*)" as an authenticated user with body:$`, steps.postAuthenticated)
	ctx.Step(`^I POST to "([^"]*)" as an authenticated user$`, steps.postAuthenticatedEmpty)
	ctx.Step(`^I DELETE "([^"]*)" as an authenticated user$`, steps.deleteAuthenticated)
}

type recordsSteps struct {
	tc TestContext
}

func (s *recordsSteps) auth() (map[string]string, error) {
	token := s.tc.AccessToken()
	if token == "" {
		return nil, fmt.Errorf("no access token configured")
	}
	return map[string]string{"Authorization": "Bearer " + token}, nil
}

func (s *recordsSteps) postAuthenticated(ctx context.Context, path string, body *godog.DocString) error {
	headers, err := s.auth()
	if err != nil {
		return err
	}
	var payload any
	if err := json.Unmarshal([]byte(s.tc.Expand(body.Content)), &payload); err != nil {
		return fmt.Errorf("step body is not JSON: %w", err)
	}
	return s.tc.POST(path, payload, headers)
}

func (s *recordsSteps) postAuthenticatedEmpty(ctx context.Context, path string) error {
	headers, err := s.auth()
	if err != nil {
		return err
	}
	return s.tc.POST(path, nil, headers)
}

func (s *recordsSteps) deleteAuthenticated(ctx context.Context, path string) error {
	headers, err := s.auth()
	if err != nil {
		return err
	}
	return s.tc.DELETE(path, headers)
}
