package smtp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// inboxMessage is the part of a MailHog message read by the tests.
type inboxMessage struct {
	Content struct {
		Headers map[string][]string `json:"Headers"`
		Body    string              `json:"Body"`
	} `json:"Content"`
}

// FindEmail returns the body of the last message the local test inbox
// received for to, and empties the inbox. It returns io.EOF when there is
// none. Only used in tests.
func (se *Email) FindEmail(ctx context.Context, to string) (string, error) {
	var found struct {
		Items []inboxMessage `json:"items"`
	}
	query := url.Values{"kind": {"to"}, "query": {to}}
	if err := se.inbox(ctx, http.MethodGet, "/api/v2/search?"+query.Encode(), &found); err != nil {
		return "", err
	}
	if len(found.Items) == 0 {
		return "", io.EOF
	}
	return found.Items[0].Content.Body, se.inbox(ctx, http.MethodDelete, "/api/v1/messages", nil)
}

// inbox calls the API of the test inbox and decodes the response into out
// when it is not nil.
func (se *Email) inbox(ctx context.Context, method, path string, out any) error {
	endpoint := fmt.Sprintf("http://%s:%d%s", se.config.SMTPServer, se.config.TestAPIPort, path)
	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return fmt.Errorf("could not create inbox request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("could not reach the inbox: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("inbox %s %s: unexpected status %d", method, path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("could not decode inbox response: %w", err)
	}
	return nil
}
