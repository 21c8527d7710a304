package kakao

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const memoPath = "/v2/api/talk/memo/default/send"

var ErrMissingAccessToken = errors.New("kakao access token is empty")

// Client sends "talk to me" memos through the Kakao REST API.
type Client struct {
	baseURL    string
	linkURL    string
	httpClient *http.Client
}

func NewClient(baseURL, linkURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		linkURL:    linkURL,
		httpClient: httpClient,
	}
}

type textTemplate struct {
	ObjectType string       `json:"object_type"`
	Text       string       `json:"text"`
	Link       templateLink `json:"link"`
}

type templateLink struct {
	WebURL       string `json:"web_url,omitempty"`
	MobileWebURL string `json:"mobile_web_url,omitempty"`
}

func (c *Client) SendToMe(ctx context.Context, accessToken, text string) error {
	if accessToken == "" {
		return ErrMissingAccessToken
	}

	tmpl, err := json.Marshal(textTemplate{
		ObjectType: "text",
		Text:       text,
		Link:       templateLink{WebURL: c.linkURL, MobileWebURL: c.linkURL},
	})
	if err != nil {
		return fmt.Errorf("json.Marshal -> %w", err)
	}

	form := url.Values{}
	form.Set("template_object", string(tmpl))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+memoPath, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext -> %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded;charset=utf-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("c.httpClient.Do -> %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("kakao memo send failed: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return nil
}
