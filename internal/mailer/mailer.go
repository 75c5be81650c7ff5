// Package mailer sends rendered shopping lists through a resend-style HTTPS
// email API. It is a presentation-layer collaborator: the core exposes the
// cart data and recipient setting, this package turns them into a message.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strings"
	"time"

	"GroceryHub/internal/grocery"
)

var (
	ErrNoRecipients  = errors.New("no recipient address configured")
	ErrBadRecipient  = errors.New("invalid recipient address")
	ErrSendFailed    = errors.New("email send failed")
	ErrNotConfigured = errors.New("email api key not configured")
)

const defaultEndpoint = "https://api.resend.com/emails"

// Client talks to the email API. From is the verified sender address.
type Client struct {
	Endpoint string
	APIKey   string
	From     string
	HTTP     *http.Client
}

func NewClient(apiKey, from string) *Client {
	return &Client{
		Endpoint: defaultEndpoint,
		APIKey:   apiKey,
		From:     from,
		HTTP:     &http.Client{Timeout: 10 * time.Second},
	}
}

var listTemplate = template.Must(template.New("list").Parse(`<html>
<body style="font-family: Arial, sans-serif; margin: 20px;">
<h1 style="color: #00bfff;">{{.Store}} Shopping List</h1>
<p>Here's your shopping list for {{.Store}}:</p>
<table style="border-collapse: collapse; width: 100%;">
<tr>
<th style="background-color: #00bfff; color: white; padding: 12px; text-align: left;">Item</th>
<th style="background-color: #00bfff; color: white; padding: 12px; text-align: left;">Price</th>
<th style="background-color: #00bfff; color: white; padding: 12px; text-align: left;">Quantity</th>
<th style="background-color: #00bfff; color: white; padding: 12px; text-align: left;">Total</th>
</tr>
{{range .Lines}}<tr>
<td style="padding: 10px; border-bottom: 1px solid #ddd;">{{.Name}}</td>
<td style="padding: 10px; border-bottom: 1px solid #ddd;">${{printf "%.2f" .Price}}</td>
<td style="padding: 10px; border-bottom: 1px solid #ddd;">{{.Quantity}}</td>
<td style="padding: 10px; border-bottom: 1px solid #ddd;">${{printf "%.2f" .Total}}</td>
</tr>
{{end}}</table>
<p style="font-size: 18px; font-weight: bold; color: #00bfff;">Total: ${{printf "%.2f" .Total}}</p>
</body>
</html>`))

type listData struct {
	Store string
	Lines []grocery.CartLine
	Total float64
}

type sendReq struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// SendList renders the store's list as an HTML table and sends it to the
// configured recipients. The recipients setting may hold several addresses
// separated by commas; each gets a syntactic check at this point of use.
func (c *Client) SendList(ctx context.Context, store string, lines []grocery.CartLine, total float64, recipients string) error {
	if c.APIKey == "" {
		return ErrNotConfigured
	}

	to, err := SplitRecipients(recipients)
	if err != nil {
		return err
	}

	var body bytes.Buffer
	if err := listTemplate.Execute(&body, listData{Store: store, Lines: lines, Total: total}); err != nil {
		return err
	}

	payload, err := json.Marshal(sendReq{
		From:    c.From,
		To:      to,
		Subject: fmt.Sprintf("%s Shopping List - $%.2f", store, total),
		HTML:    body.String(),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: status=%d", ErrSendFailed, resp.StatusCode)
	}
	return nil
}

// SplitRecipients parses a comma-separated address list, trimming blanks
// and rejecting anything without an "@" and a ".".
func SplitRecipients(s string) ([]string, error) {
	var out []string
	for _, part := range strings.Split(s, ",") {
		addr := strings.TrimSpace(part)
		if addr == "" {
			continue
		}
		if !strings.Contains(addr, "@") || !strings.Contains(addr, ".") {
			return nil, fmt.Errorf("%w: %q", ErrBadRecipient, addr)
		}
		out = append(out, addr)
	}
	if len(out) == 0 {
		return nil, ErrNoRecipients
	}
	return out, nil
}
