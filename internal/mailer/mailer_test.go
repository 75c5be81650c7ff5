package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"GroceryHub/internal/grocery"
)

func TestSplitRecipients(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    []string
		wantErr error
	}{
		{name: "single", in: "a@example.com", want: []string{"a@example.com"}},
		{name: "several with spaces", in: " a@example.com , b@example.com ", want: []string{"a@example.com", "b@example.com"}},
		{name: "trailing comma", in: "a@example.com,", want: []string{"a@example.com"}},
		{name: "empty", in: "", wantErr: ErrNoRecipients},
		{name: "only commas", in: " , ,", wantErr: ErrNoRecipients},
		{name: "missing at", in: "a.example.com", wantErr: ErrBadRecipient},
		{name: "missing dot", in: "a@example", wantErr: ErrBadRecipient},
		{name: "one bad rejects all", in: "a@example.com,bad", wantErr: ErrBadRecipient},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := SplitRecipients(tc.in)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("err = %v, want %v", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("addr[%d] = %q, want %q", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestSendList(t *testing.T) {
	var captured sendReq

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer key123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(ts.Close)

	c := NewClient("key123", "lists@example.com")
	c.Endpoint = ts.URL

	lines := []grocery.CartLine{
		{CartEntry: grocery.CartEntry{Item: grocery.Item{Name: "Organic Bananas", Price: 1.99}, Quantity: 2}, Total: 3.98},
	}

	err := c.SendList(context.Background(), "Safeway", lines, 3.98, "a@example.com, b@example.com")
	if err != nil {
		t.Fatalf("SendList: %v", err)
	}

	if captured.From != "lists@example.com" {
		t.Errorf("from = %q", captured.From)
	}
	if len(captured.To) != 2 || captured.To[0] != "a@example.com" {
		t.Errorf("to = %v", captured.To)
	}
	if captured.Subject != "Safeway Shopping List - $3.98" {
		t.Errorf("subject = %q", captured.Subject)
	}
	for _, want := range []string{"Organic Bananas", "$1.99", "$3.98", "Safeway Shopping List"} {
		if !strings.Contains(captured.HTML, want) {
			t.Errorf("html missing %q", want)
		}
	}
}

func TestSendList_NotConfigured(t *testing.T) {
	c := NewClient("", "lists@example.com")

	err := c.SendList(context.Background(), "Safeway", nil, 0, "a@example.com")
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("err = %v, want ErrNotConfigured", err)
	}
}

func TestSendList_BadStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	t.Cleanup(ts.Close)

	c := NewClient("key123", "lists@example.com")
	c.Endpoint = ts.URL

	err := c.SendList(context.Background(), "Safeway", nil, 0, "a@example.com")
	if !errors.Is(err, ErrSendFailed) {
		t.Errorf("err = %v, want ErrSendFailed", err)
	}
}
