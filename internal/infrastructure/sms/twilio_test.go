package sms

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSendSMS_PostsToMessagesEndpoint(t *testing.T) {
	var gotPath, gotTo, gotFrom, gotBody string
	var gotUser, gotPass string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUser, gotPass, _ = r.BasicAuth()
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		gotTo = r.PostFormValue("To")
		gotFrom = r.PostFormValue("From")
		gotBody = r.PostFormValue("Body")
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	client := NewClient(Config{
		AccountSID: "AC123",
		AuthToken:  "token",
		BaseURL:    srv.URL,
	})

	if err := client.SendSMS(context.Background(), "+5215512345678", "+15550001111", "Your shipment is on the move and in transit."); err != nil {
		t.Fatalf("send: %v", err)
	}

	if gotPath != "/2010-04-01/Accounts/AC123/Messages.json" {
		t.Errorf("wrong path: %q", gotPath)
	}
	if gotUser != "AC123" || gotPass != "token" {
		t.Errorf("wrong basic auth: %q / %q", gotUser, gotPass)
	}
	if gotTo != "+5215512345678" || gotFrom != "+15550001111" {
		t.Errorf("wrong addressing: to=%q from=%q", gotTo, gotFrom)
	}
	if !strings.Contains(gotBody, "in transit") {
		t.Errorf("wrong body: %q", gotBody)
	}
}

func TestSendSMS_NonSuccessStatusIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code": 21211, "message": "invalid To number"}`))
	}))
	defer srv.Close()

	client := NewClient(Config{AccountSID: "AC123", AuthToken: "token", BaseURL: srv.URL})

	err := client.SendSMS(context.Background(), "not-a-number", "+15550001111", "hi")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "status 400") || !strings.Contains(err.Error(), "21211") {
		t.Errorf("error should carry status and body detail, got: %v", err)
	}
}
