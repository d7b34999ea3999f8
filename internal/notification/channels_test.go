package notification

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/parceltrack/tracking-system/internal/core/domain"
)

type fakeEmailTransport struct {
	to, subject, body string
	err               error
}

func (f *fakeEmailTransport) SendEmail(_ context.Context, to, subject, body string) error {
	f.to, f.subject, f.body = to, subject, body
	return f.err
}

type fakeSMSTransport struct {
	to, from, body string
	err            error
}

func (f *fakeSMSTransport) SendSMS(_ context.Context, to, from, body string) error {
	f.to, f.from, f.body = to, from, body
	return f.err
}

type fakePushTransport struct {
	token, title, body string
	err                error
}

func (f *fakePushTransport) SendPush(_ context.Context, token, title, body string) error {
	f.token, f.title, f.body = token, title, body
	return f.err
}

func TestEmailChannel_KnownStatus(t *testing.T) {
	transport := &fakeEmailTransport{}
	ch := NewEmailChannel(transport)

	if ch.Kind() != domain.ChannelEmail {
		t.Fatalf("unexpected kind: %s", ch.Kind())
	}
	if err := ch.Send(context.Background(), "ana@example.com", domain.StatusDelivered); err != nil {
		t.Fatalf("send: %v", err)
	}
	if transport.to != "ana@example.com" {
		t.Errorf("wrong recipient: %q", transport.to)
	}
	if transport.subject != "Shipment update: delivered" {
		t.Errorf("wrong subject: %q", transport.subject)
	}
	if transport.body != domain.MessageFor(domain.StatusDelivered) {
		t.Errorf("wrong body: %q", transport.body)
	}
}

func TestEmailChannel_UnknownStatusUsesGenericSubject(t *testing.T) {
	transport := &fakeEmailTransport{}
	ch := NewEmailChannel(transport)

	if err := ch.Send(context.Background(), "ana@example.com", "customs_hold"); err != nil {
		t.Fatalf("unknown status must not error: %v", err)
	}
	if transport.subject != "Shipment update" {
		t.Errorf("expected generic subject, got %q", transport.subject)
	}
	if !strings.Contains(transport.body, "new update") {
		t.Errorf("expected generic body, got %q", transport.body)
	}
}

func TestEmailChannel_TransportErrorWrapped(t *testing.T) {
	cause := errors.New("postmark 422")
	ch := NewEmailChannel(&fakeEmailTransport{err: cause})

	err := ch.Send(context.Background(), "ana@example.com", domain.StatusInTransit)
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped transport error, got: %v", err)
	}
}

func TestSMSChannel_SendsCatalogText(t *testing.T) {
	transport := &fakeSMSTransport{}
	ch := NewSMSChannel(transport, "+15550001111")

	if ch.Kind() != domain.ChannelSMS {
		t.Fatalf("unexpected kind: %s", ch.Kind())
	}
	if err := ch.Send(context.Background(), "+5215512345678", domain.StatusOutForDelivery); err != nil {
		t.Fatalf("send: %v", err)
	}
	if transport.to != "+5215512345678" || transport.from != "+15550001111" {
		t.Errorf("wrong addressing: to=%q from=%q", transport.to, transport.from)
	}
	if transport.body != domain.MessageFor(domain.StatusOutForDelivery) {
		t.Errorf("wrong body: %q", transport.body)
	}
}

func TestPushChannel_SendsToDeviceToken(t *testing.T) {
	transport := &fakePushTransport{}
	ch := NewPushChannel(transport)

	if ch.Kind() != domain.ChannelPush {
		t.Fatalf("unexpected kind: %s", ch.Kind())
	}
	if err := ch.Send(context.Background(), "device-token-1", domain.StatusDispatched); err != nil {
		t.Fatalf("send: %v", err)
	}
	if transport.token != "device-token-1" {
		t.Errorf("wrong token: %q", transport.token)
	}
	if transport.title != pushTitle {
		t.Errorf("wrong title: %q", transport.title)
	}
}

func TestPushChannel_TransportErrorWrapped(t *testing.T) {
	cause := errors.New("fcm unavailable")
	ch := NewPushChannel(&fakePushTransport{err: cause})

	if err := ch.Send(context.Background(), "device-token-1", domain.StatusDelivered); !errors.Is(err, cause) {
		t.Fatalf("expected wrapped transport error, got: %v", err)
	}
}
