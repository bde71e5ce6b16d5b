package events

import (
	"context"
	"testing"

	"gigdash/services/dashboard/internal/dashboard"
	"gigdash/services/dashboard/internal/errors"
)

func TestDecodeReplyRoundTripsHandlerOutput(t *testing.T) {
	r := &recorder{view: &dashboard.View{Selection: "US", ViewingLabel: "Viewing data for: US"}}
	reply := newHandler(r).Handle(context.Background(), []byte(`{"country":"US"}`))

	view, err := DecodeReply(reply)
	if err != nil {
		t.Fatalf("DecodeReply() error = %v", err)
	}
	if view.Selection != "US" || view.ViewingLabel != "Viewing data for: US" {
		t.Errorf("view = %+v", view)
	}
}

func TestDecodeReplyCarriesErrorType(t *testing.T) {
	r := &recorder{err: errors.DataUnavailable("couldn't find 'jobs.xlsx'", nil)}
	reply := newHandler(r).Handle(context.Background(), nil)

	_, err := DecodeReply(reply)
	if !errors.IsType(err, errors.ErrTypeDataUnavailable) {
		t.Fatalf("DecodeReply() error = %v, want DATA_UNAVAILABLE", err)
	}
	if got := errors.Message(err); got != "couldn't find 'jobs.xlsx'" {
		t.Errorf("message = %q", got)
	}
}

func TestDecodeReplyMalformed(t *testing.T) {
	if _, err := DecodeReply([]byte("not json")); !errors.IsType(err, errors.ErrTypeInternal) {
		t.Errorf("DecodeReply() error = %v, want INTERNAL", err)
	}
}
