package storage

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/vibecodeutah/hackathon-site/internal/storage"

// traced wraps a Store with a span per call.
type traced struct {
	Store
	backend string
	tracer  trace.Tracer
}

// Traced records a span around every call to s. backend names the store in
// span attributes.
func Traced(s Store, backend string) Store {
	return &traced{Store: s, backend: backend, tracer: otel.Tracer(tracerName)}
}

func (t *traced) start(ctx context.Context, op string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "storage."+op, trace.WithAttributes(
		attribute.String("storage.backend", t.backend),
	))
}

func end(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (t *traced) CreateRegistration(ctx context.Context, r *Registration) (err error) {
	ctx, span := t.start(ctx, "CreateRegistration")
	defer func() { end(span, err) }()
	return t.Store.CreateRegistration(ctx, r)
}

func (t *traced) GetRegistration(ctx context.Context, id string) (_ *Registration, err error) {
	ctx, span := t.start(ctx, "GetRegistration")
	defer func() { end(span, err) }()
	return t.Store.GetRegistration(ctx, id)
}

func (t *traced) ListRegistrations(ctx context.Context, opts ListOptions) (_ []*Registration, err error) {
	ctx, span := t.start(ctx, "ListRegistrations")
	defer func() { end(span, err) }()
	return t.Store.ListRegistrations(ctx, opts)
}

func (t *traced) CreateInquiry(ctx context.Context, q *Inquiry) (err error) {
	ctx, span := t.start(ctx, "CreateInquiry")
	span.SetAttributes(attribute.String("inquiry.type", q.InquiryType))
	defer func() { end(span, err) }()
	return t.Store.CreateInquiry(ctx, q)
}

func (t *traced) ListInquiries(ctx context.Context, opts ListOptions) (_ []*Inquiry, err error) {
	ctx, span := t.start(ctx, "ListInquiries")
	defer func() { end(span, err) }()
	return t.Store.ListInquiries(ctx, opts)
}
