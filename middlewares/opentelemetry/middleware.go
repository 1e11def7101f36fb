package opentelemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/hmtmcse-com/queryset"
)

const instrumentationName = "github.com/hmtmcse-com/queryset/middlewares/opentelemetry"

// MiddlewareBuilder 每条语句一个 span
type MiddlewareBuilder struct {
	Tracer trace.Tracer
}

func (m *MiddlewareBuilder) Build() queryset.Middleware {
	if m.Tracer == nil {
		m.Tracer = otel.GetTracerProvider().Tracer(instrumentationName)
	}
	return func(next queryset.Handler) queryset.Handler {
		return func(ctx context.Context, qc *queryset.QueryContext) *queryset.QueryResult {
			tbl := "unknown"
			if qc.Model != nil {
				tbl = qc.Model.TableName
			}

			spanCtx, span := m.Tracer.Start(ctx, qc.Type+"-"+tbl)
			defer span.End()

			q, _ := qc.Query()
			if q != nil {
				span.SetAttributes(attribute.String("sql", q.SQL))
			}
			span.SetAttributes(attribute.String("component", "queryset"))
			span.SetAttributes(attribute.String("table", tbl))

			res := next(spanCtx, qc)
			if res.Err != nil {
				span.RecordError(res.Err)
			}
			return res
		}
	}
}
