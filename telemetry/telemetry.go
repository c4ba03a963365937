package telemetry

import (
	"context"
	"os"
	"strings"
	"studentrecords/common"
	"studentrecords/logger"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

const (
	traceFilePrefix   = "traces-"
	traceFileSuffix   = ".json"
	maxTraceFileCount = 7
)

func GetOtelEnabled() bool {
	val := os.Getenv("SR_OTEL_ENABLED")
	if val == "" {
		return true
	}
	lower := strings.ToLower(val)
	return lower != "false" && lower != "0"
}

func GetOtelEndpoint() string {
	return os.Getenv("SR_OTEL_ENDPOINT")
}

// InitTracer installs a global tracer provider. Spans go to the OTLP gRPC
// endpoint when SR_OTEL_ENDPOINT is set, otherwise to daily trace files in the
// state home. The returned function flushes and shuts the provider down.
func InitTracer(serviceName string) (func(context.Context) error, error) {
	if !GetOtelEnabled() {
		return func(ctx context.Context) error { return nil }, nil
	}

	ctx := context.Background()

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(serviceName),
		),
	)
	if err != nil {
		return nil, err
	}

	var exporter sdktrace.SpanExporter
	endpoint := GetOtelEndpoint()
	if endpoint != "" {
		exporter, err = otlptracegrpc.New(ctx,
			otlptracegrpc.WithEndpoint(endpoint),
			otlptracegrpc.WithInsecure(),
		)
		if err != nil {
			return nil, err
		}
	} else {
		stateHome, err := common.GetStateHome()
		if err != nil {
			return nil, err
		}

		rotatingWriter, err := logger.NewDailyRotatingWriter(stateHome, traceFilePrefix, traceFileSuffix, maxTraceFileCount)
		if err != nil {
			return nil, err
		}

		exporter, err = stdouttrace.New(
			stdouttrace.WithPrettyPrint(),
			stdouttrace.WithWriter(rotatingWriter),
		)
		if err != nil {
			rotatingWriter.Close()
			return nil, err
		}
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)

	return tp.Shutdown, nil
}
