package mds

import (
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("chargewatch.lib.scrapers.mds")
