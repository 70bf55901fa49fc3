package otel

import (
	"go.opentelemetry.io/otel"

	"github.com/Pradipta/lokapasar/internal/constants"
)

var Tracer = otel.Tracer(constants.AppProductService)
