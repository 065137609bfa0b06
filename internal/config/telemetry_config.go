package config

import "github.com/spf13/viper"

const (
	otlpEndpointKey = "otel_exporter_otlp_endpoint"
	serviceNameKey  = "otel_service_name"
	samplingRateKey = "otel_sampling_rate"
	otlpInsecureKey = "otel_insecure"
)

type TelemetryConfig interface {
	GetOTLPEndpoint() string
	GetServiceName() string
	GetSamplingRate() float64
	GetOTLPInsecure() bool
}

type Telemetry struct {
	v *viper.Viper
}

var _ TelemetryConfig = Telemetry{}

// GetOTLPEndpoint is the OTLP/HTTP collector host:port. Empty disables trace export.
func (t Telemetry) GetOTLPEndpoint() string {
	return t.v.GetString(otlpEndpointKey)
}

func (t Telemetry) GetServiceName() string {
	return t.v.GetString(serviceNameKey)
}

func (t Telemetry) GetSamplingRate() float64 {
	rate := t.v.GetFloat64(samplingRateKey)
	switch {
	case rate < 0:
		return 0
	case rate > 1:
		return 1
	}
	return rate
}

func (t Telemetry) GetOTLPInsecure() bool {
	return t.v.GetBool(otlpInsecureKey)
}
