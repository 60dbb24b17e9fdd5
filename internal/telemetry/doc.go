// Package telemetry records request metrics for the MCU Control Bridge via
// OpenTelemetry.
//
// The recorder registers against the global meter provider; without an SDK
// exporter installed all instruments are no-ops, so the bridge carries no
// metrics cost when the embedding host does not wire one up.
package telemetry
