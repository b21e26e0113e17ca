// Package constants holds identifiers shared between configuration and infrastructure.
package constants

// Pub/Sub providers accepted in pubsub.provider.
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Message attribute keys set on every published event.
const (
	PubSubAttrEventType  = "event_type"
	PubSubAttrIdentityID = "identity_id"
	PubSubAttrRole       = "role"
	PubSubAttrRequestID  = "request_id"
)

// EventTypeIdentityRegistered is the event_type of registration events.
const EventTypeIdentityRegistered = "identity.registered"
