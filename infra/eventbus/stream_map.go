package eventbus

import (
	"fmt"
	"strings"

	"github.com/piolcm/piol/pkg/domain/events"
)

// streamNameFor returns the Redis stream holding events of the given type.
func streamNameFor(prefix string, eventType events.EventType) string {
	return prefix + nameFor("events", eventType)
}

// dlqStreamName returns the DLQ stream name for the given event type.
func dlqStreamName(prefix string, eventType events.EventType) string {
	return prefix + nameFor("dlq", eventType)
}

// groupNameFor returns the Redis consumer group name for the event type.
func groupNameFor(group string, eventType events.EventType) string {
	return group + ":" + nameFor("group", eventType)
}

// topicNameFor returns the Kafka topic for the event type, e.g. piol.payment.completed.
func topicNameFor(prefix string, eventType events.EventType) string {
	return prefix + "." + strings.ToLower(eventType.String())
}

func dlqTopicNameFor(prefix string, eventType events.EventType) string {
	return topicNameFor(prefix, eventType) + ".dlq"
}

func nameFor(prefix string, eventType events.EventType) string {
	parts := strings.Split(eventType.String(), ".")
	if len(parts) == 2 {
		return fmt.Sprintf(
			"%s:%s:%s",
			prefix,
			strings.ToLower(parts[0]),
			strings.ToLower(parts[1]))
	}
	return fmt.Sprintf("%s:%s", prefix, strings.ToLower(eventType.String()))
}
