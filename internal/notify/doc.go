// Package notify publishes entity-change notifications to a RabbitMQ topic
// exchange for external indexers. The publisher is optional; without a
// configured broker the Nop implementation is wired instead.
package notify
