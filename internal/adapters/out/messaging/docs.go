// Package messaging delivers rendered customer messages. Each notification
// channel is served by one provider:
//
//   - log: writes the message to the service log
//   - noop: accepts and drops the message
//   - fail: always fails (exercises failure isolation in staging)
//   - webhook: POSTs a JSON envelope to an HTTP endpoint, e.g. an SMS gateway
//   - amqp: publishes the envelope to a RabbitMQ exchange, e.g. for a mailer
//   - nats: publishes the envelope to a NATS subject, e.g. for a push gateway
//
// Every sender implements ports.MessageSender.
package messaging
