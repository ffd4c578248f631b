// Package notify delivers roster alerts to a chat webhook.
//
// The default implementation posts JSON payloads to the configured webhook
// URL, attaching a profile photo as an image embed when one is available, and
// gracefully degrades to a no-op when no webhook is configured. The engine
// depends only on the small Service interface, so alternative transports slot
// in without touching classification code.
package notify
