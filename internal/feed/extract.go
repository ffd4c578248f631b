package feed

import (
	"html"
	"regexp"
	"strings"

	"huskywatch/internal/classify"
)

// The feed embeds structured fields in each entry's HTML description using
// fixed textual markers. These patterns are the single place that text shape
// is known; everything downstream works with the structured candidate.
var (
	keyPattern    = regexp.MustCompile(`/t/(\d+)`)
	statusPattern = regexp.MustCompile(`(Status: .*)<br/>`)
	datePattern   = regexp.MustCompile(`(Date: .*)<br/>`)
	playerPattern = regexp.MustCompile(`Player: <a href="([^"]*)"`)
	infoPattern   = regexp.MustCompile(`(Information: .*)<br/>`)
	fromPattern   = regexp.MustCompile(`From: <a href="[^"]*/team/(\d+)/`)
	toPattern     = regexp.MustCompile(`To: <a href="[^"]*/team/(\d+)/`)
)

// Normalize maps one raw feed entry to a structured candidate. Fields the
// entry does not carry are left empty; the caller decides whether the result
// is complete enough to classify.
func Normalize(guid, title, description, peerLabel string) classify.CandidateEvent {
	decoded := html.UnescapeString(description)

	candidate := classify.CandidateEvent{
		Title: strings.TrimSpace(title),
		Text:  decoded,
	}

	if m := keyPattern.FindStringSubmatch(guid); m != nil {
		candidate.SourceKey = m[1]
	}
	if m := statusPattern.FindStringSubmatch(decoded); m != nil {
		candidate.Status = strings.TrimSpace(m[1])
	}
	if m := datePattern.FindStringSubmatch(decoded); m != nil {
		candidate.Date = strings.TrimSpace(m[1])
	}
	if m := playerPattern.FindStringSubmatch(decoded); m != nil {
		candidate.ProfileURL = m[1]
	}
	if m := infoPattern.FindStringSubmatch(decoded); m != nil {
		candidate.Information = strings.TrimSpace(m[1])
	}
	if m := fromPattern.FindStringSubmatch(decoded); m != nil {
		candidate.OriginID = m[1]
	}
	if m := toPattern.FindStringSubmatch(decoded); m != nil {
		candidate.DestinationID = m[1]
	}
	if peerLabel != "" && strings.Contains(decoded, peerLabel) {
		candidate.PeerLabel = true
	}

	return candidate
}
