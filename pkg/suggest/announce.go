package suggest

import "github.com/go-logr/logr"

// Politeness tells the announcer how urgently a message should interrupt.
type Politeness string

const (
	// Polite messages wait for the current announcement to finish.
	Polite Politeness = "polite"
	// Assertive messages interrupt.
	Assertive Politeness = "assertive"
)

// Announcer delivers a message to assistive technology. The transport is
// owned by the host program.
type Announcer interface {
	Announce(message string, mode Politeness)
}

// AnnouncerFunc adapts a function to Announcer.
type AnnouncerFunc func(message string, mode Politeness)

// Announce calls f.
func (f AnnouncerFunc) Announce(message string, mode Politeness) {
	f(message, mode)
}

type nopAnnouncer struct{}

func (nopAnnouncer) Announce(string, Politeness) {}

// MultiAnnouncer fans a message out to several announcers.
func MultiAnnouncer(announcers ...Announcer) Announcer {
	list := make([]Announcer, 0, len(announcers))
	for _, a := range announcers {
		if a != nil {
			list = append(list, a)
		}
	}
	return AnnouncerFunc(func(message string, mode Politeness) {
		for _, a := range list {
			a.Announce(message, mode)
		}
	})
}

// LogAnnouncer writes announcements to a logger at V(1).
func LogAnnouncer(lgr logr.Logger) Announcer {
	return AnnouncerFunc(func(message string, mode Politeness) {
		lgr.V(1).Info("announce", "message", message, "mode", string(mode))
	})
}

// announce suppresses every message while there is nothing to suggest.
func (m *Model) announce(message string) {
	if len(m.props.Suggestions) == 0 {
		return
	}
	m.announcer.Announce(compact(message), Polite)
}

func (m *Model) announceSuggestionsCount() {
	m.announce(m.messages.Count(len(m.props.Suggestions)))
}

func (m *Model) announceSuggestionsExist() {
	m.announce(m.messages.SuggestionsExist)
}

func (m *Model) announceSuggestionIsOpen() {
	m.announce(m.messages.SuggestionIsOpen)
}

func (m *Model) announceSuggestion(index int) {
	if index < 0 || index >= len(m.props.Suggestions) {
		return
	}
	m.announce(m.messages.Select(m.props.Suggestions[index].AnnounceLabel()))
}
