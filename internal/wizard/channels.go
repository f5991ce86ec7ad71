package wizard

import "fmt"

type Channel string

const (
	ChannelEmail    Channel = "email"
	ChannelWhatsApp Channel = "whatsapp"
	ChannelTelegram Channel = "telegram"
)

func ParseChannel(s string) (Channel, error) {
	switch ch := Channel(s); ch {
	case ChannelEmail, ChannelWhatsApp, ChannelTelegram:
		return ch, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownChannel, s)
}

// ChannelSet is an insertion-ordered set of channels.
type ChannelSet struct {
	order []Channel
}

func (s *ChannelSet) Toggle(ch Channel) {
	for i, c := range s.order {
		if c == ch {
			s.order = append(s.order[:i:i], s.order[i+1:]...)
			return
		}
	}
	s.order = append(s.order, ch)
}

func (s *ChannelSet) Replace(chs ...Channel) {
	s.order = nil
	for _, ch := range chs {
		if !s.Has(ch) {
			s.order = append(s.order, ch)
		}
	}
}

func (s ChannelSet) Has(ch Channel) bool {
	for _, c := range s.order {
		if c == ch {
			return true
		}
	}
	return false
}

func (s ChannelSet) Empty() bool {
	return len(s.order) == 0
}

// Messaging reports whether a phone-based channel is selected.
func (s ChannelSet) Messaging() bool {
	return s.Has(ChannelWhatsApp) || s.Has(ChannelTelegram)
}

func (s ChannelSet) List() []Channel {
	out := make([]Channel, len(s.order))
	copy(out, s.order)
	return out
}
