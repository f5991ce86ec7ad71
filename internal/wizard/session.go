package wizard

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"signup-wizard/internal/catalog"
	"signup-wizard/pkg/models"
	"strings"
	"sync"
	"time"
)

// Notifier receives a snapshot after every state change of a session.
type Notifier interface {
	NotifySession(sessionID string, snapshot Snapshot)
	// CloseSession drops every subscriber of a torn-down session.
	CloseSession(sessionID string)
}

// Recorder persists one audit entry per submission attempt that reached the
// gateway.
type Recorder interface {
	RecordSubmission(ctx context.Context, rec AuditRecord) error
}

type AuditRecord struct {
	SessionID     string
	Mode          Mode
	Channels      []Channel
	InterestCount int
	Identifier    string
	Success       bool
	Status        int
	Message       string
}

// Links configures the activation deep links shown after a successful signup.
type Links struct {
	WhatsAppNumber string
	WhatsAppText   string
	TelegramBot    string
}

type Deps struct {
	Gateway            *Gateway
	Reconciler         *Reconciler
	Recorder           Recorder
	Notifier           Notifier
	Links              Links
	DefaultCountryCode string
}

type DeepLink struct {
	Channel Channel `json:"channel"`
	Label   string  `json:"label"`
	URL     string  `json:"url"`
}

type SubmissionStatus struct {
	Pending      bool   `json:"pending"`
	Succeeded    bool   `json:"succeeded"`
	Failed       bool   `json:"failed"`
	Message      string `json:"message,omitempty"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

// Snapshot is the presentation view of a session.
type Snapshot struct {
	ID                  string           `json:"id"`
	State               State            `json:"state"`
	Step                Step             `json:"step"`
	Errors              map[Step]string  `json:"errors"`
	SelectedMarketIDs   []string         `json:"selectedMarketIds"`
	SelectedInterestIDs []string         `json:"selectedInterestIds"`
	Channels            []Channel        `json:"channels"`
	Contact             ContactInfo      `json:"contact"`
	Mode                Mode             `json:"mode"`
	ReadOnly            bool             `json:"readOnly"`
	Checking            bool             `json:"checking"`
	Submission          SubmissionStatus `json:"submission"`
	Links               []DeepLink       `json:"links,omitempty"`
	CatalogDegraded     bool             `json:"catalogDegraded"`
}

// ContactUpdate carries the fields a client edited; nil means untouched.
type ContactUpdate struct {
	FullName    *string
	Email       *string
	PhoneNumber *string
}

// Session is one visitor's run through the wizard. Every mutation holds mu;
// backend calls run with mu released behind the checking/submitting guards.
type Session struct {
	ID string

	mu         sync.Mutex
	deps       *Deps
	now        func() time.Time
	catalog    *catalog.Catalog
	selection  *Selection
	channels   ChannelSet
	contact    ContactInfo
	typedEmail string // email entered before a stored record replaced it
	prefilled  bool   // contact.Email came from a stored record
	wizard     *Wizard
	mode       Mode
	checking   bool
	lookupGen  uint64
	lookupKey  string
	submitting bool
	result     SubmissionStatus
	closed     bool
	lastSeen   time.Time
}

func NewSession(id string, cat *catalog.Catalog, deps *Deps, now func() time.Time) *Session {
	if now == nil {
		now = time.Now
	}
	return &Session{
		ID:        id,
		deps:      deps,
		now:       now,
		catalog:   cat,
		selection: NewSelection(cat),
		wizard:    NewWizard(),
		mode:      ModeCreate,
		lastSeen:  now(),
	}
}

func (s *Session) Catalog() *catalog.Catalog {
	return s.catalog
}

func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) Snapshot() (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return Snapshot{}, ErrSessionClosed
	}
	s.lastSeen = s.now()
	return s.snapshotLocked(), nil
}

// Close abandons the session and disconnects its subscribers. Results of
// in-flight calls are dropped.
func (s *Session) Close() {
	s.mu.Lock()
	already := s.closed
	s.closed = true
	s.mu.Unlock()

	if !already && s.deps.Notifier != nil {
		s.deps.Notifier.CloseSession(s.ID)
	}
}

func (s *Session) ToggleMarket(id string) (Snapshot, error) {
	return s.mutate(func() error {
		if s.submitting {
			return ErrSubmitPending
		}
		if s.mode == ModeUpdate {
			return ErrReadOnly
		}
		if _, ok := s.catalog.Market(id); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownMarket, id)
		}
		s.selection.ToggleMarket(id)
		return nil
	})
}

func (s *Session) ToggleChannel(ch Channel) (Snapshot, error) {
	return s.mutate(func() error {
		if s.submitting {
			return ErrSubmitPending
		}
		if s.mode == ModeUpdate {
			return ErrReadOnly
		}
		s.channels.Toggle(ch)
		s.wizard.ClearError(StepChannels)
		return nil
	})
}

func (s *Session) Next() (Snapshot, error) {
	return s.mutate(func() error {
		return s.wizard.Next(!s.selection.Empty(), !s.channels.Empty())
	})
}

func (s *Session) Back() (Snapshot, error) {
	return s.mutate(func() error {
		if s.submitting {
			return ErrSubmitPending
		}
		return s.wizard.Back()
	})
}

// Restart starts a new run after a successful submission. The channel set
// chosen in the previous run is kept.
func (s *Session) Restart() (Snapshot, error) {
	return s.mutate(func() error {
		if err := s.wizard.Restart(); err != nil {
			return err
		}
		s.result = SubmissionStatus{}
		return nil
	})
}

// UpdateContact applies edited fields on the contact step. A changed phone
// number re-runs the existing-user check before returning.
func (s *Session) UpdateContact(ctx context.Context, upd ContactUpdate) (Snapshot, error) {
	return s.mutate(func() error {
		if s.wizard.State() != StateStep3Form {
			return ErrWrongStep
		}
		if s.submitting {
			return ErrSubmitPending
		}
		if s.mode == ModeUpdate {
			if upd.FullName != nil && *upd.FullName != s.contact.FullName {
				return ErrReadOnly
			}
			if upd.Email != nil && *upd.Email != s.contact.Email {
				return ErrReadOnly
			}
		}

		if upd.FullName != nil {
			s.contact.FullName = *upd.FullName
		}
		if upd.Email != nil {
			s.contact.Email = strings.TrimSpace(*upd.Email)
		}
		if upd.PhoneNumber != nil {
			s.contact.PhoneNumber = strings.TrimSpace(*upd.PhoneNumber)
		}
		s.wizard.ClearError(StepContact)

		if s.identifier().Key() != s.lookupKey {
			s.reconcile(ctx)
		}
		return nil
	})
}

// Blur re-checks the current identifier, as when the phone field loses focus.
func (s *Session) Blur(ctx context.Context) (Snapshot, error) {
	return s.mutate(func() error {
		if s.wizard.State() != StateStep3Form {
			return ErrWrongStep
		}
		if s.submitting {
			return ErrSubmitPending
		}
		s.reconcile(ctx)
		return nil
	})
}

// Submit sends the composed registration through the gateway. A second call
// while one is pending, or while an existing-user check is in flight, is
// refused without any backend request.
func (s *Session) Submit(ctx context.Context) (Snapshot, error) {
	return s.mutate(func() error {
		if s.submitting {
			return ErrSubmitPending
		}
		if s.checking {
			return ErrLookupPending
		}
		if s.wizard.State() != StateStep3Form {
			return ErrWrongStep
		}

		s.wizard.ClearError(StepContact)
		sub := Submission{
			Mode:      s.mode,
			Contact:   s.contact,
			Channels:  ChannelSet{order: s.channels.List()},
			Interests: s.selection.InterestIDs(),
		}
		if err := s.deps.Gateway.Validate(sub); err != nil {
			s.fail(err.Error())
			return err
		}

		s.submitting = true
		s.result = SubmissionStatus{Pending: true}
		s.mu.Unlock()
		s.publish(s.snapshotUnsafe())

		msg, err := s.deps.Gateway.Submit(ctx, sub)
		s.audit(ctx, sub, msg, err)

		s.mu.Lock()
		s.submitting = false
		if s.closed {
			return ErrSessionClosed
		}
		if err != nil {
			s.fail(err.Error())
			return err
		}

		s.result = SubmissionStatus{Succeeded: true, Message: msg}
		s.contact = ContactInfo{}
		s.typedEmail, s.prefilled = "", false
		s.selection.Clear()
		s.mode = ModeCreate
		s.lookupKey = ""
		return s.wizard.Succeed()
	})
}

// mutate runs fn under the session lock, then publishes the resulting
// snapshot. fn may release and re-acquire the lock, and returns with it held.
func (s *Session) mutate(fn func() error) (Snapshot, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return Snapshot{}, ErrSessionClosed
	}
	s.lastSeen = s.now()
	err := fn()
	if s.closed {
		s.mu.Unlock()
		return Snapshot{}, ErrSessionClosed
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(snap)
	return snap, err
}

func (s *Session) fail(msg string) {
	s.wizard.SetError(StepContact, msg)
	s.result = SubmissionStatus{Failed: true, ErrorMessage: msg}
}

// identifier picks the lookup key: the normalized phone, or the email when
// no phone was entered and email is a chosen channel.
func (s *Session) identifier() Identifier {
	if phone := NormalizePhone(s.contact.PhoneNumber, s.deps.DefaultCountryCode); phone != "" {
		return Identifier{Kind: IdentifierPhone, Value: phone}
	}
	if s.channels.Has(ChannelEmail) && s.contact.Email != "" {
		return Identifier{Kind: IdentifierEmail, Value: s.contact.Email}
	}
	return Identifier{Kind: IdentifierPhone}
}

// reconcile runs the existing-user check. Called with mu held; mu is
// released for the backend call and held again on return.
func (s *Session) reconcile(ctx context.Context) {
	id := s.identifier()
	s.lookupKey = id.Key()
	s.lookupGen++
	gen := s.lookupGen

	if !s.deps.Reconciler.Eligible(id) {
		s.checking = false
		s.revertToCreate()
		return
	}

	s.checking = true
	s.mu.Unlock()
	s.publish(s.snapshotUnsafe())
	rec := s.deps.Reconciler.Check(ctx, id)
	s.mu.Lock()

	if s.closed || gen != s.lookupGen {
		return
	}
	s.checking = false
	if rec == nil {
		s.revertToCreate()
		return
	}
	s.applyExisting(rec)
}

// applyExisting pre-fills from a stored record. A record without an
// interests field falls back to the visitor's own selection rather than
// pinning nothing.
func (s *Session) applyExisting(u *models.ExistingUser) {
	s.mode = ModeUpdate
	s.contact.FullName = u.FullName
	if !s.prefilled {
		s.typedEmail = s.contact.Email
	}
	if u.Email != "" {
		s.contact.Email = u.Email
		s.prefilled = true
	} else {
		s.restoreEmail()
	}
	if chs := channelsOf(u); len(chs) > 0 {
		s.channels.Replace(chs...)
	}
	if u.Interests != nil {
		s.selection.Pin(u.Interests)
	} else {
		s.selection.Unpin()
	}
	log.Printf("Session %s switched to update mode", s.ID)
}

// revertToCreate drops anything pre-filled from a stored registration.
func (s *Session) revertToCreate() {
	if s.mode != ModeUpdate {
		return
	}
	s.mode = ModeCreate
	s.contact.FullName = ""
	s.restoreEmail()
	s.channels.Replace()
	s.selection.Clear()
}

// restoreEmail puts back whatever the visitor typed before a record's email
// replaced it.
func (s *Session) restoreEmail() {
	if s.prefilled {
		s.contact.Email = s.typedEmail
	}
	s.typedEmail, s.prefilled = "", false
}

func (s *Session) audit(ctx context.Context, sub Submission, msg string, err error) {
	if s.deps.Recorder == nil {
		return
	}
	rec := AuditRecord{
		SessionID:     s.ID,
		Mode:          sub.Mode,
		Channels:      sub.Channels.List(),
		InterestCount: len(sub.Interests),
		Success:       err == nil,
		Message:       msg,
	}
	if phone := NormalizePhone(sub.Contact.PhoneNumber, s.deps.DefaultCountryCode); phone != "" {
		rec.Identifier = MaskIdentifier(phone)
	} else if sub.Contact.Email != "" {
		rec.Identifier = MaskIdentifier(sub.Contact.Email)
	}
	var subErr *SubmitError
	if errors.As(err, &subErr) {
		rec.Status = subErr.Status
		rec.Message = subErr.Message
	}
	if recErr := s.deps.Recorder.RecordSubmission(context.WithoutCancel(ctx), rec); recErr != nil {
		log.Printf("Failed to record submission for session %s: %v", s.ID, recErr)
	}
}

func (s *Session) publish(snap Snapshot) {
	if s.deps.Notifier == nil || snap.ID == "" {
		return
	}
	s.deps.Notifier.NotifySession(s.ID, snap)
}

// snapshotUnsafe takes the lock briefly; used while fn has released it.
func (s *Session) snapshotUnsafe() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return Snapshot{}
	}
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	state := s.wizard.State()
	snap := Snapshot{
		ID:                  s.ID,
		State:               state,
		Step:                state.Step(),
		Errors:              s.wizard.Errors(),
		SelectedMarketIDs:   s.selection.MarketIDs(),
		SelectedInterestIDs: s.selection.InterestIDs(),
		Channels:            s.channels.List(),
		Contact:             s.contact,
		Mode:                s.mode,
		ReadOnly:            s.mode == ModeUpdate,
		Checking:            s.checking,
		Submission:          s.result,
		CatalogDegraded:     s.catalog.Degraded,
	}
	if state == StateStep3Success {
		snap.Links = s.deepLinks()
	}
	return snap
}

func (s *Session) deepLinks() []DeepLink {
	var links []DeepLink
	l := s.deps.Links
	if s.channels.Has(ChannelWhatsApp) && l.WhatsAppNumber != "" {
		number := strings.TrimPrefix(l.WhatsAppNumber, "+")
		links = append(links, DeepLink{
			Channel: ChannelWhatsApp,
			Label:   "Open WhatsApp and send the message to activate alerts",
			URL:     "https://wa.me/" + number + "?text=" + url.QueryEscape(l.WhatsAppText),
		})
	}
	if s.channels.Has(ChannelTelegram) && l.TelegramBot != "" {
		links = append(links, DeepLink{
			Channel: ChannelTelegram,
			Label:   "Open Telegram and press Start to activate alerts",
			URL:     "https://t.me/" + strings.TrimPrefix(l.TelegramBot, "@") + "?start=subscribe",
		})
	}
	return links
}
