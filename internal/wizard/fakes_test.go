package wizard

import (
	"context"
	"signup-wizard/internal/catalog"
	"signup-wizard/pkg/models"
	"sync"
	"testing"
	"time"
)

func testCatalog() *catalog.Catalog {
	return catalog.NewCatalog([]models.InterestGroup{
		{ParentType: "India", Subcategories: []models.Interest{{ID: "i1", Name: "Nifty 50"}, {ID: "i2", Name: "Bank Nifty"}}},
		{ParentType: "US", Subcategories: []models.Interest{{ID: "u1", Name: "S&P 500"}}},
		{ParentType: "Crypto", Subcategories: []models.Interest{{ID: "i2", Name: "Bank Nifty"}, {ID: "c1", Name: "Bitcoin"}}},
		{ParentType: catalog.ParentWaitlist, Subcategories: []models.Interest{{ID: "w1", Name: "Japan Pro"}, {ID: "w2", Name: "Options Desk"}}},
	})
}

// fakeBackend implements Lookup and Submitter. Calls can be held open with
// the hold* channels to exercise in-flight guards.
type fakeBackend struct {
	mu sync.Mutex

	lookups    []string
	lookupResp map[string]*models.UserLookupResponse
	lookupErr  error
	holdLookup map[string]chan struct{}
	lookupSeen chan string

	creates    []models.SignupRequest
	updates    []models.UpdateSignupRequest
	submitResp *models.MessageResponse
	submitErr  error
	holdSubmit chan struct{}
	submitSeen chan struct{}
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		lookupResp: map[string]*models.UserLookupResponse{},
		holdLookup: map[string]chan struct{}{},
		lookupSeen: make(chan string, 16),
		submitSeen: make(chan struct{}, 16),
	}
}

func (f *fakeBackend) lookup(ctx context.Context, key string) (*models.UserLookupResponse, error) {
	f.mu.Lock()
	f.lookups = append(f.lookups, key)
	hold := f.holdLookup[key]
	resp, err := f.lookupResp[key], f.lookupErr
	f.mu.Unlock()

	f.lookupSeen <- key
	if hold != nil {
		<-hold
	}
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return &models.UserLookupResponse{Exists: false}, nil
	}
	return resp, nil
}

func (f *fakeBackend) LookupUserByPhone(ctx context.Context, phone string) (*models.UserLookupResponse, error) {
	return f.lookup(ctx, phone)
}

func (f *fakeBackend) LookupUserByEmail(ctx context.Context, email string) (*models.UserLookupResponse, error) {
	return f.lookup(ctx, email)
}

func (f *fakeBackend) submit() (*models.MessageResponse, error) {
	f.submitSeen <- struct{}{}
	if f.holdSubmit != nil {
		<-f.holdSubmit
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	if f.submitResp == nil {
		return &models.MessageResponse{}, nil
	}
	return f.submitResp, nil
}

func (f *fakeBackend) CreateSignup(ctx context.Context, req models.SignupRequest) (*models.MessageResponse, error) {
	f.mu.Lock()
	f.creates = append(f.creates, req)
	f.mu.Unlock()
	return f.submit()
}

func (f *fakeBackend) UpdateSignup(ctx context.Context, req models.UpdateSignupRequest) (*models.MessageResponse, error) {
	f.mu.Lock()
	f.updates = append(f.updates, req)
	f.mu.Unlock()
	return f.submit()
}

func (f *fakeBackend) counts() (lookups, creates, updates int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.lookups), len(f.creates), len(f.updates)
}

type fakeRecorder struct {
	mu      sync.Mutex
	records []AuditRecord
}

func (r *fakeRecorder) RecordSubmission(ctx context.Context, rec AuditRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
	return nil
}

func (r *fakeRecorder) all() []AuditRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]AuditRecord{}, r.records...)
}

type fakeNotifier struct {
	mu     sync.Mutex
	snaps  []Snapshot
	closed []string
}

func (n *fakeNotifier) NotifySession(sessionID string, snap Snapshot) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.snaps = append(n.snaps, snap)
}

func (n *fakeNotifier) CloseSession(sessionID string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.closed = append(n.closed, sessionID)
}

func (n *fakeNotifier) closedIDs() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string{}, n.closed...)
}

func (n *fakeNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.snaps)
}

type fixture struct {
	backend  *fakeBackend
	recorder *fakeRecorder
	notifier *fakeNotifier
	deps     *Deps
	session  *Session
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	fb := newFakeBackend()
	rec := &fakeRecorder{}
	n := &fakeNotifier{}
	deps := &Deps{
		Gateway: &Gateway{
			Backend:            fb,
			BrandName:          "Median Edge",
			SentinelPhone:      "+99900000000",
			DefaultCountryCode: "91",
		},
		Reconciler: NewReconciler(fb, 12),
		Recorder:   rec,
		Notifier:   n,
		Links: Links{
			WhatsAppNumber: "+919000000000",
			WhatsAppText:   "Activate",
			TelegramBot:    "@medianedge_bot",
		},
		DefaultCountryCode: "91",
	}
	return &fixture{
		backend:  fb,
		recorder: rec,
		notifier: n,
		deps:     deps,
		session:  NewSession("sess-1", testCatalog(), deps, time.Now),
	}
}

func ptr(s string) *string {
	return &s
}

func waitFor[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for backend call")
	}
	var zero T
	return zero
}
