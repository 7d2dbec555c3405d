package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"gig-marketplace-api/internal/common"
	"gig-marketplace-api/internal/entity"
	"gig-marketplace-api/internal/notifier"
	"gig-marketplace-api/internal/repo"
	"gig-marketplace-api/internal/repo/repo_errors"

	"github.com/google/uuid"
)

// fakeStore implements repo.User, repo.Gig and repo.Bid against maps
// guarded by one mutex, so the hire path is linearized the same way the
// Postgres row lock linearizes it.
type fakeStore struct {
	mu      sync.Mutex
	users   map[string]entity.User
	gigs    map[uuid.UUID]*entity.Gig
	bids    map[uuid.UUID]*entity.Bid
	bidSeq  map[uuid.UUID]int
	seq     int
	hireErr error // injected storage fault for HireBid
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:  make(map[string]entity.User),
		gigs:   make(map[uuid.UUID]*entity.Gig),
		bids:   make(map[uuid.UUID]*entity.Bid),
		bidSeq: make(map[uuid.UUID]int),
	}
}

func (f *fakeStore) addUser(username, name, email string) entity.User {
	f.mu.Lock()
	defer f.mu.Unlock()

	user := entity.User{Id: uuid.New(), Username: username, Name: name, Email: email}
	f.users[username] = user

	return user
}

func (f *fakeStore) addGig(owner entity.User, title string, budget float64) *entity.Gig {
	f.mu.Lock()
	defer f.mu.Unlock()

	gig := &entity.Gig{
		Id: uuid.New(), Title: title, Description: "description of " + title,
		Budget: budget, Status: common.GigOpen,
		OwnerId: owner.Id, OwnerName: owner.Name, OwnerEmail: owner.Email,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	f.gigs[gig.Id] = gig

	return gig
}

func (f *fakeStore) addBid(gig *entity.Gig, freelancer entity.User, price float64) *entity.Bid {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.insertBid(gig.Id, freelancer, "I can do this", price)
}

// caller must hold f.mu
func (f *fakeStore) insertBid(gigId uuid.UUID, freelancer entity.User, message string, price float64) *entity.Bid {
	bid := &entity.Bid{
		Id: uuid.New(), GigId: gigId,
		FreelancerId: freelancer.Id, FreelancerName: freelancer.Name, FreelancerEmail: freelancer.Email,
		Message: message, Price: price, Status: common.BidPending,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	f.seq++
	f.bids[bid.Id] = bid
	f.bidSeq[bid.Id] = f.seq

	return bid
}

func (f *fakeStore) GetUserByUsername(ctx context.Context, username string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[username]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}

	return &user, nil
}

func (f *fakeStore) GetUserById(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, user := range f.users {
		if user.Id == id {
			u := user
			return &u, nil
		}
	}

	return nil, repo_errors.ErrNotFound
}

func (f *fakeStore) CreateGig(ctx context.Context, input *entity.CreateGigInput, ownerId uuid.UUID) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var owner entity.User
	for _, user := range f.users {
		if user.Id == ownerId {
			owner = user
		}
	}

	gig := &entity.Gig{
		Id: uuid.New(), Title: input.Title, Description: input.Description,
		Budget: input.Budget, Status: common.GigOpen,
		OwnerId: ownerId, OwnerName: owner.Name, OwnerEmail: owner.Email,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	f.gigs[gig.Id] = gig

	return gig.Id, nil
}

func (f *fakeStore) GetGigById(ctx context.Context, id string) (*entity.Gig, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	gig, ok := f.gigs[uuidForm]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}
	copied := *gig

	return &copied, nil
}

func (f *fakeStore) GetOpenGigs(ctx context.Context, search string, pg *entity.PaginationInput) ([]entity.Gig, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	gigs := make([]entity.Gig, 0)
	for _, gig := range f.gigs {
		if gig.Status != common.GigOpen {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(gig.Title), strings.ToLower(search)) {
			continue
		}
		gigs = append(gigs, *gig)
	}
	sort.Slice(gigs, func(i, j int) bool { return gigs[i].CreatedAt > gigs[j].CreatedAt })

	return gigs, nil
}

func (f *fakeStore) GetGigsByOwnerId(ctx context.Context, ownerId uuid.UUID, pg *entity.PaginationInput) ([]entity.Gig, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	gigs := make([]entity.Gig, 0)
	for _, gig := range f.gigs {
		if gig.OwnerId == ownerId {
			gigs = append(gigs, *gig)
		}
	}

	return gigs, nil
}

func (f *fakeStore) CreateBid(ctx context.Context, input *entity.CreateBidInput, freelancerId uuid.UUID) (uuid.UUID, error) {
	gigId, err := uuid.Parse(input.GigId)
	if err != nil {
		return uuid.Nil, repo_errors.ErrNotFound
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	// the (gig, freelancer) uniqueness the real schema enforces
	for _, bid := range f.bids {
		if bid.GigId == gigId && bid.FreelancerId == freelancerId {
			return uuid.Nil, repo_errors.ErrAlreadyExists
		}
	}

	var freelancer entity.User
	for _, user := range f.users {
		if user.Id == freelancerId {
			freelancer = user
		}
	}

	bid := f.insertBid(gigId, freelancer, input.Message, input.Price)

	return bid.Id, nil
}

func (f *fakeStore) GetBidById(ctx context.Context, id string) (*entity.Bid, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	bid, ok := f.bids[uuidForm]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}
	copied := *bid

	return &copied, nil
}

func (f *fakeStore) GetBidByGigAndFreelancer(ctx context.Context, gigId uuid.UUID, freelancerId uuid.UUID) (*entity.Bid, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, bid := range f.bids {
		if bid.GigId == gigId && bid.FreelancerId == freelancerId {
			copied := *bid
			return &copied, nil
		}
	}

	return nil, repo_errors.ErrNotFound
}

func (f *fakeStore) GetGigBids(ctx context.Context, gigId uuid.UUID) ([]entity.Bid, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	bids := make([]entity.Bid, 0)
	for _, bid := range f.bids {
		if bid.GigId == gigId {
			bids = append(bids, *bid)
		}
	}
	// newest first
	sort.Slice(bids, func(i, j int) bool { return f.bidSeq[bids[i].Id] > f.bidSeq[bids[j].Id] })

	return bids, nil
}

func (f *fakeStore) GetUserBids(ctx context.Context, freelancerId uuid.UUID, pg *entity.PaginationInput) ([]entity.Bid, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	bids := make([]entity.Bid, 0)
	for _, bid := range f.bids {
		if bid.FreelancerId == freelancerId {
			bids = append(bids, *bid)
		}
	}
	sort.Slice(bids, func(i, j int) bool { return f.bidSeq[bids[i].Id] > f.bidSeq[bids[j].Id] })

	return bids, nil
}

func (f *fakeStore) HireBid(ctx context.Context, gigId uuid.UUID, winningBidId uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.hireErr != nil {
		return f.hireErr
	}

	gig, ok := f.gigs[gigId]
	if !ok {
		return repo_errors.ErrNotFound
	}
	bid, ok := f.bids[winningBidId]
	if !ok {
		return repo_errors.ErrNotFound
	}

	// same re-validation the transaction performs under the row lock
	if gig.Status != common.GigOpen || bid.Status != common.BidPending {
		return repo_errors.ErrConflict
	}

	gig.Status = common.GigAssigned
	bid.Status = common.BidHired
	for _, sibling := range f.bids {
		if sibling.GigId == gigId && sibling.Id != winningBidId && sibling.Status == common.BidPending {
			sibling.Status = common.BidRejected
		}
	}

	return nil
}

func (f *fakeStore) Ping() error { return nil }

// fakePublisher records what the engine publishes.
type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

type publishedEvent struct {
	RecipientId string
	Event       notifier.Event
}

func (f *fakePublisher) Publish(recipientId string, event notifier.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.events = append(f.events, publishedEvent{RecipientId: recipientId, Event: event})
}

func (f *fakePublisher) published() []publishedEvent {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]publishedEvent, len(f.events))
	copy(out, f.events)

	return out
}

func newTestBidService(store *fakeStore, publisher *fakePublisher) *BidService {
	repos := &repo.Repositories{
		Diagnostics: store,
		User:        store,
		Gig:         store,
		Bid:         store,
	}

	return NewBidService(repos, publisher)
}

func newTestGigService(store *fakeStore) *GigService {
	repos := &repo.Repositories{
		Diagnostics: store,
		User:        store,
		Gig:         store,
		Bid:         store,
	}

	return NewGigService(repos)
}
