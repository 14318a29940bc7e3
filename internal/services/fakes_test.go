package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"affiliatenest/internal/models"
	"affiliatenest/internal/repositories/interfaces"
	"affiliatenest/pkg/mailer"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes shared by the service tests. They mirror the
// MongoDB implementations' contract: sentinel errors for missing documents
// and unique-index violations, IDs assigned on insert.

type memoryUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[primitive.ObjectID]*models.User)}
}

func (r *memoryUserRepo) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email || existing.Username == user.Username {
			return fmt.Errorf("insert user: %w", interfaces.ErrDuplicateKey)
		}
	}

	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memoryUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("get user: %w", interfaces.ErrNotFound)
	}
	clone := *user
	return &clone, nil
}

func (r *memoryUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, fmt.Errorf("get user: %w", interfaces.ErrNotFound)
}

func (r *memoryUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, fmt.Errorf("get user: %w", interfaces.ErrNotFound)
}

func (r *memoryUserRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return fmt.Errorf("update user: %w", interfaces.ErrNotFound)
	}
	return nil
}

func (r *memoryUserRepo) ConsumeVerificationToken(ctx context.Context, token string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.VerificationToken == token && user.VerificationToken != "" {
			user.Verified = true
			user.VerificationToken = ""
			clone := *user
			return &clone, nil
		}
	}
	return nil, fmt.Errorf("consume token: %w", interfaces.ErrNotFound)
}

type memoryProgramRepo struct {
	mu       sync.Mutex
	programs map[primitive.ObjectID]*models.AffiliateProgram
}

func newMemoryProgramRepo() *memoryProgramRepo {
	return &memoryProgramRepo{programs: make(map[primitive.ObjectID]*models.AffiliateProgram)}
}

func (r *memoryProgramRepo) Create(ctx context.Context, program *models.AffiliateProgram) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	program.ID = primitive.NewObjectID()
	program.CreatedAt = time.Now()
	program.UpdatedAt = program.CreatedAt
	clone := *program
	r.programs[program.ID] = &clone
	return nil
}

func (r *memoryProgramRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.AffiliateProgram, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	program, ok := r.programs[id]
	if !ok {
		return nil, fmt.Errorf("get program: %w", interfaces.ErrNotFound)
	}
	clone := *program
	return &clone, nil
}

func (r *memoryProgramRepo) GetByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]*models.AffiliateProgram, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var programs []*models.AffiliateProgram
	for _, program := range r.programs {
		if program.OwnerID == ownerID {
			clone := *program
			programs = append(programs, &clone)
		}
	}
	return programs, nil
}

func (r *memoryProgramRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.programs[id]; !ok {
		return fmt.Errorf("update program: %w", interfaces.ErrNotFound)
	}
	return nil
}

type memoryLinkRepo struct {
	mu    sync.Mutex
	links map[primitive.ObjectID]*models.AffiliateLink

	// forcedCollisions makes the next N inserts fail with a duplicate-key
	// error regardless of token, for exercising the issuer's retry loop.
	forcedCollisions int
	createCalls      int
}

func newMemoryLinkRepo() *memoryLinkRepo {
	return &memoryLinkRepo{links: make(map[primitive.ObjectID]*models.AffiliateLink)}
}

func (r *memoryLinkRepo) Create(ctx context.Context, link *models.AffiliateLink) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.createCalls++
	if r.forcedCollisions > 0 {
		r.forcedCollisions--
		return fmt.Errorf("insert link: %w", interfaces.ErrDuplicateKey)
	}

	for _, existing := range r.links {
		if existing.Token == link.Token {
			return fmt.Errorf("insert link: %w", interfaces.ErrDuplicateKey)
		}
	}

	link.ID = primitive.NewObjectID()
	link.CreatedAt = time.Now()
	clone := *link
	r.links[link.ID] = &clone
	return nil
}

func (r *memoryLinkRepo) GetByToken(ctx context.Context, token string) (*models.AffiliateLink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, link := range r.links {
		if link.Token == token {
			clone := *link
			return &clone, nil
		}
	}
	return nil, fmt.Errorf("get link: %w", interfaces.ErrNotFound)
}

func (r *memoryLinkRepo) GetByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]*models.AffiliateLink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var links []*models.AffiliateLink
	for _, link := range r.links {
		if link.OwnerID == ownerID {
			clone := *link
			links = append(links, &clone)
		}
	}
	return links, nil
}

type memoryReferralRepo struct {
	mu        sync.Mutex
	referrals []*models.Referral
}

func newMemoryReferralRepo() *memoryReferralRepo {
	return &memoryReferralRepo{}
}

func (r *memoryReferralRepo) Create(ctx context.Context, referral *models.Referral) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	referral.ID = primitive.NewObjectID()
	referral.CreatedAt = time.Now()
	clone := *referral
	r.referrals = append(r.referrals, &clone)
	return nil
}

func (r *memoryReferralRepo) GetByProgram(ctx context.Context, programID primitive.ObjectID) ([]*models.Referral, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var referrals []*models.Referral
	for _, referral := range r.referrals {
		if referral.ProgramID == programID {
			clone := *referral
			referrals = append(referrals, &clone)
		}
	}
	return referrals, nil
}

func (r *memoryReferralRepo) GetByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]*models.Referral, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var referrals []*models.Referral
	for _, referral := range r.referrals {
		if referral.OwnerID == ownerID {
			clone := *referral
			referrals = append(referrals, &clone)
		}
	}
	return referrals, nil
}

func (r *memoryReferralRepo) GetByReferredUser(ctx context.Context, userID primitive.ObjectID) (*models.Referral, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, referral := range r.referrals {
		if referral.ReferredUserID != nil && *referral.ReferredUserID == userID {
			clone := *referral
			return &clone, nil
		}
	}
	return nil, fmt.Errorf("get referral: %w", interfaces.ErrNotFound)
}

func (r *memoryReferralRepo) all() []*models.Referral {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*models.Referral, len(r.referrals))
	copy(out, r.referrals)
	return out
}

var (
	errSMTPDown  = errors.New("smtp: connection refused")
	errCacheDown = errors.New("cache: connection refused")
)

type fakeMailer struct {
	mu      sync.Mutex
	sent    []mailer.Message
	sendErr error
}

func (m *fakeMailer) Send(ctx context.Context, msg mailer.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *fakeMailer) Verify(ctx context.Context) error {
	return m.sendErr
}

func (m *fakeMailer) sentMessages() []mailer.Message {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]mailer.Message, len(m.sent))
	copy(out, m.sent)
	return out
}

// fakeCacheService stores JSON-encoded values like the Redis-backed one.
type fakeCacheService struct {
	mu      sync.Mutex
	entries map[string][]byte
	counts  map[string]int64
	getErr  error
	setErr  error

	gets int
	sets int
}

func newFakeCacheService() *fakeCacheService {
	return &fakeCacheService{
		entries: make(map[string][]byte),
		counts:  make(map[string]int64),
	}
}

func (c *fakeCacheService) Get(ctx context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gets++
	if c.getErr != nil {
		return c.getErr
	}
	data, ok := c.entries[key]
	if !ok {
		return fmt.Errorf("cache: key %s not found", key)
	}
	return json.Unmarshal(data, dest)
}

func (c *fakeCacheService) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sets++
	if c.setErr != nil {
		return c.setErr
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = data
	return nil
}

func (c *fakeCacheService) Delete(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, key := range keys {
		delete(c.entries, key)
	}
	return nil
}

func (c *fakeCacheService) Increment(ctx context.Context, key string, expiration time.Duration) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.getErr != nil {
		return 0, c.getErr
	}
	c.counts[key]++
	return c.counts[key], nil
}

func (c *fakeCacheService) Ping(ctx context.Context) error {
	return nil
}
