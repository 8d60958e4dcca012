package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/caselink/caselink-backend/internal/google"
	"github.com/caselink/caselink-backend/internal/models"
	"github.com/google/uuid"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"gorm.io/gorm"
)

var (
	ErrContactNotFound = errors.New("contact not found")
	ErrContactExists   = errors.New("contact already exists")
)

type ContactService struct {
	db     *gorm.DB
	google *google.Client
}

func NewContactService(db *gorm.DB, client *google.Client) *ContactService {
	return &ContactService{db: db, google: client}
}

// ImportResult reports one import run. Created preserves the relative
// order of the fetched directory; Skipped counts contacts that were
// already present by googleResourceName.
type ImportResult struct {
	Created []models.Contact `json:"created"`
	Skipped int              `json:"skipped"`
}

// FetchRemote lists the user's Google contacts and normalizes them into
// the local shape. Fails as a whole on any transport or API error — a
// partial directory is not meaningful to import.
func (s *ContactService) FetchRemote(ctx context.Context, accessToken string) ([]models.Contact, error) {
	persons, err := s.google.ListConnections(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	contacts := make([]models.Contact, 0, len(persons))
	for i := range persons {
		contacts = append(contacts, persons[i].ToContact())
	}
	return contacts, nil
}

// Import creates each fetched contact locally inside one transaction.
// A unique-constraint hit on googleResourceName means the contact was
// imported on an earlier run; that record's savepoint is rolled back
// and it is skipped, not an error, so re-running an import is always
// safe. Any other store error rolls back the whole run: an import
// either applies fully or not at all.
func (s *ContactService) Import(contacts []models.Contact) (*ImportResult, error) {
	result := &ImportResult{Created: []models.Contact{}}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, contact := range contacts {
			contact.ID = uuid.New()
			// Nested transaction = savepoint; a duplicate must not
			// poison the outer transaction.
			err := tx.Transaction(func(tx *gorm.DB) error {
				return tx.Create(&contact).Error
			})
			if err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					result.Skipped++
					continue
				}
				return fmt.Errorf("failed to import contact: %w", err)
			}
			result.Created = append(result.Created, contact)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Create stores a user-entered contact and mirrors it to the user's
// Google directory. A failed mirror write does not lose the contact:
// the row is stored without a remote id and can be pushed again later.
func (s *ContactService) Create(ctx context.Context, accessToken string, contact *models.Contact) error {
	contact.ID = uuid.New()

	resourceName, err := s.google.CreateContact(ctx, accessToken, google.PersonFromContact(contact))
	if err != nil {
		slog.Warn("google contact mirror failed, storing locally only", "error", err)
	} else {
		contact.GoogleResourceName = &resourceName
	}

	if err := s.db.Create(contact).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrContactExists
		}
		return fmt.Errorf("failed to create contact: %w", err)
	}
	return nil
}

// List returns all contacts, optionally filtered and ranked by a fuzzy
// match on first and last name.
func (s *ContactService) List(nameFilter string) ([]models.Contact, error) {
	var contacts []models.Contact
	if err := s.db.Order("created_at").Find(&contacts).Error; err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	if nameFilter == "" {
		return contacts, nil
	}

	type rankedContact struct {
		contact models.Contact
		rank    int
	}
	ranked := make([]rankedContact, 0, len(contacts))
	for _, c := range contacts {
		rank := fuzzy.RankMatchNormalizedFold(nameFilter, c.FirstName+" "+c.LastName)
		if rank < 0 {
			continue
		}
		ranked = append(ranked, rankedContact{contact: c, rank: rank})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].rank < ranked[j].rank })

	filtered := make([]models.Contact, 0, len(ranked))
	for _, r := range ranked {
		filtered = append(filtered, r.contact)
	}
	return filtered, nil
}

func (s *ContactService) GetByID(id uuid.UUID) (*models.Contact, error) {
	var contact models.Contact
	if err := s.db.First(&contact, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}
	return &contact, nil
}
